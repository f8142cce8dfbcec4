// Package transit builds the travel graph from a catalogue and routing
// settings, runs the shortest-path precomputation over it, and decodes
// edges back into human-meaningful wait/ride activities.
package transit

import (
	"github.com/d-ulitin/transitcat/catalogue"
	"github.com/d-ulitin/transitcat/graph"
	"github.com/d-ulitin/transitcat/router"
)

// EdgeMeta is the per-edge payload the codec must round-trip alongside the
// bare graph.Edge: which bus produced it, in which direction, over how many
// hops.
type EdgeMeta struct {
	Wait float64
	From catalogue.StopHandle
	To   catalogue.StopHandle
	Span int
	Bus  catalogue.BusHandle
}

// Router owns the travel graph and its precomputed shortest-path table. It
// borrows the catalogue by reference for lookups after the build.
type Router struct {
	cat      *catalogue.Catalogue
	settings Settings

	g          *graph.Graph
	table      *router.Table
	vertexStop []catalogue.StopHandle
	stopVertex map[catalogue.StopHandle]graph.VertexID
	edges      []EdgeMeta
}

// Build constructs the travel graph over every stop of cat, adds edges for
// every bus, and runs the one-shot all-pairs precomputation.
func Build(cat *catalogue.Catalogue, settings Settings) (*Router, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	stops := cat.Stops()
	vertexStop := make([]catalogue.StopHandle, len(stops))
	stopVertex := make(map[catalogue.StopHandle]graph.VertexID, len(stops))
	for i, s := range stops {
		vertexStop[i] = s
		stopVertex[s] = graph.VertexID(i)
	}

	g := graph.New(len(stops))
	r := &Router{
		cat:        cat,
		settings:   settings,
		g:          g,
		vertexStop: vertexStop,
		stopVertex: stopVertex,
	}

	for _, bus := range cat.Buses() {
		if err := r.addBusEdges(bus); err != nil {
			return nil, err
		}
	}

	r.table = router.Build(g)
	return r, nil
}

// addBusEdges adds one edge for every pair (i, j), i < j, of positions
// along the bus's effective traversal, accumulating the road distance
// incrementally as j grows so the whole bus costs O(len^2) hops, not
// O(len^3) distance sums.
func (self *Router) addBusEdges(bus catalogue.BusHandle) error {
	b := self.cat.Bus(bus)
	n := b.TraversalLen()
	speed := self.settings.metresPerMinute()
	wait := float64(self.settings.BusWaitTime)

	for i := 0; i < n-1; i++ {
		fromStop := b.At(i)
		fromVertex := self.stopVertex[fromStop]
		var distance uint32
		for j := i + 1; j < n; j++ {
			a := b.At(j - 1)
			c := b.At(j)
			d, err := self.cat.GetDistance(a, c)
			if err != nil {
				return err
			}
			distance += d

			toStop := b.At(j)
			toVertex := self.stopVertex[toStop]
			ride := float64(distance) / speed
			weight := wait + ride

			edgeID := self.g.AddEdge(fromVertex, toVertex, weight)
			self.edges = append(self.edges, EdgeMeta{
				Wait: wait,
				From: fromStop,
				To:   toStop,
				Span: j - i,
				Bus:  bus,
			})
			_ = edgeID
		}
	}
	return nil
}

// Route finds the fastest itinerary from one stop to another. from == to is
// special-cased to an empty, zero-time itinerary rather than "not found".
func (self *Router) Route(from, to catalogue.StopHandle) (Itinerary, bool) {
	if from == to {
		return Itinerary{}, true
	}
	fv, ok1 := self.stopVertex[from]
	tv, ok2 := self.stopVertex[to]
	if !ok1 || !ok2 {
		return Itinerary{}, false
	}

	path, ok := self.table.BuildRoute(self.g, fv, tv)
	if !ok {
		return Itinerary{}, false
	}

	activities := make([]Activity, 0, len(path.Edges)*2)
	for _, eid := range path.Edges {
		e := self.g.Edge(eid)
		meta := self.edges[eid]
		activities = append(activities,
			Wait{Stop: meta.From, Minutes: meta.Wait},
			Ride{Bus: meta.Bus, From: meta.From, Span: meta.Span, Minutes: e.Weight - meta.Wait},
		)
	}
	return Itinerary{TotalTime: path.TotalWeight, Activities: activities}, true
}

// Graph exposes the built travel graph, e.g. for the binary codec.
func (self *Router) Graph() *graph.Graph { return self.g }

// Table exposes the precomputed shortest-path table, e.g. for the binary
// codec.
func (self *Router) Table() *router.Table { return self.table }

// VertexStops returns the dense vertex-id -> stop-handle mapping.
func (self *Router) VertexStops() []catalogue.StopHandle { return self.vertexStop }

// EdgeMetaCount returns the number of per-edge metadata records, always
// equal to Graph().EdgeCount().
func (self *Router) EdgeMetaCount() int { return len(self.edges) }

// EdgeMeta returns the metadata for a graph edge id.
func (self *Router) EdgeMeta(id graph.EdgeID) (wait float64, from, to catalogue.StopHandle, span int, bus catalogue.BusHandle) {
	m := self.edges[id]
	return m.Wait, m.From, m.To, m.Span, m.Bus
}

// FromReloaded reconstructs a Router from components produced by the
// binary codec, skipping every step of Build except establishing the
// stop<->vertex maps: no shortest-path recomputation happens here.
func FromReloaded(cat *catalogue.Catalogue, settings Settings, g *graph.Graph, table *router.Table, vertexStop []catalogue.StopHandle, edges []EdgeMeta) *Router {
	stopVertex := make(map[catalogue.StopHandle]graph.VertexID, len(vertexStop))
	for i, s := range vertexStop {
		stopVertex[s] = graph.VertexID(i)
	}
	return &Router{
		cat:        cat,
		settings:   settings,
		g:          g,
		table:      table,
		vertexStop: vertexStop,
		stopVertex: stopVertex,
		edges:      edges,
	}
}
