// Package router precomputes an all-pairs shortest-path table over a
// graph.Graph with non-negative weights, once, and answers O(1)
// build-route queries against it afterwards. It never recomputes once
// built or loaded from the binary codec.
package router

import (
	"container/heap"
	"math"

	"github.com/d-ulitin/transitcat/graph"
)

// Cell is one entry of the N x N shortest-path table. Reachable is false
// when v is unreachable from u. HasPrev is false exactly for the
// same-source-and-destination cell (u, u); every other reachable cell
// carries the id of the last edge on a shortest path from u.
type Cell struct {
	Reachable bool
	Weight    float64
	HasPrev   bool
	PrevEdge  graph.EdgeID
}

// Table is the precomputed, immutable all-pairs shortest-path structure.
type Table struct {
	n     int
	cells []Cell // row-major, n*n
}

func (t *Table) cell(u, v graph.VertexID) *Cell {
	return &t.cells[int(u)*t.n+int(v)]
}

// Cell exposes the raw table entry for (u, v); used by the binary codec to
// serialise and reload the table without recomputation.
func (t *Table) Cell(u, v graph.VertexID) Cell {
	return *t.cell(u, v)
}

// NewTable allocates an empty n x n table for the codec to populate cell by
// cell while reloading a persisted base.
func NewTable(n int) *Table {
	return &Table{n: n, cells: make([]Cell, n*n)}
}

// SetCell installs a cell during reload; it does not run any shortest-path
// computation.
func (t *Table) SetCell(u, v graph.VertexID, c Cell) {
	*t.cell(u, v) = c
}

// Build runs the N single-source Dijkstra precomputation described by the
// router contract: for every vertex u, a min-priority-queue search over g
// fills row u of the table. Weights must be non-negative.
func Build(g *graph.Graph) *Table {
	n := g.VertexCount()
	t := &Table{n: n, cells: make([]Cell, n*n)}
	for u := 0; u < n; u++ {
		t.dijkstraFrom(g, graph.VertexID(u))
	}
	return t
}

func (t *Table) dijkstraFrom(g *graph.Graph, source graph.VertexID) {
	n := t.n
	dist := make([]float64, n)
	prevEdge := make([]graph.EdgeID, n)
	hasPrev := make([]bool, n)
	visited := make([]bool, n)
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	dist[source] = 0

	h := &vertexHeap{{vertex: source, dist: 0}}
	for h.Len() > 0 {
		cur := heap.Pop(h).(pqItem)
		u := cur.vertex
		if visited[u] {
			continue
		}
		if cur.dist > dist[u] {
			continue
		}
		visited[u] = true

		for _, eid := range g.OutgoingEdges(u) {
			e := g.Edge(eid)
			nd := dist[u] + e.Weight
			// Strict less than: on ties the edge that relaxed the vertex
			// first is kept. Among the outgoing edges of one vertex that is
			// the earliest-inserted (lowest id) one.
			if nd < dist[e.To] {
				dist[e.To] = nd
				prevEdge[e.To] = eid
				hasPrev[e.To] = true
				heap.Push(h, pqItem{vertex: e.To, dist: nd})
			}
		}
	}

	for v := 0; v < n; v++ {
		if math.IsInf(dist[v], 1) {
			continue
		}
		*t.cell(source, graph.VertexID(v)) = Cell{
			Reachable: true,
			Weight:    dist[v],
			HasPrev:   hasPrev[v],
			PrevEdge:  prevEdge[v],
		}
	}
}

// Path is a reconstructed shortest path: its total weight and the ordered
// edge ids traversed from source to destination.
type Path struct {
	TotalWeight float64
	Edges       []graph.EdgeID
}

// BuildRoute walks prevEdge backwards from `to` until reaching `from`,
// reversing the collected edge ids. It reports ok=false if (from, to) is
// absent from the table.
func (t *Table) BuildRoute(g *graph.Graph, from, to graph.VertexID) (Path, bool) {
	cell := t.cell(from, to)
	if !cell.Reachable {
		return Path{}, false
	}
	var edges []graph.EdgeID
	v := to
	for v != from {
		c := t.cell(from, v)
		if !c.HasPrev {
			break
		}
		edges = append(edges, c.PrevEdge)
		e := g.Edge(c.PrevEdge)
		v = e.From
	}
	// reverse in place
	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}
	return Path{TotalWeight: cell.Weight, Edges: edges}, true
}
