package codec

import (
	"fmt"

	"golang.org/x/exp/slog"

	"github.com/d-ulitin/transitcat/catalogue"
	"github.com/d-ulitin/transitcat/geo"
	"github.com/d-ulitin/transitcat/graph"
	"github.com/d-ulitin/transitcat/render"
	"github.com/d-ulitin/transitcat/router"
	"github.com/d-ulitin/transitcat/transit"
)

// Base is everything a second process needs to serve queries without
// rebuilding: the catalogue, its transit router, and the render settings
// that were in effect at build time.
type Base struct {
	Catalogue       *catalogue.Catalogue
	Router          *transit.Router
	RoutingSettings transit.Settings
	RenderSettings  render.Settings
}

// Encode serialises base into a self-describing, order-sensitive
// four-section container: catalogue, render settings, routing settings,
// transit router. A nil log uses slog.Default().
func Encode(base *Base, log *slog.Logger) ([]byte, error) {
	if log == nil {
		log = slog.Default()
	}
	w := newWriter()
	if err := writeCatalogue(w, base.Catalogue); err != nil {
		log.Error("codec: encoding catalogue section failed", "error", err)
		return nil, err
	}
	if err := writeRenderSettings(w, base.RenderSettings); err != nil {
		log.Error("codec: encoding render settings section failed", "error", err)
		return nil, err
	}
	writeRoutingSettings(w, base.RoutingSettings)
	writeTransitRouter(w, base.Router)
	log.Info("codec: encoded base", "bytes", w.buf.Len(), "stops", base.Catalogue.StopCount(), "buses", base.Catalogue.BusCount())
	return w.bytes(), nil
}

// Decode reconstructs a Base from bytes produced by Encode. It never
// re-runs the shortest-path precomputation: the router's table is replayed
// cell by cell from the stream. A nil log uses slog.Default().
func Decode(data []byte, log *slog.Logger) (*Base, error) {
	if log == nil {
		log = slog.Default()
	}
	r := newReader(data)

	cat, err := readCatalogue(r)
	if err != nil {
		log.Error("codec: decoding catalogue section failed", "error", err)
		return nil, fmt.Errorf("codec: catalogue section: %w", err)
	}
	renderSettings, err := readRenderSettings(r)
	if err != nil {
		log.Error("codec: decoding render settings section failed", "error", err)
		return nil, fmt.Errorf("codec: render settings section: %w", err)
	}
	routingSettings, err := readRoutingSettings(r)
	if err != nil {
		log.Error("codec: decoding routing settings section failed", "error", err)
		return nil, fmt.Errorf("codec: routing settings section: %w", err)
	}
	tr, err := readTransitRouter(r, cat, routingSettings)
	if err != nil {
		log.Error("codec: decoding transit router section failed", "error", err)
		return nil, fmt.Errorf("codec: transit router section: %w", err)
	}

	log.Info("codec: decoded base", "bytes", len(data), "stops", cat.StopCount(), "buses", cat.BusCount())
	return &Base{
		Catalogue:       cat,
		Router:          tr,
		RoutingSettings: routingSettings,
		RenderSettings:  renderSettings,
	}, nil
}

//*******************************************
// catalogue section
//*******************************************

func writeCatalogue(w *writer, cat *catalogue.Catalogue) error {
	stops := cat.Stops()
	w.writeUint32(uint32(len(stops)))
	for _, h := range stops {
		s := cat.Stop(h)
		w.writeInt32(int32(h))
		w.writeString(s.Name)
		w.writeFloat64(s.Coordinates.Lat)
		w.writeFloat64(s.Coordinates.Lng)
	}

	distances := cat.Distances()
	w.writeUint32(uint32(len(distances)))
	for _, d := range distances {
		w.writeInt32(int32(d.From))
		w.writeInt32(int32(d.To))
		w.writeUint32(d.Metres)
	}

	buses := cat.Buses()
	w.writeUint32(uint32(len(buses)))
	for _, h := range buses {
		b := cat.Bus(h)
		w.writeInt32(int32(h))
		w.writeString(b.Name)
		w.writeUint32(uint32(len(b.Stops)))
		for _, s := range b.Stops {
			w.writeInt32(int32(s))
		}
		w.writeUint8(uint8(b.Kind))
	}
	return nil
}

func readCatalogue(r *reader) (*catalogue.Catalogue, error) {
	cat := catalogue.New()

	stopCount, err := r.readUint32()
	if err != nil {
		return nil, err
	}
	for i := uint32(0); i < stopCount; i++ {
		if _, err := r.readInt32(); err != nil { // id, equal to insertion order; not otherwise needed
			return nil, err
		}
		name, err := r.readString()
		if err != nil {
			return nil, err
		}
		lat, err := r.readFloat64()
		if err != nil {
			return nil, err
		}
		lng, err := r.readFloat64()
		if err != nil {
			return nil, err
		}
		if _, err := cat.AddStop(name, geo.Coordinates{Lat: lat, Lng: lng}); err != nil {
			return nil, err
		}
	}

	distCount, err := r.readUint32()
	if err != nil {
		return nil, err
	}
	for i := uint32(0); i < distCount; i++ {
		from, err := r.readInt32()
		if err != nil {
			return nil, err
		}
		to, err := r.readInt32()
		if err != nil {
			return nil, err
		}
		metres, err := r.readUint32()
		if err != nil {
			return nil, err
		}
		cat.AddDistance(catalogue.StopHandle(from), catalogue.StopHandle(to), metres)
	}

	busCount, err := r.readUint32()
	if err != nil {
		return nil, err
	}
	for i := uint32(0); i < busCount; i++ {
		if _, err := r.readInt32(); err != nil { // id
			return nil, err
		}
		name, err := r.readString()
		if err != nil {
			return nil, err
		}
		stopN, err := r.readUint32()
		if err != nil {
			return nil, err
		}
		stops := make([]catalogue.StopHandle, stopN)
		for j := uint32(0); j < stopN; j++ {
			s, err := r.readInt32()
			if err != nil {
				return nil, err
			}
			stops[j] = catalogue.StopHandle(s)
		}
		kind, err := r.readUint8()
		if err != nil {
			return nil, err
		}
		if _, err := cat.AddBus(name, stops, catalogue.RouteKind(kind)); err != nil {
			return nil, err
		}
	}

	return cat, nil
}

//*******************************************
// routing settings section
//*******************************************

func writeRoutingSettings(w *writer, s transit.Settings) {
	w.writeInt32(int32(s.BusWaitTime))
	w.writeInt32(int32(s.BusVelocity))
}

func readRoutingSettings(r *reader) (transit.Settings, error) {
	wait, err := r.readInt32()
	if err != nil {
		return transit.Settings{}, err
	}
	vel, err := r.readInt32()
	if err != nil {
		return transit.Settings{}, err
	}
	return transit.Settings{BusWaitTime: int(wait), BusVelocity: int(vel)}, nil
}

//*******************************************
// render settings section
//*******************************************

func writeRenderSettings(w *writer, s render.Settings) error {
	w.writeFloat64(s.Width)
	w.writeFloat64(s.Height)
	w.writeFloat64(s.Padding)
	w.writeFloat64(s.LineWidth)
	w.writeFloat64(s.StopRadius)
	w.writeInt32(int32(s.BusLabelFontSize))
	w.writeFloat64(s.BusLabelOffset[0])
	w.writeFloat64(s.BusLabelOffset[1])
	w.writeInt32(int32(s.StopLabelFontSize))
	w.writeFloat64(s.StopLabelOffset[0])
	w.writeFloat64(s.StopLabelOffset[1])
	if err := writeColor(w, s.UnderlayColor); err != nil {
		return err
	}
	w.writeFloat64(s.UnderlayStrokeWidth)
	w.writeUint32(uint32(len(s.Palette)))
	for _, c := range s.Palette {
		if err := writeColor(w, c); err != nil {
			return err
		}
	}
	return nil
}

func readRenderSettings(r *reader) (render.Settings, error) {
	var s render.Settings
	var err error
	if s.Width, err = r.readFloat64(); err != nil {
		return s, err
	}
	if s.Height, err = r.readFloat64(); err != nil {
		return s, err
	}
	if s.Padding, err = r.readFloat64(); err != nil {
		return s, err
	}
	if s.LineWidth, err = r.readFloat64(); err != nil {
		return s, err
	}
	if s.StopRadius, err = r.readFloat64(); err != nil {
		return s, err
	}
	fontSize, err := r.readInt32()
	if err != nil {
		return s, err
	}
	s.BusLabelFontSize = int(fontSize)
	if s.BusLabelOffset[0], err = r.readFloat64(); err != nil {
		return s, err
	}
	if s.BusLabelOffset[1], err = r.readFloat64(); err != nil {
		return s, err
	}
	fontSize, err = r.readInt32()
	if err != nil {
		return s, err
	}
	s.StopLabelFontSize = int(fontSize)
	if s.StopLabelOffset[0], err = r.readFloat64(); err != nil {
		return s, err
	}
	if s.StopLabelOffset[1], err = r.readFloat64(); err != nil {
		return s, err
	}
	if s.UnderlayColor, err = readColor(r); err != nil {
		return s, err
	}
	if s.UnderlayStrokeWidth, err = r.readFloat64(); err != nil {
		return s, err
	}
	paletteN, err := r.readUint32()
	if err != nil {
		return s, err
	}
	s.Palette = make([]render.Color, paletteN)
	for i := uint32(0); i < paletteN; i++ {
		if s.Palette[i], err = readColor(r); err != nil {
			return s, err
		}
	}
	return s, nil
}

//*******************************************
// transit router section
//*******************************************

func writeTransitRouter(w *writer, tr *transit.Router) {
	g := tr.Graph()
	n := g.VertexCount()
	w.writeInt32(int32(n))

	w.writeInt32(int32(g.EdgeCount()))
	for i := 0; i < g.EdgeCount(); i++ {
		e := g.Edge(graph.EdgeID(i))
		w.writeInt32(int32(e.From))
		w.writeInt32(int32(e.To))
		w.writeFloat64(e.Weight)
	}

	table := tr.Table()
	for u := 0; u < n; u++ {
		for v := 0; v < n; v++ {
			cell := table.Cell(graph.VertexID(u), graph.VertexID(v))
			// The optional entry is encoded as a 0-or-1-element repeated
			// field: writeBool stands in for the count (0 absent, 1
			// present).
			w.writeBool(cell.Reachable)
			if !cell.Reachable {
				continue
			}
			w.writeFloat64(cell.Weight)
			w.writeBool(cell.HasPrev)
			if cell.HasPrev {
				w.writeInt32(int32(cell.PrevEdge))
			}
		}
	}

	vertexStops := tr.VertexStops()
	w.writeInt32(int32(len(vertexStops)))
	for _, s := range vertexStops {
		w.writeInt32(int32(s))
	}

	w.writeInt32(int32(tr.EdgeMetaCount()))
	for i := 0; i < tr.EdgeMetaCount(); i++ {
		wait, from, to, span, bus := tr.EdgeMeta(graph.EdgeID(i))
		w.writeFloat64(wait)
		w.writeInt32(int32(from))
		w.writeInt32(int32(to))
		w.writeInt32(int32(span))
		w.writeInt32(int32(bus))
	}
}

func readTransitRouter(r *reader, cat *catalogue.Catalogue, settings transit.Settings) (*transit.Router, error) {
	n32, err := r.readInt32()
	if err != nil {
		return nil, err
	}
	n := int(n32)

	edgeCount, err := r.readInt32()
	if err != nil {
		return nil, err
	}
	g := graph.New(n)
	for i := int32(0); i < edgeCount; i++ {
		from, err := r.readInt32()
		if err != nil {
			return nil, err
		}
		to, err := r.readInt32()
		if err != nil {
			return nil, err
		}
		weight, err := r.readFloat64()
		if err != nil {
			return nil, err
		}
		g.AddEdge(graph.VertexID(from), graph.VertexID(to), weight)
	}

	table := router.NewTable(n)
	for u := 0; u < n; u++ {
		for v := 0; v < n; v++ {
			reachable, err := r.readBool()
			if err != nil {
				return nil, err
			}
			if !reachable {
				continue
			}
			weight, err := r.readFloat64()
			if err != nil {
				return nil, err
			}
			hasPrev, err := r.readBool()
			if err != nil {
				return nil, err
			}
			var prevEdge graph.EdgeID
			if hasPrev {
				pe, err := r.readInt32()
				if err != nil {
					return nil, err
				}
				prevEdge = graph.EdgeID(pe)
			}
			table.SetCell(graph.VertexID(u), graph.VertexID(v), router.Cell{
				Reachable: true,
				Weight:    weight,
				HasPrev:   hasPrev,
				PrevEdge:  prevEdge,
			})
		}
	}

	vertexN, err := r.readInt32()
	if err != nil {
		return nil, err
	}
	vertexStops := make([]catalogue.StopHandle, vertexN)
	for i := int32(0); i < vertexN; i++ {
		s, err := r.readInt32()
		if err != nil {
			return nil, err
		}
		vertexStops[i] = catalogue.StopHandle(s)
	}

	edgeMetaN, err := r.readInt32()
	if err != nil {
		return nil, err
	}
	edges := make([]transit.EdgeMeta, edgeMetaN)
	for i := int32(0); i < edgeMetaN; i++ {
		wait, err := r.readFloat64()
		if err != nil {
			return nil, err
		}
		from, err := r.readInt32()
		if err != nil {
			return nil, err
		}
		to, err := r.readInt32()
		if err != nil {
			return nil, err
		}
		span, err := r.readInt32()
		if err != nil {
			return nil, err
		}
		bus, err := r.readInt32()
		if err != nil {
			return nil, err
		}
		edges[i] = transit.EdgeMeta{
			Wait: wait,
			From: catalogue.StopHandle(from),
			To:   catalogue.StopHandle(to),
			Span: int(span),
			Bus:  catalogue.BusHandle(bus),
		}
	}

	return transit.FromReloaded(cat, settings, g, table, vertexStops, edges), nil
}
