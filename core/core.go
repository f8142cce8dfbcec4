// Package core is the small facade the external request layer drives: the
// mutators used while building a base, and the accessors used while
// serving stat requests. It never imports encoding/json or any transport
// concern — that lives in requestio.
package core

import (
	"fmt"
	"io"

	"golang.org/x/exp/slog"

	"github.com/d-ulitin/transitcat/catalogue"
	"github.com/d-ulitin/transitcat/codec"
	"github.com/d-ulitin/transitcat/geo"
	"github.com/d-ulitin/transitcat/render"
	"github.com/d-ulitin/transitcat/transit"
)

// Core owns a catalogue during the build phase and, once frozen, its
// transit router as well. Mutators and accessors must not be interleaved:
// call FreezeAndBuildRouter exactly once between the two phases.
type Core struct {
	log      *slog.Logger
	cat      *catalogue.Catalogue
	router   *transit.Router
	settings transit.Settings
}

// New starts a fresh build phase.
func New(log *slog.Logger) *Core {
	if log == nil {
		log = slog.Default()
	}
	return &Core{log: log, cat: catalogue.New()}
}

// AddStop appends a stop; see catalogue.Catalogue.AddStop.
func (self *Core) AddStop(name string, coords geo.Coordinates) (catalogue.StopHandle, error) {
	h, err := self.cat.AddStop(name, coords)
	if err != nil {
		self.log.Warn("add_stop failed", "name", name, "error", err)
		return catalogue.NoStop, err
	}
	return h, nil
}

// AddDistance records a directed distance; see
// catalogue.Catalogue.AddDistance.
func (self *Core) AddDistance(a, b catalogue.StopHandle, metres uint32) {
	self.cat.AddDistance(a, b, metres)
}

// AddBus appends a bus; see catalogue.Catalogue.AddBus.
func (self *Core) AddBus(name string, stops []catalogue.StopHandle, kind catalogue.RouteKind) (catalogue.BusHandle, error) {
	h, err := self.cat.AddBus(name, stops, kind)
	if err != nil {
		self.log.Warn("add_bus failed", "name", name, "error", err)
		return catalogue.NoBus, err
	}
	return h, nil
}

// GetStop resolves a stop name to a handle, or catalogue.NoStop.
func (self *Core) GetStop(name string) catalogue.StopHandle { return self.cat.GetStop(name) }

// GetBus resolves a bus name to a handle, or catalogue.NoBus.
func (self *Core) GetBus(name string) catalogue.BusHandle { return self.cat.GetBus(name) }

// StopName resolves a stop handle back to its name, for rendering
// itineraries built from router-level handles.
func (self *Core) StopName(h catalogue.StopHandle) string { return self.cat.Stop(h).Name }

// BusName resolves a bus handle back to its name, for rendering
// itineraries built from router-level handles.
func (self *Core) BusName(h catalogue.BusHandle) string { return self.cat.Bus(h).Name }

// FreezeAndBuildRouter ends the build phase: the catalogue becomes
// read-only and the transit router's one-shot precomputation runs.
func (self *Core) FreezeAndBuildRouter(settings transit.Settings) error {
	self.log.Info("building transit router", "stops", self.cat.StopCount(), "buses", self.cat.BusCount())
	tr, err := transit.Build(self.cat, settings)
	if err != nil {
		self.log.Error("failed to build transit router", "error", err)
		return err
	}
	self.router = tr
	self.settings = settings
	return nil
}

// StopReport returns the lexicographically ordered bus names serving a
// stop, or found=false if the stop is unknown.
func (self *Core) StopReport(name string) (buses []string, found bool) {
	h := self.cat.GetStop(name)
	if h == catalogue.NoStop {
		return nil, false
	}
	handles := self.cat.BusesThrough(h)
	out := make([]string, len(handles))
	for i, bh := range handles {
		out[i] = self.cat.Bus(bh).Name
	}
	return out, true
}

// BusReport is the aggregate route statistics for a single bus.
type BusReport struct {
	StopCount       int
	UniqueStopCount int
	RouteLength     uint32
	Curvature       float64
}

// BusReport returns aggregate statistics for a bus, or found=false if the
// bus is unknown.
func (self *Core) BusReport(name string) (BusReport, bool) {
	h := self.cat.GetBus(name)
	if h == catalogue.NoBus {
		return BusReport{}, false
	}
	bus := self.cat.Bus(h)
	length, err := self.cat.RouteLength(h)
	if err != nil {
		self.log.Error("bus_report: route length failed", "bus", name, "error", err)
		return BusReport{}, false
	}
	curvature, err := self.cat.Curvature(h)
	if err != nil {
		self.log.Error("bus_report: curvature failed", "bus", name, "error", err)
		return BusReport{}, false
	}
	return BusReport{
		StopCount:       bus.StopCount(),
		UniqueStopCount: bus.UniqueStopCount(),
		RouteLength:     length,
		Curvature:       curvature,
	}, true
}

// Route answers an itinerary query by stop name, resolving names to
// handles first: an unknown name is found=false rather than an error,
// since a missing stop is a normal query outcome, not a failure.
func (self *Core) Route(fromName, toName string) (transit.Itinerary, bool) {
	from := self.cat.GetStop(fromName)
	to := self.cat.GetStop(toName)
	if from == catalogue.NoStop || to == catalogue.NoStop {
		return transit.Itinerary{}, false
	}
	return self.router.Route(from, to)
}

// Render delegates to the render package over the frozen catalogue.
func (self *Core) Render(settings render.Settings) string {
	return render.Render(self.cat, settings)
}

// Serialize writes the frozen catalogue, transit router and render
// settings to w in the codec package's binary format.
func (self *Core) Serialize(w io.Writer, renderSettings render.Settings) error {
	if self.router == nil {
		return fmt.Errorf("core: cannot serialize before FreezeAndBuildRouter")
	}
	data, err := codec.Encode(&codec.Base{
		Catalogue:       self.cat,
		Router:          self.router,
		RoutingSettings: self.settings,
		RenderSettings:  renderSettings,
	}, self.log)
	if err != nil {
		return fmt.Errorf("core: serialize: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("core: writing serialized base: %w", err)
	}
	self.log.Info("serialized base", "bytes", len(data))
	return nil
}

// Deserialize reconstructs a frozen Core plus render settings from r,
// performing no shortest-path recomputation.
func Deserialize(r io.Reader, log *slog.Logger) (*Core, render.Settings, error) {
	if log == nil {
		log = slog.Default()
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, render.Settings{}, fmt.Errorf("core: reading serialized base: %w", err)
	}
	base, err := codec.Decode(data, log)
	if err != nil {
		return nil, render.Settings{}, fmt.Errorf("core: deserialize: %w", err)
	}
	log.Info("deserialized base", "stops", base.Catalogue.StopCount(), "buses", base.Catalogue.BusCount())
	return &Core{log: log, cat: base.Catalogue, router: base.Router, settings: base.RoutingSettings}, base.RenderSettings, nil
}
