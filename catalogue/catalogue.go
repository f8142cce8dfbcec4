// Package catalogue owns the canonical in-memory store of stops, buses and
// asymmetric inter-stop distances, plus the derived indices and route
// statistics built from them.
package catalogue

import (
	"fmt"
	"sort"

	"github.com/d-ulitin/transitcat/geo"
)

// stopPair is the directed key of the distance map.
type stopPair struct {
	from StopHandle
	to   StopHandle
}

// Catalogue is append-only: stops and buses are added during a build phase
// and never removed, so handles remain stable for the catalogue's lifetime.
// No method here mutates shared state after the caller declares the build
// phase over; accessors are then safe to call concurrently.
type Catalogue struct {
	stops    []Stop
	buses    []Bus
	stopByID map[string]StopHandle
	busByID  map[string]BusHandle

	// busesByStop holds, per stop, the bus handles serving it, kept sorted
	// lexicographically by bus name as buses are inserted.
	busesByStop map[StopHandle][]BusHandle

	distances map[stopPair]uint32
}

// New returns an empty catalogue ready for a build phase.
func New() *Catalogue {
	return &Catalogue{
		stopByID:    make(map[string]StopHandle),
		busByID:     make(map[string]BusHandle),
		busesByStop: make(map[StopHandle][]BusHandle),
		distances:   make(map[stopPair]uint32),
	}
}

// AddStop appends a new stop and returns its stable handle.
func (self *Catalogue) AddStop(name string, coords geo.Coordinates) (StopHandle, error) {
	if name == "" {
		return NoStop, ErrEmptyName
	}
	if _, ok := self.stopByID[name]; ok {
		return NoStop, fmt.Errorf("%w: %q", ErrDuplicateStop, name)
	}
	h := StopHandle(len(self.stops))
	self.stops = append(self.stops, Stop{Name: name, Coordinates: coords})
	self.stopByID[name] = h
	return h, nil
}

// GetStop performs a case-sensitive exact-match lookup, returning NoStop for
// an absent name (not an error).
func (self *Catalogue) GetStop(name string) StopHandle {
	if h, ok := self.stopByID[name]; ok {
		return h
	}
	return NoStop
}

// Stop dereferences a handle known to be valid.
func (self *Catalogue) Stop(h StopHandle) *Stop {
	return &self.stops[h]
}

// StopCount returns the number of stops in the arena.
func (self *Catalogue) StopCount() int {
	return len(self.stops)
}

// Stops iterates stop handles in insertion order, which is also vertex-id
// order once the transit router is built.
func (self *Catalogue) Stops() []StopHandle {
	out := make([]StopHandle, len(self.stops))
	for i := range self.stops {
		out[i] = StopHandle(i)
	}
	return out
}

// AddDistance records a directed distance; later calls for the same
// directed pair overwrite the earlier value.
func (self *Catalogue) AddDistance(a, b StopHandle, metres uint32) {
	self.distances[stopPair{a, b}] = metres
}

// GetDistance returns the directed value if present, else the reverse
// value, else ErrUnknownDistance.
func (self *Catalogue) GetDistance(a, b StopHandle) (uint32, error) {
	if d, ok := self.distances[stopPair{a, b}]; ok {
		return d, nil
	}
	if d, ok := self.distances[stopPair{b, a}]; ok {
		return d, nil
	}
	return 0, fmt.Errorf("%w: %q -> %q", ErrUnknownDistance, self.stops[a].Name, self.stops[b].Name)
}

// AddBus appends a new bus, validating that its stops exist in the
// catalogue, and updates the stop->buses reverse index.
func (self *Catalogue) AddBus(name string, stops []StopHandle, kind RouteKind) (BusHandle, error) {
	if name == "" {
		return NoBus, ErrEmptyName
	}
	if _, ok := self.busByID[name]; ok {
		return NoBus, fmt.Errorf("%w: %q", ErrDuplicateBus, name)
	}
	if len(stops) == 0 {
		return NoBus, ErrEmptyBusStops
	}
	for _, s := range stops {
		if s < 0 || int(s) >= len(self.stops) {
			return NoBus, fmt.Errorf("%w: handle %d", ErrUnknownStop, s)
		}
	}

	h := BusHandle(len(self.buses))
	self.buses = append(self.buses, Bus{Name: name, Stops: stops, Kind: kind})
	self.busByID[name] = h

	for _, s := range stops {
		self.insertBusByStop(s, h)
	}
	return h, nil
}

func (self *Catalogue) insertBusByStop(s StopHandle, h BusHandle) {
	list := self.busesByStop[s]
	name := self.buses[h].Name
	i := sort.Search(len(list), func(i int) bool {
		return self.buses[list[i]].Name >= name
	})
	if i < len(list) && list[i] == h {
		return
	}
	list = append(list, NoBus)
	copy(list[i+1:], list[i:])
	list[i] = h
	self.busesByStop[s] = list
}

// GetBus performs a case-sensitive exact-match lookup, returning NoBus for
// an absent name.
func (self *Catalogue) GetBus(name string) BusHandle {
	if h, ok := self.busByID[name]; ok {
		return h
	}
	return NoBus
}

// Bus dereferences a handle known to be valid.
func (self *Catalogue) Bus(h BusHandle) *Bus {
	return &self.buses[h]
}

// BusCount returns the number of buses in the arena.
func (self *Catalogue) BusCount() int {
	return len(self.buses)
}

// Buses iterates bus handles in insertion order.
func (self *Catalogue) Buses() []BusHandle {
	out := make([]BusHandle, len(self.buses))
	for i := range self.buses {
		out[i] = BusHandle(i)
	}
	return out
}

// BusesThrough returns the lexicographically ordered bus handles serving a
// stop; empty (not nil is not guaranteed) for stops touched by no bus.
func (self *Catalogue) BusesThrough(s StopHandle) []BusHandle {
	return self.busesByStop[s]
}

// GeoLength sums the great-circle distance between consecutive stops of the
// bus's declared sequence, doubled for a linear bus.
func (self *Catalogue) GeoLength(h BusHandle) float64 {
	bus := &self.buses[h]
	var total float64
	for i := 1; i < len(bus.Stops); i++ {
		from := self.stops[bus.Stops[i-1]].Coordinates
		to := self.stops[bus.Stops[i]].Coordinates
		total += geo.Distance(from, to)
	}
	if bus.Kind == Linear {
		total *= 2
	}
	return total
}

// RouteLength sums the directed road distance along the bus's full
// traversal (forward and, for linear buses, independently backward),
// following the GetDistance fallback rule at each hop.
func (self *Catalogue) RouteLength(h BusHandle) (uint32, error) {
	bus := &self.buses[h]
	n := bus.TraversalLen()
	var total uint32
	for p := 1; p < n; p++ {
		from := bus.At(p - 1)
		to := bus.At(p)
		d, err := self.GetDistance(from, to)
		if err != nil {
			return 0, fmt.Errorf("route length of bus %q: %w", bus.Name, err)
		}
		total += d
	}
	return total, nil
}

// DistanceRecord is one directed distance entry, used by the binary codec
// to serialise the distance map.
type DistanceRecord struct {
	From   StopHandle
	To     StopHandle
	Metres uint32
}

// Distances returns every recorded directed distance, ordered by (from,
// to) handle for a deterministic serialisation order.
func (self *Catalogue) Distances() []DistanceRecord {
	out := make([]DistanceRecord, 0, len(self.distances))
	for k, v := range self.distances {
		out = append(out, DistanceRecord{From: k.from, To: k.to, Metres: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}

// Curvature is RouteLength / GeoLength; callers should only invoke this for
// buses with at least two stops (GeoLength would otherwise be zero).
func (self *Catalogue) Curvature(h BusHandle) (float64, error) {
	route, err := self.RouteLength(h)
	if err != nil {
		return 0, err
	}
	geoLen := self.GeoLength(h)
	if geoLen == 0 {
		return 0, nil
	}
	return float64(route) / geoLen, nil
}
