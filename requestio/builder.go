package requestio

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/d-ulitin/transitcat/catalogue"
	"github.com/d-ulitin/transitcat/core"
	"github.com/d-ulitin/transitcat/geo"
	"github.com/d-ulitin/transitcat/transit"
)

var validate = validator.New()

// BuildBase drives core through a two-pass build: every stop is added
// first, then every inline road_distances entry (which may reference any
// other stop regardless of declaration order), and only then every bus,
// since a bus's stops must already exist.
func BuildBase(doc *MakeBaseDocument) (*core.Core, error) {
	if err := validate.Struct(doc); err != nil {
		return nil, fmt.Errorf("requestio: invalid make_base document: %w", err)
	}

	c := core.New(nil)
	stopHandles := make(map[string]catalogue.StopHandle)

	for _, req := range doc.BaseRequests {
		if req.Type != "Stop" {
			continue
		}
		h, err := c.AddStop(req.Name, geo.Coordinates{Lat: req.Latitude, Lng: req.Longitude})
		if err != nil {
			return nil, fmt.Errorf("requestio: add_stop %q: %w", req.Name, err)
		}
		stopHandles[req.Name] = h
	}

	for _, req := range doc.BaseRequests {
		if req.Type != "Stop" {
			continue
		}
		from, ok := stopHandles[req.Name]
		if !ok {
			continue
		}
		for otherName, metres := range req.RoadDistances {
			to, ok := stopHandles[otherName]
			if !ok {
				return nil, fmt.Errorf("requestio: road_distances of %q references unknown stop %q", req.Name, otherName)
			}
			c.AddDistance(from, to, uint32(metres))
		}
	}

	for _, req := range doc.BaseRequests {
		if req.Type != "Bus" {
			continue
		}
		stops := make([]catalogue.StopHandle, len(req.Stops))
		for i, name := range req.Stops {
			h, ok := stopHandles[name]
			if !ok {
				return nil, fmt.Errorf("requestio: bus %q references unknown stop %q", req.Name, name)
			}
			stops[i] = h
		}
		kind := catalogue.Linear
		if req.IsRoundtrip {
			kind = catalogue.Circular
		}
		if _, err := c.AddBus(req.Name, stops, kind); err != nil {
			return nil, fmt.Errorf("requestio: add_bus %q: %w", req.Name, err)
		}
	}

	settings := transit.Settings{
		BusWaitTime: doc.RoutingSettings.BusWaitTime,
		BusVelocity: int(doc.RoutingSettings.BusVelocity),
	}
	if err := c.FreezeAndBuildRouter(settings); err != nil {
		return nil, fmt.Errorf("requestio: %w", err)
	}
	return c, nil
}
