package requestio

import (
	"github.com/d-ulitin/transitcat/core"
	"github.com/d-ulitin/transitcat/render"
	"github.com/d-ulitin/transitcat/transit"
)

// notFound is the fixed error_message for any stat request naming an
// entity the catalogue does not have: unknown entities at query time are
// answers, not transport failures.
const notFound = "not found"

// Answer processes every request in doc against c and returns one response
// document per request, in request order. renderSettings comes from the
// serialized base, not from the request document, since a map is rendered
// with the settings fixed at make_base time.
func Answer(c *core.Core, renderSettings render.Settings, doc *ProcessRequestsDocument) ([]map[string]any, error) {
	if err := validate.Struct(doc); err != nil {
		return nil, err
	}
	responses := make([]map[string]any, 0, len(doc.StatRequests))
	for _, req := range doc.StatRequests {
		responses = append(responses, answerOne(c, renderSettings, req))
	}
	return responses, nil
}

func answerOne(c *core.Core, renderSettings render.Settings, req StatRequest) map[string]any {
	switch req.Type {
	case "Bus":
		return busResponse(c, req)
	case "Stop":
		return stopResponse(c, req)
	case "Map":
		return mapResponse(c, renderSettings, req)
	case "Route":
		return routeResponse(c, req)
	default:
		return map[string]any{"request_id": req.ID, "error_message": notFound}
	}
}

func busResponse(c *core.Core, req StatRequest) map[string]any {
	report, found := c.BusReport(req.Name)
	if !found {
		return map[string]any{"request_id": req.ID, "error_message": notFound}
	}
	return map[string]any{
		"request_id":        req.ID,
		"route_length":      report.RouteLength,
		"stop_count":        report.StopCount,
		"unique_stop_count": report.UniqueStopCount,
		"curvature":         report.Curvature,
	}
}

func stopResponse(c *core.Core, req StatRequest) map[string]any {
	buses, found := c.StopReport(req.Name)
	if !found {
		return map[string]any{"request_id": req.ID, "error_message": notFound}
	}
	if buses == nil {
		buses = []string{}
	}
	return map[string]any{
		"request_id": req.ID,
		"buses":      buses,
	}
}

func mapResponse(c *core.Core, renderSettings render.Settings, req StatRequest) map[string]any {
	return map[string]any{
		"request_id": req.ID,
		"map":        c.Render(renderSettings),
	}
}

func routeResponse(c *core.Core, req StatRequest) map[string]any {
	itinerary, found := c.Route(req.From, req.To)
	if !found {
		return map[string]any{"request_id": req.ID, "error_message": notFound}
	}
	items := make([]map[string]any, 0, len(itinerary.Activities))
	for _, act := range itinerary.Activities {
		items = append(items, activityItem(c, act))
	}
	return map[string]any{
		"request_id": req.ID,
		"total_time": itinerary.TotalTime,
		"items":      items,
	}
}

func activityItem(c *core.Core, act transit.Activity) map[string]any {
	switch a := act.(type) {
	case transit.Wait:
		return map[string]any{
			"type":      "Wait",
			"stop_name": c.StopName(a.Stop),
			"time":      a.Minutes,
		}
	case transit.Ride:
		return map[string]any{
			"type":       "Bus",
			"bus":        c.BusName(a.Bus),
			"span_count": a.Span,
			"time":       a.Minutes,
		}
	default:
		return map[string]any{"type": "unknown"}
	}
}
