package requestio

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/d-ulitin/transitcat/render"
)

const sampleBase = `{
  "base_requests": [
    {"type": "Stop", "name": "A", "latitude": 55.611, "longitude": 37.20, "road_distances": {"B": 1000}},
    {"type": "Stop", "name": "B", "latitude": 55.595, "longitude": 37.20, "road_distances": {"A": 1000}},
    {"type": "Bus", "name": "297", "stops": ["A", "B"], "is_roundtrip": false}
  ],
  "render_settings": {
    "width": 200,
    "height": 200,
    "padding": 30,
    "line_width": 14,
    "stop_radius": 5,
    "bus_label_font_size": 20,
    "bus_label_offset": [7, 15],
    "stop_label_font_size": 18,
    "stop_label_offset": [7, -3],
    "underlayer_color": [255, 255, 255, 0.85],
    "underlayer_width": 3,
    "color_palette": ["green", [255, 160, 0]]
  },
  "routing_settings": {
    "bus_wait_time": 6,
    "bus_velocity": 40
  },
  "serialization_settings": {
    "file": "base.bin"
  }
}`

func TestBuildBaseAndAnswer(t *testing.T) {
	doc, err := ReadMakeBase(strings.NewReader(sampleBase))
	if err != nil {
		t.Fatalf("ReadMakeBase: %v", err)
	}
	c, err := BuildBase(doc)
	if err != nil {
		t.Fatalf("BuildBase: %v", err)
	}

	statDoc := &ProcessRequestsDocument{
		SerializationSettings: SerializationSettingsDoc{File: "base.bin"},
		StatRequests: []StatRequest{
			{ID: 1, Type: "Bus", Name: "297"},
			{ID: 2, Type: "Stop", Name: "A"},
			{ID: 3, Type: "Stop", Name: "nope"},
			{ID: 4, Type: "Route", From: "A", To: "B"},
			{ID: 5, Type: "Map"},
		},
	}
	responses, err := Answer(c, doc.RenderSettings.ToSettings(), statDoc)
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if len(responses) != 5 {
		t.Fatalf("expected 5 responses, got %d", len(responses))
	}

	bus := responses[0]
	if bus["stop_count"] != 3 || bus["unique_stop_count"] != 2 {
		t.Errorf("bus response = %+v", bus)
	}

	stop := responses[1]
	buses, ok := stop["buses"].([]string)
	if !ok || len(buses) != 1 || buses[0] != "297" {
		t.Errorf("stop response = %+v", stop)
	}

	notFoundResp := responses[2]
	if notFoundResp["error_message"] != notFound {
		t.Errorf("expected not-found response, got %+v", notFoundResp)
	}

	route := responses[3]
	if route["total_time"] == nil {
		t.Errorf("route response missing total_time: %+v", route)
	}
	items, ok := route["items"].([]map[string]any)
	if !ok || len(items) != 2 {
		t.Fatalf("route items = %+v", route["items"])
	}
	if items[0]["type"] != "Wait" || items[1]["type"] != "Bus" {
		t.Errorf("route items = %+v", items)
	}

	mapResp := responses[4]
	svg, ok := mapResp["map"].(string)
	if !ok || !strings.Contains(svg, "<svg") {
		t.Errorf("map response missing svg: %+v", mapResp)
	}

	// Confirm the response set marshals cleanly, matching the transport
	// shape a client would receive.
	var buf bytes.Buffer
	if err := WriteResponses(&buf, responses); err != nil {
		t.Fatalf("WriteResponses: %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
}

func TestColorUnmarshalString(t *testing.T) {
	var c Color
	if err := json.Unmarshal([]byte(`"green"`), &c); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Value.(render.Named); !ok {
		t.Errorf("expected render.Named, got %T", c.Value)
	}
}

func TestColorUnmarshalRGB(t *testing.T) {
	var c Color
	if err := json.Unmarshal([]byte(`[255, 160, 0]`), &c); err != nil {
		t.Fatal(err)
	}
}

func TestColorUnmarshalRGBA(t *testing.T) {
	var c Color
	if err := json.Unmarshal([]byte(`[255, 160, 0, 0.85]`), &c); err != nil {
		t.Fatal(err)
	}
}

func TestColorUnmarshalInvalidLength(t *testing.T) {
	var c Color
	if err := json.Unmarshal([]byte(`[1, 2]`), &c); err == nil {
		t.Fatal("expected error for 2-element color array")
	}
}
