// Package requestio is the external request reader and response writer:
// it decodes the JSON document shapes into validated Go structs, drives
// core's facade, and encodes results back into the response shapes. It is
// intentionally outside core — core never imports encoding/json.
package requestio

import (
	"encoding/json"
	"fmt"

	"github.com/d-ulitin/transitcat/render"
)

// BaseRequest is one element of "base_requests": either a Stop or a Bus
// declaration.
type BaseRequest struct {
	Type string `json:"type" validate:"required,oneof=Stop Bus"`
	Name string `json:"name" validate:"required"`

	// Stop fields
	Latitude      float64        `json:"latitude"`
	Longitude     float64        `json:"longitude"`
	RoadDistances map[string]int `json:"road_distances,omitempty"`

	// Bus fields
	Stops       []string `json:"stops,omitempty"`
	IsRoundtrip bool     `json:"is_roundtrip"`
}

// StatRequest is one element of "stat_requests".
type StatRequest struct {
	ID   int    `json:"id" validate:"required"`
	Type string `json:"type" validate:"required,oneof=Bus Stop Map Route"`
	Name string `json:"name,omitempty"`
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// RoutingSettingsDoc is the wire shape of routing_settings.
type RoutingSettingsDoc struct {
	BusWaitTime int     `json:"bus_wait_time" validate:"required,min=1,max=1000"`
	BusVelocity float64 `json:"bus_velocity" validate:"required,min=1,max=1000"`
}

// SerializationSettingsDoc is the wire shape of serialization_settings.
type SerializationSettingsDoc struct {
	File string `json:"file" validate:"required"`
}

// Color is a colour that may arrive as a named string, an [r,g,b] triple,
// or an [r,g,b,a] quadruple.
type Color struct {
	Value render.Color
}

// UnmarshalJSON accepts a bare string or a JSON array of 3 or 4 numbers.
func (c *Color) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		c.Value = render.Named(name)
		return nil
	}
	var nums []float64
	if err := json.Unmarshal(data, &nums); err != nil {
		return fmt.Errorf("requestio: color must be a string or a 3/4-element array: %w", err)
	}
	switch len(nums) {
	case 3:
		c.Value = render.RGB{R: uint8(nums[0]), G: uint8(nums[1]), B: uint8(nums[2])}
	case 4:
		c.Value = render.RGBA{R: uint8(nums[0]), G: uint8(nums[1]), B: uint8(nums[2]), A: nums[3]}
	default:
		return fmt.Errorf("requestio: color array must have 3 or 4 elements, got %d", len(nums))
	}
	return nil
}

// RenderSettingsDoc is the wire shape of render_settings.
type RenderSettingsDoc struct {
	Width  float64 `json:"width" validate:"required,gt=0"`
	Height float64 `json:"height" validate:"required,gt=0"`

	Padding float64 `json:"padding"`

	LineWidth  float64 `json:"line_width"`
	StopRadius float64 `json:"stop_radius"`

	BusLabelFontSize int        `json:"bus_label_font_size"`
	BusLabelOffset   [2]float64 `json:"bus_label_offset"`

	StopLabelFontSize int        `json:"stop_label_font_size"`
	StopLabelOffset   [2]float64 `json:"stop_label_offset"`

	UnderlayerColor Color   `json:"underlayer_color" validate:"required"`
	UnderlayerWidth float64 `json:"underlayer_width"`

	ColorPalette []Color `json:"color_palette" validate:"required,min=1"`
}

// ToSettings converts the wire document into the domain render.Settings.
func (d RenderSettingsDoc) ToSettings() render.Settings {
	palette := make([]render.Color, len(d.ColorPalette))
	for i, c := range d.ColorPalette {
		palette[i] = c.Value
	}
	return render.Settings{
		Width:               d.Width,
		Height:              d.Height,
		Padding:             d.Padding,
		LineWidth:           d.LineWidth,
		StopRadius:          d.StopRadius,
		BusLabelFontSize:    d.BusLabelFontSize,
		BusLabelOffset:      d.BusLabelOffset,
		StopLabelFontSize:   d.StopLabelFontSize,
		StopLabelOffset:     d.StopLabelOffset,
		UnderlayColor:       d.UnderlayerColor.Value,
		UnderlayStrokeWidth: d.UnderlayerWidth,
		Palette:             palette,
	}
}

// MakeBaseDocument is the top-level document consumed by the make_base
// subcommand.
type MakeBaseDocument struct {
	BaseRequests          []BaseRequest            `json:"base_requests" validate:"required,dive"`
	RenderSettings        RenderSettingsDoc        `json:"render_settings" validate:"required"`
	RoutingSettings       RoutingSettingsDoc       `json:"routing_settings" validate:"required"`
	SerializationSettings SerializationSettingsDoc `json:"serialization_settings" validate:"required"`
}

// ProcessRequestsDocument is the top-level document consumed by the
// process_requests subcommand.
type ProcessRequestsDocument struct {
	SerializationSettings SerializationSettingsDoc `json:"serialization_settings" validate:"structonly"`
	StatRequests          []StatRequest            `json:"stat_requests" validate:"required,dive"`
}
