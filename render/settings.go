// Package render turns a frozen catalogue into a stylised SVG map. It sits
// outside core, but the Settings it consumes are part of the persisted
// base and travel alongside the catalogue and routing settings.
package render

import "fmt"

// Color is a closed sum type with three alternatives, matching the
// svg::Color variant of the original renderer.
type Color interface {
	svgAttr() string
}

// Named is a CSS/SVG named colour, e.g. "green".
type Named string

func (c Named) svgAttr() string { return string(c) }

// RGB is an opaque 8-bit-per-channel colour.
type RGB struct {
	R, G, B uint8
}

func (c RGB) svgAttr() string { return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B) }

// RGBA is an RGB colour with an alpha channel in [0,1].
type RGBA struct {
	R, G, B uint8
	A       float64
}

func (c RGBA) svgAttr() string { return fmt.Sprintf("rgba(%d,%d,%d,%g)", c.R, c.G, c.B, c.A) }

// Settings are the render parameters, serialised verbatim as part of the
// persisted base.
type Settings struct {
	Width   float64
	Height  float64
	Padding float64

	LineWidth  float64
	StopRadius float64

	BusLabelFontSize int
	BusLabelOffset   [2]float64

	StopLabelFontSize int
	StopLabelOffset   [2]float64

	UnderlayColor       Color
	UnderlayStrokeWidth float64

	Palette []Color
}
