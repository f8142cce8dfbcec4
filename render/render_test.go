package render

import (
	"strings"
	"testing"

	"github.com/d-ulitin/transitcat/catalogue"
	"github.com/d-ulitin/transitcat/geo"
)

func testSettings() Settings {
	return Settings{
		Width: 600, Height: 400, Padding: 10,
		LineWidth: 3, StopRadius: 4,
		BusLabelFontSize: 12, BusLabelOffset: [2]float64{7, 15},
		StopLabelFontSize: 10, StopLabelOffset: [2]float64{7, -3},
		UnderlayColor:       RGBA{R: 255, G: 255, B: 255, A: 0.85},
		UnderlayStrokeWidth: 2,
		Palette:             []Color{Named("green"), RGB{R: 255, G: 160, B: 0}},
	}
}

func TestRenderProducesWellFormedSVG(t *testing.T) {
	cat := catalogue.New()
	a, _ := cat.AddStop("A", geo.Coordinates{Lat: 10, Lng: 20})
	bStop, _ := cat.AddStop("B", geo.Coordinates{Lat: 11, Lng: 21})
	cat.AddDistance(a, bStop, 100)
	if _, err := cat.AddBus("Bus 1", []catalogue.StopHandle{a, bStop}, catalogue.Linear); err != nil {
		t.Fatal(err)
	}

	svg := Render(cat, testSettings())
	if !strings.HasPrefix(svg, "<?xml") {
		t.Fatalf("SVG missing XML header: %q", svg[:20])
	}
	if !strings.Contains(svg, "<svg") || !strings.Contains(svg, "</svg>") {
		t.Fatal("SVG missing root element")
	}
	if !strings.Contains(svg, "polyline") {
		t.Fatal("SVG missing route polyline")
	}
	if !strings.Contains(svg, "Bus 1") {
		t.Fatal("SVG missing bus label")
	}
}

func TestRenderEmptyCatalogue(t *testing.T) {
	cat := catalogue.New()
	svg := Render(cat, testSettings())
	if !strings.Contains(svg, "<svg") {
		t.Fatal("expected an svg root even with no data")
	}
}
