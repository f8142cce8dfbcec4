package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/d-ulitin/transitcat/catalogue"
	"github.com/d-ulitin/transitcat/geo"
)

// Render draws every bus route and every stop served by at least one bus
// onto an SVG canvas sized and styled by settings. Buses and stops are
// visited in lexicographic name order so the output is deterministic
// regardless of catalogue insertion order.
func Render(cat *catalogue.Catalogue, settings Settings) string {
	buses := sortedBuses(cat)
	stops := usedStopsSorted(cat, buses)

	points := make([]geo.Coordinates, len(stops))
	for i, s := range stops {
		points[i] = cat.Stop(s).Coordinates
	}
	proj := newProjector(points, settings.Width, settings.Height, settings.Padding)

	var b strings.Builder
	fmt.Fprintf(&b, `<?xml version="1.0" encoding="UTF-8" ?>`)
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" version="1.1" width="%g" height="%g">`,
		settings.Width, settings.Height)

	renderBusLines(&b, cat, buses, proj, settings)
	renderBusLabels(&b, cat, buses, proj, settings)
	renderStopSymbols(&b, cat, stops, proj, settings)
	renderStopLabels(&b, cat, stops, proj, settings)

	b.WriteString(`</svg>`)
	return b.String()
}

func sortedBuses(cat *catalogue.Catalogue) []catalogue.BusHandle {
	buses := cat.Buses()
	sort.Slice(buses, func(i, j int) bool {
		return cat.Bus(buses[i]).Name < cat.Bus(buses[j]).Name
	})
	return buses
}

func usedStopsSorted(cat *catalogue.Catalogue, buses []catalogue.BusHandle) []catalogue.StopHandle {
	seen := make(map[catalogue.StopHandle]struct{})
	for _, bh := range buses {
		for _, s := range cat.Bus(bh).Stops {
			seen[s] = struct{}{}
		}
	}
	stops := make([]catalogue.StopHandle, 0, len(seen))
	for s := range seen {
		stops = append(stops, s)
	}
	sort.Slice(stops, func(i, j int) bool {
		return cat.Stop(stops[i]).Name < cat.Stop(stops[j]).Name
	})
	return stops
}

func paletteColor(settings Settings, i int) Color {
	if len(settings.Palette) == 0 {
		return Named("black")
	}
	return settings.Palette[i%len(settings.Palette)]
}

func renderBusLines(b *strings.Builder, cat *catalogue.Catalogue, buses []catalogue.BusHandle, proj projector, settings Settings) {
	for i, bh := range buses {
		bus := cat.Bus(bh)
		if len(bus.Stops) < 2 {
			continue
		}
		color := paletteColor(settings, i)
		fmt.Fprintf(b, `<polyline points="`)
		for j, s := range bus.Stops {
			if j > 0 {
				b.WriteByte(' ')
			}
			x, y := proj.project(cat.Stop(s).Coordinates)
			fmt.Fprintf(b, "%g,%g", x, y)
		}
		fmt.Fprintf(b, `" fill="none" stroke="%s" stroke-width="%g" stroke-linecap="round" stroke-linejoin="round"/>`,
			color.svgAttr(), settings.LineWidth)
	}
}

func renderBusLabel(b *strings.Builder, name string, coord geo.Coordinates, proj projector, color Color, settings Settings) {
	x, y := proj.project(coord)
	dx, dy := settings.BusLabelOffset[0], settings.BusLabelOffset[1]
	underlay := settings.UnderlayColor.svgAttr()
	fmt.Fprintf(b, `<text fill="%s" stroke="%s" stroke-width="%g" stroke-linecap="round" stroke-linejoin="round" x="%g" y="%g" dx="%g" dy="%g" font-size="%d" font-weight="bold">%s</text>`,
		underlay, underlay, settings.UnderlayStrokeWidth, x, y, dx, dy, settings.BusLabelFontSize, escapeText(name))
	fmt.Fprintf(b, `<text fill="%s" x="%g" y="%g" dx="%g" dy="%g" font-size="%d" font-weight="bold">%s</text>`,
		color.svgAttr(), x, y, dx, dy, settings.BusLabelFontSize, escapeText(name))
}

func renderBusLabels(b *strings.Builder, cat *catalogue.Catalogue, buses []catalogue.BusHandle, proj projector, settings Settings) {
	for i, bh := range buses {
		bus := cat.Bus(bh)
		if len(bus.Stops) == 0 {
			continue
		}
		color := paletteColor(settings, i)
		first := bus.Stops[0]
		renderBusLabel(b, bus.Name, cat.Stop(first).Coordinates, proj, color, settings)

		last := bus.Stops[len(bus.Stops)-1]
		if bus.Kind == catalogue.Linear && last != first {
			renderBusLabel(b, bus.Name, cat.Stop(last).Coordinates, proj, color, settings)
		}
	}
}

func renderStopSymbols(b *strings.Builder, cat *catalogue.Catalogue, stops []catalogue.StopHandle, proj projector, settings Settings) {
	for _, s := range stops {
		x, y := proj.project(cat.Stop(s).Coordinates)
		fmt.Fprintf(b, `<circle cx="%g" cy="%g" r="%g" fill="white"/>`, x, y, settings.StopRadius)
	}
}

func renderStopLabels(b *strings.Builder, cat *catalogue.Catalogue, stops []catalogue.StopHandle, proj projector, settings Settings) {
	underlay := settings.UnderlayColor.svgAttr()
	for _, s := range stops {
		stop := cat.Stop(s)
		x, y := proj.project(stop.Coordinates)
		dx, dy := settings.StopLabelOffset[0], settings.StopLabelOffset[1]
		fmt.Fprintf(b, `<text fill="%s" stroke="%s" stroke-width="%g" stroke-linecap="round" stroke-linejoin="round" x="%g" y="%g" dx="%g" dy="%g" font-size="%d">%s</text>`,
			underlay, underlay, settings.UnderlayStrokeWidth, x, y, dx, dy, settings.StopLabelFontSize, escapeText(stop.Name))
		fmt.Fprintf(b, `<text fill="black" x="%g" y="%g" dx="%g" dy="%g" font-size="%d">%s</text>`,
			x, y, dx, dy, settings.StopLabelFontSize, escapeText(stop.Name))
	}
}

func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
