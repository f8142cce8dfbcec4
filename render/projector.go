package render

import "github.com/d-ulitin/transitcat/geo"

// projector maps geographic coordinates onto the SVG canvas, fitting the
// bounding box of every stop into (width, height) minus padding on all
// sides while preserving aspect ratio. This mirrors the sphere-to-plane
// projection the original map renderer applies before drawing anything.
type projector struct {
	minLng, maxLat float64
	zoom           float64
	padding        float64
}

func isZero(v float64) bool {
	const eps = 1e-6
	return v < eps && v > -eps
}

func newProjector(points []geo.Coordinates, width, height, padding float64) projector {
	if len(points) == 0 {
		return projector{padding: padding}
	}

	minLng, maxLng := points[0].Lng, points[0].Lng
	minLat, maxLat := points[0].Lat, points[0].Lat
	for _, p := range points[1:] {
		if p.Lng < minLng {
			minLng = p.Lng
		}
		if p.Lng > maxLng {
			maxLng = p.Lng
		}
		if p.Lat < minLat {
			minLat = p.Lat
		}
		if p.Lat > maxLat {
			maxLat = p.Lat
		}
	}

	var widthZoom, heightZoom float64
	haveWidthZoom, haveHeightZoom := false, false
	if !isZero(maxLng - minLng) {
		widthZoom = (width - 2*padding) / (maxLng - minLng)
		haveWidthZoom = true
	}
	if !isZero(maxLat - minLat) {
		heightZoom = (height - 2*padding) / (maxLat - minLat)
		haveHeightZoom = true
	}

	var zoom float64
	switch {
	case haveWidthZoom && haveHeightZoom:
		zoom = min(widthZoom, heightZoom)
	case haveWidthZoom:
		zoom = widthZoom
	case haveHeightZoom:
		zoom = heightZoom
	default:
		zoom = 0
	}

	return projector{minLng: minLng, maxLat: maxLat, zoom: zoom, padding: padding}
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// project converts a coordinate into an SVG (x, y) pair.
func (p projector) project(c geo.Coordinates) (x, y float64) {
	x = (c.Lng-p.minLng)*p.zoom + p.padding
	y = (p.maxLat-c.Lat)*p.zoom + p.padding
	return x, y
}
