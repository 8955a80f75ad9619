package camera

import (
	"tripmap/internal/geo"
	"tripmap/internal/render"
)

const (
	// OverviewPadding frames all visible waypoints.
	OverviewPadding = 50
	// RoutePadding frames a route before it is animated.
	RoutePadding = 60
)

// Viewport is a bounds-fit request.
type Viewport struct {
	Bounds  geo.Bounds
	Padding render.Padding
}

// BoundsFor returns the minimal rectangle enclosing coords with padding.
// ok is false when there is nothing to frame.
func BoundsFor(coords []geo.Coordinate, padding render.Padding) (Viewport, bool) {
	b, ok := geo.BoundsOf(coords)
	if !ok {
		return Viewport{}, false
	}
	return Viewport{Bounds: b, Padding: padding}, true
}

// Fit asks cam to show coords. It does nothing for an empty input.
func Fit(cam render.Camera, coords []geo.Coordinate, padding render.Padding) bool {
	vp, ok := BoundsFor(coords, padding)
	if !ok {
		return false
	}
	cam.FitBounds(vp.Bounds, vp.Padding)
	return true
}

// FrameAll frames every visible waypoint, leaving room for a bottom panel.
func FrameAll(cam render.Camera, coords []geo.Coordinate, bottomPadding int) bool {
	if bottomPadding <= 0 {
		bottomPadding = OverviewPadding
	}
	return Fit(cam, coords, render.Padding{
		Top:    OverviewPadding,
		Right:  OverviewPadding,
		Bottom: bottomPadding,
		Left:   OverviewPadding,
	})
}
