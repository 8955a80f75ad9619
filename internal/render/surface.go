// Package render defines the capabilities the engine needs from a map
// rendering surface. Adapters own their error handling; nothing here
// returns an error into the core.
package render

import "tripmap/internal/geo"

// Padding is per-edge pixel padding for bounds fitting.
type Padding struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

func UniformPadding(px int) Padding { return Padding{Top: px, Right: px, Bottom: px, Left: px} }

type PolylineStyle struct {
	Color    string  `json:"color"`
	Opacity  float64 `json:"opacity"`
	Weight   int     `json:"weight"`
	Geodesic bool    `json:"geodesic,omitempty"`
	ZIndex   int     `json:"zIndex,omitempty"`
}

// MarkerContent is the visual payload of a marker. Waypoint markers use
// Label/Emoji; the animated marker uses Sprite.
type MarkerContent struct {
	Label  string `json:"label,omitempty"`
	Emoji  string `json:"emoji,omitempty"`
	Sprite string `json:"sprite,omitempty"`
	Size   int    `json:"size,omitempty"`
	Active bool   `json:"active,omitempty"`
	ZIndex int    `json:"zIndex,omitempty"`
}

// Camera moves the viewport.
type Camera interface {
	FitBounds(b geo.Bounds, p Padding)
	PanTo(c geo.Coordinate)
	SetZoom(zoom int)
	PanBy(dx, dy int)
}

// Layers draws polylines and markers. AddMarker replaces a marker with the
// same id.
type Layers interface {
	AddPolyline(id string, path []geo.Coordinate, style PolylineStyle)
	RemovePolyline(id string)
	AddMarker(id string, at geo.Coordinate, content MarkerContent)
	MoveMarker(id string, at geo.Coordinate, heading float64, flipped bool)
	RemoveMarker(id string)
}

type Surface interface {
	Camera
	Layers
}
