package routes

import (
	"fmt"

	"tripmap/internal/geo"
	"tripmap/internal/trip"
)

// DefaultCenter is used when nothing is visible.
var DefaultCenter = geo.Coordinate{Lat: 35.6762, Lng: 139.6503}

const (
	routeOpacity = 0.8
	routeWeight  = 4
)

type WaypointView struct {
	Waypoint trip.Waypoint
	Active   bool
}

func (w WaypointView) Position() geo.Coordinate { return *w.Waypoint.Coordinates }

type PolylineView struct {
	ID       string
	Path     []geo.Coordinate
	Color    string
	Opacity  float64
	Weight   int
	Geodesic bool
}

// Scene is everything that should currently be drawn for a trip.
type Scene struct {
	Waypoints []WaypointView
	Polylines []PolylineView
	Center    geo.Coordinate
}

// Coordinates returns the positions of all visible waypoints.
func (s Scene) Coordinates() []geo.Coordinate {
	out := make([]geo.Coordinate, 0, len(s.Waypoints))
	for _, w := range s.Waypoints {
		out = append(out, w.Position())
	}
	return out
}

// BuildScene resolves visible waypoints and colored route polylines for the
// filter. Days without driving routes get one straight geodesic line
// through their located, non-flight waypoints.
func BuildScene(t *trip.Trip, idx *Index, f FilterState, activeID string) Scene {
	var s Scene
	if t == nil {
		s.Center = DefaultCenter
		return s
	}
	for _, w := range FilterWaypoints(t.Waypoints(), f) {
		if w.Coordinates == nil {
			continue
		}
		s.Waypoints = append(s.Waypoints, WaypointView{Waypoint: w, Active: w.ID == activeID})
	}
	s.Center = geo.Center(s.Coordinates(), DefaultCenter)

	waypoints := t.WaypointsByID()
	routed := make(map[int]bool)
	for _, seg := range t.Segments() {
		routed[seg.DayIndex] = true
	}
	for _, e := range idx.Entries() {
		if !IsSegmentVisible(e.Segment, waypoints, f) {
			continue
		}
		s.Polylines = append(s.Polylines, PolylineView{
			ID:      "route:" + e.Key(),
			Path:    e.Path,
			Color:   e.Color,
			Opacity: routeOpacity,
			Weight:  routeWeight,
		})
	}

	for i, d := range t.Days {
		if routed[i] {
			continue
		}
		var path []geo.Coordinate
		for _, w := range d.Activities {
			if w.Coordinates == nil || w.Category == trip.CategoryFlight || !IsWaypointVisible(w, f) {
				continue
			}
			path = append(path, *w.Coordinates)
		}
		if len(path) < 2 {
			continue
		}
		s.Polylines = append(s.Polylines, PolylineView{
			ID:       fmt.Sprintf("day:%d", i),
			Path:     path,
			Color:    trip.DayColor(i),
			Opacity:  routeOpacity,
			Weight:   routeWeight,
			Geodesic: true,
		})
	}
	return s
}
