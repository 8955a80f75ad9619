// Package rendertest provides an in-memory render.Surface for tests.
package rendertest

import (
	"fmt"
	"sync"

	"tripmap/internal/geo"
	"tripmap/internal/render"
)

type Marker struct {
	Position geo.Coordinate
	Heading  float64
	Flipped  bool
	Content  render.MarkerContent
	Moves    int
}

type Polyline struct {
	Path  []geo.Coordinate
	Style render.PolylineStyle
}

type Fit struct {
	Bounds  geo.Bounds
	Padding render.Padding
}

// Recorder tracks live markers and polylines and keeps a log of every call.
type Recorder struct {
	mu        sync.Mutex
	markers   map[string]*Marker
	polylines map[string]*Polyline
	calls     []string
	fits      []Fit
	center    geo.Coordinate
	zoom      int
	panBy     [2]int
}

func NewRecorder() *Recorder {
	return &Recorder{
		markers:   make(map[string]*Marker),
		polylines: make(map[string]*Polyline),
	}
}

func (r *Recorder) record(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *Recorder) FitBounds(b geo.Bounds, p render.Padding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fits = append(r.fits, Fit{Bounds: b, Padding: p})
	r.record("fit")
}

func (r *Recorder) PanTo(c geo.Coordinate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.center = c
	r.record("pan %.5f,%.5f", c.Lat, c.Lng)
}

func (r *Recorder) SetZoom(zoom int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.zoom = zoom
	r.record("zoom %d", zoom)
}

func (r *Recorder) PanBy(dx, dy int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.panBy = [2]int{dx, dy}
	r.record("panBy %d,%d", dx, dy)
}

func (r *Recorder) AddPolyline(id string, path []geo.Coordinate, style render.PolylineStyle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.polylines[id] = &Polyline{Path: append([]geo.Coordinate(nil), path...), Style: style}
	r.record("addPolyline %s", id)
}

func (r *Recorder) RemovePolyline(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.polylines, id)
	r.record("removePolyline %s", id)
}

func (r *Recorder) AddMarker(id string, at geo.Coordinate, content render.MarkerContent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.markers[id] = &Marker{Position: at, Content: content}
	r.record("addMarker %s", id)
}

func (r *Recorder) MoveMarker(id string, at geo.Coordinate, heading float64, flipped bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.markers[id]
	if !ok {
		r.record("moveMarker %s (missing)", id)
		return
	}
	m.Position, m.Heading, m.Flipped = at, heading, flipped
	m.Moves++
}

func (r *Recorder) RemoveMarker(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.markers, id)
	r.record("removeMarker %s", id)
}

// Marker returns a copy of the live marker with id.
func (r *Recorder) Marker(id string) (Marker, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.markers[id]
	if !ok {
		return Marker{}, false
	}
	return *m, true
}

func (r *Recorder) Polyline(id string) (Polyline, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.polylines[id]
	if !ok {
		return Polyline{}, false
	}
	return *p, true
}

func (r *Recorder) MarkerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.markers)
}

func (r *Recorder) PolylineCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.polylines)
}

// Fits returns every FitBounds request in order.
func (r *Recorder) Fits() []Fit {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Fit(nil), r.fits...)
}

// Calls returns the call log; marker moves are not logged.
func (r *Recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *Recorder) Center() geo.Coordinate {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.center
}

func (r *Recorder) Zoom() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.zoom
}

func (r *Recorder) PannedBy() (dx, dy int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.panBy[0], r.panBy[1]
}

// Reset clears the call log and fits but keeps live state.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
	r.fits = nil
}
