package engine

import (
	"errors"
	"log"

	"tripmap/internal/camera"
	"tripmap/internal/geo"
	"tripmap/internal/render"
	"tripmap/internal/routes"
	"tripmap/internal/trip"
)

type ViewOptions struct {
	// BottomPadding is the height in pixels of a panel covering the bottom
	// of the map.
	BottomPadding int
	Animation     AnimationConfig
	Metrics       Metrics
}

// View is one trip shown on one surface. It keeps the drawn scene in sync
// with trip data, filter and active waypoint, and routes clicks to the
// animation controller. All methods must run on the scheduler's goroutine.
type View struct {
	surface  render.Surface
	follower *camera.Follower
	anim     *Controller
	metrics  Metrics

	trip     *trip.Trip
	index    *routes.Index
	filter   routes.FilterState
	activeID string
	scene    routes.Scene

	polylines map[string]bool
	markers   map[string]bool

	// set while a View method runs, so ownership release inside it does
	// not trigger a competing follow
	busy bool
}

func NewView(sched Scheduler, surface render.Surface, t *trip.Trip, opts ViewOptions) *View {
	if opts.Animation == (AnimationConfig{}) {
		opts.Animation = DefaultAnimationConfig()
	}
	v := &View{
		surface:   surface,
		follower:  camera.NewFollower(surface, opts.BottomPadding),
		metrics:   opts.Metrics,
		polylines: make(map[string]bool),
		markers:   make(map[string]bool),
	}
	v.anim = NewController(sched, surface, nil,
		WithAnimationConfig(opts.Animation),
		WithMetrics(opts.Metrics),
		WithOwnershipHandler(v.ownershipChanged),
	)
	v.SetTrip(t)
	return v
}

// SetTrip replaces the trip data, resets the filter to show everything and
// reframes the map.
func (v *View) SetTrip(t *trip.Trip) {
	defer v.enter()()
	v.trip = t
	v.index = routes.NewIndex(t)
	v.reportDropped()
	v.anim.SetIndex(v.index)

	var groups []trip.RouteGroup
	if t != nil {
		groups = t.RouteGroups
	}
	v.filter = routes.DefaultFilterState(groups)
	v.activeID = ""
	v.redraw()
}

func (v *View) SetFilter(f routes.FilterState) {
	defer v.enter()()
	v.anim.Cancel()
	v.filter = f
	v.redraw()
}

// ToggleFilter flips one group id (or "shared") in the filter.
func (v *View) ToggleFilter(groupID string) {
	v.SetFilter(v.filter.Toggle(groupID))
}

// Hover marks id active, or clears the active waypoint when id is empty.
func (v *View) Hover(id string) {
	defer v.enter()()
	v.setActive(id)
	v.follow(id)
}

// Click marks id active and feeds it to the animation controller. When no
// animation starts, the camera follows the waypoint instead.
func (v *View) Click(id string) {
	defer v.enter()()
	v.setActive(id)
	v.anim.Click(id)
	v.follow(id)
}

// Close removes everything the view drew.
func (v *View) Close() {
	defer v.enter()()
	v.anim.Close()
	for id := range v.polylines {
		v.surface.RemovePolyline(id)
	}
	for id := range v.markers {
		v.surface.RemoveMarker(id)
	}
	v.polylines = make(map[string]bool)
	v.markers = make(map[string]bool)
	v.scene = routes.Scene{}
}

func (v *View) Scene() routes.Scene        { return v.scene }
func (v *View) Filter() routes.FilterState { return v.filter }
func (v *View) Index() *routes.Index       { return v.index }
func (v *View) ActiveID() string           { return v.activeID }
func (v *View) CameraOwned() bool          { return v.anim.CameraOwned() }
func (v *View) Animation() *Controller     { return v.anim }

func (v *View) enter() func() {
	v.busy = true
	return func() { v.busy = false }
}

func (v *View) ownershipChanged(owned bool) {
	if owned || v.busy {
		return
	}
	// an animation finished on its own: return to the active waypoint
	v.follow(v.activeID)
}

func (v *View) follow(id string) {
	if id == "" {
		return
	}
	for _, w := range v.scene.Waypoints {
		if w.Waypoint.ID == id {
			v.follower.Follow(w.Position(), v.anim.CameraOwned())
			return
		}
	}
}

func (v *View) setActive(id string) {
	if id == v.activeID {
		return
	}
	prev := v.activeID
	v.activeID = id
	for i := range v.scene.Waypoints {
		w := &v.scene.Waypoints[i]
		switch w.Waypoint.ID {
		case prev:
			w.Active = false
		case id:
			w.Active = true
		default:
			continue
		}
		v.drawWaypoint(*w)
	}
}

func (v *View) redraw() {
	v.scene = routes.BuildScene(v.trip, v.index, v.filter, v.activeID)

	for id := range v.polylines {
		v.surface.RemovePolyline(id)
	}
	v.polylines = make(map[string]bool)
	for _, p := range v.scene.Polylines {
		v.surface.AddPolyline(p.ID, p.Path, render.PolylineStyle{
			Color:    p.Color,
			Opacity:  p.Opacity,
			Weight:   p.Weight,
			Geodesic: p.Geodesic,
		})
		v.polylines[p.ID] = true
	}

	visible := make(map[string]bool, len(v.scene.Waypoints))
	for _, w := range v.scene.Waypoints {
		visible[markerID(w.Waypoint.ID)] = true
	}
	for id := range v.markers {
		if !visible[id] {
			v.surface.RemoveMarker(id)
			delete(v.markers, id)
		}
	}
	for _, w := range v.scene.Waypoints {
		v.drawWaypoint(w)
	}

	camera.FrameAll(v.surface, v.scene.Coordinates(), v.follower.BottomPadding())
}

func (v *View) drawWaypoint(w routes.WaypointView) {
	id := markerID(w.Waypoint.ID)
	z := 1
	if w.Active {
		z = 100
	}
	v.surface.AddMarker(id, w.Position(), render.MarkerContent{
		Label:  w.Waypoint.Title,
		Emoji:  w.Waypoint.Category.Emoji(),
		Active: w.Active,
		ZIndex: z,
	})
	v.markers[id] = true
}

func (v *View) reportDropped() {
	if v.trip == nil {
		return
	}
	for _, d := range v.index.Dropped() {
		log.Printf("trip %s: route %s not renderable: %v", v.trip.ID, d.Key, d.Err)
		if v.metrics != nil {
			v.metrics.SegmentDropped(dropReason(d.Err))
		}
	}
}

func dropReason(err error) string {
	var decodeErr *geo.DecodeError
	switch {
	case errors.As(err, &decodeErr):
		return "decode"
	case errors.Is(err, routes.ErrMissingCoordinate):
		return "missing_coordinate"
	default:
		return "unknown_endpoint"
	}
}

func markerID(waypointID string) string { return "wp:" + waypointID }
