package engine

import (
	"log"
	"time"

	"tripmap/internal/camera"
	"tripmap/internal/geo"
	"tripmap/internal/render"
	"tripmap/internal/routes"
)

// State is the animation lifecycle phase.
type State int

const (
	Idle State = iota
	Priming
	Running
	Settling
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Priming:
		return "priming"
	case Running:
		return "running"
	case Settling:
		return "settling"
	}
	return "unknown"
}

// Skip reasons reported to Metrics.AnimationSkipped.
const (
	SkipNotConnected = "not_connected"
	SkipDegenerate   = "degenerate"
)

type AnimationConfig struct {
	Duration    time.Duration // marker travel time
	PrimeDelay  time.Duration // lets the camera fit settle before motion
	SettleDelay time.Duration // hold at the destination before cleanup
	FitPadding  int

	MarkerID   string
	PolylineID string
	Sprite     string
	SpriteSize int
}

func DefaultAnimationConfig() AnimationConfig {
	return AnimationConfig{
		Duration:    5000 * time.Millisecond,
		PrimeDelay:  300 * time.Millisecond,
		SettleDelay: 500 * time.Millisecond,
		FitPadding:  camera.RoutePadding,
		MarkerID:    "anim:marker",
		PolylineID:  "anim:route",
		Sprite:      "/nA3Up1.gif",
		SpriteSize:  48,
	}
}

// Metrics receives animation lifecycle events. All methods are optional via
// a nil Metrics.
type Metrics interface {
	AnimationStarted()
	AnimationCompleted()
	AnimationCanceled()
	AnimationSkipped(reason string)
	FrameObserve(d time.Duration)
	SegmentDropped(reason string)
}

// Controller animates a marker between two consecutively clicked waypoints.
// At most one animation exists per Controller; any new input tears the
// current one down before anything else happens.
type Controller struct {
	sched   Scheduler
	surface render.Surface
	index   *routes.Index
	cfg     AnimationConfig
	metrics Metrics

	onOwnership  func(owned bool)
	onTransition func(from, to State)

	previous string
	state    State
	closed   bool

	path      []geo.Coordinate
	profile   []float64
	startedAt time.Time
	last      geo.Sample

	cancelFrame func()
	cancelTimer func()
	hasMarker   bool
	hasPolyline bool
	owned       bool
}

type Option func(*Controller)

func WithAnimationConfig(cfg AnimationConfig) Option {
	return func(c *Controller) { c.cfg = cfg }
}

func WithMetrics(m Metrics) Option {
	return func(c *Controller) { c.metrics = m }
}

// WithOwnershipHandler is called whenever camera ownership is acquired or
// released.
func WithOwnershipHandler(fn func(owned bool)) Option {
	return func(c *Controller) { c.onOwnership = fn }
}

func WithTransitionHandler(fn func(from, to State)) Option {
	return func(c *Controller) { c.onTransition = fn }
}

func NewController(sched Scheduler, surface render.Surface, idx *routes.Index, opts ...Option) *Controller {
	if idx == nil {
		idx = routes.NewIndex(nil)
	}
	c := &Controller{
		sched:   sched,
		surface: surface,
		index:   idx,
		cfg:     DefaultAnimationConfig(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Controller) State() State { return c.state }

// CameraOwned reports whether an animation currently owns the camera.
func (c *Controller) CameraOwned() bool { return c.owned }

// LastSample is the most recent marker position and heading.
func (c *Controller) LastSample() geo.Sample { return c.last }

// Click feeds a waypoint click. The previous click and this one form a pair;
// if the index connects them an animation starts, otherwise nothing is shown.
func (c *Controller) Click(id string) {
	if c.closed {
		return
	}
	prev := c.previous
	c.previous = id
	c.Cancel()

	if prev == "" || id == "" || prev == id {
		return
	}
	path, entry, reversed, ok := c.index.Connect(prev, id)
	if !ok {
		c.skipped(SkipNotConnected)
		return
	}
	if len(path) < 2 {
		c.skipped(SkipDegenerate)
		return
	}
	log.Printf("animating %s -> %s (segment %s, reversed=%t, %d points)", prev, id, entry.Key(), reversed, len(path))
	c.prime(path, entry.Color)
}

// Cancel stops whatever is in flight and removes everything it drew. It
// keeps the click memory.
func (c *Controller) Cancel() {
	active := c.state != Idle
	c.teardown()
	c.setState(Idle)
	if active && c.metrics != nil {
		c.metrics.AnimationCanceled()
	}
}

// SetIndex swaps the route index after a trip change. The running
// animation and the click memory are discarded.
func (c *Controller) SetIndex(idx *routes.Index) {
	c.Cancel()
	if idx == nil {
		idx = routes.NewIndex(nil)
	}
	c.index = idx
	c.previous = ""
}

// Close tears everything down and ignores further clicks.
func (c *Controller) Close() {
	c.Cancel()
	c.previous = ""
	c.closed = true
}

func (c *Controller) prime(path []geo.Coordinate, color string) {
	c.path = path
	c.profile = geo.CumulativeProfile(path)
	c.setState(Priming)
	c.acquire()

	camera.Fit(c.surface, path, render.UniformPadding(c.cfg.FitPadding))
	c.surface.AddPolyline(c.cfg.PolylineID, path, render.PolylineStyle{
		Color:   color,
		Opacity: 1,
		Weight:  6,
		ZIndex:  150,
	})
	c.hasPolyline = true
	c.surface.AddMarker(c.cfg.MarkerID, path[0], render.MarkerContent{
		Sprite: c.cfg.Sprite,
		Size:   c.cfg.SpriteSize,
		ZIndex: 200,
	})
	c.hasMarker = true
	c.last = geo.Sample{Point: path[0]}

	if c.metrics != nil {
		c.metrics.AnimationStarted()
	}
	c.cancelTimer = c.sched.AfterFunc(c.cfg.PrimeDelay, c.run)
}

func (c *Controller) run() {
	c.cancelTimer = nil
	c.setState(Running)
	c.startedAt = c.sched.Now()
	c.cancelFrame = c.sched.RequestFrame(c.frame)
}

func (c *Controller) frame(now time.Time) {
	c.cancelFrame = nil
	start := time.Now()

	progress := 1.0
	if c.cfg.Duration > 0 {
		progress = float64(now.Sub(c.startedAt)) / float64(c.cfg.Duration)
	}
	progress = min(max(progress, 0), 1)

	s := geo.InterpolateAt(c.path, c.profile, EaseInOutCubic(progress))
	c.surface.MoveMarker(c.cfg.MarkerID, s.Point, s.HeadingDegrees, s.Backward())
	c.last = s

	if c.metrics != nil {
		c.metrics.FrameObserve(time.Since(start))
	}
	if progress < 1 {
		c.cancelFrame = c.sched.RequestFrame(c.frame)
		return
	}
	c.setState(Settling)
	c.cancelTimer = c.sched.AfterFunc(c.cfg.SettleDelay, c.finish)
}

func (c *Controller) finish() {
	c.cancelTimer = nil
	c.teardown()
	c.setState(Idle)
	if c.metrics != nil {
		c.metrics.AnimationCompleted()
	}
}

// teardown drops pending callbacks and removes drawn artifacts.
func (c *Controller) teardown() {
	if c.cancelFrame != nil {
		c.cancelFrame()
		c.cancelFrame = nil
	}
	if c.cancelTimer != nil {
		c.cancelTimer()
		c.cancelTimer = nil
	}
	if c.hasMarker {
		c.surface.RemoveMarker(c.cfg.MarkerID)
		c.hasMarker = false
	}
	if c.hasPolyline {
		c.surface.RemovePolyline(c.cfg.PolylineID)
		c.hasPolyline = false
	}
	c.path, c.profile = nil, nil
	c.release()
}

func (c *Controller) acquire() {
	if c.owned {
		return
	}
	c.owned = true
	if c.onOwnership != nil {
		c.onOwnership(true)
	}
}

func (c *Controller) release() {
	if !c.owned {
		return
	}
	c.owned = false
	if c.onOwnership != nil {
		c.onOwnership(false)
	}
}

func (c *Controller) setState(to State) {
	if c.state == to {
		return
	}
	from := c.state
	c.state = to
	if c.onTransition != nil {
		c.onTransition(from, to)
	}
}

func (c *Controller) skipped(reason string) {
	if c.metrics != nil {
		c.metrics.AnimationSkipped(reason)
	}
}
