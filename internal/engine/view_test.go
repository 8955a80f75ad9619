package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripmap/internal/camera"
	"tripmap/internal/render/rendertest"
	"tripmap/internal/routes"
	"tripmap/internal/trip"
)

func newTestView(t *testing.T, bottomPadding int) (*View, *manualScheduler, *rendertest.Recorder, *countingMetrics) {
	t.Helper()
	tr, err := trip.LoadFile("../trip/testdata/kyoto.json")
	require.NoError(t, err)
	sched := newManualScheduler()
	rec := rendertest.NewRecorder()
	m := &countingMetrics{}
	v := NewView(sched, rec, tr, ViewOptions{BottomPadding: bottomPadding, Metrics: m})
	return v, sched, rec, m
}

func TestNewViewDrawsScene(t *testing.T) {
	v, _, rec, m := newTestView(t, 0)

	assert.Equal(t, 7, rec.MarkerCount())
	assert.Equal(t, 4, rec.PolylineCount())
	for _, id := range []string{"route:a->b", "route:b->c", "route:c->d", "day:1"} {
		_, ok := rec.Polyline(id)
		assert.True(t, ok, id)
	}

	hotel, ok := rec.Marker("wp:a")
	require.True(t, ok)
	assert.Equal(t, trip.CategoryHotel.Emoji(), hotel.Content.Emoji)
	assert.Equal(t, "Hotel", hotel.Content.Label)
	_, ok = rec.Marker("wp:e")
	assert.False(t, ok, "waypoints without coordinates are not drawn")

	fits := rec.Fits()
	require.Len(t, fits, 1)
	assert.Equal(t, camera.OverviewPadding, fits[0].Padding.Bottom)

	assert.ElementsMatch(t, []string{"missing_coordinate", "decode"}, m.dropped)
	assert.Equal(t, 3, v.Index().Len())
}

func TestViewHoverFollows(t *testing.T) {
	v, _, rec, _ := newTestView(t, 300)

	v.Hover("c")
	assert.Equal(t, "c", v.ActiveID())
	marker, _ := rec.Marker("wp:c")
	assert.True(t, marker.Content.Active)
	assert.Greater(t, marker.Content.ZIndex, 1)

	c := v.Scene().Waypoints[2].Position()
	assert.Equal(t, c, rec.Center())
	assert.Equal(t, camera.FollowZoom, rec.Zoom())
	dx, dy := rec.PannedBy()
	assert.Equal(t, 0, dx)
	assert.Equal(t, 150, dy)

	v.Hover("d")
	marker, _ = rec.Marker("wp:c")
	assert.False(t, marker.Content.Active)
	marker, _ = rec.Marker("wp:d")
	assert.True(t, marker.Content.Active)
}

func TestViewClickAnimatesAndReturnsToWaypoint(t *testing.T) {
	v, sched, rec, _ := newTestView(t, 0)
	cfg := DefaultAnimationConfig()

	v.Click("a")
	a := rec.Center()
	assert.Equal(t, Idle, v.Animation().State())

	v.Click("b")
	require.True(t, v.CameraOwned())
	assert.Equal(t, a, rec.Center(), "camera is not followed while an animation owns it")
	_, ok := rec.Marker(cfg.MarkerID)
	assert.True(t, ok)

	sched.advance(cfg.PrimeDelay)
	for i := 0; v.Animation().State() == Running; i++ {
		require.Less(t, i, 1000)
		sched.frame(16 * time.Millisecond)
	}
	sched.advance(cfg.SettleDelay)

	assert.Equal(t, Idle, v.Animation().State())
	assert.False(t, v.CameraOwned())
	b, _ := rec.Marker("wp:b")
	assert.Equal(t, b.Position, rec.Center(), "released camera returns to the active waypoint")
	assert.Equal(t, 7, rec.MarkerCount())
	assert.Equal(t, 4, rec.PolylineCount())
}

func TestViewToggleFilterCancelsAnimation(t *testing.T) {
	v, sched, rec, m := newTestView(t, 0)

	v.Click("b")
	v.Click("c")
	sched.advance(300 * time.Millisecond)
	sched.frame(16 * time.Millisecond)
	require.Equal(t, Running, v.Animation().State())
	rec.Reset()

	v.ToggleFilter("hikers")
	assert.Equal(t, Idle, v.Animation().State())
	assert.Equal(t, 1, m.canceled)
	assert.False(t, v.Filter().Has("hikers"))

	_, ok := rec.Marker(DefaultAnimationConfig().MarkerID)
	assert.False(t, ok)
	_, ok = rec.Marker("wp:c")
	assert.False(t, ok)
	_, ok = rec.Polyline("route:c->d")
	assert.False(t, ok)
	_, ok = rec.Polyline("route:a->b")
	assert.True(t, ok)
	assert.Equal(t, 5, rec.MarkerCount())
	assert.Len(t, rec.Fits(), 1, "filter changes reframe the visible waypoints")

	// click memory survives the filter change: c -> d still pairs
	v.ToggleFilter("hikers")
	v.Click("d")
	assert.Equal(t, Priming, v.Animation().State())
}

func TestViewSetFilterNothingVisible(t *testing.T) {
	v, _, rec, _ := newTestView(t, 0)
	rec.Reset()

	v.SetFilter(routes.NewFilterState())
	assert.Equal(t, 0, rec.MarkerCount())
	assert.Equal(t, 0, rec.PolylineCount())
	assert.Empty(t, rec.Fits())
	assert.Equal(t, routes.DefaultCenter, v.Scene().Center)
}

func TestViewSetTripAndClose(t *testing.T) {
	v, _, rec, _ := newTestView(t, 0)
	v.Click("a")
	v.Click("b")
	require.True(t, v.CameraOwned())

	v.SetTrip(nil)
	assert.Equal(t, Idle, v.Animation().State())
	assert.Equal(t, 0, rec.MarkerCount())
	assert.Equal(t, 0, rec.PolylineCount())
	assert.Equal(t, "", v.ActiveID())

	tr, err := trip.LoadFile("../trip/testdata/kyoto.json")
	require.NoError(t, err)
	v.SetTrip(tr)
	assert.Equal(t, 7, rec.MarkerCount())

	v.Click("b")
	assert.Equal(t, Idle, v.Animation().State(), "trip change forgets the previous click")

	v.Close()
	assert.Equal(t, 0, rec.MarkerCount())
	assert.Equal(t, 0, rec.PolylineCount())
}
