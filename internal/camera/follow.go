package camera

import (
	"tripmap/internal/geo"
	"tripmap/internal/render"
)

const FollowZoom = 15

// Follower pans to the active waypoint unless something else owns the camera.
type Follower struct {
	cam           render.Camera
	bottomPadding int
}

func NewFollower(cam render.Camera, bottomPadding int) *Follower {
	return &Follower{cam: cam, bottomPadding: bottomPadding}
}

func (f *Follower) BottomPadding() int { return f.bottomPadding }

// Follow centers on at. It returns false without moving when owned is true.
func (f *Follower) Follow(at geo.Coordinate, owned bool) bool {
	if owned {
		return false
	}
	f.cam.PanTo(at)
	f.cam.SetZoom(FollowZoom)
	// shift the marker into the area above a bottom panel
	if f.bottomPadding > OverviewPadding {
		f.cam.PanBy(0, f.bottomPadding/2)
	}
	return true
}
