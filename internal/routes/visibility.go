package routes

import (
	"sort"

	"tripmap/internal/trip"
)

// Shared is the filter id of waypoints that belong to no route group.
const Shared = "shared"

// FilterState is the set of group ids currently shown. Values are treated as
// immutable; Toggle returns a new set.
type FilterState map[string]struct{}

func NewFilterState(ids ...string) FilterState {
	f := make(FilterState, len(ids))
	for _, id := range ids {
		f[id] = struct{}{}
	}
	return f
}

// DefaultFilterState shows everything: shared plus every group.
func DefaultFilterState(groups []trip.RouteGroup) FilterState {
	f := NewFilterState(Shared)
	for _, g := range groups {
		f[g.ID] = struct{}{}
	}
	return f
}

func (f FilterState) Has(id string) bool {
	_, ok := f[id]
	return ok
}

// Toggle returns a copy of f with id flipped in or out.
func (f FilterState) Toggle(id string) FilterState {
	next := make(FilterState, len(f)+1)
	for k := range f {
		next[k] = struct{}{}
	}
	if f.Has(id) {
		delete(next, id)
	} else {
		next[id] = struct{}{}
	}
	return next
}

// IDs returns the members in sorted order.
func (f FilterState) IDs() []string {
	ids := make([]string, 0, len(f))
	for k := range f {
		ids = append(ids, k)
	}
	sort.Strings(ids)
	return ids
}

func EffectiveGroup(w trip.Waypoint) string {
	if w.RouteGroup == "" {
		return Shared
	}
	return w.RouteGroup
}

func IsWaypointVisible(w trip.Waypoint, f FilterState) bool {
	return f.Has(EffectiveGroup(w))
}

// IsSegmentVisible requires both endpoints to be known and in the filter.
func IsSegmentVisible(seg trip.RouteSegment, waypoints map[string]trip.Waypoint, f FilterState) bool {
	from, ok := waypoints[seg.From]
	if !ok {
		return false
	}
	to, ok := waypoints[seg.To]
	if !ok {
		return false
	}
	return IsWaypointVisible(from, f) && IsWaypointVisible(to, f)
}

func FilterWaypoints(ws []trip.Waypoint, f FilterState) []trip.Waypoint {
	var out []trip.Waypoint
	for _, w := range ws {
		if IsWaypointVisible(w, f) {
			out = append(out, w)
		}
	}
	return out
}
