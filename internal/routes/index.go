package routes

import (
	"errors"

	"tripmap/internal/geo"
	"tripmap/internal/trip"
)

var (
	// ErrMissingCoordinate marks a segment whose endpoint cannot be placed on the map.
	ErrMissingCoordinate = errors.New("endpoint has no coordinate")
	ErrUnknownEndpoint   = errors.New("unknown endpoint")
)

// Entry is one indexed route segment with its decoded geometry.
type Entry struct {
	Segment  trip.RouteSegment
	DayIndex int
	Color    string
	Path     []geo.Coordinate
}

func (e Entry) Key() string { return Key(e.Segment.From, e.Segment.To) }

// Dropped is a segment left out of the index and why.
type Dropped struct {
	Key string
	Err error
}

// Index is an immutable lookup from an ordered waypoint pair to its route.
// Rebuild it whenever trip data changes.
type Index struct {
	entries map[string]Entry
	order   []string
	dropped []Dropped
}

func Key(from, to string) string { return from + "->" + to }

// NewIndex decodes and indexes every segment of t. Segments with malformed
// geometry or an unplaceable endpoint are dropped. A later segment with the
// same ordered pair replaces an earlier one.
func NewIndex(t *trip.Trip) *Index {
	idx := &Index{entries: make(map[string]Entry)}
	if t == nil {
		return idx
	}
	waypoints := t.WaypointsByID()
	groups := t.GroupsByID()

	for _, seg := range t.Segments() {
		key := Key(seg.From, seg.To)
		from, okFrom := waypoints[seg.From]
		to, okTo := waypoints[seg.To]
		if !okFrom || !okTo {
			idx.dropped = append(idx.dropped, Dropped{Key: key, Err: ErrUnknownEndpoint})
			continue
		}
		if from.Coordinates == nil || to.Coordinates == nil {
			idx.dropped = append(idx.dropped, Dropped{Key: key, Err: ErrMissingCoordinate})
			continue
		}
		path, err := geo.DecodePolyline(seg.Polyline)
		if err != nil {
			idx.dropped = append(idx.dropped, Dropped{Key: key, Err: err})
			continue
		}
		if _, exists := idx.entries[key]; !exists {
			idx.order = append(idx.order, key)
		}
		idx.entries[key] = Entry{
			Segment:  seg,
			DayIndex: seg.DayIndex,
			Color:    ResolveColor(from, to, groups, seg.DayIndex),
			Path:     path,
		}
	}
	return idx
}

// ResolveColor picks the owning group's color when both endpoints belong to
// the same known group, and the day palette otherwise.
func ResolveColor(from, to trip.Waypoint, groups map[string]trip.RouteGroup, dayIndex int) string {
	if from.RouteGroup != "" && from.RouteGroup == to.RouteGroup {
		if g, ok := groups[from.RouteGroup]; ok {
			return g.Color.MapColor()
		}
	}
	return trip.DayColor(dayIndex)
}

// Lookup finds the segment for the exact ordered pair.
func (idx *Index) Lookup(from, to string) (Entry, bool) {
	e, ok := idx.entries[Key(from, to)]
	return e, ok
}

// Connect finds a segment joining a and b in either direction. The returned
// path always runs from a to b; reversed reports that the stored segment
// runs b->a.
func (idx *Index) Connect(a, b string) (path []geo.Coordinate, e Entry, reversed bool, ok bool) {
	if e, ok = idx.Lookup(a, b); ok {
		return e.Path, e, false, true
	}
	if e, ok = idx.Lookup(b, a); ok {
		return geo.Reversed(e.Path), e, true, true
	}
	return nil, Entry{}, false, false
}

// Entries returns indexed segments in trip order.
func (idx *Index) Entries() []Entry {
	out := make([]Entry, 0, len(idx.order))
	for _, k := range idx.order {
		out = append(out, idx.entries[k])
	}
	return out
}

func (idx *Index) Len() int { return len(idx.entries) }

func (idx *Index) Dropped() []Dropped { return idx.dropped }
