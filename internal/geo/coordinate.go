package geo

import "github.com/paulmach/orb"

// Coordinate is a WGS84 position in degrees.
type Coordinate struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// Point converts to orb's x/y (lng/lat) ordering.
func (c Coordinate) Point() orb.Point { return orb.Point{c.Lng, c.Lat} }

func FromPoint(p orb.Point) Coordinate { return Coordinate{Lat: p.Lat(), Lng: p.Lon()} }

// LineString converts a path for GeoJSON output.
func LineString(path []Coordinate) orb.LineString {
	ls := make(orb.LineString, len(path))
	for i, c := range path {
		ls[i] = c.Point()
	}
	return ls
}

// Reversed returns a reversed copy of path.
func Reversed(path []Coordinate) []Coordinate {
	out := make([]Coordinate, len(path))
	for i, c := range path {
		out[len(path)-1-i] = c
	}
	return out
}

// Bounds is an axis-aligned lat/lng rectangle.
type Bounds struct {
	SouthWest Coordinate `json:"sw"`
	NorthEast Coordinate `json:"ne"`
}

// BoundsOf returns the minimal rectangle enclosing coords. ok is false for
// an empty input.
func BoundsOf(coords []Coordinate) (b Bounds, ok bool) {
	if len(coords) == 0 {
		return Bounds{}, false
	}
	ob := coords[0].Point().Bound()
	for _, c := range coords[1:] {
		ob = ob.Extend(c.Point())
	}
	return Bounds{SouthWest: FromPoint(ob.Min), NorthEast: FromPoint(ob.Max)}, true
}

func (b Bounds) Center() Coordinate { return FromPoint(b.orb().Center()) }

func (b Bounds) Contains(c Coordinate) bool { return b.orb().Contains(c.Point()) }

func (b Bounds) orb() orb.Bound {
	return orb.Bound{Min: b.SouthWest.Point(), Max: b.NorthEast.Point()}
}

// Center averages coords, or returns fallback when there are none.
func Center(coords []Coordinate, fallback Coordinate) Coordinate {
	if len(coords) == 0 {
		return fallback
	}
	var lat, lng float64
	for _, c := range coords {
		lat += c.Lat
		lng += c.Lng
	}
	n := float64(len(coords))
	return Coordinate{Lat: lat / n, Lng: lng / n}
}
