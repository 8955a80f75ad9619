package geo

import "math"

// EarthRadiusKm is the spherical-earth radius used for all distances.
const EarthRadiusKm = 6371.0

// GreatCircleDistance returns the haversine distance in kilometers.
func GreatCircleDistance(a, b Coordinate) float64 {
	toRad := func(d float64) float64 { return d * math.Pi / 180 }
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)
	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*sinLng*sinLng
	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// CumulativeProfile builds prefix distances along path. profile[0] is 0 and
// the last entry is the total path length.
func CumulativeProfile(path []Coordinate) []float64 {
	if len(path) == 0 {
		return nil
	}
	profile := make([]float64, len(path))
	for i := 1; i < len(path); i++ {
		profile[i] = profile[i-1] + GreatCircleDistance(path[i-1], path[i])
	}
	return profile
}

// Sample is an interpolated position along a path.
type Sample struct {
	Point          Coordinate `json:"point"`
	HeadingDegrees float64    `json:"heading"`
}

// Backward reports whether the heading points "left", which is when a
// directional sprite gets mirrored.
func (s Sample) Backward() bool { return math.Abs(s.HeadingDegrees) > 90 }

// InterpolateAt maps fraction (clamped to [0,1]) to a position along path
// using its cumulative profile.
func InterpolateAt(path []Coordinate, profile []float64, fraction float64) Sample {
	n := len(path)
	switch {
	case n == 0:
		return Sample{}
	case n == 1 || len(profile) != n:
		return Sample{Point: path[0]}
	}
	if fraction <= 0 {
		return Sample{Point: path[0], HeadingDegrees: heading(path[0], path[1])}
	}
	if fraction >= 1 {
		return Sample{Point: path[n-1], HeadingDegrees: heading(path[n-2], path[n-1])}
	}

	target := fraction * profile[n-1]
	lo, hi := 0, n-1
	for lo < hi-1 {
		mid := (lo + hi) / 2
		if profile[mid] <= target {
			lo = mid
		} else {
			hi = mid
		}
	}
	segLen := profile[hi] - profile[lo]
	local := 0.0
	if segLen > 0 {
		local = (target - profile[lo]) / segLen
	}
	a, b := path[lo], path[hi]
	return Sample{
		Point: Coordinate{
			Lat: a.Lat + (b.Lat-a.Lat)*local,
			Lng: a.Lng + (b.Lng-a.Lng)*local,
		},
		HeadingDegrees: heading(a, b),
	}
}

// heading is the planar direction of a->b in degrees, 0 = north, 90 = east.
func heading(a, b Coordinate) float64 {
	return math.Atan2(b.Lng-a.Lng, b.Lat-a.Lat) * 180 / math.Pi
}
