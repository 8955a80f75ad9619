package geo

import (
	"errors"
	"fmt"

	"github.com/twpayne/go-polyline"
)

// ErrEmptyGeometry is returned when there is nothing to decode.
var ErrEmptyGeometry = errors.New("empty encoded geometry")

// DecodeError reports a malformed encoded geometry. Callers treat it as
// "no renderable geometry" rather than a failure.
type DecodeError struct {
	Encoded string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode polyline (%d bytes): %v", len(e.Encoded), e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// DecodePolyline decodes a Google encoded polyline (1e5 precision).
func DecodePolyline(encoded string) ([]Coordinate, error) {
	if encoded == "" {
		return nil, &DecodeError{Encoded: encoded, Err: ErrEmptyGeometry}
	}
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, &DecodeError{Encoded: encoded, Err: err}
	}
	if len(coords) == 0 {
		return nil, &DecodeError{Encoded: encoded, Err: ErrEmptyGeometry}
	}
	path := make([]Coordinate, len(coords))
	for i, c := range coords {
		path[i] = Coordinate{Lat: c[0], Lng: c[1]}
	}
	return path, nil
}

// EncodePolyline is the inverse of DecodePolyline at the same precision.
func EncodePolyline(path []Coordinate) string {
	coords := make([][]float64, len(path))
	for i, c := range path {
		coords[i] = []float64{c.Lat, c.Lng}
	}
	return string(polyline.EncodeCoords(coords))
}
