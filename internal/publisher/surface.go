package publisher

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/paulmach/orb/geojson"

	"tripmap/internal/geo"
	"tripmap/internal/render"
)

// Command kinds, also the last subject tokens.
const (
	KindFit            = "camera.fit"
	KindPan            = "camera.pan"
	KindZoom           = "camera.zoom"
	KindPanBy          = "camera.panBy"
	KindPolylineAdd    = "polyline.add"
	KindPolylineRemove = "polyline.remove"
	KindMarkerAdd      = "marker.add"
	KindMarkerMove     = "marker.move"
	KindMarkerRemove   = "marker.remove"
)

// Command is one render instruction for a map client. Only the fields of
// its kind are set.
type Command struct {
	Kind      string    `json:"kind"`
	Seq       uint64    `json:"seq"`
	Timestamp time.Time `json:"timestamp"`
	ID        string    `json:"id,omitempty"`

	Bounds  *geo.Bounds     `json:"bounds,omitempty"`
	Padding *render.Padding `json:"padding,omitempty"`
	Center  *geo.Coordinate `json:"center,omitempty"`
	Zoom    int             `json:"zoom,omitempty"`
	DX      int             `json:"dx,omitempty"`
	DY      int             `json:"dy,omitempty"`

	Feature *geojson.Feature      `json:"feature,omitempty"`
	Marker  *render.MarkerContent `json:"marker,omitempty"`

	Position *geo.Coordinate `json:"position,omitempty"`
	Heading  float64         `json:"heading,omitempty"`
	Flipped  bool            `json:"flipped,omitempty"`
}

type Sink interface {
	Publish(subject string, v any) error
}

// Surface is a render.Surface that streams commands for one trip over NATS.
type Surface struct {
	sink   Sink
	tripID string
	seq    atomic.Uint64
	now    func() time.Time
}

func NewSurface(sink Sink, tripID string) *Surface {
	return &Surface{sink: sink, tripID: tripID, now: time.Now}
}

func (s *Surface) FitBounds(b geo.Bounds, p render.Padding) {
	s.send(Command{Kind: KindFit, Bounds: &b, Padding: &p})
}

func (s *Surface) PanTo(c geo.Coordinate) {
	s.send(Command{Kind: KindPan, Center: &c})
}

func (s *Surface) SetZoom(zoom int) {
	s.send(Command{Kind: KindZoom, Zoom: zoom})
}

func (s *Surface) PanBy(dx, dy int) {
	s.send(Command{Kind: KindPanBy, DX: dx, DY: dy})
}

func (s *Surface) AddPolyline(id string, path []geo.Coordinate, style render.PolylineStyle) {
	s.send(Command{Kind: KindPolylineAdd, ID: id, Feature: PolylineFeature(id, path, style)})
}

func (s *Surface) RemovePolyline(id string) {
	s.send(Command{Kind: KindPolylineRemove, ID: id})
}

func (s *Surface) AddMarker(id string, at geo.Coordinate, content render.MarkerContent) {
	s.send(Command{Kind: KindMarkerAdd, ID: id, Position: &at, Marker: &content})
}

func (s *Surface) MoveMarker(id string, at geo.Coordinate, heading float64, flipped bool) {
	s.send(Command{Kind: KindMarkerMove, ID: id, Position: &at, Heading: heading, Flipped: flipped})
}

func (s *Surface) RemoveMarker(id string) {
	s.send(Command{Kind: KindMarkerRemove, ID: id})
}

func (s *Surface) send(cmd Command) {
	cmd.Seq = s.seq.Add(1)
	cmd.Timestamp = s.now()
	subject := renderSubject(s.tripID, cmd.Kind)
	if err := s.sink.Publish(subject, cmd); err != nil {
		log.Printf("publish %s %s: %v", cmd.Kind, cmd.ID, err)
	}
}

// PolylineFeature encodes a styled path as a GeoJSON LineString feature.
func PolylineFeature(id string, path []geo.Coordinate, style render.PolylineStyle) *geojson.Feature {
	f := geojson.NewFeature(geo.LineString(path))
	f.ID = id
	f.Properties["color"] = style.Color
	f.Properties["opacity"] = style.Opacity
	f.Properties["weight"] = style.Weight
	if style.Geodesic {
		f.Properties["geodesic"] = true
	}
	if style.ZIndex != 0 {
		f.Properties["zIndex"] = style.ZIndex
	}
	return f
}
