package trip

import "tripmap/internal/geo"

type Category string

const (
	CategoryFood      Category = "food"
	CategorySight     Category = "sight"
	CategoryTransport Category = "transport"
	CategoryHotel     Category = "hotel"
	CategoryShopping  Category = "shopping"
	CategoryActivity  Category = "activity"
	CategoryNote      Category = "note"
	CategoryFlight    Category = "flight"
)

var categoryEmoji = map[Category]string{
	CategoryFood:      "🍜",
	CategorySight:     "📸",
	CategoryTransport: "🚃",
	CategoryHotel:     "🏨",
	CategoryShopping:  "🛍️",
	CategoryActivity:  "🎯",
	CategoryNote:      "📝",
	CategoryFlight:    "✈️",
}

// Emoji is the marker glyph for the category.
func (c Category) Emoji() string {
	if e, ok := categoryEmoji[c]; ok {
		return e
	}
	return categoryEmoji[CategoryNote]
}

// Waypoint is a point of interest in a day's itinerary. A waypoint without
// Coordinates cannot be drawn or connected by a route. An empty RouteGroup
// means the waypoint is shared by everyone.
type Waypoint struct {
	ID          string          `json:"id" validate:"required"`
	Time        string          `json:"time,omitempty"`
	Title       string          `json:"title"`
	Location    string          `json:"location,omitempty"`
	Category    Category        `json:"category"`
	Duration    string          `json:"duration,omitempty"`
	Coordinates *geo.Coordinate `json:"coordinates,omitempty"`
	RouteGroup  string          `json:"routeGroup,omitempty"`
}

// RouteGroup is a colored subset of travelers used for filtering.
type RouteGroup struct {
	ID        string     `json:"id" validate:"required"`
	Name      string     `json:"name"`
	Color     ColorToken `json:"color"`
	Travelers []string   `json:"travelers,omitempty"`
}

// RouteSegment is a pre-computed directed driving route between two
// waypoints. Distance and Duration are display labels only.
type RouteSegment struct {
	From     string `json:"from" validate:"required"`
	To       string `json:"to" validate:"required"`
	Polyline string `json:"polyline"`
	Distance string `json:"distance,omitempty"`
	Duration string `json:"duration,omitempty"`

	// DayIndex is stamped from the owning day's position when the trip is loaded.
	DayIndex int `json:"-"`
}

type Day struct {
	Date          string         `json:"date"`
	Title         string         `json:"title"`
	Activities    []Waypoint     `json:"activities" validate:"dive"`
	DrivingRoutes []RouteSegment `json:"drivingRoutes,omitempty" validate:"dive"`
}

type Trip struct {
	ID          string       `json:"id" validate:"required"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Location    string       `json:"location,omitempty"`
	StartDate   string       `json:"startDate,omitempty"`
	EndDate     string       `json:"endDate,omitempty"`
	Travelers   []string     `json:"travelers,omitempty"`
	Days        []Day        `json:"days" validate:"dive"`
	RouteGroups []RouteGroup `json:"routeGroups,omitempty" validate:"dive"`
}

// Waypoints flattens all days in chronological order.
func (t *Trip) Waypoints() []Waypoint {
	var out []Waypoint
	for _, d := range t.Days {
		out = append(out, d.Activities...)
	}
	return out
}

// WaypointsByID indexes every waypoint of the trip by id.
func (t *Trip) WaypointsByID() map[string]Waypoint {
	m := make(map[string]Waypoint)
	for _, d := range t.Days {
		for _, w := range d.Activities {
			m[w.ID] = w
		}
	}
	return m
}

func (t *Trip) GroupsByID() map[string]RouteGroup {
	m := make(map[string]RouteGroup, len(t.RouteGroups))
	for _, g := range t.RouteGroups {
		m[g.ID] = g
	}
	return m
}

// Segments returns every driving route in day order with DayIndex set.
func (t *Trip) Segments() []RouteSegment {
	var out []RouteSegment
	for i, d := range t.Days {
		for _, s := range d.DrivingRoutes {
			s.DayIndex = i
			out = append(out, s)
		}
	}
	return out
}
