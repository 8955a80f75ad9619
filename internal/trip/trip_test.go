package trip

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	tr, err := LoadFile("testdata/kyoto.json")
	require.NoError(t, err)

	assert.Equal(t, "kyoto-2026", tr.ID)
	require.Len(t, tr.Days, 2)
	assert.Len(t, tr.Waypoints(), 8)

	segs := tr.Segments()
	require.Len(t, segs, 5)
	for _, s := range segs {
		assert.Equal(t, 0, s.DayIndex)
	}
	assert.Equal(t, "21 km", segs[0].Distance)

	byID := tr.WaypointsByID()
	assert.Nil(t, byID["e"].Coordinates, "note has no coordinates")
	assert.Equal(t, "hikers", byID["c"].RouteGroup)
	assert.Equal(t, ColorTeal, tr.GroupsByID()["hikers"].Color)
}

func TestParse_StampsDayIndex(t *testing.T) {
	doc := `{"id":"t","days":[
		{"activities":[{"id":"a"},{"id":"b"}]},
		{"activities":[{"id":"c"},{"id":"d"}],"drivingRoutes":[{"from":"c","to":"d","polyline":"??"}]}
	]}`
	tr, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 1, tr.Days[1].DrivingRoutes[0].DayIndex)
	assert.Equal(t, 1, tr.Segments()[0].DayIndex)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed json", `{"id":`},
		{"missing trip id", `{"days":[]}`},
		{"missing waypoint id", `{"id":"t","days":[{"activities":[{"title":"x"}]}]}`},
		{"latitude out of range", `{"id":"t","days":[{"activities":[{"id":"a","coordinates":{"lat":91,"lng":0}}]}]}`},
		{"segment without endpoint", `{"id":"t","days":[{"activities":[{"id":"a"}],"drivingRoutes":[{"from":"a","polyline":"??"}]}]}`},
		{"duplicate waypoint", `{"id":"t","days":[{"activities":[{"id":"a"}]},{"activities":[{"id":"a"}]}]}`},
		{"reserved group id", `{"id":"t","routeGroups":[{"id":"shared"}],"days":[]}`},
		{"duplicate group id", `{"id":"t","routeGroups":[{"id":"g"},{"id":"g"}],"days":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestPalette(t *testing.T) {
	assert.Equal(t, "#7aaa98", ColorTeal.MapColor())
	assert.Equal(t, "#b87a7a", ColorToken("chartreuse").MapColor(), "unknown tokens fall back to rose")

	assert.Equal(t, DayColors[0], DayColor(0))
	assert.Equal(t, DayColors[3], DayColor(3))
	assert.Equal(t, DayColors[2], DayColor(len(DayColors)+2))
}

func TestCategoryEmoji(t *testing.T) {
	assert.Equal(t, "🍜", CategoryFood.Emoji())
	assert.Equal(t, CategoryNote.Emoji(), Category("unknown").Emoji())
}
