package trip

// ColorToken names a route group color family.
type ColorToken string

const (
	ColorRose   ColorToken = "rose"
	ColorSky    ColorToken = "sky"
	ColorAmber  ColorToken = "amber"
	ColorViolet ColorToken = "violet"
	ColorTeal   ColorToken = "teal"
)

var groupMapColors = map[ColorToken]string{
	ColorRose:   "#b87a7a",
	ColorSky:    "#7a9aaa",
	ColorAmber:  "#b0a07a",
	ColorViolet: "#9a8aaa",
	ColorTeal:   "#7aaa98",
}

// MapColor returns the stroke color for the token; unknown tokens use rose.
func (c ColorToken) MapColor() string {
	if hex, ok := groupMapColors[c]; ok {
		return hex
	}
	return groupMapColors[ColorRose]
}

// DayColors is the cyclic per-day route palette.
var DayColors = [...]string{
	"#8b7355",
	"#7a9aaa",
	"#b87a7a",
	"#7aaa98",
	"#9a8aaa",
	"#b0a07a",
	"#a0636e",
	"#5a8a7a",
	"#c4956a",
	"#6a7a8a",
}

func DayColor(dayIndex int) string {
	i := dayIndex % len(DayColors)
	if i < 0 {
		i += len(DayColors)
	}
	return DayColors[i]
}
