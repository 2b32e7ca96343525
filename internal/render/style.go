package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"treemap/internal/trees"
)

// Palette.
var (
	ColorGood      = mustHex("#27ae60")
	ColorFair      = mustHex("#f1c40f")
	ColorPoor      = mustHex("#e74c3c")
	ColorUnknown   = mustHex("#bdc3c7")
	BoundaryFill   = mustHex("#ecf0f1")
	HighlightFill  = mustHex("#bdc3c7")
	BoundaryStroke = mustHex("#2c3e50")
	LegendText     = mustHex("#333333")
)

const (
	TreeOpacity    = 0.8
	StrokeWidth    = 1.0
	LegendInsetX   = 150
	LegendTop      = 50
	LegendSwatch   = 20
	LegendStep     = 25
	LegendTextX    = 30
	LegendTextBase = 15
	LegendFontPx   = 12
)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// HealthColor maps a health label to its fill. Anything outside Good/Fair/Poor is grey.
func HealthColor(h trees.Health) colorful.Color {
	switch h.Category() {
	case trees.Good:
		return ColorGood
	case trees.Fair:
		return ColorFair
	case trees.Poor:
		return ColorPoor
	}
	return ColorUnknown
}

// Radius is the settled circle radius for a trunk diameter: sqrt(d)/2 + 2.
func Radius(diameter float64) float64 {
	if !(diameter > 0) || math.IsInf(diameter, 1) {
		diameter = 0
	}
	return math.Sqrt(diameter)/2 + 2
}

// LegendEntry is one swatch row.
type LegendEntry struct {
	Label string
	Color colorful.Color
}

// Legend is fixed; it does not depend on the data.
var Legend = []LegendEntry{
	{Label: "Good Health", Color: ColorGood},
	{Label: "Fair Health", Color: ColorFair},
	{Label: "Poor Health", Color: ColorPoor},
	{Label: "Data Not Available", Color: ColorUnknown},
}

// LegendOrigin is the top-left corner of the legend for a canvas width.
func LegendOrigin(width int) (float64, float64) {
	return float64(width - LegendInsetX), LegendTop
}
