package render

import (
	"strconv"

	"treemap/internal/trees"
)

// TooltipLine is one label/value row of a tree tooltip.
type TooltipLine struct {
	Label string
	Value string
}

// Tooltip describes a tree. Blank fields read "Unknown"; a zero diameter reads "N/A".
func Tooltip(r trees.Record) []TooltipLine {
	dbh := "N/A"
	if r.Diameter > 0 {
		dbh = strconv.FormatFloat(r.Diameter, 'f', -1, 64)
	}
	return []TooltipLine{
		{Label: "Species", Value: orUnknown(r.Species)},
		{Label: "Health", Value: orUnknown(string(r.Health))},
		{Label: "DBH", Value: dbh},
		{Label: "Borough", Value: orUnknown(r.Borough)},
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
