package trees

import (
	"math"
	"strconv"
	"strings"
)

// Health is the surveyed condition of a tree.
type Health string

const (
	Good    Health = "Good"
	Fair    Health = "Fair"
	Poor    Health = "Poor"
	Unknown Health = "Unknown"
)

// Category folds any value outside Good/Fair/Poor into Unknown.
func (h Health) Category() Health {
	switch h {
	case Good, Fair, Poor:
		return h
	}
	return Unknown
}

// Record is one validated street tree.
type Record struct {
	// ID is the 1-based data row number in the source file, unique per record.
	ID        int
	TreeID    string
	Latitude  float64
	Longitude float64
	Health    Health
	Species   string
	Diameter  float64
	Borough   string
}

// Row is an untyped CSV row keyed by canonical column name.
type Row map[string]string

// Canonical column names.
const (
	ColTreeID    = "tree_id"
	ColLatitude  = "latitude"
	ColLongitude = "longitude"
	ColHealth    = "health"
	ColSpecies   = "spc_common"
	ColDiameter  = "tree_dbh"
	ColBorough   = "borough"
)

// FromRow validates a raw row. Rows lacking latitude, longitude or health, or
// whose coordinates are not finite numbers, are rejected.
func FromRow(id int, row Row) (Record, bool) {
	latS := strings.TrimSpace(row[ColLatitude])
	lonS := strings.TrimSpace(row[ColLongitude])
	health := strings.TrimSpace(row[ColHealth])
	if latS == "" || lonS == "" || health == "" {
		return Record{}, false
	}
	lat, ok := parseFinite(latS)
	if !ok {
		return Record{}, false
	}
	lon, ok := parseFinite(lonS)
	if !ok {
		return Record{}, false
	}
	return Record{
		ID:        id,
		TreeID:    strings.TrimSpace(row[ColTreeID]),
		Latitude:  lat,
		Longitude: lon,
		Health:    Health(health),
		Species:   strings.TrimSpace(row[ColSpecies]),
		Diameter:  ParseDiameter(row[ColDiameter]),
		Borough:   strings.TrimSpace(row[ColBorough]),
	}, true
}

// ParseDiameter coerces a trunk diameter. Anything unparseable, non-finite or negative is 0.
func ParseDiameter(s string) float64 {
	d, ok := parseFinite(strings.TrimSpace(s))
	if !ok || d < 0 {
		return 0
	}
	return d
}

func parseFinite(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
