package geom

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geojson"
	"github.com/rotisserie/eris"
)

// ErrNoPolygons is returned when a source parses but holds no polygonal features.
var ErrNoPolygons = eris.New("geom: no polygon features found")

// Feature is one administrative region: a polygonal geometry plus its name.
type Feature struct {
	Name       string
	Geometry   orb.Geometry // orb.Polygon or orb.MultiPolygon
	Properties map[string]any
}

// Polygons flattens the feature geometry into its member polygons.
func (f Feature) Polygons() []orb.Polygon {
	switch g := f.Geometry.(type) {
	case orb.Polygon:
		return []orb.Polygon{g}
	case orb.MultiPolygon:
		return []orb.Polygon(g)
	}
	return nil
}

// Bound returns the lon/lat bounding box of the feature.
func (f Feature) Bound() orb.Bound {
	return f.Geometry.Bound()
}

// nameKeys are tried after the configured property.
var nameKeys = []string{"BoroName", "boro_name", "name", "NAME"}

func featureName(props map[string]any, key string, idx int) string {
	keys := append([]string{key}, nameKeys...)
	for _, k := range keys {
		if k == "" {
			continue
		}
		if v, ok := props[k]; ok && v != nil {
			if s := strings.TrimSpace(fmt.Sprint(v)); s != "" {
				return s
			}
		}
	}
	return fmt.Sprintf("feature %d", idx+1)
}

// polygonal keeps Polygon and MultiPolygon geometries and folds the polygons of a collection together.
func polygonal(g orb.Geometry) orb.Geometry {
	switch t := g.(type) {
	case orb.Polygon:
		return t
	case orb.MultiPolygon:
		return t
	case orb.Collection:
		var mp orb.MultiPolygon
		for _, member := range t {
			switch m := polygonal(member).(type) {
			case orb.Polygon:
				mp = append(mp, m)
			case orb.MultiPolygon:
				mp = append(mp, m...)
			}
		}
		if len(mp) > 0 {
			return mp
		}
	}
	return nil
}

// ParseGeoJSON reads a FeatureCollection, a single Feature, or a bare geometry
// and returns its polygonal features in document order.
func ParseGeoJSON(data []byte, nameProperty string) ([]Feature, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, eris.Wrap(err, "geom: decode geojson")
	}

	var raw []*geojson.Feature
	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, eris.Wrap(err, "geom: decode feature collection")
		}
		raw = fc.Features
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, eris.Wrap(err, "geom: decode feature")
		}
		raw = []*geojson.Feature{f}
	case "":
		return nil, eris.New("geom: invalid geojson: missing type")
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, eris.Wrap(err, "geom: decode geometry")
		}
		raw = []*geojson.Feature{geojson.NewFeature(g.Geometry())}
	}

	var out []Feature
	for i, f := range raw {
		if f == nil {
			continue
		}
		g := polygonal(f.Geometry)
		if g == nil {
			continue
		}
		props := map[string]any(f.Properties)
		if props == nil {
			props = map[string]any{}
		}
		out = append(out, Feature{
			Name:       featureName(props, nameProperty, i),
			Geometry:   g,
			Properties: props,
		})
	}
	if len(out) == 0 {
		return nil, ErrNoPolygons
	}
	return out, nil
}

// ParseWKT reads one geometry per non-empty line. A line may carry a name
// before a tab: "Manhattan\tPOLYGON((...))".
func ParseWKT(text string) ([]Feature, error) {
	var out []Feature
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	line := 0
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		line++
		name := ""
		if i := strings.IndexByte(s, '\t'); i >= 0 {
			name, s = strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:])
		}
		g, err := wkt.Unmarshal(s)
		if err != nil {
			return nil, eris.Wrapf(err, "geom: wkt line %d", line)
		}
		pg := polygonal(g)
		if pg == nil {
			continue
		}
		if name == "" {
			name = fmt.Sprintf("feature %d", line)
		}
		out = append(out, Feature{Name: name, Geometry: pg, Properties: map[string]any{}})
	}
	if err := sc.Err(); err != nil {
		return nil, eris.Wrap(err, "geom: scan wkt")
	}
	if len(out) == 0 {
		return nil, ErrNoPolygons
	}
	return out, nil
}
