package geom

import (
	"fmt"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/rotisserie/eris"
)

// LoadShapefile reads polygon records from an ESRI shapefile. Outer rings are
// clockwise; each counter-clockwise ring is a hole of the preceding outer ring.
func LoadShapefile(path, nameProperty string) ([]Feature, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "geom: open shapefile")
	}
	defer func() { _ = reader.Close() }()

	fields := reader.Fields()
	nameIdx := -1
	for _, key := range append([]string{nameProperty}, nameKeys...) {
		if nameIdx = fieldIndex(fields, key); nameIdx >= 0 {
			break
		}
	}

	var out []Feature
	for reader.Next() {
		n, shape := reader.Shape()
		poly, ok := shape.(*shp.Polygon)
		if !ok || poly == nil {
			continue
		}
		mp := shpMultiPolygon(poly)
		if len(mp) == 0 {
			continue
		}
		props := make(map[string]any, len(fields))
		for i, f := range fields {
			props[fieldName(f)] = strings.TrimSpace(reader.Attribute(i))
		}
		name := fmt.Sprintf("feature %d", n+1)
		if nameIdx >= 0 {
			if v := strings.TrimSpace(reader.Attribute(nameIdx)); v != "" {
				name = v
			}
		}
		var g orb.Geometry = mp
		if len(mp) == 1 {
			g = mp[0]
		}
		out = append(out, Feature{Name: name, Geometry: g, Properties: props})
	}
	if len(out) == 0 {
		return nil, ErrNoPolygons
	}
	return out, nil
}

func fieldName(f shp.Field) string {
	return strings.TrimRight(f.String(), "\x00")
}

func fieldIndex(fields []shp.Field, name string) int {
	if name == "" {
		return -1
	}
	for i, f := range fields {
		if strings.EqualFold(fieldName(f), name) {
			return i
		}
	}
	return -1
}

func shpMultiPolygon(p *shp.Polygon) orb.MultiPolygon {
	var mp orb.MultiPolygon
	for i := 0; i < len(p.Parts); i++ {
		start := int(p.Parts[i])
		end := len(p.Points)
		if i+1 < len(p.Parts) {
			end = int(p.Parts[i+1])
		}
		if start < 0 || end > len(p.Points) || end-start < 3 {
			continue
		}
		ring := make(orb.Ring, 0, end-start)
		for _, pt := range p.Points[start:end] {
			ring = append(ring, orb.Point{pt.X, pt.Y})
		}
		if ring.Orientation() == orb.CCW && len(mp) > 0 {
			last := len(mp) - 1
			mp[last] = append(mp[last], ring)
			continue
		}
		mp = append(mp, orb.Polygon{ring})
	}
	return mp
}
