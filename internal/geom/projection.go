package geom

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// Projection is a spherical Mercator projection onto a pixel canvas,
// parameterized the way web map renderers do it: a center coordinate,
// a scale in pixels per radian, and a translation placing the center.
type Projection struct {
	Center    orb.Point
	Scale     float64
	Translate [2]float64

	origin orb.Point // Center in unit Mercator space
}

// NewMercator returns a projection centered on center, translated to the middle of a width x height canvas.
func NewMercator(center orb.Point, scale float64, width, height int) Projection {
	return Projection{
		Center:    center,
		Scale:     scale,
		Translate: [2]float64{float64(width) / 2, float64(height) / 2},
		origin:    unitMercator(center),
	}
}

// unitMercator projects lon/lat onto a unit sphere: x = λ, y = ln(tan(π/4 + φ/2)).
func unitMercator(p orb.Point) orb.Point {
	m := project.WGS84.ToMercator(p)
	return orb.Point{m[0] / orb.EarthRadius, m[1] / orb.EarthRadius}
}

// Project maps a lon/lat pair to canvas pixels. Inputs are not validated.
func (p Projection) Project(lon, lat float64) (x, y float64) {
	u := unitMercator(orb.Point{lon, lat})
	x = p.Translate[0] + p.Scale*(u[0]-p.origin[0])
	y = p.Translate[1] - p.Scale*(u[1]-p.origin[1])
	return x, y
}

// Invert maps canvas pixels back to lon/lat.
func (p Projection) Invert(x, y float64) (lon, lat float64) {
	ux := (x-p.Translate[0])/p.Scale + p.origin[0]
	uy := (p.Translate[1]-y)/p.Scale + p.origin[1]
	ll := project.Mercator.ToWGS84(orb.Point{ux * orb.EarthRadius, uy * orb.EarthRadius})
	return ll[0], ll[1]
}

// ProjectRing projects every vertex of a ring.
func (p Projection) ProjectRing(r orb.Ring) [][2]float64 {
	out := make([][2]float64, 0, len(r))
	for _, pt := range r {
		x, y := p.Project(pt[0], pt[1])
		out = append(out, [2]float64{x, y})
	}
	return out
}
