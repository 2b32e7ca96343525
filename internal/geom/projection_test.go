package geom

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func nycProjection() Projection {
	return NewMercator(orb.Point{-74.006, 40.7128}, 30000, 800, 600)
}

func TestProject_CenterMapsToCanvasCenter(t *testing.T) {
	p := nycProjection()
	x, y := p.Project(-74.006, 40.7128)
	assert.InDelta(t, 400, x, 1e-6)
	assert.InDelta(t, 300, y, 1e-6)
}

func TestProject_Orientation(t *testing.T) {
	p := nycProjection()

	// 0.1 degree east is scale * 0.1 * pi/180 pixels to the right.
	x, y := p.Project(-73.906, 40.7128)
	assert.InDelta(t, 400+30000*0.1*math.Pi/180, x, 1e-3)
	assert.InDelta(t, 300, y, 1e-6)

	// north is up
	_, yNorth := p.Project(-74.006, 40.8)
	assert.Less(t, yNorth, 300.0)
	_, ySouth := p.Project(-74.006, 40.6)
	assert.Greater(t, ySouth, 300.0)
}

func TestProject_InvertRoundTrip(t *testing.T) {
	p := nycProjection()
	for _, ll := range [][2]float64{{-74.006, 40.7128}, {-73.95, 40.65}, {-74.2, 40.55}, {-73.75, 40.9}} {
		x, y := p.Project(ll[0], ll[1])
		lon, lat := p.Invert(x, y)
		assert.InDelta(t, ll[0], lon, 1e-9)
		assert.InDelta(t, ll[1], lat, 1e-9)
	}
}

func TestProject_NaNPropagates(t *testing.T) {
	p := nycProjection()
	x, y := p.Project(math.NaN(), math.NaN())
	assert.True(t, math.IsNaN(x))
	assert.True(t, math.IsNaN(y))
}

func TestProjectRing(t *testing.T) {
	p := nycProjection()
	pts := p.ProjectRing(orb.Ring{{-74.006, 40.7128}, {-73.906, 40.7128}})
	assert.Len(t, pts, 2)
	assert.InDelta(t, 400, pts[0][0], 1e-6)
	assert.Greater(t, pts[1][0], pts[0][0])
}

func TestTransform(t *testing.T) {
	tr := Transform{K: 2, X: 10, Y: -5}
	x, y := tr.Apply(3, 4)
	assert.InDelta(t, 16, x, 1e-9)
	assert.InDelta(t, 3, y, 1e-9)

	ix, iy := tr.Invert(x, y)
	assert.InDelta(t, 3, ix, 1e-9)
	assert.InDelta(t, 4, iy, 1e-9)

	assert.True(t, Identity.IsIdentity())
	assert.False(t, tr.IsIdentity())
}
