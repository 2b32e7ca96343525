package render

import (
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"treemap/internal/geom"
)

// Polygon is a boundary as it appears in a scene.
type Polygon struct {
	Name   string
	Rings  [][][2]float64
	Fill   colorful.Color
	Stroke colorful.Color
}

// Dot is a tree circle as it appears in a scene.
type Dot struct {
	ID      int
	X, Y    float64
	R       float64
	Fill    colorful.Color
	Opacity float64
}

// Scene is a frozen frame: map content in canvas pixels under Transform,
// plus the legend, which is not transformed.
type Scene struct {
	Width      int
	Height     int
	Transform  geom.Transform
	Boundaries []Polygon
	Trees      []Dot
	Legend     []LegendEntry
	LegendX    float64
	LegendY    float64
}

// Scene snapshots the engine at now under the view transform t.
func (e *Engine) Scene(now time.Time, t geom.Transform) Scene {
	lx, ly := LegendOrigin(e.Width)
	s := Scene{
		Width:      e.Width,
		Height:     e.Height,
		Transform:  t,
		Boundaries: make([]Polygon, 0, len(e.shapes)),
		Trees:      make([]Dot, 0, len(e.order)),
		Legend:     Legend,
		LegendX:    lx,
		LegendY:    ly,
	}
	for _, sh := range e.shapes {
		s.Boundaries = append(s.Boundaries, Polygon{
			Name:   sh.Name,
			Rings:  sh.Rings,
			Fill:   sh.Fill(),
			Stroke: BoundaryStroke,
		})
	}
	for _, id := range e.order {
		c := e.circles[id]
		s.Trees = append(s.Trees, Dot{
			ID:      c.ID,
			X:       c.X,
			Y:       c.Y,
			R:       c.Radius(now, e.EnterDuration),
			Fill:    c.Fill,
			Opacity: TreeOpacity,
		})
	}
	return s
}
