package render

import (
	"time"

	"github.com/dhconnelly/rtreego"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"go.uber.org/zap"

	"treemap/internal/geom"
	"treemap/internal/trees"
)

// DefaultEnterDuration is how long a new circle takes to grow to full size.
const DefaultEnterDuration = 500 * time.Millisecond

// Shape is a projected boundary feature.
type Shape struct {
	Name string
	// Rings holds every ring of every member polygon in canvas pixels.
	Rings       [][][2]float64
	Highlighted bool

	feature geom.Feature
}

// Fill is the current boundary fill.
func (s *Shape) Fill() colorful.Color {
	if s.Highlighted {
		return HighlightFill
	}
	return BoundaryFill
}

// Contains reports whether the lon/lat point lies inside the feature.
func (s *Shape) Contains(lon, lat float64) bool {
	pt := orb.Point{lon, lat}
	if !s.feature.Bound().Contains(pt) {
		return false
	}
	for _, p := range s.feature.Polygons() {
		if planar.PolygonContains(p, pt) {
			return true
		}
	}
	return false
}

// Circle is the drawn primitive of one tree.
type Circle struct {
	ID     int
	X, Y   float64
	Target float64 // settled radius
	Fill   colorful.Color
	Record trees.Record

	born time.Time
	seq  uint64
	rect rtreego.Rect
}

// Radius is the animated radius at now.
func (c *Circle) Radius(now time.Time, enter time.Duration) float64 {
	return c.Target * geom.Progress(c.born, now, enter)
}

// Diff lists the keys a DrawTrees call added and removed.
type Diff struct {
	Entered []int
	Exited  []int
}

// Option configures an Engine.
type Option func(*Engine)

// WithEnterDuration overrides the grow-in animation length.
func WithEnterDuration(d time.Duration) Option {
	return func(e *Engine) { e.EnterDuration = d }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// Engine keeps the boundary and tree primitives for one canvas and reconciles
// the drawn trees against the visible subset.
type Engine struct {
	Projection    geom.Projection
	Width         int
	Height        int
	EnterDuration time.Duration

	now     func() time.Time
	shapes  []*Shape
	circles map[int]*Circle
	order   []int
	seq     uint64
	index   *circleIndex
	log     *zap.Logger
}

// NewEngine returns an empty engine for a width x height canvas.
func NewEngine(proj geom.Projection, width, height int, opts ...Option) *Engine {
	e := &Engine{
		Projection:    proj,
		Width:         width,
		Height:        height,
		EnterDuration: DefaultEnterDuration,
		now:           time.Now,
		circles:       make(map[int]*Circle),
		index:         newCircleIndex(),
		log:           zap.L().With(zap.String("component", "render")),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// SetBoundaries projects features into shapes, replacing any previous set.
func (e *Engine) SetBoundaries(features []geom.Feature) {
	e.shapes = e.shapes[:0]
	for _, f := range features {
		s := &Shape{Name: f.Name, feature: f}
		for _, poly := range f.Polygons() {
			for _, ring := range poly {
				s.Rings = append(s.Rings, e.Projection.ProjectRing(ring))
			}
		}
		e.shapes = append(e.shapes, s)
	}
	e.log.Debug("boundaries drawn", zap.Int("shapes", len(e.shapes)))
}

// Shapes returns the boundary primitives in draw order.
func (e *Engine) Shapes() []*Shape {
	return e.shapes
}

// DrawTrees reconciles the drawn circles with subset, keyed by record ID.
// New keys enter with a zero radius and grow; kept keys are left untouched;
// missing keys are removed at once.
func (e *Engine) DrawTrees(subset []trees.Record) Diff {
	var diff Diff
	want := make(map[int]struct{}, len(subset))
	now := e.now()

	for _, r := range subset {
		if _, dup := want[r.ID]; dup {
			continue
		}
		want[r.ID] = struct{}{}
		if _, ok := e.circles[r.ID]; ok {
			continue
		}
		x, y := e.Projection.Project(r.Longitude, r.Latitude)
		e.seq++
		c := &Circle{
			ID:     r.ID,
			X:      x,
			Y:      y,
			Target: Radius(r.Diameter),
			Fill:   HealthColor(r.Health),
			Record: r,
			born:   now,
			seq:    e.seq,
		}
		c.rect = circleRect(x, y, c.Target)
		e.circles[r.ID] = c
		e.index.insert(c)
		diff.Entered = append(diff.Entered, r.ID)
	}

	kept := e.order[:0]
	for _, id := range e.order {
		if _, ok := want[id]; ok {
			kept = append(kept, id)
			continue
		}
		e.index.remove(e.circles[id])
		delete(e.circles, id)
		diff.Exited = append(diff.Exited, id)
	}
	e.order = append(kept, diff.Entered...)

	e.log.Debug("trees drawn",
		zap.Int("visible", len(e.order)),
		zap.Int("entered", len(diff.Entered)),
		zap.Int("exited", len(diff.Exited)))
	return diff
}

// Circles returns the drawn circles in draw order.
func (e *Engine) Circles() []*Circle {
	out := make([]*Circle, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, e.circles[id])
	}
	return out
}

// Circle looks up a drawn circle by record ID.
func (e *Engine) Circle(id int) (*Circle, bool) {
	c, ok := e.circles[id]
	return c, ok
}

// Len is the number of drawn circles.
func (e *Engine) Len() int {
	return len(e.order)
}

// Animating reports whether any circle is still growing at now.
func (e *Engine) Animating(now time.Time) bool {
	for _, c := range e.circles {
		if now.Sub(c.born) < e.EnterDuration {
			return true
		}
	}
	return false
}

// HitTree finds the topmost circle covering canvas point (x, y), with slack
// extra pixels of tolerance.
func (e *Engine) HitTree(x, y, slack float64) (*Circle, bool) {
	c := e.index.at(x, y, slack)
	return c, c != nil
}

// HitBoundary finds the boundary containing canvas point (x, y).
func (e *Engine) HitBoundary(x, y float64) (*Shape, bool) {
	lon, lat := e.Projection.Invert(x, y)
	for i := len(e.shapes) - 1; i >= 0; i-- {
		if e.shapes[i].Contains(lon, lat) {
			return e.shapes[i], true
		}
	}
	return nil, false
}

// SetHighlight highlights the named boundary and clears the rest. An empty
// name clears all. It reports whether anything changed.
func (e *Engine) SetHighlight(name string) bool {
	changed := false
	for _, s := range e.shapes {
		on := name != "" && s.Name == name
		if s.Highlighted != on {
			s.Highlighted = on
			changed = true
		}
	}
	return changed
}

// Highlighted returns the name of the highlighted boundary, if any.
func (e *Engine) Highlighted() string {
	for _, s := range e.shapes {
		if s.Highlighted {
			return s.Name
		}
	}
	return ""
}
