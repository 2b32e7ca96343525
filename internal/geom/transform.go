package geom

import (
	"math"
	"time"
)

// Transform is a zoom/pan affine: screen = K*p + (X, Y).
type Transform struct {
	K float64
	X float64
	Y float64
}

// Identity is the untransformed view.
var Identity = Transform{K: 1}

// Apply maps a canvas point into the transformed view.
func (t Transform) Apply(x, y float64) (float64, float64) {
	return x*t.K + t.X, y*t.K + t.Y
}

// Invert maps a view point back onto the canvas.
func (t Transform) Invert(x, y float64) (float64, float64) {
	return (x - t.X) / t.K, (y - t.Y) / t.K
}

// IsIdentity reports whether t is (numerically) the identity.
func (t Transform) IsIdentity() bool {
	const eps = 1e-9
	return math.Abs(t.K-1) < eps && math.Abs(t.X) < eps && math.Abs(t.Y) < eps
}

// Lerp interpolates between two transforms component-wise.
func Lerp(a, b Transform, t float64) Transform {
	return Transform{
		K: a.K + (b.K-a.K)*t,
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}

// EaseCubicInOut is the symmetric cubic easing on [0, 1]; inputs outside are clamped.
func EaseCubicInOut(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	case t < 0.5:
		return 4 * t * t * t
	}
	u := 2*t - 2
	return 1 + u*u*u/2
}

// Progress is the eased completion of an animation that started at start and lasts d.
func Progress(start, now time.Time, d time.Duration) float64 {
	if d <= 0 {
		return 1
	}
	return EaseCubicInOut(float64(now.Sub(start)) / float64(d))
}
