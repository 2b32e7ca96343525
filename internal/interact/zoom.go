package interact

import (
	"math"
	"time"

	"treemap/internal/geom"
)

// Zoom owns the view transform: scale clamped to [Min, Max], free panning,
// and an animated reset to identity.
type Zoom struct {
	Min           float64
	Max           float64
	ResetDuration time.Duration

	t    geom.Transform
	anim *transition
}

type transition struct {
	from, to geom.Transform
	start    time.Time
	dur      time.Duration
}

// NewZoom returns an identity view constrained to [min, max].
func NewZoom(min, max float64, reset time.Duration) *Zoom {
	return &Zoom{Min: min, Max: max, ResetDuration: reset, t: geom.Identity}
}

// Clamp bounds a requested scale. A non-finite scale falls back to Min.
func (z *Zoom) Clamp(k float64) float64 {
	if math.IsNaN(k) || math.IsInf(k, 0) || k < z.Min {
		return z.Min
	}
	if k > z.Max {
		return z.Max
	}
	return k
}

// Transform returns the transform at now, advancing any running reset.
func (z *Zoom) Transform(now time.Time) geom.Transform {
	if z.anim == nil {
		return z.t
	}
	elapsed := now.Sub(z.anim.start)
	if elapsed >= z.anim.dur || z.anim.dur <= 0 {
		z.t = z.anim.to
		z.anim = nil
		return z.t
	}
	return geom.Lerp(z.anim.from, z.anim.to, geom.Progress(z.anim.start, now, z.anim.dur))
}

// Animating reports whether a reset is still in flight at now.
func (z *Zoom) Animating(now time.Time) bool {
	return z.anim != nil && now.Sub(z.anim.start) < z.anim.dur
}

// Set replaces the transform, clamping its scale and zeroing non-finite
// offsets. A running reset is abandoned.
func (z *Zoom) Set(t geom.Transform) geom.Transform {
	t.K = z.Clamp(t.K)
	t.X = finite(t.X)
	t.Y = finite(t.Y)
	z.t = t
	z.anim = nil
	return t
}

// ScaleTo zooms to scale k keeping the canvas point under anchor (view coordinates) fixed.
func (z *Zoom) ScaleTo(now time.Time, k, ax, ay float64) geom.Transform {
	cur := z.Transform(now)
	k = z.Clamp(k)
	px, py := cur.Invert(ax, ay)
	return z.Set(geom.Transform{K: k, X: ax - px*k, Y: ay - py*k})
}

// ScaleBy multiplies the current scale by factor around anchor.
func (z *Zoom) ScaleBy(now time.Time, factor, ax, ay float64) geom.Transform {
	return z.ScaleTo(now, z.Transform(now).K*factor, ax, ay)
}

// Pan shifts the view by (dx, dy) view pixels.
func (z *Zoom) Pan(now time.Time, dx, dy float64) geom.Transform {
	cur := z.Transform(now)
	cur.X += dx
	cur.Y += dy
	return z.Set(cur)
}

// Reset starts an animated return to identity. The final transform is always identity.
func (z *Zoom) Reset(now time.Time) {
	from := z.Transform(now)
	if z.ResetDuration <= 0 || from.IsIdentity() {
		z.t = geom.Identity
		z.anim = nil
		return
	}
	z.anim = &transition{from: from, to: geom.Identity, start: now, dur: z.ResetDuration}
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
