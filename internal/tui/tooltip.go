package tui

import (
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"treemap/internal/geom"
	"treemap/internal/render"
	"treemap/internal/trees"
)

// tooltipState fades the hovered tree's details in and out.
type tooltipState struct {
	record  trees.Record
	visible bool
	changed time.Time
	fade    time.Duration
}

func (t *tooltipState) show(r trees.Record, now time.Time) {
	if t.visible && t.record.ID == r.ID {
		return
	}
	if !t.visible {
		t.changed = now
	}
	t.record = r
	t.visible = true
}

func (t *tooltipState) hide(now time.Time) {
	if !t.visible {
		return
	}
	t.visible = false
	t.changed = now
}

// alpha is the tooltip opacity at now, 0..1.
func (t tooltipState) alpha(now time.Time) float64 {
	if t.changed.IsZero() {
		return 0
	}
	p := geom.Progress(t.changed, now, t.fade)
	if t.visible {
		return p
	}
	return 1 - p
}

func (t tooltipState) fading(now time.Time) bool {
	return !t.changed.IsZero() && now.Sub(t.changed) < t.fade
}

var (
	tooltipFrom = colorful.Color{R: 0.06, G: 0.08, B: 0.1}
	tooltipTo   = colorful.Color{R: 0.9, G: 0.9, B: 0.9}
)

// lines returns the tooltip text and its colours at now, or nil once fully
// faded out. Fading blends the text into the box background.
func (t tooltipState) lines(now time.Time) ([]string, colorful.Color) {
	a := t.alpha(now)
	if a <= 0 {
		return nil, tooltipFrom
	}
	out := make([]string, 0, 4)
	for _, l := range render.Tooltip(t.record) {
		out = append(out, l.Label+": "+l.Value)
	}
	return out, tooltipFrom.BlendRgb(tooltipTo, a)
}
