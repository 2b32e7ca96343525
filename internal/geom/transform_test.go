package geom

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEaseCubicInOut(t *testing.T) {
	assert.InDelta(t, 0, EaseCubicInOut(-1), 1e-12)
	assert.InDelta(t, 0.5, EaseCubicInOut(0.5), 1e-12)
	assert.InDelta(t, 1, EaseCubicInOut(2), 1e-12)
	assert.Less(t, EaseCubicInOut(0.25), 0.25)
	assert.Greater(t, EaseCubicInOut(0.75), 0.75)
}

func TestLerp(t *testing.T) {
	a := Transform{K: 4, X: 100, Y: -40}
	assert.Equal(t, a, Lerp(a, Identity, 0))
	assert.True(t, Lerp(a, Identity, 1).IsIdentity())
	assert.Equal(t, Transform{K: 2.5, X: 50, Y: -20}, Lerp(a, Identity, 0.5))
}

func TestProgress(t *testing.T) {
	start := time.Unix(0, 0)
	assert.InDelta(t, 0, Progress(start, start, time.Second), 1e-12)
	assert.InDelta(t, 0.5, Progress(start, start.Add(500*time.Millisecond), time.Second), 1e-12)
	assert.InDelta(t, 1, Progress(start, start.Add(3*time.Second), time.Second), 1e-12)
	assert.InDelta(t, 1, Progress(start, start, 0), 1e-12)
}
