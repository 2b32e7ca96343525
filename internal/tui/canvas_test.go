package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treemap/internal/geom"
	"treemap/internal/render"
)

func TestViewport_FitsCanvas(t *testing.T) {
	vp := newViewport(89, 37, 800, 600)
	assert.InDelta(t, 0.2225, vp.scale, 1e-9)
	assert.InDelta(t, 0, vp.offX, 1e-9)

	x, y := vp.cellToView(44, 18)
	assert.InDelta(t, 400, x, 1e-6)
	assert.InDelta(t, 300, y, 1e-6)

	mx, my := vp.toMicro(x, y)
	assert.InDelta(t, 89, mx, 1e-6)
	assert.InDelta(t, 74, my, 1e-6)
}

func TestBrailleBuf_Layers(t *testing.T) {
	b := newBrailleBuf(2, 1)
	red := colorful.Color{R: 1}
	blue := colorful.Color{B: 1}

	b.setPixel(0, 0, red, layerTree)
	b.setPixel(1, 0, blue, layerStroke)
	assert.Equal(t, uint8(0x01), b.m[0][0], "lower layer does not draw over a higher one")
	assert.Equal(t, red, b.fg[0][0])

	b.setPixel(1, 1, blue, layerFocus)
	assert.Equal(t, uint8(0x10), b.m[0][0], "higher layer replaces the cell")
	assert.Equal(t, blue, b.fg[0][0])

	b.setPixel(-1, 0, red, layerFocus)
	b.setPixel(4, 0, red, layerFocus)
	assert.Zero(t, b.m[0][1])
}

func TestRenderScene(t *testing.T) {
	ring := [][2]float64{{100, 100}, {700, 100}, {700, 500}, {100, 500}}
	s := render.Scene{
		Width: 800, Height: 600, Transform: geom.Identity,
		Boundaries: []render.Polygon{{Name: "box", Rings: [][][2]float64{ring}, Fill: render.BoundaryFill, Stroke: render.BoundaryStroke}},
		Trees:      []render.Dot{{ID: 1, X: 400, Y: 300, R: 20, Fill: render.ColorGood, Opacity: 0.8}},
	}
	vp := newViewport(40, 15, 800, 600)
	out := renderScene(s, vp, overlay{focusID: 1})
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 15)
	for _, l := range lines {
		assert.Equal(t, 40, lipgloss.Width(l))
	}
	assert.True(t, strings.ContainsFunc(out, func(r rune) bool { return r > 0x2800 && r <= 0x28ff }))
}

func TestRenderScene_CursorAndTooltip(t *testing.T) {
	s := render.Scene{Width: 800, Height: 600, Transform: geom.Identity}
	vp := newViewport(40, 15, 800, 600)
	fg := colorful.Color{R: 1, G: 1, B: 1}

	out := renderScene(s, vp, overlay{
		cursor: true, cursorX: 10, cursorY: 7,
		tip:   []string{"Species: pin oak", "Health: Good"},
		tipFg: fg, tipBg: tooltipFrom,
	})
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 15)

	// centre dots of the pointer cell
	assert.Contains(t, lines[7], string(rune(0x2800+0x36)))
	// box starts one row up, two cells right
	assert.Contains(t, lines[6], "Species: pin oak")
	assert.Contains(t, lines[7], "Health: Good")
	for _, l := range lines {
		assert.Equal(t, 40, lipgloss.Width(l))
	}
}

func TestDrawTip_StaysOnMap(t *testing.T) {
	b := newBrailleBuf(30, 6)
	tip := []string{"Species: pin oak", "Health: Good"}

	// near the right edge the box flips to the left of the anchor
	drawTip(b, 28, 3, tip, tooltipTo, tooltipFrom)
	row := string(b.text[2])
	assert.Contains(t, row, "Species: pin oak")
	assert.Zero(t, b.text[2][29], "nothing written past the anchor")

	// at the top edge the box is pushed down onto the map
	b = newBrailleBuf(30, 6)
	drawTip(b, 0, 0, tip, tooltipTo, tooltipFrom)
	assert.Equal(t, 'S', b.text[0][3])
	assert.Equal(t, 'H', b.text[1][3])

	// at the bottom edge it is pushed up
	b = newBrailleBuf(30, 6)
	drawTip(b, 0, 5, tip, tooltipTo, tooltipFrom)
	assert.Equal(t, 'S', b.text[4][3])
	assert.Equal(t, 'H', b.text[5][3])
}
