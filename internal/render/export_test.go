package render

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treemap/internal/geom"
	"treemap/internal/trees"
)

func settledScene(t *testing.T, tr geom.Transform) Scene {
	t.Helper()
	clock := &fakeClock{t: time.Unix(0, 0)}
	e := newTestEngine(clock)
	e.SetBoundaries([]geom.Feature{square("Manhattan", -74.006, 40.7128, 0.005)})
	e.DrawTrees([]trees.Record{
		rec(1, -73.96, 40.7128, trees.Poor, 100, "Brooklyn"),
		rec(2, -73.95, 40.70, trees.Good, 4, "Brooklyn"),
		rec(3, -73.94, 40.69, "", 0, "Brooklyn"),
	})
	return e.Scene(clock.t.Add(time.Second), tr)
}

func TestScene(t *testing.T) {
	s := settledScene(t, geom.Identity)
	assert.Equal(t, 800, s.Width)
	assert.Len(t, s.Boundaries, 1)
	require.Len(t, s.Trees, 3)
	assert.InDelta(t, 7, s.Trees[0].R, 1e-9)
	assert.InDelta(t, 0.8, s.Trees[0].Opacity, 1e-12)
	assert.InDelta(t, 650, s.LegendX, 1e-12)
}

func TestWriteSVG(t *testing.T) {
	s := settledScene(t, geom.Transform{K: 2, X: -100, Y: 50})
	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, s))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" width="800" height="600">`))
	assert.Equal(t, 3, strings.Count(out, "<circle "))
	assert.Equal(t, 4, strings.Count(out, "<rect "))
	assert.Contains(t, out, `translate(-100,50) scale(2)`)
	assert.Contains(t, out, `translate(650,50)`)
	assert.Contains(t, out, `fill="#e74c3c"`)
	assert.Contains(t, out, "<title>Manhattan</title>")
	assert.Contains(t, out, ">Data Not Available</text>")
}

func TestWriteSVG_EscapesNames(t *testing.T) {
	s := Scene{Width: 10, Height: 10, Transform: geom.Identity, Boundaries: []Polygon{{Name: "A & B"}}}
	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, s))
	assert.Contains(t, buf.String(), "A &amp; B")
}

func TestWritePNG(t *testing.T) {
	s := settledScene(t, geom.Identity)
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, s))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 600, img.Bounds().Dy())

	// Centre of the boundary square is filled with the boundary colour.
	r, g, b, a := img.At(400, 300).RGBA()
	assert.Equal(t, uint32(0xffff), a)
	assert.InDelta(t, 0xec, r>>8, 1)
	assert.InDelta(t, 0xf0, g>>8, 1)
	assert.InDelta(t, 0xf1, b>>8, 1)

	// Corner is untouched.
	_, _, _, a = img.At(2, 598).RGBA()
	assert.Zero(t, a)

	// First legend swatch is solid green.
	r, g, b, _ = img.At(655, 55).RGBA()
	assert.Equal(t, [3]uint32{0x27, 0xae, 0x60}, [3]uint32{r >> 8, g >> 8, b >> 8})
}

func TestWritePNG_SizeIndependentOfZoom(t *testing.T) {
	s := settledScene(t, geom.Transform{K: 8, X: -2800, Y: -2100})
	img, err := Rasterize(s)
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 600, img.Bounds().Dy())
}

func TestRasterize_EmptyCanvas(t *testing.T) {
	_, err := Rasterize(Scene{})
	assert.Error(t, err)
}

func TestSavePNGAndSVG(t *testing.T) {
	dir := t.TempDir()
	s := settledScene(t, geom.Identity)

	pngPath := filepath.Join(dir, "tree_map.png")
	require.NoError(t, SavePNG(pngPath, s))
	f, err := os.Open(pngPath)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Width)

	svgPath := filepath.Join(dir, "tree_map.svg")
	require.NoError(t, SaveSVG(svgPath, s))
	data, err := os.ReadFile(svgPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "</svg>")

	assert.Error(t, SavePNG(filepath.Join(dir, "missing", "x.png"), s))
}
