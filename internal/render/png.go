package render

import (
	"bufio"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/clip"
	"github.com/rotisserie/eris"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"treemap/internal/geom"
)

// circleSegments approximates circles as regular polygons.
const circleSegments = 48

// Rasterize paints the scene onto a transparent Width x Height image.
func Rasterize(s Scene) (*image.RGBA, error) {
	if s.Width <= 0 || s.Height <= 0 {
		return nil, eris.Errorf("render: canvas %dx%d has no area", s.Width, s.Height)
	}
	img := image.NewRGBA(image.Rect(0, 0, s.Width, s.Height))
	r := &raster{dst: img, z: vector.NewRasterizer(s.Width, s.Height)}
	// Clip a little outside the canvas so strokes on the edge keep both sides.
	view := orb.Bound{Min: orb.Point{-2, -2}, Max: orb.Point{float64(s.Width) + 2, float64(s.Height) + 2}}
	t := s.Transform

	for _, p := range s.Boundaries {
		r.begin()
		for _, ring := range p.Rings {
			r.ring(clip.Ring(view, transformRing(t, ring)))
		}
		r.paint(p.Fill, 1)

		r.begin()
		for _, ring := range p.Rings {
			line := orb.LineString(transformRing(t, ring))
			if len(line) > 0 {
				line = append(line, line[0])
			}
			for _, part := range clip.LineString(view, line) {
				r.stroke(part, StrokeWidth*t.K)
			}
		}
		r.paint(p.Stroke, 1)
	}

	for _, d := range s.Trees {
		if d.R <= 0 {
			continue
		}
		x, y := t.Apply(d.X, d.Y)
		rad := d.R * t.K
		if x+rad < 0 || y+rad < 0 || x-rad > float64(s.Width) || y-rad > float64(s.Height) {
			continue
		}
		r.begin()
		r.circle(x, y, rad)
		r.paint(d.Fill, d.Opacity)
	}

	drawLegend(img, s)
	return img, nil
}

// WritePNG rasterizes the scene and encodes it as PNG.
func WritePNG(w io.Writer, s Scene) error {
	img, err := Rasterize(s)
	if err != nil {
		return err
	}
	return eris.Wrap(png.Encode(w, img), "render: encode png")
}

// SavePNG writes the scene to path, replacing any existing file.
func SavePNG(path string, s Scene) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "render: create %s", path)
	}
	bw := bufio.NewWriter(f)
	if err := WritePNG(bw, s); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return eris.Wrap(err, "render: flush png")
	}
	return eris.Wrap(f.Close(), "render: close png")
}

// SaveSVG writes the scene to path as SVG.
func SaveSVG(path string, s Scene) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "render: create %s", path)
	}
	if err := WriteSVG(f, s); err != nil {
		f.Close()
		return err
	}
	return eris.Wrap(f.Close(), "render: close svg")
}

func transformRing(t geom.Transform, ring [][2]float64) orb.Ring {
	out := make(orb.Ring, 0, len(ring))
	for _, p := range ring {
		x, y := t.Apply(p[0], p[1])
		out = append(out, orb.Point{x, y})
	}
	return out
}

type raster struct {
	dst *image.RGBA
	z   *vector.Rasterizer
}

func (r *raster) begin() {
	b := r.dst.Bounds()
	r.z.Reset(b.Dx(), b.Dy())
}

func (r *raster) ring(ring orb.Ring) {
	if len(ring) < 3 {
		return
	}
	r.z.MoveTo(float32(ring[0][0]), float32(ring[0][1]))
	for _, p := range ring[1:] {
		r.z.LineTo(float32(p[0]), float32(p[1]))
	}
	r.z.ClosePath()
}

// stroke adds one quad per segment; overlapping quads share a winding so the
// joins do not cancel.
func (r *raster) stroke(line orb.LineString, width float64) {
	half := width / 2
	for i := 0; i+1 < len(line); i++ {
		a, b := line[i], line[i+1]
		dx, dy := b[0]-a[0], b[1]-a[1]
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*half, dx/l*half
		r.z.MoveTo(float32(a[0]+nx), float32(a[1]+ny))
		r.z.LineTo(float32(b[0]+nx), float32(b[1]+ny))
		r.z.LineTo(float32(b[0]-nx), float32(b[1]-ny))
		r.z.LineTo(float32(a[0]-nx), float32(a[1]-ny))
		r.z.ClosePath()
	}
}

func (r *raster) circle(cx, cy, rad float64) {
	for i := 0; i < circleSegments; i++ {
		a := 2 * math.Pi * float64(i) / circleSegments
		x, y := float32(cx+rad*math.Cos(a)), float32(cy+rad*math.Sin(a))
		if i == 0 {
			r.z.MoveTo(x, y)
		} else {
			r.z.LineTo(x, y)
		}
	}
	r.z.ClosePath()
}

func (r *raster) paint(c colorful.Color, opacity float64) {
	r.z.Draw(r.dst, r.dst.Bounds(), image.NewUniform(nrgba(c, opacity)), image.Point{})
}

func nrgba(c colorful.Color, opacity float64) color.NRGBA {
	cr, cg, cb := c.RGB255()
	return color.NRGBA{R: cr, G: cg, B: cb, A: uint8(math.Round(255 * opacity))}
}

func drawLegend(img *image.RGBA, s Scene) {
	ox, oy := int(s.LegendX), int(s.LegendY)
	face := basicfont.Face7x13
	for i, e := range s.Legend {
		y := oy + i*LegendStep
		sw := image.Rect(ox, y, ox+LegendSwatch, y+LegendSwatch)
		draw.Draw(img, sw, image.NewUniform(nrgba(e.Color, 1)), image.Point{}, draw.Src)
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(nrgba(LegendText, 1)),
			Face: face,
			Dot:  fixed.Point26_6{X: fixed.I(ox + LegendTextX), Y: fixed.I(y + LegendTextBase)},
		}
		d.DrawString(e.Label)
	}
}
