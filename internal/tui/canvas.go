package tui

import (
	"math"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"treemap/internal/render"
)

// focusColor outlines the hovered tree and marks the pointer cell.
var focusColor = colorful.Color{R: 1, G: 0.647, B: 0}

// Tooltip placement relative to its anchor cell, in cells.
const (
	tipOffsetX = 2
	tipOffsetY = -1
)

// overlay is what the map draws on top of the scene: the focused tree, the
// pointer cursor and the tooltip box.
type overlay struct {
	focusID          int
	cursor           bool
	cursorX, cursorY int
	tip              []string
	tipFg, tipBg     colorful.Color
}

// viewport fits the fixed-size canvas into a block of terminal cells. Braille
// micro-pixels are close to square, so one uniform scale keeps the map's aspect.
type viewport struct {
	w, h       int // cells
	scale      float64
	offX, offY float64 // micro-pixels
}

func newViewport(w, h, canvasW, canvasH int) viewport {
	mw, mh := float64(w*2), float64(h*4)
	s := math.Min(mw/float64(canvasW), mh/float64(canvasH))
	return viewport{
		w:     w,
		h:     h,
		scale: s,
		offX:  (mw - float64(canvasW)*s) / 2,
		offY:  (mh - float64(canvasH)*s) / 2,
	}
}

// toMicro maps a view pixel to a micro-pixel.
func (v viewport) toMicro(x, y float64) (float64, float64) {
	return v.offX + x*v.scale, v.offY + y*v.scale
}

// cellToView maps the centre of a cell back to a view pixel.
func (v viewport) cellToView(cx, cy int) (float64, float64) {
	mx, my := float64(cx*2)+1, float64(cy*4)+2
	return (mx - v.offX) / v.scale, (my - v.offY) / v.scale
}

// renderScene rasterises a scene onto a cell grid: boundary fills as cell
// backgrounds, edges and trees as braille dots, then the overlay.
func renderScene(s render.Scene, vp viewport, o overlay) string {
	buf := newBrailleBuf(vp.w, vp.h)
	t := s.Transform

	for _, p := range s.Boundaries {
		rings := make([][][2]float64, 0, len(p.Rings))
		for _, r := range p.Rings {
			mr := make([][2]float64, 0, len(r))
			for _, pt := range r {
				x, y := t.Apply(pt[0], pt[1])
				mx, my := vp.toMicro(x, y)
				mr = append(mr, [2]float64{mx, my})
			}
			if len(mr) >= 3 {
				rings = append(rings, mr)
			}
		}
		fillRings(buf, rings, p.Fill)
		for _, r := range rings {
			for i := range r {
				a, b := r[i], r[(i+1)%len(r)]
				buf.drawLineMicro(int(a[0]), int(a[1]), int(b[0]), int(b[1]), p.Stroke, layerStroke)
			}
		}
	}

	var (
		focusX, focusY int
		hasFocus       bool
	)
	for _, d := range s.Trees {
		if d.R <= 0 {
			continue
		}
		x, y := t.Apply(d.X, d.Y)
		mx, my := vp.toMicro(x, y)
		r := d.R * t.K * vp.scale
		c := d.Fill
		cx, cy := int(mx)/2, int(my)/4
		if cy >= 0 && cy < buf.h && cx >= 0 && cx < buf.w && buf.hasBg[cy][cx] {
			c = c.BlendRgb(buf.bg[cy][cx], 1-d.Opacity)
		}
		buf.fillDisc(mx, my, r, c, layerTree)
		if d.ID == o.focusID {
			outline(buf, mx, my, math.Max(r+1.5, 2.5))
			if mx >= 0 && my >= 0 && cx < buf.w && cy < buf.h {
				focusX, focusY, hasFocus = cx, cy, true
			}
		}
	}

	if o.cursor {
		markCell(buf, o.cursorX, o.cursorY)
		focusX, focusY, hasFocus = o.cursorX, o.cursorY, true
	}
	if hasFocus && len(o.tip) > 0 {
		drawTip(buf, focusX, focusY, o.tip, o.tipFg, o.tipBg)
	}
	return strings.Join(buf.toLines(), "\n")
}

// markCell lights the four centre dots of a cell above everything else.
func markCell(buf *brailleBuf, cx, cy int) {
	for _, d := range [][2]int{{0, 1}, {1, 1}, {0, 2}, {1, 2}} {
		buf.setPixel(cx*2+d[0], cy*4+d[1], focusColor, layerCursor)
	}
}

// drawTip writes the tooltip box next to the anchor cell, flipping to the
// left and shifting vertically so it stays on the map.
func drawTip(buf *brailleBuf, ax, ay int, lines []string, fg, bg colorful.Color) {
	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l))+2)
	}
	x := ax + tipOffsetX
	if x+w > buf.w {
		x = ax - tipOffsetX - w + 1
	}
	x = max(0, x)
	y := min(ay+tipOffsetY, buf.h-len(lines))
	y = max(0, y)
	for i, l := range lines {
		pad := w - len([]rune(l)) - 1
		buf.putText(x, y+i, " "+l+strings.Repeat(" ", pad), fg, bg)
	}
}

// fillRings fills cells whose centre lies inside the rings (even-odd, so holes
// stay empty) using one scanline per cell row.
func fillRings(buf *brailleBuf, rings [][][2]float64, c colorful.Color) {
	for cy := 0; cy < buf.h; cy++ {
		y := float64(cy*4) + 2
		var xs []float64
		for _, r := range rings {
			for i := range r {
				a, b := r[i], r[(i+1)%len(r)]
				if a[1] == b[1] {
					continue
				}
				if (y >= a[1] && y < b[1]) || (y >= b[1] && y < a[1]) {
					t := (y - a[1]) / (b[1] - a[1])
					xs = append(xs, a[0]+t*(b[0]-a[0]))
				}
			}
		}
		if len(xs) < 2 {
			continue
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			start := int(math.Ceil((xs[i] - 1) / 2))
			end := int(math.Floor((xs[i+1] - 1) / 2))
			for cx := max(0, start); cx <= end && cx < buf.w; cx++ {
				buf.setBackground(cx, cy, c)
			}
		}
	}
}

func outline(buf *brailleBuf, cx, cy, r float64) {
	steps := max(12, int(2*math.Pi*r))
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		buf.setPixel(int(cx+r*math.Cos(a)), int(cy+r*math.Sin(a)), focusColor, layerFocus)
	}
}
