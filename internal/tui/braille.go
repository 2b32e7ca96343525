package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// layer orders what wins the foreground of a cell.
type layer uint8

const (
	layerNone layer = iota
	layerStroke
	layerTree
	layerFocus
	layerCursor
)

// brailleBuf is a w x h cell grid with a 2x4 dot microgrid per cell. Each
// cell carries one foreground colour (the highest layer drawn into it) and an
// optional background colour. Text cells replace the braille glyph entirely.
type brailleBuf struct {
	w, h  int // in cells
	m     [][]uint8
	fg    [][]colorful.Color
	fgL   [][]layer
	bg    [][]colorful.Color
	hasBg [][]bool
	text  [][]rune
}

func newBrailleBuf(w, h int) *brailleBuf {
	b := &brailleBuf{w: w, h: h}
	b.m = make([][]uint8, h)
	b.fg = make([][]colorful.Color, h)
	b.fgL = make([][]layer, h)
	b.bg = make([][]colorful.Color, h)
	b.hasBg = make([][]bool, h)
	b.text = make([][]rune, h)
	for i := 0; i < h; i++ {
		b.m[i] = make([]uint8, w)
		b.fg[i] = make([]colorful.Color, w)
		b.fgL[i] = make([]layer, w)
		b.bg[i] = make([]colorful.Color, w)
		b.hasBg[i] = make([]bool, w)
		b.text[i] = make([]rune, w)
	}
	return b
}

// dotBit is the braille bit for a dot at column rx (0..1), row ry (0..3).
var dotBit = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell).
func (b *brailleBuf) setPixel(mx, my int, c colorful.Color, l layer) {
	if mx < 0 || my < 0 {
		return
	}
	cx, cy := mx/2, my/4
	if cy >= b.h || cx >= b.w {
		return
	}
	if l < b.fgL[cy][cx] {
		return
	}
	if l > b.fgL[cy][cx] {
		// a higher layer takes the cell over
		b.m[cy][cx] = 0
		b.fgL[cy][cx] = l
	}
	b.m[cy][cx] |= dotBit[mx%2][my%4]
	b.fg[cy][cx] = c
}

// setBackground paints a whole cell's background.
func (b *brailleBuf) setBackground(cx, cy int, c colorful.Color) {
	if cx < 0 || cy < 0 || cx >= b.w || cy >= b.h {
		return
	}
	b.bg[cy][cx] = c
	b.hasBg[cy][cx] = true
}

// putText writes s into row cy from cell cx, clipped to the buffer.
func (b *brailleBuf) putText(cx, cy int, s string, fg, bg colorful.Color) {
	if cy < 0 || cy >= b.h {
		return
	}
	for i, r := range []rune(s) {
		x := cx + i
		if x < 0 || x >= b.w {
			continue
		}
		b.text[cy][x] = r
		b.fg[cy][x] = fg
		b.bg[cy][x] = bg
		b.hasBg[cy][x] = true
	}
}

// drawLineMicro draws a line on the microgrid using Bresenham.
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int, c colorful.Color, l layer) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0, c, l)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// fillDisc sets every micro-pixel within r of (cx, cy). A disc smaller than a
// dot still marks its centre.
func (b *brailleBuf) fillDisc(cx, cy, r float64, c colorful.Color, l layer) {
	x0, x1 := int(cx-r), int(cx+r)
	y0, y1 := int(cy-r), int(cy+r)
	hit := false
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			if dx*dx+dy*dy <= r*r {
				b.setPixel(x, y, c, l)
				hit = true
			}
		}
	}
	if !hit {
		b.setPixel(int(cx), int(cy), c, l)
	}
}

// toLines renders the buffer, coalescing runs of cells that share a style.
func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		var sb strings.Builder
		var run []rune
		var runStyle lipgloss.Style
		var runKey string
		flush := func() {
			if len(run) == 0 {
				return
			}
			if runKey == "" {
				sb.WriteString(string(run))
			} else {
				sb.WriteString(runStyle.Render(string(run)))
			}
			run = run[:0]
		}
		for x := 0; x < b.w; x++ {
			ch := ' '
			if t := b.text[y][x]; t != 0 {
				ch = t
			} else if mask := b.m[y][x]; mask != 0 {
				ch = rune(0x2800 + int(mask))
			}
			st, key := b.cellStyle(x, y)
			if key != runKey {
				flush()
				runStyle, runKey = st, key
			}
			run = append(run, ch)
		}
		flush()
		out[y] = sb.String()
	}
	return out
}

func (b *brailleBuf) cellStyle(x, y int) (lipgloss.Style, string) {
	st := lipgloss.NewStyle()
	key := ""
	if b.m[y][x] != 0 || b.text[y][x] != 0 {
		hex := b.fg[y][x].Hex()
		st = st.Foreground(lipgloss.Color(hex))
		key += hex
	}
	if b.hasBg[y][x] {
		hex := b.bg[y][x].Hex()
		st = st.Background(lipgloss.Color(hex))
		key += "/" + hex
	}
	return st, key
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
