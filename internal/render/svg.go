package render

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// WriteSVG serializes the scene as a standalone SVG document.
func WriteSVG(w io.Writer, s Scene) error {
	bw := bufio.NewWriter(w)
	t := s.Transform

	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`+"\n", s.Width, s.Height)
	fmt.Fprintf(bw, `<g transform="translate(%s,%s) scale(%s)">`+"\n", num(t.X), num(t.Y), num(t.K))
	for _, p := range s.Boundaries {
		fmt.Fprintf(bw, `<path class="boundary" d="%s" fill="%s" stroke="%s" stroke-width="%s" fill-rule="evenodd"><title>%s</title></path>`+"\n",
			pathData(p.Rings), p.Fill.Hex(), p.Stroke.Hex(), num(StrokeWidth), escape(p.Name))
	}
	for _, d := range s.Trees {
		fmt.Fprintf(bw, `<circle data-id="%d" cx="%s" cy="%s" r="%s" fill="%s" opacity="%s"/>`+"\n",
			d.ID, num(d.X), num(d.Y), num(d.R), d.Fill.Hex(), num(d.Opacity))
	}
	bw.WriteString("</g>\n")

	fmt.Fprintf(bw, `<g class="legend" transform="translate(%s,%s)">`+"\n", num(s.LegendX), num(s.LegendY))
	for i, e := range s.Legend {
		fmt.Fprintf(bw, `<rect x="0" y="%d" width="%d" height="%d" fill="%s"/>`+"\n",
			i*LegendStep, LegendSwatch, LegendSwatch, e.Color.Hex())
		fmt.Fprintf(bw, `<text x="%d" y="%d" style="font-size: %dpx; fill: %s">%s</text>`+"\n",
			LegendTextX, i*LegendStep+LegendTextBase, LegendFontPx, LegendText.Hex(), escape(e.Label))
	}
	bw.WriteString("</g>\n</svg>\n")

	return eris.Wrap(bw.Flush(), "render: write svg")
}

func pathData(rings [][][2]float64) string {
	var b strings.Builder
	for _, r := range rings {
		for i, p := range r {
			if i == 0 {
				b.WriteByte('M')
			} else {
				b.WriteByte('L')
			}
			b.WriteString(num(p[0]))
			b.WriteByte(',')
			b.WriteString(num(p[1]))
		}
		if len(r) > 0 {
			b.WriteByte('Z')
		}
	}
	return b.String()
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
