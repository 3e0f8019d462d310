// Package svg serializes layout documents as standalone SVG files.
package svg

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tdewolff/canvas"

	"github.com/textpath/textpath/layout"
)

// Renderer writes a document as SVG. Without animation every glyph becomes
// its own filled path. With animation each line's outlines are merged per
// stroke color and drawn with the stroke-dash trick: dasharray and dashoffset
// start at the total path length and a CSS animation drives the offset to
// zero, so the text appears to be traced.
type Renderer struct{}

// NewRenderer returns an SVG renderer.
func NewRenderer() *Renderer { return &Renderer{} }

// Render implements renderer.Renderer.
func (r *Renderer) Render(doc *layout.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("svg: document is nil")
	}

	var b strings.Builder
	w, h := num(doc.Width), num(doc.Height)
	fmt.Fprintf(&b, "<svg xmlns=%q width=%q height=%q viewBox=\"0 0 %s %s\">\n",
		"http://www.w3.org/2000/svg", w, h, w, h)

	if hasAnimation(doc) {
		b.WriteString("<style>@keyframes textpath-draw { to { stroke-dashoffset: 0; } }</style>\n")
	}
	if doc.Defaults.Background != "" {
		fmt.Fprintf(&b, "<rect width=%q height=%q fill=%q/>\n", w, h, doc.Defaults.Background)
	}

	strokeWidth := doc.Defaults.StrokeWidth
	if strokeWidth <= 0 {
		strokeWidth = 1
	}

	for _, line := range doc.Lines {
		if len(line.Paths) == 0 {
			continue
		}
		b.WriteString("<g>\n")
		if line.Animation != nil {
			renderAnimated(&b, line, strokeWidth)
		} else {
			renderStatic(&b, line, strokeWidth)
		}
		b.WriteString("</g>\n")
	}

	b.WriteString("</svg>\n")
	return []byte(b.String()), nil
}

func renderStatic(b *strings.Builder, line layout.Line, strokeWidth float64) {
	for _, seg := range line.Paths {
		fill := seg.Fill
		if fill == "" {
			fill = "none"
		}
		fmt.Fprintf(b, "<path d=%q fill=%q", seg.Path.ToSVG(), fill)
		if seg.Stroke != "" {
			fmt.Fprintf(b, " stroke=%q stroke-width=%q", seg.Stroke, num(strokeWidth))
		}
		b.WriteString("/>\n")
	}
}

// strokeGroup merges a line's outlines that share a stroke color, so each
// color is traced by a single dashed path.
type strokeGroup struct {
	stroke string
	path   *canvas.Path
	length float64
}

func renderAnimated(b *strings.Builder, line layout.Line, strokeWidth float64) {
	var groups []*strokeGroup
	byStroke := map[string]*strokeGroup{}
	for _, seg := range line.Paths {
		stroke := seg.Stroke
		if stroke == "" {
			stroke = seg.Fill
		}
		if stroke == "" {
			stroke = "#000000"
		}
		g, ok := byStroke[stroke]
		if !ok {
			g = &strokeGroup{stroke: stroke, path: &canvas.Path{}}
			byStroke[stroke] = g
			groups = append(groups, g)
		}
		g.path = g.path.Append(seg.Path)
		g.length += seg.Length
	}

	delay := num(line.Animation.Delay.Seconds())
	duration := num(line.Animation.Duration.Seconds())
	for _, g := range groups {
		length := num(g.length)
		fmt.Fprintf(b,
			"<path d=%q fill=\"none\" stroke=%q stroke-width=%q stroke-dasharray=%q stroke-dashoffset=%q style=\"animation: textpath-draw %ss ease forwards; animation-delay: %ss\"/>\n",
			g.path.ToSVG(), g.stroke, num(strokeWidth), length, length, duration, delay)
	}
}

func hasAnimation(doc *layout.Document) bool {
	for _, line := range doc.Lines {
		if line.Animation != nil {
			return true
		}
	}
	return false
}

// num formats a coordinate with two decimals, dropping trailing zeros.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
