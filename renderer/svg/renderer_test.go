package svg

import (
	"strings"
	"testing"
	"time"

	"github.com/tdewolff/canvas"

	"github.com/textpath/textpath/layout"
)

func squarePath() *canvas.Path {
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo(5, 0)
	p.LineTo(5, 5)
	p.LineTo(0, 5)
	p.Close()
	return p
}

func staticDoc() *layout.Document {
	return &layout.Document{
		Width:  100,
		Height: 40,
		Defaults: layout.StyleDefaults{
			Fill:       "#000000",
			Background: "#ffffff",
		},
		Lines: []layout.Line{{
			Index:    0,
			Baseline: 20,
			Paths: []layout.PathSegment{
				{Path: squarePath(), Fill: "#000000", Length: 20},
				{Path: squarePath().Translate(10, 0), Fill: "#d73a49", Length: 20},
			},
		}},
	}
}

func TestRenderNilDocument(t *testing.T) {
	if _, err := NewRenderer().Render(nil); err == nil {
		t.Fatal("expected an error for a nil document")
	}
}

func TestRenderStatic(t *testing.T) {
	out, err := NewRenderer().Render(staticDoc())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	svg := string(out)

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg" width="100" height="40" viewBox="0 0 100 40">`,
		`<rect width="100" height="40" fill="#ffffff"/>`,
		`fill="#000000"`,
		`fill="#d73a49"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("output missing %q\n%s", want, svg)
		}
	}
	if got := strings.Count(svg, "<path "); got != 2 {
		t.Errorf("expected one path per glyph outline, got %d", got)
	}
	if strings.Contains(svg, "@keyframes") {
		t.Error("static output must not carry animation CSS")
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("output is not a closed SVG document")
	}
}

func TestRenderAnimated(t *testing.T) {
	doc := staticDoc()
	doc.Defaults.Background = ""
	spec := layout.AnimationSpec{
		LineIndex:  0,
		Delay:      800 * time.Millisecond,
		Duration:   1500 * time.Millisecond,
		PathLength: 40,
	}
	for i := range doc.Lines {
		doc.Lines[i].Animation = &spec
		for j := range doc.Lines[i].Paths {
			doc.Lines[i].Paths[j].Stroke = doc.Lines[i].Paths[j].Fill
		}
	}

	out, err := NewRenderer().Render(doc)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	svg := string(out)

	for _, want := range []string{
		"@keyframes textpath-draw",
		`stroke="#000000"`,
		`stroke="#d73a49"`,
		`stroke-dasharray="20" stroke-dashoffset="20"`,
		"animation: textpath-draw 1.5s ease forwards",
		"animation-delay: 0.8s",
		`fill="none"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("output missing %q\n%s", want, svg)
		}
	}
	// Two stroke colors on the line, so two merged paths.
	if got := strings.Count(svg, "<path "); got != 2 {
		t.Errorf("expected one merged path per stroke color, got %d", got)
	}
	if strings.Contains(svg, "<rect") {
		t.Error("no background rect expected")
	}
}

func TestRenderSkipsEmptyLines(t *testing.T) {
	doc := &layout.Document{
		Width:  10,
		Height: 10,
		Lines:  []layout.Line{{Index: 0}},
	}
	out, err := NewRenderer().Render(doc)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if strings.Contains(string(out), "<g>") {
		t.Error("a line without paths must not emit a group")
	}
}

func TestNum(t *testing.T) {
	cases := map[float64]string{
		100:     "100",
		0.8:     "0.8",
		1.5:     "1.5",
		3.14159: "3.14",
	}
	for in, want := range cases {
		if got := num(in); got != want {
			t.Errorf("num(%v) = %q, want %q", in, got, want)
		}
	}
}
