package layout

import "errors"

var errMissingTypesetter = errors.New("layout: missing Typesetter backend")

// Build wraps the runs, places every glyph at its absolute document position
// and generates the translated outline paths. The returned document is ready
// for a renderer.
func Build(runs []Run, opts BuildOptions) (*Document, error) {
	if opts.Typesetter == nil {
		return nil, errMissingTypesetter
	}
	if err := validateBudget(opts); err != nil {
		return nil, err
	}

	wrapped, err := Wrap(runs, opts)
	if err != nil {
		return nil, err
	}

	ts := opts.Typesetter
	metrics := ts.Metrics()
	spacing := opts.LineSpacing
	if spacing <= 0 {
		spacing = 1
	}
	lineHeight := (metrics.Ascent + metrics.Descent) * spacing
	letterSpace := ts.LetterSpace()

	doc := &Document{
		Lines: make([]Line, 0, len(wrapped)),
		Defaults: StyleDefaults{
			Fill:        opts.Fill,
			Stroke:      opts.Stroke,
			StrokeWidth: opts.StrokeWidth,
			Background:  opts.Background,
		},
	}

	maxWidth := 0.0
	for i, wl := range wrapped {
		baseline := opts.Margin + float64(i)*lineHeight + metrics.Ascent
		line := Line{Index: i, Baseline: baseline, Wrapped: wl}

		x := opts.Margin
		for _, run := range wl.Runs {
			fill, stroke := ResolveStyle(doc.Defaults, run)
			for _, g := range ts.Shape(run.Text, run.Style) {
				pg := PositionedGlyph{
					Glyph:  g,
					X:      x + g.XOffset,
					Y:      baseline + g.YOffset,
					Fill:   fill,
					Stroke: stroke,
				}
				line.Glyphs = append(line.Glyphs, pg)

				if outline := ts.Outline(g.GID, run.Style); outline != nil && !outline.Empty() {
					p := outline.Translate(pg.X, pg.Y)
					line.Paths = append(line.Paths, PathSegment{
						Path:   p,
						Fill:   fill,
						Stroke: stroke,
						Length: p.Length(),
					})
				}
				x += g.XAdvance + letterSpace
			}
		}
		if w := x - opts.Margin; w > maxWidth {
			maxWidth = w
		}

		if opts.Animate {
			total := 0.0
			for _, seg := range line.Paths {
				total += seg.Length
			}
			spec := NewAnimationSpec(i, total)
			line.Animation = &spec
		}

		doc.Lines = append(doc.Lines, line)
	}

	doc.Width = maxWidth + 2*opts.Margin
	doc.Height = lineHeight*float64(len(wrapped)) + 2*opts.Margin
	return doc, nil
}

// ResolveStyle returns the paint for a run: a highlight color overrides both
// fill and stroke, otherwise the document defaults apply.
func ResolveStyle(defaults StyleDefaults, run Run) (fill, stroke string) {
	if run.Color != "" {
		return run.Color, run.Color
	}
	return defaults.Fill, defaults.Stroke
}
