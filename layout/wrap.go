package layout

type fragKind int

const (
	fragWord fragKind = iota
	fragSpace
	fragBreak
)

// fragment is the smallest wrap unit: a maximal same-kind span inside a
// single run. Fragments never cross run boundaries; a word that spans
// adjacent runs is grouped back into one unbreakable token at wrap time.
type fragment struct {
	text  string
	color string
	style RunStyle
	kind  fragKind
	chars int
	width float64
}

// Wrap breaks runs into lines under the configured budget. Explicit newlines
// always break; whitespace at an automatic wrap point is consumed; a token
// too wide for an empty line is kept whole and overflows. Empty input yields
// exactly one empty line.
func Wrap(runs []Run, opts BuildOptions) ([]WrappedLine, error) {
	if opts.Typesetter == nil {
		return nil, errMissingTypesetter
	}
	if err := validateBudget(opts); err != nil {
		return nil, err
	}

	frags := tokenize(runs, opts.Typesetter)

	var lines []WrappedLine
	var cur []fragment
	curWidth := 0.0
	curChars := 0

	emit := func() {
		ln := WrappedLine{
			Runs:       make([]Run, 0, len(cur)),
			PixelWidth: curWidth,
			CharCount:  curChars,
		}
		for _, f := range cur {
			ln.Runs = append(ln.Runs, Run{Text: f.text, Color: f.color, Style: f.style})
		}
		lines = append(lines, ln)
		cur = cur[:0]
		curWidth = 0
		curChars = 0
	}

	fits := func(chars int, width float64) bool {
		if opts.MaxChars > 0 {
			return curChars+chars <= opts.MaxChars
		}
		if opts.MaxPixels > 0 {
			return curWidth+width <= opts.MaxPixels
		}
		return true
	}

	push := func(group []fragment) {
		for _, f := range group {
			cur = append(cur, f)
			curWidth += f.width
			curChars += f.chars
		}
	}

	for i := 0; i < len(frags); {
		f := frags[i]
		switch f.kind {
		case fragBreak:
			emit()
			i++
		case fragSpace:
			if !fits(f.chars, f.width) {
				// Whitespace is consumed at the wrap point.
				emit()
				i++
				continue
			}
			push(frags[i : i+1])
			i++
		default:
			group, chars, width := wordGroup(frags[i:])
			if !fits(chars, width) && len(cur) > 0 {
				emit()
			}
			// Placed even when over budget: an unbreakable token wider
			// than the line stays whole and overflows.
			push(group)
			i += len(group)
		}
	}
	emit()

	return lines, nil
}

// wordGroup collects the consecutive word fragments forming one unbreakable
// token, crossing run boundaries.
func wordGroup(frags []fragment) ([]fragment, int, float64) {
	n := 0
	chars := 0
	width := 0.0
	for n < len(frags) && frags[n].kind == fragWord {
		chars += frags[n].chars
		width += frags[n].width
		n++
	}
	return frags[:n], chars, width
}

// tokenize splits runs into newline, whitespace and word fragments and
// measures each one. Carriage returns are dropped so CRLF input behaves like
// LF input.
func tokenize(runs []Run, ts Typesetter) []fragment {
	var frags []fragment
	for _, run := range runs {
		var span []rune
		var spanKind fragKind
		flush := func() {
			if len(span) == 0 {
				return
			}
			text := string(span)
			frags = append(frags, fragment{
				text:  text,
				color: run.Color,
				style: run.Style,
				kind:  spanKind,
				chars: len(span),
				width: Measure(ts, text, run.Style),
			})
			span = span[:0]
		}
		for _, r := range run.Text {
			kind := classify(r)
			if kind == fragBreak {
				flush()
				if r == '\n' {
					frags = append(frags, fragment{kind: fragBreak, color: run.Color, style: run.Style})
				}
				continue
			}
			if len(span) > 0 && kind != spanKind {
				flush()
			}
			spanKind = kind
			span = append(span, r)
		}
		flush()
	}
	return frags
}

func classify(r rune) fragKind {
	switch r {
	case '\n', '\r':
		return fragBreak
	case ' ', '\t':
		return fragSpace
	default:
		return fragWord
	}
}
