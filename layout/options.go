package layout

import (
	"errors"
	"fmt"

	"github.com/tdewolff/canvas"
)

// ErrInvalidBudget reports an unusable line width budget: a non-positive
// value, or a character and a pixel budget given at the same time.
var ErrInvalidBudget = errors.New("invalid line width budget")

// BuildOptions configures a layout pass. Exactly one of MaxChars and
// MaxPixels may be set; with neither, only explicit newlines break lines.
type BuildOptions struct {
	Typesetter Typesetter

	MaxChars  int     // wrap after this many characters per line
	MaxPixels float64 // wrap after this advance width per line

	Margin      float64 // padding around the text block, pixels
	LineSpacing float64 // line height factor, 1.0 when zero

	Fill        string
	Stroke      string
	StrokeWidth float64
	Background  string

	Animate bool
}

// Typesetter is the shaping backend the layout engine measures and places
// text with. Implementations need not be safe for concurrent use.
type Typesetter interface {
	// Shape converts text into positioned glyphs at the configured size.
	Shape(text string, style RunStyle) []Glyph
	// Outline returns the glyph's outline in pixels, origin at the pen
	// position, Y growing downward. Unknown glyphs yield the .notdef
	// outline; glyphs without contours yield an empty path.
	Outline(gid uint16, style RunStyle) *canvas.Path
	// Metrics returns the vertical metrics of the document face.
	Metrics() LineMetrics
	// LetterSpace returns the extra advance added after every glyph.
	LetterSpace() float64
}

// Measure returns the advance width of text in pixels: the sum of the shaped
// advances plus letter spacing after every glyph, including the last. The
// wrapper and the placement pass both go through here, so their widths agree
// by construction.
func Measure(ts Typesetter, text string, style RunStyle) float64 {
	glyphs := ts.Shape(text, style)
	w := 0.0
	for _, g := range glyphs {
		w += g.XAdvance
	}
	return w + ts.LetterSpace()*float64(len(glyphs))
}

func validateBudget(opts BuildOptions) error {
	if opts.MaxChars < 0 {
		return fmt.Errorf("%w: character budget must be positive", ErrInvalidBudget)
	}
	if opts.MaxPixels < 0 {
		return fmt.Errorf("%w: pixel budget must be positive", ErrInvalidBudget)
	}
	if opts.MaxChars > 0 && opts.MaxPixels > 0 {
		return fmt.Errorf("%w: character and pixel budgets are mutually exclusive", ErrInvalidBudget)
	}
	return nil
}
