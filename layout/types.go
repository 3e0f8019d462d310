package layout

import (
	"time"

	"github.com/tdewolff/canvas"
)

// This file defines the value types shared by wrapping, glyph placement and
// the renderers, plus the debug JSON shapes.

// RunStyle selects the face variant a run is shaped with.
type RunStyle struct {
	Bold   bool `json:"bold,omitempty"`
	Italic bool `json:"italic,omitempty"`
}

// Run is a span of text with uniform styling. Color is a hex string such as
// "#d73a49"; empty means the document defaults apply.
type Run struct {
	Text  string   `json:"text"`
	Color string   `json:"color,omitempty"`
	Style RunStyle `json:"style,omitempty"`
}

// Glyph is one shaped glyph. Advance and offsets are in pixels, relative to
// the pen position; YOffset grows downward.
type Glyph struct {
	GID      uint16  `json:"gid"`
	XAdvance float64 `json:"xAdvance"`
	XOffset  float64 `json:"xOffset,omitempty"`
	YOffset  float64 `json:"yOffset,omitempty"`
}

// LineMetrics carries the vertical metrics of the document face in pixels.
// Ascent and Descent are both positive.
type LineMetrics struct {
	Ascent  float64 `json:"ascent"`
	Descent float64 `json:"descent"`
	LineGap float64 `json:"lineGap"`
}

// WrappedLine is one line produced by the wrapper: the run fragments that
// ended up on the line, with the width bookkeeping used by the budget checks.
// Fragments are never re-merged, so the pixel width is exactly the sum the
// glyph placement pass will reproduce.
type WrappedLine struct {
	Runs       []Run   `json:"runs"`
	PixelWidth float64 `json:"pixelWidth"`
	CharCount  int     `json:"charCount"`
}

// PositionedGlyph is a glyph at its absolute document position. X and Y
// locate the glyph origin (pen position plus shaping offsets); Y sits on the
// line baseline.
type PositionedGlyph struct {
	Glyph
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Fill   string  `json:"fill,omitempty"`
	Stroke string  `json:"stroke,omitempty"`
}

// PathSegment is one drawable outline in document coordinates. Length is the
// total curve length, precomputed for the animation dash math.
type PathSegment struct {
	Path   *canvas.Path `json:"-"`
	Fill   string       `json:"fill,omitempty"`
	Stroke string       `json:"stroke,omitempty"`
	Length float64      `json:"length"`
}

// Line is a fully laid out line of the document.
type Line struct {
	Index     int               `json:"index"`
	Baseline  float64           `json:"baseline"`
	Wrapped   WrappedLine       `json:"wrapped"`
	Glyphs    []PositionedGlyph `json:"glyphs"`
	Paths     []PathSegment     `json:"paths"`
	Animation *AnimationSpec    `json:"animation,omitempty"`
}

// AnimationSpec schedules the stroke-draw animation of one line.
type AnimationSpec struct {
	LineIndex  int           `json:"lineIndex"`
	Delay      time.Duration `json:"delay"`
	Duration   time.Duration `json:"duration"`
	PathLength float64       `json:"pathLength"`
}

// StyleDefaults are the document-wide paint defaults, overridden per run by
// highlight colors.
type StyleDefaults struct {
	Fill        string  `json:"fill,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
	Background  string  `json:"background,omitempty"`
}

// Document is the final layout result handed to a renderer.
type Document struct {
	Lines    []Line        `json:"lines"`
	Width    float64       `json:"width"`
	Height   float64       `json:"height"`
	Defaults StyleDefaults `json:"defaults"`
}
