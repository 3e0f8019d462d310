package font

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-text/typesetting/di"
	otfont "github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"github.com/tdewolff/canvas"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/textpath/textpath/layout"
)

// Config selects the faces a Provider serves and the size everything is
// measured at.
type Config struct {
	Family      string
	Size        float64 // pixels per em
	Style       Style
	Features    FeatureList // nil means DefaultFeatures
	LetterSpace float64     // extra advance after every glyph, pixels
}

// face pairs the two parsed views of one font: sfnt for outlines, metrics
// and name tables, go-text for shaping.
type face struct {
	outline *sfnt.Font
	shaped  *otfont.Face
}

// Provider implements layout.Typesetter for one font family at a fixed size.
// It is safe for concurrent use: the HarfBuzz shaper and the sfnt buffer are
// not, so both sit behind a mutex.
type Provider struct {
	cfg      Config
	faces    map[Style]*face
	fallback Style
	features []shaping.FontFeature
	metrics  layout.LineMetrics

	mu     sync.Mutex
	shaper shaping.HarfbuzzShaper
	buf    sfnt.Buffer
}

// NewProvider resolves the configured family against the registry and loads
// every face of it. A family that cannot be resolved, or whose files all
// fail to parse, is fatal here, before any layout work.
func NewProvider(reg *Registry, cfg Config) (*Provider, error) {
	refs, err := reg.Resolve(cfg.Family)
	if err != nil {
		return nil, err
	}
	faces := map[Style]*face{}
	cache := map[string][]byte{}
	for _, ref := range refs {
		data, ok := cache[ref.Path]
		if !ok {
			data, err = os.ReadFile(ref.Path)
			if err != nil {
				continue
			}
			cache[ref.Path] = data
		}
		f, err := parseFace(data, ref.Index)
		if err != nil {
			continue
		}
		if _, ok := faces[ref.Style]; !ok {
			faces[ref.Style] = f
		}
	}
	if len(faces) == 0 {
		return nil, fmt.Errorf("font family %q has no usable faces: %w", cfg.Family, ErrFontNotFound)
	}
	return newProvider(faces, cfg)
}

// NewFileProvider loads the faces of an explicit font file, bypassing the
// registry. Collections contribute one face per named style.
func NewFileProvider(path string, cfg Config) (*Provider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading font file: %w", err)
	}
	faces := map[Style]*face{}
	if strings.EqualFold(filepath.Ext(path), ".ttc") {
		coll, err := sfnt.ParseCollection(data)
		if err != nil {
			return nil, fmt.Errorf("parsing font collection %s: %w", path, err)
		}
		for i := 0; i < coll.NumFonts(); i++ {
			f, err := parseFace(data, i)
			if err != nil {
				continue
			}
			style := faceStyle(f)
			if _, ok := faces[style]; !ok {
				faces[style] = f
			}
		}
		if len(faces) == 0 {
			return nil, fmt.Errorf("font collection %s has no usable faces: %w", path, ErrFontNotFound)
		}
	} else {
		f, err := parseFace(data, 0)
		if err != nil {
			return nil, fmt.Errorf("parsing font file %s: %w", path, err)
		}
		faces[faceStyle(f)] = f
	}
	return newProvider(faces, cfg)
}

func newProvider(faces map[Style]*face, cfg Config) (*Provider, error) {
	if cfg.Size <= 0 {
		return nil, fmt.Errorf("font size must be positive, got %v", cfg.Size)
	}
	features := cfg.Features
	if features == nil {
		features = DefaultFeatures()
	}

	p := &Provider{
		cfg:      cfg,
		faces:    faces,
		fallback: fallbackStyle(faces),
	}
	for _, f := range features.Sorted() {
		p.features = append(p.features, shaping.FontFeature{
			Tag:   ot.MustNewTag(f.Tag),
			Value: f.Value,
		})
	}

	base := p.pick(cfg.Style)
	m, err := base.outline.Metrics(&p.buf, p.ppem(), xfont.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("reading font metrics: %w", err)
	}
	p.metrics = layout.LineMetrics{
		Ascent:  fromFixed(m.Ascent),
		Descent: fromFixed(m.Descent),
		LineGap: fromFixed(m.Height) - fromFixed(m.Ascent) - fromFixed(m.Descent),
	}
	return p, nil
}

// Shape implements layout.Typesetter.
func (p *Provider) Shape(text string, style layout.RunStyle) []layout.Glyph {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	f := p.faceFor(style)
	input := shaping.Input{
		Text:         runes,
		RunStart:     0,
		RunEnd:       len(runes),
		Direction:    di.DirectionLTR,
		Face:         f.shaped,
		Size:         toFixed(p.cfg.Size),
		Script:       detectScript(runes),
		Language:     language.NewLanguage("en"),
		FontFeatures: p.features,
	}

	p.mu.Lock()
	out := p.shaper.Shape(input)
	p.mu.Unlock()

	glyphs := make([]layout.Glyph, len(out.Glyphs))
	for i, g := range out.Glyphs {
		glyphs[i] = layout.Glyph{
			GID:      uint16(g.GlyphID),
			XAdvance: fromFixed(g.Advance),
			XOffset:  fromFixed(g.XOffset),
			// Shaping offsets grow upward, the document Y axis grows down.
			YOffset: -fromFixed(g.YOffset),
		}
	}
	return glyphs
}

// Outline implements layout.Typesetter. Segments come back from sfnt already
// scaled to the configured size with Y growing downward, matching document
// coordinates. A glyph that cannot be loaded falls back to .notdef.
func (p *Provider) Outline(gid uint16, style layout.RunStyle) *canvas.Path {
	f := p.faceFor(style)

	p.mu.Lock()
	defer p.mu.Unlock()
	segments, err := f.outline.LoadGlyph(&p.buf, sfnt.GlyphIndex(gid), p.ppem(), nil)
	if err != nil {
		segments, err = f.outline.LoadGlyph(&p.buf, 0, p.ppem(), nil)
		if err != nil {
			return &canvas.Path{}
		}
	}
	return segmentsToPath(segments)
}

// Metrics implements layout.Typesetter.
func (p *Provider) Metrics() layout.LineMetrics { return p.metrics }

// LetterSpace implements layout.Typesetter.
func (p *Provider) LetterSpace() float64 { return p.cfg.LetterSpace }

// Measure returns the advance width of text in pixels under this provider.
func (p *Provider) Measure(text string, style layout.RunStyle) float64 {
	return layout.Measure(p, text, style)
}

func (p *Provider) ppem() fixed.Int26_6 { return toFixed(p.cfg.Size) }

// faceFor buckets a run style onto a loaded face. Slant is the only second
// axis, so italic wins over bold; missing variants fall back to the base
// style, then regular, then whatever loaded.
func (p *Provider) faceFor(style layout.RunStyle) *face {
	want := p.cfg.Style
	switch {
	case style.Italic:
		want = StyleItalic
	case style.Bold:
		want = StyleBold
	}
	return p.pick(want)
}

func (p *Provider) pick(want Style) *face {
	if f, ok := p.faces[want]; ok {
		return f
	}
	if f, ok := p.faces[StyleRegular]; ok {
		return f
	}
	return p.faces[p.fallback]
}

func fallbackStyle(faces map[Style]*face) Style {
	if _, ok := faces[StyleRegular]; ok {
		return StyleRegular
	}
	best := StyleItalic + 1
	for s := range faces {
		if s < best {
			best = s
		}
	}
	return best
}

func parseFace(data []byte, index int) (*face, error) {
	if index > 0 || isCollection(data) {
		coll, err := sfnt.ParseCollection(data)
		if err != nil {
			return nil, err
		}
		sf, err := coll.Font(index)
		if err != nil {
			return nil, err
		}
		shaped, err := otfont.ParseTTC(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		if index >= len(shaped) {
			return nil, fmt.Errorf("collection face index %d out of range", index)
		}
		return &face{outline: sf, shaped: shaped[index]}, nil
	}

	sf, err := sfnt.Parse(data)
	if err != nil {
		return nil, err
	}
	shaped, err := otfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &face{outline: sf, shaped: shaped}, nil
}

func isCollection(data []byte) bool {
	return len(data) >= 4 && string(data[:4]) == "ttcf"
}

// faceStyle classifies a loaded face: name keywords first, then the face
// metadata with the numeric weight bucketed onto the style axis.
func faceStyle(f *face) Style {
	var buf sfnt.Buffer
	if sub, err := f.outline.Name(&buf, sfnt.NameIDSubfamily); err == nil {
		if s, ok := styleFromName(sub); ok {
			return s
		}
	}
	if full, err := f.outline.Name(&buf, sfnt.NameIDFull); err == nil {
		if s, ok := styleFromName(full); ok {
			return s
		}
	}
	desc := f.shaped.Describe()
	if desc.Aspect.Style == otfont.StyleItalic {
		return StyleItalic
	}
	return styleFromWeight(desc.Aspect.Weight)
}

func segmentsToPath(segments []sfnt.Segment) *canvas.Path {
	path := &canvas.Path{}
	open := false
	for _, s := range segments {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				path.Close()
			}
			path.MoveTo(fromFixed(s.Args[0].X), fromFixed(s.Args[0].Y))
			open = true
		case sfnt.SegmentOpLineTo:
			path.LineTo(fromFixed(s.Args[0].X), fromFixed(s.Args[0].Y))
		case sfnt.SegmentOpQuadTo:
			path.QuadTo(
				fromFixed(s.Args[0].X), fromFixed(s.Args[0].Y),
				fromFixed(s.Args[1].X), fromFixed(s.Args[1].Y))
		case sfnt.SegmentOpCubeTo:
			path.CubeTo(
				fromFixed(s.Args[0].X), fromFixed(s.Args[0].Y),
				fromFixed(s.Args[1].X), fromFixed(s.Args[1].Y),
				fromFixed(s.Args[2].X), fromFixed(s.Args[2].Y))
		}
	}
	if open {
		path.Close()
	}
	return path
}

// detectScript returns the script of the first non-space rune. Mixed-script
// text should be split into runs before shaping.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func toFixed(v float64) fixed.Int26_6 { return fixed.Int26_6(v * 64) }

func fromFixed(v fixed.Int26_6) float64 { return float64(v) / 64.0 }
