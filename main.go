package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"

	"github.com/textpath/textpath/font"
	"github.com/textpath/textpath/highlight"
	"github.com/textpath/textpath/layout"
	"github.com/textpath/textpath/renderer"
	svgrenderer "github.com/textpath/textpath/renderer/svg"
)

type options struct {
	text     string
	input    string
	output   string
	family   string
	fontFile string
	fontDir  string
	size     float64
	style    string
	features string

	letterSpace float64
	maxChars    int
	maxPixels   float64

	fill        string
	stroke      string
	strokeWidth float64
	background  string
	spacing     float64
	margin      float64

	lang    string
	theme   string
	animate bool

	debugPath string
}

func main() {
	var opts options
	flag.StringVar(&opts.text, "t", "", "literal text to render")
	flag.StringVar(&opts.input, "i", "", "input file path")
	flag.StringVar(&opts.output, "o", "", "SVG output path (default stdout)")
	flag.StringVar(&opts.family, "font", "", "font family name")
	flag.StringVar(&opts.fontFile, "font-file", "", "font file path, bypasses the system font lookup")
	flag.StringVar(&opts.fontDir, "font-dir", "", "extra font directories, comma separated")
	flag.Float64Var(&opts.size, "size", 32, "font size in pixels")
	flag.StringVar(&opts.style, "style", "regular", "font style: regular, bold, italic, semibold, ...")
	flag.StringVar(&opts.features, "features", "", `OpenType feature string, e.g. "cv01=1,calt=0"`)
	flag.Float64Var(&opts.letterSpace, "letter-space", 0, "extra advance after every glyph, pixels")
	flag.IntVar(&opts.maxChars, "width", 0, "wrap lines after this many characters")
	flag.Float64Var(&opts.maxPixels, "pixel-width", 0, "wrap lines after this pixel width")
	flag.StringVar(&opts.fill, "fill", "#000000", "glyph fill color")
	flag.StringVar(&opts.stroke, "color", "", "glyph stroke color")
	flag.Float64Var(&opts.strokeWidth, "stroke-width", 1, "stroke width in pixels")
	flag.StringVar(&opts.background, "background", "", "background color, empty for none")
	flag.Float64Var(&opts.spacing, "spacing", 1, "line height factor")
	flag.Float64Var(&opts.margin, "margin", 10, "padding around the text block, pixels")
	flag.StringVar(&opts.lang, "lang", "", "syntax highlight language, empty for plain text")
	flag.StringVar(&opts.theme, "theme", "", "chroma style name or path to an XML style file")
	flag.BoolVar(&opts.animate, "animate", false, "draw each line with an animated stroke")
	flag.StringVar(&opts.debugPath, "debug", "", "layout debug JSON output path")
	listFonts := flag.Bool("list-fonts", false, "list installed font families and exit")
	flag.Parse()

	if *listFonts {
		reg := font.NewRegistry(fontDirs(opts.fontDir)...)
		families := reg.Families()
		pterm.Info.Printfln("%d font families installed", len(families))
		for _, name := range families {
			pterm.Println(name)
		}
		return
	}

	if err := run(opts, svgrenderer.NewRenderer()); err != nil {
		log.Fatalf("generating SVG failed: %v", err)
	}
}

// run chains input reading, font resolution, highlighting, layout and
// rendering.
func run(opts options, r renderer.Renderer) error {
	if r == nil {
		return fmt.Errorf("renderer must not be nil")
	}
	// Budgets are checked before any font work so a bad invocation fails
	// fast.
	if opts.maxChars < 0 || opts.maxPixels < 0 || (opts.maxChars > 0 && opts.maxPixels > 0) {
		return fmt.Errorf("%w: -width and -pixel-width are mutually exclusive and must be positive", layout.ErrInvalidBudget)
	}

	text, err := readInput(opts)
	if err != nil {
		return err
	}

	style, err := font.ParseStyle(opts.style)
	if err != nil {
		return err
	}
	features := font.DefaultFeatures()
	if err := features.Apply(opts.features); err != nil {
		return err
	}

	cfg := font.Config{
		Family:      opts.family,
		Size:        opts.size,
		Style:       style,
		Features:    features,
		LetterSpace: opts.letterSpace,
	}
	var provider *font.Provider
	if opts.fontFile != "" {
		provider, err = font.NewFileProvider(opts.fontFile, cfg)
	} else {
		if opts.family == "" {
			return fmt.Errorf("no font specified: use -font or -font-file")
		}
		provider, err = font.NewProvider(font.NewRegistry(fontDirs(opts.fontDir)...), cfg)
	}
	if err != nil {
		return err
	}

	var runs []layout.Run
	if opts.lang != "" || opts.theme != "" {
		runs, err = highlight.Source(text, opts.lang, opts.input, opts.theme)
		if err != nil {
			return err
		}
	} else {
		runs = highlight.Plain(text)
	}

	doc, err := layout.Build(runs, layout.BuildOptions{
		Typesetter:  provider,
		MaxChars:    opts.maxChars,
		MaxPixels:   opts.maxPixels,
		Margin:      opts.margin,
		LineSpacing: opts.spacing,
		Fill:        opts.fill,
		Stroke:      opts.stroke,
		StrokeWidth: opts.strokeWidth,
		Background:  opts.background,
		Animate:     opts.animate,
	})
	if err != nil {
		return fmt.Errorf("layout failed: %w", err)
	}

	if opts.debugPath != "" {
		if err := layout.WriteDebugJSON(doc, opts.debugPath); err != nil {
			return fmt.Errorf("writing debug JSON: %w", err)
		}
	}

	data, err := r.Render(doc)
	if err != nil {
		return fmt.Errorf("rendering SVG: %w", err)
	}

	if opts.output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(opts.output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("writing SVG file: %w", err)
	}
	fmt.Printf("wrote %s\n", opts.output)
	return nil
}

// readInput prefers literal text over a file. File input loses a single
// trailing newline so a POSIX-terminated file does not render a final empty
// line.
func readInput(opts options) (string, error) {
	if opts.text != "" {
		return opts.text, nil
	}
	if opts.input != "" {
		data, err := os.ReadFile(opts.input)
		if err != nil {
			return "", fmt.Errorf("reading input file: %w", err)
		}
		return strings.TrimSuffix(string(data), "\n"), nil
	}
	return "", fmt.Errorf("no input: use -t or -i")
}

// fontDirs returns the platform defaults plus any comma-separated extras.
func fontDirs(spec string) []string {
	dirs := font.DefaultDirs()
	for _, d := range strings.Split(spec, ",") {
		if d = strings.TrimSpace(d); d != "" {
			dirs = append(dirs, d)
		}
	}
	return dirs
}
