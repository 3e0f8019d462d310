// Package highlight turns input text into styled runs for the layout engine,
// either as-is or colored by syntax.
package highlight

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/textpath/textpath/layout"
)

// Plain wraps raw text in a single unstyled run. Newlines stay inside the
// run text; the wrapper splits on them.
func Plain(text string) []layout.Run {
	return []layout.Run{{Text: text}}
}

// Source tokenizes code and colors each token from a chroma style. The lexer
// is picked by language name, then by filename, then falls back to plain
// text. theme is a built-in style name or a path to a chroma XML style file.
func Source(code, lang, filename, theme string) ([]layout.Run, error) {
	lexer := lexers.Get(lang)
	if lexer == nil && filename != "" {
		lexer = lexers.Match(filename)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style, err := loadStyle(theme)
	if err != nil {
		return nil, err
	}

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return nil, fmt.Errorf("tokenizing source: %w", err)
	}

	var runs []layout.Run
	for _, tok := range it.Tokens() {
		entry := style.Get(tok.Type)
		run := layout.Run{
			Text: tok.Value,
			Style: layout.RunStyle{
				Bold:   entry.Bold == chroma.Yes,
				Italic: entry.Italic == chroma.Yes,
			},
		}
		if entry.Colour.IsSet() {
			run.Color = entry.Colour.String()
		}
		runs = append(runs, run)
	}
	return runs, nil
}

func loadStyle(theme string) (*chroma.Style, error) {
	if theme == "" {
		return styles.Fallback, nil
	}
	if strings.HasSuffix(strings.ToLower(theme), ".xml") {
		f, err := os.Open(theme)
		if err != nil {
			return nil, fmt.Errorf("opening style file: %w", err)
		}
		defer f.Close()
		style, err := chroma.NewXMLStyle(f)
		if err != nil {
			return nil, fmt.Errorf("parsing style file %s: %w", theme, err)
		}
		return style, nil
	}
	style := styles.Get(theme)
	if style == styles.Fallback && !strings.EqualFold(theme, styles.Fallback.Name) {
		return nil, fmt.Errorf("unknown highlight theme %q", theme)
	}
	return style, nil
}
