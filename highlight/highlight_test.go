package highlight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlain(t *testing.T) {
	runs := Plain("hello\nworld")
	require.Len(t, runs, 1)
	assert.Equal(t, "hello\nworld", runs[0].Text)
	assert.Empty(t, runs[0].Color)
}

func TestSourcePreservesText(t *testing.T) {
	code := "package main\n\nfunc main() {}\n"
	runs, err := Source(code, "go", "", "monokai")
	require.NoError(t, err)
	require.NotEmpty(t, runs)

	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text)
	}
	assert.Equal(t, code, b.String(), "tokenization must not lose or reorder text")
}

func TestSourceColorsKeywords(t *testing.T) {
	runs, err := Source("package main", "go", "", "monokai")
	require.NoError(t, err)

	colored := false
	for _, r := range runs {
		if r.Color != "" {
			colored = true
			assert.True(t, strings.HasPrefix(r.Color, "#"), "color %q", r.Color)
		}
	}
	assert.True(t, colored, "expected at least one colored token")
}

func TestSourceUnknownLanguageFallsBack(t *testing.T) {
	code := "just some words"
	runs, err := Source(code, "no-such-language", "", "monokai")
	require.NoError(t, err)

	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text)
	}
	assert.Equal(t, code, b.String())
}

func TestSourceMatchesByFilename(t *testing.T) {
	runs, err := Source("x = 1", "", "script.py", "monokai")
	require.NoError(t, err)
	assert.NotEmpty(t, runs)
}

func TestSourceUnknownTheme(t *testing.T) {
	_, err := Source("x", "go", "", "no-such-theme")
	assert.Error(t, err)
}

func TestSourceXMLTheme(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "style.xml")
	style := `<style name="custom"><entry type="Keyword" style="bold #aa0000"/></style>`
	require.NoError(t, os.WriteFile(path, []byte(style), 0o644))

	runs, err := Source("package main", "go", "", path)
	require.NoError(t, err)

	found := false
	for _, r := range runs {
		if r.Color == "#aa0000" && r.Style.Bold {
			found = true
		}
	}
	assert.True(t, found, "keyword should pick up the XML style entry")
}

func TestSourceMissingXMLTheme(t *testing.T) {
	_, err := Source("x", "go", "", filepath.Join(t.TempDir(), "missing.xml"))
	assert.Error(t, err)
}
