package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/textpath/textpath/layout"
)

type nopRenderer struct{}

func (nopRenderer) Render(*layout.Document) ([]byte, error) { return []byte("<svg/>"), nil }

func TestRunValidatesBudgetsBeforeFontWork(t *testing.T) {
	cases := []options{
		{text: "x", maxChars: 5, maxPixels: 100},
		{text: "x", maxChars: -1},
		{text: "x", maxPixels: -1},
	}
	for i, opts := range cases {
		if err := run(opts, nopRenderer{}); !errors.Is(err, layout.ErrInvalidBudget) {
			t.Errorf("case %d: got %v, want ErrInvalidBudget", i, err)
		}
	}
}

func TestRunRequiresInput(t *testing.T) {
	err := run(options{size: 32}, nopRenderer{})
	if err == nil || !strings.Contains(err.Error(), "no input") {
		t.Fatalf("got %v, want a missing-input error", err)
	}
}

func TestRunRequiresFont(t *testing.T) {
	err := run(options{text: "hi", size: 32}, nopRenderer{})
	if err == nil || !strings.Contains(err.Error(), "no font") {
		t.Fatalf("got %v, want a missing-font error", err)
	}
}

func TestReadInputPrefersLiteralText(t *testing.T) {
	got, err := readInput(options{text: "literal", input: "ignored.txt"})
	if err != nil {
		t.Fatalf("readInput failed: %v", err)
	}
	if got != "literal" {
		t.Errorf("got %q, want %q", got, "literal")
	}
}

func TestReadInputStripsOneTrailingNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.txt")
	if err := os.WriteFile(path, []byte("a\nb\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := readInput(options{input: path})
	if err != nil {
		t.Fatalf("readInput failed: %v", err)
	}
	if got != "a\nb" {
		t.Errorf("got %q, want %q", got, "a\nb")
	}
}

func TestFontDirsAppendsExtras(t *testing.T) {
	dirs := fontDirs("/tmp/fonts-a, /tmp/fonts-b,")
	joined := strings.Join(dirs, "\n")
	if !strings.Contains(joined, "/tmp/fonts-a") || !strings.Contains(joined, "/tmp/fonts-b") {
		t.Errorf("extras missing from %v", dirs)
	}
	if len(dirs) <= 2 {
		t.Errorf("platform defaults missing from %v", dirs)
	}
}
