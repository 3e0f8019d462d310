package font

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	otfont "github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// ErrFontNotFound reports that a family or style cannot be satisfied by the
// registry. It is fatal for the whole document and surfaced before any
// layout work begins.
var ErrFontNotFound = errors.New("font not found")

// FaceRef points at one face inside a font file. The registry records names
// and styles during the scan and re-reads the file only when a Provider is
// built from it.
type FaceRef struct {
	Path      string
	Index     int // face index inside a collection, 0 for plain files
	Family    string
	Subfamily string
	Style     Style
}

// Registry is the process-wide list of available fonts, built once per
// invocation from a fixed set of directories and read-only afterwards.
type Registry struct {
	families map[string][]FaceRef
}

// NewRegistry scans the given directories for .ttf/.otf/.ttc files. With no
// arguments the platform's standard font directories are used. Files that
// fail to parse are skipped silently; an unusable system font is not an
// error until somebody asks for it.
func NewRegistry(dirs ...string) *Registry {
	if len(dirs) == 0 {
		dirs = DefaultDirs()
	}
	r := &Registry{families: map[string][]FaceRef{}}
	for _, dir := range dirs {
		r.scan(dir)
	}
	return r
}

// DefaultDirs returns the standard font directories for the current OS.
func DefaultDirs() []string {
	var dirs []string
	switch runtime.GOOS {
	case "darwin":
		dirs = []string{"/System/Library/Fonts", "/Library/Fonts"}
		if home, err := os.UserHomeDir(); err == nil {
			dirs = append(dirs, filepath.Join(home, "Library", "Fonts"))
		}
	case "windows":
		dirs = []string{filepath.Join(os.Getenv("WINDIR"), "Fonts")}
	default:
		dirs = []string{"/usr/share/fonts", "/usr/local/share/fonts"}
		if home, err := os.UserHomeDir(); err == nil {
			dirs = append(dirs,
				filepath.Join(home, ".local", "share", "fonts"),
				filepath.Join(home, ".fonts"))
		}
	}
	return dirs
}

func (r *Registry) scan(dir string) {
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".ttf", ".otf":
			r.addFile(path)
		case ".ttc":
			r.addCollection(path)
		}
		return nil
	})
}

func (r *Registry) addFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return
	}
	r.describe(f, data, path, 0)
}

func (r *Registry) addCollection(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	coll, err := sfnt.ParseCollection(data)
	if err != nil {
		return
	}
	for i := 0; i < coll.NumFonts(); i++ {
		f, err := coll.Font(i)
		if err != nil {
			continue
		}
		r.describe(f, data, path, i)
	}
}

func (r *Registry) describe(f *sfnt.Font, data []byte, path string, index int) {
	var buf sfnt.Buffer
	family, err := f.Name(&buf, sfnt.NameIDFamily)
	if err != nil || family == "" {
		return
	}
	sub, _ := f.Name(&buf, sfnt.NameIDSubfamily)
	style, ok := styleFromName(sub)
	if !ok {
		// Some fonts only encode the style in the full name.
		if full, err := f.Name(&buf, sfnt.NameIDFull); err == nil {
			style, ok = styleFromName(full)
		}
	}
	if !ok {
		style = aspectStyle(data, index)
	}
	key := strings.ToLower(family)
	r.families[key] = append(r.families[key], FaceRef{
		Path:      path,
		Index:     index,
		Family:    family,
		Subfamily: sub,
		Style:     style,
	})
}

// Families lists the scanned family names, sorted.
func (r *Registry) Families() []string {
	seen := map[string]bool{}
	var names []string
	for _, refs := range r.families {
		for _, ref := range refs {
			if !seen[ref.Family] {
				seen[ref.Family] = true
				names = append(names, ref.Family)
			}
		}
	}
	sort.Strings(names)
	return names
}

// aspectStyle classifies a face whose names carry no style keyword from its
// font metadata: italic slant wins, otherwise the numeric weight is bucketed.
func aspectStyle(data []byte, index int) Style {
	loaders, err := ot.NewLoaders(bytes.NewReader(data))
	if err != nil || index >= len(loaders) {
		return StyleRegular
	}
	desc, _ := otfont.Describe(loaders[index], nil)
	if desc.Aspect.Style == otfont.StyleItalic {
		return StyleItalic
	}
	return styleFromWeight(desc.Aspect.Weight)
}

// Resolve returns all faces of a family, matched case-insensitively.
func (r *Registry) Resolve(family string) ([]FaceRef, error) {
	refs := r.families[strings.ToLower(family)]
	if len(refs) == 0 {
		return nil, fmt.Errorf("font family %q: %w", family, ErrFontNotFound)
	}
	return refs, nil
}
