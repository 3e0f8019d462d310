package font

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// FeatureList holds the OpenType features handed to the shaper, keyed by
// 4-character feature tag. A tag that is absent from the list is left to the
// font's own defaults minus our explicit removals; see Apply.
type FeatureList map[string]uint32

// DefaultFeatures returns the features enabled for every document unless the
// user turns them off: kerning, standard and contextual ligatures.
func DefaultFeatures() FeatureList {
	return FeatureList{
		"kern": 1,
		"liga": 1,
		"calt": 1,
		"clig": 1,
	}
}

var (
	featureLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Ident", Pattern: `[A-Za-z][A-Za-z0-9]*`},
		{Name: "Int", Pattern: `\d+`},
		{Name: "Punct", Pattern: `[=,]`},
		{Name: "Whitespace", Pattern: `[ \t]+`},
	})

	featureParser = participle.MustBuild[featureSpec](
		participle.Lexer(featureLexer),
		participle.Elide("Whitespace"),
	)
)

// featureSetting is one "tag" or "tag=value" item of a feature string.
type featureSetting struct {
	Tag   string `parser:"@Ident"`
	Value *int   `parser:"( '=' @Int )?"`
}

// featureSpec is a comma-separated feature string such as "cv01=1,calt=0".
// Stray commas are tolerated, empty items are skipped.
type featureSpec struct {
	Settings []featureSetting `parser:"( @@ | ',' )*"`
}

// Apply parses a feature string like "cv01=1,calt=0,liga" and merges it into
// the list. An omitted value means 1; a value of 0 removes the feature.
// Existing entries for the same tag are overridden, unspecified defaults are
// kept.
func (fl FeatureList) Apply(spec string) error {
	if strings.TrimSpace(spec) == "" {
		return nil
	}
	parsed, err := featureParser.ParseString("", spec)
	if err != nil {
		return fmt.Errorf("parsing font features %q: %w", spec, err)
	}
	for _, s := range parsed.Settings {
		if len(s.Tag) != 4 {
			return fmt.Errorf("invalid feature tag %q: feature tags must be exactly 4 characters", s.Tag)
		}
		value := uint32(1)
		if s.Value != nil {
			value = uint32(*s.Value)
		}
		if value == 0 {
			delete(fl, s.Tag)
			continue
		}
		fl[s.Tag] = value
	}
	return nil
}

// Feature is a single resolved feature setting.
type Feature struct {
	Tag   string
	Value uint32
}

// Sorted returns the list as a slice ordered by tag, for deterministic
// shaping input and summaries.
func (fl FeatureList) Sorted() []Feature {
	out := make([]Feature, 0, len(fl))
	for tag, value := range fl {
		out = append(out, Feature{Tag: tag, Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out
}

// Summary renders the active features as "calt=1,kern=1,...", or "none".
func (fl FeatureList) Summary() string {
	if len(fl) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(fl))
	for _, f := range fl.Sorted() {
		parts = append(parts, fmt.Sprintf("%s=%d", f.Tag, f.Value))
	}
	return strings.Join(parts, ",")
}
