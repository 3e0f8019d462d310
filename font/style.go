package font

import (
	"fmt"
	"strings"

	otfont "github.com/go-text/typesetting/font"
)

// Style identifies a weight or slant variant of a font family. Families are
// indexed by single-axis buckets: one face per weight plus one italic face,
// which keeps the registry model flat and matches how desktop font files are
// usually shipped (one file per named style).
type Style int

const (
	StyleRegular Style = iota
	StyleThin
	StyleExtraLight
	StyleLight
	StyleMedium
	StyleSemiBold
	StyleBold
	StyleExtraBold
	StyleBlack
	StyleItalic
)

func (s Style) String() string {
	switch s {
	case StyleThin:
		return "thin"
	case StyleExtraLight:
		return "extralight"
	case StyleLight:
		return "light"
	case StyleRegular:
		return "regular"
	case StyleMedium:
		return "medium"
	case StyleSemiBold:
		return "semibold"
	case StyleBold:
		return "bold"
	case StyleExtraBold:
		return "extrabold"
	case StyleBlack:
		return "black"
	case StyleItalic:
		return "italic"
	default:
		return "unknown"
	}
}

// ParseStyle maps a user-facing style name to a Style. Separators are
// ignored, so "extra_light", "extra-light" and "extralight" are equivalent.
func ParseStyle(name string) (Style, error) {
	norm := strings.ToLower(name)
	norm = strings.ReplaceAll(norm, "_", "")
	norm = strings.ReplaceAll(norm, "-", "")
	norm = strings.TrimSpace(norm)
	switch norm {
	case "", "regular", "normal":
		return StyleRegular, nil
	case "thin":
		return StyleThin, nil
	case "extralight", "ultralight":
		return StyleExtraLight, nil
	case "light":
		return StyleLight, nil
	case "medium":
		return StyleMedium, nil
	case "semibold", "demibold":
		return StyleSemiBold, nil
	case "bold":
		return StyleBold, nil
	case "extrabold", "ultrabold":
		return StyleExtraBold, nil
	case "black", "heavy":
		return StyleBlack, nil
	case "italic", "oblique":
		return StyleItalic, nil
	default:
		return StyleRegular, fmt.Errorf("unknown font style %q", name)
	}
}

// styleFromName derives a face's style bucket from its subfamily or full
// name. Longer keywords are matched first so "ExtraLight" is not mistaken
// for "Light". Italic wins over weight keywords because slant is the only
// second axis we track.
func styleFromName(name string) (Style, bool) {
	n := strings.ToLower(name)
	n = strings.ReplaceAll(n, " ", "")
	n = strings.ReplaceAll(n, "-", "")
	n = strings.ReplaceAll(n, "_", "")
	if strings.Contains(n, "italic") || strings.Contains(n, "oblique") {
		return StyleItalic, true
	}
	switch {
	case strings.Contains(n, "extralight"), strings.Contains(n, "ultralight"):
		return StyleExtraLight, true
	case strings.Contains(n, "extrabold"), strings.Contains(n, "ultrabold"):
		return StyleExtraBold, true
	case strings.Contains(n, "semibold"), strings.Contains(n, "demibold"):
		return StyleSemiBold, true
	case strings.Contains(n, "thin"):
		return StyleThin, true
	case strings.Contains(n, "light"):
		return StyleLight, true
	case strings.Contains(n, "medium"):
		return StyleMedium, true
	case strings.Contains(n, "black"), strings.Contains(n, "heavy"):
		return StyleBlack, true
	case strings.Contains(n, "bold"):
		return StyleBold, true
	case strings.Contains(n, "regular"), strings.Contains(n, "book"), strings.Contains(n, "roman"):
		return StyleRegular, true
	}
	return StyleRegular, false
}

// styleFromWeight buckets a numeric OS/2 weight onto the weight axis by
// flooring within the standard 100-900 ranges, so 350 lands in the Light
// bucket. Used when a face's names carry no style keyword.
func styleFromWeight(w otfont.Weight) Style {
	switch {
	case w < otfont.WeightExtraLight:
		return StyleThin
	case w < otfont.WeightLight:
		return StyleExtraLight
	case w < otfont.WeightNormal:
		return StyleLight
	case w < otfont.WeightMedium:
		return StyleRegular
	case w < otfont.WeightSemibold:
		return StyleMedium
	case w < otfont.WeightBold:
		return StyleSemiBold
	case w < otfont.WeightExtraBold:
		return StyleBold
	case w < otfont.WeightBlack:
		return StyleExtraBold
	default:
		return StyleBlack
	}
}
