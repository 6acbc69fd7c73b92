package taxonomy

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Strategy is one step of the label pipeline. Resolve reports whether it
// produced a canonical label.
type Strategy interface {
	Resolve(label string) (string, bool)
	Name() Stage
}

// ExactStrategy accepts labels that are already palette keys.
type ExactStrategy struct {
	palette *Palette
}

// NewExactStrategy creates an ExactStrategy over a palette.
func NewExactStrategy(p *Palette) *ExactStrategy {
	return &ExactStrategy{palette: p}
}

func (s *ExactStrategy) Name() Stage { return StageExact }

func (s *ExactStrategy) Resolve(label string) (string, bool) {
	if s.palette == nil || !s.palette.Has(label) {
		return "", false
	}
	return label, true
}

// AliasStrategy looks a label up in an explicit alias table.
type AliasStrategy struct {
	aliases map[string]string
}

// NewAliasStrategy creates an AliasStrategy. The map is not copied.
func NewAliasStrategy(aliases map[string]string) *AliasStrategy {
	return &AliasStrategy{aliases: aliases}
}

func (s *AliasStrategy) Name() Stage { return StageAlias }

func (s *AliasStrategy) Resolve(label string) (string, bool) {
	v, ok := s.aliases[label]
	return v, ok
}

// PrefixStrategy strips the electricity-sector "E" prefix and spaces the
// remainder: "EWindOffshore" becomes "Wind Offshore". Only labels whose
// second rune is upper case are touched, so "Exports" is left alone.
type PrefixStrategy struct{}

func (PrefixStrategy) Name() Stage { return StagePrefix }

func (PrefixStrategy) Resolve(label string) (string, bool) {
	runes := []rune(label)
	if len(runes) < 2 || runes[0] != 'E' || !unicode.IsUpper(runes[1]) {
		return "", false
	}
	words := SplitWords(string(runes[1:]))
	if len(words) == 0 {
		return "", false
	}
	title := cases.Title(language.English)
	for i, w := range words {
		if !isAcronym(w) {
			words[i] = title.String(w)
		}
	}
	return strings.Join(words, " "), true
}

// SplitWords splits camel case, underscores and spaces into words. A run of
// capitals followed by a lower-case letter ends one rune early, so
// "PVRooftop" splits into "PV" and "Rooftop".
func SplitWords(s string) []string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}
	runes := []rune(s)
	for i, r := range runes {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && len(cur) > 0 {
			prev := cur[len(cur)-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}

func isAcronym(w string) bool {
	letters := 0
	for _, r := range w {
		if unicode.IsLetter(r) {
			if !unicode.IsUpper(r) {
				return false
			}
			letters++
		}
	}
	return letters > 1
}

// FuzzyStrategy picks the closest palette key when its similarity ratio
// reaches the cutoff.
type FuzzyStrategy struct {
	palette *Palette
	cutoff  float64
}

// NewFuzzyStrategy creates a FuzzyStrategy over a palette.
func NewFuzzyStrategy(p *Palette, cutoff float64) *FuzzyStrategy {
	return &FuzzyStrategy{palette: p, cutoff: cutoff}
}

func (s *FuzzyStrategy) Name() Stage { return StageFuzzy }

func (s *FuzzyStrategy) Resolve(label string) (string, bool) {
	if s.palette == nil {
		return "", false
	}
	return ClosestMatch(label, s.palette.Keys(), s.cutoff)
}
