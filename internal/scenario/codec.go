// Package scenario decodes raw SATIMGE scenario codes such as
// "NDC_CPP4-0925-RG" into family, group, economic growth and carbon budget.
//
// Decoding never fails: unrecognised codes degrade to OTHER, UNKNOWN and
// NoBudget.
package scenario

import (
	"fmt"
	"regexp"
	"strings"

	"satimge/satimge-charts/internal/models"
)

// Mode selects the family classification rules.
type Mode string

const (
	// ModeToken matches whole tokens of the code first and falls back to the
	// ordered substring table.
	ModeToken Mode = "token"
	// ModeLegacy uses only the ordered substring table, first match wins.
	ModeLegacy Mode = "legacy"
)

// ParseMode validates a configured mode. An empty string selects ModeToken.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeToken:
		return ModeToken, nil
	case ModeLegacy:
		return ModeLegacy, nil
	default:
		return "", fmt.Errorf("unknown scenario family rules '%s' (want %s or %s)", s, ModeToken, ModeLegacy)
	}
}

// Record is a decoded scenario code.
type Record struct {
	Raw    string
	Family models.Family
	Group  models.Group
	Growth models.Growth
	Budget models.Budget
}

type rule struct {
	key    string
	family models.Family
}

// substringRules is scanned in order. CPP4 appears twice; the second entry
// can never win.
var substringRules = []rule{
	{"CPP4", models.FamilyCPP4Variant},
	{"CPP4", models.FamilyCPP4},
	{"CPP1", models.FamilyCPP1},
	{"CPP2", models.FamilyCPP2},
	{"CPP3", models.FamilyCPP3},
	{"HCARB", models.FamilyHighCarbon},
	{"LCARB", models.FamilyLowCarbon},
	{"BASE", models.FamilyBase},
}

var tokenRules = []rule{
	{"CPP4", models.FamilyCPP4},
	{"CPP1", models.FamilyCPP1},
	{"CPP2", models.FamilyCPP2},
	{"CPP3", models.FamilyCPP3},
	{"HCARB", models.FamilyHighCarbon},
	{"LCARB", models.FamilyLowCarbon},
	{"BASE", models.FamilyBase},
}

var growthRules = []struct {
	tag    string
	growth models.Growth
}{
	{"-RG", models.GrowthReference},
	{"-LG", models.GrowthLow},
	{"-HG", models.GrowthHigh},
}

var budgetPattern = regexp.MustCompile(`\d{2,4}`)

// budgetTable is explicit; digit tokens do not follow one decimal-shift rule.
var budgetTable = map[string]float64{
	"075":  7.5,
	"0775": 7.75,
	"08":   8,
	"8":    8,
	"0825": 8.25,
	"085":  8.5,
	"0875": 8.75,
	"09":   9,
	"0925": 9.25,
	"095":  9.5,
	"0975": 9.75,
	"10":   10,
	"1025": 10.25,
	"105":  10.5,
}

// Codec decodes scenario codes. The zero value uses ModeToken.
type Codec struct {
	mode Mode
}

// NewCodec creates a codec for the given mode.
func NewCodec(mode Mode) *Codec {
	if mode == "" {
		mode = ModeToken
	}
	return &Codec{mode: mode}
}

// Mode returns the classification mode in use.
func (c *Codec) Mode() Mode {
	if c == nil || c.mode == "" {
		return ModeToken
	}
	return c.mode
}

// Decode decodes every field of a raw scenario code.
func (c *Codec) Decode(raw string) Record {
	family := c.Family(raw)
	return Record{
		Raw:    raw,
		Family: family,
		Group:  GroupOf(family),
		Growth: Growth(raw),
		Budget: CarbonBudget(raw),
	}
}

// Family classifies a raw code into a scenario family.
func (c *Codec) Family(raw string) models.Family {
	if strings.TrimSpace(raw) == "CPP4" {
		return models.FamilyCPP4
	}
	if c.Mode() == ModeToken {
		if f, ok := familyByToken(raw); ok {
			return f
		}
	}
	for _, r := range substringRules {
		if strings.Contains(raw, r.key) {
			return r.family
		}
	}
	return models.FamilyOther
}

func familyByToken(raw string) (models.Family, bool) {
	tokens := Tokens(raw)
	for _, r := range tokenRules {
		for _, tok := range tokens {
			if tok == r.key {
				return r.family, true
			}
		}
	}
	return "", false
}

// Tokens splits a raw code on '-' and '_' and drops empty parts.
func Tokens(raw string) []string {
	return strings.FieldsFunc(strings.TrimSpace(raw), func(r rune) bool {
		return r == '-' || r == '_'
	})
}

// GroupOf collapses a family into its group.
func GroupOf(f models.Family) models.Group {
	switch {
	case strings.HasPrefix(string(f), "CPP"):
		return models.GroupCPP
	case f == models.FamilyBase:
		return models.GroupWEM
	case f == models.FamilyHighCarbon:
		return models.GroupHighCarbon
	case f == models.FamilyLowCarbon:
		return models.GroupLowCarbon
	default:
		return models.GroupOther
	}
}

// Growth reads the economic growth tag. Tags are checked in the order
// -RG, -LG, -HG.
func Growth(raw string) models.Growth {
	for _, g := range growthRules {
		if strings.Contains(raw, g.tag) {
			return g.growth
		}
	}
	return models.GrowthUnknown
}

// CarbonBudget looks up the first run of two to four digits in raw.
func CarbonBudget(raw string) models.Budget {
	token := budgetPattern.FindString(raw)
	if token == "" {
		return models.NoBudget
	}
	gt, ok := budgetTable[token]
	if !ok {
		return models.NoBudget
	}
	return models.BudgetOf(gt)
}
