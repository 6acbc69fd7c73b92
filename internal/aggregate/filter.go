// Package aggregate filters enriched records and pivots them into the
// year by series tables the charts plot.
package aggregate

import (
	"slices"

	"satimge/satimge-charts/internal/emissions"
	"satimge/satimge-charts/internal/models"
)

// Filter selects enriched records. Empty lists and zero years do not
// constrain.
type Filter struct {
	Scenarios         []string `yaml:"scenarios,omitempty" json:"scenarios,omitempty"`
	Families          []string `yaml:"families,omitempty" json:"families,omitempty"`
	Sectors           []string `yaml:"sectors,omitempty" json:"sectors,omitempty"`
	SectorGroups      []string `yaml:"sector_groups,omitempty" json:"sector_groups,omitempty"`
	Subsectors        []string `yaml:"subsectors,omitempty" json:"subsectors,omitempty"`
	ExcludeSubsectors []string `yaml:"exclude_subsectors,omitempty" json:"exclude_subsectors,omitempty"`
	Indicators        []string `yaml:"indicators,omitempty" json:"indicators,omitempty"`
	Commodities       []string `yaml:"commodities,omitempty" json:"commodities,omitempty"`
	YearFrom          int      `yaml:"year_from,omitempty" json:"year_from,omitempty"`
	YearTo            int      `yaml:"year_to,omitempty" json:"year_to,omitempty"`
	GasesOnly         bool     `yaml:"gases_only,omitempty" json:"gases_only,omitempty"`
}

func allowed(list []string, v string) bool {
	return len(list) == 0 || slices.Contains(list, v)
}

// Match reports whether r passes every constraint. Families match either
// the family code or its display name.
func (f Filter) Match(r models.EnrichedRecord) bool {
	switch {
	case !allowed(f.Scenarios, r.Scenario):
		return false
	case len(f.Families) > 0 &&
		!slices.Contains(f.Families, string(r.ScenarioFamily)) &&
		!slices.Contains(f.Families, r.ScenarioFamily.DisplayName()):
		return false
	case !allowed(f.Sectors, r.Sector):
		return false
	case !allowed(f.SectorGroups, r.SectorGroup):
		return false
	case !allowed(f.Subsectors, r.Subsector):
		return false
	case slices.Contains(f.ExcludeSubsectors, r.Subsector):
		return false
	case !allowed(f.Indicators, r.Indicator):
		return false
	case !allowed(f.Commodities, r.Commodity):
		return false
	case f.YearFrom != 0 && r.Year < f.YearFrom:
		return false
	case f.YearTo != 0 && r.Year > f.YearTo:
		return false
	case f.GasesOnly && !emissions.IsGas(r.Indicator):
		return false
	}
	return true
}

// Apply returns the matching records in input order.
func (f Filter) Apply(records []models.EnrichedRecord) []models.EnrichedRecord {
	out := make([]models.EnrichedRecord, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
