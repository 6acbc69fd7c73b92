// Package chart turns the enriched dataset into report charts: each
// Definition filters the records, pivots them into a years by series table
// and renders it with gonum/plot next to a CSV of the plotted data.
package chart

import (
	"fmt"
	"slices"
	"strings"

	"satimge/satimge-charts/internal/aggregate"
	"satimge/satimge-charts/internal/parsererror"
	"satimge/satimge-charts/internal/taxonomy"
)

// Kind is the chart type.
type Kind string

const (
	KindBar  Kind = "bar" // stacked
	KindLine Kind = "line"
)

// ValueKind selects the measure that is summed.
type ValueKind string

const (
	ValueCO2eq ValueKind = "co2eq"
	ValueRaw   ValueKind = "value"
)

// Scale converts the summed values before plotting.
type Scale string

const (
	ScaleNone   Scale = "none"
	ScaleKtToMt Scale = "kt_to_mt"
	ScaleToTWh  Scale = "to_twh"
)

// Series fields.
const (
	SeriesFuel           = "fuel"
	SeriesTechnology     = "technology"
	SeriesSector         = "sector"
	SeriesSectorGroup    = "sector_group"
	SeriesSubsector      = "subsector"
	SeriesScenario       = "scenario"
	SeriesScenarioFamily = "scenario_family"
	SeriesScenarioGroup  = "scenario_group"
	SeriesGrowth         = "economic_growth"
)

var seriesFields = []string{
	SeriesFuel, SeriesTechnology, SeriesSector, SeriesSectorGroup, SeriesSubsector,
	SeriesScenario, SeriesScenarioFamily, SeriesScenarioGroup, SeriesGrowth,
}

// Definition describes one chart.
type Definition struct {
	Name    string           `yaml:"name"`
	Title   string           `yaml:"title"`
	Kind    Kind             `yaml:"kind"`
	Value   ValueKind        `yaml:"value"`
	Scale   Scale            `yaml:"scale"`
	Series  string           `yaml:"series"`
	Palette string           `yaml:"palette,omitempty"`
	YLabel  string           `yaml:"y_label"`
	Filter  aggregate.Filter `yaml:"filter"`
}

// withDefaults fills the optional fields.
func (d Definition) withDefaults() Definition {
	if d.Kind == "" {
		d.Kind = KindBar
	}
	if d.Value == "" {
		d.Value = ValueRaw
	}
	if d.Scale == "" {
		d.Scale = ScaleNone
	}
	if d.Palette == "" {
		d.Palette = defaultPalette(d.Series)
	}
	return d
}

func defaultPalette(series string) string {
	switch series {
	case SeriesFuel, SeriesTechnology:
		return taxonomy.PaletteFuel
	case SeriesSectorGroup:
		return taxonomy.PaletteSectorGroup
	case SeriesScenarioFamily:
		return taxonomy.PaletteScenarioFamily
	case SeriesScenarioGroup:
		return taxonomy.PaletteScenarioGroup
	case SeriesGrowth:
		return taxonomy.PaletteGrowth
	}
	return ""
}

// Validate checks the enumerated fields.
func (d Definition) Validate() error {
	fail := func(format string, args ...interface{}) error {
		return &parsererror.ValidationError{
			Subject: fmt.Sprintf("chart %q", d.Name),
			Reason:  fmt.Sprintf(format, args...),
		}
	}
	if strings.TrimSpace(d.Name) == "" {
		return fail("name is required")
	}
	if strings.ContainsAny(d.Name, `/\`) {
		return fail("name must not contain path separators")
	}
	if d.Kind != KindBar && d.Kind != KindLine {
		return fail("unknown kind %q", d.Kind)
	}
	if d.Value != ValueCO2eq && d.Value != ValueRaw {
		return fail("unknown value %q", d.Value)
	}
	if d.Scale != ScaleNone && d.Scale != ScaleKtToMt && d.Scale != ScaleToTWh {
		return fail("unknown scale %q", d.Scale)
	}
	if !slices.Contains(seriesFields, d.Series) {
		return fail("unknown series field %q (valid: %s)", d.Series, strings.Join(seriesFields, ", "))
	}
	if d.Filter.YearFrom != 0 && d.Filter.YearTo != 0 && d.Filter.YearFrom > d.Filter.YearTo {
		return fail("year_from %d is after year_to %d", d.Filter.YearFrom, d.Filter.YearTo)
	}
	return nil
}

// wemReference is the WEM scenario with reference growth.
const wemReference = "NDC_BASE-RG"

// BuiltinDefinitions returns the report charts shipped with the tool.
func BuiltinDefinitions() []Definition {
	power := func(indicators ...string) aggregate.Filter {
		return aggregate.Filter{
			Scenarios:  []string{wemReference},
			Sectors:    []string{"Power"},
			Indicators: indicators,
			YearFrom:   2024,
			YearTo:     2035,
		}
	}
	return []Definition{
		{
			Name:   "power_capacity_by_technology",
			Title:  "Power: WEM capacity by technology",
			Kind:   KindBar,
			Value:  ValueRaw,
			Scale:  ScaleNone,
			Series: SeriesFuel,
			YLabel: "Capacity (GW)",
			Filter: power("Capacity"),
		},
		{
			Name:   "power_generation_by_technology",
			Title:  "Power: WEM generation by technology",
			Kind:   KindBar,
			Value:  ValueRaw,
			Scale:  ScaleToTWh,
			Series: SeriesFuel,
			YLabel: "Generation (TWh)",
			Filter: power("FlowOut"),
		},
		{
			Name:   "power_emissions_by_technology",
			Title:  "Power: WEM emissions by technology",
			Kind:   KindBar,
			Value:  ValueCO2eq,
			Scale:  ScaleKtToMt,
			Series: SeriesFuel,
			YLabel: "Mt CO2eq",
			Filter: aggregate.Filter{
				Scenarios: []string{wemReference},
				Sectors:   []string{"Power"},
				YearFrom:  2024,
				YearTo:    2035,
				GasesOnly: true,
			},
		},
		{
			Name:   "emissions_by_sector_group",
			Title:  "WEM emissions by sector",
			Kind:   KindBar,
			Value:  ValueCO2eq,
			Scale:  ScaleKtToMt,
			Series: SeriesSectorGroup,
			YLabel: "Mt CO2eq",
			Filter: aggregate.Filter{
				Scenarios: []string{wemReference},
				YearFrom:  2024,
				YearTo:    2035,
				GasesOnly: true,
			},
		},
		{
			Name:   "emissions_wem_growth",
			Title:  "WEM emissions by economic growth",
			Kind:   KindLine,
			Value:  ValueCO2eq,
			Scale:  ScaleKtToMt,
			Series: SeriesGrowth,
			YLabel: "Mt CO2eq",
			Filter: aggregate.Filter{
				Scenarios: []string{"NDC_BASE-LG", wemReference, "NDC_BASE-HG"},
				YearFrom:  2024,
				YearTo:    2035,
				GasesOnly: true,
			},
		},
	}
}
