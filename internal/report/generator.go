// Package report lists the distinct taxonomy values of an enriched dataset
// with their palette colours and the fallback coverage counters.
package report

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"satimge/satimge-charts/internal/dataio"
	"satimge/satimge-charts/internal/emissions"
	"satimge/satimge-charts/internal/fileutils"
	"satimge/satimge-charts/internal/logging"
	"satimge/satimge-charts/internal/models"
	"satimge/satimge-charts/internal/taxonomy"
)

// Supported report formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Lookup kinds, also used as CSV table names.
const (
	KindFamilies     = "families"
	KindGroups       = "groups"
	KindGrowths      = "growths"
	KindSectors      = "sectors"
	KindSectorGroups = "sector_groups"
	KindTechnologies = "technologies"
)

// Lookup is one distinct label.
type Lookup struct {
	Label        string `json:"label" yaml:"label" csv:"label"`
	SuggestedHex string `json:"suggested_hex,omitempty" yaml:"suggested_hex,omitempty" csv:"suggested_hex"`
	Rows         int    `json:"rows" yaml:"rows" csv:"rows"`
}

// ScenarioLookup is one distinct scenario with its decoded fields.
type ScenarioLookup struct {
	Scenario       string `json:"scenario" yaml:"scenario" csv:"Scenario"`
	ScenarioFamily string `json:"family" yaml:"family" csv:"ScenarioFamily"`
	ScenarioGroup  string `json:"group" yaml:"group" csv:"ScenarioGroup"`
	EconomicGrowth string `json:"growth" yaml:"growth" csv:"EconomicGrowth"`
	CarbonBudget   string `json:"carbon_budget" yaml:"carbon_budget" csv:"CarbonBudget"`
	Rows           int    `json:"rows" yaml:"rows" csv:"rows"`
}

// GasLookup is one recognised gas indicator with its warming potential.
type GasLookup struct {
	Indicator string  `json:"indicator" yaml:"indicator" csv:"Indicator"`
	GWP       float64 `json:"gwp" yaml:"gwp" csv:"gwp"`
	Rows      int     `json:"rows" yaml:"rows" csv:"rows"`
}

// LookupsReport is the full listing.
type LookupsReport struct {
	Source         string               `json:"source" yaml:"source"`
	Scenarios      []ScenarioLookup     `json:"scenarios" yaml:"scenarios"`
	Gases          []GasLookup          `json:"gases" yaml:"gases"`
	Lookups        map[string][]Lookup  `json:"lookups" yaml:"lookups"`
	Coverage       models.AssemblyStats `json:"coverage" yaml:"coverage"`
	FamilyCoverage float64              `json:"family_coverage_pct" yaml:"family_coverage_pct"`
}

// ReportGenerator builds and serialises lookup reports.
type ReportGenerator struct {
	mapper *taxonomy.Mapper
	logger logging.Logger
}

// NewReportGenerator creates a new instance of ReportGenerator.
func NewReportGenerator(mapper *taxonomy.Mapper, logger logging.Logger) *ReportGenerator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if mapper == nil {
		mapper = taxonomy.NewMapper(taxonomy.Options{}, logger)
	}
	return &ReportGenerator{
		mapper: mapper,
		logger: logger.WithField(logging.FieldComponent, "ReportGenerator"),
	}
}

type counter struct {
	counts map[string]int
}

func (c *counter) add(label string) {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	c.counts[label]++
}

// lookups returns the labels sorted alphabetically, coloured by colorOf.
func (c *counter) lookups(colorOf func(string) string) []Lookup {
	labels := make([]string, 0, len(c.counts))
	for l := range c.counts {
		labels = append(labels, l)
	}
	slices.Sort(labels)
	out := make([]Lookup, 0, len(labels))
	for _, l := range labels {
		out = append(out, Lookup{Label: l, SuggestedHex: colorOf(l), Rows: c.counts[l]})
	}
	return out
}

// Build collects the distinct values of ds.
func (g *ReportGenerator) Build(ds *models.EnrichedDataset) *LookupsReport {
	palette := func(name string) func(string) string {
		p, ok := g.mapper.Palette(name)
		if !ok {
			return func(string) string { return taxonomy.DefaultColor }
		}
		return p.Color
	}
	fuel, _ := g.mapper.Palette(taxonomy.PaletteFuel)
	sectorColor := palette(taxonomy.PaletteSectorGroup)

	var families, groups, growths, sectors, sectorGroups, techs, gases counter
	scenarios := make(map[string]*ScenarioLookup)
	rep := &LookupsReport{Lookups: make(map[string][]Lookup)}
	if ds != nil {
		rep.Source = ds.Source
		for _, r := range ds.Records {
			rep.Coverage.Observe(r)
			families.add(r.ScenarioFamily.DisplayName())
			groups.add(r.ScenarioGroup.DisplayName())
			growths.add(r.EconomicGrowth.DisplayName())
			sectors.add(r.Sector)
			sectorGroups.add(r.SectorGroup)
			techs.add(r.Subsector)
			if emissions.IsGas(r.Indicator) {
				gases.add(r.Indicator)
			}

			sc, ok := scenarios[r.Scenario]
			if !ok {
				sc = &ScenarioLookup{
					Scenario:       r.Scenario,
					ScenarioFamily: string(r.ScenarioFamily),
					ScenarioGroup:  string(r.ScenarioGroup),
					EconomicGrowth: string(r.EconomicGrowth),
					CarbonBudget:   r.CarbonBudget.String(),
				}
				scenarios[r.Scenario] = sc
			}
			sc.Rows++
		}
	}

	for _, sc := range scenarios {
		rep.Scenarios = append(rep.Scenarios, *sc)
	}
	slices.SortFunc(rep.Scenarios, func(a, b ScenarioLookup) int {
		return strings.Compare(a.Scenario, b.Scenario)
	})
	for _, gas := range emissions.Gases() {
		f, _ := emissions.GWP(gas)
		rep.Gases = append(rep.Gases, GasLookup{Indicator: gas, GWP: f, Rows: gases.counts[gas]})
	}
	rep.Coverage.DistinctScenarios = len(scenarios)
	rep.FamilyCoverage = rep.Coverage.CoverageRate()

	rep.Lookups[KindFamilies] = families.lookups(palette(taxonomy.PaletteScenarioFamily))
	rep.Lookups[KindGroups] = groups.lookups(palette(taxonomy.PaletteScenarioGroup))
	rep.Lookups[KindGrowths] = growths.lookups(palette(taxonomy.PaletteGrowth))
	rep.Lookups[KindSectorGroups] = sectorGroups.lookups(sectorColor)
	rep.Lookups[KindSectors] = sectors.lookups(func(s string) string {
		return sectorColor(g.mapper.SectorGroup(s))
	})
	rep.Lookups[KindTechnologies] = techs.lookups(func(s string) string {
		return fuel.Color(g.mapper.Match(fuel, s).PaletteKey)
	})

	g.logger.Info("Lookups collected",
		logging.Field{Key: logging.FieldFile, Value: rep.Source},
		logging.Field{Key: "scenarios", Value: len(rep.Scenarios)},
		logging.Field{Key: "technologies", Value: len(rep.Lookups[KindTechnologies])})
	return rep
}

// GenerateReport serialises report as json or yaml.
func (g *ReportGenerator) GenerateReport(report *LookupsReport, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			g.logger.WithError(err).Error("Failed to marshal JSON report")
			return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
		}
		return out, nil
	case FormatYAML:
		out, err := yaml.Marshal(report)
		if err != nil {
			g.logger.WithError(err).Error("Failed to marshal YAML report")
			return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// WriteTables writes scenarios.csv, gases.csv and one <kind>.csv per lookup
// kind into dir and returns the paths written.
func (g *ReportGenerator) WriteTables(report *LookupsReport, dir string, delimiter rune) ([]string, error) {
	if err := fileutils.EnsureDirectoryExists(dir); err != nil {
		return nil, err
	}

	var paths []string
	scenPath := filepath.Join(dir, "scenarios.csv")
	if err := dataio.WriteCSV(scenPath, report.Scenarios, delimiter); err != nil {
		return nil, fmt.Errorf("error writing %s: %w", scenPath, err)
	}
	paths = append(paths, scenPath)

	gasPath := filepath.Join(dir, "gases.csv")
	if err := dataio.WriteCSV(gasPath, report.Gases, delimiter); err != nil {
		return nil, fmt.Errorf("error writing %s: %w", gasPath, err)
	}
	paths = append(paths, gasPath)

	kinds := make([]string, 0, len(report.Lookups))
	for k := range report.Lookups {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	for _, k := range kinds {
		path := filepath.Join(dir, k+".csv")
		if err := dataio.WriteCSV(path, report.Lookups[k], delimiter); err != nil {
			return nil, fmt.Errorf("error writing %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	g.logger.Info("Lookup tables written",
		logging.Field{Key: logging.FieldOutputFile, Value: dir},
		logging.Field{Key: logging.FieldCount, Value: len(paths)})
	return paths, nil
}
