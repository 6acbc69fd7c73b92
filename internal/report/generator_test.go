package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"satimge/satimge-charts/internal/emissions"
	"satimge/satimge-charts/internal/logging"
	"satimge/satimge-charts/internal/models"
	"satimge/satimge-charts/internal/scenario"
	"satimge/satimge-charts/internal/taxonomy"
)

func sampleDataset(t *testing.T) *models.EnrichedDataset {
	t.Helper()
	codec := scenario.NewCodec(scenario.ModeToken)
	mapper := taxonomy.NewMapper(taxonomy.Options{}, logging.NewMockLogger())

	rows := []models.Record{
		{Scenario: "NDC_BASE-RG", Sector: "Power", Subsector: "ECoal", Indicator: "CO2", Year: 2030, Value: 100},
		{Scenario: "NDC_BASE-RG", Sector: "Power", Subsector: "EGas", Indicator: "Capacity", Year: 2030, Value: 5},
		{Scenario: "NDC_CPP4-08-RG", Sector: "Agriculture", Subsector: "Livestock", Indicator: "CH4", Year: 2030, Value: 1},
		{Scenario: "MYSTERY", Sector: "Power", Subsector: "EWind", Indicator: "CO2", Year: 2030, Value: 0},
	}
	ds := &models.EnrichedDataset{Source: "processed_dataset.csv"}
	for _, r := range rows {
		sc := codec.Decode(r.Scenario)
		ds.Records = append(ds.Records, models.EnrichedRecord{
			Record:         r,
			ScenarioFamily: sc.Family,
			ScenarioGroup:  sc.Group,
			EconomicGrowth: sc.Growth,
			CarbonBudget:   sc.Budget,
			SectorGroup:    mapper.SectorGroup(r.Sector),
			Technology:     mapper.Canonicalize(taxonomy.KindTechnology, r.Subsector),
			CO2eq:          emissions.CO2eq(r.Indicator, r.Value),
		})
	}
	return ds
}

func TestBuild(t *testing.T) {
	logger := logging.NewMockLogger()
	g := NewReportGenerator(nil, logger)

	rep := g.Build(sampleDataset(t))

	require.Len(t, rep.Scenarios, 3)
	assert.Equal(t, "MYSTERY", rep.Scenarios[0].Scenario)
	assert.Equal(t, "OTHER", rep.Scenarios[0].ScenarioFamily)
	assert.Equal(t, "NDC_BASE-RG", rep.Scenarios[1].Scenario)
	assert.Equal(t, 2, rep.Scenarios[1].Rows)
	assert.Equal(t, models.NoBudgetLabel, rep.Scenarios[1].CarbonBudget)
	assert.Equal(t, "8", rep.Scenarios[2].CarbonBudget)

	assert.Equal(t, models.AssemblyStats{
		Rows:              4,
		DistinctScenarios: 3,
		OtherFamily:       1,
		UnknownGrowth:     1,
		NoBudget:          3,
		OtherSector:       1,
		NullCO2eq:         1,
	}, rep.Coverage)
	assert.InDelta(t, 75.0, rep.FamilyCoverage, 1e-9)

	assert.Equal(t, []GasLookup{
		{Indicator: "C2F6", GWP: 11100},
		{Indicator: "CF4", GWP: 6630},
		{Indicator: "CH4", GWP: 28, Rows: 1},
		{Indicator: "CO2", GWP: 1, Rows: 2},
		{Indicator: "CO2eq", GWP: 1},
		{Indicator: "N2O", GWP: 265},
	}, rep.Gases)

	assert.Equal(t, []Lookup{
		{Label: "All others", SuggestedHex: "#bab0ac", Rows: 1},
		{Label: "Power", SuggestedHex: "#505457", Rows: 3},
	}, rep.Lookups[KindSectorGroups])
	assert.Equal(t, []Lookup{
		{Label: "ECoal", SuggestedHex: "#505457", Rows: 1},
		{Label: "EGas", SuggestedHex: "#ee2c4c", Rows: 1},
		{Label: "EWind", SuggestedHex: "#3f1ae6", Rows: 1},
	}, rep.Lookups[KindTechnologies][:3])
	assert.True(t, logger.HasEntry("INFO", "Lookups collected"))
}

func TestBuildNil(t *testing.T) {
	rep := NewReportGenerator(nil, logging.NewMockLogger()).Build(nil)
	assert.Empty(t, rep.Scenarios)
	assert.Equal(t, 0, rep.Coverage.Rows)
	assert.Empty(t, rep.Lookups[KindFamilies])
	assert.Len(t, rep.Gases, len(emissions.Gases()))
}

func TestGenerateReport(t *testing.T) {
	g := NewReportGenerator(nil, logging.NewMockLogger())
	rep := g.Build(sampleDataset(t))

	jsonBytes, err := g.GenerateReport(rep, "json")
	require.NoError(t, err)
	var fromJSON LookupsReport
	require.NoError(t, json.Unmarshal(jsonBytes, &fromJSON))
	assert.Equal(t, rep.Scenarios, fromJSON.Scenarios)
	assert.Equal(t, rep.Coverage, fromJSON.Coverage)
	assert.Equal(t, rep.Gases, fromJSON.Gases)

	yamlBytes, err := g.GenerateReport(rep, "YAML")
	require.NoError(t, err)
	var fromYAML LookupsReport
	require.NoError(t, yaml.Unmarshal(yamlBytes, &fromYAML))
	assert.Equal(t, rep.Lookups, fromYAML.Lookups)

	_, err = g.GenerateReport(rep, "xml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported report format")
}

func TestWriteTables(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "lookups")
	g := NewReportGenerator(nil, logging.NewMockLogger())
	rep := g.Build(sampleDataset(t))

	paths, err := g.WriteTables(rep, dir, ',')
	require.NoError(t, err)
	assert.Len(t, paths, 8)
	assert.Equal(t, filepath.Join(dir, "scenarios.csv"), paths[0])
	assert.Equal(t, filepath.Join(dir, "gases.csv"), paths[1])

	gasData, err := os.ReadFile(filepath.Join(dir, "gases.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(gasData), "Indicator,gwp,rows\n")
	assert.Contains(t, string(gasData), "CH4,28,1\n")

	data, err := os.ReadFile(filepath.Join(dir, "growths.csv"))
	require.NoError(t, err)
	assert.Equal(t, "label,suggested_hex,rows\nReference,#FF7F0E,3\nUnknown,#aaaaaa,1\n", string(data))
}
