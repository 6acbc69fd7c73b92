package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"satimge/satimge-charts/internal/config"
	"satimge/satimge-charts/internal/container"
	"satimge/satimge-charts/internal/logging"
	"satimge/satimge-charts/internal/models"
	"satimge/satimge-charts/internal/parsererror"
	"satimge/satimge-charts/internal/setsandmaps"
	"satimge/satimge-charts/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const rawCSV = `Scenario,Process,Sector,Subsector,Commodity,Indicator,Year,SATIMGE
NDC_BASE-RG,PEXCOA,Power,ECoal,COA,CO2,2030,10
NDC_CPP4-0925-LG,PEXCOA,Power,ECoal,COA,CH4,2030,1
NDC_CPP4-0925-LG,PEXNUC,Power,ENuclear,URN,FlowOut,2030,Eps
`

func newContainer(t *testing.T) (*container.Container, *logging.MockLogger) {
	t.Helper()
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.CSV.Delimiter = ","
	cfg.Dataset.Formats = []string{"csv"}
	cfg.Dataset.OutputName = "processed_dataset"
	logger := logging.NewMockLogger()
	c, err := container.NewContainerWithStore(cfg, &store.MockStore{}, logger)
	require.NoError(t, err)
	return c, logger
}

func writeRaw(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "REPORT_00.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestCommand_Metadata(t *testing.T) {
	assert.Equal(t, "dataset", Cmd.Use)
	assert.Contains(t, Cmd.Short, "enriched dataset")
	assert.NotNil(t, Cmd.Run)

	for _, name := range []string{"input", "setsandmaps", "output-dir", "name", "format"} {
		assert.NotNil(t, Cmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, "i", Cmd.Flags().Lookup("input").Shorthand)
}

func TestMerge(t *testing.T) {
	base := Options{Input: "a.csv", OutputDir: "out", OutputName: "ds", Formats: []string{"csv", "parquet"}}

	assert.Equal(t, base, merge(base, Options{}))

	got := merge(base, Options{Input: "b.parquet", Formats: []string{"parquet"}})
	assert.Equal(t, "b.parquet", got.Input)
	assert.Equal(t, []string{"parquet"}, got.Formats)
	assert.Equal(t, "out", got.OutputDir)
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Dataset.RawPath = "data/raw/REPORT_00.csv"
	cfg.Dataset.SetsAndMapsPath = "setsandmaps.xlsm"
	cfg.Dataset.OutputDir = "data/processed"
	cfg.Dataset.OutputName = "processed_dataset"
	cfg.Dataset.Formats = []string{"csv"}

	assert.Equal(t, Options{
		Input:       "data/raw/REPORT_00.csv",
		SetsAndMaps: "setsandmaps.xlsm",
		OutputDir:   "data/processed",
		OutputName:  "processed_dataset",
		Formats:     []string{"csv"},
	}, OptionsFromConfig(cfg))
}

func TestBuild(t *testing.T) {
	c, logger := newContainer(t)
	out := t.TempDir()

	paths, err := Build(c, Options{
		Input:      writeRaw(t, rawCSV),
		OutputDir:  out,
		OutputName: "processed_dataset",
		Formats:    []string{"csv", "parquet"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(out, "processed_dataset.csv"),
		filepath.Join(out, "processed_dataset.parquet"),
	}, paths)

	for _, p := range paths {
		ds, err := c.GetIO().ReadEnriched(p)
		require.NoError(t, err, p)
		require.Len(t, ds.Records, 3)

		r := ds.Records[0]
		assert.Equal(t, models.FamilyBase, r.ScenarioFamily)
		assert.Equal(t, models.GrowthReference, r.EconomicGrowth)
		assert.Equal(t, models.NoBudget, r.CarbonBudget)
		assert.Equal(t, "Power", r.SectorGroup)
		assert.Equal(t, "Coal", r.Technology)
		assert.Equal(t, models.Float(10), r.CO2eq)

		r = ds.Records[1]
		assert.Equal(t, models.FamilyCPP4, r.ScenarioFamily)
		assert.Equal(t, models.BudgetOf(9.25), r.CarbonBudget)
		assert.Equal(t, models.Float(28), r.CO2eq)

		assert.False(t, ds.Records[2].CO2eq.Valid)
	}
	assert.True(t, logger.HasEntry("INFO", "Dataset build completed successfully!"))
}

func writeWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	_, err := f.NewSheet(setsandmaps.SheetProcesses)
	require.NoError(t, err)
	_, err = f.NewSheet(setsandmaps.SheetCommodities)
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow(setsandmaps.SheetProcesses, "A1", &[]interface{}{"Process", "Sector", "Subsector"}))
	require.NoError(t, f.SetSheetRow(setsandmaps.SheetProcesses, "A2", &[]interface{}{"PEXNUC", "Power", "EHydro"}))
	require.NoError(t, f.SetSheetRow(setsandmaps.SheetCommodities, "A1", &[]interface{}{"Commodity", "Short Description"}))
	require.NoError(t, f.SetSheetRow(setsandmaps.SheetCommodities, "A2", &[]interface{}{"COA", "Coal"}))
	workbook := filepath.Join(t.TempDir(), "setsandmaps.xlsm")
	require.NoError(t, f.SaveAs(workbook))
	require.NoError(t, f.Close())
	return workbook
}

func TestBuildWithSetsAndMaps(t *testing.T) {
	c, logger := newContainer(t)
	workbook := writeWorkbook(t)

	out := t.TempDir()
	paths, err := Build(c, Options{
		Input:       writeRaw(t, rawCSV),
		SetsAndMaps: workbook,
		OutputDir:   out,
		OutputName:  "mapped",
		Formats:     []string{"csv"},
	})
	require.NoError(t, err)

	ds, err := c.GetIO().ReadEnriched(paths[0])
	require.NoError(t, err)
	assert.Equal(t, "Coal", ds.Records[0].CommodityName)
	assert.Equal(t, "Hydro", ds.Records[2].Technology)
	assert.True(t, logger.HasEntry("INFO", "Sets and maps applied"))
}

func TestBuildErrors(t *testing.T) {
	c, _ := newContainer(t)
	raw := writeRaw(t, rawCSV)
	out := t.TempDir()

	tests := []struct {
		name        string
		opts        Options
		errContains string
	}{
		{
			name:        "missing input",
			opts:        Options{Input: filepath.Join(out, "absent.csv"), OutputDir: out, OutputName: "x", Formats: []string{"csv"}},
			errContains: "path does not exist",
		},
		{
			name:        "bad format",
			opts:        Options{Input: raw, OutputDir: out, OutputName: "x", Formats: []string{"xlsx"}},
			errContains: "unsupported dataset format",
		},
		{
			name:        "no format",
			opts:        Options{Input: raw, OutputDir: out, OutputName: "x"},
			errContains: "no output format",
		},
		{
			name:        "no name",
			opts:        Options{Input: raw, OutputDir: out, Formats: []string{"csv"}},
			errContains: "output name",
		},
		{
			name:        "workbook is not excel",
			opts:        Options{Input: raw, SetsAndMaps: raw, OutputDir: out, OutputName: "x", Formats: []string{"csv"}},
			errContains: "unsupported workbook",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(c, tt.opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestBuildMissingColumn(t *testing.T) {
	c, _ := newContainer(t)
	raw := writeRaw(t, "Scenario,Sector,Year,SATIMGE\nNDC_BASE-RG,Power,2030,1\n")

	_, err := Build(c, Options{Input: raw, OutputDir: t.TempDir(), OutputName: "x", Formats: []string{"csv"}})
	var schemaErr *parsererror.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Contains(t, schemaErr.Missing, models.ColumnSubsector)
}

func TestBuildSetsAndMapsWithoutProcess(t *testing.T) {
	c, logger := newContainer(t)
	raw := writeRaw(t, "Scenario,Commodity,Indicator,Year,SATIMGE\nNDC_BASE-RG,COA,CO2,2030,1\n")
	out := t.TempDir()

	_, err := Build(c, Options{
		Input:       raw,
		SetsAndMaps: writeWorkbook(t),
		OutputDir:   out,
		OutputName:  "x",
		Formats:     []string{"csv"},
	})
	var schemaErr *parsererror.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{models.ColumnProcess}, schemaErr.Missing)
	assert.True(t, logger.HasEntry("ERROR", "Dataset cannot be joined with setsandmaps"))
	assert.NoFileExists(t, filepath.Join(out, "x.csv"))
}
