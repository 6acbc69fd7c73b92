package setsandmaps

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"satimge/satimge-charts/internal/logging"
	"satimge/satimge-charts/internal/models"
	"satimge/satimge-charts/internal/parsererror"
)

func writeWorkbook(t *testing.T, sheets map[string][][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for name, rows := range sheets {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			r := row
			require.NoError(t, f.SetSheetRow(name, cell, &r))
		}
	}
	require.NoError(t, f.DeleteSheet("Sheet1"))

	path := filepath.Join(t.TempDir(), "setsandmaps.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func fullWorkbook(t *testing.T) string {
	return writeWorkbook(t, map[string][][]interface{}{
		SheetProcesses: {
			{"Process", "Sector", "Subsector", "Notes"},
			{"PEXCOA", "Power", "ECoal", "existing coal"},
			{"PEXNUC", "Power", "ENuclear"},
			{"PEXCOA", "Industry", "Duplicate"},
			{"", "Ignored", "Row"},
		},
		SheetCommodities: {
			{"Commodity", "Short Description"},
			{"COA", "Coal"},
			{"ELCC", "Electricity"},
		},
	})
}

func TestLoad(t *testing.T) {
	logger := logging.NewMockLogger()
	m, err := Load(fullWorkbook(t), logger)
	require.NoError(t, err)

	assert.Equal(t, map[string]ProcessMapping{
		"PEXCOA": {Sector: "Power", Subsector: "ECoal"},
		"PEXNUC": {Sector: "Power", Subsector: "ENuclear"},
	}, m.Processes)
	assert.Equal(t, map[string]string{"COA": "Coal", "ELCC": "Electricity"}, m.Commodities)
	assert.True(t, logger.HasEntry("WARN", "Duplicate keys in setsandmaps ignored"))
}

func TestLoadMissingSheet(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		SheetProcesses: {{"Process", "Sector", "Subsector"}},
	})

	_, err := Load(path, logging.NewMockLogger())
	var formatErr *parsererror.InvalidFormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Contains(t, formatErr.Msg, SheetCommodities)
}

func TestLoadMissingColumn(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		SheetProcesses:   {{"Process", "Sector"}},
		SheetCommodities: {{"Commodity", "Short Description"}},
	})

	_, err := Load(path, logging.NewMockLogger())
	var extractErr *parsererror.DataExtractionError
	require.True(t, errors.As(err, &extractErr))
	assert.Equal(t, "Subsector", extractErr.FieldName)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "none.xlsm"), logging.NewMockLogger())
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	m := &Maps{
		Processes:   map[string]ProcessMapping{"PEXCOA": {Sector: "Power", Subsector: "ECoal"}},
		Commodities: map[string]string{"COA": "Coal"},
	}
	ds := &models.Dataset{
		Columns: []string{"Scenario", "Process", "Commodity", "Indicator", "Year", "SATIMGE"},
		Records: []models.Record{
			{Scenario: "NDC_BASE-RG", Process: "PEXCOA", Commodity: "COA", Indicator: "CO2"},
			{Scenario: "NDC_BASE-RG", Process: "UNKNOWN", Sector: "Keep", Commodity: "XYZ", Indicator: "CO2"},
		},
	}

	stats, err := m.Apply(ds)
	require.NoError(t, err)

	assert.Equal(t, ApplyStats{Records: 2, ProcessMatched: 1, CommodityMatched: 1}, stats)
	assert.Equal(t, "Power", ds.Records[0].Sector)
	assert.Equal(t, "ECoal", ds.Records[0].Subsector)
	assert.Equal(t, "Coal", ds.Records[0].CommodityName)
	assert.Equal(t, "Keep", ds.Records[1].Sector)
	assert.Equal(t, "", ds.Records[1].CommodityName)
	assert.Empty(t, ds.MissingColumns(models.RequiredColumns))
	assert.True(t, ds.HasColumn(models.ColumnCommodityName))
}

func TestApplyMissingJoinKey(t *testing.T) {
	m := &Maps{
		Processes:   map[string]ProcessMapping{"PEXCOA": {Sector: "Power", Subsector: "ECoal"}},
		Commodities: map[string]string{"COA": "Coal"},
	}
	ds := &models.Dataset{
		Source:  "REPORT_00.csv",
		Columns: []string{"Scenario", "Commodity", "Indicator", "Year", "SATIMGE"},
		Records: []models.Record{{Scenario: "NDC_BASE-RG", Commodity: "COA", Indicator: "CO2"}},
	}

	_, err := m.Apply(ds)
	var schemaErr *parsererror.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{models.ColumnProcess}, schemaErr.Missing)
	assert.Equal(t, "REPORT_00.csv", schemaErr.Source)
	assert.Equal(t, "", ds.Records[0].CommodityName)
	assert.Equal(t, []string{models.ColumnSector, models.ColumnSubsector}, ds.MissingColumns(models.RequiredColumns))
}

func TestApplyWithoutMatches(t *testing.T) {
	m := &Maps{
		Processes:   map[string]ProcessMapping{"PEXCOA": {Sector: "Power", Subsector: "ECoal"}},
		Commodities: map[string]string{"COA": "Coal"},
	}
	ds := &models.Dataset{
		Columns: []string{"Scenario", "Process", "Commodity", "Indicator", "Year", "SATIMGE"},
		Records: []models.Record{{Scenario: "NDC_BASE-RG", Process: "OTHER", Commodity: "XYZ", Indicator: "CO2"}},
	}

	stats, err := m.Apply(ds)
	require.NoError(t, err)
	assert.Equal(t, ApplyStats{Records: 1}, stats)
	assert.False(t, ds.HasColumn(models.ColumnSector))
	assert.False(t, ds.HasColumn(models.ColumnCommodityName))
}
