// Package setsandmaps loads the process and commodity maps of the SATIMGE
// setsandmaps workbook and joins them onto raw extracts.
package setsandmaps

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"satimge/satimge-charts/internal/logging"
	"satimge/satimge-charts/internal/models"
	"satimge/satimge-charts/internal/parsererror"
)

// Sheet names in the workbook.
const (
	SheetProcesses   = "mapPRC"
	SheetCommodities = "mapCOM"
)

// ProcessMapping is one row of the process map.
type ProcessMapping struct {
	Sector    string
	Subsector string
}

// Maps holds the lookups read from the workbook.
type Maps struct {
	Processes   map[string]ProcessMapping
	Commodities map[string]string
}

// joinKeys are the raw columns the maps are keyed on.
var joinKeys = []string{models.ColumnProcess, models.ColumnCommodity}

// ApplyStats counts how many records each map matched.
type ApplyStats struct {
	Records          int
	ProcessMatched   int
	CommodityMatched int
}

// Load reads both map sheets. Rows repeating a key are ignored after the
// first occurrence.
func Load(path string, logger logging.Logger) (*Maps, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	logger.Info("Reading setsandmaps workbook", logging.Field{Key: logging.FieldInputFile, Value: path})

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("error opening workbook %s: %w", path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close workbook")
		}
	}()

	prc, err := readSheet(f, path, SheetProcesses, models.ColumnProcess, models.ColumnSector, models.ColumnSubsector)
	if err != nil {
		return nil, err
	}
	com, err := readSheet(f, path, SheetCommodities, models.ColumnCommodity, models.ColumnCommodityName)
	if err != nil {
		return nil, err
	}

	m := &Maps{
		Processes:   make(map[string]ProcessMapping, len(prc)),
		Commodities: make(map[string]string, len(com)),
	}
	duplicates := 0
	for _, row := range prc {
		if _, ok := m.Processes[row[0]]; ok {
			duplicates++
			continue
		}
		m.Processes[row[0]] = ProcessMapping{Sector: row[1], Subsector: row[2]}
	}
	for _, row := range com {
		if _, ok := m.Commodities[row[0]]; ok {
			duplicates++
			continue
		}
		m.Commodities[row[0]] = row[1]
	}
	if duplicates > 0 {
		logger.Warn("Duplicate keys in setsandmaps ignored", logging.Field{Key: logging.FieldCount, Value: duplicates})
	}

	logger.Info("Setsandmaps loaded",
		logging.Field{Key: "processes", Value: len(m.Processes)},
		logging.Field{Key: "commodities", Value: len(m.Commodities)})
	return m, nil
}

// readSheet returns the requested columns of every row with a non-empty key.
// The first row is the header; the first requested column is the key.
func readSheet(f *excelize.File, path, sheet string, columns ...string) ([][]string, error) {
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: fmt.Sprintf("workbook with %s and %s sheets", SheetProcesses, SheetCommodities),
			Msg:            fmt.Sprintf("sheet %s not found", sheet),
		}
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &parsererror.DataExtractionError{FilePath: path, FieldName: sheet, Reason: "failed to read rows", Err: err}
	}
	if len(rows) == 0 {
		return nil, &parsererror.DataExtractionError{FilePath: path, FieldName: sheet, Reason: "sheet is empty"}
	}

	pos := make([]int, len(columns))
	for i, col := range columns {
		pos[i] = -1
		for j, h := range rows[0] {
			if strings.TrimSpace(h) == col {
				pos[i] = j
				break
			}
		}
		if pos[i] < 0 {
			return nil, &parsererror.DataExtractionError{
				FilePath:  path,
				FieldName: col,
				Reason:    fmt.Sprintf("column not found in sheet %s", sheet),
			}
		}
	}

	out := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		vals := make([]string, len(columns))
		for i, p := range pos {
			if p < len(row) {
				vals[i] = strings.TrimSpace(row[p])
			}
		}
		if vals[0] == "" {
			continue
		}
		out = append(out, vals)
	}
	return out, nil
}

// Apply left-joins the maps onto ds: a mapped process sets Sector and
// Subsector, a mapped commodity sets the commodity name. Records without a
// match keep their values. The join needs the Process and Commodity key
// columns; when one is absent a *parsererror.SchemaError is returned and ds
// is left untouched. The joined columns are added to ds.Columns only when
// the map supplied them to at least one record.
func (m *Maps) Apply(ds *models.Dataset) (ApplyStats, error) {
	if ds == nil {
		return ApplyStats{}, &parsererror.SchemaError{Missing: joinKeys}
	}
	if missing := ds.MissingColumns(joinKeys); len(missing) > 0 {
		return ApplyStats{}, &parsererror.SchemaError{Source: ds.Source, Missing: missing}
	}

	stats := ApplyStats{Records: len(ds.Records)}
	for i := range ds.Records {
		r := &ds.Records[i]
		if pm, ok := m.Processes[r.Process]; ok {
			if pm.Sector != "" {
				r.Sector = pm.Sector
			}
			if pm.Subsector != "" {
				r.Subsector = pm.Subsector
			}
			stats.ProcessMatched++
		}
		if name, ok := m.Commodities[r.Commodity]; ok {
			r.CommodityName = name
			stats.CommodityMatched++
		}
	}
	if stats.ProcessMatched > 0 {
		ds.AddColumn(models.ColumnSector)
		ds.AddColumn(models.ColumnSubsector)
	}
	if stats.CommodityMatched > 0 {
		ds.AddColumn(models.ColumnCommodityName)
	}
	return stats, nil
}
