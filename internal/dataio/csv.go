package dataio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"

	"satimge/satimge-charts/internal/models"
)

const utf8BOM = "\ufeff"

// rawRow maps the columns of a REPORT00 extract. Value and Year stay strings
// so that "Eps" and malformed cells can be handled leniently.
type rawRow struct {
	Scenario      string `csv:"Scenario"`
	Process       string `csv:"Process"`
	Sector        string `csv:"Sector"`
	Subsector     string `csv:"Subsector"`
	Commodity     string `csv:"Commodity"`
	CommodityName string `csv:"Short Description"`
	Indicator     string `csv:"Indicator"`
	Year          string `csv:"Year"`
	Value         string `csv:"SATIMGE"`
}

func (r rawRow) record() models.Record {
	return models.Record{
		Scenario:      r.Scenario,
		Process:       r.Process,
		Sector:        r.Sector,
		Subsector:     r.Subsector,
		Commodity:     r.Commodity,
		CommodityName: r.CommodityName,
		Indicator:     r.Indicator,
		Year:          models.ParseYear(r.Year),
		Value:         models.ParseValue(r.Value),
	}
}

// enrichedRow is the CSV layout of an enriched dataset. Field order is
// column order.
type enrichedRow struct {
	Scenario       string           `csv:"Scenario"`
	Process        string           `csv:"Process"`
	Sector         string           `csv:"Sector"`
	Subsector      string           `csv:"Subsector"`
	Commodity      string           `csv:"Commodity"`
	CommodityName  string           `csv:"Short Description"`
	Indicator      string           `csv:"Indicator"`
	Year           string           `csv:"Year"`
	Value          string           `csv:"SATIMGE"`
	ScenarioFamily string           `csv:"ScenarioFamily"`
	ScenarioGroup  string           `csv:"ScenarioGroup"`
	EconomicGrowth string           `csv:"EconomicGrowth"`
	CarbonBudget   models.Budget    `csv:"CarbonBudget"`
	SectorGroup    string           `csv:"SectorGroup"`
	Technology     string           `csv:"Technology"`
	CO2eq          models.NullFloat `csv:"CO2eq"`
}

func toEnrichedRow(r models.EnrichedRecord) enrichedRow {
	return enrichedRow{
		Scenario:       r.Scenario,
		Process:        r.Process,
		Sector:         r.Sector,
		Subsector:      r.Subsector,
		Commodity:      r.Commodity,
		CommodityName:  r.CommodityName,
		Indicator:      r.Indicator,
		Year:           fmt.Sprint(r.Year),
		Value:          models.FormatFloat(r.Value),
		ScenarioFamily: string(r.ScenarioFamily),
		ScenarioGroup:  string(r.ScenarioGroup),
		EconomicGrowth: string(r.EconomicGrowth),
		CarbonBudget:   r.CarbonBudget,
		SectorGroup:    r.SectorGroup,
		Technology:     r.Technology,
		CO2eq:          r.CO2eq,
	}
}

func (r enrichedRow) record() models.EnrichedRecord {
	return models.EnrichedRecord{
		Record: rawRow{
			Scenario:      r.Scenario,
			Process:       r.Process,
			Sector:        r.Sector,
			Subsector:     r.Subsector,
			Commodity:     r.Commodity,
			CommodityName: r.CommodityName,
			Indicator:     r.Indicator,
			Year:          r.Year,
			Value:         r.Value,
		}.record(),
		ScenarioFamily: models.Family(r.ScenarioFamily),
		ScenarioGroup:  models.Group(r.ScenarioGroup),
		EconomicGrowth: models.Growth(r.EconomicGrowth),
		CarbonBudget:   r.CarbonBudget,
		SectorGroup:    r.SectorGroup,
		Technology:     r.Technology,
		CO2eq:          r.CO2eq,
	}
}

// headerRecorder keeps the header row gocsv consumes so callers can see
// which columns the file declared.
type headerRecorder struct {
	*csv.Reader
	header []string
}

func (h *headerRecorder) ReadAll() ([][]string, error) {
	rows, err := h.Reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		if len(rows[0]) > 0 {
			rows[0][0] = strings.TrimPrefix(rows[0][0], utf8BOM)
		}
		for i := range rows[0] {
			rows[0][i] = strings.TrimSpace(rows[0][i])
		}
		h.header = append([]string(nil), rows[0]...)
	}
	return rows, nil
}

func newCSVReader(r io.Reader, delimiter rune) *headerRecorder {
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return &headerRecorder{Reader: cr}
}

// readCSV unmarshals a delimited file into rows of T and returns its header.
func readCSV[T any](path string, delimiter rune) ([]T, []string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	reader := newCSVReader(file, delimiter)
	var rows []T
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		return nil, nil, err
	}
	return rows, reader.header, nil
}

// WriteCSV marshals rows to path, creating parent directories.
func WriteCSV[T any](path string, rows []T, delimiter rune) error {
	if err := os.MkdirAll(filepath.Dir(path), models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	if err := MarshalCSV(file, rows, delimiter); err != nil {
		return err
	}
	return file.Close()
}

// MarshalCSV writes rows with a header to w.
func MarshalCSV[T any](w io.Writer, rows []T, delimiter rune) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = delimiter
	safe := gocsv.NewSafeCSVWriter(csvWriter)
	if err := gocsv.MarshalCSV(rows, safe); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	safe.Flush()
	return csvWriter.Error()
}
