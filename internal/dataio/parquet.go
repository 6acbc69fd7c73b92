package dataio

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"satimge/satimge-charts/internal/models"
)

// rawParquetRow maps a raw extract stored as Parquet. Every column is
// nullable, as pandas writes them; a null SATIMGE value becomes NaN.
type rawParquetRow struct {
	Scenario      string   `parquet:"Scenario,optional"`
	Process       string   `parquet:"Process,optional"`
	Sector        string   `parquet:"Sector,optional"`
	Subsector     string   `parquet:"Subsector,optional"`
	Commodity     string   `parquet:"Commodity,optional"`
	CommodityName string   `parquet:"Short Description,optional"`
	Indicator     string   `parquet:"Indicator,optional"`
	Year          int64    `parquet:"Year,optional"`
	Value         *float64 `parquet:"SATIMGE"`
}

func (r rawParquetRow) record() models.Record {
	return models.Record{
		Scenario:      r.Scenario,
		Process:       r.Process,
		Sector:        r.Sector,
		Subsector:     r.Subsector,
		Commodity:     r.Commodity,
		CommodityName: r.CommodityName,
		Indicator:     r.Indicator,
		Year:          int(r.Year),
		Value:         floatOrNaN(r.Value),
	}
}

// enrichedParquetRow is the Parquet layout of an enriched dataset. NaN
// values, NoBudget and absent CO2eq are stored as nulls.
type enrichedParquetRow struct {
	Scenario       string   `parquet:"Scenario"`
	Process        string   `parquet:"Process"`
	Sector         string   `parquet:"Sector"`
	Subsector      string   `parquet:"Subsector"`
	Commodity      string   `parquet:"Commodity"`
	CommodityName  string   `parquet:"Short Description"`
	Indicator      string   `parquet:"Indicator"`
	Year           int64    `parquet:"Year"`
	Value          *float64 `parquet:"SATIMGE"`
	ScenarioFamily string   `parquet:"ScenarioFamily"`
	ScenarioGroup  string   `parquet:"ScenarioGroup"`
	EconomicGrowth string   `parquet:"EconomicGrowth"`
	CarbonBudget   *float64 `parquet:"CarbonBudget"`
	SectorGroup    string   `parquet:"SectorGroup"`
	Technology     string   `parquet:"Technology"`
	CO2eq          *float64 `parquet:"CO2eq"`
}

func toEnrichedParquetRow(r models.EnrichedRecord) enrichedParquetRow {
	return enrichedParquetRow{
		Scenario:       r.Scenario,
		Process:        r.Process,
		Sector:         r.Sector,
		Subsector:      r.Subsector,
		Commodity:      r.Commodity,
		CommodityName:  r.CommodityName,
		Indicator:      r.Indicator,
		Year:           int64(r.Year),
		Value:          nanToNull(r.Value),
		ScenarioFamily: string(r.ScenarioFamily),
		ScenarioGroup:  string(r.ScenarioGroup),
		EconomicGrowth: string(r.EconomicGrowth),
		CarbonBudget:   r.CarbonBudget.Ptr(),
		SectorGroup:    r.SectorGroup,
		Technology:     r.Technology,
		CO2eq:          r.CO2eq.Ptr(),
	}
}

func (r enrichedParquetRow) record() models.EnrichedRecord {
	return models.EnrichedRecord{
		Record: rawParquetRow{
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
		CarbonBudget:   models.BudgetFromPtr(r.CarbonBudget),
		SectorGroup:    r.SectorGroup,
		Technology:     r.Technology,
		CO2eq:          models.FromPtr(r.CO2eq),
	}
}

func nanToNull(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

func floatOrNaN(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}
	return *p
}

// parquetColumns returns the top-level column names of a Parquet file.
func parquetColumns(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening Parquet file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("error reading Parquet file info: %w", err)
	}
	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		return nil, err
	}
	fields := pf.Schema().Fields()
	cols := make([]string, len(fields))
	for i, field := range fields {
		cols[i] = field.Name()
	}
	return cols, nil
}

func readParquet[T any](path string) ([]T, error) {
	rows, err := parquet.ReadFile[T](path)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func writeParquet[T any](path string, rows []T) error {
	if err := os.MkdirAll(filepath.Dir(path), models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	if err := parquet.WriteFile(path, rows); err != nil {
		return fmt.Errorf("error writing Parquet data: %w", err)
	}
	return nil
}
