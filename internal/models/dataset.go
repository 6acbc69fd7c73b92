// Package models provides the data structures used throughout the application.
package models

import "slices"

// Record is one row of a raw SATIMGE results extract.
type Record struct {
	Scenario      string
	Process       string
	Sector        string
	Subsector     string
	Commodity     string
	CommodityName string
	Indicator     string
	Year          int
	Value         float64 // NaN when the source cell was not numeric
}

// Dataset is a raw extract together with the columns its source declared.
type Dataset struct {
	Source  string
	Columns []string
	Records []Record
}

// HasColumn reports whether the source declared the named column.
func (d *Dataset) HasColumn(name string) bool {
	return slices.Contains(d.Columns, name)
}

// AddColumn records a column supplied after loading, e.g. by a mapping join.
func (d *Dataset) AddColumn(name string) {
	if !d.HasColumn(name) {
		d.Columns = append(d.Columns, name)
	}
}

// MissingColumns returns the required columns that are absent, in the order
// they are listed in required.
func (d *Dataset) MissingColumns(required []string) []string {
	var missing []string
	for _, col := range required {
		if !d.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	return missing
}

// EnrichedRecord is a raw record plus the canonical fields derived from it.
type EnrichedRecord struct {
	Record
	ScenarioFamily Family
	ScenarioGroup  Group
	EconomicGrowth Growth
	CarbonBudget   Budget
	SectorGroup    string
	Technology     string
	CO2eq          NullFloat
}

// EnrichedDataset is the canonical table every chart consumes.
type EnrichedDataset struct {
	Source  string
	Records []EnrichedRecord
}

// Len returns the number of records.
func (d *EnrichedDataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}
