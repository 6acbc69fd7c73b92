package models

import (
	"satimge/satimge-charts/internal/logging"
)

// AssemblyStats counts how many enriched rows landed in a fallback bucket.
type AssemblyStats struct {
	Rows              int `json:"rows" yaml:"rows"`
	DistinctScenarios int `json:"distinct_scenarios" yaml:"distinct_scenarios"`
	OtherFamily       int `json:"other_family" yaml:"other_family"`
	UnknownGrowth     int `json:"unknown_growth" yaml:"unknown_growth"`
	NoBudget          int `json:"no_budget" yaml:"no_budget"`
	OtherSector       int `json:"all_others_sector" yaml:"all_others_sector"`
	NullCO2eq         int `json:"null_co2eq" yaml:"null_co2eq"`
}

// Observe adds one enriched record to the counters.
func (s *AssemblyStats) Observe(r EnrichedRecord) {
	s.Rows++
	if r.ScenarioFamily == FamilyOther {
		s.OtherFamily++
	}
	if r.EconomicGrowth == GrowthUnknown {
		s.UnknownGrowth++
	}
	if !r.CarbonBudget.Valid {
		s.NoBudget++
	}
	if r.SectorGroup == SectorGroupOthers {
		s.OtherSector++
	}
	if !r.CO2eq.Valid {
		s.NullCO2eq++
	}
}

// CoverageRate is the share of rows (in percent) whose scenario family was recognised.
func (s AssemblyStats) CoverageRate() float64 {
	if s.Rows == 0 {
		return 0.0
	}
	return float64(s.Rows-s.OtherFamily) / float64(s.Rows) * 100.0
}

// LogSummary logs the counters.
func (s AssemblyStats) LogSummary(logger logging.Logger, source string) {
	if logger == nil {
		return
	}

	logger.Info("Assembly summary",
		logging.Field{Key: logging.FieldFile, Value: source},
		logging.Field{Key: "rows", Value: s.Rows},
		logging.Field{Key: "distinct_scenarios", Value: s.DistinctScenarios},
		logging.Field{Key: "other_family", Value: s.OtherFamily},
		logging.Field{Key: "unknown_growth", Value: s.UnknownGrowth},
		logging.Field{Key: "no_budget", Value: s.NoBudget},
		logging.Field{Key: "all_others_sector", Value: s.OtherSector},
		logging.Field{Key: "null_co2eq", Value: s.NullCO2eq},
		logging.Field{Key: "family_coverage", Value: s.CoverageRate()},
	)
}
