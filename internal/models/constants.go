package models

// Raw dataset columns
const (
	ColumnScenario      = "Scenario"
	ColumnProcess       = "Process"
	ColumnSector        = "Sector"
	ColumnSubsector     = "Subsector"
	ColumnCommodity     = "Commodity"
	ColumnCommodityName = "Short Description"
	ColumnIndicator     = "Indicator"
	ColumnYear          = "Year"
	ColumnValue         = "SATIMGE"
)

// Enriched dataset columns
const (
	ColumnScenarioFamily = "ScenarioFamily"
	ColumnScenarioGroup  = "ScenarioGroup"
	ColumnEconomicGrowth = "EconomicGrowth"
	ColumnCarbonBudget   = "CarbonBudget"
	ColumnSectorGroup    = "SectorGroup"
	ColumnTechnology     = "Technology"
	ColumnCO2eq          = "CO2eq"
)

// RequiredColumns lists the raw columns every dataset must carry before it
// can be enriched.
var RequiredColumns = []string{
	ColumnScenario,
	ColumnSector,
	ColumnSubsector,
	ColumnCommodity,
	ColumnIndicator,
	ColumnYear,
	ColumnValue,
}

// EnrichedColumns lists the columns written for an enriched dataset, in order.
var EnrichedColumns = []string{
	ColumnScenario,
	ColumnProcess,
	ColumnSector,
	ColumnSubsector,
	ColumnCommodity,
	ColumnCommodityName,
	ColumnIndicator,
	ColumnYear,
	ColumnValue,
	ColumnScenarioFamily,
	ColumnScenarioGroup,
	ColumnEconomicGrowth,
	ColumnCarbonBudget,
	ColumnSectorGroup,
	ColumnTechnology,
	ColumnCO2eq,
}

// Sentinels
const (
	NoBudgetLabel     = "NoBudget"
	EpsLabel          = "Eps"
	SectorGroupOthers = "All others"
)

// File permissions
const (
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
