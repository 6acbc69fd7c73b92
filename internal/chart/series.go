package chart

import (
	"satimge/satimge-charts/internal/aggregate"
	"satimge/satimge-charts/internal/emissions"
	"satimge/satimge-charts/internal/models"
	"satimge/satimge-charts/internal/taxonomy"
)

// seriesFunc returns the series labeller for field. Fuel labels are
// matched against the palette; the matches are cached per subsector.
func seriesFunc(field string, mapper *taxonomy.Mapper, palette *taxonomy.Palette) aggregate.SeriesFunc {
	switch field {
	case SeriesFuel:
		cache := make(map[string]string)
		return func(r models.EnrichedRecord) string {
			if v, ok := cache[r.Subsector]; ok {
				return v
			}
			v := mapper.Match(palette, r.Subsector).Canonical
			cache[r.Subsector] = v
			return v
		}
	case SeriesTechnology:
		return func(r models.EnrichedRecord) string { return r.Technology }
	case SeriesSector:
		return func(r models.EnrichedRecord) string { return r.Sector }
	case SeriesSectorGroup:
		return func(r models.EnrichedRecord) string { return r.SectorGroup }
	case SeriesSubsector:
		return func(r models.EnrichedRecord) string { return r.Subsector }
	case SeriesScenarioFamily:
		return func(r models.EnrichedRecord) string { return r.ScenarioFamily.DisplayName() }
	case SeriesScenarioGroup:
		return func(r models.EnrichedRecord) string { return r.ScenarioGroup.DisplayName() }
	case SeriesGrowth:
		return func(r models.EnrichedRecord) string { return r.EconomicGrowth.DisplayName() }
	default:
		return func(r models.EnrichedRecord) string { return r.Scenario }
	}
}

func valueFunc(kind ValueKind) aggregate.ValueFunc {
	if kind == ValueCO2eq {
		return func(r models.EnrichedRecord) (float64, bool) {
			return r.CO2eq.Float64, r.CO2eq.Valid
		}
	}
	return func(r models.EnrichedRecord) (float64, bool) {
		return r.Value, true
	}
}

// scaleFunc returns the conversion applied after summing, or nil.
func scaleFunc(s Scale, unit emissions.EnergyUnit) func(float64) float64 {
	switch s {
	case ScaleKtToMt:
		return emissions.KilotonnesToMegatonnes
	case ScaleToTWh:
		return unit.ToTWh
	}
	return nil
}

func orderFunc(palette *taxonomy.Palette) aggregate.OrderFunc {
	if palette == nil {
		return nil
	}
	return palette.Order
}
