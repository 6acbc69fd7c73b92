// Package assembler enriches a raw SATIMGE extract with the canonical
// scenario, taxonomy and emissions columns every chart consumes.
package assembler

import (
	"satimge/satimge-charts/internal/emissions"
	"satimge/satimge-charts/internal/logging"
	"satimge/satimge-charts/internal/models"
	"satimge/satimge-charts/internal/parsererror"
	"satimge/satimge-charts/internal/scenario"
	"satimge/satimge-charts/internal/taxonomy"
)

// Assembler combines a scenario codec and a taxonomy mapper. It keeps no
// state between calls.
type Assembler struct {
	codec  *scenario.Codec
	mapper *taxonomy.Mapper
	logger logging.Logger
}

// New creates an Assembler.
func New(codec *scenario.Codec, mapper *taxonomy.Mapper, logger logging.Logger) *Assembler {
	if codec == nil {
		codec = scenario.NewCodec(scenario.ModeToken)
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if mapper == nil {
		mapper = taxonomy.NewMapper(taxonomy.Options{}, logger)
	}
	return &Assembler{codec: codec, mapper: mapper, logger: logger}
}

// Assemble validates the columns of ds and returns one enriched record per
// raw record, in the same order. A missing required column is returned as a
// *parsererror.SchemaError and nothing is produced.
func (a *Assembler) Assemble(ds *models.Dataset) (*models.EnrichedDataset, error) {
	if ds == nil {
		return nil, &parsererror.SchemaError{Missing: models.RequiredColumns}
	}
	if missing := ds.MissingColumns(models.RequiredColumns); len(missing) > 0 {
		err := &parsererror.SchemaError{Source: ds.Source, Missing: missing}
		a.logger.WithError(err).Error("Dataset failed schema check",
			logging.Field{Key: logging.FieldFile, Value: ds.Source},
			logging.Field{Key: logging.FieldColumns, Value: missing})
		return nil, err
	}

	scenarios := make(map[string]scenario.Record)
	sectors := make(map[string]string)
	technologies := make(map[string]string)

	out := &models.EnrichedDataset{
		Source:  ds.Source,
		Records: make([]models.EnrichedRecord, len(ds.Records)),
	}
	var stats models.AssemblyStats

	for i, r := range ds.Records {
		sc, ok := scenarios[r.Scenario]
		if !ok {
			sc = a.codec.Decode(r.Scenario)
			scenarios[r.Scenario] = sc
		}
		group, ok := sectors[r.Sector]
		if !ok {
			group = a.mapper.SectorGroup(r.Sector)
			sectors[r.Sector] = group
		}
		tech, ok := technologies[r.Subsector]
		if !ok {
			tech = a.mapper.Canonicalize(taxonomy.KindTechnology, r.Subsector)
			technologies[r.Subsector] = tech
		}

		out.Records[i] = models.EnrichedRecord{
			Record:         r,
			ScenarioFamily: sc.Family,
			ScenarioGroup:  sc.Group,
			EconomicGrowth: sc.Growth,
			CarbonBudget:   sc.Budget,
			SectorGroup:    group,
			Technology:     tech,
			CO2eq:          emissions.CO2eq(r.Indicator, r.Value),
		}
		stats.Observe(out.Records[i])
	}

	stats.DistinctScenarios = len(scenarios)
	stats.LogSummary(a.logger, ds.Source)
	return out, nil
}
