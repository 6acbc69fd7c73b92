package taxonomy

import (
	"maps"
	"strings"

	"satimge/satimge-charts/internal/logging"
	"satimge/satimge-charts/internal/models"
)

// Pipeline defaults.
const (
	DefaultFuzzyCutoff   = 0.3
	DefaultFallbackLabel = "Other"
)

// DefaultSectorGroups maps raw sector labels to their reporting group.
func DefaultSectorGroups() map[string]string {
	return map[string]string{
		"Industry":          "Industry",
		"Process emissions": "Industry",
		"Power":             "Power",
		"Transport":         "Transport",
		"Refineries":        "Refineries",
	}
}

// DefaultAliases maps irregular fuel and technology labels.
func DefaultAliases() map[string]string {
	return map[string]string{
		"ECoal":        "Coal",
		"EOil":         "Oil",
		"EGas":         "Natural Gas",
		"ENuclear":     "Nuclear",
		"EHydro":       "Hydro",
		"EBiomass":     "Biomass",
		"EWind":        "Wind",
		"EPV":          "Solar PV",
		"ECSP":         "Solar CSP",
		"EHybrid":      "Hybrid",
		"EPumpStorage": "Pumped Storage",
		"EBattery":     "Battery",
		"Imports":      "Imports",
	}
}

// Overrides is the content of taxonomy.yaml.
type Overrides struct {
	SectorGroups map[string]string   `yaml:"sector_groups" json:"sector_groups"`
	Aliases      map[string]string   `yaml:"aliases" json:"aliases"`
	Palettes     map[string][]Swatch `yaml:"palettes" json:"palettes"`
}

// Options configures a Mapper. Zero fields take the package defaults.
type Options struct {
	Overrides     *Overrides
	FuzzyCutoff   float64
	FallbackLabel string
}

// Mapper canonicalizes labels. It holds no per-call state.
type Mapper struct {
	sectors     map[string]string
	sectorsFold map[string]string
	aliases     map[string]string
	palettes    Palettes
	cutoff      float64
	fallback    string
	logger      logging.Logger
}

// NewMapper creates a Mapper from defaults plus overrides.
func NewMapper(opts Options, logger logging.Logger) *Mapper {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	sectors := DefaultSectorGroups()
	aliases := DefaultAliases()
	palettes := DefaultPalettes()
	if opts.Overrides != nil {
		maps.Copy(sectors, opts.Overrides.SectorGroups)
		maps.Copy(aliases, opts.Overrides.Aliases)
		palettes = palettes.Merge(opts.Overrides.Palettes)
	}

	fold := make(map[string]string, len(sectors))
	for k, v := range sectors {
		fold[strings.ToLower(strings.TrimSpace(k))] = v
	}

	m := &Mapper{
		sectors:     sectors,
		sectorsFold: fold,
		aliases:     aliases,
		palettes:    palettes,
		cutoff:      opts.FuzzyCutoff,
		fallback:    opts.FallbackLabel,
		logger:      logger,
	}
	if m.cutoff <= 0 {
		m.cutoff = DefaultFuzzyCutoff
	}
	if m.fallback == "" {
		m.fallback = DefaultFallbackLabel
	}
	return m
}

// Palettes returns the effective palettes.
func (m *Mapper) Palettes() Palettes {
	return m.palettes
}

// Palette returns one palette by name.
func (m *Mapper) Palette(name string) (*Palette, bool) {
	return m.palettes.Get(name)
}

// FuzzyCutoff returns the similarity threshold of the fuzzy stage.
func (m *Mapper) FuzzyCutoff() float64 { return m.cutoff }

// FallbackLabel returns the label used when no stage matches in palette mode.
func (m *Mapper) FallbackLabel() string { return m.fallback }

// Canonicalize returns the canonical label for raw.
func (m *Mapper) Canonicalize(kind Kind, raw string) string {
	return m.Entry(kind, raw).Canonical
}

// Entry resolves raw without a palette: sectors go through the sector
// dictionary, fuels and technologies through alias, prefix and passthrough.
func (m *Mapper) Entry(kind Kind, raw string) Entry {
	if kind == KindSector {
		group := m.SectorGroup(raw)
		return Entry{Raw: raw, Canonical: group, PaletteKey: group, Stage: StageSector}
	}

	for _, s := range []Strategy{NewAliasStrategy(m.aliases), PrefixStrategy{}} {
		if v, ok := s.Resolve(raw); ok {
			return Entry{Raw: raw, Canonical: v, PaletteKey: v, Stage: s.Name()}
		}
	}
	return Entry{Raw: raw, Canonical: raw, PaletteKey: raw, Stage: StagePassthrough}
}

// SectorGroup maps a raw sector label, exact match first and then ignoring
// case. Unknown sectors go to "All others".
func (m *Mapper) SectorGroup(raw string) string {
	if g, ok := m.sectors[raw]; ok {
		return g
	}
	if g, ok := m.sectorsFold[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return g
	}
	return models.SectorGroupOthers
}

// Match resolves raw against a palette: exact key, then alias or prefix
// result when it is a key, then fuzzy match, then the fallback label.
func (m *Mapper) Match(p *Palette, raw string) Entry {
	if p == nil {
		return m.Entry(KindFuel, raw)
	}
	if v, ok := NewExactStrategy(p).Resolve(raw); ok {
		return Entry{Raw: raw, Canonical: v, PaletteKey: v, Stage: StageExact}
	}

	candidate, stage := raw, StagePassthrough
	if e := m.Entry(KindFuel, raw); e.Stage != StagePassthrough {
		candidate, stage = e.Canonical, e.Stage
		if p.Has(candidate) {
			return Entry{Raw: raw, Canonical: candidate, PaletteKey: candidate, Stage: stage}
		}
	}

	fuzzy := NewFuzzyStrategy(p, m.cutoff)
	if v, ok := fuzzy.Resolve(candidate); ok {
		m.logger.Debug("Label matched by similarity",
			logging.Field{Key: logging.FieldLabel, Value: raw},
			logging.Field{Key: logging.FieldCanonical, Value: v},
			logging.Field{Key: logging.FieldStage, Value: string(StageFuzzy)})
		return Entry{Raw: raw, Canonical: v, PaletteKey: v, Stage: StageFuzzy}
	}

	m.logger.Debug("Label fell back to default bucket",
		logging.Field{Key: logging.FieldLabel, Value: raw},
		logging.Field{Key: logging.FieldCanonical, Value: m.fallback})
	return Entry{Raw: raw, Canonical: m.fallback, PaletteKey: m.fallback, Stage: StageDefault}
}
