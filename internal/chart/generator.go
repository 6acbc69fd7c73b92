package chart

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"gonum.org/v1/plot/vg"

	"satimge/satimge-charts/internal/aggregate"
	"satimge/satimge-charts/internal/dataio"
	"satimge/satimge-charts/internal/emissions"
	"satimge/satimge-charts/internal/fileutils"
	"satimge/satimge-charts/internal/logging"
	"satimge/satimge-charts/internal/models"
	"satimge/satimge-charts/internal/taxonomy"
)

// File name suffixes.
const (
	ReportSuffix = "_report"
	DataSuffix   = "_data.csv"
)

// Options controls where and how charts are written.
type Options struct {
	OutputDir  string
	GalleryDir string // empty disables the gallery copy
	Formats    []string
	WidthIn    float64
	HeightIn   float64
	DevMode    bool
	EnergyUnit emissions.EnergyUnit
	Delimiter  rune
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		OutputDir:  filepath.Join("outputs", "charts_and_data"),
		GalleryDir: filepath.Join("outputs", "gallery", "high_res"),
		Formats:    []string{"png"},
		WidthIn:    12,
		HeightIn:   7,
		EnergyUnit: emissions.DefaultEnergyUnit,
		Delimiter:  dataio.DefaultDelimiter,
	}
}

// Result describes one generated chart.
type Result struct {
	Name    string
	Series  int
	Years   int
	Files   []string
	Skipped bool
}

// Generator builds, renders and saves charts.
type Generator struct {
	mapper *taxonomy.Mapper
	opts   Options
	logger logging.Logger
}

// NewGenerator creates a Generator. Zero options take DefaultOptions values.
func NewGenerator(mapper *taxonomy.Mapper, opts Options, logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if mapper == nil {
		mapper = taxonomy.NewMapper(taxonomy.Options{}, logger)
	}
	def := DefaultOptions()
	if opts.OutputDir == "" {
		opts.OutputDir = def.OutputDir
	}
	if len(opts.Formats) == 0 {
		opts.Formats = def.Formats
	}
	if opts.WidthIn <= 0 {
		opts.WidthIn = def.WidthIn
	}
	if opts.HeightIn <= 0 {
		opts.HeightIn = def.HeightIn
	}
	if opts.EnergyUnit == "" {
		opts.EnergyUnit = def.EnergyUnit
	}
	if opts.Delimiter == 0 {
		opts.Delimiter = def.Delimiter
	}
	return &Generator{mapper: mapper, opts: opts, logger: logger}
}

// Build filters ds and pivots it for def. The returned palette may be nil
// when the chart has none.
func (g *Generator) Build(def Definition, ds *models.EnrichedDataset) (*aggregate.Table, *taxonomy.Palette, error) {
	def = def.withDefaults()
	if err := def.Validate(); err != nil {
		return nil, nil, err
	}
	var palette *taxonomy.Palette
	if def.Palette != "" {
		p, ok := g.mapper.Palette(def.Palette)
		if !ok {
			return nil, nil, fmt.Errorf("chart %s: unknown palette %q", def.Name, def.Palette)
		}
		palette = p
	}

	var records []models.EnrichedRecord
	if ds != nil {
		records = def.Filter.Apply(ds.Records)
	}
	table := aggregate.Pivot(records,
		seriesFunc(def.Series, g.mapper, palette),
		valueFunc(def.Value),
		orderFunc(palette))
	if def.Scale == ScaleToTWh {
		if _, err := g.opts.EnergyUnit.Petajoules(); err != nil {
			return nil, nil, fmt.Errorf("chart %s: %w", def.Name, err)
		}
	}
	if fn := scaleFunc(def.Scale, g.opts.EnergyUnit); fn != nil {
		table.Map(fn)
	}
	return table, palette, nil
}

// Generate builds def and writes its files. Charts without data are
// skipped with a warning. In dev mode nothing is written.
func (g *Generator) Generate(def Definition, ds *models.EnrichedDataset) (Result, error) {
	start := time.Now()
	log := g.logger.WithField(logging.FieldChart, def.Name)

	table, palette, err := g.Build(def, ds)
	if err != nil {
		return Result{Name: def.Name}, err
	}
	res := Result{Name: def.Name, Series: len(table.Series), Years: len(table.Years)}
	if table.Empty() {
		log.Warn("No data for chart, skipping")
		res.Skipped = true
		return res, nil
	}

	if g.opts.DevMode {
		g.preview(log, table)
		return res, nil
	}

	p, err := Render(def.withDefaults(), table, palette, vg.Length(g.opts.WidthIn)*vg.Inch)
	if err != nil {
		return res, err
	}

	dir := filepath.Join(g.opts.OutputDir, def.Name)
	if err := fileutils.EnsureDirectoryExists(dir); err != nil {
		return res, err
	}

	w := vg.Length(g.opts.WidthIn) * vg.Inch
	h := vg.Length(g.opts.HeightIn) * vg.Inch
	for _, format := range g.opts.Formats {
		path := filepath.Join(dir, def.Name+ReportSuffix+"."+strings.ToLower(format))
		if err := p.Save(w, h, path); err != nil {
			return res, fmt.Errorf("error saving chart %s: %w", path, err)
		}
		res.Files = append(res.Files, path)
	}

	dataPath := filepath.Join(dir, def.Name+DataSuffix)
	if err := dataio.WriteCSV(dataPath, table.Rows(), g.opts.Delimiter); err != nil {
		return res, fmt.Errorf("error writing chart data %s: %w", dataPath, err)
	}
	res.Files = append(res.Files, dataPath)

	if g.opts.GalleryDir != "" {
		for _, f := range res.Files {
			if !strings.HasSuffix(f, ReportSuffix+".png") {
				continue
			}
			dst := filepath.Join(g.opts.GalleryDir, filepath.Base(f))
			if err := fileutils.CopyFile(f, dst); err != nil {
				return res, err
			}
			res.Files = append(res.Files, dst)
		}
	}

	log.Info("Chart written",
		logging.Field{Key: logging.FieldCount, Value: len(res.Files)},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()})
	return res, nil
}

func (g *Generator) preview(log logging.Logger, t *aggregate.Table) {
	seriesTotals := make(map[string]float64, len(t.Series))
	for i, s := range t.Series {
		seriesTotals[s] = t.SeriesTotal(i)
	}
	log.Info("dev_mode on, preview only (no files written)",
		logging.Field{Key: "series", Value: t.Series},
		logging.Field{Key: "years", Value: t.Years},
		logging.Field{Key: "totals", Value: t.Totals()},
		logging.Field{Key: "series_totals", Value: seriesTotals})
}

// GenerateAll runs every definition. A failing chart is logged and the
// rest still run; the returned error counts the failures.
func (g *Generator) GenerateAll(defs []Definition, ds *models.EnrichedDataset) ([]Result, error) {
	results := make([]Result, 0, len(defs))
	failed := 0
	for _, def := range defs {
		res, err := g.Generate(def, ds)
		if err != nil {
			failed++
			g.logger.WithError(err).Error("Chart generation failed",
				logging.Field{Key: logging.FieldChart, Value: def.Name})
			continue
		}
		results = append(results, res)
	}
	if failed > 0 {
		return results, fmt.Errorf("%d of %d charts failed", failed, len(defs))
	}
	return results, nil
}
