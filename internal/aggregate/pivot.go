package aggregate

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"

	"satimge/satimge-charts/internal/models"
)

// SeriesFunc names the series a record contributes to.
type SeriesFunc func(models.EnrichedRecord) string

// ValueFunc returns the value a record contributes. ok=false skips it.
type ValueFunc func(models.EnrichedRecord) (v float64, ok bool)

// OrderFunc sorts series labels for stacking.
type OrderFunc func(labels []string) []string

// Table is a years by series sum. Values[i][j] is series i in year j.
type Table struct {
	Years  []int
	Series []string
	Values [][]float64
}

// Row is one cell of a Table in long form.
type Row struct {
	Year   int     `csv:"Year"`
	Series string  `csv:"Series"`
	Value  float64 `csv:"Value"`
}

// Pivot sums value per year and series. NaN and skipped values contribute
// nothing, series that are zero in every year are dropped, and the
// remaining series follow order (alphabetical when order is nil).
func Pivot(records []models.EnrichedRecord, series SeriesFunc, value ValueFunc, order OrderFunc) *Table {
	type cell struct {
		series string
		year   int
	}
	sums := make(map[cell]float64)
	yearSet := make(map[int]struct{})
	seriesSet := make(map[string]struct{})

	for _, r := range records {
		v, ok := value(r)
		if !ok || math.IsNaN(v) {
			continue
		}
		s := series(r)
		sums[cell{s, r.Year}] += v
		yearSet[r.Year] = struct{}{}
		seriesSet[s] = struct{}{}
	}

	t := &Table{}
	for y := range yearSet {
		t.Years = append(t.Years, y)
	}
	slices.Sort(t.Years)

	labels := make([]string, 0, len(seriesSet))
	for s := range seriesSet {
		labels = append(labels, s)
	}
	slices.Sort(labels)
	if order != nil {
		labels = order(labels)
	}

	for _, s := range labels {
		row := make([]float64, len(t.Years))
		for j, y := range t.Years {
			row[j] = sums[cell{s, y}]
		}
		if floats.Norm(row, 1) == 0 {
			continue
		}
		t.Series = append(t.Series, s)
		t.Values = append(t.Values, row)
	}
	return t
}

// Empty reports whether the table has nothing to plot.
func (t *Table) Empty() bool {
	return t == nil || len(t.Series) == 0 || len(t.Years) == 0
}

// Column returns the values of every series in year index j.
func (t *Table) Column(j int) []float64 {
	col := make([]float64, len(t.Series))
	for i := range t.Series {
		col[i] = t.Values[i][j]
	}
	return col
}

// Totals returns the sum over series for each year.
func (t *Table) Totals() []float64 {
	out := make([]float64, len(t.Years))
	for j := range t.Years {
		out[j] = floats.Sum(t.Column(j))
	}
	return out
}

// SeriesTotal returns the sum over years of series i.
func (t *Table) SeriesTotal(i int) float64 {
	return floats.Sum(t.Values[i])
}

// Map applies fn to every value in place.
func (t *Table) Map(fn func(float64) float64) {
	for _, row := range t.Values {
		for j := range row {
			row[j] = fn(row[j])
		}
	}
}

// Rows returns the table in long form, series-major.
func (t *Table) Rows() []Row {
	out := make([]Row, 0, len(t.Series)*len(t.Years))
	for i, s := range t.Series {
		for j, y := range t.Years {
			out = append(out, Row{Year: y, Series: s, Value: t.Values[i][j]})
		}
	}
	return out
}
