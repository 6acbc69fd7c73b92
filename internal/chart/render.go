package chart

import (
	"fmt"
	"image/color"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"satimge/satimge-charts/internal/aggregate"
	"satimge/satimge-charts/internal/taxonomy"
)

// seriesColor prefers the palette colour and falls back to the gonum
// colour cycle for labels the palette does not know.
func seriesColor(p *taxonomy.Palette, label string, i int) color.Color {
	if p.Has(label) {
		return p.RGBA(label)
	}
	return plotutil.Color(i)
}

// Render draws t as a stacked bar or line chart.
func Render(def Definition, t *aggregate.Table, palette *taxonomy.Palette, width vg.Length) (*plot.Plot, error) {
	if t.Empty() {
		return nil, fmt.Errorf("chart %s has no data", def.Name)
	}

	p := plot.New()
	p.Title.Text = def.Title
	p.Y.Label.Text = def.YLabel
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	var err error
	if def.Kind == KindLine {
		err = addLines(p, t, palette)
	} else {
		err = addStackedBars(p, t, palette, width)
	}
	if err != nil {
		return nil, fmt.Errorf("error rendering chart %s: %w", def.Name, err)
	}
	return p, nil
}

func addStackedBars(p *plot.Plot, t *aggregate.Table, palette *taxonomy.Palette, width vg.Length) error {
	barWidth := width * 0.6 / vg.Length(len(t.Years)+2)

	var below *plotter.BarChart
	for i, s := range t.Series {
		bars, err := plotter.NewBarChart(plotter.Values(t.Values[i]), barWidth)
		if err != nil {
			return fmt.Errorf("series %s: %w", s, err)
		}
		bars.Color = seriesColor(palette, s, i)
		bars.LineStyle.Width = 0
		if below != nil {
			bars.StackOn(below)
		}
		p.Add(bars)
		p.Legend.Add(s, bars)
		below = bars
	}

	labels := make([]string, len(t.Years))
	for j, y := range t.Years {
		labels[j] = strconv.Itoa(y)
	}
	p.NominalX(labels...)
	return nil
}

func addLines(p *plot.Plot, t *aggregate.Table, palette *taxonomy.Palette) error {
	for i, s := range t.Series {
		xys := make(plotter.XYs, len(t.Years))
		for j, y := range t.Years {
			xys[j].X = float64(y)
			xys[j].Y = t.Values[i][j]
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("series %s: %w", s, err)
		}
		line.Color = seriesColor(palette, s, i)
		line.Width = vg.Points(2)
		p.Add(line)
		p.Legend.Add(s, line)
	}
	p.X.Tick.Marker = yearTicks(t.Years)
	return nil
}

// yearTicks labels every year without decimals.
func yearTicks(years []int) plot.ConstantTicks {
	ticks := make(plot.ConstantTicks, len(years))
	for j, y := range years {
		ticks[j] = plot.Tick{Value: float64(y), Label: strconv.Itoa(y)}
	}
	return ticks
}
