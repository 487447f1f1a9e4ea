package benford

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ChartRenderer draws an observed-versus-expected bar chart to path.
// observed and expected are percentages aligned with categories.
type ChartRenderer interface {
	Render(path, title string, categories []string, observed, expected []float64) error
}

var (
	observedColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	expectedColor = color.RGBA{R: 255, G: 127, B: 14, A: 255}
)

// PlotRenderer renders PNG charts with gonum/plot. Every call builds and
// saves its own plot, so nothing is shared between charts.
type PlotRenderer struct {
	Width  vg.Length
	Height vg.Length
}

// NewPlotRenderer creates a renderer producing charts of the given size in
// inches.
func NewPlotRenderer(widthInches, heightInches float64) *PlotRenderer {
	return &PlotRenderer{
		Width:  vg.Length(widthInches) * vg.Inch,
		Height: vg.Length(heightInches) * vg.Inch,
	}
}

// Render implements ChartRenderer.
func (r *PlotRenderer) Render(path, title string, categories []string, observed, expected []float64) error {
	if len(categories) == 0 || len(observed) != len(categories) || len(expected) != len(categories) {
		return fmt.Errorf("chart series mismatch: %d categories, %d observed, %d expected",
			len(categories), len(observed), len(expected))
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Leading Digit"
	p.Y.Label.Text = "Frequency (%)"
	p.Y.Min = 0

	width := vg.Points(16)
	observedBars, err := plotter.NewBarChart(plotter.Values(observed), width)
	if err != nil {
		return fmt.Errorf("observed series: %w", err)
	}
	observedBars.Color = observedColor
	observedBars.LineStyle.Width = 0
	observedBars.Offset = -width / 2

	expectedBars, err := plotter.NewBarChart(plotter.Values(expected), width)
	if err != nil {
		return fmt.Errorf("expected series: %w", err)
	}
	expectedBars.Color = expectedColor
	expectedBars.LineStyle.Width = 0
	expectedBars.Offset = width / 2

	p.Add(observedBars, expectedBars)
	p.Legend.Add("Observed", observedBars)
	p.Legend.Add("Expected (Benford)", expectedBars)
	p.Legend.Top = true
	p.NominalX(categories...)

	if err := p.Save(r.Width, r.Height, path); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	return nil
}
