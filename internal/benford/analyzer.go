package benford

import (
	"context"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	apperrors "glreport/internal/errors"
	"glreport/pkg/contracts/domain"
)

// ChartFileName names the chart of the dataset loaded from source,
// e.g. "benford_je_2024.png" for "input/je_2024.xlsx".
func ChartFileName(source string) string {
	base := filepath.Base(source)
	return "benford_" + strings.TrimSuffix(base, filepath.Ext(base)) + ".png"
}

// Compute runs the digit analysis over amounts without drawing anything.
// With no non-zero numeric amount the result is BenfordInsufficientData.
func Compute(amounts []domain.Value) domain.BenfordResult {
	counts, total := CountLeadingDigits(amounts)
	result := domain.BenfordResult{SampleSize: total}
	if total == 0 {
		result.Status = domain.BenfordInsufficientData
		return result
	}

	exp := ExpectedDistribution()
	var observed [9]float64
	for i, d := range Digits {
		observed[i] = float64(counts[i]) / float64(total)
		result.Digits[i] = domain.DigitFrequency{
			Digit:         d,
			ObservedCount: counts[i],
			ObservedPct:   observed[i],
			ExpectedPct:   exp[i],
		}
	}
	result.Status = domain.BenfordAnalyzed
	result.MAD = MeanAbsoluteDeviation(observed, exp)
	result.Conformity = Conformity(result.MAD)
	return result
}

// Analyzer runs the digit analysis for a dataset and writes its chart.
type Analyzer struct {
	renderer  ChartRenderer
	outputDir string
	logger    *slog.Logger
}

// NewAnalyzer creates an analyzer that saves charts into outputDir. A nil
// renderer disables charts.
func NewAnalyzer(renderer ChartRenderer, outputDir string, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{renderer: renderer, outputDir: outputDir, logger: logger}
}

// Analyze tests the Amount column of ds. Without an Amount column the
// result is BenfordSkipped. A failed chart leaves ChartFile empty.
func (a *Analyzer) Analyze(ctx context.Context, ds *domain.Dataset) domain.BenfordResult {
	if !ds.HasColumn(domain.ColumnAmount) {
		a.logger.DebugContext(ctx, "No Amount column, Benford analysis skipped",
			slog.String("file", filepath.Base(ds.Source)))
		return domain.BenfordResult{Status: domain.BenfordSkipped}
	}

	result := Compute(ds.Column(domain.ColumnAmount))
	if result.Status != domain.BenfordAnalyzed {
		a.logger.InfoContext(ctx, "No non-zero amounts for Benford analysis",
			slog.String("file", filepath.Base(ds.Source)))
		return result
	}

	a.logger.InfoContext(ctx, "Benford analysis complete",
		slog.String("file", filepath.Base(ds.Source)),
		slog.Int("sample_size", result.SampleSize),
		slog.Float64("mad", result.MAD),
		slog.String("conformity", result.Conformity))

	if a.renderer != nil {
		result.ChartFile = a.renderChart(ctx, ds, result)
	}
	return result
}

// renderChart draws the chart and returns its file name, or "" on failure.
func (a *Analyzer) renderChart(ctx context.Context, ds *domain.Dataset, result domain.BenfordResult) (file string) {
	file = ChartFileName(ds.Source)
	path := filepath.Join(a.outputDir, file)

	categories := make([]string, len(Digits))
	observed := make([]float64, len(Digits))
	expected := make([]float64, len(Digits))
	for i, f := range result.Digits {
		categories[i] = strconv.Itoa(f.Digit)
		observed[i] = f.ObservedPct * 100
		expected[i] = f.ExpectedPct * 100
	}

	defer func() {
		if r := recover(); r != nil {
			a.logger.WarnContext(ctx, "Chart renderer panicked",
				slog.String("path", path),
				slog.Any("panic", r))
			file = ""
		}
	}()

	title := "Benford's Law Analysis: " + filepath.Base(ds.Source)
	if err := a.renderer.Render(path, title, categories, observed, expected); err != nil {
		a.logger.WarnContext(ctx, "Failed to write Benford chart",
			slog.String("error", apperrors.NewChartError(path, err).Error()))
		return ""
	}
	return file
}
