package exporter

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "glreport/internal/errors"
	"glreport/pkg/contracts/domain"
)

var generated = time.Date(2026, 10, 19, 9, 30, 5, 0, time.UTC)

func analyzedResult() domain.FileResult {
	var digits [9]domain.DigitFrequency
	for i := range digits {
		digits[i] = domain.DigitFrequency{Digit: i + 1, ExpectedPct: 0.05}
	}
	digits[0] = domain.DigitFrequency{Digit: 1, ObservedCount: 2, ObservedPct: 2.0 / 3, ExpectedPct: 0.30103}
	digits[4] = domain.DigitFrequency{Digit: 5, ObservedCount: 1, ObservedPct: 1.0 / 3, ExpectedPct: 0.07918}

	return domain.FileResult{
		FileName: "je|2024.xlsx",
		Summary: domain.SummaryStats{
			RowCount: 1500,
			DateRange: &domain.DateRange{
				Min: domain.DateValue(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
				Max: domain.DateValue(time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)),
			},
			TotalAmount:        decimal.RequireFromString("1234567.5"),
			UniqueAccountCount: 42,
		},
		Categories: []domain.CategoryCount{
			{Column: "Source", Label: "Source", Buckets: []domain.CategoryBucket{{Label: "Manual", Count: 1000}, {Label: domain.BlankCategory, Count: 500}}},
		},
		Benford: domain.BenfordResult{
			Status:     domain.BenfordAnalyzed,
			SampleSize: 3,
			Digits:     digits,
			MAD:        0.0778,
			Conformity: "nonconformity",
			ChartFile:  "benford_je|2024.png",
		},
	}
}

func render(t *testing.T, fn func(w *MarkdownWriter)) string {
	t.Helper()
	var buf bytes.Buffer
	w := NewMarkdownWriter(&buf, ReportOptions{})
	fn(w)
	require.NoError(t, w.Close())
	return buf.String()
}

func TestMarkdownWriter_Header(t *testing.T) {
	out := render(t, func(w *MarkdownWriter) { w.WriteHeader(generated) })

	assert.True(t, strings.HasPrefix(out, "# GL Data Analysis Report\n\n**Generated on:** 2026-10-19 09:30:05\n"))
}

func TestMarkdownWriter_AnalyzedFile(t *testing.T) {
	out := render(t, func(w *MarkdownWriter) { w.WriteFileResult(analyzedResult()) })

	assert.Contains(t, out, "## je\\|2024.xlsx\n")
	assert.Contains(t, out, "### Summary Statistics\n")
	assert.Contains(t, out, "| Total Rows | 1,500 |\n")
	assert.Contains(t, out, "| Date Range | 2024-01-01 to 2024-03-31 |\n")
	assert.Contains(t, out, "| Total Amount | 1,234,567.50 |\n")
	assert.Contains(t, out, "| Unique GL Accounts | 42 |\n")
	assert.Contains(t, out, "### Entries by Source\n\n| Source | Count |\n")
	assert.Contains(t, out, "| Manual | 1,000 |\n| (blank) | 500 |\n")
	assert.Contains(t, out, "| Digit | Observed Count | Observed % | Expected % |\n")
	assert.Contains(t, out, "| 1 | 2 | 66.67% | 30.10% |\n")
	assert.Contains(t, out, "| 9 | 0 | 0.00% | 5.00% |\n\n![Benford's Law chart for je\\|2024.xlsx](<benford_je|2024.png>)\n")
	assert.Contains(t, out, "Mean absolute deviation: 0.0778 (nonconformity)")
	assert.True(t, strings.HasSuffix(out, "\n---\n\n"))

	summary := strings.Index(out, "### Summary Statistics")
	category := strings.Index(out, "### Entries by Source")
	benford := strings.Index(out, "### Benford's Law Analysis")
	assert.True(t, summary < category && category < benford, "sections keep their order")
}

func TestMarkdownWriter_BenfordVariants(t *testing.T) {
	t.Run("skipped without Amount", func(t *testing.T) {
		r := analyzedResult()
		r.Benford = domain.BenfordResult{Status: domain.BenfordSkipped}
		out := render(t, func(w *MarkdownWriter) { w.WriteFileResult(r) })
		assert.NotContains(t, out, "Benford")
	})

	t.Run("insufficient data", func(t *testing.T) {
		r := analyzedResult()
		r.Benford = domain.BenfordResult{Status: domain.BenfordInsufficientData}
		out := render(t, func(w *MarkdownWriter) { w.WriteFileResult(r) })
		assert.Contains(t, out, "### Benford's Law Analysis\n\n_Insufficient data")
		assert.NotContains(t, out, "| Digit |")
		assert.NotContains(t, out, "![")
	})

	t.Run("chart failed", func(t *testing.T) {
		r := analyzedResult()
		r.Benford.ChartFile = ""
		out := render(t, func(w *MarkdownWriter) { w.WriteFileResult(r) })
		assert.Contains(t, out, "| Digit |")
		assert.NotContains(t, out, "![")
	})
}

func TestMarkdownWriter_FailedFile(t *testing.T) {
	r := domain.FileResult{
		FileName: "corrupt.xlsx",
		Err:      apperrors.NewLoadError("corrupt.xlsx", "failed to read corrupt.xlsx", errors.New("zip: not a valid zip file")),
	}

	out := render(t, func(w *MarkdownWriter) { w.WriteFileResult(r) })

	assert.Equal(t, "## corrupt.xlsx\n\n**Error:** failed to read corrupt.xlsx: zip: not a valid zip file\n\n---\n\n", out)
}

func TestMarkdownWriter_NoInputsAndFooter(t *testing.T) {
	out := render(t, func(w *MarkdownWriter) {
		w.WriteHeader(generated)
		w.WriteNoInputs()
		w.WriteFooter(Footer{RunID: "run-1"})
	})

	assert.Contains(t, out, "No input files found.\n")
	assert.Contains(t, out, "_Files processed: 0 (0 analyzed, 0 failed)._ _Run ID: run-1_\n")
}

func TestCreateReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "report.md")

	w, err := CreateReport(path, ReportOptions{Title: "Quarterly GL Review"})
	require.NoError(t, err)
	w.WriteHeader(generated)
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# Quarterly GL Review\n"))
}

func TestCreateReport_Unwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "output")
	require.NoError(t, os.WriteFile(blocker, []byte("file, not dir"), 0o644))

	_, err := CreateReport(filepath.Join(blocker, "report.md"), ReportOptions{})
	assert.Error(t, err)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestMarkdownWriter_StickyError(t *testing.T) {
	w := NewMarkdownWriter(failingWriter{}, ReportOptions{})
	w.WriteHeader(generated)
	w.WriteNoInputs()

	err := w.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
