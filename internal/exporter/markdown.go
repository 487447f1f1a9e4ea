package exporter

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	apperrors "glreport/internal/errors"
	"glreport/pkg/contracts/domain"
)

// ReportOptions controls the report header.
type ReportOptions struct {
	Title           string
	TimestampFormat string
}

// Footer summarizes a run at the end of the report.
type Footer struct {
	Processed int
	Analyzed  int
	Failed    int
	RunID     string
}

// MarkdownWriter streams the analysis report as Markdown. Write errors are
// sticky: once one occurs, later writes are dropped and Close returns it.
type MarkdownWriter struct {
	file *os.File
	out  *bufio.Writer
	opts ReportOptions
	err  error
}

// CreateReport creates (or truncates) the report file at path, creating its
// directory as needed.
func CreateReport(path string, opts ReportOptions) (*MarkdownWriter, error) {
	slog.Debug("Creating report file", slog.String("path", path))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	w := NewMarkdownWriter(file, opts)
	w.file = file
	return w, nil
}

// NewMarkdownWriter writes the report to w.
func NewMarkdownWriter(w io.Writer, opts ReportOptions) *MarkdownWriter {
	if opts.Title == "" {
		opts.Title = "GL Data Analysis Report"
	}
	if opts.TimestampFormat == "" {
		opts.TimestampFormat = "2006-01-02 15:04:05"
	}
	return &MarkdownWriter{out: bufio.NewWriter(w), opts: opts}
}

func (m *MarkdownWriter) printf(format string, args ...any) {
	if m.err != nil {
		return
	}
	_, m.err = fmt.Fprintf(m.out, format, args...)
}

// WriteHeader writes the report title and generation timestamp.
func (m *MarkdownWriter) WriteHeader(generatedAt time.Time) {
	m.printf("# %s\n\n", m.opts.Title)
	m.printf("**Generated on:** %s\n\n", generatedAt.Format(m.opts.TimestampFormat))
}

// WriteNoInputs notes that the input directory held nothing to analyze.
func (m *MarkdownWriter) WriteNoInputs() {
	m.printf("No input files found.\n\n")
}

// WriteFileResult writes the section for one input file.
func (m *MarkdownWriter) WriteFileResult(r domain.FileResult) {
	m.printf("## %s\n\n", escapeCell(r.FileName))

	if r.Failed() {
		m.printf("**Error:** %s\n\n", escapeCell(apperrors.Describe(r.Err)))
		m.printf("---\n\n")
		return
	}

	m.writeSummary(r.Summary)
	for _, c := range r.Categories {
		m.writeCategory(c)
	}
	m.writeBenford(r.FileName, r.Benford)
	m.printf("---\n\n")
}

func (m *MarkdownWriter) writeSummary(s domain.SummaryStats) {
	m.printf("### Summary Statistics\n\n")
	m.printf("| Metric | Value |\n")
	m.printf("|--------|-------|\n")
	m.printf("| Total Rows | %s |\n", formatCount(s.RowCount))
	m.printf("| Date Range | %s |\n", escapeCell(formatDateRange(s.DateRange)))
	m.printf("| Total Amount | %s |\n", formatAmount(s.TotalAmount))
	m.printf("| Unique GL Accounts | %s |\n\n", formatCount(s.UniqueAccountCount))
}

func (m *MarkdownWriter) writeCategory(c domain.CategoryCount) {
	m.printf("### Entries by %s\n\n", c.Label)
	m.printf("| %s | Count |\n", c.Label)
	m.printf("|---|---|\n")
	for _, b := range c.Buckets {
		m.printf("| %s | %s |\n", escapeCell(b.Label), formatCount(b.Count))
	}
	m.printf("\n")
}

func (m *MarkdownWriter) writeBenford(fileName string, b domain.BenfordResult) {
	switch b.Status {
	case domain.BenfordSkipped:
		return
	case domain.BenfordInsufficientData:
		m.printf("### Benford's Law Analysis\n\n")
		m.printf("_Insufficient data for Benford's Law analysis: no non-zero Amount values._\n\n")
		return
	}

	m.printf("### Benford's Law Analysis\n\n")
	m.printf("| Digit | Observed Count | Observed %% | Expected %% |\n")
	m.printf("|-------|----------------|------------|------------|\n")
	for _, f := range b.Digits {
		m.printf("| %d | %s | %s | %s |\n", f.Digit, formatCount(f.ObservedCount),
			formatPercent(f.ObservedPct), formatPercent(f.ExpectedPct))
	}
	m.printf("\n")
	if b.ChartFile != "" {
		m.printf("![Benford's Law chart for %s](%s)\n\n", escapeCell(fileName), linkTarget(b.ChartFile))
	}
	m.printf("Sample size: %s non-zero amounts. Mean absolute deviation: %.4f (%s).\n\n",
		formatCount(b.SampleSize), b.MAD, b.Conformity)
}

// WriteFooter closes the report with the run totals.
func (m *MarkdownWriter) WriteFooter(f Footer) {
	m.printf("_Files processed: %s (%s analyzed, %s failed)._",
		formatCount(f.Processed), formatCount(f.Analyzed), formatCount(f.Failed))
	if f.RunID != "" {
		m.printf(" _Run ID: %s_", f.RunID)
	}
	m.printf("\n")
}

// Err returns the first write error, if any.
func (m *MarkdownWriter) Err() error {
	return m.err
}

// Close flushes buffered output and closes the report file if the writer
// owns one.
func (m *MarkdownWriter) Close() error {
	err := m.err
	if ferr := m.out.Flush(); err == nil {
		err = ferr
	}
	if m.file != nil {
		if cerr := m.file.Close(); err == nil {
			err = cerr
		}
		m.file = nil
	}
	return err
}
