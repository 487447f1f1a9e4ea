package operations

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"glreport/internal/benford"
	"glreport/internal/config"
	"glreport/internal/dataprocessing"
	apperrors "glreport/internal/errors"
	"glreport/internal/exporter"
	"glreport/internal/files"
	"glreport/internal/infrastructure"
	"glreport/internal/validation"
	"glreport/pkg/contracts/domain"
)

// RunSummary describes a finished run.
type RunSummary struct {
	RunID      string
	ReportPath string
	Results    []domain.FileResult
	Analyzed   int
	Failed     int
}

func (s *RunSummary) add(r domain.FileResult) {
	s.Results = append(s.Results, r)
	if r.Failed() {
		s.Failed++
	} else {
		s.Analyzed++
	}
}

// Pipeline discovers the input files, analyzes each one in turn and writes
// the report.
type Pipeline struct {
	cfg       *config.Config
	logger    *slog.Logger
	registry  *Registry
	discovery *files.Discovery
	validator *validation.FileValidator
	tracing   *analysisTracer
	renderer  benford.ChartRenderer
	stdout    io.Writer
	now       func() time.Time
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithTracer sets the tracer used for run, file and step spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(p *Pipeline) { p.tracing.tracer = tracer }
}

// WithMetrics sets where run metrics are recorded.
func WithMetrics(m *infrastructure.RunMetrics) Option {
	return func(p *Pipeline) { p.tracing.metrics = m }
}

// WithRenderer replaces the chart renderer. nil disables charts.
func WithRenderer(r benford.ChartRenderer) Option {
	return func(p *Pipeline) { p.renderer = r }
}

// WithStdout redirects the console progress lines.
func WithStdout(w io.Writer) Option {
	return func(p *Pipeline) { p.stdout = w }
}

// WithClock sets the clock used for the report timestamp.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// NewPipeline creates a pipeline with the load, clean, aggregate and
// benford steps registered in that order.
func NewPipeline(cfg *config.Config, logger *slog.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Pipeline{
		cfg:       cfg,
		logger:    infrastructure.WithComponent(logger, "pipeline"),
		registry:  NewRegistry(),
		discovery: files.NewDiscovery(".", config.SpreadsheetExtensions, config.TempFilePrefixes),
		validator: validation.NewFileValidator(logger),
		tracing:   &analysisTracer{tracer: otel.Tracer(infrastructure.TracerName)},
		renderer:  benford.NewPlotRenderer(cfg.Report.ChartWidth, cfg.Report.ChartHeight),
		stdout:    os.Stdout,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}

	steps := []Step{
		NewLoadStep(dataprocessing.NewLoader(infrastructure.WithComponent(logger, "loader"))),
		CleanStep{},
		NewAggregateStep(dataprocessing.NewAggregator(infrastructure.WithComponent(logger, "aggregator"))),
		NewBenfordStep(benford.NewAnalyzer(p.renderer, cfg.Paths.OutputDir, infrastructure.WithComponent(logger, "benford"))),
	}
	for _, step := range steps {
		// IDs are distinct constants, Register cannot fail here.
		_ = p.registry.Register(step)
	}
	return p
}

// Registry exposes the step registry so callers can add steps.
func (p *Pipeline) Registry() *Registry {
	return p.registry
}

// Run executes the whole analysis. Per-file failures end up in the report;
// the returned error is non-nil only when the report itself cannot be
// written.
func (p *Pipeline) Run(ctx context.Context) (*RunSummary, error) {
	ctx = infrastructure.EnsureRunID(ctx)
	runID := infrastructure.GetRunID(ctx)

	ctx, span := p.tracing.traceRun(ctx, runID, p.cfg.Paths.InputDir)
	summary, err := p.run(ctx, runID)
	if summary != nil {
		p.tracing.recordRunCompletion(span, summary)
	}
	infrastructure.EndSpan(span, err)
	return summary, err
}

func (p *Pipeline) run(ctx context.Context, runID string) (*RunSummary, error) {
	reportPath := p.cfg.ReportPath()

	if err := p.validator.ValidateOutputDirectory(p.cfg.Paths.OutputDir); err != nil {
		p.logger.ErrorContext(ctx, "Output directory is not writable",
			slog.String("dir", p.cfg.Paths.OutputDir),
			slog.String("error", err.Error()))
		return nil, apperrors.NewOutputWriteError("output directory is not writable", err).
			WithContext("dir", p.cfg.Paths.OutputDir)
	}

	report, err := exporter.CreateReport(reportPath, exporter.ReportOptions{
		Title:           p.cfg.Report.Title,
		TimestampFormat: p.cfg.Report.TimestampFmt,
	})
	if err != nil {
		return nil, apperrors.NewOutputWriteError("cannot create report", err).WithContext("path", reportPath)
	}
	defer report.Close()

	fmt.Fprintln(p.stdout, "Starting GL data analysis...")
	p.logger.InfoContext(ctx, "Analysis started",
		slog.String("input_dir", p.cfg.Paths.InputDir),
		slog.String("report", reportPath))

	inputs := p.discover(ctx)
	summary := &RunSummary{RunID: runID, ReportPath: reportPath}

	report.WriteHeader(p.now())
	if len(inputs) == 0 {
		fmt.Fprintln(p.stdout, "No input files found.")
		report.WriteNoInputs()
	}

	progress := NewConsoleProgress(p.stdout, len(inputs))
	for _, in := range inputs {
		progress.Next(in.Name)
		result := p.ProcessFile(ctx, in)
		if result.Failed() {
			progress.Failed(in.Name, result.Err)
		}
		report.WriteFileResult(result)
		summary.add(result)
	}

	report.WriteFooter(exporter.Footer{
		Processed: len(summary.Results),
		Analyzed:  summary.Analyzed,
		Failed:    summary.Failed,
		RunID:     runID,
	})
	if err := report.Close(); err != nil {
		return summary, apperrors.NewOutputWriteError("failed to write report", err).WithContext("path", reportPath)
	}

	p.writeMetrics(ctx)

	p.logger.InfoContext(ctx, "Analysis complete",
		slog.Int("files", len(summary.Results)),
		slog.Int("analyzed", summary.Analyzed),
		slog.Int("failed", summary.Failed))
	fmt.Fprintf(p.stdout, "Analysis complete. Report written to %s\n", reportPath)
	return summary, nil
}

// discover lists the input files. An unreadable input directory is logged
// and treated as empty.
func (p *Pipeline) discover(ctx context.Context) []files.FileInfo {
	dir := p.cfg.Paths.InputDir
	if err := p.validator.ValidateInputDirectory(dir); err != nil {
		p.logger.ErrorContext(ctx, "Input directory unavailable",
			slog.String("dir", dir),
			slog.String("error", err.Error()))
		return nil
	}
	inputs, err := p.discovery.FindSpreadsheets(dir)
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to list input files",
			slog.String("dir", dir),
			slog.String("error", err.Error()))
		return nil
	}
	p.logger.InfoContext(ctx, "Input files discovered", slog.Int("count", len(inputs)))
	return inputs
}

// ProcessFile runs every registered step for one file. It never panics and
// never returns a fatal error: any failure becomes a failed FileResult.
func (p *Pipeline) ProcessFile(ctx context.Context, in files.FileInfo) (result domain.FileResult) {
	ctx, span := p.tracing.traceFile(ctx, in.Name)
	state := NewFileState(in)
	logger := p.logger.With(slog.String("file", in.Name))

	defer func() {
		p.tracing.recordFileCompletion(ctx, span, state)
		infrastructure.EndSpan(span, state.Err)
		result = state.Result(p.now())
	}()

	for _, step := range p.registry.List() {
		if err := ctx.Err(); err != nil {
			state.Fail(NewCancellationError(step.ID(), err))
			return
		}
		if err := p.runStep(ctx, logger, step, state); err != nil {
			logger.ErrorContext(ctx, "File could not be analyzed",
				slog.String("step", step.ID()),
				slog.String("error", err.Error()))
			state.Fail(err)
			return
		}
	}
	logger.InfoContext(ctx, "File analyzed",
		slog.Int("rows", state.RowCount()),
		slog.String("benford", string(state.Benford.Status)))
	return
}

// runStep executes one step, converting a panic into an error.
func (p *Pipeline) runStep(ctx context.Context, logger *slog.Logger, step Step, state *FileState) (err error) {
	ctx, span := p.tracing.traceStep(ctx, step)
	st := state.Step(step.ID(), step.Name())
	st.Start()

	defer func() {
		if r := recover(); r != nil {
			logger.ErrorContext(ctx, "Recovered from panic",
				slog.String("step", step.ID()),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())))
			err = NewPanicError(step.ID(), r)
		}
		if err != nil {
			st.Fail(err)
		} else {
			st.Complete()
		}
		infrastructure.EndSpan(span, err)
		logger.DebugContext(ctx, "Step finished",
			slog.String("step", step.ID()),
			slog.String("status", string(st.Status)),
			slog.Duration("duration", st.Duration()))
	}()

	if err := step.Execute(ctx, state); err != nil {
		if apperrors.IsLoadError(err) {
			return err
		}
		return NewExecutionError(step.ID(), err)
	}
	return nil
}

// writeMetrics writes the metrics textfile when one is configured. Failure
// is logged only.
func (p *Pipeline) writeMetrics(ctx context.Context) {
	path := p.cfg.Telemetry.MetricsFile
	if path == "" || p.tracing.metrics == nil {
		return
	}
	if err := p.tracing.metrics.WriteTextfile(path); err != nil {
		p.logger.WarnContext(ctx, "Failed to write metrics file",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return
	}
	p.logger.DebugContext(ctx, "Metrics written", slog.String("path", path))
}
