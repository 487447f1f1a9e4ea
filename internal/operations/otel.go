package operations

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"glreport/internal/infrastructure"
	"glreport/pkg/contracts/domain"
)

// Span names
const (
	SpanRun  = "glreport.run"
	SpanFile = "glreport.file"
	SpanStep = "glreport.step."
)

// analysisTracer instruments the run with spans and run metrics.
type analysisTracer struct {
	tracer  trace.Tracer
	metrics *infrastructure.RunMetrics
}

func (at *analysisTracer) traceRun(ctx context.Context, runID, inputDir string) (context.Context, trace.Span) {
	return infrastructure.StartSpan(ctx, at.tracer, SpanRun,
		attribute.String("run.id", runID),
		attribute.String("run.input_dir", inputDir))
}

func (at *analysisTracer) traceFile(ctx context.Context, name string) (context.Context, trace.Span) {
	return infrastructure.StartSpan(ctx, at.tracer, SpanFile, attribute.String("file.name", name))
}

func (at *analysisTracer) traceStep(ctx context.Context, step Step) (context.Context, trace.Span) {
	return infrastructure.StartSpan(ctx, at.tracer, SpanStep+step.ID(), attribute.String("step.name", step.Name()))
}

// recordFileCompletion annotates the file span and counts the outcome.
func (at *analysisTracer) recordFileCompletion(ctx context.Context, span trace.Span, state *FileState) {
	status := "loaded"
	if state.Failed() {
		status = "failed"
	}
	span.SetAttributes(
		attribute.String("file.status", status),
		attribute.Int("file.rows", state.RowCount()),
	)
	at.metrics.RecordFile(ctx, status, state.RowCount())

	if state.Failed() || state.Benford.Status == domain.BenfordSkipped {
		return
	}
	span.SetAttributes(
		attribute.String("benford.status", string(state.Benford.Status)),
		attribute.Int("benford.sample_size", state.Benford.SampleSize),
	)
	at.metrics.RecordBenford(ctx, string(state.Benford.Status), state.Benford.SampleSize)
	if state.Benford.ChartFile != "" {
		at.metrics.RecordChart(ctx)
	}
}

// recordRunCompletion annotates the run span with the totals.
func (at *analysisTracer) recordRunCompletion(span trace.Span, summary *RunSummary) {
	span.SetAttributes(
		attribute.Int("run.files", len(summary.Results)),
		attribute.Int("run.analyzed", summary.Analyzed),
		attribute.Int("run.failed", summary.Failed),
	)
}
