package infrastructure

import (
	"context"
	"fmt"

	prom "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"glreport/internal/config"
)

// RunMetrics counts what a single analyzer run did. Instruments are recorded
// through OpenTelemetry and exported into a private Prometheus registry so the
// totals can be dumped in node-exporter textfile format at the end of a run.
type RunMetrics struct {
	registry *prom.Registry
	provider *sdkmetric.MeterProvider

	filesProcessed metric.Int64Counter
	rowsLoaded     metric.Int64Counter
	benfordSamples metric.Int64Counter
	chartsRendered metric.Int64Counter
}

// NewRunMetrics creates the meter provider and instruments.
func NewRunMetrics() (*RunMetrics, error) {
	registry := prom.NewRegistry()
	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(newResource()),
		sdkmetric.WithReader(exporter),
	)
	meter := provider.Meter(MeterName, metric.WithInstrumentationVersion(config.AppVersion))

	m := &RunMetrics{registry: registry, provider: provider}

	if m.filesProcessed, err = meter.Int64Counter(
		"glreport_files_processed",
		metric.WithDescription("Input files processed, by outcome"),
	); err != nil {
		return nil, err
	}
	if m.rowsLoaded, err = meter.Int64Counter(
		"glreport_rows_loaded",
		metric.WithDescription("Journal-entry rows loaded from input files"),
	); err != nil {
		return nil, err
	}
	if m.benfordSamples, err = meter.Int64Counter(
		"glreport_benford_samples",
		metric.WithDescription("Amount values that contributed a leading digit"),
	); err != nil {
		return nil, err
	}
	if m.chartsRendered, err = meter.Int64Counter(
		"glreport_charts_rendered",
		metric.WithDescription("Benford chart images written"),
	); err != nil {
		return nil, err
	}

	return m, nil
}

// RecordFile counts one processed file with its outcome ("loaded" or "failed").
func (m *RunMetrics) RecordFile(ctx context.Context, status string, rows int) {
	if m == nil {
		return
	}
	m.filesProcessed.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
	if rows > 0 {
		m.rowsLoaded.Add(ctx, int64(rows))
	}
}

// RecordBenford counts the sample size of one Benford analysis.
func (m *RunMetrics) RecordBenford(ctx context.Context, status string, samples int) {
	if m == nil {
		return
	}
	m.benfordSamples.Add(ctx, int64(samples), metric.WithAttributes(attribute.String("status", status)))
}

// RecordChart counts one written chart image.
func (m *RunMetrics) RecordChart(ctx context.Context) {
	if m == nil {
		return
	}
	m.chartsRendered.Add(ctx, 1)
}

// WriteTextfile writes the current totals to path in Prometheus text format.
func (m *RunMetrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	return prom.WriteToTextfile(path, m.registry)
}

// Shutdown stops the meter provider.
func (m *RunMetrics) Shutdown(ctx context.Context) error {
	if m == nil {
		return nil
	}
	return m.provider.Shutdown(ctx)
}
