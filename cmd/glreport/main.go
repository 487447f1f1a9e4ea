// Command glreport analyzes the GL journal-entry exports (.xlsx, .xlsm, .csv)
// in the working directory and writes output/report.md together with one
// Benford's Law chart per file.
//
// There are no flags. Settings come from an optional glreport.yaml, an
// optional .env file and GLREPORT_* environment variables.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"glreport/internal/config"
	apperrors "glreport/internal/errors"
	"glreport/internal/infrastructure"
	"glreport/internal/operations"
	"glreport/pkg/contracts"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load("")
	if err != nil {
		slog.Error("Failed to load configuration",
			slog.String("error", err.Error()),
			slog.Bool("fatal", apperrors.IsFatal(err)))
		fmt.Fprintf(os.Stderr, "Error: %s\n", apperrors.Describe(err))
		return 1
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer infrastructure.CloseLogFile()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = infrastructure.EnsureRunID(ctx)

	tracer, shutdownTracing, err := infrastructure.InitializeTracing(ctx, cfg.Telemetry, logger)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to initialize tracing", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("Tracing shutdown failed", slog.String("error", err.Error()))
		}
	}()

	opts := []operations.Option{operations.WithTracer(tracer)}
	if cfg.Telemetry.MetricsFile != "" {
		metrics, err := infrastructure.NewRunMetrics()
		if err != nil {
			logger.WarnContext(ctx, "Metrics disabled", slog.String("error", err.Error()))
		} else {
			defer metrics.Shutdown(context.Background())
			opts = append(opts, operations.WithMetrics(metrics))
		}
	}

	logger.InfoContext(ctx, "Starting glreport",
		slog.String("version", contracts.GetFullVersionString()),
		slog.String("input_dir", cfg.Paths.InputDir),
		slog.String("output_dir", cfg.Paths.OutputDir))

	summary, err := operations.NewPipeline(cfg, logger, opts...).Run(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Analysis aborted",
			slog.String("error", err.Error()),
			slog.Bool("fatal", apperrors.IsFatal(err)))
		fmt.Fprintf(os.Stderr, "Error: %s\n", apperrors.Describe(err))
		return 1
	}

	logger.InfoContext(ctx, "glreport finished",
		slog.Int("analyzed", summary.Analyzed),
		slog.Int("failed", summary.Failed))
	return 0
}
