package operations

import (
	"context"

	"glreport/internal/benford"
	"glreport/internal/dataprocessing"
)

// Step IDs
const (
	StepIDLoad      = "load"
	StepIDClean     = "clean"
	StepIDAggregate = "aggregate"
	StepIDBenford   = "benford"
)

// LoadStep reads the input file into a dataset.
type LoadStep struct {
	loader *dataprocessing.Loader
}

// NewLoadStep creates the load step.
func NewLoadStep(loader *dataprocessing.Loader) *LoadStep {
	return &LoadStep{loader: loader}
}

func (s *LoadStep) ID() string   { return StepIDLoad }
func (s *LoadStep) Name() string { return "Load" }

// Execute implements Step.
func (s *LoadStep) Execute(ctx context.Context, state *FileState) error {
	ds, err := s.loader.Load(ctx, state.File.Path)
	if err != nil {
		return err
	}
	state.Dataset = ds
	return nil
}

// CleanStep trims text values.
type CleanStep struct{}

func (CleanStep) ID() string   { return StepIDClean }
func (CleanStep) Name() string { return "Clean" }

// Execute implements Step.
func (CleanStep) Execute(_ context.Context, state *FileState) error {
	state.Dataset = dataprocessing.Clean(state.Dataset)
	return nil
}

// AggregateStep computes the summary statistics and category breakdowns.
type AggregateStep struct {
	aggregator *dataprocessing.Aggregator
}

// NewAggregateStep creates the aggregate step.
func NewAggregateStep(aggregator *dataprocessing.Aggregator) *AggregateStep {
	return &AggregateStep{aggregator: aggregator}
}

func (s *AggregateStep) ID() string   { return StepIDAggregate }
func (s *AggregateStep) Name() string { return "Aggregate" }

// Execute implements Step.
func (s *AggregateStep) Execute(ctx context.Context, state *FileState) error {
	state.Summary = s.aggregator.ComputeSummary(ctx, state.Dataset)
	state.Categories = s.aggregator.ComputeCategoryCounts(ctx, state.Dataset)
	return nil
}

// BenfordStep runs the leading-digit analysis and draws its chart.
type BenfordStep struct {
	analyzer *benford.Analyzer
}

// NewBenfordStep creates the benford step.
func NewBenfordStep(analyzer *benford.Analyzer) *BenfordStep {
	return &BenfordStep{analyzer: analyzer}
}

func (s *BenfordStep) ID() string   { return StepIDBenford }
func (s *BenfordStep) Name() string { return "Benford's Law" }

// Execute implements Step.
func (s *BenfordStep) Execute(ctx context.Context, state *FileState) error {
	state.Benford = s.analyzer.Analyze(ctx, state.Dataset)
	return nil
}
