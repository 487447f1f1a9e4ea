package operations

import (
	"context"
	"time"
)

// Step is one stage of the per-file analysis: load, clean, aggregate or
// benford. Steps run in registration order against a shared FileState.
type Step interface {
	// ID returns the unique identifier for this Step
	ID() string

	// Name returns the human-readable name for this Step
	Name() string

	// Execute runs the Step. A returned error fails the file; later steps
	// do not run.
	Execute(ctx context.Context, state *FileState) error
}

// StepStatus represents the current status of a Step
type StepStatus string

const (
	StepStatusPending   StepStatus = "pending"
	StepStatusActive    StepStatus = "active"
	StepStatusCompleted StepStatus = "completed"
	StepStatusFailed    StepStatus = "failed"
)

// StepState records how one Step went for one file.
type StepState struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Status    StepStatus `json:"status"`
	StartTime time.Time  `json:"start_time"`
	EndTime   time.Time  `json:"end_time"`
	Error     error      `json:"-"`
}

// NewStepState creates a pending step state.
func NewStepState(id, name string) *StepState {
	return &StepState{ID: id, Name: name, Status: StepStatusPending}
}

// Start marks the step as active.
func (s *StepState) Start() {
	s.Status = StepStatusActive
	s.StartTime = time.Now()
}

// Complete marks the step as completed.
func (s *StepState) Complete() {
	s.Status = StepStatusCompleted
	s.EndTime = time.Now()
}

// Fail marks the step as failed with err.
func (s *StepState) Fail(err error) {
	s.Status = StepStatusFailed
	s.Error = err
	s.EndTime = time.Now()
}

// Duration returns how long the step ran.
func (s *StepState) Duration() time.Duration {
	if s.StartTime.IsZero() || s.EndTime.IsZero() {
		return 0
	}
	return s.EndTime.Sub(s.StartTime)
}
