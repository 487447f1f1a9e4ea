package operations

import (
	"time"

	"glreport/internal/files"
	"glreport/pkg/contracts/domain"
)

// FileState carries one input file through the steps.
type FileState struct {
	File    files.FileInfo
	Dataset *domain.Dataset

	Summary    domain.SummaryStats
	Categories []domain.CategoryCount
	Benford    domain.BenfordResult

	Err   error
	Steps map[string]*StepState
	order []string
}

// NewFileState creates the state for file.
func NewFileState(file files.FileInfo) *FileState {
	return &FileState{File: file, Steps: make(map[string]*StepState)}
}

// Step returns the state of step id, creating it on first use.
func (s *FileState) Step(id, name string) *StepState {
	if st, ok := s.Steps[id]; ok {
		return st
	}
	st := NewStepState(id, name)
	s.Steps[id] = st
	s.order = append(s.order, id)
	return st
}

// Fail records err as the reason the file could not be analyzed. The first
// failure wins.
func (s *FileState) Fail(err error) {
	if s.Err == nil {
		s.Err = err
	}
}

// Failed reports whether the file failed.
func (s *FileState) Failed() bool {
	return s.Err != nil
}

// RowCount returns the number of loaded rows, or 0 before loading.
func (s *FileState) RowCount() int {
	if s.Dataset == nil {
		return 0
	}
	return s.Dataset.Len()
}

// Result builds the report entry for the file.
func (s *FileState) Result(processedAt time.Time) domain.FileResult {
	r := domain.FileResult{
		FileName:    s.File.Name,
		Path:        s.File.Path,
		ProcessedAt: processedAt,
	}
	if s.Err != nil {
		r.Err = s.Err
		return r
	}
	r.Summary = s.Summary
	r.Categories = s.Categories
	r.Benford = s.Benford
	return r
}
