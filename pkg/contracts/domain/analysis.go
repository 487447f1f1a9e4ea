package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BlankCategory labels the bucket for missing or blank category values.
const BlankCategory = "(blank)"

// DateRange is the span of EffectiveDate values in a dataset.
type DateRange struct {
	Min Value `json:"min"`
	Max Value `json:"max"`
}

// SummaryStats holds the headline figures of one dataset. It is computed once
// and never modified afterwards.
type SummaryStats struct {
	RowCount           int             `json:"row_count" validate:"min=0"`
	DateRange          *DateRange      `json:"date_range,omitempty"` // nil when not available
	TotalAmount        decimal.Decimal `json:"total_amount"`
	UniqueAccountCount int             `json:"unique_account_count" validate:"min=0"`
}

// CategoryBucket is one row of a categorical frequency table.
type CategoryBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// CategoryCount is the frequency table of one categorical column, ordered by
// descending count with ties kept in first-seen order.
type CategoryCount struct {
	Column  string           `json:"column"`
	Label   string           `json:"label"`
	Buckets []CategoryBucket `json:"buckets"`
}

// Total returns the sum of all bucket counts.
func (c CategoryCount) Total() int {
	total := 0
	for _, b := range c.Buckets {
		total += b.Count
	}
	return total
}

// BenfordStatus describes how far the digit analysis got for a dataset.
type BenfordStatus string

const (
	BenfordSkipped          BenfordStatus = "skipped"
	BenfordInsufficientData BenfordStatus = "insufficient_data"
	BenfordAnalyzed         BenfordStatus = "analyzed"
)

// DigitFrequency compares observed and theoretical frequency of one leading digit.
// Percentages are proportions in [0,1].
type DigitFrequency struct {
	Digit         int     `json:"digit" validate:"min=1,max=9"`
	ObservedCount int     `json:"observed_count"`
	ObservedPct   float64 `json:"observed_pct"`
	ExpectedPct   float64 `json:"expected_pct"`
}

// BenfordResult is the outcome of the leading-digit analysis of the Amount column.
type BenfordResult struct {
	Status     BenfordStatus     `json:"status"`
	SampleSize int               `json:"sample_size"`
	Digits     [9]DigitFrequency `json:"digits"`
	MAD        float64           `json:"mad"`
	Conformity string            `json:"conformity,omitempty"`
	ChartFile  string            `json:"chart_file,omitempty"`
}

// FileResult is what the pipeline produced for one input file: either a full
// analysis or the reason the file could not be loaded.
type FileResult struct {
	FileName    string          `json:"file_name"`
	Path        string          `json:"path"`
	Summary     SummaryStats    `json:"summary"`
	Categories  []CategoryCount `json:"categories,omitempty"`
	Benford     BenfordResult   `json:"benford"`
	Err         error           `json:"-"`
	ProcessedAt time.Time       `json:"processed_at"`
}

// Failed reports whether the file could not be analyzed.
func (r FileResult) Failed() bool {
	return r.Err != nil
}
