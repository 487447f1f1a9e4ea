package dataprocessing

import (
	"context"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"glreport/pkg/contracts/domain"
)

// Degradation says what a statistic becomes when its column is missing.
type Degradation int

const (
	// DegradeSkip drops the statistic from the output.
	DegradeSkip Degradation = iota
	// DegradeZero reports a zero value.
	DegradeZero
	// DegradeNotAvailable reports the statistic as not available.
	DegradeNotAvailable
)

// FieldRule binds a statistic to the column it reads.
type FieldRule struct {
	Statistic   string
	Column      string
	Label       string
	Degradation Degradation
}

// Applies reports whether the rule's column exists in ds.
func (r FieldRule) Applies(ds *domain.Dataset) bool {
	return ds.HasColumn(r.Column)
}

const (
	StatDateRange   = "date_range"
	StatTotalAmount = "total_amount"
	StatUniqueGL    = "unique_gl_accounts"
	StatCategory    = "category_count"
)

// SummaryRules lists the summary statistics in report order.
var SummaryRules = []FieldRule{
	{Statistic: StatDateRange, Column: domain.ColumnEffectiveDate, Label: "Date Range", Degradation: DegradeNotAvailable},
	{Statistic: StatTotalAmount, Column: domain.ColumnAmount, Label: "Total Amount", Degradation: DegradeZero},
	{Statistic: StatUniqueGL, Column: domain.ColumnGLAccountNumber, Label: "Unique GL Accounts", Degradation: DegradeZero},
}

// CategoryRules lists the categorical breakdowns in report order.
var CategoryRules = []FieldRule{
	{Statistic: StatCategory, Column: domain.ColumnSource, Label: "Source", Degradation: DegradeSkip},
	{Statistic: StatCategory, Column: domain.ColumnBusinessUnit, Label: "Business Unit", Degradation: DegradeSkip},
	{Statistic: StatCategory, Column: domain.ColumnAccountType, Label: "Account Type", Degradation: DegradeSkip},
}

// Aggregator computes summary statistics and category counts over a
// cleaned dataset.
type Aggregator struct {
	logger *slog.Logger
}

// NewAggregator creates an aggregator.
func NewAggregator(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{logger: logger}
}

// ComputeSummary derives the summary statistics for ds. Statistics whose
// column is absent degrade according to SummaryRules.
func (a *Aggregator) ComputeSummary(ctx context.Context, ds *domain.Dataset) domain.SummaryStats {
	stats := domain.SummaryStats{
		RowCount:    ds.Len(),
		TotalAmount: decimal.Zero,
	}

	for _, rule := range SummaryRules {
		if !rule.Applies(ds) {
			a.logger.DebugContext(ctx, "Column missing, statistic degraded",
				slog.String("statistic", rule.Statistic),
				slog.String("column", rule.Column))
			continue
		}
		switch rule.Statistic {
		case StatDateRange:
			stats.DateRange = dateRange(ds.Column(rule.Column))
		case StatTotalAmount:
			stats.TotalAmount = totalAmount(ds.Column(rule.Column))
		case StatUniqueGL:
			stats.UniqueAccountCount = distinctCount(ds.Column(rule.Column))
		}
	}
	return stats
}

// ComputeCategoryCounts returns one breakdown per category column present
// in ds, in CategoryRules order.
func (a *Aggregator) ComputeCategoryCounts(ctx context.Context, ds *domain.Dataset) []domain.CategoryCount {
	var counts []domain.CategoryCount
	for _, rule := range CategoryRules {
		if !rule.Applies(ds) {
			continue
		}
		counts = append(counts, CountCategory(rule, ds))
	}
	a.logger.DebugContext(ctx, "Category counts computed", slog.Int("breakdowns", len(counts)))
	return counts
}

// CountCategory counts rows per distinct value of rule.Column. Blank and
// empty values share the BlankCategory bucket. Buckets are ordered by count
// descending; ties keep first-seen order.
func CountCategory(rule FieldRule, ds *domain.Dataset) domain.CategoryCount {
	index := make(map[string]int)
	var buckets []domain.CategoryBucket
	for _, v := range ds.Column(rule.Column) {
		key, label := v.Key(), v.String()
		if v.IsBlank() {
			key, label = domain.BlankCategory, domain.BlankCategory
		}
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, domain.CategoryBucket{Label: label})
		}
		buckets[i].Count++
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Count > buckets[j].Count
	})
	return domain.CategoryCount{Column: rule.Column, Label: rule.Label, Buckets: buckets}
}

// dateRange returns the min and max date values, or nil when the column
// holds no dates.
func dateRange(values []domain.Value) *domain.DateRange {
	var r *domain.DateRange
	for _, v := range values {
		if v.Kind != domain.KindDate {
			continue
		}
		if r == nil {
			r = &domain.DateRange{Min: v, Max: v}
			continue
		}
		if v.Time.Before(r.Min.Time) {
			r.Min = v
		}
		if v.Time.After(r.Max.Time) {
			r.Max = v
		}
	}
	return r
}

// totalAmount sums numeric values; anything else is skipped.
func totalAmount(values []domain.Value) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		if v.Kind == domain.KindNumber {
			total = total.Add(v.Number)
		}
	}
	return total
}

// distinctCount counts distinct non-blank values.
func distinctCount(values []domain.Value) int {
	seen := make(map[string]struct{})
	for _, v := range values {
		if v.IsBlank() {
			continue
		}
		seen[v.Key()] = struct{}{}
	}
	return len(seen)
}
