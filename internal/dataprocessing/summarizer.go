package dataprocessing

import (
	"context"
	"log/slog"

	"tabinspect/internal/dataset"
	"tabinspect/pkg/contracts/domain"
)

// Summary is everything the report needs beyond the raw dataset
type Summary struct {
	Numeric      []domain.NumericSummary
	Categorical  []domain.CategoricalSummary
	Missing      []domain.MissingCount
	TotalMissing int
}

// Summarizer computes describe-style statistics and missing-value counts
type Summarizer struct {
	logger *slog.Logger
}

// NewSummarizer creates a summarizer
func NewSummarizer(logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{logger: logger.With("component", "summarizer")}
}

// Summarize builds the summary for ds. Only numeric columns get numeric
// statistics; when a dataset has none, the non-numeric columns are
// summarised categorically instead.
func (s *Summarizer) Summarize(ctx context.Context, ds *dataset.Dataset) *Summary {
	summary := &Summary{
		Numeric: DescribeNumeric(ds),
	}
	if len(summary.Numeric) == 0 && ds.NumColumns() > 0 {
		summary.Categorical = DescribeCategorical(ds)
	}
	summary.Missing, summary.TotalMissing = MissingCounts(ds)

	s.logger.DebugContext(ctx, "dataset summarised",
		slog.Int("numeric_columns", len(summary.Numeric)),
		slog.Int("categorical_columns", len(summary.Categorical)),
		slog.Int("total_missing", summary.TotalMissing))

	return summary
}

// DescribeNumeric returns count, mean, std, min, quartiles and max for
// every int64 and float64 column, in column order.
func DescribeNumeric(ds *dataset.Dataset) []domain.NumericSummary {
	var out []domain.NumericSummary
	for _, col := range ds.Columns() {
		if !col.Kind.IsNumeric() {
			continue
		}
		d := describeValues(col.Floats())
		out = append(out, domain.NumericSummary{
			Column: col.Name,
			Count:  d.count,
			Mean:   domain.Stat(d.mean),
			Std:    domain.Stat(d.std),
			Min:    domain.Stat(d.min),
			Q25:    domain.Stat(d.q25),
			Median: domain.Stat(d.q50),
			Q75:    domain.Stat(d.q75),
			Max:    domain.Stat(d.max),
		})
	}
	return out
}

// DescribeCategorical returns count, unique, top and freq for every
// non-numeric column. Ties for top go to the value seen first.
func DescribeCategorical(ds *dataset.Dataset) []domain.CategoricalSummary {
	var out []domain.CategoricalSummary
	for _, col := range ds.Columns() {
		if col.Kind.IsNumeric() {
			continue
		}

		counts := make(map[string]int)
		var order []string
		for i := 0; i < col.Len(); i++ {
			if col.IsMissing(i) {
				continue
			}
			v := col.Format(i)
			if counts[v] == 0 {
				order = append(order, v)
			}
			counts[v]++
		}

		cs := domain.CategoricalSummary{Column: col.Name, Unique: len(order)}
		for _, v := range order {
			cs.Count += counts[v]
			if counts[v] > cs.Freq {
				cs.Top, cs.Freq = v, counts[v]
			}
		}
		out = append(out, cs)
	}
	return out
}

// MissingCounts returns the per-column missing counts in column order and
// their total.
func MissingCounts(ds *dataset.Dataset) ([]domain.MissingCount, int) {
	out := make([]domain.MissingCount, 0, ds.NumColumns())
	total := 0
	for _, col := range ds.Columns() {
		n := col.MissingCount()
		out = append(out, domain.MissingCount{Column: col.Name, Count: n})
		total += n
	}
	return out, total
}
