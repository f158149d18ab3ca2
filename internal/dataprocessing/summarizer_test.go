package dataprocessing

import (
	"context"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabinspect/internal/dataset"
	"tabinspect/pkg/contracts/domain"
)

func buildDataset(t *testing.T, header []string, records [][]string) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Build(header, records, nil)
	require.NoError(t, err)
	return ds
}

func TestSummarizer_Summarize(t *testing.T) {
	ds := buildDataset(t, []string{"id", "value"}, [][]string{{"1", "10.0"}, {"2", ""}})

	summary := NewSummarizer(slog.Default()).Summarize(context.Background(), ds)

	require.Len(t, summary.Numeric, 2)
	assert.Empty(t, summary.Categorical)
	assert.Equal(t, []domain.MissingCount{{Column: "id", Count: 0}, {Column: "value", Count: 1}}, summary.Missing)
	assert.Equal(t, 1, summary.TotalMissing)

	value := summary.Numeric[1]
	assert.Equal(t, "value", value.Column)
	assert.Equal(t, 1, value.Count)
	assert.InDelta(t, 10.0, float64(value.Mean), 1e-9)
	assert.True(t, value.Std.IsNaN(), "std of one value is undefined")
}

func TestDescribeNumeric(t *testing.T) {
	ds := buildDataset(t,
		[]string{"x", "label", "flag"},
		[][]string{{"1", "a", "true"}, {"2", "b", "false"}, {"3", "a", "true"}, {"4", "c", "true"}},
	)

	got := DescribeNumeric(ds)
	require.Len(t, got, 1, "only numeric columns are described")

	x := got[0]
	assert.Equal(t, "x", x.Column)
	assert.Equal(t, 4, x.Count)
	assert.InDelta(t, 2.5, float64(x.Mean), 1e-9)
	assert.InDelta(t, 1.2909944487358056, float64(x.Std), 1e-9)
	assert.InDelta(t, 1.0, float64(x.Min), 1e-9)
	assert.InDelta(t, 1.75, float64(x.Q25), 1e-9)
	assert.InDelta(t, 2.5, float64(x.Median), 1e-9)
	assert.InDelta(t, 3.25, float64(x.Q75), 1e-9)
	assert.InDelta(t, 4.0, float64(x.Max), 1e-9)
}

func TestDescribeNumeric_AllMissingColumn(t *testing.T) {
	ds := buildDataset(t, []string{"empty"}, [][]string{{""}, {"NA"}})

	got := DescribeNumeric(ds)
	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].Count)
	assert.True(t, got[0].Mean.IsNaN())
	assert.True(t, got[0].Min.IsNaN())
	assert.True(t, got[0].Q75.IsNaN())
}

func TestDescribeNumeric_Infinity(t *testing.T) {
	ds := buildDataset(t, []string{"x"}, [][]string{{"1"}, {"inf"}, {"inf"}})

	got := DescribeNumeric(ds)
	require.Len(t, got, 1)
	x := got[0]
	assert.Equal(t, 3, x.Count)
	assert.InDelta(t, 1.0, float64(x.Min), 1e-9)
	assert.True(t, math.IsInf(float64(x.Mean), 1))
	assert.True(t, math.IsInf(float64(x.Median), 1))
	assert.True(t, math.IsInf(float64(x.Q75), 1))
	assert.True(t, math.IsInf(float64(x.Max), 1))
	assert.False(t, x.Max.IsNaN())
	assert.True(t, x.Std.IsNaN())
}

func TestSummarize_CategoricalFallback(t *testing.T) {
	ds := buildDataset(t, []string{"city", "state"}, [][]string{
		{"Austin", "TX"}, {"Dallas", "TX"}, {"Austin", ""}, {"Boise", "ID"},
	})

	summary := NewSummarizer(nil).Summarize(context.Background(), ds)
	assert.Empty(t, summary.Numeric)
	require.Len(t, summary.Categorical, 2)

	assert.Equal(t, domain.CategoricalSummary{Column: "city", Count: 4, Unique: 3, Top: "Austin", Freq: 2}, summary.Categorical[0])
	assert.Equal(t, domain.CategoricalSummary{Column: "state", Count: 3, Unique: 2, Top: "TX", Freq: 2}, summary.Categorical[1])
	assert.Equal(t, 1, summary.TotalMissing)
}

func TestMissingCounts_NoMissing(t *testing.T) {
	ds := buildDataset(t, []string{"a", "b"}, [][]string{{"1", "x"}, {"2", "y"}})

	counts, total := MissingCounts(ds)
	assert.Equal(t, 0, total)
	assert.Len(t, counts, 2)
}

func TestQuantile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		q      float64
		want   float64
	}{
		{name: "single value", sorted: []float64{7}, q: 0.25, want: 7},
		{name: "exact rank", sorted: []float64{1, 2, 3, 4, 5}, q: 0.5, want: 3},
		{name: "interpolated", sorted: []float64{1, 2, 3, 4}, q: 0.75, want: 3.25},
		{name: "min", sorted: []float64{1, 2, 3}, q: 0, want: 1},
		{name: "max", sorted: []float64{1, 2, 3}, q: 1, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, quantile(tt.sorted, tt.q), 1e-9)
		})
	}

	assert.True(t, math.IsNaN(quantile(nil, 0.5)))
}

func TestSampleStd(t *testing.T) {
	assert.InDelta(t, 2.138089935299395, sampleStd([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-9)
	assert.True(t, math.IsNaN(sampleStd([]float64{1})))
	assert.True(t, math.IsNaN(mean(nil)))
}

func TestDescribeValues_DoesNotReorderInput(t *testing.T) {
	values := []float64{3, 1, 2}
	describeValues(values)
	assert.Equal(t, []float64{3, 1, 2}, values)
}
