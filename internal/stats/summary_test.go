package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   Summary
	}{
		{
			name: "empty",
			want: Summary{},
		},
		{
			name:   "single",
			values: []float64{4},
			want:   Summary{Count: 1, Min: 4, Max: 4, Mean: 4, P50: 4, P90: 4},
		},
		{
			name:   "unsorted",
			values: []float64{9, 1, 5, 3, 7},
			want:   Summary{Count: 5, Min: 1, Max: 9, Mean: 5, StdDev: math.Sqrt(10), P50: 5, P90: 9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.values)
			assert.Equal(t, tt.want.Count, got.Count)
			assert.InDelta(t, tt.want.Min, got.Min, 1e-9)
			assert.InDelta(t, tt.want.Max, got.Max, 1e-9)
			assert.InDelta(t, tt.want.Mean, got.Mean, 1e-9)
			assert.InDelta(t, tt.want.StdDev, got.StdDev, 1e-9)
			assert.InDelta(t, tt.want.P50, got.P50, 1e-9)
			assert.InDelta(t, tt.want.P90, got.P90, 1e-9)
		})
	}
}

func TestSummarizeDoesNotReorderInput(t *testing.T) {
	in := []float64{3, 1, 2}
	Summarize(in)
	assert.Equal(t, []float64{3, 1, 2}, in)
}

func TestPercentileClamps(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}
	assert.Equal(t, 1.0, Percentile(sorted, -10))
	assert.Equal(t, 4.0, Percentile(sorted, 250))
	assert.Zero(t, Percentile(nil, 50))
}

func TestCorrelation(t *testing.T) {
	assert.InDelta(t, 1.0, Correlation([]float64{1, 2, 3}, []float64{2, 4, 6}), 1e-9)
	assert.InDelta(t, -1.0, Correlation([]float64{1, 2, 3}, []float64{3, 2, 1}), 1e-9)
	assert.Zero(t, Correlation([]float64{1, 2, 3}, []float64{5, 5, 5}))
	assert.Zero(t, Correlation([]float64{1}, []float64{1}))
	assert.Zero(t, Correlation([]float64{1, 2}, []float64{1}))
}
