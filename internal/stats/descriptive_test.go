package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cataloglens/pkg/contracts/domain"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 5.0, Mean([]float64{2, 4, 4, 4, 5, 5, 7, 9}))
	assert.Equal(t, 0.0, Mean(nil))
}

func TestSampleStdDev(t *testing.T) {
	// sum of squared deviations 32, sample variance 32/7
	assert.InDelta(t, 2.13809, SampleStdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-5)
	assert.Equal(t, 0.0, SampleStdDev([]float64{5}))
	assert.Equal(t, 0.0, SampleStdDev([]float64{5, 5, 5, 5}))
}

func TestQuantile_LinearInterpolation(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}

	assert.Equal(t, 2.0, Quantile(values, 0.25))
	assert.Equal(t, 3.0, Quantile(values, 0.5))
	assert.Equal(t, 4.0, Quantile(values, 0.75))
	assert.InDelta(t, 4.6, Quantile(values, 0.9), 1e-9)

	// interpolation between ranks
	assert.InDelta(t, 1.75, Quantile([]float64{1, 2, 3, 4}, 0.25), 1e-9)

	// bounds
	assert.Equal(t, 1.0, Quantile(values, 0))
	assert.Equal(t, 5.0, Quantile(values, 1))

	// input order must not matter
	assert.Equal(t, 3.0, Quantile([]float64{5, 1, 4, 2, 3}, 0.5))
}

func TestMedian_EvenCount(t *testing.T) {
	assert.Equal(t, 4.5, Median([]float64{2, 4, 4, 4, 5, 5, 7, 9}))
}

func TestSkewness(t *testing.T) {
	// m2 = 4, m3 = 5.25 for this sample
	assert.InDelta(t, 0.65625, Skewness([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-9)
	assert.Equal(t, 0.0, Skewness([]float64{5, 5, 5}))

	// symmetric distribution has zero skew
	assert.InDelta(t, 0.0, Skewness([]float64{1, 2, 3, 4, 5}), 1e-9)
}

func TestKurtosis(t *testing.T) {
	// m4 = 44.5, m2 = 4: excess kurtosis 44.5/16 - 3
	assert.InDelta(t, -0.21875, Kurtosis([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-9)
	assert.Equal(t, 0.0, Kurtosis([]float64{5, 5, 5}))
}

func TestDescribe(t *testing.T) {
	d := Describe(domain.NumericMovieMinutes, []float64{2, 4, 4, 4, 5, 5, 7, 9}, []int{25, 50, 75, 90})

	assert.Equal(t, domain.NumericMovieMinutes, d.Column)
	assert.Equal(t, 8, d.Count)
	assert.Equal(t, 5.0, d.Mean)
	assert.Equal(t, 4.5, d.Median)
	assert.Equal(t, 2.0, d.Min)
	assert.Equal(t, 9.0, d.Max)
	assert.InDelta(t, 2.13809, d.StdDev, 1e-5)
	assert.InDelta(t, 0.65625, d.Skewness, 1e-9)
	assert.InDelta(t, -0.21875, d.Kurtosis, 1e-9)

	require.Len(t, d.Percentiles, 4)
	assert.Equal(t, 25, d.Percentiles[0].Percentile)
	assert.Equal(t, 4.0, d.Percentiles[0].Value)
	assert.Equal(t, 50, d.Percentiles[1].Percentile)
	assert.Equal(t, 4.5, d.Percentiles[1].Value)
}

func TestDescribe_Empty(t *testing.T) {
	d := Describe(domain.NumericSeasons, nil, []int{25, 50})
	assert.Equal(t, 0, d.Count)
	assert.Empty(t, d.Percentiles)
}
