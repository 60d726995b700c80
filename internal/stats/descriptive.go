// Package stats computes descriptive statistics, categorical distributions,
// and temporal aggregates over a cleaned catalog. Conventions, pinned by
// tests: sample standard deviation (n-1), population moment skewness and
// excess kurtosis, linear-interpolation percentiles. Null values never reach
// this package; callers pass only present values.
package stats

import (
	"math"
	"sort"

	"cataloglens/pkg/contracts/domain"
)

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// SampleStdDev returns the sample standard deviation (n-1 denominator).
// Fewer than two observations yield 0.
func SampleStdDev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	mean := Mean(values)
	var sum float64
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(n-1))
}

// Quantile returns the q-th quantile (0 <= q <= 1) of values using linear
// interpolation between closest ranks, matching the numpy/pandas default.
func Quantile(values []float64, q float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[n-1]
	}

	pos := q * float64(n-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}
	frac := pos - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}

// Median returns the 0.5 quantile.
func Median(values []float64) float64 {
	return Quantile(values, 0.5)
}

// centralMoment returns the k-th central moment with population (n)
// denominator.
func centralMoment(values []float64, k int) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := Mean(values)
	var sum float64
	for _, v := range values {
		sum += math.Pow(v-mean, float64(k))
	}
	return sum / float64(len(values))
}

// Skewness returns the population moment skewness g1 = m3 / m2^1.5. A
// degenerate distribution yields 0.
func Skewness(values []float64) float64 {
	m2 := centralMoment(values, 2)
	if m2 == 0 {
		return 0
	}
	return centralMoment(values, 3) / math.Pow(m2, 1.5)
}

// Kurtosis returns the population excess kurtosis g2 = m4 / m2^2 - 3. A
// degenerate distribution yields 0.
func Kurtosis(values []float64) float64 {
	m2 := centralMoment(values, 2)
	if m2 == 0 {
		return 0
	}
	return centralMoment(values, 4)/(m2*m2) - 3
}

// Describe computes the full descriptive block for one numeric column.
func Describe(column string, values []float64, percentiles []int) domain.Descriptive {
	d := domain.Descriptive{
		Column: column,
		Count:  len(values),
	}
	if len(values) == 0 {
		return d
	}

	d.Mean = Mean(values)
	d.Median = Median(values)
	d.StdDev = SampleStdDev(values)
	d.Skewness = Skewness(values)
	d.Kurtosis = Kurtosis(values)

	d.Min = values[0]
	d.Max = values[0]
	for _, v := range values[1:] {
		if v < d.Min {
			d.Min = v
		}
		if v > d.Max {
			d.Max = v
		}
	}

	d.Percentiles = make([]domain.PercentileValue, 0, len(percentiles))
	for _, p := range percentiles {
		d.Percentiles = append(d.Percentiles, domain.PercentileValue{
			Percentile: p,
			Value:      Quantile(values, float64(p)/100),
		})
	}
	return d
}
