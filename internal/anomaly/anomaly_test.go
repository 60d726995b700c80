package anomaly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cataloglens/internal/errors"
	"cataloglens/pkg/contracts/domain"
)

var (
	sampleIDs    = []string{"s1", "s2", "s3", "s4", "s5", "s6"}
	sampleValues = []float64{1, 2, 3, 4, 5, 100}
)

func TestIQRDetector_FlagsExtremeValue(t *testing.T) {
	d := NewIQR(1.5)
	require.Equal(t, domain.MethodIQR, d.Method())

	anomalies, err := d.Detect(domain.NumericMovieMinutes, sampleIDs, sampleValues)
	require.NoError(t, err)

	require.Len(t, anomalies, 1)
	a := anomalies[0]
	assert.Equal(t, "s6", a.ID)
	assert.Equal(t, 100.0, a.Value)
	assert.Equal(t, domain.BoundUpper, a.Crossed)
	assert.InDelta(t, -1.5, a.Bounds.Lower, 1e-9)
	assert.InDelta(t, 8.5, a.Bounds.Upper, 1e-9)
	assert.Greater(t, a.Score, 0.0)
}

func TestIQRDetector_Bounds(t *testing.T) {
	d := NewIQR(1.5)
	bounds, err := d.Bounds(sampleValues)
	require.NoError(t, err)

	// Q1 = 2.25, Q3 = 4.75, IQR = 2.5
	assert.InDelta(t, -1.5, bounds.Lower, 1e-9)
	assert.InDelta(t, 8.5, bounds.Upper, 1e-9)
}

func TestIQRDetector_LowOutlier(t *testing.T) {
	d := NewIQR(1.5)
	anomalies, err := d.Detect(domain.NumericReleaseYear,
		[]string{"a", "b", "c", "d", "e", "f"},
		[]float64{-100, 96, 97, 98, 99, 100})
	require.NoError(t, err)

	require.Len(t, anomalies, 1)
	assert.Equal(t, "a", anomalies[0].ID)
	assert.Equal(t, domain.BoundLower, anomalies[0].Crossed)
	assert.Less(t, anomalies[0].Score, 0.0)
}

func TestIQRDetector_ConstantColumnNoAnomalies(t *testing.T) {
	d := NewIQR(1.5)
	anomalies, err := d.Detect(domain.NumericSeasons,
		[]string{"a", "b", "c", "d"}, []float64{5, 5, 5, 5})
	require.NoError(t, err)
	assert.Empty(t, anomalies)
}

func TestIQRDetector_EmptyColumn(t *testing.T) {
	d := NewIQR(1.5)
	_, err := d.Detect(domain.NumericSeasons, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeStatistics))
}

func TestIQRDetector_DefaultMultiplier(t *testing.T) {
	assert.Equal(t, DefaultIQRMultiplier, NewIQR(0).multiplier)
	assert.Equal(t, 2.0, NewIQR(2.0).multiplier)
}

func TestZScoreDetector_FlagsExtremeValue(t *testing.T) {
	d := NewZScore(3.0)
	require.Equal(t, domain.MethodZScore, d.Method())

	anomalies, err := d.Detect(domain.NumericMovieMinutes, sampleIDs, sampleValues)
	require.NoError(t, err)

	require.Len(t, anomalies, 1)
	a := anomalies[0]
	assert.Equal(t, "s6", a.ID)
	assert.Equal(t, 100.0, a.Value)
	assert.Equal(t, domain.BoundUpper, a.Crossed)
	assert.Greater(t, a.Score, 3.0)
}

func TestZScoreDetector_Score(t *testing.T) {
	d := NewZScore(3.0)
	scores, err := d.Score(sampleValues)
	require.NoError(t, err)
	require.Len(t, scores, 6)

	// 100 against the rest: mean 3, sample stddev sqrt(2.5)
	assert.InDelta(t, 61.35, scores[5], 0.01)
	// inliers stay well under the threshold
	for _, s := range scores[:5] {
		assert.Less(t, s, 1.0)
		assert.Greater(t, s, -1.0)
	}
}

func TestZScoreDetector_ConstantColumnReportsNothing(t *testing.T) {
	d := NewZScore(3.0)
	anomalies, err := d.Detect(domain.NumericSeasons,
		[]string{"a", "b", "c", "d"}, []float64{5, 5, 5, 5})

	// degenerate variance: check skipped, zero anomalies, no panic
	assert.Empty(t, anomalies)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeStatistics))
}

func TestZScoreDetector_TooFewObservations(t *testing.T) {
	d := NewZScore(3.0)
	_, err := d.Detect(domain.NumericSeasons, []string{"a", "b"}, []float64{1, 2})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeStatistics))
}

func TestZScoreDetector_Bounds(t *testing.T) {
	d := NewZScore(2.0)
	bounds, err := d.Bounds([]float64{1, 2, 3, 4, 5})
	require.NoError(t, err)

	// mean 3, sample stddev sqrt(2.5)
	assert.InDelta(t, 3-2*1.5811, bounds.Lower, 1e-3)
	assert.InDelta(t, 3+2*1.5811, bounds.Upper, 1e-3)
}

func TestDetectors_LengthMismatch(t *testing.T) {
	for _, d := range []Detector{NewIQR(1.5), NewZScore(3.0)} {
		_, err := d.Detect(domain.NumericSeasons, []string{"a"}, []float64{1, 2, 3})
		require.Error(t, err, d.Method())
		assert.True(t, errors.IsType(err, errors.ErrTypeStatistics), d.Method())
	}
}

func TestDetectors_AgreeOnExtremeValue(t *testing.T) {
	// both methods flag the same record; the union carries both flags
	detectors := []Detector{NewIQR(1.5), NewZScore(3.0)}

	var union []domain.Anomaly
	for _, d := range detectors {
		anomalies, err := d.Detect(domain.NumericMovieMinutes, sampleIDs, sampleValues)
		require.NoError(t, err)
		union = append(union, anomalies...)
	}

	require.Len(t, union, 2)
	assert.Equal(t, union[0].ID, union[1].ID)
	assert.NotEqual(t, union[0].Method, union[1].Method)
}
