package anomaly

import (
	"fmt"

	"cataloglens/internal/errors"
	"cataloglens/internal/stats"
	"cataloglens/pkg/contracts/domain"
)

// DefaultZScoreThreshold is the stock absolute-score threshold.
const DefaultZScoreThreshold = 3.0

// minZScoreObservations is the smallest column the z detector accepts: the
// leave-one-out deviation needs at least two remaining values.
const minZScoreObservations = 3

// ZScoreDetector flags values whose standard score exceeds a threshold.
// Each value is scored against the mean and sample deviation of the
// remaining values (leave-one-out): a plain same-sample score is capped at
// (n-1)/sqrt(n), so a single extreme value masks itself in small columns.
// The leave-one-out score removes the masking and converges to the plain
// score as the column grows.
type ZScoreDetector struct {
	threshold float64
}

// NewZScore creates a z-score detector; a non-positive threshold falls back
// to the default.
func NewZScore(threshold float64) *ZScoreDetector {
	if threshold <= 0 {
		threshold = DefaultZScoreThreshold
	}
	return &ZScoreDetector{threshold: threshold}
}

// Method implements Detector.
func (d *ZScoreDetector) Method() string {
	return domain.MethodZScore
}

// Bounds implements Detector. The reported interval is the full-sample
// mean +/- threshold*stddev band; a degenerate column has no meaningful
// band and returns a STATISTICS error.
func (d *ZScoreDetector) Bounds(values []float64) (domain.Bounds, error) {
	if len(values) < minZScoreObservations {
		return domain.Bounds{}, errors.NewStatisticsError(
			fmt.Sprintf("z-score needs at least %d observations, got %d", minZScoreObservations, len(values)))
	}
	std := stats.SampleStdDev(values)
	if std == 0 {
		return domain.Bounds{}, errors.NewStatisticsError("zero standard deviation, z-score undefined")
	}
	mean := stats.Mean(values)
	return domain.Bounds{
		Lower: mean - d.threshold*std,
		Upper: mean + d.threshold*std,
	}, nil
}

// Score implements Detector. Values whose leave-one-out deviation is zero
// score zero rather than dividing by zero.
func (d *ZScoreDetector) Score(values []float64) ([]float64, error) {
	if len(values) < minZScoreObservations {
		return nil, errors.NewStatisticsError(
			fmt.Sprintf("z-score needs at least %d observations, got %d", minZScoreObservations, len(values)))
	}

	scores := make([]float64, len(values))
	rest := make([]float64, 0, len(values)-1)
	for i, v := range values {
		rest = rest[:0]
		rest = append(rest, values[:i]...)
		rest = append(rest, values[i+1:]...)

		std := stats.SampleStdDev(rest)
		if std == 0 {
			continue
		}
		scores[i] = (v - stats.Mean(rest)) / std
	}
	return scores, nil
}

// Detect implements Detector. A degenerate (zero-deviation) column reports
// no anomalies; the error tells the caller the check was skipped.
func (d *ZScoreDetector) Detect(column string, ids []string, values []float64) ([]domain.Anomaly, error) {
	if len(ids) != len(values) {
		return nil, errors.NewStatisticsError(
			fmt.Sprintf("ids and values length mismatch for column %s", column))
	}
	bounds, err := d.Bounds(values)
	if err != nil {
		return nil, err
	}
	scores, err := d.Score(values)
	if err != nil {
		return nil, err
	}

	var anomalies []domain.Anomaly
	for i, score := range scores {
		if score < -d.threshold || score > d.threshold {
			side := domain.BoundUpper
			if score < 0 {
				side = domain.BoundLower
			}
			anomalies = append(anomalies, domain.Anomaly{
				ID:      ids[i],
				Column:  column,
				Value:   values[i],
				Method:  d.Method(),
				Score:   score,
				Bounds:  bounds,
				Crossed: side,
			})
		}
	}
	return anomalies, nil
}
