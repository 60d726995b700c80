package anomaly

import (
	"fmt"

	"cataloglens/internal/errors"
	"cataloglens/internal/stats"
	"cataloglens/pkg/contracts/domain"
)

// DefaultIQRMultiplier is the stock fence multiplier k for
// [Q1 - k*IQR, Q3 + k*IQR].
const DefaultIQRMultiplier = 1.5

// IQRDetector flags values outside the Tukey fences of a column.
type IQRDetector struct {
	multiplier float64
}

// NewIQR creates an IQR detector; a non-positive multiplier falls back to
// the default.
func NewIQR(multiplier float64) *IQRDetector {
	if multiplier <= 0 {
		multiplier = DefaultIQRMultiplier
	}
	return &IQRDetector{multiplier: multiplier}
}

// Method implements Detector.
func (d *IQRDetector) Method() string {
	return domain.MethodIQR
}

// Bounds implements Detector.
func (d *IQRDetector) Bounds(values []float64) (domain.Bounds, error) {
	if len(values) == 0 {
		return domain.Bounds{}, errors.NewStatisticsError("no observations for IQR bounds")
	}
	q1 := stats.Quantile(values, 0.25)
	q3 := stats.Quantile(values, 0.75)
	iqr := q3 - q1
	return domain.Bounds{
		Lower: q1 - d.multiplier*iqr,
		Upper: q3 + d.multiplier*iqr,
	}, nil
}

// Score implements Detector. The score is the distance beyond the nearest
// fence in IQR units, signed, and zero inside the fences. A zero-IQR column
// scores everything zero.
func (d *IQRDetector) Score(values []float64) ([]float64, error) {
	bounds, err := d.Bounds(values)
	if err != nil {
		return nil, err
	}
	iqr := (bounds.Upper - bounds.Lower) / (1 + 2*d.multiplier)

	scores := make([]float64, len(values))
	if iqr == 0 {
		return scores, nil
	}
	for i, v := range values {
		switch {
		case v < bounds.Lower:
			scores[i] = (v - bounds.Lower) / iqr
		case v > bounds.Upper:
			scores[i] = (v - bounds.Upper) / iqr
		}
	}
	return scores, nil
}

// Detect implements Detector.
func (d *IQRDetector) Detect(column string, ids []string, values []float64) ([]domain.Anomaly, error) {
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
	for i, v := range values {
		if bounds.Contains(v) {
			continue
		}
		anomalies = append(anomalies, domain.Anomaly{
			ID:      ids[i],
			Column:  column,
			Value:   v,
			Method:  d.Method(),
			Score:   scores[i],
			Bounds:  bounds,
			Crossed: crossed(v, bounds),
		})
	}
	return anomalies, nil
}
