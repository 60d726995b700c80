// Package anomaly flags outliers in numeric columns. Two methods implement
// a shared capability set (per-record score, column bounds) so callers can
// union or compare their outputs without caring which produced a flag.
// Preconditions that do not hold (degenerate variance, too few observations)
// surface as STATISTICS errors; callers skip the check and keep the run.
package anomaly

import (
	"cataloglens/pkg/contracts/domain"
)

// Detector is the capability set both detection methods implement.
type Detector interface {
	// Method returns the detection method identifier.
	Method() string
	// Score returns a per-record anomaly score for the column; a record is
	// anomalous when its absolute score exceeds the method's threshold.
	Score(values []float64) ([]float64, error)
	// Bounds returns the acceptance interval for the column.
	Bounds(values []float64) (domain.Bounds, error)
	// Detect flags the anomalous values of one column. ids and values are
	// parallel slices.
	Detect(column string, ids []string, values []float64) ([]domain.Anomaly, error)
}

// crossed names the bound side a value violated.
func crossed(v float64, b domain.Bounds) string {
	if v < b.Lower {
		return domain.BoundLower
	}
	return domain.BoundUpper
}
