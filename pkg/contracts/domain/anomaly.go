package domain

import "time"

// Detection method identifiers.
const (
	MethodIQR    = "iqr"
	MethodZScore = "zscore"
)

// Bound side crossed by an anomalous value.
const (
	BoundLower = "lower"
	BoundUpper = "upper"
)

// Bounds is the acceptance interval a detector derives from a column.
type Bounds struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Contains reports whether v lies inside the acceptance interval.
func (b Bounds) Contains(v float64) bool {
	return v >= b.Lower && v <= b.Upper
}

// Anomaly is one flagged value: the record (or category) it belongs to, the
// offending value, the method that flagged it, and the bound it crossed.
type Anomaly struct {
	ID      string  `json:"id"`
	Column  string  `json:"column"`
	Value   float64 `json:"value"`
	Method  string  `json:"method"`
	Score   float64 `json:"score"`
	Bounds  Bounds  `json:"bounds"`
	Crossed string  `json:"crossed"`
}

// SkippedCheck records a detector run that was skipped because its
// statistical precondition did not hold (degenerate variance, too few
// observations). Skips are reported, never raised.
type SkippedCheck struct {
	Column string `json:"column"`
	Method string `json:"method"`
	Reason string `json:"reason"`
}

// AnomalyReport is the combined outlier output of one analysis run.
type AnomalyReport struct {
	RunID       string         `json:"run_id"`
	GeneratedAt time.Time      `json:"generated_at"`
	Anomalies   []Anomaly      `json:"anomalies"`
	Skipped     []SkippedCheck `json:"skipped"`
}

// ByColumn returns the anomalies flagged for one column, any method.
func (r *AnomalyReport) ByColumn(column string) []Anomaly {
	var out []Anomaly
	for _, a := range r.Anomalies {
		if a.Column == column {
			out = append(out, a)
		}
	}
	return out
}
