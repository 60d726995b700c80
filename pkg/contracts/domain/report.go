package domain

import "time"

// QualityReport records how many rows and fields were altered or dropped by
// one cleaning run. It is immutable after the cleaner returns it; callers
// must not rely on its accuracy if they mutate the catalog afterward.
type QualityReport struct {
	RunID       string    `json:"run_id"`
	Source      string    `json:"source"`
	GeneratedAt time.Time `json:"generated_at"`

	InputRows  int `json:"input_rows"`
	OutputRows int `json:"output_rows"`

	DroppedMissingRequired int `json:"dropped_missing_required"`
	DroppedUnknownType     int `json:"dropped_unknown_type"`

	ImputedDirectors int `json:"imputed_directors"`
	ImputedCast      int `json:"imputed_cast"`
	ImputedCountries int `json:"imputed_countries"`

	UnparsableDates     int `json:"unparsable_dates"`
	UnparsableDurations int `json:"unparsable_durations"`
}

// DroppedRows returns the total number of rows removed during cleaning.
func (r *QualityReport) DroppedRows() int {
	return r.DroppedMissingRequired + r.DroppedUnknownType
}

// ImputedFields returns the total number of sentinel substitutions.
func (r *QualityReport) ImputedFields() int {
	return r.ImputedDirectors + r.ImputedCast + r.ImputedCountries
}
