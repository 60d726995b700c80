package domain

import "time"

// Numeric column names produced by the statistics engine. Durations are
// split by content type so minutes and season counts never share a
// denominator.
const (
	NumericReleaseYear   = "release_year"
	NumericMovieMinutes  = "duration_min"
	NumericSeasons       = "seasons"
	NumericGenreTitles   = "genre_titles"
	NumericCountryTitles = "country_titles"
)

// PercentileValue pairs a percentile rank with its computed value.
type PercentileValue struct {
	Percentile int     `json:"percentile"`
	Value      float64 `json:"value"`
}

// Descriptive holds the descriptive statistics of one numeric column.
// Conventions: sample standard deviation (n-1), population moment skewness
// and excess kurtosis, linear-interpolation percentiles. Null values are
// excluded before computation.
type Descriptive struct {
	Column      string            `json:"column"`
	Count       int               `json:"count"`
	Mean        float64           `json:"mean"`
	Median      float64           `json:"median"`
	StdDev      float64           `json:"std_dev"`
	Min         float64           `json:"min"`
	Max         float64           `json:"max"`
	Skewness    float64           `json:"skewness"`
	Kurtosis    float64           `json:"kurtosis"`
	Percentiles []PercentileValue `json:"percentiles"`
}

// Frequency is one category's count and share within a distribution.
type Frequency struct {
	Value string  `json:"value"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

// Distribution holds category frequencies for one categorical column,
// ordered by descending count with ties kept in first-seen order.
type Distribution struct {
	Column      string      `json:"column"`
	Total       int         `json:"total"`
	Unique      int         `json:"unique"`
	Frequencies []Frequency `json:"frequencies"`
}

// YearCount is one year's title count, used for release-year and
// year-added aggregates.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// MonthCount is one calendar month's title count across all years.
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// RatingBucket is the rating composition of one year-added bucket.
type RatingBucket struct {
	Label  string      `json:"label"`
	Total  int         `json:"total"`
	Shares []Frequency `json:"shares"`
}

// Temporal holds the year-over-year aggregates. Titles without a parsed
// date-added are excluded from the year-added, month, and bucket series.
type Temporal struct {
	ByReleaseYear []YearCount    `json:"by_release_year"`
	ByYearAdded   []YearCount    `json:"by_year_added"`
	ByMonthAdded  []MonthCount   `json:"by_month_added"`
	RatingBuckets []RatingBucket `json:"rating_buckets"`
}

// CountrySplit is the movie/show split for one producing country.
type CountrySplit struct {
	Country string `json:"country"`
	Movies  int    `json:"movies"`
	Shows   int    `json:"shows"`
}

// Summary is the full statistical output of one analysis run over a cleaned
// catalog. It lives for a single run and is not persisted beyond the report
// files written by the exporter.
type Summary struct {
	RunID         string         `json:"run_id"`
	GeneratedAt   time.Time      `json:"generated_at"`
	TitleCount    int            `json:"title_count"`
	Descriptives  []Descriptive  `json:"descriptives"`
	Distributions []Distribution `json:"distributions"`
	Temporal      Temporal       `json:"temporal"`
	CountrySplits []CountrySplit `json:"country_splits"`
}

// Descriptive returns the descriptive block for a column, or nil.
func (s *Summary) Descriptive(column string) *Descriptive {
	for i := range s.Descriptives {
		if s.Descriptives[i].Column == column {
			return &s.Descriptives[i]
		}
	}
	return nil
}

// Distribution returns the distribution block for a column, or nil.
func (s *Summary) Distribution(column string) *Distribution {
	for i := range s.Distributions {
		if s.Distributions[i].Column == column {
			return &s.Distributions[i]
		}
	}
	return nil
}
