package domain

import (
	"strings"
	"time"
)

// ContentType identifies the kind of catalog entry.
type ContentType string

const (
	ContentTypeMovie  ContentType = "Movie"
	ContentTypeTVShow ContentType = "TV Show"
)

// Canonical column names of the raw catalog file. The loader validates the
// header against RequiredColumns from config; these constants are the full
// set a complete catalog export carries.
const (
	ColumnShowID      = "show_id"
	ColumnType        = "type"
	ColumnTitle       = "title"
	ColumnDirector    = "director"
	ColumnCast        = "cast"
	ColumnCountry     = "country"
	ColumnDateAdded   = "date_added"
	ColumnReleaseYear = "release_year"
	ColumnRating      = "rating"
	ColumnDuration    = "duration"
	ColumnGenres      = "listed_in"
	ColumnDescription = "description"
)

// CatalogColumns is the canonical column order for catalog files, both raw
// input and cleaned output.
var CatalogColumns = []string{
	ColumnShowID,
	ColumnType,
	ColumnTitle,
	ColumnDirector,
	ColumnCast,
	ColumnCountry,
	ColumnDateAdded,
	ColumnReleaseYear,
	ColumnRating,
	ColumnDuration,
	ColumnGenres,
	ColumnDescription,
}

// Record is one raw catalog row exactly as loaded, all fields as strings.
// Records are never mutated after loading; the cleaner derives Titles from
// them and the original dataset stays available for audit.
type Record struct {
	ShowID      string `json:"show_id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Director    string `json:"director"`
	Cast        string `json:"cast"`
	Country     string `json:"country"`
	DateAdded   string `json:"date_added"`
	ReleaseYear string `json:"release_year"`
	Rating      string `json:"rating"`
	Duration    string `json:"duration"`
	Genres      string `json:"listed_in"`
	Description string `json:"description"`
}

// Dataset is an ordered sequence of raw records plus the header actually
// present in the source file.
type Dataset struct {
	Source  string   `json:"source"`
	Columns []string `json:"columns"`
	Records []Record `json:"records"`
}

// RowCount returns the number of data rows (header excluded).
func (d *Dataset) RowCount() int {
	return len(d.Records)
}

// ColumnCount returns the number of columns in the source header.
func (d *Dataset) ColumnCount() int {
	return len(d.Columns)
}

// Title is one cleaned catalog entry. Required fields (Title, Type,
// ReleaseYear) are always present after cleaning; optional fields use nil or
// sentinel values as described in the cleaning policy.
type Title struct {
	ShowID      string      `json:"show_id"`
	Type        ContentType `json:"type"`
	Title       string      `json:"title"`
	Director    string      `json:"director"`
	Cast        []string    `json:"cast"`
	Country     []string    `json:"country"`
	DateAdded   *time.Time  `json:"date_added,omitempty"`
	YearAdded   int         `json:"year_added,omitempty"`
	MonthAdded  string      `json:"month_added,omitempty"`
	ReleaseYear int         `json:"release_year"`
	Rating      string      `json:"rating,omitempty"`
	Duration    *int        `json:"duration,omitempty"`
	Genres      []string    `json:"listed_in"`
	Description string      `json:"description"`
}

// Catalog is the cleaned dataset. It is read-only for the statistics and
// anomaly stages.
type Catalog struct {
	Titles []Title `json:"titles"`
}

// Len returns the number of titles in the catalog.
func (c *Catalog) Len() int {
	return len(c.Titles)
}

// MovieMinutes returns identifiers and duration values (in minutes) for all
// movies with a parsed duration.
func (c *Catalog) MovieMinutes() (ids []string, values []float64) {
	for _, t := range c.Titles {
		if t.Type == ContentTypeMovie && t.Duration != nil {
			ids = append(ids, t.ShowID)
			values = append(values, float64(*t.Duration))
		}
	}
	return ids, values
}

// Seasons returns identifiers and season counts for all TV shows with a
// parsed duration.
func (c *Catalog) Seasons() (ids []string, values []float64) {
	for _, t := range c.Titles {
		if t.Type == ContentTypeTVShow && t.Duration != nil {
			ids = append(ids, t.ShowID)
			values = append(values, float64(*t.Duration))
		}
	}
	return ids, values
}

// ReleaseYears returns identifiers and release years for every title.
func (c *Catalog) ReleaseYears() (ids []string, values []float64) {
	for _, t := range c.Titles {
		ids = append(ids, t.ShowID)
		values = append(values, float64(t.ReleaseYear))
	}
	return ids, values
}

// SplitList splits a comma-separated multi-value field (cast, country,
// listed_in) into trimmed parts, dropping empties.
func SplitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// JoinList is the inverse of SplitList for the cleaned CSV output.
func JoinList(values []string) string {
	return strings.Join(values, ", ")
}
