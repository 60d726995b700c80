// Package cleaner applies the fixed cleaning sequence to a raw dataset:
// missing-value policy, date standardization, duration normalization, and
// content-type standardization, producing a cleaned catalog plus a quality
// report. Every step is idempotent on already-clean data.
package cleaner

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"cataloglens/pkg/contracts/domain"
)

// Date layouts accepted for date_added. The first is the raw catalog export
// format, the second is what the cleaned CSV emits, so cleaned output
// re-ingests without loss.
var dateLayouts = []string{
	"January 2, 2006",
	"2006-01-02",
}

// Config holds the missing-value sentinels. Rows missing title, type, or
// release year are always dropped; sentinel substitution applies only to
// acceptable-but-missing categorical fields.
type Config struct {
	DirectorSentinel string
	CastSentinel     string
	CountrySentinel  string
}

// DefaultConfig returns the stock sentinel set.
func DefaultConfig() Config {
	return Config{
		DirectorSentinel: "Unknown Director",
		CastSentinel:     "Unknown Cast",
		CountrySentinel:  "Unknown Country",
	}
}

// Cleaner transforms raw datasets into cleaned catalogs.
type Cleaner struct {
	logger *slog.Logger
	cfg    Config
}

// New creates a cleaner. A nil logger falls back to slog.Default; empty
// sentinels fall back to the defaults.
func New(logger *slog.Logger, cfg Config) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	def := DefaultConfig()
	if cfg.DirectorSentinel == "" {
		cfg.DirectorSentinel = def.DirectorSentinel
	}
	if cfg.CastSentinel == "" {
		cfg.CastSentinel = def.CastSentinel
	}
	if cfg.CountrySentinel == "" {
		cfg.CountrySentinel = def.CountrySentinel
	}
	return &Cleaner{logger: logger, cfg: cfg}
}

// Clean derives a new catalog from the dataset; the input is not mutated and
// stays available for audit. Malformed individual fields never abort the
// run: they are nulled and counted in the quality report.
func (c *Cleaner) Clean(ctx context.Context, ds *domain.Dataset) (*domain.Catalog, *domain.QualityReport, error) {
	report := &domain.QualityReport{
		RunID:       uuid.NewString(),
		Source:      ds.Source,
		GeneratedAt: time.Now().UTC(),
		InputRows:   ds.RowCount(),
	}

	catalog := &domain.Catalog{Titles: make([]domain.Title, 0, ds.RowCount())}

	for _, rec := range ds.Records {
		title, ok := c.cleanRecord(rec, report)
		if !ok {
			continue
		}
		catalog.Titles = append(catalog.Titles, title)
	}

	report.OutputRows = catalog.Len()

	c.logger.InfoContext(ctx, "cleaning complete",
		slog.String("run_id", report.RunID),
		slog.Int("input_rows", report.InputRows),
		slog.Int("output_rows", report.OutputRows),
		slog.Int("dropped_rows", report.DroppedRows()),
		slog.Int("imputed_fields", report.ImputedFields()),
		slog.Int("unparsable_dates", report.UnparsableDates),
		slog.Int("unparsable_durations", report.UnparsableDurations))

	return catalog, report, nil
}

// cleanRecord applies the cleaning steps to one record. Returns false when
// the row is dropped.
func (c *Cleaner) cleanRecord(rec domain.Record, report *domain.QualityReport) (domain.Title, bool) {
	// Step 1a: rows missing any required field are dropped, not imputed.
	year, yearOK := parseYear(rec.ReleaseYear)
	if rec.Title == "" || rec.Type == "" || !yearOK {
		report.DroppedMissingRequired++
		return domain.Title{}, false
	}

	// Step 4: content type canonicalization. Unrecognized values drop the row.
	contentType, ok := NormalizeType(rec.Type)
	if !ok {
		report.DroppedUnknownType++
		return domain.Title{}, false
	}

	title := domain.Title{
		ShowID:      rec.ShowID,
		Type:        contentType,
		Title:       rec.Title,
		ReleaseYear: year,
		Rating:      rec.Rating,
		Genres:      domain.SplitList(rec.Genres),
		Description: rec.Description,
	}

	// Step 1b: sentinel substitution for acceptable-but-missing fields.
	if rec.Director == "" {
		title.Director = c.cfg.DirectorSentinel
		report.ImputedDirectors++
	} else {
		title.Director = rec.Director
	}
	if rec.Cast == "" {
		title.Cast = []string{c.cfg.CastSentinel}
		report.ImputedCast++
	} else {
		title.Cast = domain.SplitList(rec.Cast)
	}
	if rec.Country == "" {
		title.Country = []string{c.cfg.CountrySentinel}
		report.ImputedCountries++
	} else {
		title.Country = domain.SplitList(rec.Country)
	}

	// Step 2: date standardization. Missing stays null; unparsable becomes
	// null and is counted.
	if rec.DateAdded != "" {
		if parsed, ok := ParseDate(rec.DateAdded); ok {
			title.DateAdded = &parsed
			title.YearAdded = parsed.Year()
			title.MonthAdded = parsed.Month().String()
		} else {
			report.UnparsableDates++
		}
	}

	// Step 3: duration normalization. Never defaults to zero; zero would
	// bias the statistics.
	if rec.Duration != "" {
		if value, ok := ParseDuration(rec.Duration, contentType); ok {
			title.Duration = &value
		} else {
			report.UnparsableDurations++
		}
	}

	return title, true
}

// NormalizeType canonicalizes a raw content type to one of the two valid
// categories. Comparison ignores case and surrounding whitespace.
func NormalizeType(raw string) (domain.ContentType, bool) {
	switch strings.ToLower(strings.Join(strings.Fields(raw), " ")) {
	case "movie":
		return domain.ContentTypeMovie, true
	case "tv show", "tvshow":
		return domain.ContentTypeTVShow, true
	}
	return "", false
}

// ParseDate parses a date_added value in any accepted layout.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseDuration normalizes a raw duration string by content type: integer
// minutes for movies ("90 min"), integer season counts for TV shows
// ("3 Seasons"). The bare integer form the cleaned CSV emits is accepted for
// both, keeping cleaning idempotent.
func ParseDuration(raw string, contentType domain.ContentType) (int, bool) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return 0, false
	}

	value, err := strconv.Atoi(fields[0])
	if err != nil || value < 0 {
		return 0, false
	}

	if len(fields) == 1 {
		return value, true
	}

	unit := strings.ToLower(strings.Join(fields[1:], " "))
	switch contentType {
	case domain.ContentTypeMovie:
		if unit == "min" {
			return value, true
		}
	case domain.ContentTypeTVShow:
		if unit == "season" || unit == "seasons" {
			return value, true
		}
	}
	return 0, false
}

func parseYear(raw string) (int, bool) {
	year, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || year <= 0 {
		return 0, false
	}
	return year, true
}
