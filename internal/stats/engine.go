package stats

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"cataloglens/pkg/contracts/domain"
)

// Config holds the statistics engine knobs.
type Config struct {
	Percentiles []int
	YearBuckets []int
	TopN        int

	// Sentinels excluded from exploded distributions so imputed
	// placeholders never dominate the counts.
	CastSentinel    string
	CountrySentinel string
}

// DefaultConfig returns the stock engine configuration.
func DefaultConfig() Config {
	return Config{
		Percentiles:     []int{25, 50, 75, 90},
		YearBuckets:     []int{2015, 2018, 2021},
		TopN:            10,
		CastSentinel:    "Unknown Cast",
		CountrySentinel: "Unknown Country",
	}
}

// Engine computes the statistical summary of a cleaned catalog. The catalog
// is read-only for the engine; numeric columns are summarized concurrently
// since the fan-out shares no mutable state.
type Engine struct {
	logger *slog.Logger
	cfg    Config
}

// New creates a statistics engine. A nil logger falls back to slog.Default.
func New(logger *slog.Logger, cfg Config) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.TopN <= 0 {
		cfg.TopN = DefaultConfig().TopN
	}
	if len(cfg.Percentiles) == 0 {
		cfg.Percentiles = DefaultConfig().Percentiles
	}
	return &Engine{logger: logger, cfg: cfg}
}

// Summarize computes descriptive statistics, distributions, and temporal
// aggregates for the catalog.
func (e *Engine) Summarize(ctx context.Context, catalog *domain.Catalog) (*domain.Summary, error) {
	summary := &domain.Summary{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		TitleCount:  catalog.Len(),
	}

	_, years := catalog.ReleaseYears()
	_, minutes := catalog.MovieMinutes()
	_, seasons := catalog.Seasons()

	numeric := []struct {
		column string
		values []float64
	}{
		{domain.NumericReleaseYear, years},
		{domain.NumericMovieMinutes, minutes},
		{domain.NumericSeasons, seasons},
	}

	descriptives := make([]domain.Descriptive, len(numeric))
	g, gctx := errgroup.WithContext(ctx)
	for i, col := range numeric {
		i, col := i, col
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			descriptives[i] = Describe(col.column, col.values, e.cfg.Percentiles)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	summary.Descriptives = descriptives

	summary.Distributions = e.distributions(catalog)
	summary.Descriptives = append(summary.Descriptives, e.frequencyDescriptives(summary)...)
	summary.Temporal = e.temporal(catalog)
	summary.CountrySplits = e.countrySplits(catalog)

	e.logger.InfoContext(ctx, "summary computed",
		slog.String("run_id", summary.RunID),
		slog.Int("titles", summary.TitleCount),
		slog.Int("numeric_columns", len(summary.Descriptives)),
		slog.Int("distributions", len(summary.Distributions)))

	return summary, nil
}

func (e *Engine) distributions(catalog *domain.Catalog) []domain.Distribution {
	types := make([]string, 0, catalog.Len())
	ratings := make([]string, 0, catalog.Len())
	countries := make([][]string, 0, catalog.Len())
	genres := make([][]string, 0, catalog.Len())
	cast := make([][]string, 0, catalog.Len())

	for _, t := range catalog.Titles {
		types = append(types, string(t.Type))
		ratings = append(ratings, t.Rating)
		countries = append(countries, t.Country)
		genres = append(genres, t.Genres)
		cast = append(cast, t.Cast)
	}

	return []domain.Distribution{
		Distribute(domain.ColumnType, types),
		Distribute(domain.ColumnRating, ratings),
		Distribute(domain.ColumnCountry, Explode(countries, e.cfg.CountrySentinel)),
		Distribute(domain.ColumnGenres, Explode(genres)),
		Distribute(domain.ColumnCast, Explode(cast, e.cfg.CastSentinel)),
	}
}

// frequencyDescriptives summarizes the per-genre and per-country title
// counts as numeric columns, so a catalog dominated by a few categories
// shows up in the skew of these counts.
func (e *Engine) frequencyDescriptives(summary *domain.Summary) []domain.Descriptive {
	sources := []struct {
		column string
		source string
	}{
		{domain.NumericGenreTitles, domain.ColumnGenres},
		{domain.NumericCountryTitles, domain.ColumnCountry},
	}

	out := make([]domain.Descriptive, 0, len(sources))
	for _, s := range sources {
		dist := summary.Distribution(s.source)
		if dist == nil || len(dist.Frequencies) == 0 {
			continue
		}
		counts := make([]float64, 0, len(dist.Frequencies))
		for _, f := range dist.Frequencies {
			counts = append(counts, float64(f.Count))
		}
		out = append(out, Describe(s.column, counts, e.cfg.Percentiles))
	}
	return out
}

func (e *Engine) temporal(catalog *domain.Catalog) domain.Temporal {
	releaseYears := make([]int, 0, catalog.Len())
	yearsAdded := make([]int, 0, catalog.Len())
	monthsAdded := make([]string, 0, catalog.Len())

	for _, t := range catalog.Titles {
		releaseYears = append(releaseYears, t.ReleaseYear)
		yearsAdded = append(yearsAdded, t.YearAdded)
		monthsAdded = append(monthsAdded, t.MonthAdded)
	}

	return domain.Temporal{
		ByReleaseYear: CountByYear(releaseYears),
		ByYearAdded:   CountByYear(yearsAdded),
		ByMonthAdded:  CountByMonth(monthsAdded),
		RatingBuckets: RatingComposition(catalog.Titles, e.cfg.YearBuckets),
	}
}

// countrySplits computes the movie/show split for the top producing
// countries, ordered by total title count.
func (e *Engine) countrySplits(catalog *domain.Catalog) []domain.CountrySplit {
	type split struct {
		movies, shows, first int
	}
	splits := make(map[string]*split)
	var order []string

	for _, t := range catalog.Titles {
		for _, country := range t.Country {
			if country == e.cfg.CountrySentinel {
				continue
			}
			s, ok := splits[country]
			if !ok {
				s = &split{first: len(order)}
				splits[country] = s
				order = append(order, country)
			}
			if t.Type == domain.ContentTypeMovie {
				s.movies++
			} else {
				s.shows++
			}
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		si, sj := splits[order[i]], splits[order[j]]
		ti, tj := si.movies+si.shows, sj.movies+sj.shows
		if ti != tj {
			return ti > tj
		}
		return si.first < sj.first
	})

	if len(order) > e.cfg.TopN {
		order = order[:e.cfg.TopN]
	}

	out := make([]domain.CountrySplit, 0, len(order))
	for _, country := range order {
		s := splits[country]
		out = append(out, domain.CountrySplit{Country: country, Movies: s.movies, Shows: s.shows})
	}
	return out
}
