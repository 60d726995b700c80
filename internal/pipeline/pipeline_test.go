package pipeline

import (
	"context"
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cataloglens/internal/config"
	"cataloglens/internal/errors"
	"cataloglens/pkg/contracts/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	base := t.TempDir()
	return &config.Config{
		Paths: config.PathsConfig{
			Input:     filepath.Join(base, "catalog.csv"),
			OutputDir: filepath.Join(base, "out"),
			ChartsDir: filepath.Join(base, "out", "charts"),
		},
		Cleaning: config.CleaningConfig{
			RequiredColumns:  domain.CatalogColumns,
			DirectorSentinel: "Unknown Director",
			CastSentinel:     "Unknown Cast",
			CountrySentinel:  "Unknown Country",
		},
		Stats: config.StatsConfig{
			Percentiles: []int{25, 50, 75, 90},
			YearBuckets: []int{2015, 2018, 2021},
			TopN:        10,
		},
		Anomaly: config.AnomalyConfig{
			IQRMultiplier:   1.5,
			ZScoreThreshold: 3.0,
		},
	}
}

func writeFixture(t *testing.T, path string) {
	t.Helper()
	rows := [][]string{
		domain.CatalogColumns,
		{"s1", "Movie", "Dust Roads", "Ana Ruiz", "R. Ito, M. Vance", "United States",
			"September 25, 2021", "2020", "PG-13", "112 min", "Dramas", "Two siblings cross the desert."},
		{"s2", "Movie", "Night Shift", "Ben Cole", "L. Okafor", "United States",
			"January 1, 2020", "2019", "R", "95 min", "Comedies", "An ER on its worst night."},
		{"s3", "Movie", "Monsoon Letters", "", "A. Sharma", "India",
			"March 15, 2020", "2018", "PG", "101 min", "Dramas", "Letters across a flooded city."},
		{"s4", "TV Show", "Harbor Lights", "Mara Voss", "D. Reyes", "United Kingdom",
			"July 4, 2021", "2021", "TV-MA", "2 Seasons", "TV Dramas", "A port town keeps its secrets."},
		{"s5", "TV Show", "Static", "Iris Chen", "P. Novak", "",
			"sometime in spring", "2020", "TV-14", "1 Season", "TV Comedies", "A radio host hears the future."},
		{"s6", "Movie", "Afterglow", "Omar Diallo", "S. Lindgren", "Sweden",
			"May 2, 2021", "2020", "R", "ninety min", "Dramas", "Sunsets and debts."},
		{"s7", "Movie", "", "Noa Peri", "T. Abara", "Israel",
			"June 6, 2021", "2019", "PG-13", "88 min", "Comedies", "A title lost to paperwork."},
		{"s8", "Documentary", "Field Notes", "Kim Aalto", "J. Mwangi", "Kenya",
			"April 9, 2021", "2021", "PG", "70 min", "Documentaries", "Notebooks of a ranger."},
	}

	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	w := csv.NewWriter(file)
	require.NoError(t, w.WriteAll(rows))
}

func TestPipeline_RunAll(t *testing.T) {
	cfg := testConfig(t)
	writeFixture(t, cfg.Paths.Input)
	p := New(testLogger(), cfg)

	res, err := p.RunAll(context.Background())
	require.NoError(t, err)

	// 8 input rows: s7 drops (missing title), s8 drops (unknown type).
	quality := res.Quality
	assert.Equal(t, 8, quality.InputRows)
	assert.Equal(t, 6, quality.OutputRows)
	assert.Equal(t, 1, quality.DroppedMissingRequired)
	assert.Equal(t, 1, quality.DroppedUnknownType)
	assert.Equal(t, 1, quality.ImputedDirectors)
	assert.Equal(t, 1, quality.ImputedCountries)
	assert.Equal(t, 1, quality.UnparsableDates)
	assert.Equal(t, 1, quality.UnparsableDurations)

	require.NotNil(t, res.Summary)
	assert.Equal(t, 6, res.Summary.TitleCount)
	releaseYears := res.Summary.Descriptive(domain.NumericReleaseYear)
	require.NotNil(t, releaseYears)
	assert.Equal(t, 6, releaseYears.Count)

	// two TV shows only: the z-score check on seasons cannot run
	require.NotNil(t, res.Anomalies)
	var seasonsSkipped bool
	for _, s := range res.Anomalies.Skipped {
		if s.Column == domain.NumericSeasons && s.Method == domain.MethodZScore {
			seasonsSkipped = true
		}
	}
	assert.True(t, seasonsSkipped)

	for _, path := range []string{
		cfg.Paths.CleanedCSV(),
		cfg.Paths.QualityJSON(),
		cfg.Paths.SummaryJSON(),
		cfg.Paths.AnomaliesJSON(),
		cfg.Paths.Workbook(),
	} {
		_, err := os.Stat(path)
		assert.NoError(t, err, path)
	}

	assert.Len(t, res.Charts, 7)
	for _, path := range res.Charts {
		_, err := os.Stat(path)
		assert.NoError(t, err, path)
	}
}

func TestPipeline_RunAnalyze_ReusesCleanedCatalog(t *testing.T) {
	cfg := testConfig(t)
	writeFixture(t, cfg.Paths.Input)
	p := New(testLogger(), cfg)
	ctx := context.Background()

	catalog, _, err := p.RunClean(ctx)
	require.NoError(t, err)
	require.Equal(t, 6, catalog.Len())

	res, err := p.RunAnalyze(ctx)
	require.NoError(t, err)

	// re-cleaning the cleaned catalog drops and imputes nothing
	assert.Equal(t, 6, res.Quality.InputRows)
	assert.Equal(t, 6, res.Quality.OutputRows)
	assert.Zero(t, res.Quality.DroppedRows())
	assert.Zero(t, res.Quality.ImputedFields())
	assert.Equal(t, 6, res.Summary.TitleCount)

	_, err = os.Stat(cfg.Paths.Workbook())
	assert.NoError(t, err)
}

func TestPipeline_RunAnalyze_CleansWhenNoCleanedCatalog(t *testing.T) {
	cfg := testConfig(t)
	writeFixture(t, cfg.Paths.Input)
	p := New(testLogger(), cfg)

	res, err := p.RunAnalyze(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, res.Quality.InputRows)
	assert.Equal(t, 6, res.Quality.OutputRows)

	_, err = os.Stat(cfg.Paths.CleanedCSV())
	assert.NoError(t, err)
}

func TestPipeline_RunClean_MissingInput(t *testing.T) {
	cfg := testConfig(t)
	p := New(testLogger(), cfg)

	_, _, err := p.RunClean(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeStorage))
}

func TestPipeline_RunCharts(t *testing.T) {
	cfg := testConfig(t)
	writeFixture(t, cfg.Paths.Input)
	p := New(testLogger(), cfg)

	rendered, err := p.RunCharts(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, rendered)
}
