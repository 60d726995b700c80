// Package pipeline orchestrates the full run: load, clean, summarize, detect
// anomalies, export reports, and render charts. Each stage is also reachable
// on its own for the per-stage CLI commands.
package pipeline

import (
	"context"
	stderrors "errors"
	"log/slog"
	"os"

	"cataloglens/internal/anomaly"
	"cataloglens/internal/charts"
	"cataloglens/internal/cleaner"
	"cataloglens/internal/config"
	"cataloglens/internal/errors"
	"cataloglens/internal/exporter"
	"cataloglens/internal/loader"
	"cataloglens/internal/stats"
	"cataloglens/pkg/contracts/domain"
)

// Result carries the outputs of a pipeline run for console presentation.
// Stages that did not run leave their field nil.
type Result struct {
	Quality   *domain.QualityReport
	Summary   *domain.Summary
	Anomalies *domain.AnomalyReport
	Charts    []string
}

// Pipeline wires the stages together with a shared configuration and logger.
type Pipeline struct {
	cfg       *config.Config
	logger    *slog.Logger
	loader    *loader.Loader
	cleaner   *cleaner.Cleaner
	engine    *stats.Engine
	renderer  *charts.Renderer
	detectors []anomaly.Detector
}

// New creates a pipeline from the configuration. A nil logger falls back to
// slog.Default.
func New(logger *slog.Logger, cfg *config.Config) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		cfg:    cfg,
		logger: logger,
		loader: loader.New(logger, cfg.Cleaning.RequiredColumns),
		cleaner: cleaner.New(logger, cleaner.Config{
			DirectorSentinel: cfg.Cleaning.DirectorSentinel,
			CastSentinel:     cfg.Cleaning.CastSentinel,
			CountrySentinel:  cfg.Cleaning.CountrySentinel,
		}),
		engine: stats.New(logger, stats.Config{
			Percentiles:     cfg.Stats.Percentiles,
			YearBuckets:     cfg.Stats.YearBuckets,
			TopN:            cfg.Stats.TopN,
			CastSentinel:    cfg.Cleaning.CastSentinel,
			CountrySentinel: cfg.Cleaning.CountrySentinel,
		}),
		renderer: charts.New(logger, cfg.Paths.ChartsDir),
		detectors: []anomaly.Detector{
			anomaly.NewIQR(cfg.Anomaly.IQRMultiplier),
			anomaly.NewZScore(cfg.Anomaly.ZScoreThreshold),
		},
	}
}

// RunClean loads the raw input, cleans it, and writes the cleaned catalog
// plus the quality report sidecar.
func (p *Pipeline) RunClean(ctx context.Context) (*domain.Catalog, *domain.QualityReport, error) {
	ds, err := p.loader.Load(ctx, p.cfg.Paths.Input)
	if err != nil {
		return nil, nil, err
	}

	catalog, quality, err := p.cleaner.Clean(ctx, ds)
	if err != nil {
		return nil, nil, err
	}

	if err := exporter.WriteCatalogCSV(ctx, p.logger, p.cfg.Paths.CleanedCSV(), catalog); err != nil {
		return nil, nil, err
	}
	if err := exporter.WriteJSON(ctx, p.logger, p.cfg.Paths.QualityJSON(), quality); err != nil {
		return nil, nil, err
	}

	return catalog, quality, nil
}

// RunAnalyze summarizes the cleaned catalog, runs the anomaly detectors, and
// writes the summary, anomaly report, and combined workbook. It needs a
// quality report for the workbook, so when no cleaned catalog exists yet the
// cleaning stage runs first.
func (p *Pipeline) RunAnalyze(ctx context.Context) (*Result, error) {
	catalog, quality, err := p.cleanedCatalog(ctx)
	if err != nil {
		return nil, err
	}

	summary, err := p.engine.Summarize(ctx, catalog)
	if err != nil {
		return nil, err
	}

	report := p.detect(ctx, catalog, summary)

	if err := exporter.WriteJSON(ctx, p.logger, p.cfg.Paths.SummaryJSON(), summary); err != nil {
		return nil, err
	}
	if err := exporter.WriteJSON(ctx, p.logger, p.cfg.Paths.AnomaliesJSON(), report); err != nil {
		return nil, err
	}
	if err := exporter.WriteWorkbook(ctx, p.logger, p.cfg.Paths.Workbook(), quality, summary, report); err != nil {
		return nil, err
	}

	return &Result{Quality: quality, Summary: summary, Anomalies: report}, nil
}

// RunCharts renders the chart set for the cleaned catalog.
func (p *Pipeline) RunCharts(ctx context.Context) ([]string, error) {
	catalog, _, err := p.cleanedCatalog(ctx)
	if err != nil {
		return nil, err
	}

	summary, err := p.engine.Summarize(ctx, catalog)
	if err != nil {
		return nil, err
	}

	return p.renderer.RenderAll(ctx, summary), nil
}

// RunAll executes every stage in order.
func (p *Pipeline) RunAll(ctx context.Context) (*Result, error) {
	catalog, quality, err := p.RunClean(ctx)
	if err != nil {
		return nil, err
	}

	summary, err := p.engine.Summarize(ctx, catalog)
	if err != nil {
		return nil, err
	}

	report := p.detect(ctx, catalog, summary)

	if err := exporter.WriteJSON(ctx, p.logger, p.cfg.Paths.SummaryJSON(), summary); err != nil {
		return nil, err
	}
	if err := exporter.WriteJSON(ctx, p.logger, p.cfg.Paths.AnomaliesJSON(), report); err != nil {
		return nil, err
	}
	if err := exporter.WriteWorkbook(ctx, p.logger, p.cfg.Paths.Workbook(), quality, summary, report); err != nil {
		return nil, err
	}

	rendered := p.renderer.RenderAll(ctx, summary)

	return &Result{
		Quality:   quality,
		Summary:   summary,
		Anomalies: report,
		Charts:    rendered,
	}, nil
}

// cleanedCatalog returns the catalog to analyze: the previously written
// cleaned CSV when it exists, otherwise a fresh cleaning run over the raw
// input. Cleaning is idempotent, so re-cleaning the cleaned file changes
// nothing.
func (p *Pipeline) cleanedCatalog(ctx context.Context) (*domain.Catalog, *domain.QualityReport, error) {
	cleaned := p.cfg.Paths.CleanedCSV()
	if _, err := os.Stat(cleaned); err != nil {
		p.logger.InfoContext(ctx, "no cleaned catalog yet, cleaning first",
			slog.String("path", cleaned))
		return p.RunClean(ctx)
	}

	ds, err := p.loader.Load(ctx, cleaned)
	if err != nil {
		return nil, nil, err
	}
	return p.cleaner.Clean(ctx, ds)
}

// detect runs every detector over the numeric columns plus the exploded
// genre and country frequency tables. Statistical-precondition failures are
// collected as skipped checks; they never abort the run.
func (p *Pipeline) detect(ctx context.Context, catalog *domain.Catalog, summary *domain.Summary) *domain.AnomalyReport {
	report := &domain.AnomalyReport{
		RunID:       summary.RunID,
		GeneratedAt: summary.GeneratedAt,
	}

	columns := p.numericColumns(catalog, summary)
	for _, col := range columns {
		for _, d := range p.detectors {
			anomalies, err := d.Detect(col.name, col.ids, col.values)
			if err != nil {
				if reason, skipped := skipReason(err); skipped {
					report.Skipped = append(report.Skipped, domain.SkippedCheck{
						Column: col.name,
						Method: d.Method(),
						Reason: reason,
					})
					p.logger.WarnContext(ctx, "anomaly check skipped",
						slog.String("column", col.name),
						slog.String("method", d.Method()),
						slog.String("reason", reason))
					continue
				}
				p.logger.ErrorContext(ctx, "anomaly check failed",
					slog.String("column", col.name),
					slog.String("method", d.Method()),
					slog.String("error", err.Error()))
				continue
			}
			report.Anomalies = append(report.Anomalies, anomalies...)
		}
	}

	p.logger.InfoContext(ctx, "anomaly detection complete",
		slog.String("run_id", report.RunID),
		slog.Int("anomalies", len(report.Anomalies)),
		slog.Int("skipped_checks", len(report.Skipped)))

	return report
}

type numericColumn struct {
	name   string
	ids    []string
	values []float64
}

// numericColumns builds the detector inputs: per-title numeric columns from
// the catalog, and per-category counts from the genre and country
// distributions. In the frequency columns the category itself is the record
// identifier, so a dominant genre surfaces as an anomaly of its count.
func (p *Pipeline) numericColumns(catalog *domain.Catalog, summary *domain.Summary) []numericColumn {
	yearIDs, yearValues := catalog.ReleaseYears()
	minuteIDs, minuteValues := catalog.MovieMinutes()
	seasonIDs, seasonValues := catalog.Seasons()

	columns := []numericColumn{
		{domain.NumericReleaseYear, yearIDs, yearValues},
		{domain.NumericMovieMinutes, minuteIDs, minuteValues},
		{domain.NumericSeasons, seasonIDs, seasonValues},
	}

	frequency := func(name, source string) {
		dist := summary.Distribution(source)
		if dist == nil {
			return
		}
		col := numericColumn{name: name}
		for _, f := range dist.Frequencies {
			col.ids = append(col.ids, f.Value)
			col.values = append(col.values, float64(f.Count))
		}
		columns = append(columns, col)
	}
	frequency(domain.NumericGenreTitles, domain.ColumnGenres)
	frequency(domain.NumericCountryTitles, domain.ColumnCountry)

	return columns
}

// skipReason extracts the skip reason from a statistical-precondition error.
func skipReason(err error) (string, bool) {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) && appErr.Type == errors.ErrTypeStatistics {
		return appErr.Message, true
	}
	return "", false
}
