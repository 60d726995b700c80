// Package charts renders the summary aggregates as PNG images. Rendering is
// best-effort: a failed chart is logged and skipped, it never fails the run.
package charts

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"

	"cataloglens/pkg/contracts/domain"
)

// Canvas dimensions shared by every chart.
const (
	chartWidth  = 1024
	chartHeight = 576
)

// maxBars caps categorical charts so long-tail distributions stay readable.
const maxBars = 10

// Renderer writes the chart set for one analysis run.
type Renderer struct {
	logger *slog.Logger
	outDir string
}

// New creates a renderer that writes PNGs under outDir. A nil logger falls
// back to slog.Default.
func New(logger *slog.Logger, outDir string) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{logger: logger, outDir: outDir}
}

// RenderAll renders every chart the summary has data for and returns the
// paths written. Charts with too little data are skipped.
func (r *Renderer) RenderAll(ctx context.Context, summary *domain.Summary) []string {
	if err := os.MkdirAll(r.outDir, 0755); err != nil {
		r.logger.ErrorContext(ctx, "failed to create chart directory",
			slog.String("dir", r.outDir), slog.String("error", err.Error()))
		return nil
	}

	var written []string
	record := func(name string, err error) {
		if err != nil {
			r.logger.WarnContext(ctx, "chart skipped",
				slog.String("chart", name), slog.String("error", err.Error()))
			return
		}
		path := filepath.Join(r.outDir, name)
		r.logger.InfoContext(ctx, "chart written", slog.String("path", path))
		written = append(written, path)
	}

	record("growth_by_release_year.png",
		r.renderYearLine("Titles by Release Year", "growth_by_release_year.png", summary.Temporal.ByReleaseYear))
	record("additions_by_year.png",
		r.renderYearLine("Titles Added per Year", "additions_by_year.png", summary.Temporal.ByYearAdded))
	record("additions_by_month.png",
		r.renderMonthBars("additions_by_month.png", summary.Temporal.ByMonthAdded))
	record("titles_by_type.png",
		r.renderDistributionBars("Titles by Type", "titles_by_type.png", summary.Distribution(domain.ColumnType)))
	record("titles_by_rating.png",
		r.renderDistributionBars("Titles by Rating", "titles_by_rating.png", summary.Distribution(domain.ColumnRating)))
	record("top_genres.png",
		r.renderDistributionBars("Top Genres", "top_genres.png", summary.Distribution(domain.ColumnGenres)))
	record("top_countries.png",
		r.renderDistributionBars("Top Producing Countries", "top_countries.png", summary.Distribution(domain.ColumnCountry)))

	return written
}

// renderYearLine draws one year-count series as a line chart.
func (r *Renderer) renderYearLine(title, filename string, series []domain.YearCount) error {
	if len(series) < 2 {
		return fmt.Errorf("need at least 2 points, got %d", len(series))
	}

	xs := make([]float64, len(series))
	ys := make([]float64, len(series))
	for i, yc := range series {
		xs[i] = float64(yc.Year)
		ys[i] = float64(yc.Count)
	}

	graph := chart.Chart{
		Title:  title,
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: chart.XAxis{
			ValueFormatter: chart.IntValueFormatter,
		},
		YAxis: chart.YAxis{
			ValueFormatter: chart.IntValueFormatter,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: xs,
				YValues: ys,
			},
		},
	}

	return r.save(filename, graph.Render)
}

// renderDistributionBars draws the leading categories of a distribution as a
// bar chart.
func (r *Renderer) renderDistributionBars(title, filename string, dist *domain.Distribution) error {
	if dist == nil || len(dist.Frequencies) == 0 {
		return fmt.Errorf("no distribution data")
	}

	freqs := dist.Frequencies
	if len(freqs) > maxBars {
		freqs = freqs[:maxBars]
	}

	bars := make([]chart.Value, len(freqs))
	for i, f := range freqs {
		bars[i] = chart.Value{Label: f.Value, Value: float64(f.Count)}
	}
	return r.renderBars(title, filename, bars)
}

// renderMonthBars draws the month-of-addition counts in calendar order.
func (r *Renderer) renderMonthBars(filename string, months []domain.MonthCount) error {
	if len(months) == 0 {
		return fmt.Errorf("no month data")
	}

	bars := make([]chart.Value, len(months))
	for i, m := range months {
		bars[i] = chart.Value{Label: m.Month[:3], Value: float64(m.Count)}
	}
	return r.renderBars("Titles Added per Month", filename, bars)
}

func (r *Renderer) renderBars(title, filename string, bars []chart.Value) error {
	graph := chart.BarChart{
		Title:    title,
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: 48,
		YAxis: chart.YAxis{
			ValueFormatter: chart.IntValueFormatter,
		},
		Bars: bars,
	}
	return r.save(filename, graph.Render)
}

func (r *Renderer) save(filename string, render func(chart.RendererProvider, io.Writer) error) error {
	file, err := os.Create(filepath.Join(r.outDir, filename))
	if err != nil {
		return err
	}
	defer file.Close()

	return render(chart.PNG, file)
}
