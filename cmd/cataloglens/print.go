package main

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"cataloglens/pkg/contracts/domain"
)

// maxConsoleRows caps per-table console output; the full data is in the
// report files.
const maxConsoleRows = 10

func printQuality(w io.Writer, q *domain.QualityReport) {
	rows := []table.Row{
		{"Input rows", q.InputRows},
		{"Output rows", q.OutputRows},
		{"Dropped (missing required)", q.DroppedMissingRequired},
		{"Dropped (unknown type)", q.DroppedUnknownType},
		{"Imputed directors", q.ImputedDirectors},
		{"Imputed cast", q.ImputedCast},
		{"Imputed countries", q.ImputedCountries},
		{"Unparsable dates", q.UnparsableDates},
		{"Unparsable durations", q.UnparsableDurations},
	}
	fmt.Fprintln(w, renderTable("Data Quality", table.Row{"Metric", "Count"}, rows, 2))
}

func printSummary(w io.Writer, s *domain.Summary) {
	descRows := make([]table.Row, 0, len(s.Descriptives))
	for _, d := range s.Descriptives {
		descRows = append(descRows, table.Row{
			d.Column, d.Count,
			fmt.Sprintf("%.2f", d.Mean),
			fmt.Sprintf("%.2f", d.Median),
			fmt.Sprintf("%.2f", d.StdDev),
			fmt.Sprintf("%.0f", d.Min),
			fmt.Sprintf("%.0f", d.Max),
		})
	}
	fmt.Fprintln(w, renderTable("Descriptive Statistics",
		table.Row{"Column", "Count", "Mean", "Median", "StdDev", "Min", "Max"},
		descRows, 2, 3, 4, 5, 6, 7))

	for _, column := range []string{domain.ColumnType, domain.ColumnRating, domain.ColumnGenres, domain.ColumnCountry} {
		dist := s.Distribution(column)
		if dist == nil || len(dist.Frequencies) == 0 {
			continue
		}
		freqs := dist.Frequencies
		if len(freqs) > maxConsoleRows {
			freqs = freqs[:maxConsoleRows]
		}
		rows := make([]table.Row, 0, len(freqs))
		for _, f := range freqs {
			rows = append(rows, table.Row{f.Value, f.Count, fmt.Sprintf("%.1f%%", f.Share*100)})
		}
		fmt.Fprintln(w, renderTable("Distribution: "+column,
			table.Row{"Value", "Count", "Share"}, rows, 2, 3))
	}

	if len(s.CountrySplits) > 0 {
		rows := make([]table.Row, 0, len(s.CountrySplits))
		for _, cs := range s.CountrySplits {
			rows = append(rows, table.Row{cs.Country, cs.Movies, cs.Shows, cs.Movies + cs.Shows})
		}
		fmt.Fprintln(w, renderTable("Movies vs TV Shows by Country",
			table.Row{"Country", "Movies", "TV Shows", "Total"}, rows, 2, 3, 4))
	}
}

func printAnomalies(w io.Writer, r *domain.AnomalyReport) {
	if len(r.Anomalies) == 0 {
		fmt.Fprintln(w, "no anomalies flagged")
	} else {
		rows := make([]table.Row, 0, len(r.Anomalies))
		for _, a := range r.Anomalies {
			rows = append(rows, table.Row{
				a.ID, a.Column,
				fmt.Sprintf("%.0f", a.Value),
				a.Method,
				fmt.Sprintf("%.2f", a.Score),
				a.Crossed,
			})
		}
		fmt.Fprintln(w, renderTable("Anomalies",
			table.Row{"ID", "Column", "Value", "Method", "Score", "Crossed"}, rows, 3, 5))
	}

	for _, s := range r.Skipped {
		fmt.Fprintf(w, "check skipped: %s/%s (%s)\n", s.Column, s.Method, s.Reason)
	}
}
