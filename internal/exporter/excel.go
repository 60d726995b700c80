package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"cataloglens/internal/errors"
	"cataloglens/pkg/contracts/domain"
)

// WriteWorkbook writes the combined analysis workbook: quality report,
// descriptive statistics, distributions, temporal aggregates, and anomalies,
// one sheet each.
func WriteWorkbook(ctx context.Context, logger *slog.Logger, path string,
	quality *domain.QualityReport, summary *domain.Summary, anomalies *domain.AnomalyReport) error {

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create directory for workbook", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeQualitySheet(f, quality); err != nil {
		return err
	}
	if err := writeDescriptiveSheet(f, summary); err != nil {
		return err
	}
	if err := writeDistributionSheet(f, summary); err != nil {
		return err
	}
	if err := writeTemporalSheet(f, summary); err != nil {
		return err
	}
	if err := writeAnomalySheet(f, anomalies); err != nil {
		return err
	}

	// the default sheet is replaced by the report sheets
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return errors.NewStorageError("failed to drop default sheet", err)
	}

	if err := f.SaveAs(path); err != nil {
		return errors.NewStorageError("failed to save workbook", err)
	}

	logger.InfoContext(ctx, "workbook written", slog.String("path", path))
	return nil
}

func newSheet(f *excelize.File, name string, header []interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to create sheet %s", name), err)
	}
	return setRow(f, name, 1, header)
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	addr, err := excelize.JoinCellName("A", row)
	if err != nil {
		return errors.NewStorageError("failed to build cell address", err)
	}
	if err := f.SetSheetRow(sheet, addr, &values); err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to write row %d of %s", row, sheet), err)
	}
	return nil
}

func writeQualitySheet(f *excelize.File, quality *domain.QualityReport) error {
	const sheet = "Quality"
	if err := newSheet(f, sheet, []interface{}{"Metric", "Value"}); err != nil {
		return err
	}
	rows := [][]interface{}{
		{"Run ID", quality.RunID},
		{"Source", quality.Source},
		{"Input rows", quality.InputRows},
		{"Output rows", quality.OutputRows},
		{"Dropped (missing required)", quality.DroppedMissingRequired},
		{"Dropped (unknown type)", quality.DroppedUnknownType},
		{"Imputed directors", quality.ImputedDirectors},
		{"Imputed cast", quality.ImputedCast},
		{"Imputed countries", quality.ImputedCountries},
		{"Unparsable dates", quality.UnparsableDates},
		{"Unparsable durations", quality.UnparsableDurations},
	}
	for i, row := range rows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeDescriptiveSheet(f *excelize.File, summary *domain.Summary) error {
	const sheet = "Descriptive"
	if err := newSheet(f, sheet, []interface{}{
		"Column", "Count", "Mean", "Median", "StdDev", "Min", "Max", "Skewness", "Kurtosis",
	}); err != nil {
		return err
	}
	for i, d := range summary.Descriptives {
		row := []interface{}{d.Column, d.Count, d.Mean, d.Median, d.StdDev, d.Min, d.Max, d.Skewness, d.Kurtosis}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeDistributionSheet(f *excelize.File, summary *domain.Summary) error {
	const sheet = "Distributions"
	if err := newSheet(f, sheet, []interface{}{"Column", "Value", "Count", "Share"}); err != nil {
		return err
	}
	row := 2
	for _, dist := range summary.Distributions {
		for _, freq := range dist.Frequencies {
			if err := setRow(f, sheet, row, []interface{}{dist.Column, freq.Value, freq.Count, freq.Share}); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}

func writeTemporalSheet(f *excelize.File, summary *domain.Summary) error {
	const sheet = "Temporal"
	if err := newSheet(f, sheet, []interface{}{"Series", "Key", "Count"}); err != nil {
		return err
	}
	row := 2
	for _, yc := range summary.Temporal.ByReleaseYear {
		if err := setRow(f, sheet, row, []interface{}{"release_year", yc.Year, yc.Count}); err != nil {
			return err
		}
		row++
	}
	for _, yc := range summary.Temporal.ByYearAdded {
		if err := setRow(f, sheet, row, []interface{}{"year_added", yc.Year, yc.Count}); err != nil {
			return err
		}
		row++
	}
	for _, mc := range summary.Temporal.ByMonthAdded {
		if err := setRow(f, sheet, row, []interface{}{"month_added", mc.Month, mc.Count}); err != nil {
			return err
		}
		row++
	}
	for _, bucket := range summary.Temporal.RatingBuckets {
		for _, share := range bucket.Shares {
			key := fmt.Sprintf("%s / %s", bucket.Label, share.Value)
			if err := setRow(f, sheet, row, []interface{}{"rating_bucket", key, share.Count}); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}

func writeAnomalySheet(f *excelize.File, report *domain.AnomalyReport) error {
	const sheet = "Anomalies"
	if err := newSheet(f, sheet, []interface{}{
		"ID", "Column", "Value", "Method", "Score", "Lower", "Upper", "Crossed",
	}); err != nil {
		return err
	}
	row := 2
	for _, a := range report.Anomalies {
		values := []interface{}{a.ID, a.Column, a.Value, a.Method, a.Score, a.Bounds.Lower, a.Bounds.Upper, a.Crossed}
		if err := setRow(f, sheet, row, values); err != nil {
			return err
		}
		row++
	}
	for _, s := range report.Skipped {
		values := []interface{}{"", s.Column, "", s.Method, "", "", "", "skipped: " + s.Reason}
		if err := setRow(f, sheet, row, values); err != nil {
			return err
		}
		row++
	}
	return nil
}
