// Package exporter writes pipeline outputs: the cleaned catalog CSV, JSON
// report sidecars, and the combined XLSX analysis workbook.
package exporter

import (
	"context"
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"cataloglens/internal/errors"
	"cataloglens/pkg/contracts/domain"
)

// dateLayout is the canonical date format of the cleaned CSV.
const dateLayout = "2006-01-02"

// WriteCatalogCSV writes the cleaned catalog with the canonical column set.
// The output round-trips: loading and re-cleaning it reproduces the catalog
// with zero additional drops or imputations.
func WriteCatalogCSV(ctx context.Context, logger *slog.Logger, path string, catalog *domain.Catalog) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create directory for cleaned catalog", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError("failed to create cleaned catalog file", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(domain.CatalogColumns); err != nil {
		return errors.NewStorageError("failed to write CSV header row", err)
	}

	for _, t := range catalog.Titles {
		if err := writer.Write(titleRow(t)); err != nil {
			return errors.NewStorageError("failed to write CSV data row", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.NewStorageError("failed to flush cleaned catalog", err)
	}

	logger.InfoContext(ctx, "cleaned catalog written",
		slog.String("path", path),
		slog.Int("rows", catalog.Len()))
	return nil
}

// titleRow formats one cleaned title in the canonical column order.
func titleRow(t domain.Title) []string {
	date := ""
	if t.DateAdded != nil {
		date = t.DateAdded.Format(dateLayout)
	}
	duration := ""
	if t.Duration != nil {
		duration = strconv.Itoa(*t.Duration)
	}
	return []string{
		t.ShowID,
		string(t.Type),
		t.Title,
		t.Director,
		domain.JoinList(t.Cast),
		domain.JoinList(t.Country),
		date,
		strconv.Itoa(t.ReleaseYear),
		t.Rating,
		duration,
		domain.JoinList(t.Genres),
		t.Description,
	}
}
