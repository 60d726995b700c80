// Package loader reads raw catalog files (CSV or XLSX) into a Dataset and
// validates the header against the required column set. Structural problems
// (missing columns, empty file) are fatal; everything row-level is left to
// the cleaner.
package loader

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"cataloglens/internal/errors"
	"cataloglens/pkg/contracts/domain"
)

// Loader parses raw catalog files into datasets.
type Loader struct {
	logger   *slog.Logger
	required []string
}

// New creates a loader that validates the given required columns. A nil
// logger falls back to slog.Default.
func New(logger *slog.Logger, required []string) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger, required: required}
}

// Load reads the file at path and returns the raw dataset. The format is
// chosen by extension: .xlsx goes through excelize, everything else is
// parsed as CSV.
func (l *Loader) Load(ctx context.Context, path string) (*domain.Dataset, error) {
	var (
		rows [][]string
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = l.readExcel(path)
	default:
		rows, err = l.readCSV(path)
	}
	if err != nil {
		return nil, err
	}

	ds, err := l.datasetFromRows(path, rows)
	if err != nil {
		return nil, err
	}

	l.logger.InfoContext(ctx, "dataset loaded",
		slog.String("source", path),
		slog.Int("rows", ds.RowCount()),
		slog.Int("columns", ds.ColumnCount()))

	return ds, nil
}

func (l *Loader) readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewStorageError("failed to open catalog file", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewParsingError("malformed CSV input", err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

func (l *Loader) readExcel(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewStorageError("failed to open workbook", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewValidationError("workbook has no sheets", nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.NewParsingError(fmt.Sprintf("failed to read sheet %q", sheets[0]), err)
	}
	return rows, nil
}

// datasetFromRows validates the header and maps rows into records.
func (l *Loader) datasetFromRows(path string, rows [][]string) (*domain.Dataset, error) {
	if len(rows) == 0 {
		return nil, errors.NewValidationError("input file is empty", nil).
			WithContext("source", path)
	}

	header := make([]string, len(rows[0]))
	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		normalized := strings.ToLower(strings.TrimSpace(name))
		header[i] = normalized
		if _, exists := index[normalized]; !exists {
			index[normalized] = i
		}
	}

	var missing []string
	for _, col := range l.required {
		if _, ok := index[strings.ToLower(col)]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, errors.NewValidationError(
			fmt.Sprintf("required columns missing: %s", strings.Join(missing, ", ")), nil).
			WithContext("source", path)
	}

	if len(rows) == 1 {
		return nil, errors.NewValidationError("input file has a header but no data rows", nil).
			WithContext("source", path)
	}

	ds := &domain.Dataset{
		Source:  path,
		Columns: header,
		Records: make([]domain.Record, 0, len(rows)-1),
	}

	cell := func(row []string, column string) string {
		idx, ok := index[column]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	for _, row := range rows[1:] {
		ds.Records = append(ds.Records, domain.Record{
			ShowID:      cell(row, domain.ColumnShowID),
			Type:        cell(row, domain.ColumnType),
			Title:       cell(row, domain.ColumnTitle),
			Director:    cell(row, domain.ColumnDirector),
			Cast:        cell(row, domain.ColumnCast),
			Country:     cell(row, domain.ColumnCountry),
			DateAdded:   cell(row, domain.ColumnDateAdded),
			ReleaseYear: cell(row, domain.ColumnReleaseYear),
			Rating:      cell(row, domain.ColumnRating),
			Duration:    cell(row, domain.ColumnDuration),
			Genres:      cell(row, domain.ColumnGenres),
			Description: cell(row, domain.ColumnDescription),
		})
	}

	return ds, nil
}
