package exporter

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"cataloglens/internal/errors"
)

// WriteJSON writes a report payload as indented JSON.
func WriteJSON(ctx context.Context, logger *slog.Logger, path string, payload interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create directory for JSON output", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError("failed to create JSON file", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(payload); err != nil {
		return errors.NewStorageError("failed to encode JSON payload", err)
	}

	logger.InfoContext(ctx, "report written", slog.String("path", path))
	return nil
}
