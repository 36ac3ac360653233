// Package logging opens the debug log sink. The terminal belongs to the UI,
// so records go to a file or nowhere.
package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Open returns a logger writing debug records to path and a close func.
// An empty path yields a logger that discards everything.
func Open(path string) (*slog.Logger, func() error, error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	handler := slog.NewTextHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler), file.Close, nil
}
