package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// newLogger opens the log file for appending and returns a text logger
// writing to it. The terminal belongs to the TUI, so nothing goes to stderr.
func newLogger(path string, level slog.Level) (*slog.Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	handler := slog.NewTextHandler(file, &slog.HandlerOptions{Level: level})
	return slog.New(handler), func() { _ = file.Close() }, nil
}
