// Package logging provides file-based logging for minitodo.
// The TUI owns the terminal, so log output goes to a file under the
// application state directory instead of stderr.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// LogFileName is the log file name inside the state directory.
const LogFileName = "minitodo.log"

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New creates a logger writing to stateDir/minitodo.log, creating the
// directory if needed. The returned closer closes the underlying file.
// If the file cannot be opened the logger discards output rather than
// failing the application.
func New(stateDir string, level slog.Level) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(stateDir, 0o750); err != nil {
		return discard(level), nopCloser{}, fmt.Errorf("create state directory: %w", err)
	}

	path := filepath.Join(stateDir, LogFileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return discard(level), nopCloser{}, fmt.Errorf("open log file: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, f, nil
}

// discard returns a logger whose output is thrown away.
func discard(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: level}))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
