// Package logging builds the charm loggers used across deskos.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"charm.land/log/v2"
	"github.com/adrg/xdg"
)

// New returns a logger writing to w at the named level ("debug", "info",
// "warn", "error"). Unknown levels fall back to info.
func New(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "deskos",
		Level:           lvl,
	})
}

// Discard returns a logger that drops everything. Used in tests and when
// no log file can be opened.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// DefaultFilePath is where the TUI writes its log while it owns the screen.
func DefaultFilePath() (string, error) {
	path, err := xdg.StateFile(filepath.Join("deskos", "deskos.log"))
	if err != nil {
		return "", fmt.Errorf("failed to get log path: %w", err)
	}
	return path, nil
}

// OpenFile opens path for appending, creating it and its directory. An
// empty path uses DefaultFilePath.
func OpenFile(path string) (*os.File, error) {
	if path == "" {
		var err error
		if path, err = DefaultFilePath(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	// #nosec G304 - log path is chosen by the user
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
