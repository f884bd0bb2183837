// Package logging sends slog output to a file under the data directory.
// The TUI owns the terminal, so nothing may be logged to stdout or stderr.
package logging

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
)

// FileName is the log file created under <dataDir>/logs
const FileName = "minitrello.log"

// Init installs a text handler writing to <dataDir>/logs/minitrello.log at
// level ("debug", "info", "warn" or "error") as the slog default. The standard
// log package is redirected to the same file. The returned closer releases it.
func Init(dataDir, level string) (io.Closer, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	logDir := filepath.Join(dataDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(filepath.Join(logDir, FileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{Level: lvl})))
	log.SetOutput(file)
	log.SetFlags(log.LstdFlags)

	return file, nil
}

// Console installs a text handler on stderr. The headless servers use it.
func Console(level string) error {
	lvl, err := parseLevel(level)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return nil
}

func parseLevel(level string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return lvl, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}
