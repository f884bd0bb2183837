package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readLog(t *testing.T, dir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "logs", FileName))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	return string(data)
}

func TestInit_WritesToDataDir(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	dir := t.TempDir()
	closer, err := Init(dir, "debug")
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	slog.Debug("board opened", "board_id", "b1")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if out := readLog(t, dir); !strings.Contains(out, "board_id=b1") {
		t.Errorf("Expected log line with board_id, got %q", out)
	}
}

func TestInit_FiltersBelowLevel(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	dir := t.TempDir()
	closer, err := Init(dir, "warn")
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	slog.Info("refresh done", "column_id", "c1")
	slog.Warn("move rolled back", "card_id", "k1")
	_ = closer.Close()

	out := readLog(t, dir)
	if strings.Contains(out, "column_id=c1") {
		t.Errorf("Info line should be filtered at warn, got %q", out)
	}
	if !strings.Contains(out, "card_id=k1") {
		t.Errorf("Expected warn line, got %q", out)
	}
}

func TestInit_RejectsUnknownLevel(t *testing.T) {
	if _, err := Init(t.TempDir(), "chatty"); err == nil {
		t.Fatal("Expected error for unknown level")
	}
}
