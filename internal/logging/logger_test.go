package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogger_NoLogsWritesNoFiles(t *testing.T) {
	configDir := t.TempDir()
	log, err := New(configDir, LogSettings{NoLogs: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Info("hello")

	entries, err := os.ReadDir(configDir)
	if err != nil {
		t.Fatalf("read configDir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("want no files created in NoLogs mode, got %d", len(entries))
	}
}

func TestLogger_FileModeWritesDailyAndErrorFiles(t *testing.T) {
	configDir := t.TempDir()
	logDir := t.TempDir()

	log, err := New(configDir, LogSettings{LogDir: logDir})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Info("all good")
	log.Error("disk full")

	mainFiles, _ := filepath.Glob(filepath.Join(logDir, "mirrorsync_*.log"))
	if len(mainFiles) != 1 {
		t.Fatalf("want one mirrorsync log file, got %d", len(mainFiles))
	}
	errorFiles, _ := filepath.Glob(filepath.Join(logDir, "errors_*.log"))
	if len(errorFiles) != 1 {
		t.Fatalf("want one errors log file, got %d", len(errorFiles))
	}

	b, err := os.ReadFile(errorFiles[0])
	if err != nil {
		t.Fatalf("read errors file: %v", err)
	}
	if !strings.Contains(string(b), "disk full") {
		t.Fatalf("errors file missing expected message: %s", string(b))
	}
}

func TestLogger_LevelGating(t *testing.T) {
	configDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(configDir, "logging.json"), []byte(`{"DEBUG": false}`), 0o644); err != nil {
		t.Fatalf("write logging.json: %v", err)
	}

	log, err := New(configDir, LogSettings{NoLogs: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if log.Enabled("DEBUG") {
		t.Fatal("want DEBUG disabled per logging.json")
	}
	if !log.Enabled("INFO") {
		t.Fatal("want INFO enabled (fail-open, absent from logging.json)")
	}
}
