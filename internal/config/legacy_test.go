package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jminer/mirror-sync/internal/logging"
)

func testLogger(t *testing.T) *logging.Logger {
	t.Helper()
	log, err := logging.New(t.TempDir(), logging.LogSettings{NoLogs: true})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}
	return log
}

func TestLoadLegacyJob_MigratesDirectoryEntries(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "source")
	if err := os.MkdirAll(src, 0o755); err != nil {
		t.Fatalf("mkdir source: %v", err)
	}

	iniContents := `[backup]
path=` + filepath.Join(dir, "backup") + `

[paths]
` + src + `, yes
` + filepath.Join(dir, "excluded") + `, no
`
	iniPath := filepath.Join(dir, "config.ini")
	if err := os.WriteFile(iniPath, []byte(iniContents), 0o644); err != nil {
		t.Fatalf("write config.ini: %v", err)
	}

	job, err := LoadLegacyJob("migrated", iniPath, testLogger(t))
	if err != nil {
		t.Fatalf("LoadLegacyJob: %v", err)
	}
	if job.Name != "migrated" {
		t.Fatalf("want name migrated, got %s", job.Name)
	}
	if len(job.Directories) != 1 {
		t.Fatalf("want 1 migrated directory pair, got %d: %+v", len(job.Directories), job.Directories)
	}
	if job.Directories[0].Source != src {
		t.Fatalf("want source %s, got %s", src, job.Directories[0].Source)
	}
	wantDest := filepath.Join(dir, "backup", "source")
	if job.Directories[0].Destination != wantDest {
		t.Fatalf("want destination %s, got %s", wantDest, job.Directories[0].Destination)
	}
}

func TestLoadLegacyJob_MissingBackupSection(t *testing.T) {
	dir := t.TempDir()
	iniPath := filepath.Join(dir, "config.ini")
	if err := os.WriteFile(iniPath, []byte("[paths]\nC:\\x, yes\n"), 0o644); err != nil {
		t.Fatalf("write config.ini: %v", err)
	}

	if _, err := LoadLegacyJob("x", iniPath, testLogger(t)); err == nil {
		t.Fatal("want error for missing [backup] section")
	}
}
