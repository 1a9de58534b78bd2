package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeJobsFile(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, "jobs.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write jobs.yaml: %v", err)
	}
	return path
}

func TestLoadJobs_Table(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		wantErr   bool
		wantCount int
	}{
		{
			name: "valid single job",
			yaml: `
jobs:
  - name: music
    parallel_copies: 4
    copy_if_size_mismatched: true
    directories:
      - source: /src/music
        destination: /dest/music
`,
			wantCount: 1,
		},
		{
			name: "missing name",
			yaml: `
jobs:
  - parallel_copies: 1
    directories:
      - source: /a
        destination: /b
`,
			wantErr: true,
		},
		{
			name: "duplicate name",
			yaml: `
jobs:
  - name: dup
    directories: [{source: /a, destination: /b}]
  - name: dup
    directories: [{source: /c, destination: /d}]
`,
			wantErr: true,
		},
		{
			name: "no directories",
			yaml: `
jobs:
  - name: empty
`,
			wantErr: true,
		},
		{
			name: "directory pair missing destination",
			yaml: `
jobs:
  - name: broken
    directories:
      - source: /a
`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeJobsFile(t, dir, tt.yaml)

			jobs, err := LoadJobs(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("want error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadJobs: %v", err)
			}
			if len(jobs) != tt.wantCount {
				t.Fatalf("want %d jobs, got %d", tt.wantCount, len(jobs))
			}
		})
	}
}

func TestJob_ToSyncConfig(t *testing.T) {
	job := Job{
		Name:                 "music",
		ParallelCopies:       3,
		CopyIfSizeMismatched: true,
		Exclude:              []string{"*.tmp"},
		Directories: []DirectoryPair{
			{Source: "/src", Destination: "/dest"},
		},
	}

	cfg, err := job.ToSyncConfig(nil)
	if err != nil {
		t.Fatalf("ToSyncConfig: %v", err)
	}
	if cfg.ParallelCopies != 3 {
		t.Fatalf("want ParallelCopies 3, got %d", cfg.ParallelCopies)
	}
	if len(cfg.DirectoryPairs) != 1 || cfg.DirectoryPairs[0].Source != "/src" {
		t.Fatalf("unexpected directory pairs: %+v", cfg.DirectoryPairs)
	}
	if cfg.Filter == nil {
		t.Fatal("want non-nil Filter")
	}
	if cfg.Filter("a.tmp") {
		t.Fatal("want a.tmp excluded by compiled filter")
	}
	if !cfg.Filter("a.mp3") {
		t.Fatal("want a.mp3 to pass the filter")
	}
}

func TestJob_ToSyncConfig_RejectsBadPattern(t *testing.T) {
	job := Job{
		Name:    "bad",
		Exclude: []string{"["},
		Directories: []DirectoryPair{
			{Source: "/src", Destination: "/dest"},
		},
	}
	if _, err := job.ToSyncConfig(nil); err == nil {
		t.Fatal("want error for malformed exclude pattern")
	}
}
