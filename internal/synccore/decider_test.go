package synccore

import (
	"os"
	"path/filepath"
	"testing"
)

func noopLogf(LogLevel, string) {}

func TestDecide_Table(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		task opTask
		want CopyReason
	}{
		{
			name: "missing destination always copies",
			cfg:  Config{},
			task: opTask{hasDest: false},
			want: ReasonMissing,
		},
		{
			name: "date mismatch gate off ignores differing mod times",
			cfg:  Config{CopyIfDateMismatched: false},
			task: opTask{hasDest: true, srcMeta: fileMeta{modTime: 1}, destMeta: fileMeta{modTime: 2}},
			want: ReasonNone,
		},
		{
			name: "date mismatch gate on catches differing mod times",
			cfg:  Config{CopyIfDateMismatched: true},
			task: opTask{hasDest: true, srcMeta: fileMeta{modTime: 1}, destMeta: fileMeta{modTime: 2}},
			want: ReasonDateMismatched,
		},
		{
			name: "size mismatch gate on catches differing size",
			cfg:  Config{CopyIfSizeMismatched: true},
			task: opTask{hasDest: true, srcMeta: fileMeta{size: 10}, destMeta: fileMeta{size: 20}},
			want: ReasonSizeMismatched,
		},
		{
			name: "all gates off and metadata equal skips",
			cfg:  Config{},
			task: opTask{hasDest: true, srcMeta: fileMeta{size: 10, modTime: 5}, destMeta: fileMeta{size: 10, modTime: 5}},
			want: ReasonNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decide(tt.task, tt.cfg, noopLogf)
			if got != tt.want {
				t.Fatalf("want %v, got %v", tt.want, got)
			}
		})
	}
}

func TestHeadTailEqual_Table(t *testing.T) {
	root := t.TempDir()

	writeTemp := func(name, contents string) string {
		path := filepath.Join(root, name)
		if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
		return path
	}

	tests := []struct {
		name     string
		src      string
		dest     string
		maxBytes int64
		want     bool
	}{
		{"identical short files", "abc", "abc", 8 * 1024, true},
		{"differing contents", "abcdef", "abcxyz", 8 * 1024, false},
		{"zero max bytes always equal", "abc", "xyz", 0, true},
		{"maxBytes larger than both files compares whole file", "hi", "hij", 8 * 1024, false},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srcPath := writeTemp("src"+string(rune('a'+i)), tt.src)
			destPath := writeTemp("dest"+string(rune('a'+i)), tt.dest)

			got := headTailEqual(srcPath, destPath, int64(len(tt.src)), int64(len(tt.dest)), tt.maxBytes, noopLogf)
			if got != tt.want {
				t.Fatalf("want %v, got %v", tt.want, got)
			}
		})
	}
}

func TestHeadTailEqual_MissingDestinationFailsClosed(t *testing.T) {
	root := t.TempDir()
	srcPath := filepath.Join(root, "src.txt")
	if err := os.WriteFile(srcPath, []byte("abc"), 0o644); err != nil {
		t.Fatalf("write src: %v", err)
	}
	destPath := filepath.Join(root, "missing.txt")

	got := headTailEqual(srcPath, destPath, 3, 0, 1024, noopLogf)
	if got {
		t.Fatal("want false (fail-closed) when destination is missing")
	}
}
