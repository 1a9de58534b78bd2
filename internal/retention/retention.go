// Package retention prunes the mirror-sync app's own log directory — not a
// sync destination — the same way the original tool's log housekeeping did.
package retention

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// isOlder reports whether info's modification time is strictly before
// time.Now().AddDate(0, 0, -days).
func isOlder(info os.FileInfo, days int) bool {
	cutoff := time.Now().AddDate(0, 0, -days)
	return info.ModTime().Before(cutoff)
}

// RemoveOldLogs deletes log files older than days inside logPath.
//
// Behavior:
// - Operates only on files in the top-level of logPath (non-recursive).
// - Skips subdirectories.
// - Best-effort per file: continues on per-file errors (locked files,
//   permission issues, etc.).
//
// Error behavior:
//   - Returns an error only for "environment/config" failures (e.g., logPath
//     is not a directory, cannot read logPath entries, or cannot create
//     logPath when missing).
//   - Does not return an error just because a particular log file couldn't
//     be deleted.
//
// Safety: intended to be called only when file logging is enabled (NoLogs
// is false). Conservative: never deletes anything outside logPath and does
// not recurse.
func RemoveOldLogs(logPath string, days int) error {
	info, err := os.Stat(logPath)
	if err != nil {
		if err := os.MkdirAll(logPath, 0o755); err != nil {
			return fmt.Errorf("create log path: %w", err)
		}
		return nil
	}

	if !info.IsDir() {
		return fmt.Errorf("log path is not a directory: %s", logPath)
	}

	entries, err := os.ReadDir(logPath)
	if err != nil {
		return fmt.Errorf("read log folder contents: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		full := filepath.Join(logPath, entry.Name())

		fi, err := entry.Info()
		if err != nil {
			continue
		}

		if isOlder(fi, days) {
			if err := os.Remove(full); err != nil {
				continue
			}
		}
	}

	return nil
}
