// Package validate checks that a job's configuration is actually runnable
// before synccore ever starts a worker: destinations exist, are directories,
// and are writable.
package validate

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jminer/mirror-sync/internal/config"
	"github.com/jminer/mirror-sync/internal/filter"
)

// CheckDestination validates that a sync destination is safe to mirror into.
//
// Validation steps:
//  1. Clean the path.
//  2. Create it (including parents) if it does not exist yet - a first run
//     against a brand-new destination is the common case, not an error.
//  3. Ensure it is a directory.
//  4. Attempt to create and remove a temporary file inside it, to catch
//     read-only mounts and expired network-share credentials before the
//     run starts copying.
//
// Returns a descriptive error on the first failed step; nil means the
// destination is ready to receive files.
func CheckDestination(dest string) error {
	dest = filepath.Clean(dest)

	info, err := os.Stat(dest)
	if os.IsNotExist(err) {
		if mkErr := os.MkdirAll(dest, 0o755); mkErr != nil {
			return fmt.Errorf("create destination %s: %w", dest, mkErr)
		}
		info, err = os.Stat(dest)
	}
	if err != nil {
		return fmt.Errorf("stat destination %s: %w", dest, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("destination %s is not a directory", dest)
	}

	f, err := os.CreateTemp(dest, ".mirrorsync_write_test_*")
	if err != nil {
		return fmt.Errorf("destination %s is not writable: %w", dest, err)
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)

	return nil
}

// Job validates every directory pair's source and destination in job.
// Sources must already exist and be directories - mirror-sync never creates
// a source. Destinations are checked (and created) via CheckDestination.
func Job(job config.Job) error {
	for _, pair := range job.Directories {
		info, err := os.Stat(pair.Source)
		if err != nil {
			return fmt.Errorf("job %q: source %s: %w", job.Name, pair.Source, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("job %q: source %s is not a directory", job.Name, pair.Source)
		}

		if err := CheckDestination(pair.Destination); err != nil {
			return fmt.Errorf("job %q: %w", job.Name, err)
		}
	}

	if _, err := filter.New(job.Exclude); err != nil {
		return fmt.Errorf("job %q: compile exclude patterns: %w", job.Name, err)
	}

	return nil
}
