package types

import (
	"github.com/jminer/mirror-sync/internal/logging"
)

// AppConfig is the central, process-wide configuration object for the CLI.
//
// It is constructed once in the root command's PersistentPreRunE, passed
// through app.Run(), and then used
// to load the jobs file and build per-job synccore.Config values. Treat it
// as read-only after creation.
//
// Design goals:
// - Keep runtime behavior configurable via CLI flags + a jobs file
// - Make scheduled runs predictable and safe
// - Avoid globals by threading config explicitly
type AppConfig struct {
	// ConfigDir is the directory containing configuration files such as:
	// - jobs.yaml
	// - logging.json
	//
	// Typically defaults to "<exeDir>/config".
	ConfigDir string

	// JobsFile is the path to the jobs YAML file. Empty means
	// filepath.Join(ConfigDir, "jobs.yaml").
	JobsFile string

	// LogRetention controls how long the app's own log files are kept, in
	// days. Used by internal/retention.
	LogRetention int

	// LogSettings controls logging behavior (file vs stdout, log directory).
	LogSettings logging.LogSettings

	// WalkersOverride, when > 0, overrides every job's ParallelCopies for
	// this run. Zero means "use each job's own configured value."
	WalkersOverride int
}
