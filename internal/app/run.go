// Package app wires together config loading, validation, the sync engine,
// and log housekeeping into the single call the CLI commands delegate to.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jminer/mirror-sync/internal/config"
	"github.com/jminer/mirror-sync/internal/logging"
	"github.com/jminer/mirror-sync/internal/retention"
	"github.com/jminer/mirror-sync/internal/stamp"
	"github.com/jminer/mirror-sync/internal/synccore"
	"github.com/jminer/mirror-sync/internal/types"
	"github.com/jminer/mirror-sync/internal/validate"
)

// Run loads cfg.JobsFile (or its default location), runs every job named in
// names in order (all jobs, if names is empty), drains each run's log into
// log, and prunes the app's own old log files when file logging is enabled.
//
// A job that fails validation or returns a run error is reported and
// skipped; Run continues with the remaining jobs and returns the first
// error encountered so the process can exit non-zero, matching the
// unattended-scheduling expectation that a partial failure is still visible
// in the exit code.
func Run(ctx context.Context, cfg types.AppConfig, log *logging.Logger, names []string) error {
	jobsFile := cfg.JobsFile
	if jobsFile == "" {
		jobsFile = config.DefaultJobsFile(cfg.ConfigDir)
	}

	jobs, err := config.LoadJobs(jobsFile)
	if err != nil {
		return fmt.Errorf("load jobs: %w", err)
	}

	selected, err := selectJobs(jobs, names)
	if err != nil {
		return err
	}

	stamper := stamp.New()

	var firstErr error
	for _, job := range selected {
		if err := runJob(ctx, job, cfg, log, stamper); err != nil {
			log.Errorf("job %q failed: %v", job.Name, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
	}

	if !cfg.LogSettings.NoLogs {
		if err := retention.RemoveOldLogs(cfg.LogSettings.LogDir, cfg.LogRetention); err != nil {
			log.Warnf("log retention cleanup failed: %v", err)
		}
	}

	return firstErr
}

// selectJobs returns the subset of jobs named in names, in the order given
// by names, or every job in jobs (its own order) if names is empty. An
// unknown name is an error: silently ignoring a typo'd job name would make
// a scheduled run silently do nothing.
func selectJobs(jobs []config.Job, names []string) ([]config.Job, error) {
	if len(names) == 0 {
		return jobs, nil
	}

	byName := make(map[string]config.Job, len(jobs))
	for _, j := range jobs {
		byName[j.Name] = j
	}

	selected := make([]config.Job, 0, len(names))
	for _, name := range names {
		job, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("no configured job named %q", name)
		}
		selected = append(selected, job)
	}
	return selected, nil
}

// runJob validates, then executes a single job end to end, applying
// cfg.WalkersOverride and logging a final summary line from the run's
// Stats.
func runJob(ctx context.Context, job config.Job, cfg types.AppConfig, log *logging.Logger, stamper synccore.Stamper) error {
	if err := validate.Job(job); err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	if cfg.WalkersOverride > 0 {
		job.ParallelCopies = cfg.WalkersOverride
	}

	syncCfg, err := job.ToSyncConfig(stamper)
	if err != nil {
		return fmt.Errorf("build sync config: %w", err)
	}

	log.Infof("job %q: starting, %d directory pair(s), %d worker(s)",
		job.Name, len(syncCfg.DirectoryPairs), syncCfg.ParallelCopies)

	op := synccore.New(ctx, syncCfg)
	log.Infof("job %q: run id %s", job.Name, op.RunID())

	var loggedErrors int
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			entry, ok := op.ReadLog()
			if !ok {
				if op.IsDone() {
					return
				}
				time.Sleep(10 * time.Millisecond)
				continue
			}
			if entry.Level == synccore.LevelError {
				loggedErrors++
			}
			log.Log(entry.Level.String(), entry.Message)
		}
	}()

	runErr := op.Wait()
	<-done

	snap := op.Stats()
	log.Countf("job %q: %d file(s) copied (%d bytes), %d file(s) deleted, %d tree(s) deleted, %d error(s)",
		job.Name, snap.FilesCopied, snap.BytesCopied, snap.FilesDeleted, snap.TreesDeleted, snap.Errors)

	if runErr != nil {
		return fmt.Errorf("run: %w", runErr)
	}
	if snap.Errors > 0 {
		return fmt.Errorf("completed with %d error(s), see log for details", snap.Errors)
	}
	if loggedErrors > 0 {
		return fmt.Errorf("completed with %d error-level log entr(ies), see log for details", loggedErrors)
	}

	log.Successf("job %q: completed", job.Name)
	return nil
}
