// Package config loads the mirror-sync jobs file: a YAML document
// describing one or more independent sync jobs, each translated into
// exactly one synccore.Config.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jminer/mirror-sync/internal/filter"
	"github.com/jminer/mirror-sync/internal/synccore"
)

// DirectoryPair is one (source, destination) root a Job mirrors, as
// authored in jobs.yaml.
type DirectoryPair struct {
	Source      string `yaml:"source"`
	Destination string `yaml:"destination"`
}

// Job is one independently runnable sync job: its own policy, its own
// directory pairs, its own exclude list. Supplements spec.md's single
// (policy, directory-pairs) Config with the multi-job shape the original
// GUI tool's Job struct exposed (see _examples/original_source/src/main.rs).
type Job struct {
	Name string `yaml:"name"`

	ParallelCopies                int   `yaml:"parallel_copies"`
	CopyIfDateMismatched           bool  `yaml:"copy_if_date_mismatched"`
	CopyIfSizeMismatched           bool  `yaml:"copy_if_size_mismatched"`
	CopyIfHeadTailMismatchedBytes  int64 `yaml:"copy_if_head_tail_mismatched_bytes"`
	CopyCreatedDate                bool  `yaml:"copy_created_date"`
	CopyModifiedDate               bool  `yaml:"copy_modified_date"`

	// Exclude is a list of glob patterns (see internal/filter) a path must
	// not match to participate in the sync. This is the blacklist the
	// original GUI tracked per job.
	Exclude []string `yaml:"exclude"`

	Directories []DirectoryPair `yaml:"directories"`
}

type jobsFile struct {
	Jobs []Job `yaml:"jobs"`
}

// LoadJobs parses a jobs.yaml document at path into a slice of Job, in the
// order given. An empty or missing Name, or a job with no directory pairs,
// is a load error: both indicate a jobs.yaml an operator almost certainly
// didn't intend to run as-is.
func LoadJobs(path string) ([]Job, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read jobs file: %w", err)
	}

	var doc jobsFile
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse jobs file: %w", err)
	}

	seen := make(map[string]bool, len(doc.Jobs))
	for i, job := range doc.Jobs {
		if job.Name == "" {
			return nil, fmt.Errorf("job %d: missing name", i)
		}
		if seen[job.Name] {
			return nil, fmt.Errorf("job %q: duplicate name", job.Name)
		}
		seen[job.Name] = true

		if len(job.Directories) == 0 {
			return nil, fmt.Errorf("job %q: no directories configured", job.Name)
		}
		for _, d := range job.Directories {
			if d.Source == "" || d.Destination == "" {
				return nil, fmt.Errorf("job %q: directory pair missing source or destination", job.Name)
			}
		}
	}

	return doc.Jobs, nil
}

// DefaultJobsFile returns configDir/jobs.yaml, the conventional location a
// jobs file lives at next to logging.json.
func DefaultJobsFile(configDir string) string {
	return filepath.Join(configDir, "jobs.yaml")
}

// ToSyncConfig translates a Job into the synccore.Config the engine
// actually runs: directory pairs copied verbatim, exclude patterns compiled
// into a Filter, and stamper wired in as given (nil disables stamping
// regardless of the Copy*Date flags, matching synccore's own contract).
func (j Job) ToSyncConfig(stamper synccore.Stamper) (synccore.Config, error) {
	excludeSet, err := filter.New(j.Exclude)
	if err != nil {
		return synccore.Config{}, fmt.Errorf("job %q: compile exclude patterns: %w", j.Name, err)
	}

	pairs := make([]synccore.DirectoryPair, len(j.Directories))
	for i, d := range j.Directories {
		pairs[i] = synccore.DirectoryPair{Source: d.Source, Destination: d.Destination}
	}

	return synccore.Config{
		ParallelCopies:                j.ParallelCopies,
		CopyIfDateMismatched:          j.CopyIfDateMismatched,
		CopyIfSizeMismatched:          j.CopyIfSizeMismatched,
		CopyIfHeadTailMismatchedBytes: j.CopyIfHeadTailMismatchedBytes,
		CopyCreatedDate:               j.CopyCreatedDate,
		CopyModifiedDate:              j.CopyModifiedDate,
		DirectoryPairs:                pairs,
		Filter:                        excludeSet.Match,
		Stamper:                       stamper,
	}, nil
}
