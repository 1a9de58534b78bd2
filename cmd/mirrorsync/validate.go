package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jminer/mirror-sync/internal/config"
	"github.com/jminer/mirror-sync/internal/validate"
)

// newValidateCmd builds "mirrorsync validate", which checks that jobs.yaml
// parses and every job's sources exist and destinations are writable,
// without copying or deleting anything. The --legacy flag instead migrates
// a teacher-era config.ini into the jobs.yaml shape and validates the
// result in memory; the migrated job is neither written to disk nor
// printed, only its ok/FAIL line is.
func newValidateCmd() *cobra.Command {
	var legacyIniPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate jobs.yaml (or migrate and validate a legacy config.ini)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var jobs []config.Job

			if legacyIniPath != "" {
				job, err := config.LoadLegacyJob("migrated", legacyIniPath, log)
				if err != nil {
					return fmt.Errorf("migrate legacy config: %w", err)
				}
				jobs = []config.Job{job}
			} else {
				jobsFile := appCfg.JobsFile
				if jobsFile == "" {
					jobsFile = config.DefaultJobsFile(appCfg.ConfigDir)
				}
				var err error
				jobs, err = config.LoadJobs(jobsFile)
				if err != nil {
					return fmt.Errorf("load jobs: %w", err)
				}
			}

			var failed int
			for _, job := range jobs {
				if err := validate.Job(job); err != nil {
					failed++
					fmt.Printf("%s: FAIL: %v\n", job.Name, err)
					continue
				}
				fmt.Printf("%s: ok\n", job.Name)
			}

			if failed > 0 {
				return fmt.Errorf("%d job(s) failed validation", failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&legacyIniPath, "legacy", "", "migrate and validate a legacy config.ini instead of jobs.yaml")
	return cmd
}
