package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jminer/mirror-sync/internal/config"
)

// newJobsCmd builds "mirrorsync jobs", a quick inventory of what a jobs.yaml
// actually configures, useful before scripting a "run" invocation against
// an unfamiliar config directory.
func newJobsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "jobs",
		Short: "List configured jobs and their directory pairs",
		RunE: func(cmd *cobra.Command, args []string) error {
			jobsFile := appCfg.JobsFile
			if jobsFile == "" {
				jobsFile = config.DefaultJobsFile(appCfg.ConfigDir)
			}

			jobs, err := config.LoadJobs(jobsFile)
			if err != nil {
				return err
			}

			if len(jobs) == 0 {
				fmt.Println("no jobs configured")
				return nil
			}

			for _, job := range jobs {
				fmt.Printf("%s (parallel_copies=%d)\n", job.Name, job.ParallelCopies)
				for _, pair := range job.Directories {
					fmt.Printf("  %s -> %s\n", pair.Source, pair.Destination)
				}
				for _, pattern := range job.Exclude {
					fmt.Printf("  exclude: %s\n", pattern)
				}
			}
			return nil
		},
	}
}
