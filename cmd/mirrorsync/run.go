package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jminer/mirror-sync/internal/app"
)

// newRunCmd builds "mirrorsync run [job...]". With no arguments every job
// configured in jobs.yaml runs, in file order; naming one or more jobs runs
// only those, in the order given on the command line.
func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [job...]",
		Short: "Run one or more configured jobs (all jobs if none named)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return app.Run(ctx, appCfg, log, args)
		},
	}
}
