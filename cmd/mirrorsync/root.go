package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jminer/mirror-sync/internal/logging"
	"github.com/jminer/mirror-sync/internal/types"
	"github.com/jminer/mirror-sync/internal/utils"
)

// root holds the flags shared by every subcommand: where config lives,
// where logs go, and the per-run worker override. Built once in
// PersistentPreRunE so run/jobs/validate all see the same resolved values.
var (
	flagConfigDir string
	flagJobsFile  string
	flagLogDir    string
	flagNoLogs    bool
	flagWalkers   int

	appCfg types.AppConfig
	log    *logging.Logger
)

func newRootCmd() *cobra.Command {
	root, err := utils.ExeDir()
	if err != nil {
		root, _ = os.Getwd()
	}
	defaultConfigDir := filepath.Join(root, "config")
	defaultLogDir := filepath.Join(root, "logs")

	cmd := &cobra.Command{
		Use:           "mirrorsync",
		Short:         "Mirror source directories into destination directories, deleting what no longer exists at the source",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			appCfg = types.AppConfig{
				ConfigDir:    flagConfigDir,
				JobsFile:     flagJobsFile,
				LogRetention: 30,
				LogSettings: logging.LogSettings{
					NoLogs: flagNoLogs,
					LogDir: flagLogDir,
				},
				WalkersOverride: flagWalkers,
			}

			var err error
			log, err = logging.New(appCfg.ConfigDir, appCfg.LogSettings)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&flagConfigDir, "config", defaultConfigDir, "configuration directory (jobs.yaml, logging.json)")
	cmd.PersistentFlags().StringVar(&flagJobsFile, "jobs-file", "", "path to jobs.yaml (defaults to <config>/jobs.yaml)")
	cmd.PersistentFlags().StringVar(&flagLogDir, "log-dir", defaultLogDir, "log directory (unused when --no-logs is set)")
	cmd.PersistentFlags().BoolVar(&flagNoLogs, "no-logs", false, "disable file logging, write to stdout instead")
	cmd.PersistentFlags().IntVar(&flagWalkers, "walkers", 0, "override every job's parallel worker count (0 = use each job's own setting)")

	cmd.AddCommand(newRunCmd(), newJobsCmd(), newValidateCmd())
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "mirrorsync:", err)
		os.Exit(1)
	}
}
