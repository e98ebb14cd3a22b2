package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one reconciliation pass",
	Long: `Runs a single reconciliation pass: lists remote albums, downloads and
converts new or changed assets, and updates the local index. Exits once
the pass completes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := initApp()
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		return runSyncPass(cmd.Context(), a)
	},
}

func init() {
	RootCmd.AddCommand(syncCmd)
}

// runSyncPass sweeps stale temp files, heals the index, and runs one pass.
func runSyncPass(ctx context.Context, a *app) error {
	if err := a.store.Sweep(); err != nil {
		a.logger.Warn("Temp file sweep failed", zap.Error(err))
	}
	if _, err := a.store.Verify(); err != nil {
		a.logger.Warn("Index verification failed", zap.Error(err))
	}

	_, err := a.syncService().Run(ctx)
	return err
}
