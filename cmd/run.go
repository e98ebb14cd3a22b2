package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Sync once, then serve",
	Long: `Runs a reconciliation pass and then starts the HTTP server. When
sync.interval_minutes is set, further passes run periodically in the
background while the server is up.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := initApp()
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		if err := runSyncPass(cmd.Context(), a); err != nil {
			// A failed pass leaves the library stale, not broken;
			// still serve whatever was committed before.
			a.logger.Error("Initial sync pass failed", zap.Error(err))
		}

		if a.cfg.Sync.IntervalMinutes > 0 {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			go resyncLoop(ctx, a)
		}

		return serveHTTP(a)
	},
}

func init() {
	RootCmd.AddCommand(runCmd)
}

func resyncLoop(ctx context.Context, a *app) {
	interval := time.Duration(a.cfg.Sync.IntervalMinutes) * time.Minute
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	a.logger.Info("Periodic sync enabled", zap.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := a.syncService().Run(ctx); err != nil {
				a.logger.Error("Periodic sync pass failed", zap.Error(err))
			}
		}
	}
}
