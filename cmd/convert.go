package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Rebuild missing variants",
	Long: `Drops index entries whose variant files are missing or empty on disk,
then runs a reconciliation pass so the affected assets are downloaded
and converted again.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := initApp()
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		if err := a.store.Sweep(); err != nil {
			a.logger.Warn("Temp file sweep failed", zap.Error(err))
		}
		healed, err := a.store.Verify()
		if err != nil {
			return err
		}
		a.logger.Info("Index verified", zap.Int("dropped", healed))

		_, err = a.syncService().Run(cmd.Context())
		return err
	},
}

func init() {
	RootCmd.AddCommand(convertCmd)
}
