package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// pingCmd represents the ping command
var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check connectivity to the remote server",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := initApp()
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		info, err := a.client.Ping(cmd.Context())
		if err != nil {
			return err
		}
		a.logger.Info("Server reachable",
			zap.String("url", a.cfg.Immich.URL),
			zap.String("version", info.Version),
		)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(pingCmd)
}
