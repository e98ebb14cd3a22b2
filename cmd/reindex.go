package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var reindexYes bool

// reindexCmd represents the reindex command
var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Drop all variants and rebuild from scratch",
	Long: `Deletes every converted variant and all index rows, then runs a full
reconciliation pass so the library is rebuilt from the remote server.

Examples:
  # With interactive confirmation
  reindex

  # Auto-confirm (non-interactive)
  reindex --yes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := initApp()
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		if !confirmDestructiveAction() {
			a.logger.Warn("Operation cancelled by user. No changes were made.")
			return nil
		}

		if err := a.store.Wipe(); err != nil {
			return fmt.Errorf("failed to wipe store: %w", err)
		}
		a.logger.Info("Store wiped, starting rebuild")

		_, err = a.syncService().Run(cmd.Context())
		return err
	},
}

func init() {
	reindexCmd.Flags().BoolVar(&reindexYes, "yes", false, "Auto-confirm destructive actions (non-interactive)")
	RootCmd.AddCommand(reindexCmd)
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if reindexYes {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to delete all local variants and index rows: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
