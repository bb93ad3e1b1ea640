package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// tombstoneCmd soft-deletes a game.
var tombstoneCmd = &cobra.Command{
	Use:   "tombstone [appID]",
	Short: "Soft-delete a game",
	Long:  `Marks a game as tombstoned. A later ingest of the same app id resurrects it.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTombstone(cmd.Context(), args[0])
	},
}

func init() {
	RootCmd.AddCommand(tombstoneCmd)
}

func runTombstone(ctx context.Context, raw string) error {
	appID, err := parseAppID(raw)
	if err != nil {
		return err
	}

	svc, err := bootstrap()
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer svc.close()
	if err := svc.requireCatalog(); err != nil {
		return err
	}

	if err := svc.catalog.Service().Tombstone(ctx, appID); err != nil {
		return fmt.Errorf("tombstone %d failed: %w", appID, err)
	}
	svc.logger.Info("Game tombstoned", zap.Uint64("app_id", appID))
	fmt.Printf("Game %d tombstoned\n", appID)
	return nil
}
