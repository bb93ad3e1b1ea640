package cmd

import (
	"context"
	"fmt"

	"game-catalog/core/events"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var processAssets bool

// ingestCmd runs the ingestion pipeline for one game.
var ingestCmd = &cobra.Command{
	Use:   "ingest [appID]",
	Short: "Ingest a game from the provider",
	Long: `Fetches the provider documents of a game, stores the canonical record and
publishes its asset events. With --process and the in-process bus the assets
are also downloaded and written to storage before the command exits.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIngest(cmd.Context(), args[0])
	},
}

func init() {
	ingestCmd.Flags().BoolVar(&processAssets, "process", false, "process published assets in-process (memory bus only)")
	RootCmd.AddCommand(ingestCmd)
}

func runIngest(ctx context.Context, raw string) error {
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

	if processAssets {
		if svc.cfg.Bus.Driver != events.DriverMemory {
			svc.logger.Warn("--process ignored, assets are consumed by the running server", zap.String("bus", svc.cfg.Bus.Driver))
		} else {
			consumer, err := svc.mediaFeature(ctx)
			if err != nil {
				return fmt.Errorf("media consumer unavailable: %w", err)
			}
			if err := consumer.Start(); err != nil {
				return fmt.Errorf("media consumer failed to start: %w", err)
			}
		}
	}

	svc.logger.Info("Ingesting game...", zap.Uint64("app_id", appID))
	game, err := svc.catalog.Service().Ingest(ctx, appID)
	if err != nil {
		return fmt.Errorf("ingest %d failed: %w", appID, err)
	}
	printGame(game)
	return nil
}
