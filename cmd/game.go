package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"game-catalog/feature/catalog/models"

	"github.com/spf13/cobra"
)

// gameCmd prints the stored record of a game.
var gameCmd = &cobra.Command{
	Use:   "game [appID]",
	Short: "Show the stored record of a game",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGameDetail(cmd.Context(), args[0])
	},
}

func init() {
	RootCmd.AddCommand(gameCmd)
}

func runGameDetail(ctx context.Context, raw string) error {
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

	game, err := svc.catalog.Service().Get(ctx, appID)
	if err != nil {
		return fmt.Errorf("game %d lookup failed: %w", appID, err)
	}
	printGame(game)
	return nil
}

func parseAppID(raw string) (uint64, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid app id %q", raw)
	}
	return id, nil
}

func printGame(g *models.Game) {
	tags := make([]string, 0)
	for _, t := range g.TagList() {
		tags = append(tags, t.Name)
	}
	genres := make([]string, 0)
	for _, t := range g.GenreList() {
		genres = append(genres, t.Name)
	}
	primary := "-"
	if g.PrimaryGenre != nil {
		primary = *g.PrimaryGenre
	}
	released := "-"
	if g.ReleaseDate != nil {
		released = g.ReleaseDate.Format("2006-01-02")
	}

	fmt.Println("\n--- Game Detail View ---")
	fmt.Printf("ID:             %d\n", g.ID)
	fmt.Printf("Name:           %s\n", g.Name)
	fmt.Printf("Slug:           %s\n", g.Slug)
	fmt.Printf("Released:       %s\n", released)
	fmt.Printf("Score:          %.2f\n", g.Score)
	fmt.Printf("Primary Genre:  %s\n", primary)
	fmt.Printf("Genres:         %s\n", strings.Join(genres, ", "))
	fmt.Printf("Tags:           %s\n", strings.Join(tags, ", "))
	fmt.Printf("Developers:     %s\n", strings.Join(g.DeveloperList(), ", "))
	fmt.Printf("Publishers:     %s\n", strings.Join(g.PublisherList(), ", "))
	fmt.Printf("Controller:     %s\n", g.ControllerSupport)
	fmt.Printf("Compatibility:  %s\n", g.Compatibility)
	fmt.Printf("Download Size:  %d bytes\n", g.Size.DownloadSizeBytes)
	fmt.Printf("Installed Size: %d bytes\n", g.Size.InstalledSizeBytes)
	fmt.Println("------------------------")
}
