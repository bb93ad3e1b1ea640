package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"game-catalog/core/loader"
	"game-catalog/core/logger"
	"game-catalog/core/middleware/auth"
	"game-catalog/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "game-catalog/docs/swagger"
)

// @title Game Catalog API
// @version 1.0
// @description API for ingesting and browsing the game catalog.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the game catalog server",
	Long:  `Starts the HTTP server, the media consumer and all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := bootstrap()
		if err != nil {
			return fmt.Errorf("failed to start: %w", err)
		}
		defer svc.close()
		logg := svc.logger
		zap.ReplaceGlobals(logg)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             svc.cfg.Server.BodyLimitBytes,
		})

		mgr := loader.NewManager(logg)
		mgr.Register(svc.catalog)
		if svc.cfg.Media.ConsumerEnabled {
			consumer, err := svc.mediaFeature(ctx)
			if err != nil {
				logg.Warn("Media consumer unavailable", zap.Error(err))
			} else {
				mgr.Register(consumer)
			}
		}

		// RayID first so every later log line carries it.
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		app.Get("/swagger/*", swagger.HandlerDefault)

		if !svc.cfg.Server.AuthEnabled() {
			logg.Warn("API key not set, requests are not authenticated")
		}
		app.Use(auth.New(auth.Config{ApiKey: svc.cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			return fmt.Errorf("failed to load features: %w", err)
		}

		listenErr := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("address", svc.cfg.Server.Address()))
			listenErr <- app.Listen(svc.cfg.Server.Address())
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		select {
		case err := <-listenErr:
			return fmt.Errorf("server failed to start: %w", err)
		case <-c:
		}
		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
