package cmd

import (
	"context"
	"errors"
	"fmt"

	"game-catalog/core/config"
	"game-catalog/core/database"
	"game-catalog/core/events"
	"game-catalog/core/logger"
	"game-catalog/core/storage"
	"game-catalog/feature/catalog"
	"game-catalog/feature/catalog/discovery"
	"game-catalog/feature/catalog/fetch"
	"game-catalog/feature/catalog/models"
	"game-catalog/feature/media"
	"game-catalog/feature/media/composite"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// services is the wiring shared by the server and the CLI commands.
type services struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      *gorm.DB
	bus     events.Bus
	client  *fetch.Client
	catalog *catalog.Feature
}

func bootstrap() (*services, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db := openDatabase(cfg.Database, logg)

	bus, err := events.NewBus(cfg.Bus, logg)
	if err != nil {
		return nil, fmt.Errorf("failed to create event bus: %w", err)
	}

	client := fetch.NewClient(cfg.Provider, logg)
	opts := discovery.Options{
		Threshold:         cfg.Media.SimilarityThreshold,
		RejectPoorMatches: cfg.Media.RejectPoorMatches,
		GallerySize:       cfg.Media.GallerySize,
	}

	return &services{
		cfg:     cfg,
		logger:  logg,
		db:      db,
		bus:     bus,
		client:  client,
		catalog: catalog.NewFeature(db, client, events.NewPublisher(bus, logg), opts, logg),
	}, nil
}

// openDatabase connects and migrates the catalog schema. A failed connection
// leaves the catalog feature disabled instead of aborting.
func openDatabase(cfg database.Config, logg *zap.Logger) *gorm.DB {
	db, err := database.Connect(cfg)
	if err != nil {
		logg.Warn("Optional database connection failed", zap.Error(err))
		return nil
	}

	if cfg.AutoMigrate {
		if err := database.Migrate(db, &models.Game{}); err != nil {
			logg.Error("Catalog migration failed", zap.Error(err))
			return nil
		}
	}

	missing, err := database.MissingColumns(db, models.Game{}.TableName(), append([]string{"id"}, models.Game{}.Columns()...))
	if err != nil {
		logg.Warn("Catalog schema check failed", zap.Error(err))
		return nil
	}
	if len(missing) > 0 {
		logg.Error("Catalog schema incomplete", zap.Strings("missing_columns", missing))
		return nil
	}

	logg.Info("Connected to catalog database", zap.String("driver", cfg.Driver))
	return db
}

// mediaFeature builds the asset consumer writing into the configured bucket.
func (s *services) mediaFeature(ctx context.Context) (*media.Feature, error) {
	client, err := storage.NewClient(s.cfg.Storage)
	if err != nil {
		return nil, err
	}
	if err := storage.EnsureBucket(ctx, client, s.cfg.Storage.Bucket, s.cfg.Storage.Region); err != nil {
		return nil, err
	}

	sink := media.NewStorageSink(client, s.cfg.Storage.Bucket, s.cfg.Media.KeyPrefix)
	builder := composite.New(s.cfg.Media.BoxArtWidth, s.cfg.Media.BoxArtHeight)
	processor := media.NewProcessor(s.client, sink, builder, s.logger)
	return media.NewFeature(ctx, s.bus, processor, s.cfg.Media, s.logger), nil
}

var errCatalogUnavailable = errors.New("catalog database unavailable")

// requireCatalog fails when the catalog feature has no database.
func (s *services) requireCatalog() error {
	if !s.catalog.IsEnabled() {
		return fmt.Errorf("%w (driver %s)", errCatalogUnavailable, s.cfg.Database.Driver)
	}
	return nil
}

func (s *services) close() {
	if err := s.bus.Close(); err != nil {
		s.logger.Warn("Failed to close event bus", zap.Error(err))
	}
	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = s.logger.Sync()
}
