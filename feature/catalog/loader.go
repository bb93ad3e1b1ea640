package catalog

import (
	"game-catalog/core/txn"
	"game-catalog/feature/catalog/discovery"
	"game-catalog/feature/catalog/fetch"
	"game-catalog/feature/catalog/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
	enabled bool
}

// NewFeature wires fetcher, store, transaction coordinator and asset discovery.
func NewFeature(db *gorm.DB, client *fetch.Client, pub discovery.Publisher, opts discovery.Options, logger *zap.Logger) *Feature {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := logger.With(zap.String("feature", "catalog"))

	disc := discovery.New(client, pub, opts, l)
	coord := txn.NewCoordinator(db, l)
	st := store.New(coord, disc.Discover, l)
	svc := NewService(client, st, l)

	return &Feature{
		service: svc,
		handler: NewHandler(svc, l),
		enabled: db != nil,
	}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "catalog"
}

// IsEnabled reports whether a database is available.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Service exposes the catalog service for CLI commands.
func (f *Feature) Service() *Service {
	return f.service
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
