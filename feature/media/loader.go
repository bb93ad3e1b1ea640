package media

import (
	"context"
	"fmt"

	"game-catalog/core/events"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface for the asset consumer.
type Feature struct {
	ctx       context.Context
	bus       events.Bus
	processor *Processor
	enabled   bool
	logger    *zap.Logger
}

// NewFeature creates the consumer. The subscription lives until ctx is done.
func NewFeature(ctx context.Context, bus events.Bus, processor *Processor, cfg Config, logger *zap.Logger) *Feature {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Feature{
		ctx:       ctx,
		bus:       bus,
		processor: processor,
		enabled:   cfg.ConsumerEnabled && bus != nil && processor != nil,
		logger:    logger.With(zap.String("feature", "media")),
	}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "media"
}

// IsEnabled reports whether the consumer should subscribe.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Load subscribes the processor to the bus. No routes are registered.
func (f *Feature) Load(_ fiber.Router) error {
	return f.Start()
}

// Start subscribes the processor without an HTTP server, for CLI runs.
func (f *Feature) Start() error {
	if err := f.bus.Subscribe(f.ctx, f.processor.Handle); err != nil {
		return fmt.Errorf("subscribe media consumer: %w", err)
	}
	f.logger.Info("Media consumer subscribed")
	return nil
}
