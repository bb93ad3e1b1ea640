package events

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Handler consumes one envelope.
type Handler func(ctx context.Context, env Envelope) error

// Bus moves envelopes from producers to subscribed handlers.
type Bus interface {
	Publish(ctx context.Context, env Envelope) error
	// Subscribe registers handler until ctx is cancelled or the bus closes.
	Subscribe(ctx context.Context, handler Handler) error
	Close() error
}

// NewBus builds the bus selected by cfg.Driver.
func NewBus(cfg Config, logger *zap.Logger) (Bus, error) {
	switch cfg.Driver {
	case DriverRedis:
		return NewRedisBus(cfg, logger)
	case DriverMemory, "":
		return NewMemoryBus(logger), nil
	default:
		return nil, fmt.Errorf("unsupported bus driver: %s", cfg.Driver)
	}
}
