package events

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// MemoryBus delivers envelopes synchronously to in-process subscribers.
type MemoryBus struct {
	mu       sync.RWMutex
	handlers map[int]Handler
	nextID   int
	closed   bool
	logger   *zap.Logger
}

// ErrBusClosed is returned when publishing to a closed bus.
var ErrBusClosed = errors.New("event bus closed")

// NewMemoryBus creates an empty in-process bus.
func NewMemoryBus(logger *zap.Logger) *MemoryBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemoryBus{
		handlers: make(map[int]Handler),
		logger:   logger.With(zap.String("component", "memory_bus")),
	}
}

// Publish hands env to every subscriber in subscription order. Handler failures are logged
// and do not stop delivery to the remaining subscribers.
func (b *MemoryBus) Publish(ctx context.Context, env Envelope) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrBusClosed
	}
	handlers := make([]Handler, 0, len(b.handlers))
	for id := 0; id < b.nextID; id++ {
		if h, ok := b.handlers[id]; ok {
			handlers = append(handlers, h)
		}
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		if err := h(ctx, env); err != nil {
			b.logger.Warn("Event handler failed",
				zap.String("topic", string(env.Topic)),
				zap.String("event_id", env.ID),
				zap.Uint64("app_id", env.AppID),
				zap.Error(err),
			)
		}
	}
	return nil
}

// Subscribe registers handler. It is removed when ctx is done.
func (b *MemoryBus) Subscribe(ctx context.Context, handler Handler) error {
	if handler == nil {
		return errors.New("handler required")
	}
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrBusClosed
	}
	id := b.nextID
	b.nextID++
	b.handlers[id] = handler
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.handlers, id)
		b.mu.Unlock()
	}()
	return nil
}

// Close drops every subscriber.
func (b *MemoryBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.handlers = make(map[int]Handler)
	return nil
}
