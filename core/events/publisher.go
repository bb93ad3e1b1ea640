package events

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrInvalidEvent is returned for payloads missing required fields.
var ErrInvalidEvent = errors.New("invalid event")

// Publisher emits typed asset events on a bus.
type Publisher struct {
	bus    Bus
	logger *zap.Logger
}

// NewPublisher creates a publisher over bus.
func NewPublisher(bus Bus, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{bus: bus, logger: logger.With(zap.String("component", "publisher"))}
}

// NewImage publishes a new_image event.
func (p *Publisher) NewImage(ctx context.Context, ev NewImage) error {
	if ev.AppID == 0 || ev.URL == "" || ev.Type == "" {
		return fmt.Errorf("%w: new image needs app id, type and url", ErrInvalidEvent)
	}
	return p.publish(ctx, TopicNewImage, ev.AppID, ev)
}

// NewBoxArt publishes a new_box_art event.
func (p *Publisher) NewBoxArt(ctx context.Context, ev NewBoxArt) error {
	if ev.AppID == 0 || ev.LogoURL == "" || ev.BackgroundURL == "" {
		return fmt.Errorf("%w: box art needs logo and background urls", ErrInvalidEvent)
	}
	return p.publish(ctx, TopicNewBoxArt, ev.AppID, ev)
}

// NewHeroArt publishes a new_hero_art event.
func (p *Publisher) NewHeroArt(ctx context.Context, ev NewHeroArt) error {
	if ev.AppID == 0 || ev.HeroArtURL == "" {
		return fmt.Errorf("%w: hero art needs a hero url", ErrInvalidEvent)
	}
	if len(ev.Screenshots) > 3 {
		return fmt.Errorf("%w: at most 3 screenshots, got %d", ErrInvalidEvent, len(ev.Screenshots))
	}
	return p.publish(ctx, TopicNewHeroArt, ev.AppID, ev)
}

func (p *Publisher) publish(ctx context.Context, topic Topic, appID uint64, payload any) error {
	env, err := NewEnvelope(topic, appID, payload)
	if err != nil {
		return err
	}
	if err := p.bus.Publish(ctx, env); err != nil {
		return fmt.Errorf("failed to publish %s: %w", topic, err)
	}
	p.logger.Debug("Event published",
		zap.String("topic", string(topic)),
		zap.String("event_id", env.ID),
		zap.Uint64("app_id", appID),
	)
	return nil
}
