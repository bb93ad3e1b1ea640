package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisBus carries envelopes over a redis pub/sub channel so producers and
// consumers can run in separate processes.
type RedisBus struct {
	rdb     *goredis.Client
	channel string
	logger  *zap.Logger
}

// NewRedisBus connects to redis and verifies the connection with a ping.
func NewRedisBus(cfg Config, logger *zap.Logger) (*RedisBus, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		return nil, errors.New("missing redis address")
	}
	channel := strings.TrimSpace(cfg.RedisChannel)
	if channel == "" {
		channel = "game-catalog.events"
	}
	timeout := time.Duration(cfg.DialTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    cfg.RedisPassword,
		DialTimeout: timeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisBus{
		rdb:     rdb,
		channel: channel,
		logger:  logger.With(zap.String("component", "redis_bus")),
	}, nil
}

// Publish serializes env onto the channel.
func (b *RedisBus) Publish(ctx context.Context, env Envelope) error {
	raw, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to encode envelope: %w", err)
	}
	if err := b.rdb.Publish(ctx, b.channel, raw).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", env.Topic, err)
	}
	return nil
}

// Subscribe starts a forwarder goroutine feeding handler until ctx is done.
func (b *RedisBus) Subscribe(ctx context.Context, handler Handler) error {
	if handler == nil {
		return errors.New("handler required")
	}
	sub := b.rdb.Subscribe(ctx, b.channel)

	// Wait for the subscription confirmation before returning.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					return
				}
				var env Envelope
				if err := json.Unmarshal([]byte(m.Payload), &env); err != nil {
					b.logger.Warn("Bad envelope on redis channel", zap.Error(err))
					continue
				}
				if err := handler(ctx, env); err != nil {
					b.logger.Warn("Event handler failed",
						zap.String("topic", string(env.Topic)),
						zap.String("event_id", env.ID),
						zap.Uint64("app_id", env.AppID),
						zap.Error(err),
					)
				}
			}
		}
	}()
	return nil
}

// Close closes the redis client.
func (b *RedisBus) Close() error {
	return b.rdb.Close()
}
