package events

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recorder struct {
	mu   sync.Mutex
	seen []Envelope
}

func (r *recorder) handle(ctx context.Context, env Envelope) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, env)
	return nil
}

func TestEnvelopeRoundTrip(t *testing.T) {
	env, err := NewEnvelope(TopicNewBoxArt, 10, NewBoxArt{AppID: 10, LogoURL: "l", BackgroundURL: "b"})
	require.NoError(t, err)
	assert.NotEmpty(t, env.ID)
	assert.Equal(t, uint64(10), env.AppID)
	assert.JSONEq(t, `{"appID":10,"logoUrl":"l","backgroundUrl":"b"}`, string(env.Payload))

	var got NewBoxArt
	require.NoError(t, env.Decode(&got))
	assert.Equal(t, "l", got.LogoURL)
}

func TestMemoryBus(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	core, logs := observer.New(zap.WarnLevel)
	bus := NewMemoryBus(zap.New(core))

	var order []string
	require.NoError(t, bus.Subscribe(ctx, func(ctx context.Context, env Envelope) error {
		order = append(order, "first")
		return errors.New("consumer down")
	}))
	require.NoError(t, bus.Subscribe(ctx, func(ctx context.Context, env Envelope) error {
		order = append(order, "second")
		return nil
	}))

	env, _ := NewEnvelope(TopicNewImage, 1, NewImage{AppID: 1, Type: ImageIcon, URL: "u"})
	require.NoError(t, bus.Publish(ctx, env))

	assert.Equal(t, []string{"first", "second"}, order)
	assert.Equal(t, 1, logs.FilterMessage("Event handler failed").Len())

	require.NoError(t, bus.Close())
	assert.ErrorIs(t, bus.Publish(ctx, env), ErrBusClosed)
	assert.ErrorIs(t, bus.Subscribe(ctx, func(context.Context, Envelope) error { return nil }), ErrBusClosed)
}

func TestPublisher(t *testing.T) {
	ctx := context.Background()
	bus := NewMemoryBus(nil)
	rec := &recorder{}
	require.NoError(t, bus.Subscribe(ctx, rec.handle))
	pub := NewPublisher(bus, nil)

	require.NoError(t, pub.NewImage(ctx, NewImage{AppID: 7, Type: ImageLogo, URL: "https://cdn/logo.png"}))
	require.NoError(t, pub.NewBoxArt(ctx, NewBoxArt{AppID: 7, LogoURL: "l", BackgroundURL: "b"}))
	require.NoError(t, pub.NewHeroArt(ctx, NewHeroArt{AppID: 7, BackdropURL: "b", HeroArtURL: "h", Screenshots: []string{"s1", "s2"}}))

	require.Len(t, rec.seen, 3)
	assert.Equal(t, TopicNewImage, rec.seen[0].Topic)
	assert.Equal(t, TopicNewBoxArt, rec.seen[1].Topic)
	assert.Equal(t, TopicNewHeroArt, rec.seen[2].Topic)

	var hero NewHeroArt
	require.NoError(t, rec.seen[2].Decode(&hero))
	assert.Equal(t, []string{"s1", "s2"}, hero.Screenshots)
}

func TestPublisherValidation(t *testing.T) {
	ctx := context.Background()
	pub := NewPublisher(NewMemoryBus(nil), nil)

	assert.ErrorIs(t, pub.NewImage(ctx, NewImage{AppID: 1, Type: ImageIcon}), ErrInvalidEvent)
	assert.ErrorIs(t, pub.NewBoxArt(ctx, NewBoxArt{AppID: 1, LogoURL: "l"}), ErrInvalidEvent)
	assert.ErrorIs(t, pub.NewHeroArt(ctx, NewHeroArt{AppID: 1, HeroArtURL: "h", Screenshots: []string{"1", "2", "3", "4"}}), ErrInvalidEvent)
}

func TestNewBus(t *testing.T) {
	bus, err := NewBus(Config{Driver: DriverMemory}, nil)
	require.NoError(t, err)
	assert.IsType(t, &MemoryBus{}, bus)

	_, err = NewBus(Config{Driver: "kafka"}, nil)
	assert.ErrorContains(t, err, "unsupported bus driver")

	_, err = NewBus(Config{Driver: DriverRedis, RedisAddr: "127.0.0.1:1", DialTimeoutSeconds: 1}, nil)
	assert.ErrorContains(t, err, "redis ping")

	_, err = NewRedisBus(Config{}, nil)
	assert.ErrorContains(t, err, "missing redis address")
}
