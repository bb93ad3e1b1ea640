package catalog

import (
	"context"
	"sync"
	"testing"

	"game-catalog/core/database"
	"game-catalog/core/events"
	"game-catalog/feature/catalog/discovery"
	"game-catalog/feature/catalog/fetch"
	"game-catalog/feature/catalog/fetch/fetchtest"
	"game-catalog/feature/catalog/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testAppID = 4000

type recorder struct {
	mu   sync.Mutex
	envs []events.Envelope
}

func (r *recorder) handle(ctx context.Context, env events.Envelope) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.envs = append(r.envs, env)
	return nil
}

func (r *recorder) count(topic events.Topic) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.envs {
		if e.Topic == topic {
			n++
		}
	}
	return n
}

type env struct {
	feature  *Feature
	provider *fetchtest.Provider
	events   *recorder
}

func setupFeature(t *testing.T) *env {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, &models.Game{}))

	p := fetchtest.New(t, testAppID)
	bus := events.NewMemoryBus(nil)
	rec := &recorder{}
	require.NoError(t, bus.Subscribe(context.Background(), rec.handle))

	f := NewFeature(db, fetch.NewClient(p.Config(), nil), events.NewPublisher(bus, nil), discovery.Options{}, zap.NewNop())
	return &env{feature: f, provider: p, events: rec}
}
