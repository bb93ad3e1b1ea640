package cmd

import (
	"context"
	"testing"

	"game-catalog/core/config"
	"game-catalog/core/database"
	"game-catalog/core/events"
	"game-catalog/feature/catalog"
	"game-catalog/feature/catalog/discovery"
	"game-catalog/feature/catalog/fetch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func offlineServices() *services {
	bus := events.NewMemoryBus(nil)
	client := fetch.NewClient(fetch.Config{}, nil)
	return &services{
		cfg:     &config.Config{Database: database.Config{Driver: database.DriverSQLite}},
		logger:  zap.NewNop(),
		bus:     bus,
		client:  client,
		catalog: catalog.NewFeature(nil, client, events.NewPublisher(bus, nil), discovery.Options{}, zap.NewNop()),
	}
}

func TestRequireCatalog(t *testing.T) {
	svc := offlineServices()

	err := svc.requireCatalog()
	require.ErrorIs(t, err, errCatalogUnavailable)
	assert.Contains(t, err.Error(), "sqlite")
}

func TestClose_ReleasesBus(t *testing.T) {
	svc := offlineServices()

	svc.close()
	err := svc.bus.Subscribe(context.Background(), func(context.Context, events.Envelope) error { return nil })
	assert.ErrorIs(t, err, events.ErrBusClosed)
}

func TestParseAppID(t *testing.T) {
	id, err := parseAppID("730")
	require.NoError(t, err)
	assert.Equal(t, uint64(730), id)

	for _, raw := range []string{"0", "-1", "abc", ""} {
		_, err := parseAppID(raw)
		assert.Error(t, err, raw)
	}
}

func TestCommandsReturnErrors(t *testing.T) {
	for _, c := range []struct {
		name string
		run  func(context.Context, string) error
	}{
		{"ingest", runIngest},
		{"game", runGameDetail},
		{"tombstone", runTombstone},
	} {
		assert.EqualError(t, c.run(context.Background(), "abc"), `invalid app id "abc"`, c.name)
	}
	assert.NotNil(t, ingestCmd.RunE)
	assert.NotNil(t, gameCmd.RunE)
	assert.NotNil(t, tombstoneCmd.RunE)
	assert.NotNil(t, startCmd.RunE)
}
