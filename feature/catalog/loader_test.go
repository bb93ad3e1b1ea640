package catalog

import (
	"testing"

	"game-catalog/core/events"
	"game-catalog/feature/catalog/discovery"
	"game-catalog/feature/catalog/fetch"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLoader(t *testing.T) {
	e := setupFeature(t)

	assert.Equal(t, "catalog", e.feature.Name())
	assert.True(t, e.feature.IsEnabled())
	assert.NotNil(t, e.feature.Service())
	assert.NoError(t, e.feature.Load(fiber.New()))

	// Without a database the feature stays unloaded.
	noDB := NewFeature(nil, fetch.NewClient(fetch.Config{}, nil), events.NewPublisher(events.NewMemoryBus(nil), nil), discovery.Options{}, zap.NewNop())
	assert.False(t, noDB.IsEnabled())
}
