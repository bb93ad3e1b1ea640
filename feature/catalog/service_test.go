package catalog

import (
	"context"
	"net/http"
	"testing"

	"game-catalog/core/events"
	"game-catalog/feature/catalog/fetch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Ingest(t *testing.T) {
	t.Run("StoresAndPublishesOnce", func(t *testing.T) {
		e := setupFeature(t)
		svc := e.feature.Service()

		game, err := svc.Ingest(context.Background(), testAppID)
		require.NoError(t, err)
		assert.Equal(t, "space-survival-deluxe-edition", game.Slug)
		assert.Equal(t, 5, e.events.count(events.TopicNewImage))
		assert.Equal(t, 1, e.events.count(events.TopicNewBoxArt))
		assert.Equal(t, 1, e.events.count(events.TopicNewHeroArt))

		again, err := svc.Ingest(context.Background(), testAppID)
		require.NoError(t, err)
		assert.Equal(t, game.ID, again.ID)
		assert.Equal(t, 5, e.events.count(events.TopicNewImage), "duplicate create must not publish")
	})

	t.Run("ResurrectsAfterTombstone", func(t *testing.T) {
		e := setupFeature(t)
		svc := e.feature.Service()

		_, err := svc.Ingest(context.Background(), testAppID)
		require.NoError(t, err)
		require.NoError(t, svc.Tombstone(context.Background(), testAppID))

		_, err = svc.Get(context.Background(), testAppID)
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = svc.Ingest(context.Background(), testAppID)
		require.NoError(t, err)
		assert.Equal(t, 2, e.events.count(events.TopicNewHeroArt))

		games, total, err := svc.List(context.Background(), 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, games, 1)
	})

	t.Run("ProviderUnavailable", func(t *testing.T) {
		e := setupFeature(t)
		e.provider.SetStatus("primary", http.StatusInternalServerError)

		_, err := e.feature.Service().Ingest(context.Background(), testAppID)
		assert.ErrorIs(t, err, fetch.ErrProviderUnavailable)
		assert.Zero(t, e.events.count(events.TopicNewImage))
	})

	t.Run("InvalidID", func(t *testing.T) {
		e := setupFeature(t)
		svc := e.feature.Service()

		_, err := svc.Ingest(context.Background(), 0)
		assert.ErrorIs(t, err, ErrInvalidAppID)
		_, err = svc.Get(context.Background(), 0)
		assert.ErrorIs(t, err, ErrInvalidAppID)
		assert.ErrorIs(t, svc.Tombstone(context.Background(), 0), ErrInvalidAppID)
	})

	t.Run("TombstoneMissing", func(t *testing.T) {
		e := setupFeature(t)
		assert.ErrorIs(t, e.feature.Service().Tombstone(context.Background(), 1), ErrNotFound)
	})
}
