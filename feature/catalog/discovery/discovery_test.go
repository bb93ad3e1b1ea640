package discovery

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"game-catalog/core/events"
	"game-catalog/feature/catalog/fetch"
	"game-catalog/feature/catalog/fetch/fetchtest"
	"game-catalog/feature/media/ranking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const appID = 4000

type sink struct {
	mu   sync.Mutex
	envs []events.Envelope
}

func (s *sink) handle(ctx context.Context, env events.Envelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.envs = append(s.envs, env)
	return nil
}

func (s *sink) byTopic(topic events.Topic) []events.Envelope {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []events.Envelope
	for _, e := range s.envs {
		if e.Topic == topic {
			out = append(out, e)
		}
	}
	return out
}

func (s *sink) hero(t *testing.T) events.NewHeroArt {
	t.Helper()
	envs := s.byTopic(events.TopicNewHeroArt)
	require.Len(t, envs, 1)
	var ev events.NewHeroArt
	require.NoError(t, envs[0].Decode(&ev))
	return ev
}

func setup(t *testing.T, opts Options) (*Discoverer, *fetchtest.Provider, *sink) {
	t.Helper()
	p := fetchtest.New(t, appID)
	bus := events.NewMemoryBus(nil)
	s := &sink{}
	require.NoError(t, bus.Subscribe(context.Background(), s.handle))
	d := New(fetch.NewClient(p.Config(), nil), events.NewPublisher(bus, nil), opts, nil)
	return d, p, s
}

func TestDiscover(t *testing.T) {
	t.Run("PublishesEveryFamily", func(t *testing.T) {
		d, p, s := setup(t, Options{})

		require.NoError(t, d.Discover(context.Background(), appID))

		images := s.byTopic(events.TopicNewImage)
		require.Len(t, images, 5)
		var kinds []events.ImageType
		for _, env := range images {
			var ev events.NewImage
			require.NoError(t, env.Decode(&ev))
			assert.Equal(t, uint64(appID), ev.AppID)
			kinds = append(kinds, ev.Type)
		}
		assert.Equal(t, []events.ImageType{
			events.ImageBackdrop, events.ImageBanner, events.ImageIcon, events.ImageLogo, events.ImagePoster,
		}, kinds)

		boxes := s.byTopic(events.TopicNewBoxArt)
		require.Len(t, boxes, 1)
		var box events.NewBoxArt
		require.NoError(t, boxes[0].Decode(&box))
		assert.Equal(t, p.CDNURL("logo.png"), box.LogoURL)
		assert.Equal(t, p.CDNURL("library_hero.jpg"), box.BackgroundURL)

		hero := s.hero(t)
		assert.Equal(t, p.CDNURL("library_hero.jpg"), hero.BackdropURL)
		assert.Equal(t, p.ImageURL("ss_1.png"), hero.HeroArtURL)
		assert.Equal(t, []string{p.ImageURL("ss_2.png"), p.ImageURL("ss_0.png")}, hero.Screenshots)
	})

	t.Run("RanksSuccessfulSubset", func(t *testing.T) {
		d, p, s := setup(t, Options{})
		p.SetStatus("ss_0.png", http.StatusInternalServerError)

		require.NoError(t, d.Discover(context.Background(), appID))

		hero := s.hero(t)
		assert.Equal(t, p.ImageURL("ss_1.png"), hero.HeroArtURL)
		assert.Equal(t, []string{p.ImageURL("ss_2.png")}, hero.Screenshots)
	})

	t.Run("BackdropFailureStillPublishesOthers", func(t *testing.T) {
		d, p, s := setup(t, Options{})
		p.SetStatus("library_hero.jpg", http.StatusNotFound)

		err := d.Discover(context.Background(), appID)
		assert.ErrorIs(t, err, ranking.ErrImageRankingFailed)

		assert.Len(t, s.byTopic(events.TopicNewImage), 5)
		assert.Len(t, s.byTopic(events.TopicNewBoxArt), 1)
		assert.Empty(t, s.byTopic(events.TopicNewHeroArt))
	})

	t.Run("AllScreenshotsFail", func(t *testing.T) {
		d, p, s := setup(t, Options{})
		for _, name := range []string{"ss_0.png", "ss_1.png", "ss_2.png"} {
			p.SetStatus(name, http.StatusBadGateway)
		}

		err := d.Discover(context.Background(), appID)
		assert.ErrorIs(t, err, ranking.ErrImageRankingFailed)
		assert.Empty(t, s.byTopic(events.TopicNewHeroArt))
	})

	t.Run("RejectPoorMatches", func(t *testing.T) {
		d, p, s := setup(t, Options{Threshold: 0.08, RejectPoorMatches: true})

		require.NoError(t, d.Discover(context.Background(), appID))

		hero := s.hero(t)
		assert.Equal(t, p.ImageURL("ss_1.png"), hero.HeroArtURL)
		assert.Empty(t, hero.Screenshots)
	})

	t.Run("SingleScreenshotSkipsDownloads", func(t *testing.T) {
		d, p, s := setup(t, Options{})
		p.SetScreenshots("ss_0.png")

		require.NoError(t, d.Discover(context.Background(), appID))

		hero := s.hero(t)
		assert.Equal(t, p.ImageURL("ss_0.png"), hero.HeroArtURL)
		assert.Empty(t, hero.Screenshots)
		assert.Zero(t, p.Hits("image"))
	})

	t.Run("NoScreenshots", func(t *testing.T) {
		d, p, s := setup(t, Options{})
		p.SetScreenshots()

		require.NoError(t, d.Discover(context.Background(), appID))
		assert.Empty(t, s.byTopic(events.TopicNewHeroArt))
		assert.Len(t, s.byTopic(events.TopicNewImage), 5)
	})

	t.Run("PrimaryUnavailable", func(t *testing.T) {
		d, p, s := setup(t, Options{})
		p.SetStatus(fetchtest.RoutePrimary, http.StatusServiceUnavailable)

		err := d.Discover(context.Background(), appID)
		assert.ErrorIs(t, err, fetch.ErrProviderUnavailable)
		assert.Empty(t, s.envs)
	})
}
