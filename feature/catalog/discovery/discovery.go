package discovery

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"game-catalog/core/events"
	"game-catalog/feature/catalog/fetch"
	"game-catalog/feature/media/imagemeta"
	"game-catalog/feature/media/ranking"

	"go.uber.org/zap"
)

// maxGallery is the most screenshots a hero art event may carry.
const maxGallery = 3

// ImageSource resolves and downloads a game's images.
type ImageSource interface {
	FetchImageURLs(ctx context.Context, appID uint64) (*fetch.AssetURLs, error)
	FetchImage(ctx context.Context, url string) ([]byte, error)
}

// Publisher emits asset events.
type Publisher interface {
	NewImage(ctx context.Context, ev events.NewImage) error
	NewBoxArt(ctx context.Context, ev events.NewBoxArt) error
	NewHeroArt(ctx context.Context, ev events.NewHeroArt) error
}

// Options tunes screenshot selection.
type Options struct {
	Threshold         float64
	RejectPoorMatches bool
	GallerySize       int
}

// Discoverer finds a game's assets and publishes one event per asset family.
type Discoverer struct {
	source ImageSource
	pub    Publisher
	ranker *ranking.Ranker
	opts   Options
	logger *zap.Logger
}

// New creates a discoverer.
func New(source ImageSource, pub Publisher, opts Options, logger *zap.Logger) *Discoverer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.GallerySize <= 0 || opts.GallerySize > maxGallery {
		opts.GallerySize = maxGallery
	}
	return &Discoverer{
		source: source,
		pub:    pub,
		ranker: ranking.New(opts.Threshold),
		opts:   opts,
		logger: logger.With(zap.String("component", "discovery")),
	}
}

// Discover publishes new_image events for every single-URL asset, a box art
// event when logo and backdrop exist, and a hero art event from the ranked
// screenshots. A ranking failure is returned wrapping
// ranking.ErrImageRankingFailed after the other events have gone out.
func (d *Discoverer) Discover(ctx context.Context, appID uint64) error {
	urls, err := d.source.FetchImageURLs(ctx, appID)
	if err != nil {
		return fmt.Errorf("discover assets for %d: %w", appID, err)
	}

	var errs []error

	singles := []struct {
		kind events.ImageType
		url  string
	}{
		{events.ImageBackdrop, urls.Backdrop},
		{events.ImageBanner, urls.Banner},
		{events.ImageIcon, urls.Icon},
		{events.ImageLogo, urls.Logo},
		{events.ImagePoster, urls.Poster},
	}
	for _, s := range singles {
		if s.url == "" {
			continue
		}
		if err := d.pub.NewImage(ctx, events.NewImage{AppID: appID, Type: s.kind, URL: s.url}); err != nil {
			errs = append(errs, err)
		}
	}

	if urls.Logo != "" && urls.Backdrop != "" {
		ev := events.NewBoxArt{AppID: appID, LogoURL: urls.Logo, BackgroundURL: urls.Backdrop}
		if err := d.pub.NewBoxArt(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}

	if len(urls.Screenshots) > 0 {
		if err := d.publishHeroArt(ctx, urls); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	d.logger.Info("Assets discovered",
		zap.Uint64("app_id", appID),
		zap.Int("screenshots", len(urls.Screenshots)),
	)
	return nil
}

func (d *Discoverer) publishHeroArt(ctx context.Context, urls *fetch.AssetURLs) error {
	var ranked []ranking.Ranked

	if len(urls.Screenshots) == 1 {
		// Nothing to compare against; no downloads needed.
		r, err := d.ranker.Rank(nil, []ranking.Candidate{{URL: urls.Screenshots[0]}})
		if err != nil {
			return err
		}
		ranked = r
	} else {
		if urls.Backdrop == "" {
			d.logger.Warn("No backdrop to rank screenshots against", zap.Uint64("app_id", urls.AppID))
			return nil
		}
		ref, candidates, err := d.download(ctx, urls)
		if err != nil {
			return err
		}
		if ranked, err = d.ranker.Rank(ref, candidates); err != nil {
			return fmt.Errorf("%w: %w", ranking.ErrImageRankingFailed, err)
		}
	}

	if d.opts.RejectPoorMatches {
		ranked = d.ranker.Filter(ranked)
		if len(ranked) == 0 {
			d.logger.Info("Every screenshot rejected as a poor match", zap.Uint64("app_id", urls.AppID))
			return nil
		}
	}

	sel := ranking.Select(ranked, d.opts.GallerySize)
	ev := events.NewHeroArt{
		AppID:       urls.AppID,
		BackdropURL: urls.Backdrop,
		HeroArtURL:  sel.Hero.URL,
		Screenshots: make([]string, 0, len(sel.Gallery)),
	}
	for _, slot := range sel.Gallery {
		ev.Screenshots = append(ev.Screenshots, slot.URL)
	}
	return d.pub.NewHeroArt(ctx, ev)
}

// download fetches the backdrop and every screenshot concurrently. Failed
// screenshots are skipped; a failed backdrop or no usable screenshot fails.
func (d *Discoverer) download(ctx context.Context, urls *fetch.AssetURLs) (image.Image, []ranking.Candidate, error) {
	var (
		ref    image.Image
		refErr error
		images = make([]image.Image, len(urls.Screenshots))
		errs   = make([]error, len(urls.Screenshots))
		wg     sync.WaitGroup
	)

	wg.Add(1 + len(urls.Screenshots))

	go func() {
		defer wg.Done()
		ref, refErr = d.fetchImage(ctx, urls.Backdrop)
	}()

	for i, u := range urls.Screenshots {
		go func(i int, u string) {
			defer wg.Done()
			images[i], errs[i] = d.fetchImage(ctx, u)
		}(i, u)
	}

	wg.Wait()

	if refErr != nil {
		return nil, nil, fmt.Errorf("%w: backdrop: %w", ranking.ErrImageRankingFailed, refErr)
	}

	candidates := make([]ranking.Candidate, 0, len(images))
	for i, img := range images {
		if errs[i] != nil {
			d.logger.Warn("Skipping screenshot",
				zap.Uint64("app_id", urls.AppID),
				zap.String("url", urls.Screenshots[i]),
				zap.Error(errs[i]),
			)
			continue
		}
		candidates = append(candidates, ranking.Candidate{URL: urls.Screenshots[i], Image: img})
	}
	if len(candidates) == 0 {
		return nil, nil, fmt.Errorf("%w: no screenshot could be fetched", ranking.ErrImageRankingFailed)
	}
	return ref, candidates, nil
}

func (d *Discoverer) fetchImage(ctx context.Context, url string) (image.Image, error) {
	buf, err := d.source.FetchImage(ctx, url)
	if err != nil {
		return nil, err
	}
	return imagemeta.Decode(buf)
}
