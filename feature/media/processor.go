package media

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"game-catalog/core/events"
	"game-catalog/feature/media/composite"
	"game-catalog/feature/media/imagemeta"
	"game-catalog/feature/media/models"

	"go.uber.org/zap"
)

// ErrUnknownTopic is returned for envelopes the processor does not consume.
var ErrUnknownTopic = errors.New("unknown event topic")

// Downloader fetches image bytes by URL.
type Downloader interface {
	FetchImage(ctx context.Context, url string) ([]byte, error)
}

// Processor turns asset events into stored images.
type Processor struct {
	source  Downloader
	sink    Sink
	builder *composite.Builder
	logger  *zap.Logger
}

// NewProcessor creates a processor. A nil builder uses the default canvas.
func NewProcessor(source Downloader, sink Sink, builder *composite.Builder, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if builder == nil {
		builder = composite.New(0, 0)
	}
	return &Processor{
		source:  source,
		sink:    sink,
		builder: builder,
		logger:  logger.With(zap.String("component", "media_processor")),
	}
}

// Handle dispatches env by topic.
func (p *Processor) Handle(ctx context.Context, env events.Envelope) error {
	switch env.Topic {
	case events.TopicNewImage:
		var ev events.NewImage
		if err := env.Decode(&ev); err != nil {
			return err
		}
		return p.handleImage(ctx, ev)
	case events.TopicNewBoxArt:
		var ev events.NewBoxArt
		if err := env.Decode(&ev); err != nil {
			return err
		}
		return p.handleBoxArt(ctx, ev)
	case events.TopicNewHeroArt:
		var ev events.NewHeroArt
		if err := env.Decode(&ev); err != nil {
			return err
		}
		return p.handleHeroArt(ctx, ev)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownTopic, env.Topic)
	}
}

func (p *Processor) handleImage(ctx context.Context, ev events.NewImage) error {
	kind, err := models.ParseAssetType(string(ev.Type))
	if err != nil {
		return err
	}
	return p.store(ctx, ev.AppID, kind, ev.URL, 0)
}

func (p *Processor) handleBoxArt(ctx context.Context, ev events.NewBoxArt) error {
	var (
		wg             sync.WaitGroup
		logo, bg       []byte
		logoErr, bgErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		logo, logoErr = p.source.FetchImage(ctx, ev.LogoURL)
	}()
	go func() {
		defer wg.Done()
		bg, bgErr = p.source.FetchImage(ctx, ev.BackgroundURL)
	}()
	wg.Wait()

	if err := errors.Join(logoErr, bgErr); err != nil {
		return fmt.Errorf("box art for %d: %w", ev.AppID, err)
	}

	data, err := p.builder.BuildBoxArt(logo, bg)
	if err != nil {
		return fmt.Errorf("box art for %d: %w", ev.AppID, err)
	}

	asset, err := describe(ev.AppID, models.AssetBoxArt, nil, 0, data)
	if err != nil {
		return err
	}
	return p.save(ctx, asset, data)
}

// handleHeroArt stores the hero image and each gallery screenshot at its position.
func (p *Processor) handleHeroArt(ctx context.Context, ev events.NewHeroArt) error {
	errs := []error{p.store(ctx, ev.AppID, models.AssetHeroArt, ev.HeroArtURL, 0)}
	for i, url := range ev.Screenshots {
		errs = append(errs, p.store(ctx, ev.AppID, models.AssetScreenshot, url, i))
	}
	return errors.Join(errs...)
}

func (p *Processor) store(ctx context.Context, appID uint64, kind models.AssetType, url string, position int) error {
	data, err := p.source.FetchImage(ctx, url)
	if err != nil {
		return fmt.Errorf("%s for %d: %w", kind, appID, err)
	}
	asset, err := describe(appID, kind, &url, position, data)
	if err != nil {
		return err
	}
	return p.save(ctx, asset, data)
}

func (p *Processor) save(ctx context.Context, asset models.ImageAsset, data []byte) error {
	if err := p.sink.Save(ctx, asset, data); err != nil {
		return fmt.Errorf("save %s for %d: %w", asset.Type, asset.AppID, err)
	}
	p.logger.Debug("Asset stored",
		zap.Uint64("app_id", asset.AppID),
		zap.String("type", string(asset.Type)),
		zap.Int("position", asset.Position),
		zap.Int("bytes", len(data)),
	)
	return nil
}

func describe(appID uint64, kind models.AssetType, url *string, position int, data []byte) (models.ImageAsset, error) {
	info, err := imagemeta.Inspect(data)
	if err != nil {
		return models.ImageAsset{}, fmt.Errorf("%s for %d: %w", kind, appID, err)
	}
	hash, err := imagemeta.BlurHash(data)
	if err != nil {
		return models.ImageAsset{}, fmt.Errorf("%s for %d: %w", kind, appID, err)
	}
	return models.ImageAsset{
		AppID:     appID,
		Type:      kind,
		SourceURL: url,
		Position:  position,
		Width:     info.Width,
		Height:    info.Height,
		Format:    info.Format,
		BlurHash:  hash,
	}, nil
}
