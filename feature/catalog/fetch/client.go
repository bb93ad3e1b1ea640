package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"game-catalog/core/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout = 30 * time.Second
	defaultRPS     = 5.0
	defaultBurst   = 10

	// Provider JSON documents never come close to this.
	maxDocumentBytes = 16 << 20
	defaultMaxImage  = 20 << 20

	tagCatalogKey = "tag-catalog"
)

// Client is a rate-limited client for the catalog providers.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
	sf      singleflight.Group
	logger  *zap.Logger
}

// NewClient creates a provider client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRPS
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = defaultBurst
	}
	if cfg.MaxImageBytes <= 0 {
		cfg.MaxImageBytes = defaultMaxImage
	}
	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		logger:  logger.With(zap.String("component", "fetcher")),
	}
}

// Fetch retrieves the primary, tag catalog, detail and review summary documents
// concurrently. A primary failure is fatal and wraps ErrProviderUnavailable; any
// other failure is logged and leaves the field nil.
func (c *Client) Fetch(ctx context.Context, appID uint64) (*Documents, error) {
	if appID == 0 {
		return nil, wrapError("fetch", appID, ErrInvalidAppID)
	}

	var (
		primary    *PrimaryDocument
		tags       TagCatalog
		detail     *DetailDocument
		reviews    *ReviewSummary
		primaryErr error
		tagsErr    error
		detailErr  error
		reviewsErr error
		wg         sync.WaitGroup
	)

	wg.Add(4)

	go func() {
		defer wg.Done()
		primary, primaryErr = c.FetchPrimary(ctx, appID)
	}()

	go func() {
		defer wg.Done()
		tags, tagsErr = c.FetchTagCatalog(ctx)
	}()

	go func() {
		defer wg.Done()
		detail, detailErr = c.FetchDetail(ctx, appID)
	}()

	go func() {
		defer wg.Done()
		reviews, reviewsErr = c.FetchReviews(ctx, appID)
	}()

	wg.Wait()

	if primaryErr != nil {
		return nil, primaryErr
	}
	if tagsErr != nil {
		c.logger.Warn("Tag catalog unavailable, continuing without tags",
			zap.Uint64("app_id", appID), zap.Error(tagsErr))
		tags = nil
	}
	if detailErr != nil {
		c.logger.Warn("Detail document unavailable, continuing without details",
			zap.Uint64("app_id", appID), zap.Error(detailErr))
		detail = nil
	}
	if reviewsErr != nil {
		c.logger.Warn("Review summary unavailable, continuing without score",
			zap.Uint64("app_id", appID), zap.Error(reviewsErr))
		reviews = nil
	}

	return &Documents{Primary: primary, Tags: tags, Detail: detail, Reviews: reviews}, nil
}

// FetchPrimary retrieves the identity document. Every failure wraps
// ErrProviderUnavailable.
func (c *Client) FetchPrimary(ctx context.Context, appID uint64) (*PrimaryDocument, error) {
	var raw rawPrimary
	url := fmt.Sprintf(c.cfg.PrimaryURL, appID)
	if err := c.getJSON(ctx, url, &raw); err != nil {
		return nil, wrapError("primary", appID, fmt.Errorf("%w: %w", ErrProviderUnavailable, err))
	}

	app, ok := raw.Data[strconv.FormatUint(appID, 10)]
	if !ok || app.Common.Name == "" {
		return nil, wrapError("primary", appID, fmt.Errorf("%w: %w", ErrProviderUnavailable, ErrNotFound))
	}
	return app.Common.toDocument(appID, app.Depots), nil
}

// FetchTagCatalog retrieves the global tag catalog.
// Concurrent callers share a single in-flight request, which outlives any one
// caller's cancellation and is bounded by the client timeout.
func (c *Client) FetchTagCatalog(ctx context.Context) (TagCatalog, error) {
	shared := context.WithoutCancel(ctx)
	ch := c.sf.DoChan(tagCatalogKey, func() (any, error) {
		var raw rawTagCatalog
		if err := c.getJSON(shared, c.cfg.TagsURL, &raw); err != nil {
			return nil, wrapError("tags", 0, err)
		}
		if !utils.ToBool(raw.Success) {
			return nil, wrapError("tags", 0, ErrUpstream)
		}
		catalog := make(TagCatalog, len(raw.Tags))
		for _, t := range raw.Tags {
			id := utils.ToInt64(t.TagID)
			if id == 0 || t.Name == "" {
				continue
			}
			catalog[id] = t.Name
		}
		return catalog, nil
	})

	select {
	case <-ctx.Done():
		return nil, wrapError("tags", 0, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(TagCatalog), nil
	}
}

// FetchDetail retrieves the store detail document.
func (c *Client) FetchDetail(ctx context.Context, appID uint64) (*DetailDocument, error) {
	var raw map[string]rawDetailEntry
	url := fmt.Sprintf(c.cfg.DetailURL, appID)
	if err := c.getJSON(ctx, url, &raw); err != nil {
		return nil, wrapError("detail", appID, err)
	}
	entry, ok := raw[strconv.FormatUint(appID, 10)]
	if !ok || !entry.Success {
		return nil, wrapError("detail", appID, ErrNotFound)
	}
	return entry.Data.toDocument(), nil
}

// FetchReviews retrieves the aggregate review counts.
func (c *Client) FetchReviews(ctx context.Context, appID uint64) (*ReviewSummary, error) {
	var raw rawReviews
	url := fmt.Sprintf(c.cfg.ReviewsURL, appID)
	if err := c.getJSON(ctx, url, &raw); err != nil {
		return nil, wrapError("reviews", appID, err)
	}
	if !utils.ToBool(raw.Success) {
		return nil, wrapError("reviews", appID, ErrNotFound)
	}
	return raw.toSummary(), nil
}

// FetchImageURLs re-fetches the primary and detail documents and derives the
// image URLs for the app. Missing detail only drops the screenshots.
func (c *Client) FetchImageURLs(ctx context.Context, appID uint64) (*AssetURLs, error) {
	if appID == 0 {
		return nil, wrapError("images", appID, ErrInvalidAppID)
	}

	var (
		primary    *PrimaryDocument
		detail     *DetailDocument
		primaryErr error
		detailErr  error
		wg         sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		primary, primaryErr = c.FetchPrimary(ctx, appID)
	}()
	go func() {
		defer wg.Done()
		detail, detailErr = c.FetchDetail(ctx, appID)
	}()
	wg.Wait()

	if primaryErr != nil {
		return nil, primaryErr
	}
	if detailErr != nil {
		c.logger.Warn("Detail document unavailable, no screenshots",
			zap.Uint64("app_id", appID), zap.Error(detailErr))
	}

	return c.assetURLs(primary, detail), nil
}

func (c *Client) assetURLs(primary *PrimaryDocument, detail *DetailDocument) *AssetURLs {
	id := primary.AppID
	urls := &AssetURLs{
		AppID:  id,
		Banner: fmt.Sprintf(c.cfg.CDNURL, id, "header.jpg"),
	}
	if primary.LibraryAssets["library_hero"] {
		urls.Backdrop = fmt.Sprintf(c.cfg.CDNURL, id, "library_hero.jpg")
	}
	if primary.LibraryAssets["library_logo"] {
		urls.Logo = fmt.Sprintf(c.cfg.CDNURL, id, "logo.png")
	}
	if primary.LibraryAssets["library_capsule"] {
		urls.Poster = fmt.Sprintf(c.cfg.CDNURL, id, "library_600x900.jpg")
	}
	if primary.IconHash != "" {
		urls.Icon = fmt.Sprintf(c.cfg.IconURL, id, primary.IconHash)
	}
	if detail != nil {
		urls.Screenshots = append(urls.Screenshots, detail.Screenshots...)
	}
	return urls
}

// FetchImage downloads raw image bytes, capped at the configured size.
func (c *Client) FetchImage(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, wrapError("image", 0, fmt.Errorf("%w: empty url", ErrNotFound))
	}
	resp, err := c.do(ctx, url, "image/*")
	if err != nil {
		return nil, wrapError("image", 0, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.cfg.MaxImageBytes+1))
	if err != nil {
		return nil, wrapError("image", 0, fmt.Errorf("read response: %w", err))
	}
	if int64(len(data)) > c.cfg.MaxImageBytes {
		return nil, wrapError("image", 0, ErrImageTooLarge)
	}
	return data, nil
}

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	resp, err := c.do(ctx, url, "application/json")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxDocumentBytes)).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// do executes a rate-limited GET carrying the identity header.
// Non-2xx responses are closed and mapped to sentinel errors.
func (c *Client) do(ctx context.Context, url, accept string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	c.logger.Debug("Provider request", zap.String("url", url))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	default:
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}
}
