// Package discovery turns a stored game into asset events.
//
// It runs as the after-commit effect of a catalog create: image URLs are
// re-fetched, single assets are announced as new_image events, logo plus
// backdrop become a new_box_art event, and the screenshots are ranked against
// the backdrop to pick the hero image and gallery for a new_hero_art event.
//
// Screenshots that fail to download are skipped and the rest are ranked.
// Ranking fails with ranking.ErrImageRankingFailed only when the backdrop or
// every screenshot is unavailable, after the other events were published.
package discovery
