package models

import "fmt"

// AssetType is the role an image plays for a game.
type AssetType string

const (
	AssetBackdrop   AssetType = "backdrop"
	AssetBanner     AssetType = "banner"
	AssetIcon       AssetType = "icon"
	AssetLogo       AssetType = "logo"
	AssetPoster     AssetType = "poster"
	AssetHeroArt    AssetType = "heroArt"
	AssetBoxArt     AssetType = "boxArt"
	AssetScreenshot AssetType = "screenshot"
)

// ParseAssetType validates a single-URL asset type from a new_image event.
func ParseAssetType(raw string) (AssetType, error) {
	switch t := AssetType(raw); t {
	case AssetBackdrop, AssetBanner, AssetIcon, AssetLogo, AssetPoster:
		return t, nil
	default:
		return "", fmt.Errorf("unsupported single image type %q", raw)
	}
}

// ImageAsset describes one processed image.
// SourceURL is nil only for synthesized box art.
type ImageAsset struct {
	AppID     uint64    `json:"appID"`
	Type      AssetType `json:"type"`
	SourceURL *string   `json:"sourceUrl"`
	Position  int       `json:"position"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Format    string    `json:"format"`
	BlurHash  string    `json:"blurHash,omitempty"`
}

// Key is the deterministic storage key for the asset.
// Gallery screenshots carry their position; singletons do not.
func (a ImageAsset) Key(prefix string) string {
	name := string(a.Type)
	if a.Type == AssetScreenshot {
		name = fmt.Sprintf("%s-%d", name, a.Position)
	}
	ext := a.Format
	if ext == "jpeg" {
		ext = "jpg"
	}
	if prefix == "" {
		return fmt.Sprintf("%d/%s.%s", a.AppID, name, ext)
	}
	return fmt.Sprintf("%s/%d/%s.%s", prefix, a.AppID, name, ext)
}
