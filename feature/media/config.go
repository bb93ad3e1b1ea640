package media

// Config holds image ranking and compositing settings.
type Config struct {
	// SimilarityThreshold is the ranking distance above which a screenshot is a poor match.
	SimilarityThreshold float64 `mapstructure:"similarity_threshold" default:"0.08"`
	// RejectPoorMatches drops screenshots above the threshold before selection.
	RejectPoorMatches bool `mapstructure:"reject_poor_matches" default:"false"`
	// BoxArtWidth is the composite canvas width in pixels.
	BoxArtWidth int `mapstructure:"box_art_width" default:"600"`
	// BoxArtHeight is the composite canvas height in pixels.
	BoxArtHeight int `mapstructure:"box_art_height" default:"900"`
	// GallerySize is the number of screenshots kept after the hero.
	GallerySize int `mapstructure:"gallery_size" default:"3"`
	// ConsumerEnabled subscribes the asset consumer to the bus on start.
	ConsumerEnabled bool `mapstructure:"consumer_enabled" default:"true"`
	// KeyPrefix is prepended to every stored asset key.
	KeyPrefix string `mapstructure:"key_prefix" default:"games"`
}
