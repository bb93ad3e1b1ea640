package fetch

// Config holds upstream provider endpoints and client limits.
type Config struct {
	// PrimaryURL is the identity document template, formatted with the app id.
	PrimaryURL string `mapstructure:"primary_url" default:"https://api.steamcmd.net/v1/info/%d"`
	// TagsURL returns the global tag id to name catalog.
	TagsURL string `mapstructure:"tags_url" default:"https://store.steampowered.com/actions/ajaxgetstoretags"`
	// DetailURL is the store detail document template, formatted with the app id.
	DetailURL string `mapstructure:"detail_url" default:"https://store.steampowered.com/api/appdetails?appids=%d"`
	// ReviewsURL is the review summary template, formatted with the app id.
	ReviewsURL string `mapstructure:"reviews_url" default:"https://store.steampowered.com/appreviews/%d?json=1&language=all&purchase_type=all&num_per_page=0"`
	// CDNURL builds library asset URLs, formatted with the app id and file name.
	CDNURL string `mapstructure:"cdn_url" default:"https://cdn.cloudflare.steamstatic.com/steam/apps/%d/%s"`
	// IconURL builds the community icon URL, formatted with the app id and icon hash.
	IconURL string `mapstructure:"icon_url" default:"https://cdn.cloudflare.steamstatic.com/steamcommunity/public/images/apps/%d/%s.jpg"`
	// UserAgent is sent on every request so upstreams treat us as a known client.
	UserAgent string `mapstructure:"user_agent" default:"Valve/Steam HTTP Client 1.0"`
	// TimeoutSeconds bounds each request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// RequestsPerSecond is the sustained outbound request rate.
	RequestsPerSecond float64 `mapstructure:"requests_per_second" default:"5"`
	// Burst is the number of requests allowed above the sustained rate.
	Burst int `mapstructure:"burst" default:"10"`
	// MaxImageBytes caps a single image download.
	MaxImageBytes int64 `mapstructure:"max_image_bytes" default:"20971520"`
}
