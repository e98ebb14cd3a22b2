package immich

// Config holds configuration for the Immich API connection.
type Config struct {
	// URL is the base URL of the Immich server, e.g. "https://photos.example.com".
	URL string `mapstructure:"url" default:""`
	// APIKey is the Immich API key sent with every request.
	APIKey string `mapstructure:"api_key" default:""`
	// TimeoutSeconds bounds a single request, including asset downloads.
	// Originals can be tens of megabytes, so this is generous by default.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"300"`
}
