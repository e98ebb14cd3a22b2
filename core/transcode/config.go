package transcode

// Config holds configuration for image conversion.
type Config struct {
	// Quality is the AVIF encode quality on a 0-100 scale.
	Quality float64 `mapstructure:"quality" default:"80"`
	// MaxWidth caps the full variant's width; wider sources are scaled
	// down, narrower ones keep their original resolution.
	MaxWidth int `mapstructure:"max_width" default:"2000"`
	// ThumbnailWidth is the target length of the thumbnail's longer edge.
	ThumbnailWidth int `mapstructure:"thumbnail_width" default:"350"`
}
