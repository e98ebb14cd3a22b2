package store

// Config holds configuration for the on-disk content store.
type Config struct {
	// Root is the base directory for all stored data. Converted variants
	// live under Root/avif/<album_id>/.
	Root string `mapstructure:"root" default:"data"`
}
