package database

// Config holds configuration for the index database.
type Config struct {
	// Path is the SQLite database file. Use ":memory:" for an ephemeral
	// database (tests). Relative paths are resolved against the working
	// directory, not the storage root.
	Path string `mapstructure:"path" default:"data/index.sqlite"`
	// BusyTimeoutMs is how long a statement waits on a locked database
	// before failing. The sync pass writes while the server reads, so a
	// small wait avoids spurious SQLITE_BUSY errors.
	BusyTimeoutMs int `mapstructure:"busy_timeout_ms" default:"5000"`
}
