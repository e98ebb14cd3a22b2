// Package config loads the application configuration.
//
// Configuration comes from environment variables (optionally seeded from a
// .env file) with defaults declared as struct tags on the partial config
// structs each package owns. Keys nest with underscores, e.g.
// SYNC_PARALLEL_DOWNLOADS maps to sync.parallel_downloads.
package config
