package sync

import "strings"

// Config holds configuration for the reconciliation pass.
type Config struct {
	// Albums is an optional comma-separated allowlist of album ids.
	// Empty means every album visible to the API key is mirrored.
	Albums string `mapstructure:"albums" default:""`
	// DeleteRemoved enables deleting local images whose asset disappeared
	// from the remote album. When false, removals are logged and retained.
	DeleteRemoved bool `mapstructure:"delete_removed" default:"false"`
	// ParallelDownloads bounds concurrent asset downloads.
	ParallelDownloads int `mapstructure:"parallel_downloads" default:"4"`
	// ParallelConversions bounds concurrent conversions. Lower than the
	// download bound because transcoding is CPU-bound.
	ParallelConversions int `mapstructure:"parallel_conversions" default:"2"`
	// IntervalMinutes re-runs the pass periodically under the run
	// command. Zero disables periodic re-sync.
	IntervalMinutes int `mapstructure:"interval_minutes" default:"0"`
}

// AlbumIDs returns the parsed allowlist, nil when unrestricted.
func (c Config) AlbumIDs() []string {
	if strings.TrimSpace(c.Albums) == "" {
		return nil
	}
	parts := strings.Split(c.Albums, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if id := strings.TrimSpace(p); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
