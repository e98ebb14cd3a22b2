package config_test

import (
	"testing"

	"github.com/Zurki/immich-avif-generator/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "data", cfg.Store.Root)
	assert.Equal(t, 4, cfg.Sync.ParallelDownloads)
	assert.Equal(t, 2, cfg.Sync.ParallelConversions)
	assert.False(t, cfg.Sync.DeleteRemoved)
	assert.InDelta(t, 80.0, cfg.Image.Quality, 0.001)
	assert.Equal(t, 2000, cfg.Image.MaxWidth)
	assert.Equal(t, 350, cfg.Image.ThumbnailWidth)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("IMMICH_URL", "https://photos.example.com")
	t.Setenv("IMMICH_API_KEY", "secret")
	t.Setenv("SYNC_PARALLEL_DOWNLOADS", "8")
	t.Setenv("SYNC_DELETE_REMOVED", "true")
	t.Setenv("IMAGE_QUALITY", "55.5")
	t.Setenv("SERVER_PORT", "8080")

	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "https://photos.example.com", cfg.Immich.URL)
	assert.Equal(t, "secret", cfg.Immich.APIKey)
	assert.Equal(t, 8, cfg.Sync.ParallelDownloads)
	assert.True(t, cfg.Sync.DeleteRemoved)
	assert.InDelta(t, 55.5, cfg.Image.Quality, 0.001)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoadConfig_AlbumAllowlist(t *testing.T) {
	t.Setenv("SYNC_ALBUMS", "a1, a2 ,,a3")

	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, []string{"a1", "a2", "a3"}, cfg.Sync.AlbumIDs())
}
