package immich

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client is the remote catalog gateway for an Immich server.
// It embeds a resty client configured with API-key authentication; every
// method returns an error scoped to the single call, callers decide whether
// a failure aborts an album or just one asset.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// NewClient creates a new Immich API client from the configuration.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 300
	}

	http := resty.New().
		SetBaseURL(strings.TrimRight(cfg.URL, "/")).
		SetHeader("x-api-key", cfg.APIKey).
		SetHeader("Accept", "application/json").
		SetTimeout(time.Duration(timeout) * time.Second)

	return &Client{http: http, logger: logger}
}

// Ping checks connectivity and returns the remote server version.
func (c *Client) Ping(ctx context.Context) (*ServerInfo, error) {
	var info ServerInfo
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&info).
		Get("/api/server/version")
	if err != nil {
		return nil, fmt.Errorf("failed to ping Immich server: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to ping Immich server: %s", resp.Status())
	}
	return &info, nil
}

// ListAlbums returns all albums visible to the API key, both owned and
// shared, deduplicated by album id.
func (c *Client) ListAlbums(ctx context.Context) ([]Album, error) {
	var owned []Album
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&owned).
		Get("/api/albums")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch owned albums: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to fetch owned albums: %s", resp.Status())
	}

	var shared []Album
	resp, err = c.http.R().
		SetContext(ctx).
		SetQueryParam("shared", "true").
		SetResult(&shared).
		Get("/api/albums")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shared albums: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to fetch shared albums: %s", resp.Status())
	}

	seen := make(map[string]struct{}, len(owned)+len(shared))
	albums := make([]Album, 0, len(owned)+len(shared))
	for _, album := range append(owned, shared...) {
		if _, ok := seen[album.ID]; ok {
			continue
		}
		seen[album.ID] = struct{}{}
		albums = append(albums, album)
	}

	c.logger.Debug("Listed albums",
		zap.Int("owned", len(owned)),
		zap.Int("shared", len(shared)),
		zap.Int("unique", len(albums)),
	)
	return albums, nil
}

// GetAlbum fetches a single album including its asset listing.
func (c *Client) GetAlbum(ctx context.Context, albumID string) (*Album, error) {
	var album Album
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&album).
		Get("/api/albums/" + albumID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch album %s: %w", albumID, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to fetch album %s: %s", albumID, resp.Status())
	}
	return &album, nil
}

// DownloadAsset fetches the original bytes of one asset.
func (c *Client) DownloadAsset(ctx context.Context, assetID string) ([]byte, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/octet-stream").
		Get("/api/assets/" + assetID + "/original")
	if err != nil {
		return nil, fmt.Errorf("failed to download asset %s: %w", assetID, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to download asset %s: %s", assetID, resp.Status())
	}
	return resp.Body(), nil
}
