package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/Zurki/immich-avif-generator/core/immich"
	"github.com/Zurki/immich-avif-generator/core/store"
	"github.com/Zurki/immich-avif-generator/core/transcode"

	"go.uber.org/zap"
)

// Gateway is the slice of the remote catalog the sync pass consumes.
type Gateway interface {
	ListAlbums(ctx context.Context) ([]immich.Album, error)
	GetAlbum(ctx context.Context, albumID string) (*immich.Album, error)
	DownloadAsset(ctx context.Context, assetID string) ([]byte, error)
}

// Converter produces the two AVIF variants for one source image.
type Converter interface {
	Transcode(src []byte) (*transcode.Result, error)
}

// Service is the reconciliation engine. It owns all index mutation: it
// computes the per-album delta, dispatches downloads and conversions to the
// bounded pools, and applies removals.
type Service struct {
	gateway   Gateway
	converter Converter
	store     *store.Store
	cfg       Config
	logger    *zap.Logger
}

// NewService creates a new sync service.
func NewService(gateway Gateway, converter Converter, st *store.Store, cfg Config, logger *zap.Logger) *Service {
	return &Service{
		gateway:   gateway,
		converter: converter,
		store:     st,
		cfg:       cfg,
		logger:    logger,
	}
}

// Run executes one reconciliation pass over every selected album.
//
// Per-item failures are contained and summarized; a listing failure aborts
// only the affected album. The pass returns an error only when the album
// list itself cannot be fetched, since then nothing can proceed.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	started := time.Now()

	albums, err := s.gateway.ListAlbums(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list albums: %w", err)
	}
	albums = s.filterAlbums(albums)
	s.logger.Info("Starting sync pass", zap.Int("albums", len(albums)))

	state := newPassState()
	pipe := newPipeline(ctx, s, state)

	for _, album := range albums {
		if err := s.syncAlbum(ctx, album.ID, state, pipe); err != nil {
			s.logger.Warn("Album sync aborted",
				zap.String("album_id", album.ID),
				zap.String("album_name", album.AlbumName),
				zap.Error(err),
			)
		}
	}

	pipe.wait()

	result := state.snapshot()
	s.logger.Info("Sync pass complete",
		zap.Int("downloaded", result.Downloaded),
		zap.Int("converted", result.Converted),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed),
		zap.Int("removed", result.Removed),
		zap.Int("retained", result.Retained),
		zap.Duration("elapsed", time.Since(started)),
	)
	return &result, nil
}

// syncAlbum fetches one album's listing, refreshes its index row, and feeds
// the computed delta into the pipeline. Removals are applied inline: they
// touch only rows the worker pools never see in this pass.
func (s *Service) syncAlbum(ctx context.Context, albumID string, state *passState, pipe *pipeline) error {
	album, err := s.gateway.GetAlbum(ctx, albumID)
	if err != nil {
		return err
	}

	if err := s.store.Index().UpsertAlbum(&store.Album{
		ID:         album.ID,
		Name:       album.AlbumName,
		AssetCount: album.AssetCount,
		LastSyncAt: time.Now().UTC(),
	}); err != nil {
		return err
	}

	local, err := s.store.Index().ImagesForAlbum(album.ID)
	if err != nil {
		return err
	}

	delta := ComputeDelta(album.Assets, local)

	unchanged := 0
	for _, asset := range album.Assets {
		if asset.IsImage() {
			unchanged++
		}
	}
	unchanged -= len(delta.ToAdd)
	state.skip(unchanged)

	s.logger.Info("Album delta",
		zap.String("album_name", album.AlbumName),
		zap.Int("to_add", len(delta.ToAdd)),
		zap.Int("to_remove", len(delta.ToRemove)),
		zap.Int("unchanged", unchanged),
	)

	for _, asset := range delta.ToAdd {
		pipe.enqueue(ctx, album.ID, asset)
	}

	if len(delta.ToRemove) == 0 {
		return nil
	}
	if !s.cfg.DeleteRemoved {
		s.logger.Info("Keeping images removed remotely (delete_removed is off)",
			zap.String("album_id", album.ID),
			zap.Int("count", len(delta.ToRemove)),
		)
		state.retain(len(delta.ToRemove))
		return nil
	}
	for _, img := range delta.ToRemove {
		if err := s.store.Remove(img.ID); err != nil {
			s.logger.Warn("Failed to remove image",
				zap.String("image_id", img.ID),
				zap.Error(err),
			)
			state.record(img.ID, OutcomeFailed)
			continue
		}
		state.record(img.ID, OutcomeRemoved)
	}
	return nil
}

func (s *Service) filterAlbums(albums []immich.Album) []immich.Album {
	allow := s.cfg.AlbumIDs()
	if allow == nil {
		return albums
	}
	allowed := make(map[string]struct{}, len(allow))
	for _, id := range allow {
		allowed[id] = struct{}{}
	}
	filtered := albums[:0]
	for _, album := range albums {
		if _, ok := allowed[album.ID]; ok {
			filtered = append(filtered, album)
		}
	}
	return filtered
}
