package sync

import (
	"context"
	"crypto/sha1"
	"encoding/base64"
	"time"

	"github.com/Zurki/immich-avif-generator/core/immich"
	"github.com/Zurki/immich-avif-generator/core/store"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"
)

// pipeline drives the download → convert → commit stages for one pass.
// Downloads and conversions run on separate bounded pools so a CPU-bound
// conversion backlog cannot starve network downloads. Items are independent:
// the only ordering is within one item's own stages.
type pipeline struct {
	svc         *Service
	state       *passState
	downloads   pond.Pool
	conversions pond.Pool
}

func newPipeline(ctx context.Context, svc *Service, state *passState) *pipeline {
	return &pipeline{
		svc:         svc,
		state:       state,
		downloads:   pond.NewPool(svc.cfg.ParallelDownloads, pond.WithContext(ctx)),
		conversions: pond.NewPool(svc.cfg.ParallelConversions, pond.WithContext(ctx)),
	}
}

// enqueue schedules one to-add asset. The download stage hands successful
// fetches to the conversion stage; any failure marks just this item failed.
func (p *pipeline) enqueue(ctx context.Context, albumID string, asset immich.Asset) {
	p.downloads.Submit(func() {
		l := p.svc.logger.With(
			zap.String("asset_id", asset.ID),
			zap.String("filename", asset.OriginalFileName),
		)

		data, err := p.svc.gateway.DownloadAsset(ctx, asset.ID)
		if err != nil {
			l.Warn("Download failed", zap.Error(err))
			p.state.record(asset.ID, OutcomeFailed)
			return
		}
		if len(data) == 0 {
			l.Warn("Download returned no bytes")
			p.state.record(asset.ID, OutcomeFailed)
			return
		}
		if !checksumMatches(data, asset.Checksum) {
			l.Warn("Checksum mismatch, discarding download")
			p.state.record(asset.ID, OutcomeFailed)
			return
		}

		p.state.record(asset.ID, OutcomeDownloaded)
		syncedAt := time.Now().UTC()

		p.conversions.Submit(func() {
			result, err := p.svc.converter.Transcode(data)
			if err != nil {
				l.Warn("Conversion failed", zap.Error(err))
				p.state.record(asset.ID, OutcomeFailed)
				return
			}

			img := &store.Image{
				ID:          asset.ID,
				AlbumID:     albumID,
				Filename:    asset.OriginalFileName,
				Checksum:    asset.Checksum,
				Width:       result.Width,
				Height:      result.Height,
				SyncedAt:    syncedAt,
				ConvertedAt: time.Now().UTC(),
			}
			if err := p.svc.store.Commit(img, result.Thumbnail, result.Full); err != nil {
				l.Warn("Commit failed", zap.Error(err))
				p.state.record(asset.ID, OutcomeFailed)
				return
			}

			l.Debug("Committed image")
			p.state.record(asset.ID, OutcomeConverted)
		})
	})
}

// wait drains both stages. Downloads stop first; they are the only producer
// for the conversion pool, so once they finish the conversion pool can be
// stopped without losing work.
func (p *pipeline) wait() {
	p.downloads.Stop().Wait()
	p.conversions.Stop().Wait()
}

// checksumMatches verifies downloaded bytes against the base64 SHA-1
// checksum the catalog reports. An absent checksum passes.
func checksumMatches(data []byte, want string) bool {
	if want == "" {
		return true
	}
	sum := sha1.Sum(data)
	return base64.StdEncoding.EncodeToString(sum[:]) == want
}
