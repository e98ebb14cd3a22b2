package sync

import (
	"github.com/Zurki/immich-avif-generator/core/immich"
	"github.com/Zurki/immich-avif-generator/core/store"
)

// ComputeDelta diffs a remote asset listing against the local index rows of
// the same album.
//
// An asset is added when it is absent locally, or present with a different
// checksum; a changed checksum is treated as a replace, which the content
// store implements as an atomic overwrite under the same storage key. An
// image is removed when its id no longer appears remotely. Non-image assets
// are ignored entirely.
func ComputeDelta(remote []immich.Asset, local []store.Image) Delta {
	indexed := make(map[string]store.Image, len(local))
	for _, img := range local {
		indexed[img.ID] = img
	}

	var delta Delta
	remoteIDs := make(map[string]struct{}, len(remote))
	for _, asset := range remote {
		if !asset.IsImage() {
			continue
		}
		remoteIDs[asset.ID] = struct{}{}

		existing, ok := indexed[asset.ID]
		if !ok || existing.Checksum != asset.Checksum {
			delta.ToAdd = append(delta.ToAdd, asset)
		}
	}

	for _, img := range local {
		if _, ok := remoteIDs[img.ID]; !ok {
			delta.ToRemove = append(delta.ToRemove, img)
		}
	}

	return delta
}
