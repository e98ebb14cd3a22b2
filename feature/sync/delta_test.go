package sync_test

import (
	"testing"

	"github.com/Zurki/immich-avif-generator/core/immich"
	"github.com/Zurki/immich-avif-generator/core/store"
	"github.com/Zurki/immich-avif-generator/feature/sync"

	"github.com/stretchr/testify/assert"
)

func imageAsset(id, checksum string) immich.Asset {
	return immich.Asset{
		ID:               id,
		OriginalFileName: id + ".jpg",
		Checksum:         checksum,
		Type:             immich.AssetTypeImage,
	}
}

func TestComputeDelta(t *testing.T) {
	tests := []struct {
		name       string
		remote     []immich.Asset
		local      []store.Image
		wantAdd    []string
		wantRemove []string
	}{
		{
			name:    "NewAssetsAdded",
			remote:  []immich.Asset{imageAsset("a", "c1"), imageAsset("b", "c2")},
			local:   nil,
			wantAdd: []string{"a", "b"},
		},
		{
			name:   "UnchangedAssetsSkipped",
			remote: []immich.Asset{imageAsset("a", "c1")},
			local:  []store.Image{{ID: "a", Checksum: "c1"}},
		},
		{
			name:    "ChangedChecksumReplaced",
			remote:  []immich.Asset{imageAsset("a", "c2")},
			local:   []store.Image{{ID: "a", Checksum: "c1"}},
			wantAdd: []string{"a"},
		},
		{
			name: "VideosIgnored",
			remote: []immich.Asset{
				{ID: "v", Type: immich.AssetTypeVideo, Checksum: "c9"},
				imageAsset("a", "c1"),
			},
			wantAdd: []string{"a"},
		},
		{
			name:       "VanishedAssetRemoved",
			remote:     []immich.Asset{imageAsset("a", "c1")},
			local:      []store.Image{{ID: "a", Checksum: "c1"}, {ID: "gone", Checksum: "c3"}},
			wantRemove: []string{"gone"},
		},
		{
			name:       "EmptyRemoteRemovesEverything",
			remote:     nil,
			local:      []store.Image{{ID: "a"}, {ID: "b"}},
			wantRemove: []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delta := sync.ComputeDelta(tt.remote, tt.local)

			gotAdd := make([]string, 0, len(delta.ToAdd))
			for _, a := range delta.ToAdd {
				gotAdd = append(gotAdd, a.ID)
			}
			gotRemove := make([]string, 0, len(delta.ToRemove))
			for _, img := range delta.ToRemove {
				gotRemove = append(gotRemove, img.ID)
			}

			assert.ElementsMatch(t, tt.wantAdd, gotAdd)
			assert.ElementsMatch(t, tt.wantRemove, gotRemove)
		})
	}
}

func TestComputeDelta_PreservesListingOrder(t *testing.T) {
	remote := []immich.Asset{
		imageAsset("z", "c1"),
		imageAsset("a", "c2"),
		imageAsset("m", "c3"),
	}

	delta := sync.ComputeDelta(remote, nil)

	ids := make([]string, 0, len(delta.ToAdd))
	for _, a := range delta.ToAdd {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"z", "a", "m"}, ids)
}
