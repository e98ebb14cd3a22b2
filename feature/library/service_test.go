package library_test

import (
	"fmt"
	"testing"

	"github.com/Zurki/immich-avif-generator/core/database"
	"github.com/Zurki/immich-avif-generator/core/store"
	"github.com/Zurki/immich-avif-generator/feature/library"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := database.Connect(database.Config{Path: ":memory:"})
	require.NoError(t, err)
	s, err := store.New(store.Config{Root: t.TempDir()}, db, zap.NewNop())
	require.NoError(t, err)
	return s
}

// seedAlbum indexes n committed images without writing files; listing and
// pagination only touch the index.
func seedAlbum(t *testing.T, st *store.Store, albumID string, n int) {
	t.Helper()
	require.NoError(t, st.Index().UpsertAlbum(&store.Album{ID: albumID, Name: "Album " + albumID}))
	for i := 0; i < n; i++ {
		require.NoError(t, st.Index().UpsertImage(&store.Image{
			ID:       fmt.Sprintf("%s-img%03d", albumID, i),
			AlbumID:  albumID,
			Filename: fmt.Sprintf("photo_%03d.jpg", i),
		}))
	}
}

func TestAlbumPage_Pagination(t *testing.T) {
	st := newTestStore(t)
	seedAlbum(t, st, "a1", 150)
	svc := library.NewService(st, zap.NewNop())

	tests := []struct {
		name        string
		offset      int
		limit       int
		wantLen     int
		wantLimit   int
		wantOffset  int
		wantHasMore bool
	}{
		{"FirstPage", 0, 20, 20, 20, 0, true},
		{"LastPartialPage", 140, 20, 10, 20, 140, false},
		{"LimitClampedToMax", 0, 500, 100, 100, 0, true},
		{"ZeroLimitUsesDefault", 0, 0, 20, 20, 0, true},
		{"NegativeOffsetClamped", -5, 20, 20, 20, 0, true},
		{"OffsetPastEndEmpty", 400, 20, 0, 20, 400, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := svc.AlbumPage("a1", tt.offset, tt.limit)
			require.NoError(t, err)

			assert.Len(t, page.Images, tt.wantLen)
			assert.Equal(t, int64(150), page.Pagination.Total)
			assert.Equal(t, tt.wantLimit, page.Pagination.Limit)
			assert.Equal(t, tt.wantOffset, page.Pagination.Offset)
			assert.Equal(t, tt.wantHasMore, page.Pagination.HasMore)
		})
	}
}

func TestAlbumPage_UnknownAlbum(t *testing.T) {
	st := newTestStore(t)
	svc := library.NewService(st, zap.NewNop())

	_, err := svc.AlbumPage("ghost", 0, 20)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListAlbums_Counts(t *testing.T) {
	st := newTestStore(t)
	seedAlbum(t, st, "a1", 3)
	seedAlbum(t, st, "a2", 0)
	svc := library.NewService(st, zap.NewNop())

	albums, err := svc.ListAlbums()
	require.NoError(t, err)
	require.Len(t, albums, 2)
	assert.Equal(t, int64(3), albums[0].ImageCount)
	assert.Equal(t, int64(0), albums[1].ImageCount)
}

func TestImageMetadata(t *testing.T) {
	st := newTestStore(t)
	seedAlbum(t, st, "a1", 1)
	svc := library.NewService(st, zap.NewNop())

	meta, err := svc.ImageMetadata("a1-img000")
	require.NoError(t, err)
	assert.Equal(t, "a1", meta.AlbumID)
	assert.Equal(t, "photo_000.jpg", meta.Filename)

	_, err = svc.ImageMetadata("ghost")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
