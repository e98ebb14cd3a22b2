package store_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Zurki/immich-avif-generator/core/database"
	"github.com/Zurki/immich-avif-generator/core/store"

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

func testImage(id, albumID string) *store.Image {
	return &store.Image{
		ID:          id,
		AlbumID:     albumID,
		Filename:    id + ".jpg",
		Checksum:    "c-" + id,
		Width:       640,
		Height:      480,
		SyncedAt:    time.Now().UTC(),
		ConvertedAt: time.Now().UTC(),
	}
}

func TestCommit_WritesFilesThenIndexes(t *testing.T) {
	s := newTestStore(t)

	img := testImage("img1", "album1")
	require.NoError(t, s.Commit(img, []byte("thumb"), []byte("full")))

	// Both variants on disk, non-empty.
	for _, path := range []string{img.ThumbPath, img.FullPath} {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}

	// Row carries the final paths and sizes.
	got, err := s.Index().GetImage("img1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.ThumbSize)
	assert.Equal(t, int64(4), got.FullSize)
	assert.Equal(t, s.FullPath("album1", "img1"), got.FullPath)
}

func TestCommit_RejectsEmptyVariant(t *testing.T) {
	s := newTestStore(t)

	err := s.Commit(testImage("img1", "album1"), nil, []byte("full"))
	assert.Error(t, err)

	_, err = s.Index().GetImage("img1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCommit_ReplaceOverwritesInPlace(t *testing.T) {
	s := newTestStore(t)

	img := testImage("img1", "album1")
	require.NoError(t, s.Commit(img, []byte("thumb-v1"), []byte("full-v1")))

	replacement := testImage("img1", "album1")
	replacement.Checksum = "c-changed"
	require.NoError(t, s.Commit(replacement, []byte("thumb-v2"), []byte("full-v2-longer")))

	got, err := s.Index().GetImage("img1")
	require.NoError(t, err)
	assert.Equal(t, "c-changed", got.Checksum)

	data, err := os.ReadFile(got.FullPath)
	require.NoError(t, err)
	assert.Equal(t, "full-v2-longer", string(data))
}

func TestOpen_ReadsVariant(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Commit(testImage("img1", "album1"), []byte("thumb"), []byte("full")))

	r, err := s.Open("img1", store.VariantThumbnail)
	require.NoError(t, err)
	defer r.Close()

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "thumb", string(data))
}

func TestOpen_UnknownID(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Open("ghost", store.VariantFull)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRemove_DeletesFilesAndRow(t *testing.T) {
	s := newTestStore(t)
	img := testImage("img1", "album1")
	require.NoError(t, s.Commit(img, []byte("thumb"), []byte("full")))

	require.NoError(t, s.Remove("img1"))

	assert.NoFileExists(t, img.FullPath)
	assert.NoFileExists(t, img.ThumbPath)
	_, err := s.Index().GetImage("img1")
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Removing again, and removing unknown ids, is fine.
	assert.NoError(t, s.Remove("img1"))
	assert.NoError(t, s.Remove("never-existed"))
}

func TestRemove_ToleratesMissingFiles(t *testing.T) {
	s := newTestStore(t)
	img := testImage("img1", "album1")
	require.NoError(t, s.Commit(img, []byte("thumb"), []byte("full")))
	require.NoError(t, os.Remove(img.FullPath))

	assert.NoError(t, s.Remove("img1"))
	_, err := s.Index().GetImage("img1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSweep_RemovesOnlyTempFiles(t *testing.T) {
	s := newTestStore(t)
	img := testImage("img1", "album1")
	require.NoError(t, s.Commit(img, []byte("thumb"), []byte("full")))

	orphan := filepath.Join(filepath.Dir(img.FullPath), ".tmp-123456")
	require.NoError(t, os.WriteFile(orphan, []byte("partial"), 0o644))

	require.NoError(t, s.Sweep())

	assert.NoFileExists(t, orphan)
	assert.FileExists(t, img.FullPath)
}

func TestVerify_HealsRowsWithoutFiles(t *testing.T) {
	s := newTestStore(t)

	intact := testImage("ok", "album1")
	require.NoError(t, s.Commit(intact, []byte("thumb"), []byte("full")))

	broken := testImage("broken", "album1")
	require.NoError(t, s.Commit(broken, []byte("thumb"), []byte("full")))
	require.NoError(t, os.Remove(broken.ThumbPath))

	healed, err := s.Verify()
	require.NoError(t, err)
	assert.Equal(t, 1, healed)

	_, err = s.Index().GetImage("broken")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.Index().GetImage("ok")
	assert.NoError(t, err)
	assert.NoFileExists(t, broken.FullPath)
}

func TestWipe_ClearsEverything(t *testing.T) {
	s := newTestStore(t)
	img := testImage("img1", "album1")
	require.NoError(t, s.Commit(img, []byte("thumb"), []byte("full")))
	require.NoError(t, s.Index().UpsertAlbum(&store.Album{ID: "album1", Name: "Holiday"}))

	require.NoError(t, s.Wipe())

	assert.NoFileExists(t, img.FullPath)
	_, err := s.Index().GetImage("img1")
	assert.ErrorIs(t, err, store.ErrNotFound)
	albums, err := s.Index().ListAlbums()
	require.NoError(t, err)
	assert.Empty(t, albums)
}
