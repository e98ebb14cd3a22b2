package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Variant selects one of the two derived encodes of an image.
type Variant string

const (
	VariantFull      Variant = "full"
	VariantThumbnail Variant = "thumbnail"

	variantDir = "avif"
	tmpPrefix  = ".tmp-"
)

// Store is the content store: converted variant files under a local root
// plus the index rows that make them visible. Commit is the only way an
// image becomes servable, and it orders its steps so a crash leaves either
// a complete entry or no entry with harmless temp files.
type Store struct {
	root   string
	index  *Index
	logger *zap.Logger
}

// New creates the store, its directory tree, and the index schema.
// An unwritable root is fatal: no pass can make progress without it.
func New(cfg Config, db *gorm.DB, logger *zap.Logger) (*Store, error) {
	root := filepath.Join(cfg.Root, variantDir)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage root is not writable: %w", err)
	}

	index, err := NewIndex(db)
	if err != nil {
		return nil, err
	}

	return &Store{root: root, index: index, logger: logger}, nil
}

// Index exposes the underlying index for read-only consumers.
func (s *Store) Index() *Index {
	return s.index
}

// FullPath returns the final location of an image's full-size variant.
func (s *Store) FullPath(albumID, imageID string) string {
	return filepath.Join(s.root, albumID, imageID+".avif")
}

// ThumbPath returns the final location of an image's thumbnail variant.
func (s *Store) ThumbPath(albumID, imageID string) string {
	return filepath.Join(s.root, albumID, imageID+"_thumb.avif")
}

// Commit durably stores both variants and then indexes the image.
// Both files are written to temp paths in the destination directory and
// moved into place with rename, so readers can never open a partial file,
// and the index row is written last, so a row always implies both files.
func (s *Store) Commit(img *Image, thumb, full []byte) error {
	if len(thumb) == 0 || len(full) == 0 {
		return fmt.Errorf("refusing to commit empty variant for image %s", img.ID)
	}

	dir := filepath.Join(s.root, img.AlbumID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create album directory: %w", err)
	}

	thumbPath := s.ThumbPath(img.AlbumID, img.ID)
	if err := writeAtomic(dir, thumbPath, thumb); err != nil {
		return fmt.Errorf("failed to store thumbnail for %s: %w", img.ID, err)
	}

	fullPath := s.FullPath(img.AlbumID, img.ID)
	if err := writeAtomic(dir, fullPath, full); err != nil {
		// Leave the thumbnail behind as an orphan; it is invisible
		// without an index row and Verify cleans it up.
		return fmt.Errorf("failed to store full variant for %s: %w", img.ID, err)
	}

	img.ThumbPath = thumbPath
	img.FullPath = fullPath
	img.ThumbSize = int64(len(thumb))
	img.FullSize = int64(len(full))

	if err := s.index.UpsertImage(img); err != nil {
		return fmt.Errorf("failed to index image %s: %w", img.ID, err)
	}
	return nil
}

// writeAtomic writes data to a temp file in dir and renames it over dest.
// The temp file lives in the destination directory so the rename never
// crosses filesystems.
func writeAtomic(dir, dest string, data []byte) error {
	tmp, err := os.CreateTemp(dir, tmpPrefix+"*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// Remove deletes both variant files and then the index row.
// Already-absent files are tolerated so Remove is idempotent.
func (s *Store) Remove(imageID string) error {
	img, err := s.index.GetImage(imageID)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	for _, path := range []string{img.FullPath, img.ThumbPath} {
		if path == "" {
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
	}

	return s.index.DeleteImage(imageID)
}

// Open returns a reader over one stored variant, or ErrNotFound when the
// image id is unknown. The caller closes the reader.
func (s *Store) Open(imageID string, variant Variant) (io.ReadCloser, error) {
	img, err := s.index.GetImage(imageID)
	if err != nil {
		return nil, err
	}

	path := img.FullPath
	if variant == VariantThumbnail {
		path = img.ThumbPath
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		// Index ahead of the filesystem should not happen; report it as
		// not-found to the client rather than a server fault.
		s.logger.Warn("Indexed variant missing on disk",
			zap.String("image_id", imageID),
			zap.String("path", path),
		)
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Sweep deletes abandoned temp files left by interrupted passes. They were
// never indexed, so removing them is always safe.
func (s *Store) Sweep() error {
	var swept int
	err := filepath.Walk(s.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasPrefix(info.Name(), tmpPrefix) {
			return nil
		}
		if err := os.Remove(path); err != nil {
			return err
		}
		swept++
		return nil
	})
	if err != nil {
		return fmt.Errorf("temp sweep failed: %w", err)
	}
	if swept > 0 {
		s.logger.Info("Removed abandoned temp files", zap.Int("count", swept))
	}
	return nil
}

// Verify walks the index and drops any row whose backing files are missing
// or empty, deleting whatever half survives. Healed ids become eligible for
// re-sync on the next pass. Returns the number of healed rows.
func (s *Store) Verify() (int, error) {
	images, err := s.index.AllImages()
	if err != nil {
		return 0, err
	}

	healed := 0
	for _, img := range images {
		if variantOK(img.FullPath) && variantOK(img.ThumbPath) {
			continue
		}
		s.logger.Warn("Index row without backing files, removing",
			zap.String("image_id", img.ID),
			zap.String("album_id", img.AlbumID),
		)
		if err := s.Remove(img.ID); err != nil {
			return healed, err
		}
		healed++
	}
	return healed, nil
}

func variantOK(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Size() > 0
}

// Wipe removes every stored variant and clears the index. Used by reindex.
func (s *Store) Wipe() error {
	if err := os.RemoveAll(s.root); err != nil {
		return fmt.Errorf("failed to remove variant directory: %w", err)
	}
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("failed to recreate variant directory: %w", err)
	}
	return s.index.Clear()
}
