package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when an album or image id is unknown to the index.
var ErrNotFound = errors.New("not found")

// Index is the durable mapping from album and image ids to metadata and
// variant paths. It has one writer (the sync pass) and many readers (the
// serving layer); every mutation is a whole-row insert, update, or delete,
// so readers never observe a partially committed entry.
type Index struct {
	db *gorm.DB
}

// NewIndex wraps a database connection and ensures the schema exists.
func NewIndex(db *gorm.DB) (*Index, error) {
	if err := db.AutoMigrate(&Album{}, &Image{}); err != nil {
		return nil, fmt.Errorf("failed to migrate index schema: %w", err)
	}
	return &Index{db: db}, nil
}

// UpsertAlbum inserts or refreshes an album row.
func (i *Index) UpsertAlbum(album *Album) error {
	return i.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(album).Error
}

// ListAlbums returns all albums ordered by name.
func (i *Index) ListAlbums() ([]Album, error) {
	var albums []Album
	if err := i.db.Order("name").Find(&albums).Error; err != nil {
		return nil, err
	}
	return albums, nil
}

// GetAlbum returns one album or ErrNotFound.
func (i *Index) GetAlbum(id string) (*Album, error) {
	var album Album
	err := i.db.First(&album, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &album, nil
}

// UpsertImage inserts or replaces an image row wholesale.
func (i *Index) UpsertImage(img *Image) error {
	return i.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(img).Error
}

// GetImage returns one image or ErrNotFound.
func (i *Index) GetImage(id string) (*Image, error) {
	var img Image
	err := i.db.First(&img, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &img, nil
}

// ImagesByAlbum returns one page of an album's images ordered by filename.
func (i *Index) ImagesByAlbum(albumID string, offset, limit int) ([]Image, error) {
	var images []Image
	err := i.db.Where("album_id = ?", albumID).
		Order("filename").
		Offset(offset).
		Limit(limit).
		Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

// CountByAlbum returns the number of committed images in an album.
func (i *Index) CountByAlbum(albumID string) (int64, error) {
	var count int64
	err := i.db.Model(&Image{}).Where("album_id = ?", albumID).Count(&count).Error
	return count, err
}

// ImagesForAlbum returns all image rows of an album, unpaginated. The sync
// pass uses this to compute the delta against the remote listing.
func (i *Index) ImagesForAlbum(albumID string) ([]Image, error) {
	var images []Image
	if err := i.db.Where("album_id = ?", albumID).Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

// AllImages returns every image row. Used by Verify.
func (i *Index) AllImages() ([]Image, error) {
	var images []Image
	if err := i.db.Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

// DeleteImage removes an image row. Deleting an absent row is not an error.
func (i *Index) DeleteImage(id string) error {
	return i.db.Delete(&Image{}, "id = ?", id).Error
}

// Clear drops every image and album row. Only reindex uses this.
func (i *Index) Clear() error {
	if err := i.db.Where("1 = 1").Delete(&Image{}).Error; err != nil {
		return err
	}
	return i.db.Where("1 = 1").Delete(&Album{}).Error
}
