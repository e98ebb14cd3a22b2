package library

import (
	"io"
	"time"

	"github.com/Zurki/immich-avif-generator/core/store"

	"go.uber.org/zap"
)

const (
	// DefaultPageSize applies when the limit parameter is absent or invalid.
	DefaultPageSize = 20
	// MaxPageSize caps the limit parameter.
	MaxPageSize = 100
)

// AlbumInfo is one entry of the album listing.
type AlbumInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ImageCount int64  `json:"image_count"`
}

// ImageInfo is one entry of an album page.
type ImageInfo struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// Pagination describes the window an album page covers.
type Pagination struct {
	Total   int64 `json:"total"`
	Offset  int   `json:"offset"`
	Limit   int   `json:"limit"`
	HasMore bool  `json:"has_more"`
}

// Page is one paginated slice of an album.
type Page struct {
	AlbumID    string      `json:"album_id"`
	AlbumName  string      `json:"album_name"`
	Images     []ImageInfo `json:"images"`
	Pagination Pagination  `json:"pagination"`
}

// Metadata is the stored attributes of one image.
type Metadata struct {
	ID          string    `json:"id"`
	AlbumID     string    `json:"album_id"`
	Filename    string    `json:"filename"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	FullSize    int64     `json:"full_size"`
	ThumbSize   int64     `json:"thumbnail_size"`
	SyncedAt    time.Time `json:"synced_at"`
	ConvertedAt time.Time `json:"converted_at"`
}

// Service is the read-only query surface over the content store. It never
// writes and never blocks on a running sync pass: every read sees whole
// committed rows or nothing.
type Service struct {
	store  *store.Store
	logger *zap.Logger
}

// NewService creates a new library service.
func NewService(st *store.Store, logger *zap.Logger) *Service {
	return &Service{store: st, logger: logger}
}

// ListAlbums returns all synced albums with their committed image counts.
func (s *Service) ListAlbums() ([]AlbumInfo, error) {
	albums, err := s.store.Index().ListAlbums()
	if err != nil {
		return nil, err
	}

	infos := make([]AlbumInfo, 0, len(albums))
	for _, album := range albums {
		count, err := s.store.Index().CountByAlbum(album.ID)
		if err != nil {
			return nil, err
		}
		infos = append(infos, AlbumInfo{ID: album.ID, Name: album.Name, ImageCount: count})
	}
	return infos, nil
}

// AlbumPage returns one window of an album's images. Out-of-range offsets
// yield an empty page, not an error; unknown albums return ErrNotFound.
func (s *Service) AlbumPage(albumID string, offset, limit int) (*Page, error) {
	album, err := s.store.Index().GetAlbum(albumID)
	if err != nil {
		return nil, err
	}

	offset, limit = clampWindow(offset, limit)

	total, err := s.store.Index().CountByAlbum(albumID)
	if err != nil {
		return nil, err
	}

	images, err := s.store.Index().ImagesByAlbum(albumID, offset, limit)
	if err != nil {
		return nil, err
	}

	infos := make([]ImageInfo, 0, len(images))
	for _, img := range images {
		infos = append(infos, ImageInfo{
			ID:           img.ID,
			Filename:     img.Filename,
			URL:          "/images/" + img.ID,
			ThumbnailURL: "/images/" + img.ID + "/thumbnail",
		})
	}

	return &Page{
		AlbumID:   album.ID,
		AlbumName: album.Name,
		Images:    infos,
		Pagination: Pagination{
			Total:   total,
			Offset:  offset,
			Limit:   limit,
			HasMore: int64(offset+len(infos)) < total,
		},
	}, nil
}

// OpenVariant streams one stored variant of an image.
func (s *Service) OpenVariant(imageID string, variant store.Variant) (io.ReadCloser, error) {
	return s.store.Open(imageID, variant)
}

// ImageMetadata returns the stored attributes of one image.
func (s *Service) ImageMetadata(imageID string) (*Metadata, error) {
	img, err := s.store.Index().GetImage(imageID)
	if err != nil {
		return nil, err
	}
	return &Metadata{
		ID:          img.ID,
		AlbumID:     img.AlbumID,
		Filename:    img.Filename,
		Width:       img.Width,
		Height:      img.Height,
		FullSize:    img.FullSize,
		ThumbSize:   img.ThumbSize,
		SyncedAt:    img.SyncedAt,
		ConvertedAt: img.ConvertedAt,
	}, nil
}

// clampWindow normalizes the requested page window: negative offsets become
// zero, absent or invalid limits fall back to the default, and oversized
// limits are capped.
func clampWindow(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return offset, limit
}
