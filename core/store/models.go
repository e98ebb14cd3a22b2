package store

import "time"

// Album is an index row for a synced album. It is refreshed on every sync
// pass and never mutated otherwise.
type Album struct {
	ID         string `gorm:"primaryKey"`
	Name       string
	AssetCount int64
	LastSyncAt time.Time
}

// Image is an index row for a fully committed image. A row exists if and
// only if both variant files exist on disk and are non-empty; Commit is the
// only writer and enforces that ordering.
type Image struct {
	ID          string `gorm:"primaryKey"`
	AlbumID     string `gorm:"index"`
	Filename    string
	Checksum    string
	FullPath    string
	ThumbPath   string
	FullSize    int64
	ThumbSize   int64
	Width       int
	Height      int
	SyncedAt    time.Time
	ConvertedAt time.Time
}
