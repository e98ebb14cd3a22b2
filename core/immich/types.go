package immich

// AssetType is the media kind Immich reports for an asset.
type AssetType string

const (
	AssetTypeImage AssetType = "IMAGE"
	AssetTypeVideo AssetType = "VIDEO"
	AssetTypeAudio AssetType = "AUDIO"
	AssetTypeOther AssetType = "OTHER"
)

// Album is an Immich album as returned by the albums API.
// Assets is only populated when fetching a single album.
type Album struct {
	ID         string  `json:"id"`
	AlbumName  string  `json:"albumName"`
	AssetCount int64   `json:"assetCount"`
	Assets     []Asset `json:"assets"`
}

// Asset is a single remote media item. Checksum is the base64-encoded SHA-1
// Immich computed over the original bytes.
type Asset struct {
	ID               string    `json:"id"`
	OriginalFileName string    `json:"originalFileName"`
	Checksum         string    `json:"checksum"`
	Type             AssetType `json:"type"`
	OriginalMimeType string    `json:"originalMimeType"`
}

// IsImage reports whether the asset is a still image.
func (a Asset) IsImage() bool {
	return a.Type == AssetTypeImage
}

// ServerInfo is the response of the server version endpoint.
type ServerInfo struct {
	Version string `json:"version"`
}
