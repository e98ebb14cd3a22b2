package transcode

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	// Register decoders for the source formats Immich commonly serves.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gen2brain/avif"
	"github.com/nfnt/resize"
)

// ErrDecode marks a corrupt or unsupported source image.
var ErrDecode = errors.New("failed to decode source image")

// ErrEncode marks an AVIF encoding failure.
var ErrEncode = errors.New("failed to encode AVIF")

// encodeSpeed trades encode time for compression. Batch conversion is
// CPU-bound on the worker pool, so a middle setting keeps passes moving.
const encodeSpeed = 6

// Result holds the two encoded variants of one source image plus the final
// dimensions of the full variant.
type Result struct {
	Thumbnail []byte
	Full      []byte
	Width     int
	Height    int
}

// Transcoder converts one source image into AVIF thumbnail and full-size
// variants. Quality and dimension limits are fixed at construction; a
// running pass never sees them change.
type Transcoder struct {
	cfg Config
}

// New creates a transcoder from the configuration.
func New(cfg Config) *Transcoder {
	return &Transcoder{cfg: cfg}
}

// Transcode decodes src and produces both variants.
func (t *Transcoder) Transcode(src []byte) (*Result, error) {
	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	full := t.fullOf(img)
	thumb := t.thumbnailOf(img)

	fullBytes, err := t.encode(full)
	if err != nil {
		return nil, err
	}
	thumbBytes, err := t.encode(thumb)
	if err != nil {
		return nil, err
	}

	bounds := full.Bounds()
	return &Result{
		Thumbnail: thumbBytes,
		Full:      fullBytes,
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
	}, nil
}

// fullOf scales the source down to the configured max width. Narrower
// sources keep their resolution; nothing is ever upscaled.
func (t *Transcoder) fullOf(img image.Image) image.Image {
	if img.Bounds().Dx() <= t.cfg.MaxWidth {
		return img
	}
	return resize.Resize(uint(t.cfg.MaxWidth), 0, img, resize.Lanczos3)
}

// thumbnailOf scales the source so its longer edge matches the thumbnail
// width, preserving aspect ratio and never upscaling.
func (t *Transcoder) thumbnailOf(img image.Image) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w >= h {
		if w <= t.cfg.ThumbnailWidth {
			return img
		}
		return resize.Resize(uint(t.cfg.ThumbnailWidth), 0, img, resize.Lanczos3)
	}
	if h <= t.cfg.ThumbnailWidth {
		return img
	}
	return resize.Resize(0, uint(t.cfg.ThumbnailWidth), img, resize.Lanczos3)
}

func (t *Transcoder) encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	err := avif.Encode(&buf, img, avif.Options{
		Quality: int(t.cfg.Quality),
		Speed:   encodeSpeed,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return buf.Bytes(), nil
}
