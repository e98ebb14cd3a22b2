package library

import (
	"errors"

	"github.com/Zurki/immich-avif-generator/core/logger"
	"github.com/Zurki/immich-avif-generator/core/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// cacheForever marks variant responses immutable: a committed variant never
// changes under its id, replacements rewrite the file under the same URL but
// clients that cached the old bytes still render a valid image.
const cacheForever = "public, max-age=31536000, immutable"

// Handler handles HTTP requests for the library.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the library routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/", h.HandleRoot)
	app.Get("/albums", h.HandleListAlbums)
	app.Get("/albums/:album_id", h.HandleAlbumPage)
	app.Get("/images/:image_id", h.HandleFullImage)
	app.Get("/images/:image_id/thumbnail", h.HandleThumbnail)
	app.Get("/images/:image_id/metadata", h.HandleMetadata)
}

// HandleRoot returns a liveness message.
func (h *Handler) HandleRoot(c *fiber.Ctx) error {
	return c.SendString("AVIF Generator API")
}

// HandleListAlbums returns all synced albums.
func (h *Handler) HandleListAlbums(c *fiber.Ctx) error {
	albums, err := h.service.ListAlbums()
	if err != nil {
		return h.serverError(c, "Failed to list albums", err)
	}
	return c.JSON(fiber.Map{"albums": albums})
}

// HandleAlbumPage returns one paginated window of an album.
func (h *Handler) HandleAlbumPage(c *fiber.Ctx) error {
	albumID := c.Params("album_id")
	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", DefaultPageSize)

	page, err := h.service.AlbumPage(albumID, offset, limit)
	if errors.Is(err, store.ErrNotFound) {
		return h.notFound(c, "Album not found")
	}
	if err != nil {
		return h.serverError(c, "Failed to load album", err)
	}
	return c.JSON(page)
}

// HandleFullImage streams the full-size variant.
func (h *Handler) HandleFullImage(c *fiber.Ctx) error {
	return h.streamVariant(c, store.VariantFull)
}

// HandleThumbnail streams the thumbnail variant.
func (h *Handler) HandleThumbnail(c *fiber.Ctx) error {
	return h.streamVariant(c, store.VariantThumbnail)
}

func (h *Handler) streamVariant(c *fiber.Ctx, variant store.Variant) error {
	imageID := c.Params("image_id")

	r, err := h.service.OpenVariant(imageID, variant)
	if errors.Is(err, store.ErrNotFound) {
		return h.notFound(c, "Image not found")
	}
	if err != nil {
		return h.serverError(c, "Failed to read image", err)
	}

	c.Set(fiber.HeaderContentType, "image/avif")
	c.Set(fiber.HeaderCacheControl, cacheForever)
	return c.SendStream(r)
}

// HandleMetadata returns the stored attributes of one image.
func (h *Handler) HandleMetadata(c *fiber.Ctx) error {
	imageID := c.Params("image_id")

	meta, err := h.service.ImageMetadata(imageID)
	if errors.Is(err, store.ErrNotFound) {
		return h.notFound(c, "Image not found")
	}
	if err != nil {
		return h.serverError(c, "Failed to load metadata", err)
	}
	return c.JSON(meta)
}

func (h *Handler) notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": msg})
}

func (h *Handler) serverError(c *fiber.Ctx, msg string, err error) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Error(msg, zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": msg})
}
