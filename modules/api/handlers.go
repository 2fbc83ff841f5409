package api

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/drive-gateway-demo/events"
	drivemod "github.com/example/drive-gateway-demo/modules/drive"
)

// fallbackFilename is used in the disposition header when a file's display
// name has no header-safe characters at all.
const fallbackFilename = "download"

// EventPublisher publishes gateway access events. The drive module is the
// production implementation.
type EventPublisher interface {
	PublishFolderListed(events.FolderListedEvent) error
	PublishFileServed(events.FileServedEvent) error
}

// Handlers implements the gateway's HTTP handlers.
type Handlers struct {
	service   *drivemod.Service
	publisher EventPublisher
	logger    types.Logger
}

// NewHandlers creates the handler set for the gateway routes.
func NewHandlers(service *drivemod.Service, publisher EventPublisher, logger types.Logger) *Handlers {
	return &Handlers{
		service:   service,
		publisher: publisher,
		logger:    logger,
	}
}

// Health handles GET /health.
func (h *Handlers) Health(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status: "healthy",
		Details: map[string]any{
			"module": "api",
		},
	})
}

// ListFiles handles /files/ and renders the folder listing as HTML, one
// block per entry in provider order.
func (h *Handlers) ListFiles(c *fiber.Ctx) error {
	files, err := h.service.List(c.UserContext())
	if err != nil {
		h.logger.Error("Folder listing failed", "error", err)
		status, msg := errorStatus(err)
		return c.Status(status).SendString(msg)
	}

	page, err := renderListing(files)
	if err != nil {
		h.logger.Error("Listing render failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to render listing")
	}

	if err := h.publisher.PublishFolderListed(events.FolderListedEvent{
		EventID:   uuid.New().String(),
		FileCount: len(files),
		ListedAt:  time.Now(),
	}); err != nil {
		h.logger.Warn("Failed to publish FolderListed event", "error", err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(page)
}

// ServeFile handles /files/<percent-encoded-name>: decode the name, resolve
// it (following a shortcut to its target), download the content and deliver
// the bytes verbatim.
func (h *Handlers) ServeFile(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid file name encoding")
	}

	content, err := h.service.Fetch(c.UserContext(), name)
	if err != nil {
		status, msg := errorStatus(err)
		if status >= fiber.StatusInternalServerError {
			h.logger.Error("Serve failed", "name", name, "error", err)
		}
		return c.Status(status).SendString(msg)
	}

	meta := content.Meta
	if err := h.publisher.PublishFileServed(events.FileServedEvent{
		EventID:  uuid.New().String(),
		FileID:   meta.ID,
		Name:     meta.Name,
		MimeType: meta.MimeType,
		Size:     int64(len(content.Data)),
		ServedAt: time.Now(),
	}); err != nil {
		h.logger.Warn("Failed to publish FileServed event", "error", err)
	}

	c.Set(fiber.HeaderContentType, meta.MimeType)
	c.Set(fiber.HeaderContentDisposition, contentDisposition(meta.Name))
	return c.Send(content.Data)
}

// errorStatus maps service errors to a response status and plain-text body.
// Messages are distinct per failing call site; upstream status codes and
// transport detail stay local.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, drivemod.ErrFileNotFound):
		return fiber.StatusNotFound, "File not found"
	case errors.Is(err, drivemod.ErrListFailed):
		return fiber.StatusInternalServerError, "Failed to fetch files from Google Drive"
	case errors.Is(err, drivemod.ErrSearchFailed):
		return fiber.StatusInternalServerError, "Failed to search for file"
	case errors.Is(err, drivemod.ErrTargetFetchFailed):
		return fiber.StatusInternalServerError, "Failed to fetch target file of shortcut"
	case errors.Is(err, drivemod.ErrDownloadFailed):
		return fiber.StatusInternalServerError, "Failed to download file"
	default:
		return fiber.StatusInternalServerError, "Internal server error"
	}
}

// contentDisposition builds the inline disposition header for name.
func contentDisposition(name string) string {
	return `inline; filename="` + sanitizeFilename(name) + `"`
}

// sanitizeFilename strips characters that would break a quoted header value
// (controls, double quotes, backslashes). Falls back to a generic filename
// when nothing safe remains.
func sanitizeFilename(name string) string {
	safe := strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f || r == '"' || r == '\\' {
			return -1
		}
		return r
	}, name)
	if safe == "" {
		return fallbackFilename
	}
	return safe
}
