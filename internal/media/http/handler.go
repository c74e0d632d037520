package http

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turfbook/ground-booking-backend/internal/media"
	"github.com/turfbook/ground-booking-backend/internal/pkg/response"
)

type Handler struct {
	service media.Service
}

func NewHandler(service media.Service) *Handler {
	return &Handler{service: service}
}

// ServeFile streams a stored image.
func (h *Handler) ServeFile(c *gin.Context) {
	var req FileURI
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file id"})
		return
	}

	dl, err := h.service.Open(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer dl.Content.Close()

	h.stream(c, dl)
}

// ServeThumbnail streams the thumbnail of a stored image.
func (h *Handler) ServeThumbnail(c *gin.Context) {
	var req FileURI
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file id"})
		return
	}

	dl, err := h.service.OpenThumbnail(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer dl.Content.Close()

	h.stream(c, dl)
}

func (h *Handler) stream(c *gin.Context, dl *media.Download) {
	c.Header("Content-Type", dl.ContentType)
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", dl.Filename))
	c.Header("Cache-Control", "public, max-age=86400")
	c.Status(http.StatusOK)

	if _, err := io.Copy(c.Writer, dl.Content); err != nil {
		// Headers are already out; nothing to do but abort the write.
		c.Abort()
	}
}
