package http

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turfbook/ground-booking-backend/internal/auth"
	"github.com/turfbook/ground-booking-backend/internal/ground"
	"github.com/turfbook/ground-booking-backend/internal/media"
	"github.com/turfbook/ground-booking-backend/internal/pkg/response"
)

const maxGalleryImages = 8

type Handler struct {
	service      ground.Service
	mediaService media.Service
}

func NewHandler(service ground.Service, mediaService media.Service) *Handler {
	return &Handler{
		service:      service,
		mediaService: mediaService,
	}
}

// List handles GET /grounds: active grounds only.
func (h *Handler) List(c *gin.Context) {
	grounds, err := h.service.ListPublic(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]GroundResponse, len(grounds))
	for i, g := range grounds {
		items[i] = NewGroundResponse(g)
	}
	c.JSON(http.StatusOK, items)
}

// Get handles GET /grounds/:id. Inactive grounds 404 for everyone but admins.
func (h *Handler) Get(c *gin.Context) {
	g, err := h.service.GetPublic(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewGroundResponse(g))
}

// GetAdmin handles GET /grounds/admin/:id, returning the ground regardless of
// its active flag.
func (h *Handler) GetAdmin(c *gin.Context) {
	g, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewGroundResponse(g))
}

// Create handles POST /grounds (admin, multipart).
func (h *Handler) Create(c *gin.Context) {
	var form GroundForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data", "details": err.Error()})
		return
	}

	gallery, err := h.uploadImages(c, nil)
	if err != nil {
		response.Error(c, err)
		return
	}

	g, err := h.service.Create(c.Request.Context(), ground.CreateRequest{
		Name:        form.Name,
		Description: form.Description,
		Price:       form.Price,
		OpeningTime: form.OpeningTime,
		ClosingTime: form.ClosingTime,
		Is24x7:      form.Is24x7,
		Location: ground.Location{
			Address:  form.Address,
			City:     form.City,
			State:    form.State,
			Pincode:  form.Pincode,
			Landmark: form.Landmark,
		},
		Gallery:   gallery,
		CreatedBy: auth.GetUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewGroundResponse(g))
}

// Update handles PUT /grounds/:id (admin, multipart). The kept part of the
// gallery comes in existingGallery; new image parts are appended after it.
func (h *Handler) Update(c *gin.Context) {
	var form GroundForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data", "details": err.Error()})
		return
	}

	var existing []string
	if form.ExistingGallery != "" {
		if err := json.Unmarshal([]byte(form.ExistingGallery), &existing); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "existingGallery must be a JSON array of URLs"})
			return
		}
	}

	gallery, err := h.uploadImages(c, existing)
	if err != nil {
		response.Error(c, err)
		return
	}

	g, err := h.service.Update(c.Request.Context(), c.Param("id"), ground.UpdateRequest{
		Name:        form.Name,
		Description: form.Description,
		Price:       form.Price,
		OpeningTime: form.OpeningTime,
		ClosingTime: form.ClosingTime,
		Is24x7:      form.Is24x7,
		Location: ground.Location{
			Address:  form.Address,
			City:     form.City,
			State:    form.State,
			Pincode:  form.Pincode,
			Landmark: form.Landmark,
		},
		Gallery: gallery,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewGroundResponse(g))
}

// ToggleActive handles PATCH /grounds/:id/toggle-active (admin).
func (h *Handler) ToggleActive(c *gin.Context) {
	active, err := h.service.ToggleActive(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"isActive": active})
}

// Delete handles DELETE /grounds/:id (admin).
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ground deleted"})
}

// uploadImages stores each "images" part through the media service and
// returns the existing URLs with the new file URLs appended.
func (h *Handler) uploadImages(c *gin.Context, existing []string) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return existing, nil
	}

	files := form.File["images"]
	if len(existing)+len(files) > maxGalleryImages {
		return nil, ground.ErrTooManyImages
	}

	gallery := existing
	for _, fh := range files {
		url, err := h.uploadOne(c, fh)
		if err != nil {
			return nil, err
		}
		gallery = append(gallery, url)
	}
	return gallery, nil
}

func (h *Handler) uploadOne(c *gin.Context, fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open uploaded file failed: %w", err)
	}
	defer src.Close()

	f, err := h.mediaService.Upload(c.Request.Context(), auth.GetUserID(c), media.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Content:     src,
	})
	if err != nil {
		return "", err
	}
	return "/files/" + f.ID, nil
}
