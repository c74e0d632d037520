package http

import (
	"time"

	"github.com/turfbook/ground-booking-backend/internal/ground"
)

// GroundForm carries the non-file fields of the multipart create/update form.
// Images arrive as separate file parts named "images".
type GroundForm struct {
	Name        string  `form:"name" binding:"required"`
	Description string  `form:"description" binding:"required"`
	Price       float64 `form:"price" binding:"required"`
	OpeningTime string  `form:"openingTime"`
	ClosingTime string  `form:"closingTime"`
	Is24x7      bool    `form:"is24x7"`
	Address     string  `form:"address" binding:"required"`
	City        string  `form:"city" binding:"required"`
	State       string  `form:"state" binding:"required"`
	Pincode     string  `form:"pincode" binding:"required"`
	Landmark    string  `form:"landmark"`

	// ExistingGallery is a JSON array of image URLs to keep on update.
	ExistingGallery string `form:"existingGallery"`
}

type GroundResponse struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       float64         `json:"price"`
	OpeningTime string          `json:"openingTime,omitempty"`
	ClosingTime string          `json:"closingTime,omitempty"`
	Is24x7      bool            `json:"is24x7"`
	Location    ground.Location `json:"location"`
	Gallery     []string        `json:"gallery"`
	Cover       string          `json:"cover"`
	CreatedBy   CreatedByTag    `json:"createdBy"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type CreatedByTag struct {
	ID   string `json:"_id"`
	Name string `json:"name,omitempty"`
}

func NewGroundResponse(g *ground.Ground) GroundResponse {
	return GroundResponse{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Price:       g.Price,
		OpeningTime: g.OpeningTime,
		ClosingTime: g.ClosingTime,
		Is24x7:      g.Is24x7,
		Location:    g.Location,
		Gallery:     g.Gallery,
		Cover:       g.Cover,
		CreatedBy:   CreatedByTag{ID: g.CreatedBy, Name: g.CreatedByName},
		IsActive:    g.IsActive,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}
