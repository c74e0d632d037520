package ground

import (
	"net/http"
	"time"

	"github.com/turfbook/ground-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "ground not found")
	ErrNameTooShort        = apperror.New(http.StatusBadRequest, "name must be at least 3 characters")
	ErrDescriptionTooShort = apperror.New(http.StatusBadRequest, "description must be at least 50 characters")
	ErrInvalidPrice        = apperror.New(http.StatusBadRequest, "price must be at least 1")
	ErrInvalidPincode      = apperror.New(http.StatusBadRequest, "invalid pincode (6 digits required)")
	ErrMissingLocation     = apperror.New(http.StatusBadRequest, "address, city and state are required")
	ErrInvalidHours        = apperror.New(http.StatusBadRequest, "opening and closing times are required and closing must be after opening")
	ErrGalleryRequired     = apperror.New(http.StatusBadRequest, "at least one image is required")
	ErrTooManyImages       = apperror.New(http.StatusBadRequest, "a ground can have at most 8 images")
)

// Location is the physical address of a ground.
type Location struct {
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
	Landmark string `json:"landmark,omitempty"`
}

// Ground is a bookable sports venue.
type Ground struct {
	ID          string
	Name        string
	Description string
	Price       float64 // currency per hour

	// Wall-clock opening window, "HH:MM". Meaningful only when Is24x7 is false.
	OpeningTime string
	ClosingTime string
	Is24x7      bool

	Location Location
	Gallery  []string // image URLs; Cover is always Gallery[0]
	Cover    string

	CreatedBy     string
	CreatedByName string
	IsActive      bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
