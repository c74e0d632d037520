package media

import (
	"net/http"
	"time"

	"github.com/turfbook/ground-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound    = apperror.New(http.StatusNotFound, "file not found")
	ErrNotAnImage  = apperror.New(http.StatusBadRequest, "only image files are allowed (JPEG, PNG, WEBP)")
	ErrTooLarge    = apperror.New(http.StatusBadRequest, "file exceeds the 10MB limit")
	ErrNoThumbnail = apperror.New(http.StatusNotFound, "no thumbnail for this file")
)

// File is the stored record of an uploaded image.
type File struct {
	ID            string
	UserID        string
	Filename      string
	StoragePath   string
	ThumbnailPath *string
	ContentType   string
	Size          int64
	CreatedAt     time.Time
}
