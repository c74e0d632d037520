package booking

import (
	"net/http"
	"strings"
	"time"

	"github.com/turfbook/ground-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "booking not found")
	ErrGroundNotFound      = apperror.New(http.StatusNotFound, "ground not found")
	ErrEmptySlots          = apperror.New(http.StatusBadRequest, "at least one time slot is required")
	ErrNonConsecutiveSlots = apperror.New(http.StatusBadRequest, "slots must be consecutive 2-hour blocks")
	ErrInvalidStatus       = apperror.New(http.StatusBadRequest, "invalid booking status")
)

// ConflictError is returned when requested slots collide with existing
// confirmed bookings. It carries the specific conflicting slot labels so the
// caller can re-offer availability.
type ConflictError struct {
	Slots []string
}

func (e *ConflictError) Error() string {
	return "some slots are already booked: " + strings.Join(e.Slots, ", ")
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is a known booking status. There is deliberately no
// transition table: any status may be set to any other, including
// re-confirming a cancelled booking.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

type Booking struct {
	ID         string
	GroundID   string
	GroundName string
	GroundCity string
	UserID     string
	UserName   string
	UserEmail  string

	Date        time.Time // midnight UTC, day granularity
	TimeSlots   []string
	Status      Status
	TotalAmount float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter defines parameters for the admin booking list.
type Filter struct {
	Status   string // empty or "all" means no status filter
	Search   string // case-insensitive match on user name or ground name
	Page     int
	PageSize int
}
