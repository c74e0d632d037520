package http

import (
	"time"

	"github.com/turfbook/ground-booking-backend/internal/booking"
	"github.com/turfbook/ground-booking-backend/internal/pkg/request"
)

// SlotsQuery defines query parameters for the public booked-slot listing.
type SlotsQuery struct {
	Ground string `form:"ground" binding:"required,uuid"`
	Date   string `form:"date" binding:"required"`
}

// CreateBookingBody is the payload for POST /bookings.
type CreateBookingBody struct {
	GroundID  string   `json:"ground" binding:"required,uuid"`
	Date      string   `json:"date" binding:"required"`
	TimeSlots []string `json:"timeSlots" binding:"required"`
}

// UpdateStatusBody is the payload for PATCH /bookings/:id/status.
type UpdateStatusBody struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed cancelled"`
}

// ListBookingsQuery defines query parameters for the admin booking list.
type ListBookingsQuery struct {
	request.ListParams
	Status string `form:"status" binding:"omitempty,oneof=all pending confirmed cancelled"`
	Search string `form:"search"`
}

type GroundTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	City string `json:"city,omitempty"`
}

type UserTag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type BookingResponse struct {
	ID          string    `json:"id"`
	Ground      GroundTag `json:"ground"`
	User        UserTag   `json:"user"`
	Date        string    `json:"date"` // YYYY-MM-DD
	TimeSlots   []string  `json:"timeSlots"`
	Status      string    `json:"status"`
	TotalAmount float64   `json:"totalAmount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:          b.ID,
		Ground:      GroundTag{ID: b.GroundID, Name: b.GroundName, City: b.GroundCity},
		User:        UserTag{ID: b.UserID, Name: b.UserName, Email: b.UserEmail},
		Date:        b.Date.Format("2006-01-02"),
		TimeSlots:   b.TimeSlots,
		Status:      string(b.Status),
		TotalAmount: b.TotalAmount,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// ConflictResponse is the 409 payload listing the slots that are taken.
type ConflictResponse struct {
	Error            string   `json:"error"`
	ConflictingSlots []string `json:"conflictingSlots"`
}
