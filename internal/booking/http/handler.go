package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/turfbook/ground-booking-backend/internal/auth"
	"github.com/turfbook/ground-booking-backend/internal/booking"
	"github.com/turfbook/ground-booking-backend/internal/pkg/response"
	"github.com/turfbook/ground-booking-backend/internal/user"
)

type Handler struct {
	service     booking.Service
	userService user.Service
}

func NewHandler(service booking.Service, userService user.Service) *Handler {
	return &Handler{
		service:     service,
		userService: userService,
	}
}

// parseDate accepts a plain calendar date or a full RFC 3339 timestamp; the
// time-of-day part of a timestamp is discarded.
func parseDate(s string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// Slots handles GET /bookings/slots: the flat list of slot labels confirmed
// for a ground on a given day. Public, used by the booking page.
func (h *Handler) Slots(c *gin.Context) {
	var q SlotsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ground and date are required"})
		return
	}

	date, ok := parseDate(q.Date)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}

	slots, err := h.service.BookedSlots(c.Request.Context(), q.Ground, date)
	if err != nil {
		response.Error(c, err)
		return
	}

	if slots == nil {
		slots = []string{}
	}
	c.JSON(http.StatusOK, slots)
}

// Create handles POST /bookings.
func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	date, ok := parseDate(body.Date)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}

	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		UserID:    userID,
		GroundID:  body.GroundID,
		Date:      date,
		TimeSlots: body.TimeSlots,
	})
	if err != nil {
		var conflict *booking.ConflictError
		if errors.As(err, &conflict) {
			c.JSON(http.StatusConflict, ConflictResponse{
				Error:            "some slots are already booked",
				ConflictingSlots: conflict.Slots,
			})
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

// ListByUser handles GET /bookings/user/:userId. Users can read their own
// bookings; admins can read anyone's.
func (h *Handler) ListByUser(c *gin.Context) {
	targetID := c.Param("userId")
	currentID := auth.GetUserID(c)

	if targetID != currentID && !h.isAdmin(c, currentID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	bookings, err := h.service.ListByUser(c.Request.Context(), targetID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}
	c.JSON(http.StatusOK, items)
}

// List handles GET /bookings (admin): status filter plus search over user
// and ground names.
func (h *Handler) List(c *gin.Context) {
	var q ListBookingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	filter := booking.Filter{
		Status:   q.Status,
		Search:   q.Search,
		Page:     q.Page,
		PageSize: q.PageSize,
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, filter.Page, filter.PageSize, total))
}

// UpdateStatus handles PATCH /bookings/:id/status (admin).
func (h *Handler) UpdateStatus(c *gin.Context) {
	var uri struct {
		ID string `uri:"id" binding:"required,uuid"`
	}
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking ID"})
		return
	}

	var body UpdateStatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), uri.ID, booking.Status(body.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) isAdmin(c *gin.Context, userID string) bool {
	u, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		return false
	}
	return u.Role == user.RoleAdmin
}
