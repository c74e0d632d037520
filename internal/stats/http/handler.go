package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turfbook/ground-booking-backend/internal/pkg/response"
	"github.com/turfbook/ground-booking-backend/internal/stats"
)

type Handler struct {
	service stats.Service
}

func NewHandler(service stats.Service) *Handler {
	return &Handler{service: service}
}

// Overview handles GET /stats (admin).
func (h *Handler) Overview(c *gin.Context) {
	o, err := h.service.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// RecentBookings handles GET /stats/recent-bookings (admin).
func (h *Handler) RecentBookings(c *gin.Context) {
	items, err := h.service.RecentBookings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if items == nil {
		items = []stats.RecentBooking{}
	}
	c.JSON(http.StatusOK, items)
}

// ChartData handles GET /stats/chart-data (admin).
func (h *Handler) ChartData(c *gin.Context) {
	points, err := h.service.ChartData(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, points)
}

// Analytics handles GET /stats/analytics (admin).
func (h *Handler) Analytics(c *gin.Context) {
	a, err := h.service.Analytics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}
