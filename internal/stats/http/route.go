package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/stats")
	group.Use(authMiddleware, adminMiddleware)
	{
		group.GET("", h.Overview)
		group.GET("/recent-bookings", h.RecentBookings)
		group.GET("/chart-data", h.ChartData)
		group.GET("/analytics", h.Analytics)
	}
}
