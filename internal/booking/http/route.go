package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")

	// === Public Routes ===
	group.GET("/slots", h.Slots)

	// === Authenticated Routes ===
	authed := group.Group("")
	authed.Use(authMiddleware)
	{
		authed.GET("/user/:userId", h.ListByUser)
		authed.POST("", h.Create)
	}

	// === Administration Routes ===
	adminGroup := authed.Group("")
	adminGroup.Use(adminMiddleware)
	{
		adminGroup.GET("", h.List)
		adminGroup.PATCH("/:id/status", h.UpdateStatus)
	}
}
