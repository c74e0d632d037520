package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/turfbook/ground-booking-backend/internal/auth"
	"github.com/turfbook/ground-booking-backend/internal/booking"
	bookingHttp "github.com/turfbook/ground-booking-backend/internal/booking/http"
	"github.com/turfbook/ground-booking-backend/internal/config"
	"github.com/turfbook/ground-booking-backend/internal/ground"
	groundHttp "github.com/turfbook/ground-booking-backend/internal/ground/http"
	"github.com/turfbook/ground-booking-backend/internal/media"
	mediaHttp "github.com/turfbook/ground-booking-backend/internal/media/http"
	"github.com/turfbook/ground-booking-backend/internal/stats"
	statsHttp "github.com/turfbook/ground-booking-backend/internal/stats/http"
	"github.com/turfbook/ground-booking-backend/internal/user"
)

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(
	cfg *config.Config,
	userService user.Service,
	groundService ground.Service,
	bookingService booking.Service,
	statsService stats.Service,
	mediaService media.Service,
	jwtManager *auth.JWTManager,
) *gin.Engine {

	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowOrigins = []string{cfg.FrontendURL}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(jwtManager)
	// adminMiddleware: Further checks if the authenticated user has admin privileges.
	adminMiddleware := RequireAdmin(userService)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	authHandler := NewAuthHandler(userService, jwtManager)
	groundHandler := groundHttp.NewHandler(groundService, mediaService)
	bookingHandler := bookingHttp.NewHandler(bookingService, userService)
	statsHandler := statsHttp.NewHandler(statsService)
	mediaHandler := mediaHttp.NewHandler(mediaService)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Register API routes under /api
	api := r.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.GET("/check", authMiddleware, authHandler.Check)
			authGroup.POST("/verify-email", authHandler.VerifyEmail)
			authGroup.POST("/resend-verification", authHandler.ResendVerification)
			authGroup.POST("/forgot-password", authHandler.ForgotPassword)
			authGroup.POST("/reset-password", authHandler.ResetPassword)
		}

		groundHttp.RegisterRoutes(api, groundHandler, authMiddleware, adminMiddleware)
		bookingHttp.RegisterRoutes(api, bookingHandler, authMiddleware, adminMiddleware)
		statsHttp.RegisterRoutes(api, statsHandler, authMiddleware, adminMiddleware)
	}

	// File serving lives at the root so stored gallery URLs ("/files/{id}")
	// resolve without the /api prefix.
	mediaHttp.RegisterRoutes(&r.RouterGroup, mediaHandler)

	return r
}

func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
