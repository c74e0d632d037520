package app

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/turfbook/ground-booking-backend/internal/api"
	"github.com/turfbook/ground-booking-backend/internal/auth"
	"github.com/turfbook/ground-booking-backend/internal/booking"
	"github.com/turfbook/ground-booking-backend/internal/config"
	"github.com/turfbook/ground-booking-backend/internal/ground"
	"github.com/turfbook/ground-booking-backend/internal/media"
	"github.com/turfbook/ground-booking-backend/internal/notify"
	"github.com/turfbook/ground-booking-backend/internal/pkg/storage"
	"github.com/turfbook/ground-booking-backend/internal/stats"
	"github.com/turfbook/ground-booking-backend/internal/user"
)

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
	Mailer     notify.Mailer

	publisher notify.Publisher
	redis     *redis.Client
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg *config.Config, pool *pgxpool.Pool) (*Container, error) {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTokenTTL)

	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init storage failed: %w", err)
	}

	// Mailer: real SMTP when configured, log-only otherwise.
	var mailer notify.Mailer
	if cfg.SMTPAddr != "" {
		mailer = notify.NewSMTPMailer(notify.SMTPConfig{
			Addr:        cfg.SMTPAddr,
			From:        cfg.SMTPFrom,
			Username:    cfg.SMTPUser,
			Password:    cfg.SMTPPass,
			FrontendURL: cfg.FrontendURL,
		})
	} else {
		log.Println("SMTP_ADDR not set, emails will be logged only")
		mailer = notify.NewLogMailer()
	}

	// Event publisher: RabbitMQ when configured, no-op otherwise.
	var publisher notify.Publisher = notify.NewNoopPublisher()
	if cfg.AMQPURL != "" {
		p, err := notify.NewAMQPPublisher(cfg.AMQPURL)
		if err != nil {
			log.Printf("connect to rabbitmq failed, events disabled: %v", err)
		} else {
			publisher = p
		}
	}

	// Booked-slot cache: Redis when configured, disabled otherwise.
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}
	slotCache := booking.NewSlotCache(redisClient, cfg.SlotCacheTTL)

	// User Module
	userRepo := user.NewPgxRepository(pool)
	userService := user.NewService(userRepo, passwordHasher, mailer)

	// Media Module
	mediaRepo := media.NewPgxRepository(pool)
	mediaService := media.NewService(mediaRepo, store, storage.NewImageProcessor())

	// Ground Module
	groundRepo := ground.NewPgxRepository(pool)
	groundService := ground.NewService(groundRepo)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(pool)
	bookingService := booking.NewService(bookingRepo, groundService, userService, publisher, slotCache, booking.Config{
		StrictSlotOrder: cfg.StrictSlotOrder,
	})

	// Stats Module
	statsRepo := stats.NewPgxRepository(pool)
	statsService := stats.NewService(statsRepo)

	// Router
	router := api.NewRouter(cfg, userService, groundService, bookingService, statsService, mediaService, jwtManager)

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
		Mailer:     mailer,
		publisher:  publisher,
		redis:      redisClient,
	}, nil
}

// Close releases connections held by the container.
func (c *Container) Close() {
	if c.publisher != nil {
		if err := c.publisher.Close(); err != nil {
			log.Printf("close publisher failed: %v", err)
		}
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			log.Printf("close redis failed: %v", err)
		}
	}
}
