// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"offerly/internal/availability"
	"offerly/internal/bookings"
	"offerly/internal/calendar"
	"offerly/internal/catalog"
	"offerly/internal/exclusions"
	"offerly/internal/notifications"
	"offerly/internal/pricing"
	"offerly/internal/quotes"
	"offerly/internal/shared/config"
	"offerly/internal/shared/database"
	"offerly/internal/shared/middleware"
	"offerly/pkg/cache"
	"offerly/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies.
type Router struct {
	config   *config.Config
	db       *database.DB
	producer notifications.Producer
	sessions *quotes.Manager
	log      *logger.Logger
}

// NewRouter creates a new router instance.
func NewRouter(cfg *config.Config, db *database.DB, producer notifications.Producer, sessions *quotes.Manager, log *logger.Logger) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		producer: producer,
		sessions: sessions,
		log:      log,
	}
}

// SetupRoutes configures all application routes.
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	cacheService := cache.NewService(r.db.GetRedisClient())
	auth := middleware.JWTAuthWithConfig(r.config)
	seller := middleware.RequireSeller()

	// Shared domain services
	catalogService := catalog.NewService(
		catalog.NewRepository(r.db.GetPostgreSQL()),
		cacheService,
		r.config.Redis.CatalogTTL,
	)
	bookingService := bookings.NewService(bookings.NewRepository(r.db.GetPostgreSQL()))
	feed := calendar.NewClient(r.config.Calendar, cacheService, r.config.Redis.CalendarTTL, r.log)
	checker := availability.NewChecker(bookingService, feed, r.log)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		catalogController := catalog.NewController(catalogService)
		catalog.SetupCatalogRoutes(api, catalogController, auth, seller)

		bookingController := bookings.NewController(bookingService, checker, catalogService)
		bookings.SetupBookingRoutes(api, bookingController, auth, seller)

		quoteService := quotes.NewService(
			r.sessions,
			quotes.Deps{
				Catalog:              catalogService,
				Resolver:             exclusions.NewResolver(exclusions.DefaultPolicyTable()),
				Calculator:           pricing.NewCalculator(pricing.TariffFromConfig(r.config.Pricing)),
				Checker:              checker,
				ExtraHourServiceName: r.config.Pricing.ExtraHourService,
			},
			bookingService,
			r.producer,
			r.log,
		)
		quoteController := quotes.NewController(quoteService)
		quotes.SetupQuoteRoutes(api, quoteController, auth, seller)
	}
}

// setupHealthRoutes sets up health check and system status routes.
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "offerly-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "offerly-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":        "operational",
			"api_version":   r.config.APIVersion,
			"live_sessions": r.sessions.Len(),
			"timestamp":     time.Now(),
		})
	})
}
