package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tourly/internal/bookings"
	"tourly/internal/catalog"
	"tourly/internal/notifications"
	"tourly/internal/pricing"
	"tourly/internal/promotions"
	"tourly/internal/shared/config"
	"tourly/internal/shared/database"
	"tourly/internal/tours"
	"tourly/internal/users"
	"tourly/pkg/cache"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	cache    cache.Service
	producer notifications.Producer

	// shared across route groups
	tourRepo    tours.Repository
	catalogRepo catalog.Repository
	promoRepo   promotions.Repository
	engine      promotions.Engine
	calculator  pricing.Calculator
}

// NewRouter creates a new router instance. cacheService and producer may be
// nil; the affected features degrade gracefully.
func NewRouter(cfg *config.Config, db *database.DB, cacheService cache.Service, producer notifications.Producer) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		cache:    cacheService,
		producer: producer,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupTourRoutes(api)
		r.setupCatalogRoutes(api)
		r.setupPromotionRoutes(api)
		r.setupPricingRoutes(api)
		r.setupBookingRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "tourly-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "tourly-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})
}

func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	userRepo := users.NewRepository(r.db.GetPostgreSQL())
	userService := users.NewService(userRepo, r.config)
	userController := users.NewController(userService)

	users.SetupAuthRoutes(rg, userController)
}

func (r *Router) setupTourRoutes(rg *gin.RouterGroup) {
	r.tourRepo = tours.NewRepository(r.db.GetPostgreSQL())
	tourService := tours.NewService(r.tourRepo)
	if r.cache != nil {
		tourService.SetCacheService(r.cache)
	}
	tourController := tours.NewController(tourService)

	tours.SetupTourRoutes(rg, tourController)
}

func (r *Router) setupCatalogRoutes(rg *gin.RouterGroup) {
	r.catalogRepo = catalog.NewRepository(r.db.GetPostgreSQL())
	catalogService := catalog.NewService(r.catalogRepo)
	catalogController := catalog.NewController(catalogService)

	catalog.SetupCatalogRoutes(rg, catalogController)
}

func (r *Router) setupPromotionRoutes(rg *gin.RouterGroup) {
	r.promoRepo = promotions.NewRepository(r.db.GetPostgreSQL())
	promoService := promotions.NewService(r.promoRepo)
	if r.cache != nil {
		promoService.SetCacheService(r.cache)
	}
	promoController := promotions.NewController(promoService)

	r.engine = promotions.NewEngine(r.promoRepo, r.tourRepo)
	if r.cache != nil {
		r.engine.SetCacheService(r.cache)
	}

	promotions.SetupPromotionRoutes(rg, promoController)
}

func (r *Router) setupPricingRoutes(rg *gin.RouterGroup) {
	r.calculator = pricing.NewCalculator(r.tourRepo, r.catalogRepo, r.engine)
	pricingController := pricing.NewController(r.calculator)

	pricing.SetupPricingRoutes(rg, pricingController)
}

func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	ledger := promotions.NewLedger()
	bookingService := bookings.NewService(bookingRepo, r.calculator, ledger, r.producer, r.config.Booking)
	bookingController := bookings.NewController(bookingService)

	bookings.SetupBookingRoutes(rg, bookingController)
}
