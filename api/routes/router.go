// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"ticketly/internal/admin"
	"ticketly/internal/audit"
	"ticketly/internal/cart"
	"ticketly/internal/seats"
	"ticketly/internal/shared/config"
	"ticketly/internal/shared/database"
	"ticketly/internal/venues"
	"ticketly/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	recorder audit.Recorder

	venueService venues.Service // kept for startup provisioning
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, recorder audit.Recorder) *Router {
	if recorder == nil {
		recorder = audit.NewNopRecorder()
	}
	return &Router{
		config:   cfg,
		db:       db,
		recorder: recorder,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// One store instance backs every feature; the backend is selected by
	// config, everything downstream only sees the interface.
	store := r.buildStore()
	cacheService := r.buildCacheService()

	seatService := seats.NewService(store)
	if cacheService != nil {
		seatService.SetCacheService(cacheService)
	}
	seatService.SetAuditRecorder(r.recorder)

	venueService := venues.NewService(store)
	if cacheService != nil {
		venueService.SetCacheService(cacheService)
	}
	venueService.SetAuditRecorder(r.recorder)
	seatService.SetSectionResolver(venueService)
	r.venueService = venueService

	cartService := cart.NewService(cart.NewManager(), store, seatService)
	cartService.SetAuditRecorder(r.recorder)

	adminService := admin.NewService(store, seatService)
	adminService.SetAuditRecorder(r.recorder)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		venues.SetupVenueRoutes(api, venues.NewController(venueService))
		seats.SetupSeatRoutes(api, seats.NewController(seatService))
		cart.SetupCartRoutes(api, cart.NewController(cartService))
		admin.SetupAdminRoutes(api, admin.NewController(adminService))
	}
}

// VenueService exposes the venue service for startup provisioning
func (r *Router) VenueService() venues.Service {
	return r.venueService
}

func (r *Router) buildStore() seats.Store {
	if r.config.UsesPostgres() && r.db.GetPostgreSQL() != nil {
		return seats.NewGormStore(r.db.GetPostgreSQL())
	}
	return seats.NewMemoryStore()
}

func (r *Router) buildCacheService() cache.Service {
	if r.db.GetRedisClient() == nil {
		return nil
	}
	return cache.NewService(r.db.GetRedisClient())
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "ticketly-engine",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "ticketly-engine",
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
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}
