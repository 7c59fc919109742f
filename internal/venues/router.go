package venues

import (
	"ticketly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupVenueRoutes(rg *gin.RouterGroup, controller *Controller) {

	// PUBLIC LAYOUT READS

	venues := rg.Group("/venues")
	{
		venues.GET("/:venueId/layout", controller.GetVenueLayout) // GET /api/v1/venues/:venueId/layout
	}

	// ADMIN TOPOLOGY REGISTRY

	adminVenues := rg.Group("/admin/venues")
	adminVenues.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminVenues.POST("", controller.RegisterTopology)                // POST /api/v1/admin/venues
		adminVenues.GET("", controller.ListTopologies)                   // GET /api/v1/admin/venues
		adminVenues.GET("/:venueId", controller.GetTopology)             // GET /api/v1/admin/venues/:venueId
		adminVenues.DELETE("/:venueId", controller.DeleteTopology)       // DELETE /api/v1/admin/venues/:venueId
		adminVenues.POST("/:venueId/provision", controller.Provision)    // POST /api/v1/admin/venues/:venueId/provision
	}
}
