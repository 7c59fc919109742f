package seats

import (
	"ticketly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupSeatRoutes(rg *gin.RouterGroup, controller *Controller) {

	// PUBLIC SEAT READS

	seats := rg.Group("/seats")
	{
		seats.GET("/:id", controller.GetSeat) // GET /api/v1/seats/:id
	}

	sections := rg.Group("/sections")
	{
		sections.GET("/:sectionId/seats", controller.GetSeatMap) // GET /api/v1/sections/:sectionId/seats
	}

	// SALE CONFIRMATION (payment collaborator callback, user must hold the seat)

	authSeats := rg.Group("/seats")
	authSeats.Use(middleware.JWTAuth(), middleware.RequireRoles(middleware.RoleUser, middleware.RoleAdmin))
	{
		authSeats.POST("/:id/confirm", controller.ConfirmSale) // POST /api/v1/seats/:id/confirm
	}
}
