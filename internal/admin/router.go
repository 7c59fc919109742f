package admin

import (
	"ticketly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupAdminRoutes(rg *gin.RouterGroup, controller *Controller) {

	adminSeats := rg.Group("/admin/seats")
	adminSeats.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminSeats.GET("", controller.ListSeats)                 // GET /api/v1/admin/seats?section_id=X&state=Y
		adminSeats.PUT("/:id/state", controller.ForceState)      // PUT /api/v1/admin/seats/:id/state
		adminSeats.POST("/:id/cycle", controller.CycleState)     // POST /api/v1/admin/seats/:id/cycle
		adminSeats.PUT("/:id/price", controller.OverridePrice)   // PUT /api/v1/admin/seats/:id/price
		adminSeats.DELETE("/:id", controller.RemoveSeat)         // DELETE /api/v1/admin/seats/:id
	}
}
