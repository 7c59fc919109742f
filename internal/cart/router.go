package cart

import (
	"ticketly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupCartRoutes(rg *gin.RouterGroup, controller *Controller) {

	carts := rg.Group("/cart")
	carts.Use(middleware.JWTAuth(), middleware.RequireRoles(middleware.RoleUser, middleware.RoleAdmin))
	{
		carts.GET("", controller.GetCart)                  // GET /api/v1/cart
		carts.POST("/toggle/:seatId", controller.Toggle)   // POST /api/v1/cart/toggle/:seatId
		carts.POST("/commit", controller.Commit)           // POST /api/v1/cart/commit
		carts.DELETE("", controller.Clear)                 // DELETE /api/v1/cart
	}
}
