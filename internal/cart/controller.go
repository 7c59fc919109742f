package cart

import (
	"errors"
	"net/http"

	"ticketly/internal/seats"
	"ticketly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) Toggle(ctx *gin.Context) {
	seatID := ctx.Param("seatId")
	if seatID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Seat ID is required", nil, "missing seat ID")
		return
	}

	customerID := ctx.GetString("user_id")
	if customerID == "" {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, "missing user context")
		return
	}

	cartState, err := c.service.Toggle(ctx.Request.Context(), customerID, seatID)
	if err != nil {
		response.RespondJSON(ctx, "error", statusFromErr(err), "Failed to toggle seat", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat toggled successfully", cartState, nil)
}

func (c *Controller) GetCart(ctx *gin.Context) {
	customerID := ctx.GetString("user_id")
	if customerID == "" {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, "missing user context")
		return
	}

	cartState, err := c.service.GetCart(ctx.Request.Context(), customerID)
	if err != nil {
		response.RespondJSON(ctx, "error", statusFromErr(err), "Failed to get cart", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Cart retrieved successfully", cartState, nil)
}

func (c *Controller) Commit(ctx *gin.Context) {
	customerID := ctx.GetString("user_id")
	if customerID == "" {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, "missing user context")
		return
	}

	result, err := c.service.Commit(ctx.Request.Context(), customerID)
	if err != nil {
		response.RespondJSON(ctx, "error", statusFromErr(err), "Failed to commit cart", nil, err.Error())
		return
	}

	// Partial success is still success: conflicted seats ride along in the
	// result for the caller to retry or drop.
	response.RespondJSON(ctx, "success", http.StatusOK, "Cart committed", result, nil)
}

func (c *Controller) Clear(ctx *gin.Context) {
	customerID := ctx.GetString("user_id")
	if customerID == "" {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, "missing user context")
		return
	}

	if err := c.service.Clear(ctx.Request.Context(), customerID); err != nil {
		response.RespondJSON(ctx, "error", statusFromErr(err), "Failed to clear cart", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Cart cleared successfully", nil, nil)
}

func statusFromErr(err error) int {
	switch {
	case errors.Is(err, seats.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, seats.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
