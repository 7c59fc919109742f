package seats

import (
	"errors"
	"net/http"

	"ticketly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// SEAT READS

func (c *Controller) GetSeat(ctx *gin.Context) {
	id := ctx.Param("id")
	if id == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Seat ID is required", nil, "missing seat ID")
		return
	}

	detail, err := c.service.GetSeatDetail(ctx.Request.Context(), id)
	if err != nil {
		response.RespondJSON(ctx, "error", statusFromErr(err), "Failed to get seat", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat retrieved successfully", detail, nil)
}

func (c *Controller) GetSeatMap(ctx *gin.Context) {
	sectionID := ctx.Param("sectionId")
	if sectionID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Section ID is required", nil, "missing section ID")
		return
	}

	seatMap, err := c.service.GetSeatMap(ctx.Request.Context(), sectionID)
	if err != nil {
		response.RespondJSON(ctx, "error", statusFromErr(err), "Failed to get seat map", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat map retrieved successfully", seatMap, nil)
}

// SALE CONFIRMATION

func (c *Controller) ConfirmSale(ctx *gin.Context) {
	id := ctx.Param("id")
	if id == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Seat ID is required", nil, "missing seat ID")
		return
	}

	holder := ctx.GetString("user_id")
	if holder == "" {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, "missing user context")
		return
	}

	seat, err := c.service.ConfirmSale(ctx.Request.Context(), id, holder)
	if err != nil {
		response.RespondJSON(ctx, "error", statusFromErr(err), "Failed to confirm sale", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Sale confirmed successfully", seat.ToResponse(), nil)
}

// statusFromErr maps store sentinels onto HTTP status codes so every
// controller in the package reports conflicts and misses the same way.
func statusFromErr(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
