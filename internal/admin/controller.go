package admin

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

func (c *Controller) ForceState(ctx *gin.Context) {
	seatID, principal, ok := c.seatAndPrincipal(ctx)
	if !ok {
		return
	}

	var req ForceStateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	seat, err := c.service.ForceState(ctx.Request.Context(), principal, seatID, seats.SeatState(req.State))
	if err != nil {
		response.RespondJSON(ctx, "error", statusFromErr(err), "Failed to force seat state", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat state updated successfully", seat.ToResponse(), nil)
}

func (c *Controller) CycleState(ctx *gin.Context) {
	seatID, principal, ok := c.seatAndPrincipal(ctx)
	if !ok {
		return
	}

	seat, err := c.service.CycleState(ctx.Request.Context(), principal, seatID)
	if err != nil {
		response.RespondJSON(ctx, "error", statusFromErr(err), "Failed to cycle seat state", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat state cycled successfully", seat.ToResponse(), nil)
}

func (c *Controller) OverridePrice(ctx *gin.Context) {
	seatID, principal, ok := c.seatAndPrincipal(ctx)
	if !ok {
		return
	}

	var req OverridePriceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	seat, err := c.service.OverridePrice(ctx.Request.Context(), principal, seatID, *req.Price)
	if err != nil {
		response.RespondJSON(ctx, "error", statusFromErr(err), "Failed to override seat price", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat price updated successfully", seat.ToResponse(), nil)
}

func (c *Controller) RemoveSeat(ctx *gin.Context) {
	seatID, principal, ok := c.seatAndPrincipal(ctx)
	if !ok {
		return
	}

	if err := c.service.RemoveSeat(ctx.Request.Context(), principal, seatID); err != nil {
		response.RespondJSON(ctx, "error", statusFromErr(err), "Failed to remove seat", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat removed successfully", nil, nil)
}

func (c *Controller) ListSeats(ctx *gin.Context) {
	filter := seats.ListFilter{
		SectionID: ctx.Query("section_id"),
		State:     seats.SeatState(ctx.Query("state")),
	}

	listed, err := c.service.ListSeats(ctx.Request.Context(), filter)
	if err != nil {
		response.RespondJSON(ctx, "error", statusFromErr(err), "Failed to list seats", nil, err.Error())
		return
	}

	out := make([]seats.SeatResponse, 0, len(listed))
	for i := range listed {
		out = append(out, listed[i].ToResponse())
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seats retrieved successfully", out, nil)
}

func (c *Controller) seatAndPrincipal(ctx *gin.Context) (seatID, principal string, ok bool) {
	seatID = ctx.Param("id")
	if seatID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Seat ID is required", nil, "missing seat ID")
		return "", "", false
	}

	principal = ctx.GetString("user_id")
	if principal == "" {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Admin principal is required", nil, "missing user context")
		return "", "", false
	}

	return seatID, principal, true
}

func statusFromErr(err error) int {
	switch {
	case errors.Is(err, seats.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, seats.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, seats.ErrInvalidArgument):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
