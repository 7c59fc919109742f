package venues

import (
	"errors"
	"net/http"

	"ticketly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

// TOPOLOGY REGISTRY

func (c *Controller) RegisterTopology(ctx *gin.Context) {
	var req TopologyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	topology := req.ToTopology()
	if err := c.service.RegisterTopology(ctx.Request.Context(), topology); err != nil {
		response.RespondJSON(ctx, "error", statusFromErr(err), "Failed to register topology", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Topology registered successfully", topology, nil)
}

func (c *Controller) ListTopologies(ctx *gin.Context) {
	topologies := c.service.ListTopologies(ctx.Request.Context())
	response.RespondJSON(ctx, "success", http.StatusOK, "Topologies retrieved successfully", topologies, nil)
}

func (c *Controller) GetTopology(ctx *gin.Context) {
	venueID := ctx.Param("venueId")
	if venueID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Venue ID is required", nil, "missing venue ID")
		return
	}

	topology, err := c.service.GetTopology(ctx.Request.Context(), venueID)
	if err != nil {
		response.RespondJSON(ctx, "error", statusFromErr(err), "Failed to get topology", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Topology retrieved successfully", topology, nil)
}

func (c *Controller) DeleteTopology(ctx *gin.Context) {
	venueID := ctx.Param("venueId")
	if venueID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Venue ID is required", nil, "missing venue ID")
		return
	}

	if err := c.service.DeleteTopology(ctx.Request.Context(), venueID); err != nil {
		response.RespondJSON(ctx, "error", statusFromErr(err), "Failed to delete topology", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Topology deleted successfully", nil, nil)
}

// PROVISIONING

func (c *Controller) Provision(ctx *gin.Context) {
	venueID := ctx.Param("venueId")
	if venueID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Venue ID is required", nil, "missing venue ID")
		return
	}

	principal := ctx.GetString("user_id")
	if principal == "" {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Admin principal is required", nil, "missing user context")
		return
	}

	result, err := c.service.Provision(ctx.Request.Context(), venueID, principal)
	if err != nil {
		response.RespondJSON(ctx, "error", statusFromErr(err), "Failed to provision inventory", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Inventory provisioned successfully", result, nil)
}

// VENUE LAYOUT

func (c *Controller) GetVenueLayout(ctx *gin.Context) {
	venueID := ctx.Param("venueId")
	if venueID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Venue ID is required", nil, "missing venue ID")
		return
	}

	layout, err := c.service.GetVenueLayout(ctx.Request.Context(), venueID)
	if err != nil {
		response.RespondJSON(ctx, "error", statusFromErr(err), "Failed to get venue layout", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Venue layout retrieved successfully", layout, nil)
}

func statusFromErr(err error) int {
	var confErr *ConfigurationError
	switch {
	case errors.Is(err, ErrTopologyNotFound):
		return http.StatusNotFound
	case errors.As(err, &confErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
