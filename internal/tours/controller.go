package tours

import (
	"errors"
	"net/http"

	"tourly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// CreateTour handles POST /api/v1/admin/tours
func (c *Controller) CreateTour(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req CreateTourRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	tour, err := c.service.CreateTour(ctx.Request.Context(), userID, req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Failed to create tour", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Tour created successfully", tour, nil)
}

// GetTour handles GET /api/v1/tours/:id
func (c *Controller) GetTour(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid tour ID", nil, nil)
		return
	}

	tour, err := c.service.GetTourByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Tour not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get tour", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Tour retrieved successfully", tour, nil)
}

// ListTours handles GET /api/v1/tours
func (c *Controller) ListTours(ctx *gin.Context) {
	var query TourListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	tours, err := c.service.GetAllTours(ctx.Request.Context(), query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list tours", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Tours retrieved successfully", tours, nil)
}

// CreateInstance handles POST /api/v1/admin/tours/:id/instances
func (c *Controller) CreateInstance(ctx *gin.Context) {
	tourID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid tour ID", nil, nil)
		return
	}

	var req CreateInstanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	instance, err := c.service.CreateInstance(ctx.Request.Context(), tourID, req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Failed to create instance", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Instance created successfully", instance, nil)
}

// GetInstance handles GET /api/v1/instances/:id
func (c *Controller) GetInstance(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid instance ID", nil, nil)
		return
	}

	instance, err := c.service.GetInstance(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Instance not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get instance", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Instance retrieved successfully", instance, nil)
}

// ListInstances handles GET /api/v1/tours/:id/instances
func (c *Controller) ListInstances(ctx *gin.Context) {
	tourID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid tour ID", nil, nil)
		return
	}

	instances, err := c.service.GetUpcomingInstances(ctx.Request.Context(), tourID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list instances", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Instances retrieved successfully", instances, nil)
}

// CloseInstance handles POST /api/v1/admin/instances/:id/close
func (c *Controller) CloseInstance(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid instance ID", nil, nil)
		return
	}

	if err := c.service.CloseInstance(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Instance not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to close instance", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Instance closed successfully", nil, nil)
}

// currentUserID extracts the authenticated user's id set by the JWT middleware
func currentUserID(ctx *gin.Context) (uuid.UUID, bool) {
	userIDInterface, exists := ctx.Get("user_id")
	if !exists {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return uuid.Nil, false
	}

	userIDStr, ok := userIDInterface.(string)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Invalid user ID format", nil, nil)
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid user ID", nil, nil)
		return uuid.Nil, false
	}

	return userID, true
}
