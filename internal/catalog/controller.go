package catalog

import (
	"errors"
	"net/http"

	"tourly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service CatalogService
}

func NewController(service CatalogService) *Controller {
	return &Controller{service: service}
}

// ListServices handles GET /api/v1/services
func (c *Controller) ListServices(ctx *gin.Context) {
	services, err := c.service.ListServices(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list services", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Services retrieved successfully", services, nil)
}

// CreateService handles POST /api/v1/admin/services
func (c *Controller) CreateService(ctx *gin.Context) {
	var req CreateServiceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	svc, err := c.service.CreateService(ctx.Request.Context(), req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Failed to create service", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Service created successfully", svc, nil)
}

// SetTourPrice handles POST /api/v1/admin/tours/:id/service-prices
func (c *Controller) SetTourPrice(ctx *gin.Context) {
	tourID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid tour ID", nil, nil)
		return
	}

	var req SetTourPriceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	override, err := c.service.SetTourPrice(ctx.Request.Context(), tourID, req)
	if err != nil {
		if errors.Is(err, ErrServiceNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Service not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Failed to set tour price", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Tour price set successfully", override, nil)
}
