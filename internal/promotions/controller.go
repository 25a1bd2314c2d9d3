package promotions

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

// CreatePromotion handles POST /api/v1/admin/promotions
func (c *Controller) CreatePromotion(ctx *gin.Context) {
	var req CreatePromotionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	promotion, err := c.service.CreatePromotion(ctx.Request.Context(), req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Failed to create promotion", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Promotion created successfully", promotion, nil)
}

// GetPromotion handles GET /api/v1/admin/promotions/:id
func (c *Controller) GetPromotion(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid promotion ID", nil, nil)
		return
	}

	promotion, err := c.service.GetPromotion(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPromotionNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Promotion not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get promotion", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Promotion retrieved successfully", promotion, nil)
}

// ListPromotions handles GET /api/v1/admin/promotions
func (c *Controller) ListPromotions(ctx *gin.Context) {
	var query PromotionListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	promotions, err := c.service.ListPromotions(ctx.Request.Context(), query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list promotions", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Promotions retrieved successfully", promotions, nil)
}

// DeactivatePromotion handles POST /api/v1/admin/promotions/:id/deactivate
func (c *Controller) DeactivatePromotion(ctx *gin.Context) {
	c.setActive(ctx, false, "Promotion deactivated successfully")
}

// ActivatePromotion handles POST /api/v1/admin/promotions/:id/activate
func (c *Controller) ActivatePromotion(ctx *gin.Context) {
	c.setActive(ctx, true, "Promotion activated successfully")
}

func (c *Controller) setActive(ctx *gin.Context, active bool, successMsg string) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid promotion ID", nil, nil)
		return
	}

	if err := c.service.SetPromotionActive(ctx.Request.Context(), id, active); err != nil {
		if errors.Is(err, ErrPromotionNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Promotion not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to update promotion", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, successMsg, nil, nil)
}

// CreateCoupon handles POST /api/v1/admin/promotions/:id/coupons
func (c *Controller) CreateCoupon(ctx *gin.Context) {
	promotionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid promotion ID", nil, nil)
		return
	}

	var req CreateCouponRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	coupon, err := c.service.CreateCoupon(ctx.Request.Context(), promotionID, req)
	if err != nil {
		if errors.Is(err, ErrPromotionNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Promotion not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Failed to create coupon", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Coupon created successfully", coupon, nil)
}
