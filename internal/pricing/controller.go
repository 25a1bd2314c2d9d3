package pricing

import (
	"errors"
	"net/http"

	"tourly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	calculator Calculator
}

func NewController(calculator Calculator) *Controller {
	return &Controller{calculator: calculator}
}

// Quote handles POST /api/v1/pricing/quote
func (c *Controller) Quote(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req QuoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	calc, err := c.calculator.Calculate(ctx.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, ErrInstanceNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Instance not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Failed to calculate price", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Price calculated successfully", calc, nil)
}

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
