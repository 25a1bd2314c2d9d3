package pricing

import (
	"tourly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupPricingRoutes registers the pricing quote route
func SetupPricingRoutes(rg *gin.RouterGroup, controller *Controller) {
	pricingGroup := rg.Group("/pricing", middleware.JWTAuth())
	{
		pricingGroup.POST("/quote", controller.Quote)
	}
}
