package promotions

import (
	"tourly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupPromotionRoutes registers admin promotion management routes
func SetupPromotionRoutes(rg *gin.RouterGroup, controller *Controller) {
	admin := rg.Group("/admin/promotions", middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.POST("", controller.CreatePromotion)
		admin.GET("", controller.ListPromotions)
		admin.GET("/:id", controller.GetPromotion)
		admin.POST("/:id/activate", controller.ActivatePromotion)
		admin.POST("/:id/deactivate", controller.DeactivatePromotion)
		admin.POST("/:id/coupons", controller.CreateCoupon)
	}
}
