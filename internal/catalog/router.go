package catalog

import (
	"tourly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupCatalogRoutes registers public service listing and admin catalog routes
func SetupCatalogRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.GET("/services", controller.ListServices)

	admin := rg.Group("/admin", middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.POST("/services", controller.CreateService)
		admin.POST("/tours/:id/service-prices", controller.SetTourPrice)
	}
}
