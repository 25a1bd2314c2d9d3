package tours

import (
	"tourly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupTourRoutes registers public and admin tour routes
func SetupTourRoutes(rg *gin.RouterGroup, controller *Controller) {
	toursGroup := rg.Group("/tours")
	{
		toursGroup.GET("", controller.ListTours)
		toursGroup.GET("/:id", controller.GetTour)
		toursGroup.GET("/:id/instances", controller.ListInstances)
	}

	rg.GET("/instances/:id", controller.GetInstance)

	admin := rg.Group("/admin", middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.POST("/tours", controller.CreateTour)
		admin.POST("/tours/:id/instances", controller.CreateInstance)
		admin.POST("/instances/:id/close", controller.CloseInstance)
	}
}
