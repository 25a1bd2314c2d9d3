package users

import (
	"tourly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes registers authentication and profile routes
func SetupAuthRoutes(rg *gin.RouterGroup, controller *Controller) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", controller.Register)
		auth.POST("/login", controller.Login)
		auth.POST("/refresh", controller.RefreshToken)
	}

	protected := rg.Group("/auth", middleware.JWTAuth())
	{
		protected.GET("/me", controller.GetProfile)
		protected.POST("/change-password", controller.ChangePassword)
	}
}
