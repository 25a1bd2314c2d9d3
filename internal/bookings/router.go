package bookings

import (
	"tourly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes registers user booking routes and the admin status route
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller) {
	bookingsGroup := rg.Group("/bookings", middleware.JWTAuth())
	{
		bookingsGroup.POST("", controller.CreateBooking)
		bookingsGroup.GET("", controller.ListBookings)
		bookingsGroup.GET("/:id", controller.GetBooking)
		bookingsGroup.POST("/:id/cancel", controller.CancelBooking)
		bookingsGroup.POST("/:id/payment", controller.ProcessPayment)
	}

	admin := rg.Group("/admin/bookings", middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.PATCH("/:id/status", controller.UpdateStatus)
	}
}
