package database

import (
	"tourly/internal/bookings"
	"tourly/internal/catalog"
	"tourly/internal/promotions"
	"tourly/internal/tours"
	"tourly/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&tours.Category{},
		&tours.Tour{},
		&tours.TourInstance{},
		&catalog.Service{},
		&catalog.TourServicePrice{},
		&promotions.Promotion{},
		&promotions.PromotionRule{},
		&promotions.PromotionTarget{},
		&promotions.Coupon{},
		&promotions.PromotionRedemption{},
		&bookings.Booking{},
		&bookings.BookingService{},
		&bookings.Payment{},
	)
}
