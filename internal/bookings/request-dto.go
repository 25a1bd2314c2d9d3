package bookings

import (
	"github.com/google/uuid"

	"tourly/internal/pricing"
)

type CreateBookingRequest struct {
	InstanceID uuid.UUID                 `json:"instance_id" binding:"required"`
	SeatCount  int                       `json:"seat_count" binding:"required,min=1"`
	Services   []pricing.SelectedService `json:"services" binding:"dive"`
	CouponCode string                    `json:"coupon_code"`
}

type UpdateStatusRequest struct {
	Status Status `json:"status" binding:"required,bookingstatus"`
}

type ProcessPaymentRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required,oneof=card upi netbanking wallet"`
}

type BookingListQuery struct {
	Page  int `form:"page,default=1" binding:"min=1"`
	Limit int `form:"limit,default=10" binding:"min=1,max=100"`
}
