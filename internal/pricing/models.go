package pricing

import "github.com/google/uuid"

// SelectedService is one add-on chosen for a booking, applied per seat
type SelectedService struct {
	ServiceID uuid.UUID `json:"service_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// QuoteRequest describes a pricing query for a booking attempt
type QuoteRequest struct {
	InstanceID uuid.UUID         `json:"instance_id" binding:"required"`
	SeatCount  int               `json:"seat_count" binding:"required,min=1"`
	Services   []SelectedService `json:"services" binding:"dive"`
	CouponCode string            `json:"coupon_code"`
}

// ServiceLine is one priced add-on row in a breakdown
type ServiceLine struct {
	ServiceID uuid.UUID `json:"service_id"`
	Name      string    `json:"name"`
	UnitPrice float64   `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	LineTotal float64   `json:"line_total"`
}

// PriceCalculation is the full itemized breakdown of a booking price
type PriceCalculation struct {
	InstanceID uuid.UUID `json:"instance_id"`
	TourID     uuid.UUID `json:"tour_id"`
	Currency   string    `json:"currency"`

	SeatCount     int     `json:"seat_count"`
	PricePerSeat  float64 `json:"price_per_seat"`
	SeatsSubtotal float64 `json:"seats_subtotal"`

	ServiceLines     []ServiceLine `json:"service_lines"`
	ServicesSubtotal float64       `json:"services_subtotal"`

	TotalBeforeDiscount float64    `json:"total_before_discount"`
	DiscountAmount      float64    `json:"discount_amount"`
	PromotionID         *uuid.UUID `json:"promotion_id,omitempty"`
	CouponID            *uuid.UUID `json:"coupon_id,omitempty"`
	DiscountMessage     string     `json:"discount_message,omitempty"`

	FinalTotal float64 `json:"final_total"`
}
