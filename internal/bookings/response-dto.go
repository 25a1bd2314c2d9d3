package bookings

import (
	"time"

	"github.com/google/uuid"
)

type BookingServiceResponse struct {
	ServiceID      uuid.UUID `json:"service_id"`
	ServiceName    string    `json:"service_name"`
	Quantity       int       `json:"quantity"`
	PriceAtBooking float64   `json:"price_at_booking"`
	LineTotal      float64   `json:"line_total"`
}

type PaymentResponse struct {
	ID            uuid.UUID     `json:"id"`
	Amount        float64       `json:"amount"`
	Currency      string        `json:"currency"`
	Status        PaymentStatus `json:"status"`
	TransactionID string        `json:"transaction_id,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

type BookingResponse struct {
	ID         uuid.UUID `json:"id"`
	BookingRef string    `json:"booking_ref"`
	InstanceID uuid.UUID `json:"instance_id"`
	SeatCount  int       `json:"seat_count"`
	Status     Status    `json:"status"`

	TotalAmount    float64 `json:"total_amount"`
	DiscountAmount float64 `json:"discount_amount"`
	FinalAmount    float64 `json:"final_amount"`
	Currency       string  `json:"currency"`

	Services []BookingServiceResponse `json:"services,omitempty"`
	Payment  *PaymentResponse         `json:"payment,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

type PaginatedBookings struct {
	Bookings   []BookingResponse `json:"bookings"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}

// OperationResult carries the outcome of a booking operation. Business rule
// violations set Success false with a message and no error; infrastructure
// failures surface as errors instead.
type OperationResult struct {
	Success bool             `json:"success"`
	Message string           `json:"message,omitempty"`
	Booking *BookingResponse `json:"booking,omitempty"`
}

// ToResponse converts a Booking to its API representation
func (b *Booking) ToResponse() BookingResponse {
	services := make([]BookingServiceResponse, 0, len(b.Services))
	for i := range b.Services {
		s := &b.Services[i]
		services = append(services, BookingServiceResponse{
			ServiceID:      s.ServiceID,
			ServiceName:    s.ServiceName,
			Quantity:       s.Quantity,
			PriceAtBooking: s.PriceAtBooking,
			LineTotal:      s.LineTotal,
		})
	}

	resp := BookingResponse{
		ID:             b.ID,
		BookingRef:     b.BookingRef,
		InstanceID:     b.InstanceID,
		SeatCount:      b.SeatCount,
		Status:         b.Status,
		TotalAmount:    b.TotalAmount,
		DiscountAmount: b.DiscountAmount,
		FinalAmount:    b.FinalAmount,
		Currency:       b.Currency,
		Services:       services,
		CreatedAt:      b.CreatedAt,
	}

	if b.Payment != nil {
		resp.Payment = &PaymentResponse{
			ID:            b.Payment.ID,
			Amount:        b.Payment.Amount,
			Currency:      b.Payment.Currency,
			Status:        b.Payment.Status,
			TransactionID: b.Payment.TransactionID,
			CreatedAt:     b.Payment.CreatedAt,
		}
	}

	return resp
}
