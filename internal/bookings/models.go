package bookings

import (
	"time"

	"github.com/google/uuid"
)

// Booking is one reservation attempt against a tour instance. Amounts are
// frozen at creation time; later price or promotion changes never alter an
// existing booking.
type Booking struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BookingRef string    `json:"booking_ref" gorm:"uniqueIndex;not null;size:32"`
	UserID     uuid.UUID `json:"user_id" gorm:"type:uuid;index;not null"`
	InstanceID uuid.UUID `json:"instance_id" gorm:"type:uuid;index;not null"`
	SeatCount  int       `json:"seat_count" gorm:"not null;check:seat_count > 0"`
	Status     Status    `json:"status" gorm:"type:varchar(20);default:'PENDING';index"`

	TotalAmount    float64 `json:"total_amount" gorm:"not null"`
	DiscountAmount float64 `json:"discount_amount" gorm:"default:0"`
	FinalAmount    float64 `json:"final_amount" gorm:"not null"`
	Currency       string  `json:"currency" gorm:"type:varchar(3);default:'USD'"`

	// Reserved for hold expiry sweeps; not populated yet
	HoldExpiresAt *time.Time `json:"hold_expires_at,omitempty"`

	Services []BookingService `json:"services,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;"`
	Payment  *Payment         `json:"payment,omitempty" gorm:"foreignKey:BookingID"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// BookingService is one add-on line frozen at booking time
type BookingService struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BookingID      uuid.UUID `json:"booking_id" gorm:"type:uuid;index;not null"`
	ServiceID      uuid.UUID `json:"service_id" gorm:"type:uuid;not null"`
	ServiceName    string    `json:"service_name" gorm:"not null;size:255"`
	Quantity       int       `json:"quantity" gorm:"not null;check:quantity > 0"`
	PriceAtBooking float64   `json:"price_at_booking" gorm:"not null"`
	LineTotal      float64   `json:"line_total" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at"`
}

// Payment records a payment attempt for a booking
type Payment struct {
	ID            uuid.UUID     `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BookingID     uuid.UUID     `json:"booking_id" gorm:"type:uuid;uniqueIndex;not null"`
	Amount        float64       `json:"amount" gorm:"not null"`
	Currency      string        `json:"currency" gorm:"type:varchar(3);default:'USD'"`
	Status        PaymentStatus `json:"status" gorm:"type:varchar(20);default:'PENDING'"`
	TransactionID string        `json:"transaction_id" gorm:"size:64"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

// TableName sets the table name for BookingService
func (BookingService) TableName() string {
	return "booking_services"
}

// TableName sets the table name for Payment
func (Payment) TableName() string {
	return "payments"
}

// IsPaid reports whether the booking has a completed payment
func (b *Booking) IsPaid() bool {
	return b.Payment != nil && b.Payment.Status == PaymentStatusCompleted
}
