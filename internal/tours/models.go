package tours

import (
	"time"

	"github.com/google/uuid"
)

// Category groups tours for browsing and promotion targeting
type Category struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name      string    `json:"name" gorm:"not null;size:100"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;not null;size:120"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Tour struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name        string    `json:"name" gorm:"not null;size:255"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;not null;size:280"`
	Description string    `json:"description" gorm:"type:text"`
	CategoryID  uuid.UUID `json:"category_id" gorm:"type:uuid;index;not null"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`

	Category  *Category      `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Instances []TourInstance `json:"instances,omitempty" gorm:"foreignKey:TourID;constraint:OnDelete:CASCADE;"`

	CreatedBy uuid.UUID  `json:"created_by" gorm:"type:uuid;not null"`
	UpdatedBy *uuid.UUID `json:"updated_by" gorm:"type:uuid"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TourInstance is one scheduled departure of a tour with its own capacity and price.
// SeatsBooked counts confirmed/completed seats and never exceeds Capacity.
// SeatsHeld counts seats reserved by pending bookings and is deliberately
// uncapped: multiple pending bookings may overbook an instance.
type TourInstance struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TourID      uuid.UUID      `json:"tour_id" gorm:"type:uuid;index;not null"`
	DepartsAt   time.Time      `json:"departs_at" gorm:"not null"`
	Capacity    int            `json:"capacity" gorm:"not null;check:capacity >= 0"`
	SeatsBooked int            `json:"seats_booked" gorm:"default:0;check:seats_booked >= 0"`
	SeatsHeld   int            `json:"seats_held" gorm:"default:0;check:seats_held >= 0"`
	PriceBase   float64        `json:"price_base" gorm:"not null;check:price_base >= 0"`
	Currency    string         `json:"currency" gorm:"type:varchar(3);default:'USD'"`
	Status      InstanceStatus `json:"status" gorm:"type:varchar(20);default:'OPEN'"`

	Tour *Tour `json:"tour,omitempty" gorm:"foreignKey:TourID"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// AvailableSeats is remaining confirmed capacity, ignoring holds
func (ti *TourInstance) AvailableSeats() int {
	available := ti.Capacity - ti.SeatsBooked
	if available < 0 {
		available = 0
	}
	return available
}

// IsOpen reports whether the instance accepts new pending bookings
func (ti *TourInstance) IsOpen() bool {
	return ti.Status == InstanceStatusOpen
}

// TableName sets the table name for Category
func (Category) TableName() string {
	return "categories"
}

// TableName sets the table name for Tour
func (Tour) TableName() string {
	return "tours"
}

// TableName sets the table name for TourInstance
func (TourInstance) TableName() string {
	return "tour_instances"
}
