package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Service is a bookable add-on (meal plan, transfer, insurance, gear rental)
type Service struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name      string    `json:"name" gorm:"not null;size:255"`
	Price     float64   `json:"price" gorm:"not null;check:price >= 0"`
	Currency  string    `json:"currency" gorm:"type:varchar(3);default:'USD'"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TourServicePrice is a per-tour override of a service's list price
type TourServicePrice struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TourID    uuid.UUID `json:"tour_id" gorm:"type:uuid;uniqueIndex:idx_tour_service;not null"`
	ServiceID uuid.UUID `json:"service_id" gorm:"type:uuid;uniqueIndex:idx_tour_service;not null"`
	Price     float64   `json:"price" gorm:"not null;check:price >= 0"`
	CreatedAt time.Time `json:"created_at"`

	Service *Service `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
}

// ServicePrice is the resolved unit price of a service for a specific tour
type ServicePrice struct {
	ServiceID uuid.UUID `json:"service_id"`
	Name      string    `json:"name"`
	UnitPrice float64   `json:"unit_price"`
	Currency  string    `json:"currency"`
}

// TableName sets the table name for Service
func (Service) TableName() string {
	return "services"
}

// TableName sets the table name for TourServicePrice
func (TourServicePrice) TableName() string {
	return "tour_service_prices"
}
