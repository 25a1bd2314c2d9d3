package tours

import "time"

type TourResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CategoryID  string    `json:"category_id"`
	Category    string    `json:"category,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type InstanceResponse struct {
	ID             string    `json:"id"`
	TourID         string    `json:"tour_id"`
	DepartsAt      time.Time `json:"departs_at"`
	Capacity       int       `json:"capacity"`
	SeatsBooked    int       `json:"seats_booked"`
	SeatsHeld      int       `json:"seats_held"`
	AvailableSeats int       `json:"available_seats"`
	PriceBase      float64   `json:"price_base"`
	Currency       string    `json:"currency"`
	Status         string    `json:"status"`
}

type PaginatedTours struct {
	Tours      []TourResponse `json:"tours"`
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
}

// ToResponse converts a Tour to its API representation
func (t *Tour) ToResponse() TourResponse {
	resp := TourResponse{
		ID:          t.ID.String(),
		Name:        t.Name,
		Slug:        t.Slug,
		Description: t.Description,
		CategoryID:  t.CategoryID.String(),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.Category != nil {
		resp.Category = t.Category.Name
	}
	return resp
}

// ToResponse converts a TourInstance to its API representation
func (ti *TourInstance) ToResponse() InstanceResponse {
	return InstanceResponse{
		ID:             ti.ID.String(),
		TourID:         ti.TourID.String(),
		DepartsAt:      ti.DepartsAt,
		Capacity:       ti.Capacity,
		SeatsBooked:    ti.SeatsBooked,
		SeatsHeld:      ti.SeatsHeld,
		AvailableSeats: ti.AvailableSeats(),
		PriceBase:      ti.PriceBase,
		Currency:       ti.Currency,
		Status:         ti.Status.String(),
	}
}
