package tours

import "time"

type CreateTourRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=255"`
	Description string `json:"description" binding:"max=2000"`
	CategoryID  string `json:"category_id" binding:"required,uuid"`
}

type CreateInstanceRequest struct {
	DepartsAt time.Time `json:"departs_at" binding:"required"`
	Capacity  int       `json:"capacity" binding:"required,min=1,max=100000"`
	PriceBase float64   `json:"price_base" binding:"required,min=0"`
	Currency  string    `json:"currency" binding:"omitempty,len=3"`
}

type TourListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search"`
	Category string `form:"category" binding:"omitempty,uuid"`
}
