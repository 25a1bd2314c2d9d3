package promotions

import (
	"time"

	"github.com/google/uuid"
)

type RuleResponse struct {
	ID                uuid.UUID `json:"id"`
	RuleType          RuleType  `json:"rule_type"`
	Value             float64   `json:"value"`
	MaxDiscountAmount *float64  `json:"max_discount_amount,omitempty"`
}

type TargetResponse struct {
	ID         uuid.UUID  `json:"id"`
	TargetType TargetType `json:"target_type"`
	TargetID   *uuid.UUID `json:"target_id,omitempty"`
}

type CouponResponse struct {
	ID             uuid.UUID  `json:"id"`
	Code           string     `json:"code"`
	IsActive       bool       `json:"is_active"`
	StartAt        *time.Time `json:"start_at,omitempty"`
	EndAt          *time.Time `json:"end_at,omitempty"`
	MaxUses        *int       `json:"max_uses,omitempty"`
	UsageCount     int        `json:"usage_count"`
	MaxUsesPerUser *int       `json:"max_uses_per_user,omitempty"`
}

type PromotionResponse struct {
	ID            uuid.UUID     `json:"id"`
	Name          string        `json:"name"`
	PromotionType PromotionType `json:"promotion_type"`
	IsActive      bool          `json:"is_active"`
	StartAt       *time.Time    `json:"start_at,omitempty"`
	EndAt         *time.Time    `json:"end_at,omitempty"`
	Priority      int           `json:"priority"`
	AllowStack    bool          `json:"allow_stack"`

	MaxGlobalUses  *int     `json:"max_global_uses,omitempty"`
	UsageCount     int      `json:"usage_count"`
	MaxUsesPerUser *int     `json:"max_uses_per_user,omitempty"`
	MinTotalAmount *float64 `json:"min_total_amount,omitempty"`
	MinSeats       *int     `json:"min_seats,omitempty"`

	Rules   []RuleResponse   `json:"rules"`
	Targets []TargetResponse `json:"targets"`
	Coupons []CouponResponse `json:"coupons,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

type PaginatedPromotions struct {
	Promotions []PromotionResponse `json:"promotions"`
	TotalCount int64               `json:"total_count"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
}

// ToResponse converts a Promotion to its API representation
func (p *Promotion) ToResponse() PromotionResponse {
	rules := make([]RuleResponse, 0, len(p.Rules))
	for i := range p.Rules {
		r := &p.Rules[i]
		rules = append(rules, RuleResponse{
			ID:                r.ID,
			RuleType:          r.RuleType,
			Value:             r.Value,
			MaxDiscountAmount: r.MaxDiscountAmount,
		})
	}

	targets := make([]TargetResponse, 0, len(p.Targets))
	for i := range p.Targets {
		t := &p.Targets[i]
		targets = append(targets, TargetResponse{
			ID:         t.ID,
			TargetType: t.TargetType,
			TargetID:   t.TargetID,
		})
	}

	coupons := make([]CouponResponse, 0, len(p.Coupons))
	for i := range p.Coupons {
		coupons = append(coupons, p.Coupons[i].ToResponse())
	}

	return PromotionResponse{
		ID:             p.ID,
		Name:           p.Name,
		PromotionType:  p.PromotionType,
		IsActive:       p.IsActive,
		StartAt:        p.StartAt,
		EndAt:          p.EndAt,
		Priority:       p.Priority,
		AllowStack:     p.AllowStack,
		MaxGlobalUses:  p.MaxGlobalUses,
		UsageCount:     p.UsageCount,
		MaxUsesPerUser: p.MaxUsesPerUser,
		MinTotalAmount: p.MinTotalAmount,
		MinSeats:       p.MinSeats,
		Rules:          rules,
		Targets:        targets,
		Coupons:        coupons,
		CreatedAt:      p.CreatedAt,
	}
}

// ToResponse converts a Coupon to its API representation
func (c *Coupon) ToResponse() CouponResponse {
	return CouponResponse{
		ID:             c.ID,
		Code:           c.Code,
		IsActive:       c.IsActive,
		StartAt:        c.StartAt,
		EndAt:          c.EndAt,
		MaxUses:        c.MaxUses,
		UsageCount:     c.UsageCount,
		MaxUsesPerUser: c.MaxUsesPerUser,
	}
}
