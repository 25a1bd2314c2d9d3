package promotions

import "time"

type CreateRuleRequest struct {
	RuleType          RuleType `json:"rule_type" binding:"required"`
	Value             float64  `json:"value" binding:"min=0"`
	MaxDiscountAmount *float64 `json:"max_discount_amount,omitempty"`
}

type CreateTargetRequest struct {
	TargetType TargetType `json:"target_type" binding:"required"`
	TargetID   *string    `json:"target_id,omitempty"`
}

type CreatePromotionRequest struct {
	Name          string        `json:"name" binding:"required,min=3,max=255"`
	PromotionType PromotionType `json:"promotion_type" binding:"required"`
	StartAt       *time.Time    `json:"start_at,omitempty"`
	EndAt         *time.Time    `json:"end_at,omitempty"`
	Priority      int           `json:"priority"`
	AllowStack    bool          `json:"allow_stack"`

	MaxGlobalUses  *int     `json:"max_global_uses,omitempty" binding:"omitempty,min=1"`
	MaxUsesPerUser *int     `json:"max_uses_per_user,omitempty" binding:"omitempty,min=1"`
	MinTotalAmount *float64 `json:"min_total_amount,omitempty" binding:"omitempty,min=0"`
	MinSeats       *int     `json:"min_seats,omitempty" binding:"omitempty,min=1"`

	Rules   []CreateRuleRequest   `json:"rules" binding:"required,min=1,dive"`
	Targets []CreateTargetRequest `json:"targets" binding:"dive"`
}

type CreateCouponRequest struct {
	Code           string     `json:"code" binding:"required,min=3,max=64"`
	StartAt        *time.Time `json:"start_at,omitempty"`
	EndAt          *time.Time `json:"end_at,omitempty"`
	MaxUses        *int       `json:"max_uses,omitempty" binding:"omitempty,min=1"`
	MaxUsesPerUser *int       `json:"max_uses_per_user,omitempty" binding:"omitempty,min=1"`
}

type PromotionListQuery struct {
	Page  int `form:"page,default=1" binding:"min=1"`
	Limit int `form:"limit,default=10" binding:"min=1,max=100"`
}
