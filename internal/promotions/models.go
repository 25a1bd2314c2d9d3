package promotions

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Promotion struct {
	ID            uuid.UUID     `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name          string        `json:"name" gorm:"not null;size:255"`
	PromotionType PromotionType `json:"promotion_type" gorm:"type:varchar(20);not null"`
	IsActive      bool          `json:"is_active" gorm:"default:true"`
	StartAt       *time.Time    `json:"start_at"` // nil = unbounded
	EndAt         *time.Time    `json:"end_at"`   // nil = unbounded
	Priority      int           `json:"priority" gorm:"default:0"`
	AllowStack    bool          `json:"allow_stack" gorm:"default:false"`

	MaxGlobalUses  *int     `json:"max_global_uses"`
	UsageCount     int      `json:"usage_count" gorm:"default:0"`
	MaxUsesPerUser *int     `json:"max_uses_per_user"`
	MinTotalAmount *float64 `json:"min_total_amount"`
	MinSeats       *int     `json:"min_seats"`

	Rules   []PromotionRule   `json:"rules,omitempty" gorm:"foreignKey:PromotionID;constraint:OnDelete:CASCADE;"`
	Targets []PromotionTarget `json:"targets,omitempty" gorm:"foreignKey:PromotionID;constraint:OnDelete:CASCADE;"`
	Coupons []Coupon          `json:"coupons,omitempty" gorm:"foreignKey:PromotionID;constraint:OnDelete:CASCADE;"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PromotionRule struct {
	ID                uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	PromotionID       uuid.UUID `json:"promotion_id" gorm:"type:uuid;index;not null"`
	RuleType          RuleType  `json:"rule_type" gorm:"type:varchar(20);not null"`
	Value             float64   `json:"value" gorm:"not null"`
	MaxDiscountAmount *float64  `json:"max_discount_amount"`
	CreatedAt         time.Time `json:"created_at"`
}

type PromotionTarget struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	PromotionID uuid.UUID  `json:"promotion_id" gorm:"type:uuid;index;not null"`
	TargetType  TargetType `json:"target_type" gorm:"type:varchar(20);not null"`
	TargetID    *uuid.UUID `json:"target_id" gorm:"type:uuid"`
	CreatedAt   time.Time  `json:"created_at"`
}

type Coupon struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	PromotionID uuid.UUID  `json:"promotion_id" gorm:"type:uuid;index;not null"`
	Code        string     `json:"code" gorm:"uniqueIndex;not null;size:64"`
	IsActive    bool       `json:"is_active" gorm:"default:true"`
	StartAt     *time.Time `json:"start_at"`
	EndAt       *time.Time `json:"end_at"`

	MaxUses        *int `json:"max_uses"`
	UsageCount     int  `json:"usage_count" gorm:"default:0"`
	MaxUsesPerUser *int `json:"max_uses_per_user"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PromotionRedemption records one discount application tied 1:1 to a booking.
// Its status mirrors the owning booking's lifecycle; usage counters on the
// promotion and coupon are incremented at record time and never decremented,
// even when the redemption is voided.
type PromotionRedemption struct {
	ID             uuid.UUID        `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	PromotionID    uuid.UUID        `json:"promotion_id" gorm:"type:uuid;index;not null"`
	BookingID      uuid.UUID        `json:"booking_id" gorm:"type:uuid;uniqueIndex;not null"`
	UserID         uuid.UUID        `json:"user_id" gorm:"type:uuid;index;not null"`
	CouponID       *uuid.UUID       `json:"coupon_id" gorm:"type:uuid"`
	DiscountAmount float64          `json:"discount_amount" gorm:"not null"`
	Status         RedemptionStatus `json:"status" gorm:"type:varchar(20);default:'APPLIED'"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// TableName sets the table name for Promotion
func (Promotion) TableName() string {
	return "promotions"
}

// TableName sets the table name for PromotionRule
func (PromotionRule) TableName() string {
	return "promotion_rules"
}

// TableName sets the table name for PromotionTarget
func (PromotionTarget) TableName() string {
	return "promotion_targets"
}

// TableName sets the table name for Coupon
func (Coupon) TableName() string {
	return "coupons"
}

// TableName sets the table name for PromotionRedemption
func (PromotionRedemption) TableName() string {
	return "promotion_redemptions"
}

// IsWithinWindow checks the promotion's active window, nil bounds are open
func (p *Promotion) IsWithinWindow(now time.Time) bool {
	if p.StartAt != nil && now.Before(*p.StartAt) {
		return false
	}
	if p.EndAt != nil && now.After(*p.EndAt) {
		return false
	}
	return true
}

// HasGlobalUsesLeft checks the promotion-wide usage budget
func (p *Promotion) HasGlobalUsesLeft() bool {
	return p.MaxGlobalUses == nil || p.UsageCount < *p.MaxGlobalUses
}

// MatchesTarget reports whether the promotion applies to the given tour,
// instance, and category. No targets, or an ALL target, matches everything.
func (p *Promotion) MatchesTarget(tourID, instanceID, categoryID uuid.UUID) bool {
	if len(p.Targets) == 0 {
		return true
	}
	for i := range p.Targets {
		t := &p.Targets[i]
		switch t.TargetType {
		case TargetTypeAll:
			return true
		case TargetTypeTour:
			if t.TargetID != nil && *t.TargetID == tourID {
				return true
			}
		case TargetTypeInstance:
			if t.TargetID != nil && *t.TargetID == instanceID {
				return true
			}
		case TargetTypeCategory:
			if t.TargetID != nil && *t.TargetID == categoryID {
				return true
			}
		}
	}
	return false
}

// MeetsConstraints checks minimum cart constraints
func (p *Promotion) MeetsConstraints(totalAmount float64, seatCount int) bool {
	if p.MinSeats != nil && seatCount < *p.MinSeats {
		return false
	}
	if p.MinTotalAmount != nil && totalAmount < *p.MinTotalAmount {
		return false
	}
	return true
}

// FindCoupon returns the promotion's coupon matching the given code, if any
func (p *Promotion) FindCoupon(code string) *Coupon {
	for i := range p.Coupons {
		if strings.EqualFold(p.Coupons[i].Code, code) {
			return &p.Coupons[i]
		}
	}
	return nil
}

// IsRedeemable checks the coupon's own active flag, window, and global budget
func (c *Coupon) IsRedeemable(now time.Time) bool {
	if !c.IsActive {
		return false
	}
	if c.StartAt != nil && now.Before(*c.StartAt) {
		return false
	}
	if c.EndAt != nil && now.After(*c.EndAt) {
		return false
	}
	if c.MaxUses != nil && c.UsageCount >= *c.MaxUses {
		return false
	}
	return true
}
