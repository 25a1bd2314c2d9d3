package promotions

// PromotionType controls how a promotion becomes a discount candidate
type PromotionType string

const (
	PromotionTypeAutomatic PromotionType = "AUTOMATIC"
	PromotionTypeCoupon    PromotionType = "COUPON"
	PromotionTypeFlashSale PromotionType = "FLASH_SALE"
)

func (t PromotionType) IsValid() bool {
	switch t {
	case PromotionTypeAutomatic, PromotionTypeCoupon, PromotionTypeFlashSale:
		return true
	}
	return false
}

// RequiresCoupon reports whether a candidate needs a matching coupon code
func (t PromotionType) RequiresCoupon() bool {
	return t == PromotionTypeCoupon
}

// RuleType is the discount rule variant
type RuleType string

const (
	RuleTypePercent     RuleType = "PERCENT"
	RuleTypeFixed       RuleType = "FIXED"
	RuleTypeFreeSeat    RuleType = "FREE_SEAT"
	RuleTypeBuyXGetY    RuleType = "BUY_X_GET_Y"
	RuleTypeFreeService RuleType = "FREE_SERVICE"
)

func (t RuleType) IsValid() bool {
	switch t {
	case RuleTypePercent, RuleTypeFixed, RuleTypeFreeSeat, RuleTypeBuyXGetY, RuleTypeFreeService:
		return true
	}
	return false
}

// TargetType scopes which tours a promotion applies to
type TargetType string

const (
	TargetTypeAll      TargetType = "ALL"
	TargetTypeTour     TargetType = "TOUR"
	TargetTypeInstance TargetType = "INSTANCE"
	TargetTypeCategory TargetType = "CATEGORY"
)

func (t TargetType) IsValid() bool {
	switch t {
	case TargetTypeAll, TargetTypeTour, TargetTypeInstance, TargetTypeCategory:
		return true
	}
	return false
}

// RedemptionStatus mirrors the owning booking's lifecycle
type RedemptionStatus string

const (
	RedemptionStatusApplied   RedemptionStatus = "APPLIED"
	RedemptionStatusConfirmed RedemptionStatus = "CONFIRMED"
	RedemptionStatusVoided    RedemptionStatus = "VOIDED"
)

func (s RedemptionStatus) IsValid() bool {
	switch s {
	case RedemptionStatusApplied, RedemptionStatusConfirmed, RedemptionStatusVoided:
		return true
	}
	return false
}
