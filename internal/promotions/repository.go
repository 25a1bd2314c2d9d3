package promotions

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrPromotionNotFound = errors.New("promotion not found")

type Repository interface {
	// Discount evaluation reads
	ListActivePromotions(ctx context.Context, now time.Time) ([]Promotion, error)
	CountUserRedemptions(ctx context.Context, promotionID, userID uuid.UUID) (int64, error)
	CountUserCouponRedemptions(ctx context.Context, couponID, userID uuid.UUID) (int64, error)

	// Admin operations
	CreatePromotion(ctx context.Context, promotion *Promotion) error
	GetPromotionByID(ctx context.Context, id uuid.UUID) (*Promotion, error)
	GetAllPromotions(ctx context.Context, page, limit int) ([]Promotion, int64, error)
	SetPromotionActive(ctx context.Context, id uuid.UUID, active bool) error
	CreateCoupon(ctx context.Context, coupon *Coupon) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ListActivePromotions loads promotions that are active, inside their window
// (nil bound = unbounded), and under their global usage budget, with rules,
// targets, and coupons preloaded.
func (r *repository) ListActivePromotions(ctx context.Context, now time.Time) ([]Promotion, error) {
	var result []Promotion
	err := r.db.WithContext(ctx).
		Preload("Rules").
		Preload("Targets").
		Preload("Coupons").
		Where("is_active = ?", true).
		Where("start_at IS NULL OR start_at <= ?", now).
		Where("end_at IS NULL OR end_at >= ?", now).
		Where("max_global_uses IS NULL OR usage_count < max_global_uses").
		Order("priority DESC, created_at ASC").
		Find(&result).Error
	return result, err
}

// CountUserRedemptions counts a user's non-voided redemptions of a promotion
func (r *repository) CountUserRedemptions(ctx context.Context, promotionID, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&PromotionRedemption{}).
		Where("promotion_id = ?", promotionID).
		Where("user_id = ?", userID).
		Where("status <> ?", RedemptionStatusVoided).
		Count(&count).Error
	return count, err
}

// CountUserCouponRedemptions counts a user's non-voided redemptions of a coupon
func (r *repository) CountUserCouponRedemptions(ctx context.Context, couponID, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&PromotionRedemption{}).
		Where("coupon_id = ?", couponID).
		Where("user_id = ?", userID).
		Where("status <> ?", RedemptionStatusVoided).
		Count(&count).Error
	return count, err
}

func (r *repository) CreatePromotion(ctx context.Context, promotion *Promotion) error {
	return r.db.WithContext(ctx).Create(promotion).Error
}

func (r *repository) GetPromotionByID(ctx context.Context, id uuid.UUID) (*Promotion, error) {
	var promotion Promotion
	err := r.db.WithContext(ctx).
		Preload("Rules").
		Preload("Targets").
		Preload("Coupons").
		Where("id = ?", id).
		First(&promotion).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromotionNotFound
		}
		return nil, err
	}
	return &promotion, nil
}

func (r *repository) GetAllPromotions(ctx context.Context, page, limit int) ([]Promotion, int64, error) {
	var result []Promotion
	var totalCount int64

	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	baseQuery := r.db.WithContext(ctx).Model(&Promotion{})

	if err := baseQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := baseQuery.
		Preload("Rules").
		Preload("Targets").
		Preload("Coupons").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error

	return result, totalCount, err
}

func (r *repository) SetPromotionActive(ctx context.Context, id uuid.UUID, active bool) error {
	res := r.db.WithContext(ctx).
		Model(&Promotion{}).
		Where("id = ?", id).
		Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPromotionNotFound
	}
	return nil
}

func (r *repository) CreateCoupon(ctx context.Context, coupon *Coupon) error {
	return r.db.WithContext(ctx).Create(coupon).Error
}
