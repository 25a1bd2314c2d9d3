package promotions

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tourly/pkg/logger"
)

// RedemptionEntry is the input for recording a discount application
type RedemptionEntry struct {
	PromotionID    uuid.UUID
	BookingID      uuid.UUID
	UserID         uuid.UUID
	CouponID       *uuid.UUID
	DiscountAmount float64
}

// Ledger tracks discount redemptions alongside booking lifecycles. All
// methods take the caller's transaction handle so ledger writes commit or
// roll back with the booking they belong to.
//
// Usage counters on the promotion and coupon are incremented by Record and
// never decremented. Void only flips the redemption status; the consumed
// budget stays consumed.
type Ledger interface {
	Record(ctx context.Context, tx *gorm.DB, entry RedemptionEntry) error
	Confirm(ctx context.Context, tx *gorm.DB, bookingID uuid.UUID) error
	Void(ctx context.Context, tx *gorm.DB, bookingID uuid.UUID) error
}

type ledger struct {
	logger *logger.Logger
}

func NewLedger() Ledger {
	return &ledger{logger: logger.GetDefault()}
}

func (l *ledger) Record(ctx context.Context, tx *gorm.DB, entry RedemptionEntry) error {
	redemption := &PromotionRedemption{
		PromotionID:    entry.PromotionID,
		BookingID:      entry.BookingID,
		UserID:         entry.UserID,
		CouponID:       entry.CouponID,
		DiscountAmount: entry.DiscountAmount,
		Status:         RedemptionStatusApplied,
	}
	if err := tx.WithContext(ctx).Create(redemption).Error; err != nil {
		return err
	}

	if err := tx.WithContext(ctx).
		Model(&Promotion{}).
		Where("id = ?", entry.PromotionID).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).Error; err != nil {
		return err
	}

	if entry.CouponID != nil {
		if err := tx.WithContext(ctx).
			Model(&Coupon{}).
			Where("id = ?", *entry.CouponID).
			UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).Error; err != nil {
			return err
		}
	}

	l.logger.LogPromotionApplied(ctx, entry.PromotionID.String(), entry.BookingID.String(), entry.DiscountAmount)
	return nil
}

func (l *ledger) Confirm(ctx context.Context, tx *gorm.DB, bookingID uuid.UUID) error {
	return l.setStatus(ctx, tx, bookingID, RedemptionStatusConfirmed)
}

func (l *ledger) Void(ctx context.Context, tx *gorm.DB, bookingID uuid.UUID) error {
	return l.setStatus(ctx, tx, bookingID, RedemptionStatusVoided)
}

// setStatus flips the redemption tied to a booking. Bookings without a
// redemption are the common case, so a missing row is not an error.
func (l *ledger) setStatus(ctx context.Context, tx *gorm.DB, bookingID uuid.UUID, status RedemptionStatus) error {
	err := tx.WithContext(ctx).
		Model(&PromotionRedemption{}).
		Where("booking_id = ?", bookingID).
		Update("status", status).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}
