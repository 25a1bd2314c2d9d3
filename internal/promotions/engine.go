package promotions

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tourly/internal/shared/constants"
	"tourly/pkg/cache"
	"tourly/pkg/logger"
)

// TourLookup resolves the category a tour belongs to, for CATEGORY targets.
// Declared locally to avoid a dependency on the tours package.
type TourLookup interface {
	GetTourCategoryID(ctx context.Context, tourID uuid.UUID) (uuid.UUID, error)
}

// DiscountQuery describes one booking attempt to evaluate discounts for
type DiscountQuery struct {
	UserID      uuid.UUID
	TourID      uuid.UUID
	InstanceID  uuid.UUID
	TotalAmount float64
	SeatCount   int
	CouponCode  string
}

// DiscountResult is the outcome of discount evaluation. A zero discount with
// a non-empty Message means the supplied coupon code did not apply.
type DiscountResult struct {
	DiscountAmount float64
	PromotionID    *uuid.UUID
	CouponID       *uuid.UUID
	Message        string
}

// Engine evaluates active promotions against a booking attempt and picks
// the single best applicable discount.
type Engine interface {
	CalculateDiscount(ctx context.Context, query DiscountQuery) (*DiscountResult, error)
	SetCacheService(cacheService cache.Service)
}

type engine struct {
	repo         Repository
	tours        TourLookup
	cacheService cache.Service
	logger       *logger.Logger
}

func NewEngine(repo Repository, tours TourLookup) Engine {
	return &engine{
		repo:   repo,
		tours:  tours,
		logger: logger.GetDefault(),
	}
}

func (e *engine) SetCacheService(cacheService cache.Service) {
	e.cacheService = cacheService
}

// candidate pairs a qualified promotion with its discount and matched coupon
type candidate struct {
	promotion *Promotion
	coupon    *Coupon
	discount  float64
}

func (e *engine) CalculateDiscount(ctx context.Context, query DiscountQuery) (*DiscountResult, error) {
	now := time.Now().UTC()

	promotions, err := e.loadActivePromotions(ctx, now)
	if err != nil {
		return nil, err
	}

	categoryID, err := e.tours.GetTourCategoryID(ctx, query.TourID)
	if err != nil {
		return nil, err
	}

	var candidates []candidate
	for i := range promotions {
		p := &promotions[i]

		if !p.IsWithinWindow(now) || !p.HasGlobalUsesLeft() {
			continue
		}
		if !p.MatchesTarget(query.TourID, query.InstanceID, categoryID) {
			continue
		}
		if !p.MeetsConstraints(query.TotalAmount, query.SeatCount) {
			continue
		}

		var coupon *Coupon
		if p.PromotionType.RequiresCoupon() {
			if query.CouponCode == "" {
				continue
			}
			coupon = p.FindCoupon(query.CouponCode)
			if coupon == nil || !coupon.IsRedeemable(now) {
				continue
			}
			ok, err := e.couponUsableBy(ctx, coupon, query.UserID)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}

		ok, err := e.promotionUsableBy(ctx, p, query.UserID)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		discount := applyRules(p.Rules, query.TotalAmount)
		candidates = append(candidates, candidate{promotion: p, coupon: coupon, discount: discount})
	}

	if len(candidates) == 0 {
		result := &DiscountResult{}
		if query.CouponCode != "" {
			result.Message = "coupon code is invalid or not applicable to this booking"
		}
		return result, nil
	}

	winner := pickWinner(candidates)

	result := &DiscountResult{
		DiscountAmount: winner.discount,
		PromotionID:    &winner.promotion.ID,
	}
	if winner.coupon != nil {
		result.CouponID = &winner.coupon.ID
	}

	e.logger.InfoWithContext(ctx, "Discount Selected", map[string]interface{}{
		"promotion_id": winner.promotion.ID.String(),
		"promotion":    winner.promotion.Name,
		"discount":     winner.discount,
		"candidates":   len(candidates),
	})
	return result, nil
}

func (e *engine) loadActivePromotions(ctx context.Context, now time.Time) ([]Promotion, error) {
	if e.cacheService == nil {
		return e.repo.ListActivePromotions(ctx, now)
	}

	var cached []Promotion
	if err := e.cacheService.Get(ctx, constants.CACHE_KEY_PROMOTIONS_ACTIVE, &cached); err == nil {
		return cached, nil
	}

	promotions, err := e.repo.ListActivePromotions(ctx, now)
	if err != nil {
		return nil, err
	}
	if err := e.cacheService.Set(ctx, constants.CACHE_KEY_PROMOTIONS_ACTIVE, promotions, constants.TTL_PROMOTIONS_ACTIVE); err != nil {
		e.logger.Warn("failed to cache active promotions", "error", err)
	}
	return promotions, nil
}

func (e *engine) promotionUsableBy(ctx context.Context, p *Promotion, userID uuid.UUID) (bool, error) {
	if p.MaxUsesPerUser == nil {
		return true, nil
	}
	used, err := e.repo.CountUserRedemptions(ctx, p.ID, userID)
	if err != nil {
		return false, err
	}
	return used < int64(*p.MaxUsesPerUser), nil
}

func (e *engine) couponUsableBy(ctx context.Context, c *Coupon, userID uuid.UUID) (bool, error) {
	if c.MaxUsesPerUser == nil {
		return true, nil
	}
	used, err := e.repo.CountUserCouponRedemptions(ctx, c.ID, userID)
	if err != nil {
		return false, err
	}
	return used < int64(*c.MaxUsesPerUser), nil
}

// applyRules sums the monetary effect of a promotion's rules against the
// booking total, clamped so the discount never exceeds the total. FREE_SEAT,
// BUY_X_GET_Y, and FREE_SERVICE rules carry no monetary effect here; their
// value is realized structurally when the booking is assembled.
func applyRules(rules []PromotionRule, totalAmount float64) float64 {
	var discount float64
	for i := range rules {
		r := &rules[i]
		var amount float64
		switch r.RuleType {
		case RuleTypePercent:
			amount = totalAmount * r.Value / 100
		case RuleTypeFixed:
			amount = r.Value
		case RuleTypeFreeSeat, RuleTypeBuyXGetY, RuleTypeFreeService:
			amount = 0
		}
		if r.MaxDiscountAmount != nil && amount > *r.MaxDiscountAmount {
			amount = *r.MaxDiscountAmount
		}
		discount += amount
	}
	if discount > totalAmount {
		discount = totalAmount
	}
	if discount < 0 {
		discount = 0
	}
	return discount
}

// pickWinner selects the best candidate: largest discount first, then higher
// priority, then earliest creation time so results stay deterministic.
func pickWinner(candidates []candidate) candidate {
	winner := candidates[0]
	for _, c := range candidates[1:] {
		if c.discount > winner.discount {
			winner = c
			continue
		}
		if c.discount < winner.discount {
			continue
		}
		if c.promotion.Priority > winner.promotion.Priority {
			winner = c
			continue
		}
		if c.promotion.Priority < winner.promotion.Priority {
			continue
		}
		if c.promotion.CreatedAt.Before(winner.promotion.CreatedAt) {
			winner = c
		}
	}
	return winner
}
