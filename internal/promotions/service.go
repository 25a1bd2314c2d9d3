package promotions

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"tourly/internal/shared/constants"
	"tourly/pkg/cache"
)

// Service covers promotion administration. Discount evaluation lives on
// Engine, redemption tracking on Ledger.
type Service interface {
	SetCacheService(cacheService cache.Service)

	CreatePromotion(ctx context.Context, req CreatePromotionRequest) (*PromotionResponse, error)
	GetPromotion(ctx context.Context, id uuid.UUID) (*PromotionResponse, error)
	ListPromotions(ctx context.Context, query PromotionListQuery) (*PaginatedPromotions, error)
	SetPromotionActive(ctx context.Context, id uuid.UUID, active bool) error
	CreateCoupon(ctx context.Context, promotionID uuid.UUID, req CreateCouponRequest) (*CouponResponse, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) CreatePromotion(ctx context.Context, req CreatePromotionRequest) (*PromotionResponse, error) {
	if !req.PromotionType.IsValid() {
		return nil, fmt.Errorf("invalid promotion type: %s", req.PromotionType)
	}
	if req.StartAt != nil && req.EndAt != nil && req.EndAt.Before(*req.StartAt) {
		return nil, fmt.Errorf("end_at must not be before start_at")
	}

	rules := make([]PromotionRule, 0, len(req.Rules))
	for _, r := range req.Rules {
		if !r.RuleType.IsValid() {
			return nil, fmt.Errorf("invalid rule type: %s", r.RuleType)
		}
		if r.RuleType == RuleTypePercent && r.Value > 100 {
			return nil, fmt.Errorf("percent rule value must not exceed 100")
		}
		rules = append(rules, PromotionRule{
			RuleType:          r.RuleType,
			Value:             r.Value,
			MaxDiscountAmount: r.MaxDiscountAmount,
		})
	}

	targets := make([]PromotionTarget, 0, len(req.Targets))
	for _, t := range req.Targets {
		if !t.TargetType.IsValid() {
			return nil, fmt.Errorf("invalid target type: %s", t.TargetType)
		}
		target := PromotionTarget{TargetType: t.TargetType}
		if t.TargetType != TargetTypeAll {
			if t.TargetID == nil {
				return nil, fmt.Errorf("target_id is required for %s targets", t.TargetType)
			}
			id, err := uuid.Parse(*t.TargetID)
			if err != nil {
				return nil, fmt.Errorf("invalid target id: %w", err)
			}
			target.TargetID = &id
		}
		targets = append(targets, target)
	}

	promotion := &Promotion{
		Name:           req.Name,
		PromotionType:  req.PromotionType,
		IsActive:       true,
		StartAt:        req.StartAt,
		EndAt:          req.EndAt,
		Priority:       req.Priority,
		AllowStack:     req.AllowStack,
		MaxGlobalUses:  req.MaxGlobalUses,
		MaxUsesPerUser: req.MaxUsesPerUser,
		MinTotalAmount: req.MinTotalAmount,
		MinSeats:       req.MinSeats,
		Rules:          rules,
		Targets:        targets,
	}

	if err := s.repo.CreatePromotion(ctx, promotion); err != nil {
		return nil, fmt.Errorf("failed to create promotion: %w", err)
	}

	s.invalidatePromotionCache(ctx)

	resp := promotion.ToResponse()
	return &resp, nil
}

func (s *service) GetPromotion(ctx context.Context, id uuid.UUID) (*PromotionResponse, error) {
	promotion, err := s.repo.GetPromotionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := promotion.ToResponse()
	return &resp, nil
}

func (s *service) ListPromotions(ctx context.Context, query PromotionListQuery) (*PaginatedPromotions, error) {
	result, totalCount, err := s.repo.GetAllPromotions(ctx, query.Page, query.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list promotions: %w", err)
	}

	responses := make([]PromotionResponse, 0, len(result))
	for i := range result {
		responses = append(responses, result[i].ToResponse())
	}

	return &PaginatedPromotions{
		Promotions: responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
	}, nil
}

func (s *service) SetPromotionActive(ctx context.Context, id uuid.UUID, active bool) error {
	if err := s.repo.SetPromotionActive(ctx, id, active); err != nil {
		return err
	}
	s.invalidatePromotionCache(ctx)
	return nil
}

func (s *service) CreateCoupon(ctx context.Context, promotionID uuid.UUID, req CreateCouponRequest) (*CouponResponse, error) {
	promotion, err := s.repo.GetPromotionByID(ctx, promotionID)
	if err != nil {
		return nil, err
	}
	if !promotion.PromotionType.RequiresCoupon() {
		return nil, fmt.Errorf("promotion %s does not accept coupons", promotion.Name)
	}
	if req.StartAt != nil && req.EndAt != nil && req.EndAt.Before(*req.StartAt) {
		return nil, fmt.Errorf("end_at must not be before start_at")
	}

	coupon := &Coupon{
		PromotionID:    promotionID,
		Code:           strings.ToUpper(strings.TrimSpace(req.Code)),
		IsActive:       true,
		StartAt:        req.StartAt,
		EndAt:          req.EndAt,
		MaxUses:        req.MaxUses,
		MaxUsesPerUser: req.MaxUsesPerUser,
	}

	if err := s.repo.CreateCoupon(ctx, coupon); err != nil {
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}

	s.invalidatePromotionCache(ctx)

	resp := coupon.ToResponse()
	return &resp, nil
}

func (s *service) invalidatePromotionCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_PROMOTIONS_ALL)
}
