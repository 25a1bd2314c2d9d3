package promotions

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	promotions        []Promotion
	userRedemptions   map[uuid.UUID]int64
	couponRedemptions map[uuid.UUID]int64
}

func newFakeRepo(promos ...Promotion) *fakeRepo {
	return &fakeRepo{
		promotions:        promos,
		userRedemptions:   map[uuid.UUID]int64{},
		couponRedemptions: map[uuid.UUID]int64{},
	}
}

func (f *fakeRepo) ListActivePromotions(ctx context.Context, now time.Time) ([]Promotion, error) {
	var result []Promotion
	for _, p := range f.promotions {
		if p.IsActive && p.IsWithinWindow(now) && p.HasGlobalUsesLeft() {
			result = append(result, p)
		}
	}
	return result, nil
}

func (f *fakeRepo) CountUserRedemptions(ctx context.Context, promotionID, userID uuid.UUID) (int64, error) {
	return f.userRedemptions[promotionID], nil
}

func (f *fakeRepo) CountUserCouponRedemptions(ctx context.Context, couponID, userID uuid.UUID) (int64, error) {
	return f.couponRedemptions[couponID], nil
}

func (f *fakeRepo) CreatePromotion(ctx context.Context, promotion *Promotion) error { return nil }
func (f *fakeRepo) GetPromotionByID(ctx context.Context, id uuid.UUID) (*Promotion, error) {
	return nil, ErrPromotionNotFound
}
func (f *fakeRepo) GetAllPromotions(ctx context.Context, page, limit int) ([]Promotion, int64, error) {
	return nil, 0, nil
}
func (f *fakeRepo) SetPromotionActive(ctx context.Context, id uuid.UUID, active bool) error {
	return nil
}
func (f *fakeRepo) CreateCoupon(ctx context.Context, coupon *Coupon) error { return nil }

type fakeTourLookup struct {
	categoryID uuid.UUID
}

func (f *fakeTourLookup) GetTourCategoryID(ctx context.Context, tourID uuid.UUID) (uuid.UUID, error) {
	return f.categoryID, nil
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func automaticPromo(name string, priority int, createdAt time.Time, rules ...PromotionRule) Promotion {
	return Promotion{
		ID:            uuid.New(),
		Name:          name,
		PromotionType: PromotionTypeAutomatic,
		IsActive:      true,
		Priority:      priority,
		Rules:         rules,
		CreatedAt:     createdAt,
	}
}

func baseQuery() DiscountQuery {
	return DiscountQuery{
		UserID:      uuid.New(),
		TourID:      uuid.New(),
		InstanceID:  uuid.New(),
		TotalAmount: 1000,
		SeatCount:   2,
	}
}

func TestCalculateDiscountPercentRule(t *testing.T) {
	promo := automaticPromo("ten percent", 0, time.Now(),
		PromotionRule{RuleType: RuleTypePercent, Value: 10})
	engine := NewEngine(newFakeRepo(promo), &fakeTourLookup{})

	result, err := engine.CalculateDiscount(context.Background(), baseQuery())
	require.NoError(t, err)
	assert.Equal(t, 100.0, result.DiscountAmount)
	require.NotNil(t, result.PromotionID)
	assert.Equal(t, promo.ID, *result.PromotionID)
	assert.Nil(t, result.CouponID)
	assert.Empty(t, result.Message)
}

func TestCalculateDiscountPercentRuleCapped(t *testing.T) {
	promo := automaticPromo("capped", 0, time.Now(),
		PromotionRule{RuleType: RuleTypePercent, Value: 50, MaxDiscountAmount: floatPtr(120)})
	engine := NewEngine(newFakeRepo(promo), &fakeTourLookup{})

	result, err := engine.CalculateDiscount(context.Background(), baseQuery())
	require.NoError(t, err)
	assert.Equal(t, 120.0, result.DiscountAmount)
}

func TestCalculateDiscountFixedClampedToTotal(t *testing.T) {
	promo := automaticPromo("big fixed", 0, time.Now(),
		PromotionRule{RuleType: RuleTypeFixed, Value: 5000})
	engine := NewEngine(newFakeRepo(promo), &fakeTourLookup{})

	query := baseQuery()
	query.TotalAmount = 300

	result, err := engine.CalculateDiscount(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, 300.0, result.DiscountAmount)
}

func TestCalculateDiscountStructuralRulesHaveNoMonetaryEffect(t *testing.T) {
	promo := automaticPromo("free seat", 0, time.Now(),
		PromotionRule{RuleType: RuleTypeFreeSeat, Value: 1},
		PromotionRule{RuleType: RuleTypeFixed, Value: 50})
	engine := NewEngine(newFakeRepo(promo), &fakeTourLookup{})

	result, err := engine.CalculateDiscount(context.Background(), baseQuery())
	require.NoError(t, err)
	assert.Equal(t, 50.0, result.DiscountAmount)
}

func TestCalculateDiscountNoCandidates(t *testing.T) {
	engine := NewEngine(newFakeRepo(), &fakeTourLookup{})

	result, err := engine.CalculateDiscount(context.Background(), baseQuery())
	require.NoError(t, err)
	assert.Zero(t, result.DiscountAmount)
	assert.Nil(t, result.PromotionID)
	assert.Empty(t, result.Message)
}

func TestCalculateDiscountSingleWinnerLargestDiscount(t *testing.T) {
	small := automaticPromo("small", 100, time.Now(),
		PromotionRule{RuleType: RuleTypeFixed, Value: 50})
	large := automaticPromo("large", 0, time.Now(),
		PromotionRule{RuleType: RuleTypeFixed, Value: 200})
	engine := NewEngine(newFakeRepo(small, large), &fakeTourLookup{})

	result, err := engine.CalculateDiscount(context.Background(), baseQuery())
	require.NoError(t, err)
	assert.Equal(t, 200.0, result.DiscountAmount)
	assert.Equal(t, large.ID, *result.PromotionID)
}

func TestCalculateDiscountTieBreakPriorityThenAge(t *testing.T) {
	now := time.Now()
	older := automaticPromo("older", 5, now.Add(-time.Hour),
		PromotionRule{RuleType: RuleTypeFixed, Value: 100})
	newer := automaticPromo("newer", 5, now,
		PromotionRule{RuleType: RuleTypeFixed, Value: 100})
	higher := automaticPromo("higher priority", 9, now,
		PromotionRule{RuleType: RuleTypeFixed, Value: 100})

	engine := NewEngine(newFakeRepo(newer, older, higher), &fakeTourLookup{})
	result, err := engine.CalculateDiscount(context.Background(), baseQuery())
	require.NoError(t, err)
	assert.Equal(t, higher.ID, *result.PromotionID)

	// same priority resolves to the earliest created
	engine = NewEngine(newFakeRepo(newer, older), &fakeTourLookup{})
	result, err = engine.CalculateDiscount(context.Background(), baseQuery())
	require.NoError(t, err)
	assert.Equal(t, older.ID, *result.PromotionID)
}

func TestCalculateDiscountCouponFlow(t *testing.T) {
	coupon := Coupon{ID: uuid.New(), Code: "SAVE20", IsActive: true}
	promo := Promotion{
		ID:            uuid.New(),
		Name:          "coupon promo",
		PromotionType: PromotionTypeCoupon,
		IsActive:      true,
		Rules:         []PromotionRule{{RuleType: RuleTypePercent, Value: 20}},
		Coupons:       []Coupon{coupon},
	}
	engine := NewEngine(newFakeRepo(promo), &fakeTourLookup{})

	// without a code the coupon promotion is not a candidate
	result, err := engine.CalculateDiscount(context.Background(), baseQuery())
	require.NoError(t, err)
	assert.Zero(t, result.DiscountAmount)
	assert.Empty(t, result.Message)

	// matching code applies, case-insensitively
	query := baseQuery()
	query.CouponCode = "save20"
	result, err = engine.CalculateDiscount(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, 200.0, result.DiscountAmount)
	require.NotNil(t, result.CouponID)
	assert.Equal(t, coupon.ID, *result.CouponID)

	// unknown code yields zero discount with an explanation
	query.CouponCode = "NOPE"
	result, err = engine.CalculateDiscount(context.Background(), query)
	require.NoError(t, err)
	assert.Zero(t, result.DiscountAmount)
	assert.NotEmpty(t, result.Message)
}

func TestCalculateDiscountExhaustedCoupon(t *testing.T) {
	coupon := Coupon{ID: uuid.New(), Code: "ONCE", IsActive: true, MaxUses: intPtr(1), UsageCount: 1}
	promo := Promotion{
		ID:            uuid.New(),
		Name:          "exhausted",
		PromotionType: PromotionTypeCoupon,
		IsActive:      true,
		Rules:         []PromotionRule{{RuleType: RuleTypeFixed, Value: 10}},
		Coupons:       []Coupon{coupon},
	}
	engine := NewEngine(newFakeRepo(promo), &fakeTourLookup{})

	query := baseQuery()
	query.CouponCode = "ONCE"
	result, err := engine.CalculateDiscount(context.Background(), query)
	require.NoError(t, err)
	assert.Zero(t, result.DiscountAmount)
	assert.NotEmpty(t, result.Message)
}

func TestCalculateDiscountPerUserLimit(t *testing.T) {
	promo := automaticPromo("once per user", 0, time.Now(),
		PromotionRule{RuleType: RuleTypeFixed, Value: 25})
	promo.MaxUsesPerUser = intPtr(1)

	repo := newFakeRepo(promo)
	repo.userRedemptions[promo.ID] = 1
	engine := NewEngine(repo, &fakeTourLookup{})

	result, err := engine.CalculateDiscount(context.Background(), baseQuery())
	require.NoError(t, err)
	assert.Zero(t, result.DiscountAmount)
	assert.Nil(t, result.PromotionID)
}

func TestCalculateDiscountMinimumConstraints(t *testing.T) {
	promo := automaticPromo("group only", 0, time.Now(),
		PromotionRule{RuleType: RuleTypeFixed, Value: 75})
	promo.MinSeats = intPtr(4)
	promo.MinTotalAmount = floatPtr(500)
	engine := NewEngine(newFakeRepo(promo), &fakeTourLookup{})

	query := baseQuery()
	query.SeatCount = 2
	result, err := engine.CalculateDiscount(context.Background(), query)
	require.NoError(t, err)
	assert.Zero(t, result.DiscountAmount)

	query.SeatCount = 4
	query.TotalAmount = 400
	result, err = engine.CalculateDiscount(context.Background(), query)
	require.NoError(t, err)
	assert.Zero(t, result.DiscountAmount)

	query.TotalAmount = 600
	result, err = engine.CalculateDiscount(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, 75.0, result.DiscountAmount)
}

func TestCalculateDiscountTargetMatching(t *testing.T) {
	tourID := uuid.New()
	otherTour := uuid.New()
	categoryID := uuid.New()

	tourPromo := automaticPromo("tour scoped", 0, time.Now(),
		PromotionRule{RuleType: RuleTypeFixed, Value: 30})
	tourPromo.Targets = []PromotionTarget{{TargetType: TargetTypeTour, TargetID: &tourID}}

	categoryPromo := automaticPromo("category scoped", 0, time.Now(),
		PromotionRule{RuleType: RuleTypeFixed, Value: 20})
	categoryPromo.Targets = []PromotionTarget{{TargetType: TargetTypeCategory, TargetID: &categoryID}}

	engine := NewEngine(newFakeRepo(tourPromo, categoryPromo), &fakeTourLookup{categoryID: categoryID})

	query := baseQuery()
	query.TourID = tourID
	result, err := engine.CalculateDiscount(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, 30.0, result.DiscountAmount)
	assert.Equal(t, tourPromo.ID, *result.PromotionID)

	// the tour-scoped promotion drops out for a different tour; the
	// category-scoped one still matches through the tour's category
	query.TourID = otherTour
	result, err = engine.CalculateDiscount(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, 20.0, result.DiscountAmount)
	assert.Equal(t, categoryPromo.ID, *result.PromotionID)
}

func TestCalculateDiscountExpiredWindow(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	promo := automaticPromo("expired", 0, time.Now(),
		PromotionRule{RuleType: RuleTypeFixed, Value: 40})
	promo.EndAt = &past
	engine := NewEngine(newFakeRepo(promo), &fakeTourLookup{})

	result, err := engine.CalculateDiscount(context.Background(), baseQuery())
	require.NoError(t, err)
	assert.Zero(t, result.DiscountAmount)
}
