package pricing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourly/internal/catalog"
	"tourly/internal/promotions"
	"tourly/internal/tours"
)

type fakeInstances struct {
	instances map[uuid.UUID]*tours.TourInstance
}

func (f *fakeInstances) GetInstanceByID(ctx context.Context, id uuid.UUID) (*tours.TourInstance, error) {
	if instance, ok := f.instances[id]; ok {
		return instance, nil
	}
	return nil, tours.ErrNotFound
}

type fakeCatalog struct {
	prices map[uuid.UUID]*catalog.ServicePrice
}

func (f *fakeCatalog) ResolveUnitPrice(ctx context.Context, tourID, serviceID uuid.UUID) (*catalog.ServicePrice, error) {
	if price, ok := f.prices[serviceID]; ok {
		return price, nil
	}
	return nil, catalog.ErrServiceNotFound
}

type fakeDiscounts struct {
	result    *promotions.DiscountResult
	lastQuery promotions.DiscountQuery
}

func (f *fakeDiscounts) CalculateDiscount(ctx context.Context, query promotions.DiscountQuery) (*promotions.DiscountResult, error) {
	f.lastQuery = query
	if f.result != nil {
		return f.result, nil
	}
	return &promotions.DiscountResult{}, nil
}

func setupCalculator() (Calculator, uuid.UUID, uuid.UUID, *fakeDiscounts) {
	instanceID := uuid.New()
	tourID := uuid.New()
	mealID := uuid.New()

	instances := &fakeInstances{instances: map[uuid.UUID]*tours.TourInstance{
		instanceID: {ID: instanceID, TourID: tourID, Capacity: 10, PriceBase: 150, Currency: "USD"},
	}}
	services := &fakeCatalog{prices: map[uuid.UUID]*catalog.ServicePrice{
		mealID: {ServiceID: mealID, Name: "Meal Plan", UnitPrice: 25, Currency: "USD"},
	}}
	discounts := &fakeDiscounts{}

	return NewCalculator(instances, services, discounts), instanceID, mealID, discounts
}

func TestCalculateSeatsOnly(t *testing.T) {
	calc, instanceID, _, _ := setupCalculator()

	result, err := calc.Calculate(context.Background(), uuid.New(), QuoteRequest{
		InstanceID: instanceID,
		SeatCount:  3,
	})
	require.NoError(t, err)
	assert.Equal(t, 450.0, result.SeatsSubtotal)
	assert.Equal(t, 0.0, result.ServicesSubtotal)
	assert.Equal(t, 450.0, result.TotalBeforeDiscount)
	assert.Equal(t, 450.0, result.FinalTotal)
	assert.Equal(t, "USD", result.Currency)
}

func TestCalculateWithServices(t *testing.T) {
	calc, instanceID, mealID, _ := setupCalculator()

	result, err := calc.Calculate(context.Background(), uuid.New(), QuoteRequest{
		InstanceID: instanceID,
		SeatCount:  2,
		Services:   []SelectedService{{ServiceID: mealID, Quantity: 3}},
	})
	require.NoError(t, err)

	// services are priced per seat: 25 * qty 3 * 2 seats
	assert.Equal(t, 300.0, result.SeatsSubtotal)
	require.Len(t, result.ServiceLines, 1)
	assert.Equal(t, 150.0, result.ServiceLines[0].LineTotal)
	assert.Equal(t, 150.0, result.ServicesSubtotal)
	assert.Equal(t, 450.0, result.TotalBeforeDiscount)
}

func TestCalculateAppliesDiscount(t *testing.T) {
	calc, instanceID, _, discounts := setupCalculator()

	promoID := uuid.New()
	discounts.result = &promotions.DiscountResult{DiscountAmount: 45, PromotionID: &promoID}

	result, err := calc.Calculate(context.Background(), uuid.New(), QuoteRequest{
		InstanceID: instanceID,
		SeatCount:  3,
		CouponCode: "SAVE",
	})
	require.NoError(t, err)
	assert.Equal(t, 45.0, result.DiscountAmount)
	assert.Equal(t, 405.0, result.FinalTotal)
	require.NotNil(t, result.PromotionID)
	assert.Equal(t, promoID, *result.PromotionID)

	// the discount engine saw the computed total and the coupon code
	assert.Equal(t, 450.0, discounts.lastQuery.TotalAmount)
	assert.Equal(t, 3, discounts.lastQuery.SeatCount)
	assert.Equal(t, "SAVE", discounts.lastQuery.CouponCode)
}

func TestCalculateUnknownInstance(t *testing.T) {
	calc, _, _, _ := setupCalculator()

	_, err := calc.Calculate(context.Background(), uuid.New(), QuoteRequest{
		InstanceID: uuid.New(),
		SeatCount:  1,
	})
	assert.ErrorIs(t, err, ErrInstanceNotFound)
}

func TestCalculateUnknownService(t *testing.T) {
	calc, instanceID, _, _ := setupCalculator()

	_, err := calc.Calculate(context.Background(), uuid.New(), QuoteRequest{
		InstanceID: instanceID,
		SeatCount:  1,
		Services:   []SelectedService{{ServiceID: uuid.New(), Quantity: 1}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrServiceNotFound)
}
