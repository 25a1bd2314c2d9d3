package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"tourly/internal/catalog"
	"tourly/internal/promotions"
	"tourly/internal/tours"
)

var ErrInstanceNotFound = errors.New("tour instance not found")

// InstanceLookup resolves the departure being priced
type InstanceLookup interface {
	GetInstanceByID(ctx context.Context, id uuid.UUID) (*tours.TourInstance, error)
}

// ServiceCatalog resolves per-tour service prices
type ServiceCatalog interface {
	ResolveUnitPrice(ctx context.Context, tourID, serviceID uuid.UUID) (*catalog.ServicePrice, error)
}

// DiscountEngine evaluates promotions against the computed total
type DiscountEngine interface {
	CalculateDiscount(ctx context.Context, query promotions.DiscountQuery) (*promotions.DiscountResult, error)
}

// Calculator produces itemized price breakdowns for booking attempts.
// The same calculation backs the public quote endpoint and booking creation,
// so a quoted price always matches what a booking would charge.
type Calculator interface {
	Calculate(ctx context.Context, userID uuid.UUID, req QuoteRequest) (*PriceCalculation, error)
}

type calculator struct {
	instances InstanceLookup
	services  ServiceCatalog
	discounts DiscountEngine
}

func NewCalculator(instances InstanceLookup, services ServiceCatalog, discounts DiscountEngine) Calculator {
	return &calculator{
		instances: instances,
		services:  services,
		discounts: discounts,
	}
}

func (c *calculator) Calculate(ctx context.Context, userID uuid.UUID, req QuoteRequest) (*PriceCalculation, error) {
	instance, err := c.instances.GetInstanceByID(ctx, req.InstanceID)
	if err != nil {
		if errors.Is(err, tours.ErrNotFound) {
			return nil, ErrInstanceNotFound
		}
		return nil, err
	}

	calc := &PriceCalculation{
		InstanceID:   instance.ID,
		TourID:       instance.TourID,
		Currency:     instance.Currency,
		SeatCount:    req.SeatCount,
		PricePerSeat: instance.PriceBase,
	}
	calc.SeatsSubtotal = instance.PriceBase * float64(req.SeatCount)

	// Service quantities are per seat: 2 seats with quantity 1 means two units
	calc.ServiceLines = make([]ServiceLine, 0, len(req.Services))
	for _, selected := range req.Services {
		price, err := c.services.ResolveUnitPrice(ctx, instance.TourID, selected.ServiceID)
		if err != nil {
			if errors.Is(err, catalog.ErrServiceNotFound) {
				return nil, fmt.Errorf("service %s is not available: %w", selected.ServiceID, err)
			}
			return nil, err
		}

		lineTotal := price.UnitPrice * float64(selected.Quantity) * float64(req.SeatCount)
		calc.ServiceLines = append(calc.ServiceLines, ServiceLine{
			ServiceID: price.ServiceID,
			Name:      price.Name,
			UnitPrice: price.UnitPrice,
			Quantity:  selected.Quantity,
			LineTotal: lineTotal,
		})
		calc.ServicesSubtotal += lineTotal
	}

	calc.TotalBeforeDiscount = calc.SeatsSubtotal + calc.ServicesSubtotal

	discount, err := c.discounts.CalculateDiscount(ctx, promotions.DiscountQuery{
		UserID:      userID,
		TourID:      instance.TourID,
		InstanceID:  instance.ID,
		TotalAmount: calc.TotalBeforeDiscount,
		SeatCount:   req.SeatCount,
		CouponCode:  req.CouponCode,
	})
	if err != nil {
		return nil, err
	}

	calc.DiscountAmount = discount.DiscountAmount
	calc.PromotionID = discount.PromotionID
	calc.CouponID = discount.CouponID
	calc.DiscountMessage = discount.Message
	calc.FinalTotal = calc.TotalBeforeDiscount - calc.DiscountAmount

	return calc, nil
}
