package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type CreateServiceRequest struct {
	Name     string  `json:"name" binding:"required,min=2,max=255"`
	Price    float64 `json:"price" binding:"min=0"`
	Currency string  `json:"currency" binding:"omitempty,len=3"`
}

type SetTourPriceRequest struct {
	ServiceID uuid.UUID `json:"service_id" binding:"required"`
	Price     float64   `json:"price" binding:"min=0"`
}

// CatalogService manages the add-on catalog. Named to avoid colliding with
// the Service model in this package.
type CatalogService interface {
	CreateService(ctx context.Context, req CreateServiceRequest) (*Service, error)
	ListServices(ctx context.Context) ([]Service, error)
	SetTourPrice(ctx context.Context, tourID uuid.UUID, req SetTourPriceRequest) (*TourServicePrice, error)
}

type catalogService struct {
	repo Repository
}

func NewService(repo Repository) CatalogService {
	return &catalogService{repo: repo}
}

func (s *catalogService) CreateService(ctx context.Context, req CreateServiceRequest) (*Service, error) {
	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = "USD"
	}

	svc := &Service{
		Name:     req.Name,
		Price:    req.Price,
		Currency: currency,
		IsActive: true,
	}
	if err := s.repo.CreateService(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return svc, nil
}

func (s *catalogService) ListServices(ctx context.Context) ([]Service, error) {
	return s.repo.GetActiveServices(ctx)
}

func (s *catalogService) SetTourPrice(ctx context.Context, tourID uuid.UUID, req SetTourPriceRequest) (*TourServicePrice, error) {
	if _, err := s.repo.GetServiceByID(ctx, req.ServiceID); err != nil {
		return nil, err
	}

	override := &TourServicePrice{
		TourID:    tourID,
		ServiceID: req.ServiceID,
		Price:     req.Price,
	}
	if err := s.repo.SetTourPrice(ctx, override); err != nil {
		return nil, fmt.Errorf("failed to set tour price: %w", err)
	}
	return override, nil
}
