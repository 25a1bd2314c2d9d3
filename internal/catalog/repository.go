package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrServiceNotFound = errors.New("service not found")

type Repository interface {
	CreateService(ctx context.Context, svc *Service) error
	GetServiceByID(ctx context.Context, id uuid.UUID) (*Service, error)
	GetActiveServices(ctx context.Context) ([]Service, error)
	// ResolveUnitPrice returns the tour-specific override price when one
	// exists for (tourID, serviceID), otherwise the service's list price.
	ResolveUnitPrice(ctx context.Context, tourID, serviceID uuid.UUID) (*ServicePrice, error)
	SetTourPrice(ctx context.Context, override *TourServicePrice) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateService(ctx context.Context, svc *Service) error {
	return r.db.WithContext(ctx).Create(svc).Error
}

func (r *repository) GetServiceByID(ctx context.Context, id uuid.UUID) (*Service, error) {
	var svc Service
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&svc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return &svc, nil
}

func (r *repository) GetActiveServices(ctx context.Context) ([]Service, error) {
	var result []Service
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&result).Error
	return result, err
}

func (r *repository) ResolveUnitPrice(ctx context.Context, tourID, serviceID uuid.UUID) (*ServicePrice, error) {
	svc, err := r.GetServiceByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if !svc.IsActive {
		return nil, ErrServiceNotFound
	}

	resolved := &ServicePrice{
		ServiceID: svc.ID,
		Name:      svc.Name,
		UnitPrice: svc.Price,
		Currency:  svc.Currency,
	}

	var override TourServicePrice
	err = r.db.WithContext(ctx).
		Where("tour_id = ? AND service_id = ?", tourID, serviceID).
		First(&override).Error
	if err == nil {
		resolved.UnitPrice = override.Price
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return resolved, nil
}

func (r *repository) SetTourPrice(ctx context.Context, override *TourServicePrice) error {
	return r.db.WithContext(ctx).Create(override).Error
}
