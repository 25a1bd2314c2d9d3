package tours

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

type Repository interface {
	// Tour operations
	CreateTour(ctx context.Context, tour *Tour) error
	GetTourByID(ctx context.Context, id uuid.UUID) (*Tour, error)
	GetTourBySlug(ctx context.Context, slug string) (*Tour, error)
	GetAllTours(ctx context.Context, query TourListQuery) ([]Tour, int64, error)
	UpdateTour(ctx context.Context, tour *Tour) error

	// Category operations
	CreateCategory(ctx context.Context, category *Category) error
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*Category, error)
	GetTourCategoryID(ctx context.Context, tourID uuid.UUID) (uuid.UUID, error)

	// Instance operations
	CreateInstance(ctx context.Context, instance *TourInstance) error
	GetInstanceByID(ctx context.Context, id uuid.UUID) (*TourInstance, error)
	GetInstancesByTour(ctx context.Context, tourID uuid.UUID, from time.Time) ([]TourInstance, error)
	UpdateInstanceStatus(ctx context.Context, id uuid.UUID, status InstanceStatus) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateTour(ctx context.Context, tour *Tour) error {
	return r.db.WithContext(ctx).Create(tour).Error
}

func (r *repository) GetTourByID(ctx context.Context, id uuid.UUID) (*Tour, error) {
	var tour Tour
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id = ?", id).
		First(&tour).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &tour, nil
}

func (r *repository) GetTourBySlug(ctx context.Context, slug string) (*Tour, error) {
	var tour Tour
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("slug = ?", slug).
		First(&tour).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &tour, nil
}

func (r *repository) GetAllTours(ctx context.Context, query TourListQuery) ([]Tour, int64, error) {
	var result []Tour
	var totalCount int64

	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	baseQuery := r.db.WithContext(ctx).Model(&Tour{}).Where("is_active = ?", true)

	if query.Search != "" {
		baseQuery = baseQuery.Where("name ILIKE ?", "%"+query.Search+"%")
	}
	if query.Category != "" {
		if categoryID, err := uuid.Parse(query.Category); err == nil {
			baseQuery = baseQuery.Where("category_id = ?", categoryID)
		}
	}

	if err := baseQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	err := baseQuery.
		Preload("Category").
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&result).Error

	return result, totalCount, err
}

func (r *repository) UpdateTour(ctx context.Context, tour *Tour) error {
	return r.db.WithContext(ctx).Save(tour).Error
}

func (r *repository) CreateCategory(ctx context.Context, category *Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *repository) GetCategoryByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	var category Category
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// GetTourCategoryID resolves a tour's category without loading the full row,
// used by promotion target matching.
func (r *repository) GetTourCategoryID(ctx context.Context, tourID uuid.UUID) (uuid.UUID, error) {
	var categoryID uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&Tour{}).
		Where("id = ?", tourID).
		Select("category_id").
		Scan(&categoryID).Error
	if err != nil {
		return uuid.Nil, err
	}
	if categoryID == uuid.Nil {
		return uuid.Nil, ErrNotFound
	}
	return categoryID, nil
}

func (r *repository) CreateInstance(ctx context.Context, instance *TourInstance) error {
	return r.db.WithContext(ctx).Create(instance).Error
}

func (r *repository) GetInstanceByID(ctx context.Context, id uuid.UUID) (*TourInstance, error) {
	var instance TourInstance
	err := r.db.WithContext(ctx).
		Preload("Tour").
		Where("id = ?", id).
		First(&instance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &instance, nil
}

func (r *repository) GetInstancesByTour(ctx context.Context, tourID uuid.UUID, from time.Time) ([]TourInstance, error) {
	var instances []TourInstance
	err := r.db.WithContext(ctx).
		Where("tour_id = ?", tourID).
		Where("departs_at >= ?", from).
		Order("departs_at ASC").
		Find(&instances).Error
	return instances, err
}

func (r *repository) UpdateInstanceStatus(ctx context.Context, id uuid.UUID, status InstanceStatus) error {
	return r.db.WithContext(ctx).
		Model(&TourInstance{}).
		Where("id = ?", id).
		Update("status", status).Error
}
