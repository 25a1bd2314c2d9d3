package tours

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"tourly/internal/shared/constants"
	"tourly/pkg/cache"

	"github.com/google/uuid"
)

type Service interface {
	SetCacheService(cacheService cache.Service)

	CreateTour(ctx context.Context, userID uuid.UUID, req CreateTourRequest) (*TourResponse, error)
	GetTourByID(ctx context.Context, id uuid.UUID) (*TourResponse, error)
	GetAllTours(ctx context.Context, query TourListQuery) (*PaginatedTours, error)

	CreateInstance(ctx context.Context, tourID uuid.UUID, req CreateInstanceRequest) (*InstanceResponse, error)
	GetInstance(ctx context.Context, id uuid.UUID) (*InstanceResponse, error)
	GetUpcomingInstances(ctx context.Context, tourID uuid.UUID) ([]InstanceResponse, error)
	CloseInstance(ctx context.Context, id uuid.UUID) error
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

func (s *service) CreateTour(ctx context.Context, userID uuid.UUID, req CreateTourRequest) (*TourResponse, error) {
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("invalid category id: %w", err)
	}

	if _, err := s.repo.GetCategoryByID(ctx, categoryID); err != nil {
		return nil, fmt.Errorf("category not found: %w", err)
	}

	tour := &Tour{
		Name:        req.Name,
		Slug:        generateSlug(req.Name),
		Description: req.Description,
		CategoryID:  categoryID,
		IsActive:    true,
		CreatedBy:   userID,
	}

	if err := s.repo.CreateTour(ctx, tour); err != nil {
		return nil, fmt.Errorf("failed to create tour: %w", err)
	}

	s.invalidateTourCache(ctx)

	resp := tour.ToResponse()
	return &resp, nil
}

func (s *service) GetTourByID(ctx context.Context, id uuid.UUID) (*TourResponse, error) {
	cacheKey := constants.CACHE_KEY_TOUR_DETAIL + id.String()

	if s.cacheService != nil {
		var cached TourResponse
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	tour, err := s.repo.GetTourByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := tour.ToResponse()

	if s.cacheService != nil {
		_ = s.cacheService.Set(ctx, cacheKey, resp, constants.TTL_TOUR_DETAIL)
	}

	return &resp, nil
}

func (s *service) GetAllTours(ctx context.Context, query TourListQuery) (*PaginatedTours, error) {
	result, totalCount, err := s.repo.GetAllTours(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tours: %w", err)
	}

	responses := make([]TourResponse, 0, len(result))
	for i := range result {
		responses = append(responses, result[i].ToResponse())
	}

	return &PaginatedTours{
		Tours:      responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
	}, nil
}

func (s *service) CreateInstance(ctx context.Context, tourID uuid.UUID, req CreateInstanceRequest) (*InstanceResponse, error) {
	if _, err := s.repo.GetTourByID(ctx, tourID); err != nil {
		return nil, fmt.Errorf("tour not found: %w", err)
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	instance := &TourInstance{
		TourID:    tourID,
		DepartsAt: req.DepartsAt,
		Capacity:  req.Capacity,
		PriceBase: req.PriceBase,
		Currency:  strings.ToUpper(currency),
		Status:    InstanceStatusOpen,
	}

	if err := s.repo.CreateInstance(ctx, instance); err != nil {
		return nil, fmt.Errorf("failed to create instance: %w", err)
	}

	resp := instance.ToResponse()
	return &resp, nil
}

func (s *service) GetInstance(ctx context.Context, id uuid.UUID) (*InstanceResponse, error) {
	instance, err := s.repo.GetInstanceByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := instance.ToResponse()
	return &resp, nil
}

func (s *service) GetUpcomingInstances(ctx context.Context, tourID uuid.UUID) ([]InstanceResponse, error) {
	instances, err := s.repo.GetInstancesByTour(ctx, tourID, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to list instances: %w", err)
	}

	responses := make([]InstanceResponse, 0, len(instances))
	for i := range instances {
		responses = append(responses, instances[i].ToResponse())
	}
	return responses, nil
}

func (s *service) CloseInstance(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetInstanceByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.UpdateInstanceStatus(ctx, id, InstanceStatusClosed); err != nil {
		return fmt.Errorf("failed to close instance: %w", err)
	}
	s.invalidateTourCache(ctx)
	return nil
}

func (s *service) invalidateTourCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_TOURS_ALL)
}

var slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)

// generateSlug builds a URL-safe slug from a tour name
func generateSlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugInvalidChars.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	// suffix keeps slugs unique without a lookup round-trip
	return fmt.Sprintf("%s-%s", slug, uuid.New().String()[:8])
}
