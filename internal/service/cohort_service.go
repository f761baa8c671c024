package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/kairos-api/internal/models"
	appErrors "github.com/noah-isme/kairos-api/pkg/errors"
)

type cohortRepository interface {
	List(ctx context.Context) ([]models.Cohort, error)
	FindByID(ctx context.Context, id string) (*models.Cohort, error)
	FindActive(ctx context.Context) (*models.Cohort, error)
	Create(ctx context.Context, cohort *models.Cohort) error
	Update(ctx context.Context, cohort *models.Cohort) error
	SetActive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// CreateCohortRequest describes payload for creating cohorts.
type CreateCohortRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	Capacity *int   `json:"capacity"`
}

// UpdateCohortRequest updates mutable fields on a cohort.
type UpdateCohortRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	Capacity int    `json:"capacity"`
}

// CohortService orchestrates cohort workflows.
type CohortService struct {
	repo            cohortRepository
	cache           *CacheService
	validator       *validator.Validate
	logger          *zap.Logger
	defaultCapacity int
}

// NewCohortService creates a new cohort service instance.
func NewCohortService(repo cohortRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger, defaultCapacity int) *CohortService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaultCapacity <= 0 {
		defaultCapacity = models.DefaultCohortCapacity
	}
	return &CohortService{repo: repo, cache: cache, validator: validate, logger: logger, defaultCapacity: defaultCapacity}
}

// List returns every cohort, newest first.
func (s *CohortService) List(ctx context.Context) ([]models.Cohort, error) {
	cohorts, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list cohorts")
	}
	return cohorts, nil
}

// Get returns a cohort by ID.
func (s *CohortService) Get(ctx context.Context, id string) (*models.Cohort, error) {
	if !validID(id) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "cohort not found")
	}
	cohort, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "cohort not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load cohort")
	}
	return cohort, nil
}

// GetActive returns the currently active cohort.
func (s *CohortService) GetActive(ctx context.Context) (*models.Cohort, error) {
	cohort, err := s.repo.FindActive(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "active cohort not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load active cohort")
	}
	return cohort, nil
}

// Create adds a new, inactive cohort.
func (s *CohortService) Create(ctx context.Context, req CreateCohortRequest) (*models.Cohort, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid cohort payload")
	}
	capacity := s.defaultCapacity
	if req.Capacity != nil {
		capacity = s.normaliseCapacity(*req.Capacity)
	}

	cohort := &models.Cohort{Name: req.Name, Capacity: capacity}
	if err := s.repo.Create(ctx, cohort); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create cohort")
	}
	return cohort, nil
}

// Update modifies the name and capacity of a cohort.
func (s *CohortService) Update(ctx context.Context, id string, req UpdateCohortRequest) (*models.Cohort, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid cohort payload")
	}
	cohort, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	cohort.Name = req.Name
	cohort.Capacity = s.normaliseCapacity(req.Capacity)
	if err := s.repo.Update(ctx, cohort); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update cohort")
	}
	s.invalidateStats(ctx, cohort)
	return cohort, nil
}

// Activate makes the cohort the single active one.
func (s *CohortService) Activate(ctx context.Context, id string) (*models.Cohort, error) {
	if !validID(id) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "cohort not found")
	}
	if err := s.repo.SetActive(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "cohort not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to activate cohort")
	}
	s.cache.Invalidate(ctx, PublicStatsCacheKey)
	s.logger.Info("cohort activated", zap.String("cohort_id", id))
	return s.Get(ctx, id)
}

// Delete removes a cohort together with its participants.
func (s *CohortService) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return appErrors.Clone(appErrors.ErrNotFound, "cohort not found")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "cohort not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete cohort")
	}
	s.cache.Invalidate(ctx, PublicStatsCacheKey)
	return nil
}

func (s *CohortService) normaliseCapacity(capacity int) int {
	if capacity < 1 {
		return s.defaultCapacity
	}
	return capacity
}

func (s *CohortService) invalidateStats(ctx context.Context, cohort *models.Cohort) {
	if cohort.IsActive {
		s.cache.Invalidate(ctx, PublicStatsCacheKey)
	}
}
