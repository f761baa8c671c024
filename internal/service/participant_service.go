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

type participantRepository interface {
	List(ctx context.Context, filter models.ParticipantFilter) ([]models.Participant, error)
	FindByID(ctx context.Context, id string) (*models.Participant, error)
	Create(ctx context.Context, participant *models.Participant) error
	UpdateStatus(ctx context.Context, id string, status models.ParticipantStatus) error
	SetFormCompleted(ctx context.Context, id string, completed bool) error
	Delete(ctx context.Context, id string) error
}

type cohortLookup interface {
	FindByID(ctx context.Context, id string) (*models.Cohort, error)
}

// CreateParticipantRequest registers a participant manually from the dashboard.
type CreateParticipantRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Contact string `json:"contact" validate:"required,max=200"`
}

// UpdateStatusRequest changes a participant's selection status.
type UpdateStatusRequest struct {
	Status models.ParticipantStatus `json:"status" validate:"required"`
}

// UpdateFormRequest toggles the form completion flag.
type UpdateFormRequest struct {
	FormCompleted *bool `json:"form_completed" validate:"required"`
}

// ParticipantService orchestrates participant administration.
type ParticipantService struct {
	repo      participantRepository
	cohorts   cohortLookup
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewParticipantService constructs a ParticipantService.
func NewParticipantService(repo participantRepository, cohorts cohortLookup, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ParticipantService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ParticipantService{repo: repo, cohorts: cohorts, cache: cache, validator: validate, logger: logger}
}

// List returns the participants of a cohort matching filter.
func (s *ParticipantService) List(ctx context.Context, filter models.ParticipantFilter) ([]models.Participant, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid status filter")
	}
	if _, err := s.cohort(ctx, filter.CohortID); err != nil {
		return nil, err
	}
	participants, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list participants")
	}
	if participants == nil {
		participants = []models.Participant{}
	}
	return participants, nil
}

// Get returns a participant by ID.
func (s *ParticipantService) Get(ctx context.Context, id string) (*models.Participant, error) {
	if !validID(id) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "participant not found")
	}
	participant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "participant not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load participant")
	}
	return participant, nil
}

// Create adds a participant who has not filled in the form yet.
func (s *ParticipantService) Create(ctx context.Context, actor *models.Admin, cohortID string, req CreateParticipantRequest) (*models.Participant, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Contact = strings.TrimSpace(req.Contact)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid participant payload")
	}
	if _, err := s.cohort(ctx, cohortID); err != nil {
		return nil, err
	}

	participant := &models.Participant{
		CohortID: cohortID,
		Name:     req.Name,
		Contact:  req.Contact,
		Status:   models.ParticipantStatusExpressedInterest,
	}
	if actor != nil {
		addedBy := actor.ID
		participant.AddedBy = &addedBy
	}
	if err := s.repo.Create(ctx, participant); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create participant")
	}
	return participant, nil
}

// UpdateStatus changes the selection status of a participant.
func (s *ParticipantService) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*models.Participant, error) {
	if err := s.validator.Struct(req); err != nil || !req.Status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "status must be one of expressed_interest, confirmed, denied")
	}
	if !validID(id) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "participant not found")
	}
	if err := s.repo.UpdateStatus(ctx, id, req.Status); err != nil {
		return nil, s.mutationError(err, "failed to update participant status")
	}
	s.cache.Invalidate(ctx, PublicStatsCacheKey)
	return s.Get(ctx, id)
}

// SetFormCompleted toggles the form completion flag of a participant.
func (s *ParticipantService) SetFormCompleted(ctx context.Context, id string, req UpdateFormRequest) (*models.Participant, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid form payload")
	}
	if !validID(id) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "participant not found")
	}
	if err := s.repo.SetFormCompleted(ctx, id, *req.FormCompleted); err != nil {
		return nil, s.mutationError(err, "failed to update participant form")
	}
	return s.Get(ctx, id)
}

// Delete removes a participant.
func (s *ParticipantService) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return appErrors.Clone(appErrors.ErrNotFound, "participant not found")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mutationError(err, "failed to delete participant")
	}
	s.cache.Invalidate(ctx, PublicStatsCacheKey)
	return nil
}

func (s *ParticipantService) cohort(ctx context.Context, id string) (*models.Cohort, error) {
	if !validID(id) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "cohort not found")
	}
	cohort, err := s.cohorts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "cohort not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load cohort")
	}
	return cohort, nil
}

func (s *ParticipantService) mutationError(err error, message string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, "participant not found")
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}
