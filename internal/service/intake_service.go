package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/kairos-api/internal/models"
	appErrors "github.com/noah-isme/kairos-api/pkg/errors"
)

type intakeCohortReader interface {
	FindActive(ctx context.Context) (*models.Cohort, error)
}

type intakeParticipantStore interface {
	ListOpenCandidates(ctx context.Context, cohortID string) ([]models.MatchCandidate, error)
	AttachSubmission(ctx context.Context, id string, data models.TallyData) error
	Create(ctx context.Context, participant *models.Participant) error
}

// IntakeResult reports what a processed submission did.
type IntakeResult struct {
	Matched       bool
	ParticipantID string
}

// IntakeService turns form submissions into participant records of the active cohort.
type IntakeService struct {
	cohorts      intakeCohortReader
	participants intakeParticipantStore
	matcher      ParticipantMatcher
	metrics      *MetricsService
	logger       *zap.Logger
}

// NewIntakeService constructs an IntakeService.
func NewIntakeService(cohorts intakeCohortReader, participants intakeParticipantStore, matcher ParticipantMatcher, metrics *MetricsService, logger *zap.Logger) *IntakeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IntakeService{
		cohorts:      cohorts,
		participants: participants,
		matcher:      matcher,
		metrics:      metrics,
		logger:       logger,
	}
}

// ProcessSubmission attaches the submission to the matching open participant of the active
// cohort, or registers a new participant when nothing matches. Exactly one write happens.
// Redelivering the same submission is not deduplicated.
func (s *IntakeService) ProcessSubmission(ctx context.Context, payload models.TallyWebhookPayload) (*IntakeResult, error) {
	data := ExtractTallyData(payload)
	log := s.logger.With(
		zap.String("submission_id", payload.Data.SubmissionID),
		zap.String("event_id", payload.EventID),
	)

	start := time.Now()
	cohort, err := s.cohorts.FindActive(ctx)
	s.metrics.ObserveDBQuery("intake_find_active_cohort", time.Since(start))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.metrics.RecordSubmission(OutcomeNoActiveCohort)
			log.Warn("submission rejected: no active cohort")
			return nil, appErrors.ErrNoActiveCohort
		}
		return nil, s.fail(log, err, "failed to load active cohort")
	}

	start = time.Now()
	pool, err := s.participants.ListOpenCandidates(ctx, cohort.ID)
	s.metrics.ObserveDBQuery("intake_list_candidates", time.Since(start))
	if err != nil {
		return nil, s.fail(log, err, "failed to load candidate pool")
	}

	if id, ok := s.matcher.MatchCandidate(ctx, data.Name, pool); ok {
		start = time.Now()
		err := s.participants.AttachSubmission(ctx, id, data)
		s.metrics.ObserveDBQuery("intake_attach_submission", time.Since(start))
		if err != nil {
			return nil, s.fail(log, err, "failed to attach submission")
		}
		s.metrics.RecordSubmission(OutcomeMatched)
		log.Info("submission matched", zap.String("participant_id", id), zap.String("cohort_id", cohort.ID))
		return &IntakeResult{Matched: true, ParticipantID: id}, nil
	}

	participant := &models.Participant{
		CohortID:      cohort.ID,
		Name:          data.Name,
		Contact:       contactFor(data),
		Status:        models.ParticipantStatusExpressedInterest,
		FormCompleted: true,
		TallyData:     &data,
	}
	start = time.Now()
	err = s.participants.Create(ctx, participant)
	s.metrics.ObserveDBQuery("intake_create_participant", time.Since(start))
	if err != nil {
		return nil, s.fail(log, err, "failed to create participant")
	}
	s.metrics.RecordSubmission(OutcomeCreated)
	log.Info("submission registered new participant", zap.String("participant_id", participant.ID), zap.String("cohort_id", cohort.ID))
	return &IntakeResult{Matched: false, ParticipantID: participant.ID}, nil
}

func (s *IntakeService) fail(log *zap.Logger, err error, message string) error {
	s.metrics.RecordSubmission(OutcomeError)
	log.Error(message, zap.Error(err))
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}
