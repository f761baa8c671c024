package service

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/kairos-api/internal/dto"
	"github.com/noah-isme/kairos-api/internal/models"
	appErrors "github.com/noah-isme/kairos-api/pkg/errors"
)

// PublicStatsCacheKey is the cache entry holding the landing page statistics.
const PublicStatsCacheKey = "stats:public"

type statsRepository interface {
	FindActive(ctx context.Context) (*models.Cohort, error)
	FindByID(ctx context.Context, id string) (*models.Cohort, error)
	CountConfirmed(ctx context.Context, cohortID string) (int, error)
	Counts(ctx context.Context, cohortID string) (*models.CohortCounts, error)
}

// StatsService computes cohort occupancy figures.
type StatsService struct {
	repo            statsRepository
	cache           *CacheService
	metrics         *MetricsService
	logger          *zap.Logger
	defaultCapacity int
}

// NewStatsService constructs a StatsService.
func NewStatsService(repo statsRepository, cache *CacheService, metrics *MetricsService, logger *zap.Logger, defaultCapacity int) *StatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaultCapacity <= 0 {
		defaultCapacity = models.DefaultCohortCapacity
	}
	return &StatsService{repo: repo, cache: cache, metrics: metrics, logger: logger, defaultCapacity: defaultCapacity}
}

// Public returns the active cohort's confirmed count and capacity. The boolean reports a cache hit.
func (s *StatsService) Public(ctx context.Context) (*dto.PublicCohortStats, bool, error) {
	var cached dto.PublicCohortStats
	if s.cache.Get(ctx, PublicStatsCacheKey, &cached) {
		return &cached, true, nil
	}

	stats := &dto.PublicCohortStats{Capacity: s.defaultCapacity}
	cohort, err := s.repo.FindActive(ctx)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load active cohort")
	default:
		start := time.Now()
		confirmed, err := s.repo.CountConfirmed(ctx, cohort.ID)
		s.metrics.ObserveDBQuery("stats_count_confirmed", time.Since(start))
		if err != nil {
			return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count confirmed participants")
		}
		stats.Cohort = cohort
		stats.ConfirmedCount = confirmed
		stats.Capacity = cohort.Capacity
		stats.IsFull = confirmed >= cohort.Capacity
	}

	s.cache.Set(ctx, PublicStatsCacheKey, stats, 0)
	return stats, false, nil
}

// ForCohort returns the dashboard counters of a cohort.
func (s *StatsService) ForCohort(ctx context.Context, cohortID string) (*dto.CohortStats, error) {
	if !validID(cohortID) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "cohort not found")
	}
	cohort, err := s.repo.FindByID(ctx, cohortID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "cohort not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load cohort")
	}
	start := time.Now()
	counts, err := s.repo.Counts(ctx, cohortID)
	s.metrics.ObserveDBQuery("stats_cohort_counts", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count participants")
	}

	return &dto.CohortStats{
		CohortID:          cohort.ID,
		Capacity:          cohort.Capacity,
		Confirmed:         counts.Confirmed,
		ExpressedInterest: counts.ExpressedInterest,
		Denied:            counts.Denied,
		FormCompleted:     counts.FormCompleted,
		Total:             counts.Total,
		OccupancyPercent:  occupancy(counts.Confirmed, cohort.Capacity),
	}, nil
}

func occupancy(confirmed, capacity int) int {
	if capacity <= 0 {
		return 0
	}
	return int(math.Round(float64(confirmed) / float64(capacity) * 100))
}
