package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/kairos-api/internal/models"
)

const cohortColumns = `id, name, is_active, capacity, created_at`

// CohortRepository manages persistence for cohorts.
type CohortRepository struct {
	db *sqlx.DB
}

// NewCohortRepository constructs a CohortRepository.
func NewCohortRepository(db *sqlx.DB) *CohortRepository {
	return &CohortRepository{db: db}
}

// List returns all cohorts, newest first.
func (r *CohortRepository) List(ctx context.Context) ([]models.Cohort, error) {
	query := `SELECT ` + cohortColumns + ` FROM cohorts ORDER BY created_at DESC`
	var cohorts []models.Cohort
	if err := r.db.SelectContext(ctx, &cohorts, query); err != nil {
		return nil, fmt.Errorf("list cohorts: %w", err)
	}
	return cohorts, nil
}

// FindByID fetches a cohort by ID. Missing rows surface as sql.ErrNoRows.
func (r *CohortRepository) FindByID(ctx context.Context, id string) (*models.Cohort, error) {
	query := `SELECT ` + cohortColumns + ` FROM cohorts WHERE id = $1`
	var cohort models.Cohort
	if err := r.db.GetContext(ctx, &cohort, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find cohort: %w", err)
	}
	return &cohort, nil
}

// FindActive returns the active cohort. Missing rows surface as sql.ErrNoRows.
func (r *CohortRepository) FindActive(ctx context.Context) (*models.Cohort, error) {
	query := `SELECT ` + cohortColumns + ` FROM cohorts WHERE is_active = TRUE LIMIT 1`
	var cohort models.Cohort
	if err := r.db.GetContext(ctx, &cohort, query); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find active cohort: %w", err)
	}
	return &cohort, nil
}

// Create inserts a new, inactive cohort.
func (r *CohortRepository) Create(ctx context.Context, cohort *models.Cohort) error {
	if cohort.ID == "" {
		cohort.ID = uuid.NewString()
	}
	if cohort.CreatedAt.IsZero() {
		cohort.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO cohorts (id, name, is_active, capacity, created_at)
        VALUES (:id, :name, :is_active, :capacity, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, cohort); err != nil {
		return fmt.Errorf("create cohort: %w", err)
	}
	return nil
}

// Update modifies the name and capacity of a cohort.
func (r *CohortRepository) Update(ctx context.Context, cohort *models.Cohort) error {
	const query = `UPDATE cohorts SET name = :name, capacity = :capacity WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, cohort); err != nil {
		return fmt.Errorf("update cohort: %w", err)
	}
	return nil
}

// SetActive marks the cohort active and clears the flag on every other cohort in one transaction.
// The partial unique index on is_active rejects any concurrent writer that would leave two active rows.
func (r *CohortRepository) SetActive(ctx context.Context, id string) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin set active tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `UPDATE cohorts SET is_active = FALSE WHERE is_active = TRUE AND id <> $1`, id); err != nil {
		return fmt.Errorf("deactivate other cohorts: %w", err)
	}

	res, err := tx.ExecContext(ctx, `UPDATE cohorts SET is_active = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("activate cohort: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("activate cohort rows: %w", err)
	}
	if affected == 0 {
		err = sql.ErrNoRows
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit set active tx: %w", err)
	}
	return nil
}

// Delete removes a cohort; participants cascade at the database level.
func (r *CohortRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cohorts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cohort: %w", err)
	}
	return expectAffected(res)
}

// CountConfirmed returns the number of confirmed participants in a cohort.
func (r *CohortRepository) CountConfirmed(ctx context.Context, cohortID string) (int, error) {
	const query = `SELECT COUNT(*) FROM participants WHERE cohort_id = $1 AND status = $2`
	var count int
	if err := r.db.GetContext(ctx, &count, query, cohortID, models.ParticipantStatusConfirmed); err != nil {
		return 0, fmt.Errorf("count confirmed participants: %w", err)
	}
	return count, nil
}

// Counts aggregates participant counters for the admin statistics cards.
func (r *CohortRepository) Counts(ctx context.Context, cohortID string) (*models.CohortCounts, error) {
	const query = `SELECT
        COUNT(*) FILTER (WHERE status = 'confirmed') AS confirmed,
        COUNT(*) FILTER (WHERE status = 'expressed_interest') AS expressed_interest,
        COUNT(*) FILTER (WHERE status = 'denied') AS denied,
        COUNT(*) FILTER (WHERE form_completed) AS form_completed,
        COUNT(*) AS total
        FROM participants WHERE cohort_id = $1`
	var counts models.CohortCounts
	if err := r.db.GetContext(ctx, &counts, query, cohortID); err != nil {
		return nil, fmt.Errorf("count cohort participants: %w", err)
	}
	return &counts, nil
}
