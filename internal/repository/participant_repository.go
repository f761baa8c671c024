package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/kairos-api/internal/models"
)

const participantColumns = `id, cohort_id, name, contact, status, form_completed, tally_data, added_by, created_at, updated_at`

// ParticipantRepository manages persistence for participants.
type ParticipantRepository struct {
	db *sqlx.DB
}

// NewParticipantRepository constructs a ParticipantRepository.
func NewParticipantRepository(db *sqlx.DB) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

// likeEscaper makes search input match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// List returns the participants of a cohort matching the provided filters, newest first.
func (r *ParticipantRepository) List(ctx context.Context, filter models.ParticipantFilter) ([]models.Participant, error) {
	args := []interface{}{filter.CohortID}
	conditions := []string{"cohort_id = $1"}

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if filter.FormCompleted != nil {
		conditions = append(conditions, fmt.Sprintf("form_completed = $%d", len(args)+1))
		args = append(args, *filter.FormCompleted)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		conditions = append(conditions, fmt.Sprintf(`(LOWER(name) LIKE $%d ESCAPE '\' OR LOWER(contact) LIKE $%d ESCAPE '\')`, len(args)+1, len(args)+1))
		args = append(args, "%"+likeEscaper.Replace(strings.ToLower(search))+"%")
	}

	query := fmt.Sprintf(`SELECT %s FROM participants WHERE %s ORDER BY created_at DESC`,
		participantColumns, strings.Join(conditions, " AND "))

	var participants []models.Participant
	if err := r.db.SelectContext(ctx, &participants, query, args...); err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	return participants, nil
}

// FindByID fetches a participant by ID. Missing rows surface as sql.ErrNoRows.
func (r *ParticipantRepository) FindByID(ctx context.Context, id string) (*models.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participants WHERE id = $1`
	var participant models.Participant
	if err := r.db.GetContext(ctx, &participant, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find participant: %w", err)
	}
	return &participant, nil
}

// ListOpenCandidates returns the participants of a cohort that have not completed the form yet.
func (r *ParticipantRepository) ListOpenCandidates(ctx context.Context, cohortID string) ([]models.MatchCandidate, error) {
	const query = `SELECT id, name FROM participants WHERE cohort_id = $1 AND form_completed = FALSE ORDER BY created_at ASC`
	var candidates []models.MatchCandidate
	if err := r.db.SelectContext(ctx, &candidates, query, cohortID); err != nil {
		return nil, fmt.Errorf("list open candidates: %w", err)
	}
	return candidates, nil
}

// Create inserts a participant row.
func (r *ParticipantRepository) Create(ctx context.Context, participant *models.Participant) error {
	if participant.ID == "" {
		participant.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if participant.CreatedAt.IsZero() {
		participant.CreatedAt = now
	}
	participant.UpdatedAt = now
	if participant.Status == "" {
		participant.Status = models.ParticipantStatusExpressedInterest
	}
	const query = `INSERT INTO participants (id, cohort_id, name, contact, status, form_completed, tally_data, added_by, created_at, updated_at)
        VALUES (:id, :cohort_id, :name, :contact, :status, :form_completed, :tally_data, :added_by, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, participant); err != nil {
		return fmt.Errorf("create participant: %w", err)
	}
	return nil
}

// AttachSubmission stores the form answers on an existing participant and marks the form completed.
// The status is left untouched.
func (r *ParticipantRepository) AttachSubmission(ctx context.Context, id string, data models.TallyData) error {
	const query = `UPDATE participants SET form_completed = TRUE, tally_data = $2, updated_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, data, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("attach submission: %w", err)
	}
	return expectAffected(res)
}

// UpdateStatus changes the selection status of a participant.
func (r *ParticipantRepository) UpdateStatus(ctx context.Context, id string, status models.ParticipantStatus) error {
	const query = `UPDATE participants SET status = $2, updated_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update participant status: %w", err)
	}
	return expectAffected(res)
}

// SetFormCompleted toggles the form completion flag of a participant.
func (r *ParticipantRepository) SetFormCompleted(ctx context.Context, id string, completed bool) error {
	const query = `UPDATE participants SET form_completed = $2, updated_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, completed, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update participant form: %w", err)
	}
	return expectAffected(res)
}

// Delete removes a participant.
func (r *ParticipantRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM participants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete participant: %w", err)
	}
	return expectAffected(res)
}

func expectAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
