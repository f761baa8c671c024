package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/kairos-api/internal/models"
)

func participantRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "cohort_id", "name", "contact", "status", "form_completed", "tally_data", "added_by", "created_at", "updated_at"})
}

func TestParticipantRepositoryListAppliesFilters(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewParticipantRepository(db)

	completed := true
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM participants WHERE cohort_id = $1 AND status = $2 AND form_completed = $3 AND (LOWER(name) LIKE $4 ESCAPE '\\' OR LOWER(contact) LIKE $4 ESCAPE '\\') ORDER BY created_at DESC")).
		WithArgs("c1", models.ParticipantStatusConfirmed, true, "%maria%").
		WillReturnRows(participantRows().
			AddRow("p1", "c1", "Maria Ionescu", "maria@example.com", "confirmed", true, []byte(`{"name":"Maria Ionescu","previous_kairos":true}`), nil, now, now))

	list, err := repo.List(context.Background(), models.ParticipantFilter{
		CohortID:      "c1",
		Search:        " Maria ",
		Status:        models.ParticipantStatusConfirmed,
		FormCompleted: &completed,
	})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].TallyData)
	assert.True(t, list[0].TallyData.PreviousKairos)
	assert.Nil(t, list[0].AddedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParticipantRepositoryListEscapesLikeWildcards(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewParticipantRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM participants WHERE cohort_id = $1 AND (LOWER(name) LIKE $2 ESCAPE '\' OR LOWER(contact) LIKE $2 ESCAPE '\')`)).
		WithArgs("c1", `%50\% off\_a\\b%`).
		WillReturnRows(participantRows())

	list, err := repo.List(context.Background(), models.ParticipantFilter{CohortID: "c1", Search: `50% OFF_a\b`})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParticipantRepositoryListOpenCandidates(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewParticipantRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM participants WHERE cohort_id = $1 AND form_completed = FALSE")).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("p1", "Maria Ionescu").AddRow("p2", "Ion Pop"))

	candidates, err := repo.ListOpenCandidates(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, []models.MatchCandidate{{ID: "p1", Name: "Maria Ionescu"}, {ID: "p2", Name: "Ion Pop"}}, candidates)
}

func TestParticipantRepositoryCreateFromSubmission(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewParticipantRepository(db)

	mock.ExpectExec("INSERT INTO participants").
		WithArgs(sqlmock.AnyArg(), "c1", "Ion Popescu", "ion@example.com", models.ParticipantStatusExpressedInterest, true, sqlmock.AnyArg(), nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	p := &models.Participant{
		CohortID:      "c1",
		Name:          "Ion Popescu",
		Contact:       "ion@example.com",
		FormCompleted: true,
		TallyData:     &models.TallyData{Name: "Ion Popescu"},
	}
	require.NoError(t, repo.Create(context.Background(), p))
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, models.ParticipantStatusExpressedInterest, p.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParticipantRepositoryAttachSubmission(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewParticipantRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE participants SET form_completed = TRUE, tally_data = $2, updated_at = $3 WHERE id = $1")).
		WithArgs("p1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.AttachSubmission(context.Background(), "p1", models.TallyData{Name: "Maria"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParticipantRepositoryUpdateStatusMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewParticipantRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE participants SET status = $2")).
		WithArgs("ghost", models.ParticipantStatusDenied, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), "ghost", models.ParticipantStatusDenied)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestParticipantRepositoryFindByIDWrapsFailures(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewParticipantRepository(db)

	mock.ExpectQuery("FROM participants WHERE id").
		WithArgs("p1").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.FindByID(context.Background(), "p1")
	require.Error(t, err)
	assert.False(t, errors.Is(err, sql.ErrNoRows))
	assert.Contains(t, err.Error(), "find participant")
}
