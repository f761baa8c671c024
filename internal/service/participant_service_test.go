package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/kairos-api/internal/models"
	appErrors "github.com/noah-isme/kairos-api/pkg/errors"
)

type fakeParticipantRepo struct {
	rows       map[string]*models.Participant
	lastFilter models.ParticipantFilter
	created    []*models.Participant
}

func newFakeParticipantRepo(rows ...*models.Participant) *fakeParticipantRepo {
	repo := &fakeParticipantRepo{rows: map[string]*models.Participant{}}
	for _, p := range rows {
		repo.rows[p.ID] = p
	}
	return repo
}

func (f *fakeParticipantRepo) List(ctx context.Context, filter models.ParticipantFilter) ([]models.Participant, error) {
	f.lastFilter = filter
	var out []models.Participant
	for _, p := range f.rows {
		if p.CohortID == filter.CohortID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeParticipantRepo) FindByID(ctx context.Context, id string) (*models.Participant, error) {
	if p, ok := f.rows[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeParticipantRepo) Create(ctx context.Context, participant *models.Participant) error {
	participant.ID = "manual-1"
	participant.CreatedAt = time.Now()
	f.rows[participant.ID] = participant
	f.created = append(f.created, participant)
	return nil
}

func (f *fakeParticipantRepo) UpdateStatus(ctx context.Context, id string, status models.ParticipantStatus) error {
	p, ok := f.rows[id]
	if !ok {
		return sql.ErrNoRows
	}
	p.Status = status
	return nil
}

func (f *fakeParticipantRepo) SetFormCompleted(ctx context.Context, id string, completed bool) error {
	p, ok := f.rows[id]
	if !ok {
		return sql.ErrNoRows
	}
	p.FormCompleted = completed
	return nil
}

func (f *fakeParticipantRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.rows[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.rows, id)
	return nil
}

func newParticipantFixture() (*ParticipantService, *fakeParticipantRepo, *recordingCache) {
	repo := newFakeParticipantRepo(&models.Participant{ID: participantOneID, CohortID: cohortOneID, Name: "Maria", Status: models.ParticipantStatusExpressedInterest})
	cohorts := newFakeCohortRepo(&models.Cohort{ID: cohortOneID, Name: "2026", IsActive: true, Capacity: 30})
	backend := newRecordingCache()
	cache := NewCacheService(backend, nil, time.Minute, nil, true)
	return NewParticipantService(repo, cohorts, cache, nil, nil), repo, backend
}

func TestParticipantServiceCreateRecordsActor(t *testing.T) {
	svc, repo, _ := newParticipantFixture()
	actor := &models.Admin{ID: "admin-1"}

	p, err := svc.Create(context.Background(), actor, cohortOneID, CreateParticipantRequest{Name: " Ion Pop ", Contact: "0722"})
	require.NoError(t, err)
	assert.Equal(t, "Ion Pop", p.Name)
	assert.Equal(t, models.ParticipantStatusExpressedInterest, p.Status)
	assert.False(t, p.FormCompleted)
	require.NotNil(t, p.AddedBy)
	assert.Equal(t, "admin-1", *p.AddedBy)
	assert.Len(t, repo.created, 1)

	_, err = svc.Create(context.Background(), actor, cohortOneID, CreateParticipantRequest{Name: "Ion"})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))

	_, err = svc.Create(context.Background(), actor, unknownResourceID, CreateParticipantRequest{Name: "Ion", Contact: "x"})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound))
}

func TestParticipantServiceUpdateStatus(t *testing.T) {
	svc, _, cache := newParticipantFixture()

	p, err := svc.UpdateStatus(context.Background(), participantOneID, UpdateStatusRequest{Status: models.ParticipantStatusConfirmed})
	require.NoError(t, err)
	assert.Equal(t, models.ParticipantStatusConfirmed, p.Status)
	assert.Contains(t, cache.deleted, PublicStatsCacheKey)

	_, err = svc.UpdateStatus(context.Background(), participantOneID, UpdateStatusRequest{Status: "maybe"})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))

	_, err = svc.UpdateStatus(context.Background(), unknownResourceID, UpdateStatusRequest{Status: models.ParticipantStatusDenied})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound))
}

func TestParticipantServiceSetFormCompleted(t *testing.T) {
	svc, _, _ := newParticipantFixture()

	p, err := svc.SetFormCompleted(context.Background(), participantOneID, UpdateFormRequest{FormCompleted: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, p.FormCompleted)

	_, err = svc.SetFormCompleted(context.Background(), participantOneID, UpdateFormRequest{})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))
}

func TestParticipantServiceListValidatesFilter(t *testing.T) {
	svc, repo, _ := newParticipantFixture()

	list, err := svc.List(context.Background(), models.ParticipantFilter{CohortID: cohortOneID, Search: "mar"})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, "mar", repo.lastFilter.Search)

	_, err = svc.List(context.Background(), models.ParticipantFilter{CohortID: cohortOneID, Status: "bogus"})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))

	list, err = svc.List(context.Background(), models.ParticipantFilter{CohortID: cohortOneID, Status: models.ParticipantStatusDenied})
	require.NoError(t, err)
	assert.NotNil(t, list)
}

func TestParticipantServiceDelete(t *testing.T) {
	svc, repo, _ := newParticipantFixture()

	require.NoError(t, svc.Delete(context.Background(), participantOneID))
	assert.Empty(t, repo.rows)
	assert.True(t, appErrors.HasCode(svc.Delete(context.Background(), participantOneID), appErrors.ErrNotFound))
}

func TestParticipantServiceMalformedIDIsNotFound(t *testing.T) {
	svc, repo, _ := newParticipantFixture()
	ctx := context.Background()

	_, err := svc.Get(ctx, "not-a-uuid")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound))
	_, err = svc.UpdateStatus(ctx, "not-a-uuid", UpdateStatusRequest{Status: models.ParticipantStatusConfirmed})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound))
	_, err = svc.SetFormCompleted(ctx, "not-a-uuid", UpdateFormRequest{FormCompleted: boolPtr(true)})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound))
	assert.True(t, appErrors.HasCode(svc.Delete(ctx, "not-a-uuid"), appErrors.ErrNotFound))

	_, err = svc.List(ctx, models.ParticipantFilter{CohortID: "not-a-uuid"})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound))
	_, err = svc.Create(ctx, nil, "not-a-uuid", CreateParticipantRequest{Name: "Ion", Contact: "0722"})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound))

	assert.Len(t, repo.rows, 1)
	assert.Empty(t, repo.created)
}
