package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/kairos-api/internal/dto"
	"github.com/noah-isme/kairos-api/internal/middleware"
	"github.com/noah-isme/kairos-api/internal/models"
	"github.com/noah-isme/kairos-api/internal/service"
	appErrors "github.com/noah-isme/kairos-api/pkg/errors"
)

type cohortServiceMock struct {
	created   *service.CreateCohortRequest
	activated string
}

func (m *cohortServiceMock) List(ctx context.Context) ([]models.Cohort, error) {
	return []models.Cohort{{ID: "c1"}}, nil
}

func (m *cohortServiceMock) GetActive(ctx context.Context) (*models.Cohort, error) {
	return nil, appErrors.Clone(appErrors.ErrNotFound, "no active cohort")
}

func (m *cohortServiceMock) Create(ctx context.Context, req service.CreateCohortRequest) (*models.Cohort, error) {
	m.created = &req
	return &models.Cohort{ID: "c2", Name: req.Name, Capacity: 30}, nil
}

func (m *cohortServiceMock) Update(ctx context.Context, id string, req service.UpdateCohortRequest) (*models.Cohort, error) {
	return &models.Cohort{ID: id, Name: req.Name, Capacity: req.Capacity}, nil
}

func (m *cohortServiceMock) Activate(ctx context.Context, id string) (*models.Cohort, error) {
	m.activated = id
	return &models.Cohort{ID: id, IsActive: true}, nil
}

func (m *cohortServiceMock) Delete(ctx context.Context, id string) error {
	return nil
}

func TestCohortHandlerCreate(t *testing.T) {
	svc := &cohortServiceMock{}
	handler := NewCohortHandler(svc)
	c, w := newParticipantContext(http.MethodPost, "/cohorts", []byte(`{"name":"Kairos 2026"}`))

	handler.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.created)
	assert.Equal(t, "Kairos 2026", svc.created.Name)
	assert.Nil(t, svc.created.Capacity)
}

func TestCohortHandlerActiveMissing(t *testing.T) {
	handler := NewCohortHandler(&cohortServiceMock{})
	c, w := newParticipantContext(http.MethodGet, "/cohorts/active", nil)

	handler.Active(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCohortHandlerActivate(t *testing.T) {
	svc := &cohortServiceMock{}
	handler := NewCohortHandler(svc)
	c, w := newParticipantContext(http.MethodPost, "/cohorts/c3/activate", nil)
	c.Params = gin.Params{{Key: "id", Value: "c3"}}

	handler.Activate(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "c3", svc.activated)
}

func TestCohortHandlerDelete(t *testing.T) {
	handler := NewCohortHandler(&cohortServiceMock{})
	c, w := newParticipantContext(http.MethodDelete, "/cohorts/c1", nil)
	c.Params = gin.Params{{Key: "id", Value: "c1"}}

	handler.Delete(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
}

type sessionServiceMock struct {
	created bool
}

func (m *sessionServiceMock) EnsureAdmin(ctx context.Context, claims *models.AuthClaims) (*models.Admin, bool, error) {
	return &models.Admin{ID: "a9", Email: claims.Email, Name: claims.FullName}, m.created, nil
}

func TestAuthHandlerSessionCreatesPendingAdmin(t *testing.T) {
	handler := NewAuthHandler(&sessionServiceMock{created: true})
	c, w := newParticipantContext(http.MethodPost, "/auth/session", nil)
	c.Set(middleware.ContextClaimsKey, &models.AuthClaims{Email: "new@example.com", FullName: "New Admin"})

	handler.Session(c)

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, false, data["approved"])
	assert.Equal(t, true, data["created"])
}

func TestAuthHandlerSessionWithoutClaims(t *testing.T) {
	handler := NewAuthHandler(&sessionServiceMock{})
	c, w := newParticipantContext(http.MethodPost, "/auth/session", nil)

	handler.Session(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

type statsServiceMock struct {
	hit bool
}

func (m *statsServiceMock) Public(ctx context.Context) (*dto.PublicCohortStats, bool, error) {
	return &dto.PublicCohortStats{Capacity: 30}, m.hit, nil
}

func (m *statsServiceMock) ForCohort(ctx context.Context, cohortID string) (*dto.CohortStats, error) {
	return &dto.CohortStats{CohortID: cohortID, Capacity: 30, Confirmed: 15, OccupancyPercent: 50}, nil
}

func TestStatsHandlerPublicRawBody(t *testing.T) {
	handler := NewStatsHandler(&statsServiceMock{hit: true})
	c, w := newParticipantContext(http.MethodGet, "/public/cohort-stats", nil)

	handler.Public(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))
	assert.JSONEq(t, `{"cohort":null,"confirmedCount":0,"capacity":30,"isFull":false}`, w.Body.String())
}

func TestStatsHandlerCohortEnvelope(t *testing.T) {
	handler := NewStatsHandler(&statsServiceMock{})
	c, w := newParticipantContext(http.MethodGet, "/cohorts/c1/stats", nil)
	c.Params = gin.Params{{Key: "id", Value: "c1"}}

	handler.Cohort(c)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(50), data["occupancy_percent"])
}

type adminServiceMock struct {
	actor *models.Admin
}

func (m *adminServiceMock) List(ctx context.Context) ([]models.Admin, error) {
	return []models.Admin{{ID: "a1"}}, nil
}

func (m *adminServiceMock) SetApproval(ctx context.Context, actor *models.Admin, targetID string, req service.ApprovalRequest) (*models.Admin, error) {
	m.actor = actor
	if actor != nil && actor.ID == targetID {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "cannot change your own approval")
	}
	return &models.Admin{ID: targetID, IsApproved: *req.IsApproved}, nil
}

func TestAdminHandlerSetApprovalSelf(t *testing.T) {
	svc := &adminServiceMock{}
	handler := NewAdminHandler(svc)
	c, w := newParticipantContext(http.MethodPatch, "/admins/a1/approval", []byte(`{"is_approved":true}`))
	c.Params = gin.Params{{Key: "id", Value: "a1"}}
	c.Set(middleware.ContextAdminKey, &models.Admin{ID: "a1", IsMainAdmin: true, IsApproved: true})

	handler.SetApproval(c)

	assert.Equal(t, http.StatusPreconditionFailed, w.Code)
	require.NotNil(t, svc.actor)
}

func TestAdminHandlerMe(t *testing.T) {
	handler := NewAdminHandler(&adminServiceMock{})
	c, w := newParticipantContext(http.MethodGet, "/me", nil)
	c.Set(middleware.ContextAdminKey, &models.Admin{ID: "a2", Email: "a2@example.com"})

	handler.Me(c)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "a2", data["id"])
}
