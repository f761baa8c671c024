package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/kairos-api/internal/middleware"
	"github.com/noah-isme/kairos-api/internal/models"
	"github.com/noah-isme/kairos-api/internal/service"
	appErrors "github.com/noah-isme/kairos-api/pkg/errors"
)

type participantServiceMock struct {
	lastFilter models.ParticipantFilter
	lastActor  *models.Admin
	lastStatus service.UpdateStatusRequest
	listErr    error
}

func (m *participantServiceMock) List(ctx context.Context, filter models.ParticipantFilter) ([]models.Participant, error) {
	m.lastFilter = filter
	if m.listErr != nil {
		return nil, m.listErr
	}
	return []models.Participant{{ID: "p1", CohortID: filter.CohortID, Name: "Ana Pop"}}, nil
}

func (m *participantServiceMock) Get(ctx context.Context, id string) (*models.Participant, error) {
	if id == "missing" {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "participant not found")
	}
	return &models.Participant{ID: id}, nil
}

func (m *participantServiceMock) Create(ctx context.Context, actor *models.Admin, cohortID string, req service.CreateParticipantRequest) (*models.Participant, error) {
	m.lastActor = actor
	return &models.Participant{ID: "new", CohortID: cohortID, Name: req.Name, Contact: req.Contact}, nil
}

func (m *participantServiceMock) UpdateStatus(ctx context.Context, id string, req service.UpdateStatusRequest) (*models.Participant, error) {
	m.lastStatus = req
	return &models.Participant{ID: id, Status: req.Status}, nil
}

func (m *participantServiceMock) SetFormCompleted(ctx context.Context, id string, req service.UpdateFormRequest) (*models.Participant, error) {
	return &models.Participant{ID: id, FormCompleted: req.FormCompleted != nil && *req.FormCompleted}, nil
}

func (m *participantServiceMock) Delete(ctx context.Context, id string) error {
	return nil
}

type rosterExporterMock struct {
	lastFilter models.ParticipantFilter
	lastFormat service.ExportFormat
}

func (m *rosterExporterMock) Export(ctx context.Context, filter models.ParticipantFilter, format service.ExportFormat) (*service.ExportFile, error) {
	m.lastFilter = filter
	m.lastFormat = format
	return &service.ExportFile{Filename: "participanti-kairos-2026-03-01.pdf", ContentType: "application/pdf", Payload: []byte("%PDF")}, nil
}

func newParticipantContext(method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func TestParticipantHandlerListFilters(t *testing.T) {
	svc := &participantServiceMock{}
	handler := NewParticipantHandler(svc, &rosterExporterMock{})
	c, w := newParticipantContext(http.MethodGet, "/cohorts/c1/participants?search=%20ana%20&status=confirmed&form=pending", nil)
	c.Params = gin.Params{{Key: "id", Value: "c1"}}

	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "c1", svc.lastFilter.CohortID)
	assert.Equal(t, "ana", svc.lastFilter.Search)
	assert.Equal(t, models.ParticipantStatusConfirmed, svc.lastFilter.Status)
	require.NotNil(t, svc.lastFilter.FormCompleted)
	assert.False(t, *svc.lastFilter.FormCompleted)
}

func TestParticipantHandlerListRejectsUnknownFormFilter(t *testing.T) {
	svc := &participantServiceMock{}
	handler := NewParticipantHandler(svc, &rosterExporterMock{})
	c, w := newParticipantContext(http.MethodGet, "/cohorts/c1/participants?form=maybe", nil)
	c.Params = gin.Params{{Key: "id", Value: "c1"}}

	handler.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, svc.lastFilter.CohortID)
}

func TestParticipantHandlerGetMissing(t *testing.T) {
	handler := NewParticipantHandler(&participantServiceMock{}, &rosterExporterMock{})
	c, w := newParticipantContext(http.MethodGet, "/participants/missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestParticipantHandlerCreatePassesActor(t *testing.T) {
	svc := &participantServiceMock{}
	handler := NewParticipantHandler(svc, &rosterExporterMock{})
	c, w := newParticipantContext(http.MethodPost, "/cohorts/c1/participants", []byte(`{"name":"Ana Pop","contact":"ana@example.com"}`))
	c.Params = gin.Params{{Key: "id", Value: "c1"}}
	c.Set(middleware.ContextAdminKey, &models.Admin{ID: "a1", IsApproved: true})

	handler.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.lastActor)
	assert.Equal(t, "a1", svc.lastActor.ID)
}

func TestParticipantHandlerUpdateStatusInvalidBody(t *testing.T) {
	handler := NewParticipantHandler(&participantServiceMock{}, &rosterExporterMock{})
	c, w := newParticipantContext(http.MethodPatch, "/participants/p1/status", []byte(`invalid`))
	c.Params = gin.Params{{Key: "id", Value: "p1"}}

	handler.UpdateStatus(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParticipantHandlerExportAttachment(t *testing.T) {
	exporter := &rosterExporterMock{}
	handler := NewParticipantHandler(&participantServiceMock{}, exporter)
	c, w := newParticipantContext(http.MethodGet, "/cohorts/c1/participants/export?format=PDF&form=completed", nil)
	c.Params = gin.Params{{Key: "id", Value: "c1"}}

	handler.Export(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.ExportFormatPDF, exporter.lastFormat)
	require.NotNil(t, exporter.lastFilter.FormCompleted)
	assert.True(t, *exporter.lastFilter.FormCompleted)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="participanti-kairos-2026-03-01.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF", w.Body.String())
}
