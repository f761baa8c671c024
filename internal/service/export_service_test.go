package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/kairos-api/internal/models"
	appErrors "github.com/noah-isme/kairos-api/pkg/errors"
)

type staticRoster struct {
	participants []models.Participant
	err          error
}

func (s staticRoster) List(ctx context.Context, filter models.ParticipantFilter) ([]models.Participant, error) {
	return s.participants, s.err
}

func rosterFixture() []models.Participant {
	added := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	return []models.Participant{
		{Name: "Maria Ionescu", Contact: "maria@example.com", Status: models.ParticipantStatusConfirmed, FormCompleted: true, CreatedAt: added},
		{Name: "Ion Pop", Contact: "0722", Status: models.ParticipantStatusExpressedInterest, CreatedAt: added},
		{Name: "Ana", Contact: "ana@example.com", Status: models.ParticipantStatusDenied, CreatedAt: added},
	}
}

func newTestExportService(roster rosterSource) *ExportService {
	svc := NewExportService(roster, nil)
	svc.now = func() time.Time { return time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestExportServiceCSV(t *testing.T) {
	svc := newTestExportService(staticRoster{participants: rosterFixture()})

	file, err := svc.Export(context.Background(), models.ParticipantFilter{CohortID: "c1"}, ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "participanti-kairos-2026-10-19.csv", file.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", file.ContentType)

	body := strings.TrimPrefix(string(file.Payload), "\ufeff")
	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Nume,Contact,Status,Formular completat,Data adăugării", lines[0])
	assert.Equal(t, "Maria Ionescu,maria@example.com,Confirmat,Da,01.02.2026", lines[1])
	assert.Equal(t, "Ion Pop,0722,Interes exprimat,Nu,01.02.2026", lines[2])
	assert.Equal(t, "Ana,ana@example.com,Respins,Nu,01.02.2026", lines[3])
}

func TestExportServicePDF(t *testing.T) {
	svc := newTestExportService(staticRoster{participants: rosterFixture()})

	file, err := svc.Export(context.Background(), models.ParticipantFilter{CohortID: "c1"}, ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "participanti-kairos-2026-10-19.pdf", file.Filename)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Payload, []byte("%PDF-")))
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	svc := newTestExportService(staticRoster{})

	_, err := svc.Export(context.Background(), models.ParticipantFilter{CohortID: "c1"}, "xlsx")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))
}

func TestExportServicePropagatesListErrors(t *testing.T) {
	svc := newTestExportService(staticRoster{err: appErrors.Clone(appErrors.ErrNotFound, "cohort not found")})

	_, err := svc.Export(context.Background(), models.ParticipantFilter{CohortID: "ghost"}, ExportFormatCSV)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound))
}
