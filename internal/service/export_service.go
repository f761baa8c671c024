package service

import (
	"context"
	"fmt"
	"time"
	_ "time/tzdata"

	"go.uber.org/zap"

	"github.com/noah-isme/kairos-api/internal/models"
	appErrors "github.com/noah-isme/kairos-api/pkg/errors"
	"github.com/noah-isme/kairos-api/pkg/export"
)

// Roster column headers, in order.
const (
	colName      = "Nume"
	colContact   = "Contact"
	colStatus    = "Status"
	colForm      = "Formular completat"
	colAddedDate = "Data adăugării"
)

const roDateLayout = "02.01.2006"

// ExportFormat selects the roster file type.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

var roLocation = loadLocation("Europe/Bucharest")

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

type rosterRenderer interface {
	Render(data export.Dataset) ([]byte, error)
	ContentType() string
	Extension() string
}

type rosterSource interface {
	List(ctx context.Context, filter models.ParticipantFilter) ([]models.Participant, error)
}

// ExportFile is a rendered roster ready to download.
type ExportFile struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders participant rosters as CSV or PDF.
type ExportService struct {
	participants rosterSource
	renderers    map[ExportFormat]func(generatedAt time.Time) rosterRenderer
	logger       *zap.Logger
	now          func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(participants rosterSource, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		participants: participants,
		renderers: map[ExportFormat]func(time.Time) rosterRenderer{
			ExportFormatCSV: func(time.Time) rosterRenderer { return export.NewCSVExporter() },
			ExportFormatPDF: func(generatedAt time.Time) rosterRenderer {
				return export.NewPDFExporter(generatedAt.Format(roDateLayout))
			},
		},
		logger: logger,
		now:    time.Now,
	}
}

// Export renders the filtered roster of a cohort in the requested format.
func (s *ExportService) Export(ctx context.Context, filter models.ParticipantFilter, format ExportFormat) (*ExportFile, error) {
	if format == "" {
		format = ExportFormatCSV
	}
	newRenderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	participants, err := s.participants.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := s.now().In(roLocation)
	renderer := newRenderer(now)
	payload, err := renderer.Render(RosterDataset(participants))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render roster")
	}
	s.logger.Info("roster exported",
		zap.String("cohort_id", filter.CohortID),
		zap.String("format", string(format)),
		zap.Int("rows", len(participants)))

	return &ExportFile{
		Filename:    fmt.Sprintf("participanti-kairos-%s.%s", now.Format("2006-01-02"), renderer.Extension()),
		ContentType: renderer.ContentType(),
		Payload:     payload,
	}, nil
}

// RosterDataset maps participants onto the roster columns.
func RosterDataset(participants []models.Participant) export.Dataset {
	rows := make([]map[string]string, 0, len(participants))
	for _, p := range participants {
		form := "Nu"
		if p.FormCompleted {
			form = "Da"
		}
		rows = append(rows, map[string]string{
			colName:      p.Name,
			colContact:   p.Contact,
			colStatus:    p.Status.Label(),
			colForm:      form,
			colAddedDate: p.CreatedAt.In(roLocation).Format(roDateLayout),
		})
	}
	return export.Dataset{
		Title:   "Participanți Kairos",
		Headers: []string{colName, colContact, colStatus, colForm, colAddedDate},
		Rows:    rows,
	}
}
