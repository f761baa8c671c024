package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/kairos-api/internal/models"
	"github.com/noah-isme/kairos-api/internal/service"
	appErrors "github.com/noah-isme/kairos-api/pkg/errors"
	"github.com/noah-isme/kairos-api/pkg/response"
)

type participantService interface {
	List(ctx context.Context, filter models.ParticipantFilter) ([]models.Participant, error)
	Get(ctx context.Context, id string) (*models.Participant, error)
	Create(ctx context.Context, actor *models.Admin, cohortID string, req service.CreateParticipantRequest) (*models.Participant, error)
	UpdateStatus(ctx context.Context, id string, req service.UpdateStatusRequest) (*models.Participant, error)
	SetFormCompleted(ctx context.Context, id string, req service.UpdateFormRequest) (*models.Participant, error)
	Delete(ctx context.Context, id string) error
}

type rosterExporter interface {
	Export(ctx context.Context, filter models.ParticipantFilter, format service.ExportFormat) (*service.ExportFile, error)
}

// ParticipantHandler exposes participant administration endpoints.
type ParticipantHandler struct {
	service  participantService
	exporter rosterExporter
}

// NewParticipantHandler builds a new handler.
func NewParticipantHandler(service participantService, exporter rosterExporter) *ParticipantHandler {
	return &ParticipantHandler{service: service, exporter: exporter}
}

// List godoc
// @Summary List participants of a cohort
// @Tags Participants
// @Produce json
// @Param id path string true "Cohort ID"
// @Param search query string false "Name or contact fragment"
// @Param status query string false "expressed_interest, confirmed or denied"
// @Param form query string false "completed or pending"
// @Success 200 {object} response.Envelope
// @Router /cohorts/{id}/participants [get]
func (h *ParticipantHandler) List(c *gin.Context) {
	filter, err := participantFilterFromQuery(c, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	participants, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, participants)
}

// Get godoc
// @Summary Get participant details
// @Tags Participants
// @Produce json
// @Param id path string true "Participant ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /participants/{id} [get]
func (h *ParticipantHandler) Get(c *gin.Context) {
	participant, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, participant)
}

// Create godoc
// @Summary Add a participant to a cohort
// @Tags Participants
// @Accept json
// @Produce json
// @Param id path string true "Cohort ID"
// @Param payload body service.CreateParticipantRequest true "Participant payload"
// @Success 201 {object} response.Envelope
// @Router /cohorts/{id}/participants [post]
func (h *ParticipantHandler) Create(c *gin.Context) {
	var req service.CreateParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid participant payload"))
		return
	}
	participant, err := h.service.Create(c.Request.Context(), adminFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, participant)
}

// UpdateStatus godoc
// @Summary Change participant status
// @Tags Participants
// @Accept json
// @Produce json
// @Param id path string true "Participant ID"
// @Param payload body service.UpdateStatusRequest true "Status payload"
// @Success 200 {object} response.Envelope
// @Router /participants/{id}/status [patch]
func (h *ParticipantHandler) UpdateStatus(c *gin.Context) {
	var req service.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid status payload"))
		return
	}
	participant, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, participant)
}

// SetFormCompleted godoc
// @Summary Toggle the form completed flag
// @Tags Participants
// @Accept json
// @Produce json
// @Param id path string true "Participant ID"
// @Param payload body service.UpdateFormRequest true "Form payload"
// @Success 200 {object} response.Envelope
// @Router /participants/{id}/form [patch]
func (h *ParticipantHandler) SetFormCompleted(c *gin.Context) {
	var req service.UpdateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid form payload"))
		return
	}
	participant, err := h.service.SetFormCompleted(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, participant)
}

// Delete godoc
// @Summary Delete participant
// @Tags Participants
// @Param id path string true "Participant ID"
// @Success 204
// @Router /participants/{id} [delete]
func (h *ParticipantHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Export godoc
// @Summary Download the cohort roster
// @Tags Participants
// @Produce text/csv
// @Produce application/pdf
// @Param id path string true "Cohort ID"
// @Param format query string false "csv or pdf"
// @Param search query string false "Name or contact fragment"
// @Param status query string false "expressed_interest, confirmed or denied"
// @Param form query string false "completed or pending"
// @Success 200 {file} file
// @Router /cohorts/{id}/participants/export [get]
func (h *ParticipantHandler) Export(c *gin.Context) {
	filter, err := participantFilterFromQuery(c, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	format := service.ExportFormat(strings.ToLower(strings.TrimSpace(c.Query("format"))))
	file, err := h.exporter.Export(c.Request.Context(), filter, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Payload)
}
