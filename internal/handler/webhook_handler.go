package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/kairos-api/internal/dto"
	"github.com/noah-isme/kairos-api/internal/models"
	"github.com/noah-isme/kairos-api/internal/service"
	appErrors "github.com/noah-isme/kairos-api/pkg/errors"
	"github.com/noah-isme/kairos-api/pkg/logger"
)

const internalServerError = "Internal server error"

type submissionProcessor interface {
	ProcessSubmission(ctx context.Context, payload models.TallyWebhookPayload) (*service.IntakeResult, error)
}

// WebhookHandler receives form submissions from Tally.
type WebhookHandler struct {
	intake  submissionProcessor
	metrics *service.MetricsService
	logger  *zap.Logger
}

// NewWebhookHandler constructs a webhook handler.
func NewWebhookHandler(intake submissionProcessor, metrics *service.MetricsService, log *zap.Logger) *WebhookHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &WebhookHandler{intake: intake, metrics: metrics, logger: log}
}

// Tally godoc
// @Summary Receive a Tally form submission
// @Description Matches the submission to an open participant of the active cohort or registers a new one
// @Tags Webhooks
// @Accept json
// @Produce json
// @Param payload body models.TallyWebhookPayload true "Tally webhook payload"
// @Success 200 {object} dto.IntakeResponse
// @Failure 400 {object} dto.IntakeError
// @Failure 500 {object} dto.IntakeError
// @Router /webhooks/tally [post]
func (h *WebhookHandler) Tally(c *gin.Context) {
	log := logger.WithRequest(h.logger, c)

	var payload models.TallyWebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.metrics.RecordSubmission(service.OutcomeError)
		log.Warn("malformed tally payload", zap.Error(err))
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, dto.IntakeError{Error: internalServerError})
		return
	}

	result, err := h.intake.ProcessSubmission(c.Request.Context(), payload)
	if err != nil {
		if appErrors.HasCode(err, appErrors.ErrNoActiveCohort) {
			c.JSON(http.StatusBadRequest, dto.IntakeError{Error: appErrors.ErrNoActiveCohort.Message})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, dto.IntakeError{Error: internalServerError})
		return
	}

	c.JSON(http.StatusOK, dto.IntakeResponse{
		Success:       true,
		Matched:       result.Matched,
		ParticipantID: result.ParticipantID,
	})
}
