package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/kairos-api/internal/models"
	"github.com/noah-isme/kairos-api/internal/service"
	appErrors "github.com/noah-isme/kairos-api/pkg/errors"
	"github.com/noah-isme/kairos-api/pkg/response"
)

type cohortService interface {
	List(ctx context.Context) ([]models.Cohort, error)
	GetActive(ctx context.Context) (*models.Cohort, error)
	Create(ctx context.Context, req service.CreateCohortRequest) (*models.Cohort, error)
	Update(ctx context.Context, id string, req service.UpdateCohortRequest) (*models.Cohort, error)
	Activate(ctx context.Context, id string) (*models.Cohort, error)
	Delete(ctx context.Context, id string) error
}

// CohortHandler exposes cohort administration endpoints.
type CohortHandler struct {
	service cohortService
}

// NewCohortHandler builds a new handler.
func NewCohortHandler(service cohortService) *CohortHandler {
	return &CohortHandler{service: service}
}

// List godoc
// @Summary List cohorts
// @Tags Cohorts
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /cohorts [get]
func (h *CohortHandler) List(c *gin.Context) {
	cohorts, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cohorts)
}

// Active godoc
// @Summary Get the active cohort
// @Tags Cohorts
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /cohorts/active [get]
func (h *CohortHandler) Active(c *gin.Context) {
	cohort, err := h.service.GetActive(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cohort)
}

// Create godoc
// @Summary Create cohort
// @Tags Cohorts
// @Accept json
// @Produce json
// @Param payload body service.CreateCohortRequest true "Cohort payload"
// @Success 201 {object} response.Envelope
// @Router /cohorts [post]
func (h *CohortHandler) Create(c *gin.Context) {
	var req service.CreateCohortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid cohort payload"))
		return
	}
	cohort, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, cohort)
}

// Update godoc
// @Summary Update cohort
// @Tags Cohorts
// @Accept json
// @Produce json
// @Param id path string true "Cohort ID"
// @Param payload body service.UpdateCohortRequest true "Cohort payload"
// @Success 200 {object} response.Envelope
// @Router /cohorts/{id} [put]
func (h *CohortHandler) Update(c *gin.Context) {
	var req service.UpdateCohortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid cohort payload"))
		return
	}
	cohort, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cohort)
}

// Activate godoc
// @Summary Make a cohort the active one
// @Description Deactivates every other cohort in the same transaction
// @Tags Cohorts
// @Produce json
// @Param id path string true "Cohort ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /cohorts/{id}/activate [post]
func (h *CohortHandler) Activate(c *gin.Context) {
	cohort, err := h.service.Activate(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cohort)
}

// Delete godoc
// @Summary Delete cohort
// @Description Removes the cohort together with its participants
// @Tags Cohorts
// @Param id path string true "Cohort ID"
// @Success 204
// @Router /cohorts/{id} [delete]
func (h *CohortHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
