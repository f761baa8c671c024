package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/kairos-api/internal/dto"
	"github.com/noah-isme/kairos-api/internal/middleware"
	"github.com/noah-isme/kairos-api/pkg/response"
)

type statsService interface {
	Public(ctx context.Context) (*dto.PublicCohortStats, bool, error)
	ForCohort(ctx context.Context, cohortID string) (*dto.CohortStats, error)
}

// StatsHandler serves the landing page widget and the admin counters.
type StatsHandler struct {
	service statsService
}

// NewStatsHandler builds a new handler.
func NewStatsHandler(service statsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// Public godoc
// @Summary Active cohort capacity
// @Description Unauthenticated capacity summary for the landing page
// @Tags Stats
// @Produce json
// @Success 200 {object} dto.PublicCohortStats
// @Router /public/cohort-stats [get]
func (h *StatsHandler) Public(c *gin.Context) {
	stats, hit, err := h.service.Public(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if hit {
		c.Header("X-Cache", "HIT")
	} else {
		c.Header("X-Cache", "MISS")
	}
	c.JSON(http.StatusOK, stats)
}

// Cohort godoc
// @Summary Cohort counters
// @Tags Stats
// @Produce json
// @Param id path string true "Cohort ID"
// @Success 200 {object} response.Envelope
// @Router /cohorts/{id}/stats [get]
func (h *StatsHandler) Cohort(c *gin.Context) {
	stats, err := h.service.ForCohort(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, middleware.ExtractMeta(c))
}
