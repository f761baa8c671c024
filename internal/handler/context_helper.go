package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/kairos-api/internal/middleware"
	"github.com/noah-isme/kairos-api/internal/models"
	appErrors "github.com/noah-isme/kairos-api/pkg/errors"
)

func adminFromContext(c *gin.Context) *models.Admin {
	return middleware.CurrentAdmin(c)
}

// participantFilterFromQuery reads search, status and form=completed|pending for a cohort roster.
func participantFilterFromQuery(c *gin.Context, cohortID string) (models.ParticipantFilter, error) {
	filter := models.ParticipantFilter{
		CohortID: cohortID,
		Search:   strings.TrimSpace(c.Query("search")),
		Status:   models.ParticipantStatus(strings.TrimSpace(c.Query("status"))),
	}
	switch strings.ToLower(strings.TrimSpace(c.Query("form"))) {
	case "", "all":
	case "completed":
		completed := true
		filter.FormCompleted = &completed
	case "pending":
		pending := false
		filter.FormCompleted = &pending
	default:
		return filter, appErrors.Clone(appErrors.ErrValidation, "form must be completed or pending")
	}
	return filter, nil
}
