package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/kairos-api/internal/dto"
	"github.com/noah-isme/kairos-api/internal/middleware"
	"github.com/noah-isme/kairos-api/internal/models"
	appErrors "github.com/noah-isme/kairos-api/pkg/errors"
	"github.com/noah-isme/kairos-api/pkg/response"
)

type sessionService interface {
	EnsureAdmin(ctx context.Context, claims *models.AuthClaims) (*models.Admin, bool, error)
}

// AuthHandler registers provider-authenticated identities as admins.
type AuthHandler struct {
	service sessionService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc sessionService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Session godoc
// @Summary Register the signed-in identity
// @Description The first sign-in creates a pending admin account awaiting approval
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/session [post]
func (h *AuthHandler) Session(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	admin, created, err := h.service.EnsureAdmin(c.Request.Context(), claims)
	if err != nil {
		response.Error(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.JSON(c, status, dto.SessionResponse{Admin: admin, Approved: admin.IsApproved, Created: created})
}
