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

type adminService interface {
	List(ctx context.Context) ([]models.Admin, error)
	SetApproval(ctx context.Context, actor *models.Admin, targetID string, req service.ApprovalRequest) (*models.Admin, error)
}

// AdminHandler exposes admin account management.
type AdminHandler struct {
	service adminService
}

// NewAdminHandler builds a new handler.
func NewAdminHandler(service adminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// List godoc
// @Summary List admin accounts
// @Tags Admins
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admins [get]
func (h *AdminHandler) List(c *gin.Context) {
	admins, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, admins)
}

// SetApproval godoc
// @Summary Approve or revoke an admin account
// @Tags Admins
// @Accept json
// @Produce json
// @Param id path string true "Admin ID"
// @Param payload body service.ApprovalRequest true "Approval payload"
// @Success 200 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /admins/{id}/approval [patch]
func (h *AdminHandler) SetApproval(c *gin.Context) {
	var req service.ApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid approval payload"))
		return
	}
	admin, err := h.service.SetApproval(c.Request.Context(), adminFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, admin)
}

// Me godoc
// @Summary Current admin
// @Tags Admins
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /me [get]
func (h *AdminHandler) Me(c *gin.Context) {
	admin := adminFromContext(c)
	if admin == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.JSON(c, http.StatusOK, admin)
}
