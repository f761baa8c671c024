package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/kairos-api/internal/models"
	appErrors "github.com/noah-isme/kairos-api/pkg/errors"
)

type adminRepository interface {
	FindByID(ctx context.Context, id string) (*models.Admin, error)
	List(ctx context.Context) ([]models.Admin, error)
	UpdateApproval(ctx context.Context, id string, approved bool) error
}

// ApprovalRequest toggles an admin's approval.
type ApprovalRequest struct {
	IsApproved *bool `json:"is_approved" validate:"required"`
}

// AdminService manages admin accounts on behalf of the main admin.
type AdminService struct {
	repo      adminRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAdminService constructs an AdminService.
func NewAdminService(repo adminRepository, validate *validator.Validate, logger *zap.Logger) *AdminService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{repo: repo, validator: validate, logger: logger}
}

// List returns every admin account.
func (s *AdminService) List(ctx context.Context) ([]models.Admin, error) {
	admins, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list admins")
	}
	return admins, nil
}

// SetApproval approves or revokes an admin. Main admins and the caller's own account cannot be changed.
func (s *AdminService) SetApproval(ctx context.Context, actor *models.Admin, targetID string, req ApprovalRequest) (*models.Admin, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid approval payload")
	}
	if actor != nil && actor.ID == targetID {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "cannot change your own approval")
	}
	if !validID(targetID) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "admin not found")
	}

	target, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "admin not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load admin")
	}
	if target.IsMainAdmin {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "cannot change the approval of a main admin")
	}

	if err := s.repo.UpdateApproval(ctx, targetID, *req.IsApproved); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update admin approval")
	}
	target.IsApproved = *req.IsApproved
	s.logger.Info("admin approval changed", zap.String("admin_id", targetID), zap.Bool("approved", target.IsApproved))
	return target, nil
}
