package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"github.com/noah-isme/kairos-api/internal/models"
)

const adminColumns = `id, email, name, is_approved, is_main_admin, created_at`

// AdminRepository manages admin accounts and their audit trail.
type AdminRepository struct {
	db *sqlx.DB
}

// NewAdminRepository constructs an AdminRepository.
func NewAdminRepository(db *sqlx.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// FindByEmail fetches an admin by email, case-insensitively.
func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE LOWER(email) = $1`
	var admin models.Admin
	if err := r.db.GetContext(ctx, &admin, query, strings.ToLower(strings.TrimSpace(email))); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find admin by email: %w", err)
	}
	return &admin, nil
}

// FindByID fetches an admin by ID.
func (r *AdminRepository) FindByID(ctx context.Context, id string) (*models.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE id = $1`
	var admin models.Admin
	if err := r.db.GetContext(ctx, &admin, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return &admin, nil
}

// List returns every admin, newest first.
func (r *AdminRepository) List(ctx context.Context) ([]models.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins ORDER BY created_at DESC`
	var admins []models.Admin
	if err := r.db.SelectContext(ctx, &admins, query); err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	return admins, nil
}

// Create inserts an admin account.
func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	if admin.ID == "" {
		admin.ID = uuid.NewString()
	}
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = time.Now().UTC()
	}
	admin.Email = strings.ToLower(strings.TrimSpace(admin.Email))
	const query = `INSERT INTO admins (id, email, name, is_approved, is_main_admin, created_at)
        VALUES (:id, :email, :name, :is_approved, :is_main_admin, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, admin); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	return nil
}

// UpdateApproval sets the approval flag of an admin.
func (r *AdminRepository) UpdateApproval(ctx context.Context, id string, approved bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE admins SET is_approved = $2 WHERE id = $1`, id, approved)
	if err != nil {
		return fmt.Errorf("update admin approval: %w", err)
	}
	return expectAffected(res)
}

// CreateAuditLog stores an audit log entry.
func (r *AdminRepository) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	if len(log.Details) == 0 {
		log.Details = types.JSONText("{}")
	}
	const query = `INSERT INTO audit_logs (id, admin_id, action, resource, resource_id, details, ip_address, user_agent, created_at)
        VALUES (:id, :admin_id, :action, :resource, :resource_id, :details, :ip_address, :user_agent, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, log); err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}
