package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// Audit actions recorded for admin mutations.
const (
	AuditActionCohortCreate      = "COHORT_CREATE"
	AuditActionCohortUpdate      = "COHORT_UPDATE"
	AuditActionCohortDelete      = "COHORT_DELETE"
	AuditActionCohortActivate    = "COHORT_ACTIVATE"
	AuditActionParticipantCreate = "PARTICIPANT_CREATE"
	AuditActionParticipantUpdate = "PARTICIPANT_UPDATE"
	AuditActionParticipantDelete = "PARTICIPANT_DELETE"
	AuditActionAdminApproval     = "ADMIN_APPROVAL"
)

// AuditLog represents an audit trail record.
type AuditLog struct {
	ID         string         `db:"id" json:"id"`
	AdminID    *string        `db:"admin_id" json:"admin_id,omitempty"`
	Action     string         `db:"action" json:"action"`
	Resource   string         `db:"resource" json:"resource"`
	ResourceID *string        `db:"resource_id" json:"resource_id,omitempty"`
	Details    types.JSONText `db:"details" json:"details,omitempty"`
	IPAddress  string         `db:"ip_address" json:"ip_address"`
	UserAgent  string         `db:"user_agent" json:"user_agent"`
	CreatedAt  time.Time      `db:"created_at" json:"created_at"`
}
