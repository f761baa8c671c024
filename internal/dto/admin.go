package dto

import "github.com/noah-isme/kairos-api/internal/models"

// SessionResponse describes the caller after sign-in.
type SessionResponse struct {
	Admin    *models.Admin `json:"admin"`
	Approved bool          `json:"approved"`
	Created  bool          `json:"created"`
}

