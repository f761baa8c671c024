package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ParticipantStatus tracks where a registrant is in the selection process.
type ParticipantStatus string

const (
	ParticipantStatusExpressedInterest ParticipantStatus = "expressed_interest"
	ParticipantStatusConfirmed         ParticipantStatus = "confirmed"
	ParticipantStatusDenied            ParticipantStatus = "denied"
)

// Valid reports whether the status is one of the known values.
func (s ParticipantStatus) Valid() bool {
	switch s {
	case ParticipantStatusExpressedInterest, ParticipantStatusConfirmed, ParticipantStatusDenied:
		return true
	}
	return false
}

// Label returns the Romanian label shown to administrators.
func (s ParticipantStatus) Label() string {
	switch s {
	case ParticipantStatusConfirmed:
		return "Confirmat"
	case ParticipantStatusDenied:
		return "Respins"
	default:
		return "Interes exprimat"
	}
}

// Participant is a registrant attached to exactly one cohort.
type Participant struct {
	ID            string            `db:"id" json:"id"`
	CohortID      string            `db:"cohort_id" json:"cohort_id"`
	Name          string            `db:"name" json:"name"`
	Contact       string            `db:"contact" json:"contact"`
	Status        ParticipantStatus `db:"status" json:"status"`
	FormCompleted bool              `db:"form_completed" json:"form_completed"`
	TallyData     *TallyData        `db:"tally_data" json:"tally_data"`
	AddedBy       *string           `db:"added_by" json:"added_by"`
	CreatedAt     time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time         `db:"updated_at" json:"updated_at"`
}

// ParticipantFilter narrows participant listings for the admin dashboard.
type ParticipantFilter struct {
	CohortID      string
	Search        string
	Status        ParticipantStatus
	FormCompleted *bool
}

// MatchCandidate is the reduced view of an open participant offered to the matcher.
type MatchCandidate struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// TallyData is the extended registration form answer set, stored as JSONB.
type TallyData struct {
	Name           string `json:"name"`
	Age            string `json:"age"`
	Gender         string `json:"gender"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	Passport       string `json:"passport"`
	PlaneTicketURL string `json:"plane_ticket_url,omitempty"`
	Church         string `json:"church"`
	Country        string `json:"country"`
	PreviousKairos bool   `json:"previous_kairos"`
	Allergies      string `json:"allergies,omitempty"`
	OtherInfo      string `json:"other_info,omitempty"`
	SubmittedAt    string `json:"submitted_at"`
}

// Value marshals the form answers to JSON for persistence.
func (t TallyData) Value() (driver.Value, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("marshal tally data: %w", err)
	}
	return data, nil
}

// Scan unmarshals a JSONB column into the form answers.
func (t *TallyData) Scan(value interface{}) error {
	if value == nil {
		*t = TallyData{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for TallyData", value)
	}
	if len(data) == 0 {
		*t = TallyData{}
		return nil
	}
	if err := json.Unmarshal(data, t); err != nil {
		return fmt.Errorf("unmarshal tally data: %w", err)
	}
	return nil
}
