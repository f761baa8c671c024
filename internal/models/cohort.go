package models

import "time"

// DefaultCohortCapacity is used when a cohort is created without an explicit capacity.
const DefaultCohortCapacity = 30

// Cohort is one registration cycle of the programme. At most one cohort is active.
type Cohort struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	Capacity  int       `db:"capacity" json:"capacity"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// CohortCounts aggregates participant counters for a cohort.
type CohortCounts struct {
	Confirmed         int `db:"confirmed" json:"confirmed"`
	ExpressedInterest int `db:"expressed_interest" json:"expressed_interest"`
	Denied            int `db:"denied" json:"denied"`
	FormCompleted     int `db:"form_completed" json:"form_completed"`
	Total             int `db:"total" json:"total"`
}
