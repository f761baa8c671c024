package dto

import "github.com/noah-isme/kairos-api/internal/models"

// PublicCohortStats is the landing page capacity widget payload.
type PublicCohortStats struct {
	Cohort         *models.Cohort `json:"cohort"`
	ConfirmedCount int            `json:"confirmedCount"`
	Capacity       int            `json:"capacity"`
	IsFull         bool           `json:"isFull"`
}

// CohortStats powers the admin dashboard counters for one cohort.
type CohortStats struct {
	CohortID          string `json:"cohort_id"`
	Capacity          int    `json:"capacity"`
	Confirmed         int    `json:"confirmed"`
	ExpressedInterest int    `json:"expressed_interest"`
	Denied            int    `json:"denied"`
	FormCompleted     int    `json:"form_completed"`
	Total             int    `json:"total"`
	OccupancyPercent  int    `json:"occupancy_percent"`
}
