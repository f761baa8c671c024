package models

import "time"

// SystemMetrics is a lightweight snapshot of process counters for the admin dashboard.
type SystemMetrics struct {
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	DBQueries                uint64    `json:"db_queries"`
	AverageDBQueryMs         float64   `json:"average_db_query_ms"`
	SubmissionsMatched       uint64    `json:"submissions_matched"`
	SubmissionsCreated       uint64    `json:"submissions_created"`
	SubmissionsFailed        uint64    `json:"submissions_failed"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
