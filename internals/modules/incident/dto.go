package incident

import "time"

type OpenIncidentRequest struct {
	ComponentID string    `json:"component_id" validate:"required,uuid"`
	Title       string    `json:"title" validate:"required,min=3,max=200"`
	Impact      string    `json:"impact" validate:"required,oneof=minor major critical"`
	StartedAt   time.Time `json:"started_at"`
}

type IncidentResponse struct {
	ID          string     `json:"id"`
	ComponentID string     `json:"component_id"`
	Title       string     `json:"title"`
	Impact      string     `json:"impact"`
	StartedAt   time.Time  `json:"started_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}

type ImpactCountsResponse struct {
	Days   int          `json:"days"`
	Counts ImpactCounts `json:"counts"`
}

// MTTRSeconds is null when no incident resolved in the window; zero would
// read as a perfect resolution time.
type MTTRResponse struct {
	Days          int      `json:"days"`
	MTTRSeconds   *float64 `json:"mttr_seconds"`
	ResolvedCount int      `json:"resolved_count"`
}
