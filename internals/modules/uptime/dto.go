package uptime

import "time"

type UptimeResponse struct {
	ComponentID      string    `json:"component_id"`
	UptimePercentage float64   `json:"uptime_percentage"`
	PeriodStart      time.Time `json:"period_start"`
	PeriodEnd        time.Time `json:"period_end"`
	Mode             string    `json:"mode"`
}

type TimelineResponse struct {
	ComponentID string              `json:"component_id,omitempty"`
	Days        int                 `json:"days"`
	Timeline    []DailyStatusBucket `json:"timeline"`
}

type SnapshotResponse struct {
	Count int `json:"count"`
}
