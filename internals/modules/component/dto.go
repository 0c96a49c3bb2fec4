package component

import "time"

type CreateComponentRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"max=500"`
}

type ChangeStatusRequest struct {
	Status     string `json:"status" validate:"required"`
	IncidentID string `json:"incident_id" validate:"omitempty,uuid"`
}

type ComponentResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	CurrentStatus string    `json:"current_status"`
	Enabled       bool      `json:"enabled"`
	CreatedAt     time.Time `json:"created_at"`
}
