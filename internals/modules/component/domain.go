package component

import (
	"time"

	"statusdeck/internals/modules/uptime"

	"github.com/google/uuid"
)

type Component struct {
	ID            uuid.UUID
	Name          string
	Description   string
	CurrentStatus uptime.Status
	Enabled       bool
	CreatedAt     time.Time
}

type CreateComponentCmd struct {
	Name        string
	Description string
}

type ChangeStatusCmd struct {
	ComponentID uuid.UUID
	NewStatus   uptime.Status
	IncidentID  *uuid.UUID
}

// StatusChangedMessage is the fanout contract for the notification
// collaborator; delivery itself lives outside this service.
type StatusChangedMessage struct {
	ComponentID string    `json:"component_id"`
	Name        string    `json:"name"`
	OldStatus   string    `json:"old_status"`
	NewStatus   string    `json:"new_status"`
	OccurredAt  time.Time `json:"occurred_at"`
	IncidentID  *string   `json:"incident_id,omitempty"`
}
