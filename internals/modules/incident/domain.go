package incident

import (
	"time"

	"github.com/google/uuid"
)

type Impact string

const (
	ImpactMinor    Impact = "minor"
	ImpactMajor    Impact = "major"
	ImpactCritical Impact = "critical"
)

func (i Impact) Valid() bool {
	switch i {
	case ImpactMinor, ImpactMajor, ImpactCritical:
		return true
	}
	return false
}

type Incident struct {
	ID          uuid.UUID
	ComponentID uuid.UUID
	Title       string
	Impact      Impact
	StartedAt   time.Time
	ResolvedAt  *time.Time
	CreatedAt   time.Time
}

func (i Incident) Resolved() bool {
	return i.ResolvedAt != nil
}

type OpenIncidentCmd struct {
	ComponentID uuid.UUID
	Title       string
	Impact      Impact
	StartedAt   time.Time
}
