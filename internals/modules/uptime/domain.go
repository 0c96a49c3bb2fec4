package uptime

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusOperational Status = "operational"
	StatusDegraded    Status = "degraded_performance"
	StatusPartial     Status = "partial_outage"
	StatusMajor       Status = "major_outage"
	StatusMaintenance Status = "under_maintenance"
)

// severityRank orders statuses for worst-status-wins bucketing.
// Higher rank means a worse day.
var severityRank = map[Status]int{
	StatusOperational: 0,
	StatusMaintenance: 1,
	StatusDegraded:    2,
	StatusPartial:     3,
	StatusMajor:       4,
}

func (s Status) Valid() bool {
	_, ok := severityRank[s]
	return ok
}

// WorstStatus picks the more severe of two statuses.
func WorstStatus(a, b Status) Status {
	if severityRank[b] > severityRank[a] {
		return b
	}
	return a
}

// StatusChangeEvent is one append-only row of the component event log.
// Synthetic rows are written by the daily snapshot recorder so that every
// calendar day carries at least one data point.
type StatusChangeEvent struct {
	ID          uuid.UUID
	ComponentID uuid.UUID
	OldStatus   Status
	NewStatus   Status
	OccurredAt  time.Time
	IncidentID  *uuid.UUID
	Synthetic   bool
}

// StatusInterval is a derived, half-open [Start, End) span during which a
// component's status did not change. For one component and window the
// reconstructed intervals are contiguous, non-overlapping and cover the
// clipped window exactly.
type StatusInterval struct {
	ComponentID uuid.UUID
	Status      Status
	Start       time.Time
	End         time.Time
}

func (iv StatusInterval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// DailyStatusBucket is one calendar day of a component timeline, dated in
// the reporting timezone.
type DailyStatusBucket struct {
	Date   string `json:"date"` // YYYY-MM-DD
	Status Status `json:"status"`
}

type CalculationMode string

const (
	ModeWeighted CalculationMode = "weighted"
	ModeBinary   CalculationMode = "binary"
)

// WeightPolicy is passed into every computation explicitly; nothing in the
// engine reads ambient policy state, so concurrent calls with different
// policies are safe.
type WeightPolicy struct {
	Weights               map[Status]float64
	Mode                  CalculationMode
	MaintenanceAsDowntime bool
}

func DefaultWeights() map[Status]float64 {
	return map[Status]float64{
		StatusOperational: 1.0,
		StatusDegraded:    0.75,
		StatusPartial:     0.25,
		StatusMajor:       0.0,
		StatusMaintenance: 1.0,
	}
}

func DefaultPolicy() WeightPolicy {
	return WeightPolicy{
		Weights: DefaultWeights(),
		Mode:    ModeWeighted,
	}
}

// weightFor resolves the uptime credit of a status under this policy.
func (p WeightPolicy) weightFor(s Status) float64 {
	if p.Mode == ModeBinary {
		// binary mode gives no partial credit, maintenance included
		if s == StatusOperational {
			return 1.0
		}
		return 0.0
	}

	if s == StatusMaintenance && p.MaintenanceAsDowntime {
		return 0.0
	}

	w, ok := p.Weights[s]
	if !ok {
		return 0.0
	}
	return w
}

// ComponentMeta is the slice of a component record the engine needs:
// creation time bounds the reconstructable window, current status closes
// the final interval, enabled gates snapshots and rollups.
type ComponentMeta struct {
	ID            uuid.UUID
	Name          string
	CurrentStatus Status
	Enabled       bool
	CreatedAt     time.Time
}
