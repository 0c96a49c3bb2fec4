package incident

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func resolvedIncident(impact Impact, startedAt time.Time, ttr time.Duration) Incident {
	resolved := startedAt.Add(ttr)
	return Incident{
		ID:         uuid.New(),
		Impact:     impact,
		StartedAt:  startedAt,
		ResolvedAt: &resolved,
	}
}

func TestCountByImpact(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	incidents := []Incident{
		resolvedIncident(ImpactMinor, start, time.Hour),
		resolvedIncident(ImpactMajor, start, 2*time.Hour),
		resolvedIncident(ImpactMajor, start, 3*time.Hour),
		{ID: uuid.New(), Impact: ImpactCritical, StartedAt: start}, // still open
	}

	counts := CountByImpact(incidents)

	if counts.Minor != 1 || counts.Major != 2 || counts.Critical != 1 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
}

func TestCountByImpactEmpty(t *testing.T) {
	if counts := CountByImpact(nil); counts != (ImpactCounts{}) {
		t.Fatalf("expected zero counts, got %+v", counts)
	}
}

func TestMeanTimeToResolution(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	incidents := []Incident{
		resolvedIncident(ImpactMajor, start, 24*time.Hour),
		resolvedIncident(ImpactMinor, start, 72*time.Hour),
	}

	report := MeanTimeToResolution(incidents)

	if !report.HasData {
		t.Fatalf("expected HasData with resolved incidents")
	}
	if report.ResolvedCount != 2 {
		t.Fatalf("expected 2 resolved, got %d", report.ResolvedCount)
	}
	if report.Mean != 48*time.Hour {
		t.Fatalf("expected 48h mean, got %v", report.Mean)
	}
}

func TestMeanTimeToResolutionSkipsOpen(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	incidents := []Incident{
		resolvedIncident(ImpactMajor, start, 10*time.Hour),
		{ID: uuid.New(), Impact: ImpactCritical, StartedAt: start},
	}

	report := MeanTimeToResolution(incidents)

	if report.ResolvedCount != 1 || report.Mean != 10*time.Hour {
		t.Fatalf("open incident must not skew the mean: %+v", report)
	}
}

func TestMeanTimeToResolutionNoData(t *testing.T) {
	open := []Incident{
		{ID: uuid.New(), Impact: ImpactMajor, StartedAt: time.Now()},
	}

	for _, incidents := range [][]Incident{nil, open} {
		report := MeanTimeToResolution(incidents)
		if report.HasData {
			t.Fatalf("expected no data, got %+v", report)
		}
		if report.Mean != 0 || report.ResolvedCount != 0 {
			t.Fatalf("no-data report must be zero-valued, got %+v", report)
		}
	}
}
