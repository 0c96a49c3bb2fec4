package uptime

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("bad timestamp %q: %v", s, err)
	}
	return ts
}

func testMeta(createdAt time.Time, current Status) ComponentMeta {
	return ComponentMeta{
		ID:            uuid.New(),
		Name:          "api",
		CurrentStatus: current,
		Enabled:       true,
		CreatedAt:     createdAt,
	}
}

func event(at time.Time, from, to Status) StatusChangeEvent {
	return StatusChangeEvent{
		ID:         uuid.New(),
		OldStatus:  from,
		NewStatus:  to,
		OccurredAt: at,
	}
}

// assertCoverage checks the core reconstruction guarantee: contiguous,
// non-overlapping intervals covering [start, end) exactly.
func assertCoverage(t *testing.T, intervals []StatusInterval, start, end time.Time) {
	t.Helper()
	if len(intervals) == 0 {
		t.Fatalf("expected at least one interval")
	}
	if !intervals[0].Start.Equal(start) {
		t.Fatalf("first interval starts at %v, want %v", intervals[0].Start, start)
	}
	if !intervals[len(intervals)-1].End.Equal(end) {
		t.Fatalf("last interval ends at %v, want %v", intervals[len(intervals)-1].End, end)
	}
	for i := 1; i < len(intervals); i++ {
		if !intervals[i].Start.Equal(intervals[i-1].End) {
			t.Fatalf("gap between interval %d and %d: %v != %v", i-1, i, intervals[i-1].End, intervals[i].Start)
		}
	}
	for i, iv := range intervals {
		if !iv.End.After(iv.Start) {
			t.Fatalf("interval %d is empty or inverted: [%v, %v)", i, iv.Start, iv.End)
		}
	}
}

func TestReconstructNoEventsHoldsCurrentStatus(t *testing.T) {
	start := day(t, "2026-08-01T00:00:00Z")
	end := day(t, "2026-08-08T00:00:00Z")
	meta := testMeta(day(t, "2026-07-01T00:00:00Z"), StatusDegraded)

	got := Reconstruct(nil, meta, StatusOperational, start, end)

	assertCoverage(t, got, start, end)
	if len(got) != 1 || got[0].Status != StatusDegraded {
		t.Fatalf("expected single degraded interval, got %+v", got)
	}
}

func TestReconstructClipsToCreation(t *testing.T) {
	start := day(t, "2026-08-01T00:00:00Z")
	end := day(t, "2026-08-08T00:00:00Z")
	created := day(t, "2026-08-03T12:00:00Z")
	meta := testMeta(created, StatusOperational)

	got := Reconstruct(nil, meta, StatusOperational, start, end)

	assertCoverage(t, got, created, end)
}

func TestReconstructWindowEntirelyBeforeCreation(t *testing.T) {
	start := day(t, "2026-08-01T00:00:00Z")
	end := day(t, "2026-08-08T00:00:00Z")
	meta := testMeta(day(t, "2026-09-01T00:00:00Z"), StatusOperational)

	if got := Reconstruct(nil, meta, StatusOperational, start, end); got != nil {
		t.Fatalf("expected nil for pre-creation window, got %+v", got)
	}
}

func TestReconstructPreWindowEventSetsEnteringStatus(t *testing.T) {
	start := day(t, "2026-08-01T00:00:00Z")
	end := day(t, "2026-08-02T00:00:00Z")
	meta := testMeta(day(t, "2026-07-01T00:00:00Z"), StatusOperational)

	events := []StatusChangeEvent{
		event(day(t, "2026-07-20T00:00:00Z"), StatusOperational, StatusMajor),
		event(day(t, "2026-08-01T06:00:00Z"), StatusMajor, StatusOperational),
	}

	got := Reconstruct(events, meta, StatusOperational, start, end)

	assertCoverage(t, got, start, end)
	if len(got) != 2 {
		t.Fatalf("expected 2 intervals, got %d: %+v", len(got), got)
	}
	if got[0].Status != StatusMajor || got[1].Status != StatusOperational {
		t.Fatalf("unexpected statuses: %+v", got)
	}
	if got[0].Duration() != 6*time.Hour {
		t.Fatalf("expected 6h outage carried into window, got %v", got[0].Duration())
	}
}

func TestReconstructGenesisBeforeFirstEvent(t *testing.T) {
	start := day(t, "2026-08-01T00:00:00Z")
	end := day(t, "2026-08-02T00:00:00Z")
	meta := testMeta(day(t, "2026-07-01T00:00:00Z"), StatusMajor)

	// first recorded event is mid-window; genesis prevails before it even
	// though the component's current status says otherwise
	events := []StatusChangeEvent{
		event(day(t, "2026-08-01T12:00:00Z"), StatusOperational, StatusMajor),
	}

	got := Reconstruct(events, meta, StatusOperational, start, end)

	assertCoverage(t, got, start, end)
	if got[0].Status != StatusOperational {
		t.Fatalf("expected genesis status before first event, got %v", got[0].Status)
	}
}

func TestReconstructMergesEqualStatusSpans(t *testing.T) {
	start := day(t, "2026-08-01T00:00:00Z")
	end := day(t, "2026-08-03T00:00:00Z")
	meta := testMeta(day(t, "2026-07-01T00:00:00Z"), StatusOperational)

	// synthetic snapshot rows repeat the prevailing status and must not
	// split the span
	events := []StatusChangeEvent{
		event(day(t, "2026-08-01T08:00:00Z"), StatusOperational, StatusOperational),
		event(day(t, "2026-08-02T08:00:00Z"), StatusOperational, StatusOperational),
	}

	got := Reconstruct(events, meta, StatusOperational, start, end)

	if len(got) != 1 {
		t.Fatalf("expected one maximal interval, got %d: %+v", len(got), got)
	}
	assertCoverage(t, got, start, end)
}

func TestReconstructEventAtWindowBoundaries(t *testing.T) {
	start := day(t, "2026-08-01T00:00:00Z")
	end := day(t, "2026-08-02T00:00:00Z")
	meta := testMeta(day(t, "2026-07-01T00:00:00Z"), StatusOperational)

	events := []StatusChangeEvent{
		// exactly at windowStart: sets the entering status
		event(start, StatusOperational, StatusPartial),
		// exactly at windowEnd: excluded by the half-open convention
		event(end, StatusPartial, StatusMajor),
	}

	got := Reconstruct(events, meta, StatusOperational, start, end)

	assertCoverage(t, got, start, end)
	if len(got) != 1 || got[0].Status != StatusPartial {
		t.Fatalf("expected single partial_outage interval, got %+v", got)
	}
}

func TestReconstructDeterministic(t *testing.T) {
	start := day(t, "2026-08-01T00:00:00Z")
	end := day(t, "2026-08-05T00:00:00Z")
	meta := testMeta(day(t, "2026-07-01T00:00:00Z"), StatusOperational)

	events := []StatusChangeEvent{
		event(day(t, "2026-08-01T10:00:00Z"), StatusOperational, StatusDegraded),
		event(day(t, "2026-08-02T10:00:00Z"), StatusDegraded, StatusMajor),
		event(day(t, "2026-08-02T14:00:00Z"), StatusMajor, StatusOperational),
	}

	first := Reconstruct(events, meta, StatusOperational, start, end)
	second := Reconstruct(events, meta, StatusOperational, start, end)

	if len(first) != len(second) {
		t.Fatalf("non-deterministic reconstruction: %d vs %d intervals", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("interval %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
	assertCoverage(t, first, start, end)
}
