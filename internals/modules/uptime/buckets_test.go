package uptime

import (
	"testing"
	"time"
)

func TestBucketizeOneBucketPerDay(t *testing.T) {
	start := day(t, "2026-08-01T00:00:00Z")
	end := day(t, "2026-08-08T00:00:00Z")
	intervals := []StatusInterval{
		{Status: StatusOperational, Start: start, End: end},
	}

	got := Bucketize(intervals, start, end, time.UTC)

	if len(got) != 7 {
		t.Fatalf("expected 7 buckets, got %d", len(got))
	}
	if got[0].Date != "2026-08-01" || got[6].Date != "2026-08-07" {
		t.Fatalf("unexpected date range: %s .. %s", got[0].Date, got[6].Date)
	}
	for _, b := range got {
		if b.Status != StatusOperational {
			t.Fatalf("day %s: expected operational, got %v", b.Date, b.Status)
		}
	}
}

func TestBucketizeWorstStatusWins(t *testing.T) {
	start := day(t, "2026-08-01T00:00:00Z")
	end := day(t, "2026-08-02T00:00:00Z")

	// a two-hour outage marks the whole day even though the weighted
	// percentage for the same day stays above 90
	intervals := []StatusInterval{
		{Status: StatusOperational, Start: start, End: day(t, "2026-08-01T10:00:00Z")},
		{Status: StatusMajor, Start: day(t, "2026-08-01T10:00:00Z"), End: day(t, "2026-08-01T12:00:00Z")},
		{Status: StatusOperational, Start: day(t, "2026-08-01T12:00:00Z"), End: end},
	}

	got := Bucketize(intervals, start, end, time.UTC)

	if len(got) != 1 || got[0].Status != StatusMajor {
		t.Fatalf("expected single major_outage bucket, got %+v", got)
	}
}

func TestBucketizeSeverityOrdering(t *testing.T) {
	cases := []struct {
		a, b, want Status
	}{
		{StatusOperational, StatusMaintenance, StatusMaintenance},
		{StatusMaintenance, StatusDegraded, StatusDegraded},
		{StatusDegraded, StatusPartial, StatusPartial},
		{StatusPartial, StatusMajor, StatusMajor},
		{StatusMajor, StatusOperational, StatusMajor},
	}
	for _, c := range cases {
		if got := WorstStatus(c.a, c.b); got != c.want {
			t.Fatalf("WorstStatus(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestBucketizeUncoveredDaysDefaultOperational(t *testing.T) {
	start := day(t, "2026-08-01T00:00:00Z")
	end := day(t, "2026-08-04T00:00:00Z")

	// intervals clipped to a component created on the 3rd: the first two
	// days have no data and report operational
	intervals := []StatusInterval{
		{Status: StatusDegraded, Start: day(t, "2026-08-03T00:00:00Z"), End: end},
	}

	got := Bucketize(intervals, start, end, time.UTC)

	if len(got) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(got))
	}
	if got[0].Status != StatusOperational || got[1].Status != StatusOperational {
		t.Fatalf("expected uncovered days operational, got %+v", got)
	}
	if got[2].Status != StatusDegraded {
		t.Fatalf("expected covered day degraded, got %+v", got[2])
	}
}

func TestBucketizeMidnightBoundary(t *testing.T) {
	start := day(t, "2026-08-01T00:00:00Z")
	end := day(t, "2026-08-03T00:00:00Z")

	// outage ends exactly at midnight; the half-open convention keeps the
	// second day clean
	intervals := []StatusInterval{
		{Status: StatusMajor, Start: start, End: day(t, "2026-08-02T00:00:00Z")},
		{Status: StatusOperational, Start: day(t, "2026-08-02T00:00:00Z"), End: end},
	}

	got := Bucketize(intervals, start, end, time.UTC)

	if len(got) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(got))
	}
	if got[0].Status != StatusMajor || got[1].Status != StatusOperational {
		t.Fatalf("midnight boundary leaked across days: %+v", got)
	}
}

func TestMergeDailyWorst(t *testing.T) {
	a := []DailyStatusBucket{
		{Date: "2026-08-01", Status: StatusOperational},
		{Date: "2026-08-02", Status: StatusMajor},
	}
	b := []DailyStatusBucket{
		{Date: "2026-08-01", Status: StatusDegraded},
		{Date: "2026-08-02", Status: StatusOperational},
		{Date: "2026-08-03", Status: StatusPartial},
	}

	got := MergeDailyWorst(a, b)

	want := []DailyStatusBucket{
		{Date: "2026-08-01", Status: StatusDegraded},
		{Date: "2026-08-02", Status: StatusMajor},
		{Date: "2026-08-03", Status: StatusPartial},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d buckets, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("bucket %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestMergeDailyWorstEmpty(t *testing.T) {
	if got := MergeDailyWorst(); got != nil {
		t.Fatalf("expected nil for no series, got %+v", got)
	}
}
