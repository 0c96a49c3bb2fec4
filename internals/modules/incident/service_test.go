package incident

import (
	"context"
	"errors"
	"testing"
	"time"

	"statusdeck/pkg/apperror"

	"github.com/google/uuid"
)

type fakeStore struct {
	incidents map[uuid.UUID]Incident
}

func newFakeStore() *fakeStore {
	return &fakeStore{incidents: make(map[uuid.UUID]Incident)}
}

func (f *fakeStore) Create(_ context.Context, inc Incident) error {
	f.incidents[inc.ID] = inc
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, incidentID uuid.UUID) (Incident, error) {
	inc, ok := f.incidents[incidentID]
	if !ok {
		return Incident{}, &apperror.Error{Kind: apperror.NotFound, Op: "repo.fake.get_by_id"}
	}
	return inc, nil
}

func (f *fakeStore) Resolve(_ context.Context, incidentID uuid.UUID, at time.Time) (int64, error) {
	inc, ok := f.incidents[incidentID]
	if !ok || inc.ResolvedAt != nil {
		return 0, nil
	}
	inc.ResolvedAt = &at
	f.incidents[incidentID] = inc
	return 1, nil
}

func (f *fakeStore) ListStartedBetween(_ context.Context, from, to time.Time) ([]Incident, error) {
	var out []Incident
	for _, inc := range f.incidents {
		if !inc.StartedAt.Before(from) && inc.StartedAt.Before(to) {
			out = append(out, inc)
		}
	}
	return out, nil
}

func (f *fakeStore) ListResolvedBetween(_ context.Context, from, to time.Time) ([]Incident, error) {
	var out []Incident
	for _, inc := range f.incidents {
		if inc.ResolvedAt != nil && !inc.ResolvedAt.Before(from) && inc.ResolvedAt.Before(to) {
			out = append(out, inc)
		}
	}
	return out, nil
}

func newTestIncidentService(store Store) *Service {
	svc := NewService(store, time.UTC, 366)
	svc.now = func() time.Time { return time.Date(2026, 8, 20, 15, 0, 0, 0, time.UTC) }
	return svc
}

func TestOpenDefaultsStartedAt(t *testing.T) {
	store := newFakeStore()
	svc := newTestIncidentService(store)

	id, err := svc.Open(context.Background(), OpenIncidentCmd{
		ComponentID: uuid.New(),
		Title:       "elevated error rates",
		Impact:      ImpactMajor,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	inc := store.incidents[id]
	if !inc.StartedAt.Equal(time.Date(2026, 8, 20, 15, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected started_at defaulted to now, got %v", inc.StartedAt)
	}
}

func TestOpenRejectsUnknownImpact(t *testing.T) {
	svc := newTestIncidentService(newFakeStore())

	_, err := svc.Open(context.Background(), OpenIncidentCmd{
		ComponentID: uuid.New(),
		Title:       "x",
		Impact:      Impact("catastrophic"),
	})

	var appErr *apperror.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperror.InvalidInput {
		t.Fatalf("expected InvalidInput, got %v", err)
	}
}

func TestResolveIsGuardedAgainstDoubleResolution(t *testing.T) {
	store := newFakeStore()
	svc := newTestIncidentService(store)

	id, err := svc.Open(context.Background(), OpenIncidentCmd{
		ComponentID: uuid.New(),
		Title:       "db connection pool exhausted",
		Impact:      ImpactCritical,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resolved, err := svc.Resolve(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resolved.Resolved() {
		t.Fatalf("expected incident resolved")
	}

	_, err = svc.Resolve(context.Background(), id)
	var appErr *apperror.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperror.Conflict {
		t.Fatalf("expected Conflict on second resolve, got %v", err)
	}
}

func TestResolveUnknownIncident(t *testing.T) {
	svc := newTestIncidentService(newFakeStore())

	_, err := svc.Resolve(context.Background(), uuid.New())
	var appErr *apperror.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperror.NotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestCountsByImpactWindowsByStart(t *testing.T) {
	store := newFakeStore()
	svc := newTestIncidentService(store)

	inWindow := Incident{
		ID:        uuid.New(),
		Impact:    ImpactMajor,
		StartedAt: time.Date(2026, 8, 18, 0, 0, 0, 0, time.UTC),
	}
	outOfWindow := Incident{
		ID:        uuid.New(),
		Impact:    ImpactMinor,
		StartedAt: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	store.incidents[inWindow.ID] = inWindow
	store.incidents[outOfWindow.ID] = outOfWindow

	counts, err := svc.CountsByImpact(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counts.Major != 1 || counts.Minor != 0 || counts.Critical != 0 {
		t.Fatalf("expected only the in-window incident counted, got %+v", counts)
	}
}

func TestMTTRWindowsByResolution(t *testing.T) {
	store := newFakeStore()
	svc := newTestIncidentService(store)

	// started well outside the window but resolved inside it: counts
	started := time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC)
	resolved := started.Add(48 * time.Hour)
	inc := Incident{
		ID:         uuid.New(),
		Impact:     ImpactMajor,
		StartedAt:  started,
		ResolvedAt: &resolved,
	}
	store.incidents[inc.ID] = inc

	report, err := svc.MTTR(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.HasData || report.Mean != 48*time.Hour || report.ResolvedCount != 1 {
		t.Fatalf("unexpected MTTR report: %+v", report)
	}
}

func TestMTTRNoResolvedIncidents(t *testing.T) {
	svc := newTestIncidentService(newFakeStore())

	report, err := svc.MTTR(context.Background(), 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.HasData {
		t.Fatalf("expected no-data report, got %+v", report)
	}
}

func TestWindowValidation(t *testing.T) {
	svc := newTestIncidentService(newFakeStore())

	for _, days := range []int{0, -5, 367} {
		_, err := svc.CountsByImpact(context.Background(), days)
		var appErr *apperror.Error
		if !errors.As(err, &appErr) || appErr.Kind != apperror.InvalidInput {
			t.Fatalf("days=%d: expected InvalidInput, got %v", days, err)
		}
	}
}
