package uptime

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type snapshotKey struct {
	componentID uuid.UUID
	day         string
}

type fakeSnapshotStore struct {
	components []ComponentMeta
	events     map[uuid.UUID][]time.Time
	snapshots  map[snapshotKey]Status
}

func newFakeSnapshotStore() *fakeSnapshotStore {
	return &fakeSnapshotStore{
		events:    make(map[uuid.UUID][]time.Time),
		snapshots: make(map[snapshotKey]Status),
	}
}

func (f *fakeSnapshotStore) ListEnabledComponents(_ context.Context) ([]ComponentMeta, error) {
	var out []ComponentMeta
	for _, c := range f.components {
		if c.Enabled {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeSnapshotStore) HasEventBetween(_ context.Context, componentID uuid.UUID, from, to time.Time) (bool, error) {
	for _, at := range f.events[componentID] {
		if !at.Before(from) && at.Before(to) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSnapshotStore) InsertDailySnapshot(_ context.Context, componentID uuid.UUID, status Status, dayStart time.Time, at time.Time) (bool, error) {
	key := snapshotKey{componentID: componentID, day: dayStart.Format(dateLayout)}
	if _, exists := f.snapshots[key]; exists {
		// mirrors the guarded insert: duplicate writes are silent no-ops
		return false, nil
	}
	f.snapshots[key] = status
	f.events[componentID] = append(f.events[componentID], at)
	return true, nil
}

func newTestRecorder(store SnapshotStore) *Recorder {
	nop := zerolog.Nop()
	r := NewRecorder(store, time.UTC, &nop)
	r.now = func() time.Time { return time.Date(2026, 8, 20, 15, 0, 0, 0, time.UTC) }
	return r
}

func TestLogDailySnapshotWritesOnePerComponent(t *testing.T) {
	store := newFakeSnapshotStore()
	store.components = []ComponentMeta{
		{ID: uuid.New(), CurrentStatus: StatusOperational, Enabled: true},
		{ID: uuid.New(), CurrentStatus: StatusDegraded, Enabled: true},
		{ID: uuid.New(), CurrentStatus: StatusOperational, Enabled: false},
	}

	count, err := newTestRecorder(store).LogDailySnapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 snapshots (disabled component skipped), got %d", count)
	}

	key := snapshotKey{componentID: store.components[1].ID, day: "2026-08-20"}
	if got := store.snapshots[key]; got != StatusDegraded {
		t.Fatalf("snapshot must carry the component's current status, got %v", got)
	}
}

func TestLogDailySnapshotIdempotent(t *testing.T) {
	store := newFakeSnapshotStore()
	store.components = []ComponentMeta{
		{ID: uuid.New(), CurrentStatus: StatusOperational, Enabled: true},
	}
	recorder := newTestRecorder(store)

	first, err := recorder.LogDailySnapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != 1 {
		t.Fatalf("expected 1 snapshot on first run, got %d", first)
	}

	// rerunning the same day writes nothing new
	second, err := recorder.LogDailySnapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second != 0 {
		t.Fatalf("expected 0 snapshots on rerun, got %d", second)
	}
	if len(store.snapshots) != 1 {
		t.Fatalf("expected exactly one stored snapshot, got %d", len(store.snapshots))
	}
}

func TestLogDailySnapshotSkipsDaysWithRealEvents(t *testing.T) {
	store := newFakeSnapshotStore()
	id := uuid.New()
	store.components = []ComponentMeta{
		{ID: id, CurrentStatus: StatusOperational, Enabled: true},
	}
	// a real status change already happened today
	store.events[id] = []time.Time{time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC)}

	count, err := newTestRecorder(store).LogDailySnapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no snapshot when the day already has an event, got %d", count)
	}
}

func TestLogDailySnapshotLosesInsertRace(t *testing.T) {
	store := newFakeSnapshotStore()
	id := uuid.New()
	store.components = []ComponentMeta{
		{ID: id, CurrentStatus: StatusOperational, Enabled: true},
	}
	// another scheduler instance already wrote today's row, but its event
	// is not visible to our HasEventBetween fake
	store.snapshots[snapshotKey{componentID: id, day: "2026-08-20"}] = StatusOperational

	count, err := newTestRecorder(store).LogDailySnapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 0 {
		t.Fatalf("losing the insert race must not count as a write, got %d", count)
	}
}
