package uptime

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SnapshotStore is the single write path of the engine. InsertDailySnapshot
// must be a guarded insert on a (component, date) uniqueness constraint so
// a duplicate write is a no-op, not an error; that keeps the recorder
// idempotent across reruns, concurrent schedulers and process restarts.
type SnapshotStore interface {
	ListEnabledComponents(ctx context.Context) ([]ComponentMeta, error)
	HasEventBetween(ctx context.Context, componentID uuid.UUID, from, to time.Time) (bool, error)
	InsertDailySnapshot(ctx context.Context, componentID uuid.UUID, status Status, day time.Time, at time.Time) (bool, error)
}

// Recorder writes one synthetic status event per enabled component per day,
// so the reconstructor never meets a day with zero data points and history
// stays queryable without unbounded backward extrapolation.
type Recorder struct {
	store  SnapshotStore
	loc    *time.Location
	now    func() time.Time
	logger *zerolog.Logger
}

func NewRecorder(store SnapshotStore, loc *time.Location, logger *zerolog.Logger) *Recorder {
	if loc == nil {
		loc = time.UTC
	}
	return &Recorder{
		store:  store,
		loc:    loc,
		now:    time.Now,
		logger: logger,
	}
}

// LogDailySnapshot records today's status for every enabled component that
// has no event yet today, and returns how many snapshots were written.
// Zero is a normal outcome, not a failure.
func (r *Recorder) LogDailySnapshot(ctx context.Context) (int, error) {
	now := r.now().In(r.loc)
	dayStart := startOfDay(now)
	dayEnd := dayStart.AddDate(0, 0, 1)

	components, err := r.store.ListEnabledComponents(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, comp := range components {
		has, err := r.store.HasEventBetween(ctx, comp.ID, dayStart, dayEnd)
		if err != nil {
			return count, err
		}
		if has {
			continue
		}

		inserted, err := r.store.InsertDailySnapshot(ctx, comp.ID, comp.CurrentStatus, dayStart, now)
		if err != nil {
			return count, err
		}
		if inserted {
			count++
		}
	}

	r.logger.Info().
		Int("count", count).
		Int("components", len(components)).
		Str("day", dayStart.Format(dateLayout)).
		Msg("daily status snapshot recorded")

	return count, nil
}
