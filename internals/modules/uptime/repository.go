package uptime

import (
	"context"
	"time"

	"statusdeck/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Repository reads the status_change_events log and the component fields the
// engine needs, and owns the engine's only write path: the guarded daily
// snapshot insert.
type Repository struct {
	pool   *pgxpool.Pool
	logger *zerolog.Logger
}

func NewRepository(pool *pgxpool.Pool, logger *zerolog.Logger) *Repository {
	return &Repository{
		pool:   pool,
		logger: logger,
	}
}

var (
	_ EventStore    = (*Repository)(nil)
	_ SnapshotStore = (*Repository)(nil)
)

func (r *Repository) EventsThrough(ctx context.Context, componentID uuid.UUID, before time.Time) ([]StatusChangeEvent, error) {
	const op string = "repo.uptime.events_through"

	rows, err := r.pool.Query(ctx, `
		SELECT id, component_id, old_status, new_status, occurred_at, incident_id, synthetic
		FROM status_change_events
		WHERE component_id = $1 AND occurred_at < $2
		ORDER BY occurred_at ASC, id ASC`,
		utils.ToPgUUID(componentID), utils.ToPgTimestamptz(before))
	if err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}
	defer rows.Close()

	var events []StatusChangeEvent
	for rows.Next() {
		var (
			id, compID pgtype.UUID
			oldStatus  string
			newStatus  string
			occurredAt pgtype.Timestamptz
			incidentID pgtype.UUID
			synthetic  bool
		)
		if err := rows.Scan(&id, &compID, &oldStatus, &newStatus, &occurredAt, &incidentID, &synthetic); err != nil {
			return nil, utils.WrapRepoError(op, err, false, r.logger)
		}

		ev := StatusChangeEvent{
			ID:          utils.FromPgUUID(id),
			ComponentID: utils.FromPgUUID(compID),
			OldStatus:   Status(oldStatus),
			NewStatus:   Status(newStatus),
			OccurredAt:  utils.FromPgTimestamptz(occurredAt),
			Synthetic:   synthetic,
		}
		if incidentID.Valid {
			incID := utils.FromPgUUID(incidentID)
			ev.IncidentID = &incID
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}

	return events, nil
}

func (r *Repository) GetComponentMeta(ctx context.Context, componentID uuid.UUID) (ComponentMeta, error) {
	const op string = "repo.uptime.get_component_meta"

	var (
		id        pgtype.UUID
		name      string
		status    string
		enabled   bool
		createdAt pgtype.Timestamptz
	)
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, current_status, enabled, created_at
		FROM components
		WHERE id = $1`,
		utils.ToPgUUID(componentID)).Scan(&id, &name, &status, &enabled, &createdAt)
	if err != nil {
		return ComponentMeta{}, utils.WrapRepoError(op, err, true, r.logger)
	}

	return ComponentMeta{
		ID:            utils.FromPgUUID(id),
		Name:          name,
		CurrentStatus: Status(status),
		Enabled:       enabled,
		CreatedAt:     utils.FromPgTimestamptz(createdAt),
	}, nil
}

func (r *Repository) ListEnabledComponents(ctx context.Context) ([]ComponentMeta, error) {
	const op string = "repo.uptime.list_enabled_components"

	rows, err := r.pool.Query(ctx, `
		SELECT id, name, current_status, enabled, created_at
		FROM components
		WHERE enabled
		ORDER BY created_at ASC`)
	if err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}
	defer rows.Close()

	var metas []ComponentMeta
	for rows.Next() {
		var (
			id        pgtype.UUID
			name      string
			status    string
			enabled   bool
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&id, &name, &status, &enabled, &createdAt); err != nil {
			return nil, utils.WrapRepoError(op, err, false, r.logger)
		}
		metas = append(metas, ComponentMeta{
			ID:            utils.FromPgUUID(id),
			Name:          name,
			CurrentStatus: Status(status),
			Enabled:       enabled,
			CreatedAt:     utils.FromPgTimestamptz(createdAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}

	return metas, nil
}

func (r *Repository) HasEventBetween(ctx context.Context, componentID uuid.UUID, from, to time.Time) (bool, error) {
	const op string = "repo.uptime.has_event_between"

	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM status_change_events
			WHERE component_id = $1 AND occurred_at >= $2 AND occurred_at < $3
		)`,
		utils.ToPgUUID(componentID), utils.ToPgTimestamptz(from), utils.ToPgTimestamptz(to)).Scan(&exists)
	if err != nil {
		return false, utils.WrapRepoError(op, err, false, r.logger)
	}

	return exists, nil
}

// InsertDailySnapshot writes the synthetic marker event for one component
// and day. The unique index on (component_id, snapshot_date) turns a
// concurrent duplicate into a clean no-op.
func (r *Repository) InsertDailySnapshot(ctx context.Context, componentID uuid.UUID, status Status, day time.Time, at time.Time) (bool, error) {
	const op string = "repo.uptime.insert_daily_snapshot"

	tag, err := r.pool.Exec(ctx, `
		INSERT INTO status_change_events
			(id, component_id, old_status, new_status, occurred_at, synthetic, snapshot_date)
		VALUES ($1, $2, $3, $3, $4, TRUE, $5)
		ON CONFLICT (component_id, snapshot_date) DO NOTHING`,
		utils.ToPgUUID(uuid.New()), utils.ToPgUUID(componentID),
		string(status), utils.ToPgTimestamptz(at), utils.ToPgDate(day))
	if err != nil {
		return false, utils.WrapRepoError(op, err, false, r.logger)
	}

	return tag.RowsAffected() > 0, nil
}
