package component

import (
	"context"

	"statusdeck/internals/modules/uptime"
	"statusdeck/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

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

var _ Store = (*Repository)(nil)

func (r *Repository) Create(ctx context.Context, comp Component) error {
	const op string = "repo.component.create"

	_, err := r.pool.Exec(ctx, `
		INSERT INTO components (id, name, description, current_status, enabled, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		utils.ToPgUUID(comp.ID), comp.Name, utils.ToPgText(comp.Description),
		string(comp.CurrentStatus), comp.Enabled, utils.ToPgTimestamptz(comp.CreatedAt))
	if err != nil {
		return utils.WrapRepoError(op, err, false, r.logger)
	}

	return nil
}

func (r *Repository) GetByID(ctx context.Context, componentID uuid.UUID) (Component, error) {
	const op string = "repo.component.get_by_id"

	row := r.pool.QueryRow(ctx, `
		SELECT id, name, description, current_status, enabled, created_at
		FROM components
		WHERE id = $1`,
		utils.ToPgUUID(componentID))

	comp, err := scanComponent(row)
	if err != nil {
		return Component{}, utils.WrapRepoError(op, err, true, r.logger)
	}

	return comp, nil
}

func (r *Repository) List(ctx context.Context) ([]Component, error) {
	const op string = "repo.component.list"

	rows, err := r.pool.Query(ctx, `
		SELECT id, name, description, current_status, enabled, created_at
		FROM components
		ORDER BY created_at ASC`)
	if err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}
	defer rows.Close()

	var comps []Component
	for rows.Next() {
		comp, err := scanComponent(rows)
		if err != nil {
			return nil, utils.WrapRepoError(op, err, false, r.logger)
		}
		comps = append(comps, comp)
	}
	if err := rows.Err(); err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}

	return comps, nil
}

// ChangeStatus appends the event and moves current_status in one
// transaction so the log and the denormalized field never disagree.
func (r *Repository) ChangeStatus(ctx context.Context, ev uptime.StatusChangeEvent) error {
	const op string = "repo.component.change_status"

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return utils.WrapRepoError(op, err, false, r.logger)
	}
	defer tx.Rollback(ctx)

	var incidentID pgtype.UUID
	if ev.IncidentID != nil {
		incidentID = utils.ToPgUUID(*ev.IncidentID)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO status_change_events
			(id, component_id, old_status, new_status, occurred_at, incident_id, synthetic)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE)`,
		utils.ToPgUUID(ev.ID), utils.ToPgUUID(ev.ComponentID),
		string(ev.OldStatus), string(ev.NewStatus),
		utils.ToPgTimestamptz(ev.OccurredAt), incidentID)
	if err != nil {
		return utils.WrapRepoError(op, err, false, r.logger)
	}

	_, err = tx.Exec(ctx, `
		UPDATE components
		SET current_status = $2
		WHERE id = $1`,
		utils.ToPgUUID(ev.ComponentID), string(ev.NewStatus))
	if err != nil {
		return utils.WrapRepoError(op, err, false, r.logger)
	}

	if err := tx.Commit(ctx); err != nil {
		return utils.WrapRepoError(op, err, false, r.logger)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanComponent(row rowScanner) (Component, error) {
	var (
		id          pgtype.UUID
		name        string
		description pgtype.Text
		status      string
		enabled     bool
		createdAt   pgtype.Timestamptz
	)
	if err := row.Scan(&id, &name, &description, &status, &enabled, &createdAt); err != nil {
		return Component{}, err
	}

	return Component{
		ID:            utils.FromPgUUID(id),
		Name:          name,
		Description:   utils.FromPgText(description),
		CurrentStatus: uptime.Status(status),
		Enabled:       enabled,
		CreatedAt:     utils.FromPgTimestamptz(createdAt),
	}, nil
}
