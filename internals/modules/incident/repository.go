package incident

import (
	"context"
	"time"

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

func (r *Repository) Create(ctx context.Context, inc Incident) error {
	const op string = "repo.incident.create"

	_, err := r.pool.Exec(ctx, `
		INSERT INTO incidents (id, component_id, title, impact, started_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		utils.ToPgUUID(inc.ID), utils.ToPgUUID(inc.ComponentID), inc.Title,
		string(inc.Impact), utils.ToPgTimestamptz(inc.StartedAt), utils.ToPgTimestamptz(inc.CreatedAt))
	if err != nil {
		return utils.WrapRepoError(op, err, false, r.logger)
	}

	return nil
}

func (r *Repository) GetByID(ctx context.Context, incidentID uuid.UUID) (Incident, error) {
	const op string = "repo.incident.get_by_id"

	row := r.pool.QueryRow(ctx, `
		SELECT id, component_id, title, impact, started_at, resolved_at, created_at
		FROM incidents
		WHERE id = $1`,
		utils.ToPgUUID(incidentID))

	inc, err := scanIncident(row)
	if err != nil {
		return Incident{}, utils.WrapRepoError(op, err, true, r.logger)
	}

	return inc, nil
}

// Resolve stamps resolved_at only when still open; rows affected tells the
// service whether anything changed.
func (r *Repository) Resolve(ctx context.Context, incidentID uuid.UUID, at time.Time) (int64, error) {
	const op string = "repo.incident.resolve"

	tag, err := r.pool.Exec(ctx, `
		UPDATE incidents
		SET resolved_at = $2
		WHERE id = $1 AND resolved_at IS NULL`,
		utils.ToPgUUID(incidentID), utils.ToPgTimestamptz(at))
	if err != nil {
		return 0, utils.WrapRepoError(op, err, false, r.logger)
	}

	return tag.RowsAffected(), nil
}

func (r *Repository) ListStartedBetween(ctx context.Context, from, to time.Time) ([]Incident, error) {
	const op string = "repo.incident.list_started_between"

	rows, err := r.pool.Query(ctx, `
		SELECT id, component_id, title, impact, started_at, resolved_at, created_at
		FROM incidents
		WHERE started_at >= $1 AND started_at < $2
		ORDER BY started_at ASC`,
		utils.ToPgTimestamptz(from), utils.ToPgTimestamptz(to))
	if err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}
	defer rows.Close()

	return collectIncidents(op, rows, r.logger)
}

func (r *Repository) ListResolvedBetween(ctx context.Context, from, to time.Time) ([]Incident, error) {
	const op string = "repo.incident.list_resolved_between"

	rows, err := r.pool.Query(ctx, `
		SELECT id, component_id, title, impact, started_at, resolved_at, created_at
		FROM incidents
		WHERE resolved_at IS NOT NULL AND resolved_at >= $1 AND resolved_at < $2
		ORDER BY resolved_at ASC`,
		utils.ToPgTimestamptz(from), utils.ToPgTimestamptz(to))
	if err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}
	defer rows.Close()

	return collectIncidents(op, rows, r.logger)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIncident(row rowScanner) (Incident, error) {
	var (
		id, compID pgtype.UUID
		title      string
		impact     string
		startedAt  pgtype.Timestamptz
		resolvedAt pgtype.Timestamptz
		createdAt  pgtype.Timestamptz
	)
	if err := row.Scan(&id, &compID, &title, &impact, &startedAt, &resolvedAt, &createdAt); err != nil {
		return Incident{}, err
	}

	inc := Incident{
		ID:          utils.FromPgUUID(id),
		ComponentID: utils.FromPgUUID(compID),
		Title:       title,
		Impact:      Impact(impact),
		StartedAt:   utils.FromPgTimestamptz(startedAt),
		CreatedAt:   utils.FromPgTimestamptz(createdAt),
	}
	if resolvedAt.Valid {
		t := resolvedAt.Time
		inc.ResolvedAt = &t
	}

	return inc, nil
}

func collectIncidents(op string, rows pgx.Rows, logger *zerolog.Logger) ([]Incident, error) {
	var incidents []Incident
	for rows.Next() {
		inc, err := scanIncident(rows)
		if err != nil {
			return nil, utils.WrapRepoError(op, err, false, logger)
		}
		incidents = append(incidents, inc)
	}
	if err := rows.Err(); err != nil {
		return nil, utils.WrapRepoError(op, err, false, logger)
	}
	return incidents, nil
}
