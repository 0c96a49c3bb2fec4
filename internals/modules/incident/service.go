package incident

import (
	"context"
	"fmt"
	"time"

	"statusdeck/pkg/apperror"

	"github.com/google/uuid"
)

type Store interface {
	Create(ctx context.Context, inc Incident) error
	GetByID(ctx context.Context, incidentID uuid.UUID) (Incident, error)
	Resolve(ctx context.Context, incidentID uuid.UUID, at time.Time) (int64, error)
	ListStartedBetween(ctx context.Context, from, to time.Time) ([]Incident, error)
	ListResolvedBetween(ctx context.Context, from, to time.Time) ([]Incident, error)
}

type Service struct {
	repo          Store
	loc           *time.Location
	maxWindowDays int
	now           func() time.Time
}

func NewService(repo Store, loc *time.Location, maxWindowDays int) *Service {
	if loc == nil {
		loc = time.UTC
	}
	if maxWindowDays <= 0 {
		maxWindowDays = 366
	}
	return &Service{
		repo:          repo,
		loc:           loc,
		maxWindowDays: maxWindowDays,
		now:           time.Now,
	}
}

func (s *Service) Open(ctx context.Context, cmd OpenIncidentCmd) (uuid.UUID, error) {
	const op string = "service.incident.open"

	if !cmd.Impact.Valid() {
		return uuid.Nil, &apperror.Error{
			Kind:    apperror.InvalidInput,
			Op:      op,
			Message: fmt.Sprintf("unknown impact %q", cmd.Impact),
		}
	}

	now := s.now()
	startedAt := cmd.StartedAt
	if startedAt.IsZero() {
		startedAt = now
	}

	inc := Incident{
		ID:          uuid.New(),
		ComponentID: cmd.ComponentID,
		Title:       cmd.Title,
		Impact:      cmd.Impact,
		StartedAt:   startedAt,
		CreatedAt:   now,
	}

	if err := s.repo.Create(ctx, inc); err != nil {
		return uuid.Nil, err
	}

	return inc.ID, nil
}

func (s *Service) Resolve(ctx context.Context, incidentID uuid.UUID) (Incident, error) {
	const op string = "service.incident.resolve"

	rows, err := s.repo.Resolve(ctx, incidentID, s.now())
	if err != nil {
		return Incident{}, err
	}
	if rows == 0 {
		// either unknown or already resolved; look it up to tell the caller which
		inc, err := s.repo.GetByID(ctx, incidentID)
		if err != nil {
			return Incident{}, err
		}
		return Incident{}, &apperror.Error{
			Kind:    apperror.Conflict,
			Op:      op,
			Message: fmt.Sprintf("incident already resolved at %v", inc.ResolvedAt),
		}
	}

	return s.repo.GetByID(ctx, incidentID)
}

// CountsByImpact groups incidents that started inside the window.
func (s *Service) CountsByImpact(ctx context.Context, days int) (ImpactCounts, error) {
	const op string = "service.incident.counts_by_impact"

	if err := s.validateDays(op, days); err != nil {
		return ImpactCounts{}, err
	}

	from, to := s.window(days)
	incidents, err := s.repo.ListStartedBetween(ctx, from, to)
	if err != nil {
		return ImpactCounts{}, err
	}

	return CountByImpact(incidents), nil
}

// MTTR averages resolution time over incidents resolved inside the window.
func (s *Service) MTTR(ctx context.Context, days int) (MTTRReport, error) {
	const op string = "service.incident.mttr"

	if err := s.validateDays(op, days); err != nil {
		return MTTRReport{}, err
	}

	from, to := s.window(days)
	incidents, err := s.repo.ListResolvedBetween(ctx, from, to)
	if err != nil {
		return MTTRReport{}, err
	}

	return MeanTimeToResolution(incidents), nil
}

func (s *Service) validateDays(op string, days int) error {
	if days < 1 || days > s.maxWindowDays {
		return &apperror.Error{
			Kind:    apperror.InvalidInput,
			Op:      op,
			Message: fmt.Sprintf("days must be between 1 and %d", s.maxWindowDays),
		}
	}
	return nil
}

func (s *Service) window(days int) (time.Time, time.Time) {
	now := s.now().In(s.loc)
	y, m, d := now.Date()
	end := time.Date(y, m, d, 0, 0, 0, 0, s.loc).AddDate(0, 0, 1)
	return end.AddDate(0, 0, -days), end
}
