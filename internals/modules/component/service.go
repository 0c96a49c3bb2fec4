package component

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"statusdeck/internals/modules/uptime"
	"statusdeck/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Store interface {
	Create(ctx context.Context, comp Component) error
	GetByID(ctx context.Context, componentID uuid.UUID) (Component, error)
	List(ctx context.Context) ([]Component, error)
	ChangeStatus(ctx context.Context, ev uptime.StatusChangeEvent) error
}

type Publisher interface {
	PublishBatch(ctx context.Context, bodies [][]byte) error
}

type Service struct {
	repo      Store
	publisher Publisher
	now       func() time.Time
	logger    *zerolog.Logger
}

func NewService(repo Store, publisher Publisher, logger *zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
		logger:    logger,
	}
}

func (s *Service) Create(ctx context.Context, cmd CreateComponentCmd) (uuid.UUID, error) {
	comp := Component{
		ID:            uuid.New(),
		Name:          cmd.Name,
		Description:   cmd.Description,
		CurrentStatus: uptime.StatusOperational,
		Enabled:       true,
		CreatedAt:     s.now(),
	}

	if err := s.repo.Create(ctx, comp); err != nil {
		return uuid.Nil, err
	}

	return comp.ID, nil
}

func (s *Service) Get(ctx context.Context, componentID uuid.UUID) (Component, error) {
	return s.repo.GetByID(ctx, componentID)
}

func (s *Service) List(ctx context.Context) ([]Component, error) {
	return s.repo.List(ctx)
}

// ChangeStatus appends one event to the component's log and moves
// current_status, then fans the change out for notification delivery.
// The fanout is best-effort: a broker hiccup must not roll back a state
// change that already happened.
func (s *Service) ChangeStatus(ctx context.Context, cmd ChangeStatusCmd) error {
	const op string = "service.component.change_status"

	if !cmd.NewStatus.Valid() {
		return &apperror.Error{
			Kind:    apperror.InvalidInput,
			Op:      op,
			Message: fmt.Sprintf("unknown status %q", cmd.NewStatus),
		}
	}

	comp, err := s.repo.GetByID(ctx, cmd.ComponentID)
	if err != nil {
		return err
	}
	if comp.CurrentStatus == cmd.NewStatus {
		return &apperror.Error{
			Kind:    apperror.Conflict,
			Op:      op,
			Message: "component already in requested status",
		}
	}

	ev := uptime.StatusChangeEvent{
		ID:          uuid.New(),
		ComponentID: comp.ID,
		OldStatus:   comp.CurrentStatus,
		NewStatus:   cmd.NewStatus,
		OccurredAt:  s.now(),
		IncidentID:  cmd.IncidentID,
	}

	if err := s.repo.ChangeStatus(ctx, ev); err != nil {
		return err
	}

	s.publishStatusChanged(ctx, comp, ev)
	return nil
}

func (s *Service) publishStatusChanged(ctx context.Context, comp Component, ev uptime.StatusChangeEvent) {
	msg := StatusChangedMessage{
		ComponentID: comp.ID.String(),
		Name:        comp.Name,
		OldStatus:   string(ev.OldStatus),
		NewStatus:   string(ev.NewStatus),
		OccurredAt:  ev.OccurredAt,
	}
	if ev.IncidentID != nil {
		incID := ev.IncidentID.String()
		msg.IncidentID = &incID
	}

	body, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error().Err(err).Msg("marshal status changed message")
		return
	}

	if err := s.publisher.PublishBatch(ctx, [][]byte{body}); err != nil {
		s.logger.Warn().
			Err(err).
			Str("component_id", comp.ID.String()).
			Msg("status change fanout failed")
	}
}
