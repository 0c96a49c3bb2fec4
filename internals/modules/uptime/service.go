package uptime

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"statusdeck/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// EventStore is the read side of the engine: the append-only event log plus
// the component fields the reconstruction needs. Store failures propagate to
// the caller unchanged; retries belong to the store layer.
type EventStore interface {
	EventsThrough(ctx context.Context, componentID uuid.UUID, before time.Time) ([]StatusChangeEvent, error)
	GetComponentMeta(ctx context.Context, componentID uuid.UUID) (ComponentMeta, error)
	ListEnabledComponents(ctx context.Context) ([]ComponentMeta, error)
}

type Options struct {
	Weights       map[Status]float64
	Genesis       Status
	Location      *time.Location
	CacheTTL      time.Duration
	MaxWindowDays int
}

type Service struct {
	store         EventStore
	cache         Cache
	weights       map[Status]float64
	genesis       Status
	loc           *time.Location
	cacheTTL      time.Duration
	maxWindowDays int
	now           func() time.Time
	logger        *zerolog.Logger
}

func NewService(store EventStore, cache Cache, opts Options, logger *zerolog.Logger) *Service {
	if opts.Weights == nil {
		opts.Weights = DefaultWeights()
	}
	if opts.Genesis == "" {
		opts.Genesis = StatusOperational
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 60 * time.Minute
	}
	if opts.MaxWindowDays <= 0 {
		opts.MaxWindowDays = 366
	}

	return &Service{
		store:         store,
		cache:         cache,
		weights:       opts.Weights,
		genesis:       opts.Genesis,
		loc:           opts.Location,
		cacheTTL:      opts.CacheTTL,
		maxWindowDays: opts.MaxWindowDays,
		now:           time.Now,
		logger:        logger,
	}
}

type UptimeReport struct {
	ComponentID      uuid.UUID       `json:"component_id"`
	UptimePercentage float64         `json:"uptime_percentage"`
	PeriodStart      time.Time       `json:"period_start"`
	PeriodEnd        time.Time       `json:"period_end"`
	Mode             CalculationMode `json:"mode"`
}

// ComponentUptime reconstructs the component timeline over the last `days`
// calendar days and reduces it to a single percentage. Mode and the
// maintenance-counts-as-downtime switch are selected per invocation.
func (s *Service) ComponentUptime(ctx context.Context, componentID uuid.UUID, days int, mode CalculationMode, maintenanceDown bool) (UptimeReport, error) {
	const op string = "service.uptime.component_uptime"

	if err := s.validateDays(op, days); err != nil {
		return UptimeReport{}, err
	}
	if mode == "" {
		mode = ModeWeighted
	}
	if mode != ModeWeighted && mode != ModeBinary {
		return UptimeReport{}, &apperror.Error{
			Kind:    apperror.InvalidInput,
			Op:      op,
			Message: fmt.Sprintf("unknown calculation mode %q", mode),
		}
	}

	scope := fmt.Sprintf("uptime:%v:%v:%v", componentID, mode, maintenanceDown)
	var cached UptimeReport
	if s.cacheRead(ctx, scope, days, &cached) {
		return cached, nil
	}

	meta, err := s.store.GetComponentMeta(ctx, componentID)
	if err != nil {
		return UptimeReport{}, err
	}

	start, end := s.window(days)
	events, err := s.store.EventsThrough(ctx, componentID, end)
	if err != nil {
		return UptimeReport{}, err
	}

	intervals := Reconstruct(events, meta, s.genesis, start, end)
	policy := WeightPolicy{
		Weights:               s.weights,
		Mode:                  mode,
		MaintenanceAsDowntime: maintenanceDown,
	}

	report := UptimeReport{
		ComponentID:      componentID,
		UptimePercentage: Aggregate(intervals, policy),
		PeriodStart:      start,
		PeriodEnd:        end,
		Mode:             mode,
	}

	s.cacheWrite(ctx, scope, days, report)
	return report, nil
}

// DailyTimeline returns one worst-status bucket per calendar day for the
// component, ready for a chart renderer.
func (s *Service) DailyTimeline(ctx context.Context, componentID uuid.UUID, days int) ([]DailyStatusBucket, error) {
	const op string = "service.uptime.daily_timeline"

	if err := s.validateDays(op, days); err != nil {
		return nil, err
	}

	scope := fmt.Sprintf("timeline:%v", componentID)
	var cached []DailyStatusBucket
	if s.cacheRead(ctx, scope, days, &cached) {
		return cached, nil
	}

	meta, err := s.store.GetComponentMeta(ctx, componentID)
	if err != nil {
		return nil, err
	}

	start, end := s.window(days)
	events, err := s.store.EventsThrough(ctx, componentID, end)
	if err != nil {
		return nil, err
	}

	intervals := Reconstruct(events, meta, s.genesis, start, end)
	buckets := Bucketize(intervals, start, end, s.loc)

	s.cacheWrite(ctx, scope, days, buckets)
	return buckets, nil
}

// AggregatedTimeline merges the daily timelines of every enabled component
// into one cross-component series, worst status winning per day.
func (s *Service) AggregatedTimeline(ctx context.Context, days int) ([]DailyStatusBucket, error) {
	const op string = "service.uptime.aggregated_timeline"

	if err := s.validateDays(op, days); err != nil {
		return nil, err
	}

	scope := fmt.Sprintf("timeline:%v", ScopeAll)
	var cached []DailyStatusBucket
	if s.cacheRead(ctx, scope, days, &cached) {
		return cached, nil
	}

	components, err := s.store.ListEnabledComponents(ctx)
	if err != nil {
		return nil, err
	}

	start, end := s.window(days)

	series := make([][]DailyStatusBucket, 0, len(components))
	for _, meta := range components {
		events, err := s.store.EventsThrough(ctx, meta.ID, end)
		if err != nil {
			return nil, err
		}
		intervals := Reconstruct(events, meta, s.genesis, start, end)
		series = append(series, Bucketize(intervals, start, end, s.loc))
	}

	merged := MergeDailyWorst(series...)
	if merged == nil {
		// no components is not an error, the timeline is just empty
		merged = []DailyStatusBucket{}
	}

	s.cacheWrite(ctx, scope, days, merged)
	return merged, nil
}

// Invalidate drops one cached payload. Called by presentation selectors
// when scope or window changes; event writes deliberately do not call it,
// stale reads up to the TTL are accepted.
func (s *Service) Invalidate(ctx context.Context, scope string, days int) error {
	return s.cache.DelMetricPayload(ctx, scope, days)
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

// window spans the last `days` calendar days in the reporting timezone,
// today included, as a half-open [start, end).
func (s *Service) window(days int) (time.Time, time.Time) {
	end := startOfDay(s.now().In(s.loc)).AddDate(0, 0, 1)
	start := end.AddDate(0, 0, -days)
	return start, end
}

func (s *Service) cacheRead(ctx context.Context, scope string, days int, out any) bool {
	data, err := s.cache.GetMetricPayload(ctx, scope, days)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Warn().Err(err).Str("scope", scope).Msg("discarding undecodable cached payload")
		return false
	}
	return true
}

// cacheWrite stores the computed payload, last write wins. Concurrent
// requests may race to compute the same value on a miss; recomputation is
// idempotent so locking would only add contention on the read path.
func (s *Service) cacheWrite(ctx context.Context, scope string, days int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error().Err(err).Str("scope", scope).Msg("marshal metric payload")
		return
	}
	if err := s.cache.SetMetricPayload(ctx, scope, days, data, s.cacheTTL); err != nil {
		s.logger.Warn().Err(err).Str("scope", scope).Msg("metric cache write failed")
	}
}
