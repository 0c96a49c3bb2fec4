package uptime

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// SnapshotRunner invokes the recorder on a fixed interval. The recorder's
// guarded insert makes frequent runs safe, so running hourly simply narrows
// the gap a restart can leave in the day's coverage.
type SnapshotRunner struct {
	ctx      context.Context
	recorder *Recorder
	interval time.Duration
	logger   *zerolog.Logger
}

func NewSnapshotRunner(ctx context.Context, recorder *Recorder, interval time.Duration, logger *zerolog.Logger) *SnapshotRunner {
	if interval <= 0 {
		interval = time.Hour
	}
	return &SnapshotRunner{
		ctx:      ctx,
		recorder: recorder,
		interval: interval,
		logger:   logger,
	}
}

func (sr *SnapshotRunner) Start() {
	ticker := time.NewTicker(sr.interval)

	go func() {
		defer ticker.Stop()

		// one run at startup so a fresh deploy does not wait a full tick
		sr.runOnce()

		for {
			select {
			case <-sr.ctx.Done():
				return
			case <-ticker.C:
				sr.runOnce()
			}
		}
	}()
}

func (sr *SnapshotRunner) runOnce() {
	ctx, cancel := context.WithTimeout(sr.ctx, 30*time.Second)
	defer cancel()

	if _, err := sr.recorder.LogDailySnapshot(ctx); err != nil {
		sr.logger.Error().Err(err).Msg("daily snapshot run failed")
	}
}
