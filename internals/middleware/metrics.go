package middle

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

type MetricsRecorder interface {
	Observe(method, path string, duration time.Duration)
}

func Metrics(recorder MetricsRecorder) Middleware {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			recorder.Observe(
				r.Method,
				r.URL.Path,
				time.Since(start),
			)
		}
		return http.HandlerFunc(fn)
	}
}

// LogRecorder reports request durations through the service logger and
// flags anything slower than the threshold.
type LogRecorder struct {
	logger        *zerolog.Logger
	slowThreshold time.Duration
}

func NewLogRecorder(logger *zerolog.Logger, slowThreshold time.Duration) *LogRecorder {
	return &LogRecorder{
		logger:        logger,
		slowThreshold: slowThreshold,
	}
}

func (lr *LogRecorder) Observe(method, path string, duration time.Duration) {
	if duration >= lr.slowThreshold {
		lr.logger.Warn().
			Str("method", method).
			Str("path", path).
			Dur("duration", duration).
			Msg("slow request")
	}
}
