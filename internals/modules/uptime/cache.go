package uptime

import (
	"context"
	"time"
)

// ScopeAll is the cache scope sentinel for the cross-component rollup.
const ScopeAll = "all"

// Cache memoizes computed metric payloads keyed by (scope, window days).
// Any Get error is treated as a miss and the value is recomputed; the cache
// trades freshness for availability and is never load-bearing for
// correctness.
type Cache interface {
	GetMetricPayload(ctx context.Context, scope string, days int) ([]byte, error)
	SetMetricPayload(ctx context.Context, scope string, days int, data []byte, ttl time.Duration) error
	DelMetricPayload(ctx context.Context, scope string, days int) error
}
