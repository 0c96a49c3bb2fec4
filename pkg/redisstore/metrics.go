package redisstore

import (
	"context"
	"fmt"
	"time"
)

// Computed metric payloads (uptime percentages, daily timelines) are cached
// as opaque JSON under metrics:{scope}:{days}. Writers use a plain SET so
// concurrent recomputations settle last-write-wins instead of locking.

func metricKey(scope string, days int) string {
	return fmt.Sprintf("metrics:%v:%vd", scope, days)
}

func (c *Client) GetMetricPayload(ctx context.Context, scope string, days int) ([]byte, error) {
	return c.rdb.Get(ctx, metricKey(scope, days)).Bytes()
}

func (c *Client) SetMetricPayload(ctx context.Context, scope string, days int, data []byte, ttl time.Duration) error {
	return retry(ctx, 2, func() error {
		return c.rdb.Set(ctx, metricKey(scope, days), data, ttl).Err()
	})
}

func (c *Client) DelMetricPayload(ctx context.Context, scope string, days int) error {
	return c.rdb.Del(ctx, metricKey(scope, days)).Err()
}
