// internal/colleges/cache.go
package colleges

import (
	"context"
	"encoding/json"
	"time"

	"college-match-workers/internal/common/metrics"
	"college-match-workers/internal/scoring"

	"github.com/redis/go-redis/v9"
)

const statsKeyPrefix = "college:stats:"

// StatsCache is a read-through cache for college stats in front of the
// repository. Cache failures are treated as misses; the database remains the
// source of truth.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStatsCache(client *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{client: client, ttl: ttl}
}

// Get returns the cached stats for a college, or nil on miss.
func (c *StatsCache) Get(ctx context.Context, name string) *scoring.UniversityData {
	val, err := c.client.Get(ctx, statsKeyPrefix+name).Result()
	if err != nil {
		metrics.CollegeStatsCacheHits.WithLabelValues("miss").Inc()
		return nil
	}

	var u scoring.UniversityData
	if err := json.Unmarshal([]byte(val), &u); err != nil {
		metrics.CollegeStatsCacheHits.WithLabelValues("decode_error").Inc()
		return nil
	}

	metrics.CollegeStatsCacheHits.WithLabelValues("hit").Inc()
	return &u
}

// Set stores college stats with the configured TTL. Errors are swallowed;
// a failed write only costs a future cache miss.
func (c *StatsCache) Set(ctx context.Context, u *scoring.UniversityData) {
	data, err := json.Marshal(u)
	if err != nil {
		return
	}
	c.client.Set(ctx, statsKeyPrefix+u.Name, data, c.ttl)
}

// Invalidate drops a college from the cache, used after upstream refreshes.
func (c *StatsCache) Invalidate(ctx context.Context, name string) error {
	return c.client.Del(ctx, statsKeyPrefix+name).Err()
}
