// services/cache.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"wordle-arena/scoring"

	"github.com/redis/go-redis/v9"
)

const leaderboardCacheTTL = 30 * time.Second

// LeaderboardCache holds ranked pages for anonymous requests, which are the
// same for every caller. A nil client disables caching entirely.
type LeaderboardCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewLeaderboardCache(rdb *redis.Client) *LeaderboardCache {
	return &LeaderboardCache{rdb: rdb, ttl: leaderboardCacheTTL}
}

func (c *LeaderboardCache) key(tf scoring.TimeFrame, metric scoring.Metric, page int) string {
	return fmt.Sprintf("leaderboard:%s:%s:%d", tf, metric, page)
}

// Get returns the cached page, or nil on a miss. Redis being unreachable is
// treated as a miss, never as an error.
func (c *LeaderboardCache) Get(ctx context.Context, tf scoring.TimeFrame, metric scoring.Metric, page int) *scoring.Page {
	if c == nil || c.rdb == nil {
		return nil
	}
	raw, err := c.rdb.Get(ctx, c.key(tf, metric, page)).Bytes()
	if err != nil {
		return nil
	}
	var p scoring.Page
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil
	}
	return &p
}

// Set stores the page. Failures are swallowed — the cache is best-effort.
func (c *LeaderboardCache) Set(ctx context.Context, tf scoring.TimeFrame, metric scoring.Metric, page int, result *scoring.Page) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, c.key(tf, metric, page), raw, c.ttl).Err()
}
