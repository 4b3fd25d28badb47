package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/teamokr/okr-system/internal/api/metrics"
	"github.com/teamokr/okr-system/internal/core/ports"
)

const statsCacheTTL = 30 * time.Second

// StatsCache caches per-user dashboard snapshots in Redis.
// Key format: dashboard:<user_id>
type StatsCache struct {
	client *redis.Client
}

// NewStatsCache creates a StatsCache wrapping the given Redis client.
func NewStatsCache(client *redis.Client) *StatsCache {
	return &StatsCache{client: client}
}

// Get returns the cached dashboard for the user, or nil on a miss.
func (c *StatsCache) Get(ctx context.Context, userID string) (*ports.Dashboard, error) {
	data, err := c.client.Get(ctx, c.key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.StatsCacheTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stats cache get: %w", err)
	}

	var dashboard ports.Dashboard
	if err := json.Unmarshal(data, &dashboard); err != nil {
		return nil, fmt.Errorf("stats cache decode: %w", err)
	}
	metrics.StatsCacheTotal.WithLabelValues("hit").Inc()
	return &dashboard, nil
}

// Set stores the dashboard snapshot (expires after statsCacheTTL).
func (c *StatsCache) Set(ctx context.Context, userID string, dashboard *ports.Dashboard) error {
	data, err := json.Marshal(dashboard)
	if err != nil {
		return fmt.Errorf("stats cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(userID), data, statsCacheTTL).Err()
}

// Invalidate drops the cached snapshot for the user, if any.
func (c *StatsCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, c.key(userID)).Err()
}

func (c *StatsCache) key(userID string) string {
	return fmt.Sprintf("dashboard:%s", userID)
}
