package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"smokefree/internal/init/cache"
	"smokefree/internal/modules/stats"
	"smokefree/pkg/lib/statistics"
	"time"

	"github.com/go-redis/redis/v8"
)

// StatsCache keeps one Redis hash per device so a single DEL drops every window.
type StatsCache struct {
	rdb *redis.Client
	log *slog.Logger
	ttl time.Duration
}

var _ stats.Cache = (*StatsCache)(nil)

func NewStatsCache(appCache *cache.Cache, log *slog.Logger) *StatsCache {
	return &StatsCache{
		rdb: appCache.Client,
		log: log,
		ttl: appCache.StatsCacheTtl,
	}
}

func statsKey(deviceID string) string {
	return "stats:" + deviceID
}

func (c *StatsCache) GetStats(ctx context.Context, deviceID, field string) (*statistics.Statistics, error) {
	op := "StatsCache.GetStats"
	key := statsKey(deviceID)
	log := c.log.With(slog.String("op", op), slog.String("key", key), slog.String("field", field))

	val, err := c.rdb.HGet(ctx, key, field).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, stats.ErrStatsCacheMiss
		}
		log.Error("failed to get statistics from cache", "error", err)
		return nil, stats.ErrStatsInternal
	}

	var s statistics.Statistics
	if err := json.Unmarshal(val, &s); err != nil {
		log.Error("failed to unmarshal statistics from cache", "error", err)
		_ = c.rdb.HDel(ctx, key, field)
		return nil, stats.ErrStatsInternal
	}
	return &s, nil
}

func (c *StatsCache) SaveStats(ctx context.Context, deviceID, field string, s *statistics.Statistics) error {
	op := "StatsCache.SaveStats"
	key := statsKey(deviceID)
	log := c.log.With(slog.String("op", op), slog.String("key", key), slog.String("field", field))

	val, err := json.Marshal(s)
	if err != nil {
		log.Error("failed to marshal statistics for cache", "error", err)
		return stats.ErrStatsInternal
	}

	_, err = c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, field, val)
		pipe.Expire(ctx, key, c.ttl)
		return nil
	})
	if err != nil {
		log.Error("failed to save statistics to cache", "error", err)
		return stats.ErrStatsInternal
	}
	return nil
}

func (c *StatsCache) DeleteStats(ctx context.Context, deviceID string) error {
	op := "StatsCache.DeleteStats"
	key := statsKey(deviceID)

	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		c.log.Error("failed to delete statistics from cache", slog.String("op", op), slog.String("key", key), "error", err)
		return stats.ErrStatsInternal
	}
	return nil
}
