package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"smokefree/internal/init/cache"
	"smokefree/internal/modules/settings"
	"time"

	"github.com/go-redis/redis/v8"
)

type SettingsCache struct {
	rdb *redis.Client
	log *slog.Logger
	ttl time.Duration
}

func NewSettingsCache(appCache *cache.Cache, log *slog.Logger) *SettingsCache {
	return &SettingsCache{
		rdb: appCache.Client,
		log: log,
		ttl: appCache.SettingsCacheTtl,
	}
}

func settingsKey(deviceID string) string {
	return "settings:" + deviceID
}

func (c *SettingsCache) GetSettings(ctx context.Context, deviceID string) (*settings.Settings, error) {
	op := "SettingsCache.GetSettings"
	key := settingsKey(deviceID)
	log := c.log.With(slog.String("op", op), slog.String("key", key))

	val, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			log.Debug("settings not found in cache")
			return nil, settings.ErrSettingsNotFound
		}
		log.Error("failed to get settings from cache", "error", err)
		return nil, settings.ErrSettingsInternal
	}

	var model settings.Settings
	if err := json.Unmarshal(val, &model); err != nil {
		log.Error("failed to unmarshal settings from cache", "error", err)
		_ = c.rdb.Del(ctx, key)
		return nil, settings.ErrSettingsInternal
	}
	return &model, nil
}

func (c *SettingsCache) SaveSettings(ctx context.Context, model *settings.Settings) error {
	op := "SettingsCache.SaveSettings"
	key := settingsKey(model.DeviceID)
	log := c.log.With(slog.String("op", op), slog.String("key", key))

	val, err := json.Marshal(model)
	if err != nil {
		log.Error("failed to marshal settings for cache", "error", err)
		return settings.ErrSettingsInternal
	}
	if err := c.rdb.Set(ctx, key, val, c.ttl).Err(); err != nil {
		log.Error("failed to save settings to cache", "error", err)
		return settings.ErrSettingsInternal
	}
	log.Debug("settings saved to cache")
	return nil
}

// DeleteSettings drops cached entries. Failures are logged only.
func (c *SettingsCache) DeleteSettings(ctx context.Context, deviceIDs ...string) error {
	op := "SettingsCache.DeleteSettings"
	log := c.log.With(slog.String("op", op), slog.Int("count", len(deviceIDs)))

	if len(deviceIDs) == 0 {
		return nil
	}
	keys := make([]string, len(deviceIDs))
	for i, id := range deviceIDs {
		keys[i] = settingsKey(id)
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Error("failed to delete settings from cache", "error", err)
	}
	return nil
}
