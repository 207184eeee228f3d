package repo

import (
	"context"
	"smokefree/internal/modules/settings"
	"time"
)

type SettingsDb interface {
	GetSettingsByDeviceID(ctx context.Context, deviceID string) (*settings.Settings, error)
	UpsertSettings(ctx context.Context, model *settings.Settings) (*settings.Settings, error)
	UpdateSettings(ctx context.Context, model *settings.Settings) (*settings.Settings, error)
	ExpirePremium(ctx context.Context, now time.Time) ([]string, error)
	GetPushTargets(ctx context.Context, deviceIDs []string) ([]settings.PushTarget, error)
}

type SettingsCache interface {
	GetSettings(ctx context.Context, deviceID string) (*settings.Settings, error)
	SaveSettings(ctx context.Context, model *settings.Settings) error
	DeleteSettings(ctx context.Context, deviceIDs ...string) error
}

type repo struct {
	db SettingsDb
	ch SettingsCache
}

func NewRepo(db SettingsDb, ch SettingsCache) settings.Repo {
	return &repo{
		db: db,
		ch: ch,
	}
}

func (r *repo) GetSettingsByDeviceID(ctx context.Context, deviceID string) (*settings.Settings, error) {
	return r.db.GetSettingsByDeviceID(ctx, deviceID)
}

func (r *repo) UpsertSettings(ctx context.Context, model *settings.Settings) (*settings.Settings, error) {
	return r.db.UpsertSettings(ctx, model)
}

func (r *repo) UpdateSettings(ctx context.Context, model *settings.Settings) (*settings.Settings, error) {
	return r.db.UpdateSettings(ctx, model)
}

func (r *repo) ExpirePremium(ctx context.Context, now time.Time) ([]string, error) {
	return r.db.ExpirePremium(ctx, now)
}

func (r *repo) GetPushTargets(ctx context.Context, deviceIDs []string) ([]settings.PushTarget, error) {
	return r.db.GetPushTargets(ctx, deviceIDs)
}

func (r *repo) GetSettingsCache(ctx context.Context, deviceID string) (*settings.Settings, error) {
	return r.ch.GetSettings(ctx, deviceID)
}

func (r *repo) SaveSettingsCache(ctx context.Context, model *settings.Settings) error {
	return r.ch.SaveSettings(ctx, model)
}

func (r *repo) DeleteSettingsCache(ctx context.Context, deviceIDs ...string) error {
	return r.ch.DeleteSettings(ctx, deviceIDs...)
}
