package database

import (
	"context"
	"errors"
	"log/slog"
	"smokefree/internal/modules/settings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsDatabase struct {
	db  *gorm.DB
	log *slog.Logger
}

func NewSettingsDatabase(db *gorm.DB, log *slog.Logger) *SettingsDatabase {
	return &SettingsDatabase{
		db:  db,
		log: log,
	}
}

func (r *SettingsDatabase) GetSettingsByDeviceID(ctx context.Context, deviceID string) (*settings.Settings, error) {
	op := "SettingsDatabase.GetSettingsByDeviceID"
	log := r.log.With(slog.String("op", op), slog.String("deviceID", deviceID))

	var model settings.Settings
	if err := r.db.WithContext(ctx).Where("device_id = ?", deviceID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Debug("settings not found")
			return nil, settings.ErrSettingsNotFound
		}
		log.Error("failed to get settings from DB", "error", err)
		return nil, settings.ErrSettingsInternal
	}
	return &model, nil
}

// UpsertSettings inserts the row or overwrites every mutable column of an existing one.
func (r *SettingsDatabase) UpsertSettings(ctx context.Context, model *settings.Settings) (*settings.Settings, error) {
	op := "SettingsDatabase.UpsertSettings"
	log := r.log.With(slog.String("op", op), slog.String("deviceID", model.DeviceID))

	model.UpdatedAt = time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = model.UpdatedAt
	}

	err := r.db.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns: []clause.Column{{Name: "device_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"wake_time", "sleep_time", "daily_cigarette_goal", "language", "background_color",
				"premium_enabled", "premium_expires_at", "promo_code", "push_token", "updated_at",
			}),
		},
		clause.Returning{},
	).Create(model).Error
	if err != nil {
		log.Error("failed to upsert settings", "error", err)
		return nil, settings.ErrSettingsInternal
	}

	log.Info("settings upserted")
	return model, nil
}

func (r *SettingsDatabase) UpdateSettings(ctx context.Context, model *settings.Settings) (*settings.Settings, error) {
	op := "SettingsDatabase.UpdateSettings"
	log := r.log.With(slog.String("op", op), slog.String("deviceID", model.DeviceID))

	result := r.db.WithContext(ctx).Model(&settings.Settings{}).
		Where("device_id = ?", model.DeviceID).
		Updates(map[string]interface{}{
			"wake_time":            model.WakeTime,
			"sleep_time":           model.SleepTime,
			"daily_cigarette_goal": model.DailyCigaretteGoal,
			"language":             model.Language,
			"background_color":     model.BackgroundColor,
			"premium_enabled":      model.PremiumEnabled,
			"premium_expires_at":   model.PremiumExpiresAt,
			"promo_code":           model.PromoCode,
			"push_token":           model.PushToken,
			"updated_at":           time.Now(),
		})
	if result.Error != nil {
		log.Error("failed to update settings", "error", result.Error)
		return nil, settings.ErrSettingsInternal
	}
	if result.RowsAffected == 0 {
		log.Warn("no settings row to update")
		return nil, settings.ErrSettingsNotFound
	}

	return r.GetSettingsByDeviceID(ctx, model.DeviceID)
}

// ExpirePremium switches off every time-limited premium entitlement whose expiry has
// passed and returns the affected devices.
func (r *SettingsDatabase) ExpirePremium(ctx context.Context, now time.Time) ([]string, error) {
	op := "SettingsDatabase.ExpirePremium"
	log := r.log.With(slog.String("op", op))

	var expired []settings.Settings
	err := r.db.WithContext(ctx).Model(&expired).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "device_id"}}}).
		Where("premium_enabled = ? AND premium_expires_at IS NOT NULL AND premium_expires_at <= ?", true, now).
		Updates(map[string]interface{}{
			"premium_enabled": false,
			"updated_at":      now,
		}).Error
	if err != nil {
		log.Error("failed to expire premium entitlements", "error", err)
		return nil, settings.ErrSettingsInternal
	}

	deviceIDs := make([]string, 0, len(expired))
	for _, s := range expired {
		deviceIDs = append(deviceIDs, s.DeviceID)
	}
	log.Info("premium entitlements expired", slog.Int("count", len(deviceIDs)))
	return deviceIDs, nil
}

func (r *SettingsDatabase) GetPushTargets(ctx context.Context, deviceIDs []string) ([]settings.PushTarget, error) {
	op := "SettingsDatabase.GetPushTargets"
	log := r.log.With(slog.String("op", op), slog.Int("requested", len(deviceIDs)))

	if len(deviceIDs) == 0 {
		return nil, nil
	}

	var rows []settings.Settings
	err := r.db.WithContext(ctx).
		Select("device_id", "push_token", "language").
		Where("device_id IN ? AND push_token IS NOT NULL AND push_token <> ''", deviceIDs).
		Find(&rows).Error
	if err != nil {
		log.Error("failed to load push targets", "error", err)
		return nil, settings.ErrSettingsInternal
	}

	targets := make([]settings.PushTarget, 0, len(rows))
	for _, row := range rows {
		targets = append(targets, settings.PushTarget{
			DeviceID:  row.DeviceID,
			PushToken: *row.PushToken,
			Language:  row.Language,
		})
	}
	log.Debug("push targets loaded", slog.Int("count", len(targets)))
	return targets, nil
}
