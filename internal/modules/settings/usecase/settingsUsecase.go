package usecase

import (
	"context"
	"errors"
	"log/slog"
	"smokefree/internal/modules/settings"
	"time"
)

type SettingsUseCase struct {
	repo settings.Repo
	log  *slog.Logger
}

func NewSettingsUseCase(repo settings.Repo, log *slog.Logger) settings.UseCase {
	return &SettingsUseCase{
		repo: repo,
		log:  log,
	}
}

// GetSettings reads through the cache. Cache failures never fail the request.
func (uc *SettingsUseCase) GetSettings(ctx context.Context, deviceID string) (*settings.SettingsResponse, error) {
	model, err := uc.load(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	return settings.ToSettingsResponse(model), nil
}

func (uc *SettingsUseCase) load(ctx context.Context, deviceID string) (*settings.Settings, error) {
	op := "SettingsUseCase.load"
	log := uc.log.With(slog.String("op", op), slog.String("deviceID", deviceID))

	cached, err := uc.repo.GetSettingsCache(ctx, deviceID)
	if err == nil {
		log.Debug("settings served from cache")
		return cached, nil
	}
	if !errors.Is(err, settings.ErrSettingsNotFound) {
		log.Warn("settings cache unavailable, falling back to DB", "error", err)
	}

	model, err := uc.repo.GetSettingsByDeviceID(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	uc.cache(ctx, model)
	return model, nil
}

func (uc *SettingsUseCase) cache(ctx context.Context, model *settings.Settings) {
	if err := uc.repo.SaveSettingsCache(ctx, model); err != nil {
		uc.log.Warn("failed to cache settings", slog.String("deviceID", model.DeviceID), "error", err)
	}
}

// UpsertSettings creates the row on first write and overwrites it afterwards.
// Optional fields absent from the request keep their stored value.
func (uc *SettingsUseCase) UpsertSettings(ctx context.Context, req settings.UpsertSettingsRequest) (*settings.SettingsResponse, error) {
	op := "SettingsUseCase.UpsertSettings"
	log := uc.log.With(slog.String("op", op), slog.String("deviceID", req.DeviceID))

	model, err := uc.repo.GetSettingsByDeviceID(ctx, req.DeviceID)
	switch {
	case errors.Is(err, settings.ErrSettingsNotFound):
		model = settings.NewDefaultSettings(req.DeviceID)
	case err != nil:
		return nil, err
	}
	settings.ApplyUpsert(model, &req)

	saved, err := uc.repo.UpsertSettings(ctx, model)
	if err != nil {
		return nil, err
	}
	uc.cache(ctx, saved)

	log.Info("settings saved")
	return settings.ToSettingsResponse(saved), nil
}

func (uc *SettingsUseCase) UpdateSettings(ctx context.Context, deviceID string, req settings.UpdateSettingsRequest) (*settings.SettingsResponse, error) {
	op := "SettingsUseCase.UpdateSettings"
	log := uc.log.With(slog.String("op", op), slog.String("deviceID", deviceID))

	model, err := uc.repo.GetSettingsByDeviceID(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if !settings.ApplyUpdate(model, &req) {
		log.Debug("update carried no changes")
		return settings.ToSettingsResponse(model), nil
	}
	if model.DailyCigaretteGoal < 1 {
		return nil, settings.ErrSettingsInvalidInput
	}

	saved, err := uc.repo.UpdateSettings(ctx, model)
	if err != nil {
		return nil, err
	}
	uc.cache(ctx, saved)

	log.Info("settings updated")
	return settings.ToSettingsResponse(saved), nil
}

func (uc *SettingsUseCase) GetDailyGoal(ctx context.Context, deviceID string) (int, error) {
	model, err := uc.load(ctx, deviceID)
	if err != nil {
		return 0, err
	}
	return model.DailyCigaretteGoal, nil
}

// GrantPremium enables premium for the device. A nil expiresAt grants it without end.
func (uc *SettingsUseCase) GrantPremium(ctx context.Context, deviceID string, promoCode string, expiresAt *time.Time) error {
	op := "SettingsUseCase.GrantPremium"
	log := uc.log.With(slog.String("op", op), slog.String("deviceID", deviceID))

	model, err := uc.repo.GetSettingsByDeviceID(ctx, deviceID)
	if err != nil {
		return err
	}
	model.PremiumEnabled = true
	model.PremiumExpiresAt = expiresAt
	model.PromoCode = &promoCode

	saved, err := uc.repo.UpdateSettings(ctx, model)
	if err != nil {
		return err
	}
	uc.cache(ctx, saved)

	log.Info("premium granted", slog.Bool("perpetual", expiresAt == nil))
	return nil
}

func (uc *SettingsUseCase) ExpirePremium(ctx context.Context, now time.Time) (int64, error) {
	op := "SettingsUseCase.ExpirePremium"
	log := uc.log.With(slog.String("op", op))

	deviceIDs, err := uc.repo.ExpirePremium(ctx, now)
	if err != nil {
		return 0, err
	}
	if err := uc.repo.DeleteSettingsCache(ctx, deviceIDs...); err != nil {
		log.Warn("failed to invalidate expired settings", "error", err)
	}
	return int64(len(deviceIDs)), nil
}

func (uc *SettingsUseCase) GetPushTargets(ctx context.Context, deviceIDs []string) ([]settings.PushTarget, error) {
	return uc.repo.GetPushTargets(ctx, deviceIDs)
}
