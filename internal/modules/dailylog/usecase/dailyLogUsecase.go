package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"smokefree/internal/modules/dailylog"
	"smokefree/internal/modules/settings"
	"smokefree/pkg/lib/validation"
	"time"
)

type DailyLogUseCase struct {
	repo   dailylog.Repo
	goals  dailylog.GoalProvider
	stats  dailylog.StatsInvalidator
	log    *slog.Logger
	nowFn  func() time.Time
	prefix string
}

func NewDailyLogUseCase(
	repo dailylog.Repo,
	goals dailylog.GoalProvider,
	stats dailylog.StatsInvalidator,
	log *slog.Logger,
) dailylog.UseCase {
	return &DailyLogUseCase{
		repo:   repo,
		goals:  goals,
		stats:  stats,
		log:    log,
		nowFn:  time.Now,
		prefix: "daily-logs/",
	}
}

// GetDailyLog returns the stored log or a zero log (smoked 0, goal 0) that is not persisted.
func (uc *DailyLogUseCase) GetDailyLog(ctx context.Context, deviceID, date string) (*dailylog.DailyLogResponse, error) {
	if !validation.IsDate(date) {
		return nil, dailylog.ErrLogInvalidDate
	}

	model, err := uc.repo.GetDailyLog(ctx, deviceID, date)
	if errors.Is(err, dailylog.ErrLogNotFound) {
		return &dailylog.DailyLogResponse{DeviceID: deviceID, Date: date}, nil
	}
	if err != nil {
		return nil, err
	}
	return dailylog.ToDailyLogResponse(model), nil
}

func (uc *DailyLogUseCase) UpsertDailyLog(ctx context.Context, req dailylog.UpsertDailyLogRequest) (*dailylog.DailyLogResponse, error) {
	op := "DailyLogUseCase.UpsertDailyLog"
	log := uc.log.With(slog.String("op", op), slog.String("deviceID", req.DeviceID), slog.String("date", req.Date))

	saved, err := uc.repo.UpsertDailyLog(ctx, &dailylog.DailyLog{
		DeviceID:         req.DeviceID,
		Date:             req.Date,
		CigarettesSmoked: req.CigarettesSmoked,
		CigarettesGoal:   req.CigarettesGoal,
	})
	if err != nil {
		return nil, err
	}
	uc.invalidateStats(ctx, req.DeviceID)

	log.Info("daily log saved", slog.Int("smoked", saved.CigarettesSmoked), slog.Int("goal", saved.CigarettesGoal))
	return dailylog.ToDailyLogResponse(saved), nil
}

// IncrementDailyLog adds one cigarette. When the day has no log yet the row is
// created with the device's configured goal, or 0 when the device has no settings.
func (uc *DailyLogUseCase) IncrementDailyLog(ctx context.Context, deviceID, date string) (*dailylog.DailyLogResponse, error) {
	op := "DailyLogUseCase.IncrementDailyLog"
	log := uc.log.With(slog.String("op", op), slog.String("deviceID", deviceID), slog.String("date", date))

	if !validation.IsDate(date) {
		return nil, dailylog.ErrLogInvalidDate
	}

	goal, err := uc.goals.GetDailyGoal(ctx, deviceID)
	if err != nil {
		if !errors.Is(err, settings.ErrSettingsNotFound) {
			log.Warn("could not read daily goal, using 0", "error", err)
		}
		goal = 0
	}

	saved, err := uc.repo.IncrementDailyLog(ctx, deviceID, date, goal)
	if err != nil {
		return nil, err
	}
	uc.invalidateStats(ctx, deviceID)

	log.Info("cigarette recorded", slog.Int("smoked", saved.CigarettesSmoked))
	return dailylog.ToDailyLogResponse(saved), nil
}

func (uc *DailyLogUseCase) invalidateStats(ctx context.Context, deviceID string) {
	if uc.stats == nil {
		return
	}
	if err := uc.stats.InvalidateStats(ctx, deviceID); err != nil {
		uc.log.Warn("failed to invalidate statistics cache", slog.String("deviceID", deviceID), "error", err)
	}
}

type archiveDocument struct {
	Date        string               `json:"date"`
	GeneratedAt time.Time            `json:"generatedAt"`
	Logs        []*dailylog.DailyLog `json:"logs"`
}

// ArchiveDay uploads every device's log for date as one JSON document.
func (uc *DailyLogUseCase) ArchiveDay(ctx context.Context, date string) (*dailylog.ArchiveResult, error) {
	op := "DailyLogUseCase.ArchiveDay"
	log := uc.log.With(slog.String("op", op), slog.String("date", date))

	if !uc.repo.ArchiveEnabled() {
		return nil, dailylog.ErrArchiveDisabled
	}
	if !validation.IsDate(date) {
		return nil, dailylog.ErrLogInvalidDate
	}

	logs, err := uc.repo.ListDailyLogsByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []*dailylog.DailyLog{}
	}

	body, err := json.Marshal(archiveDocument{Date: date, GeneratedAt: uc.nowFn().UTC(), Logs: logs})
	if err != nil {
		return nil, fmt.Errorf("marshal archive for %s: %w", date, err)
	}

	key := uc.prefix + date + ".json"
	if err := uc.repo.PutArchive(ctx, key, body); err != nil {
		return nil, err
	}

	log.Info("daily logs archived", slog.String("key", key), slog.Int("count", len(logs)))
	return &dailylog.ArchiveResult{Date: date, Key: key, Count: len(logs)}, nil
}
