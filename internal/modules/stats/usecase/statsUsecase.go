package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"smokefree/internal/modules/dailylog"
	"smokefree/internal/modules/stats"
	"smokefree/pkg/lib/statistics"
	"time"
)

// LogReader is the slice of the daily log repository statistics need.
type LogReader interface {
	ListDailyLogsSince(ctx context.Context, deviceID, fromDate string) ([]*dailylog.DailyLog, error)
}

type StatsUseCase struct {
	logs          LogReader
	cache         stats.Cache
	log           *slog.Logger
	defaultWindow int
	nowFn         func() time.Time
}

// NewStatsUseCase accepts a nil cache, in which case every request is computed.
func NewStatsUseCase(logs LogReader, cache stats.Cache, defaultWindow int, log *slog.Logger) *StatsUseCase {
	if defaultWindow <= 0 {
		defaultWindow = statistics.DefaultWindowDays
	}
	return &StatsUseCase{
		logs:          logs,
		cache:         cache,
		log:           log,
		defaultWindow: defaultWindow,
		nowFn:         time.Now,
	}
}

// GetStatistics aggregates the device's logs over the trailing window. days == 0
// selects the configured default.
func (uc *StatsUseCase) GetStatistics(ctx context.Context, deviceID string, days int) (*statistics.Statistics, error) {
	op := "StatsUseCase.GetStatistics"
	log := uc.log.With(slog.String("op", op), slog.String("deviceID", deviceID))

	if days == 0 {
		days = uc.defaultWindow
	}
	if days < 1 || days > stats.MaxWindowDays {
		return nil, stats.ErrStatsInvalidRange
	}

	today := uc.nowFn()
	field := fmt.Sprintf("%s:%d", today.Format(statistics.DateLayout), days)

	if uc.cache != nil {
		cached, err := uc.cache.GetStats(ctx, deviceID, field)
		if err == nil {
			log.Debug("statistics served from cache")
			return cached, nil
		}
		if !errors.Is(err, stats.ErrStatsCacheMiss) {
			log.Warn("statistics cache unavailable", "error", err)
		}
	}

	from := today.AddDate(0, 0, -days).Format(statistics.DateLayout)
	rows, err := uc.logs.ListDailyLogsSince(ctx, deviceID, from)
	if err != nil {
		return nil, err
	}

	series := make([]statistics.Day, 0, len(rows))
	for _, r := range rows {
		series = append(series, statistics.Day{Date: r.Date, Smoked: r.CigarettesSmoked, Goal: r.CigarettesGoal})
	}
	result := statistics.Compute(series, days, today)

	if uc.cache != nil {
		if err := uc.cache.SaveStats(ctx, deviceID, field, &result); err != nil {
			log.Warn("failed to cache statistics", "error", err)
		}
	}

	log.Debug("statistics computed", slog.Int("days", len(result.WeeklyData)), slog.String("trend", string(result.Trend)))
	return &result, nil
}

func (uc *StatsUseCase) InvalidateStats(ctx context.Context, deviceID string) error {
	if uc.cache == nil {
		return nil
	}
	return uc.cache.DeleteStats(ctx, deviceID)
}
