package coordinator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"smokefree/internal/device/localcache"
	"smokefree/internal/device/model"
	"smokefree/pkg/lib/schedule"
	"smokefree/pkg/lib/validation"
)

const (
	languageDE      = "de"
	languageEN      = "en"
	backgroundGray  = "gray"
	backgroundBlack = "black"
)

// UpdateSettings applies patch locally and mirrors the result to the store. The
// store call creates the settings when the coordinator held none in memory and
// updates them otherwise.
func (c *Coordinator) UpdateSettings(ctx context.Context, patch model.SettingsPatch) (*model.Settings, error) {
	op := "Coordinator.UpdateSettings"
	log := c.log.With(slog.String("op", op))

	c.mu.RLock()
	var current *model.Settings
	if c.snap.Settings != nil {
		v := *c.snap.Settings
		current = &v
	}
	c.mu.RUnlock()
	known := current != nil

	next := current
	if next == nil {
		next = c.baseSettings(log)
	}
	patch.Apply(next)
	if err := validateSettings(next); err != nil {
		return nil, err
	}
	next.UpdatedAt = c.now()

	if err := c.local.SaveSettings(next); err != nil {
		log.Warn("local settings write failed", slog.String("error", err.Error()))
	}
	saved := *next
	c.update(func(s *Snapshot) { s.Settings = &saved })

	mirror := *next
	c.dispatch(ctx, op, func(ctx context.Context) error {
		if known {
			_, err := c.remote.UpdateSettings(ctx, &mirror)
			return err
		}
		_, err := c.remote.CreateOrUpdateSettings(ctx, &mirror)
		return err
	})

	return next, nil
}

// baseSettings starts a settings record from the local cache or from defaults.
func (c *Coordinator) baseSettings(log *slog.Logger) *model.Settings {
	cached, err := c.local.GetSettings()
	if err == nil {
		return cached
	}
	if !errors.Is(err, localcache.ErrNotFound) {
		log.Warn("local settings read failed", slog.String("error", err.Error()))
	}
	ent := c.loadEntitlement(log)
	s := &model.Settings{
		DeviceID:        c.deviceID,
		Language:        languageEN,
		BackgroundColor: backgroundGray,
	}
	ent.ApplyTo(s)
	return s
}

func validateSettings(s *model.Settings) error {
	if s.DailyCigaretteGoal <= 0 {
		return fmt.Errorf("%w: daily cigarette goal %d", schedule.ErrInvalidGoal, s.DailyCigaretteGoal)
	}
	if _, err := schedule.ParseTimeOfDay(s.WakeTime); err != nil {
		return fmt.Errorf("%w: wake time: %w", ErrInvalidSettings, err)
	}
	if _, err := schedule.ParseTimeOfDay(s.SleepTime); err != nil {
		return fmt.Errorf("%w: sleep time: %w", ErrInvalidSettings, err)
	}
	if s.Language != languageDE && s.Language != languageEN {
		return fmt.Errorf("%w: language %q", ErrInvalidSettings, s.Language)
	}
	if s.BackgroundColor != backgroundGray && s.BackgroundColor != backgroundBlack {
		return fmt.Errorf("%w: background color %q", ErrInvalidSettings, s.BackgroundColor)
	}
	return nil
}

// SetupDay creates the daily log for date with the current goal and computes the
// day's alarm schedule. A log that already exists keeps its count.
func (c *Coordinator) SetupDay(ctx context.Context, date string) (*model.DailyLog, *model.AlarmSchedule, error) {
	op := "Coordinator.SetupDay"
	log := c.log.With(slog.String("op", op), slog.String("date", date))

	if !validation.IsDate(date) {
		return nil, nil, fmt.Errorf("%w: date %q", ErrInvalidLog, date)
	}

	c.mu.RLock()
	current := c.snap.Settings
	c.mu.RUnlock()
	if current == nil {
		cached, err := c.local.GetSettings()
		if err != nil {
			if !errors.Is(err, localcache.ErrNotFound) {
				log.Warn("local settings read failed", slog.String("error", err.Error()))
			}
			return nil, nil, ErrNoSettings
		}
		current = cached
	}

	times, err := schedule.AlarmStrings(current.WakeTime, current.SleepTime, current.DailyCigaretteGoal)
	if err != nil {
		return nil, nil, err
	}

	day := &model.DailyLog{DeviceID: c.deviceID, Date: date, CigarettesGoal: current.DailyCigaretteGoal}
	if existing, err := c.local.GetLog(date); err == nil {
		day.CigarettesSmoked = existing.CigarettesSmoked
	}
	alarms := &model.AlarmSchedule{DeviceID: c.deviceID, Date: date, AlarmTimes: times}

	if err := c.local.SaveLog(day); err != nil {
		log.Warn("local log write failed", slog.String("error", err.Error()))
	}
	if err := c.local.SaveAlarms(alarms); err != nil {
		log.Warn("local alarms write failed", slog.String("error", err.Error()))
	}
	logCopy, alarmsCopy := *day, *alarms
	c.update(func(s *Snapshot) {
		s.Log = &logCopy
		s.Alarms = &alarmsCopy
	})

	c.dispatch(ctx, op, func(ctx context.Context) error {
		_, logErr := c.remote.CreateOrUpdateLog(ctx, &logCopy)
		alarmErr := c.remote.SaveAlarms(ctx, &alarmsCopy)
		return errors.Join(logErr, alarmErr)
	})

	return day, alarms, nil
}

// SaveLogForDate stores l locally and mirrors it to the store.
func (c *Coordinator) SaveLogForDate(ctx context.Context, l model.DailyLog) (*model.DailyLog, error) {
	op := "Coordinator.SaveLogForDate"
	log := c.log.With(slog.String("op", op), slog.String("date", l.Date))

	if !validation.IsDate(l.Date) {
		return nil, fmt.Errorf("%w: date %q", ErrInvalidLog, l.Date)
	}
	if l.CigarettesSmoked < 0 || l.CigarettesGoal < 0 {
		return nil, fmt.Errorf("%w: negative count", ErrInvalidLog)
	}
	l.DeviceID = c.deviceID

	if err := c.local.SaveLog(&l); err != nil {
		log.Warn("local log write failed", slog.String("error", err.Error()))
	}
	saved := l
	c.update(func(s *Snapshot) { s.Log = &saved })

	mirror := l
	c.dispatch(ctx, op, func(ctx context.Context) error {
		_, err := c.remote.CreateOrUpdateLog(ctx, &mirror)
		return err
	})

	return &l, nil
}

// IncrementCigarettes adds one cigarette to today's log. Without a log for today it
// does nothing and returns nil. The store's own count is not reconciled back.
func (c *Coordinator) IncrementCigarettes(ctx context.Context) (*model.DailyLog, error) {
	op := "Coordinator.IncrementCigarettes"
	today := c.today()
	log := c.log.With(slog.String("op", op), slog.String("date", today))

	c.mu.RLock()
	var day *model.DailyLog
	if c.snap.Log != nil && c.snap.Log.Date == today {
		v := *c.snap.Log
		day = &v
	}
	c.mu.RUnlock()

	if day == nil {
		cached, err := c.local.GetLog(today)
		if err != nil {
			if !errors.Is(err, localcache.ErrNotFound) {
				log.Warn("local log read failed", slog.String("error", err.Error()))
			}
			log.Debug("no log for today, increment skipped")
			return nil, nil
		}
		day = cached
	}

	day.CigarettesSmoked++
	if err := c.local.SaveLog(day); err != nil {
		log.Warn("local log write failed", slog.String("error", err.Error()))
	}
	saved := *day
	c.update(func(s *Snapshot) { s.Log = &saved })

	c.dispatch(ctx, op, func(ctx context.Context) error {
		result, err := c.remote.IncrementLog(ctx, c.deviceID, today)
		if err != nil {
			return err
		}
		log.Debug("store incremented",
			slog.Int("storeCount", result.CigarettesSmoked),
			slog.Int("localCount", saved.CigarettesSmoked),
		)
		return nil
	})

	return day, nil
}
