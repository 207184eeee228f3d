package coordinator

import (
	"context"
	"errors"
	"log/slog"

	"smokefree/internal/device/localcache"
	"smokefree/internal/device/model"
	"smokefree/internal/device/remote"
	"smokefree/pkg/lib/statistics"
)

// GetSettings returns the cached settings, or nil when the device has none yet, and
// refreshes them from the store in the background.
func (c *Coordinator) GetSettings(ctx context.Context) *model.Settings {
	op := "Coordinator.GetSettings"
	log := c.log.With(slog.String("op", op))

	cached, err := c.local.GetSettings()
	if err != nil {
		cached = nil
		if !errors.Is(err, localcache.ErrNotFound) {
			log.Warn("local settings read failed", slog.String("error", err.Error()))
		}
	}
	ent := c.loadEntitlement(log)

	c.update(func(s *Snapshot) {
		s.Phase = PhaseCache
		if cached != nil {
			s.Settings = cached
		}
		s.Entitlement = ent
	})

	c.dispatch(ctx, op, func(ctx context.Context) error {
		fresh, err := c.remote.GetSettings(ctx, c.deviceID)
		if errors.Is(err, remote.ErrNotFound) {
			c.apply(func(s *Snapshot) { s.Phase = PhaseRemote })
			return nil
		}
		if err != nil {
			return err
		}

		ent := model.EntitlementOf(fresh)
		pending, ok := c.pendingGrant(log)
		if ok {
			// The store has not seen the local grant yet.
			pending.ApplyTo(fresh)
			ent = pending
		}
		if err := c.local.SaveSettings(fresh); err != nil {
			log.Warn("local settings write failed", slog.String("error", err.Error()))
		}
		if err := c.local.SaveEntitlement(&ent); err != nil {
			log.Warn("local entitlement write failed", slog.String("error", err.Error()))
		}
		c.apply(func(s *Snapshot) {
			s.Phase = PhaseRemote
			s.Settings = fresh
			s.Entitlement = ent
		})
		c.mu.Lock()
		c.entitlementLoaded = true
		c.mu.Unlock()

		if ok {
			return c.pushGrant(ctx, log, pending.PromoCode)
		}
		return nil
	})

	return cached
}

// GetLogForDate returns the cached log for date, or nil, and refreshes it from the
// store in the background.
func (c *Coordinator) GetLogForDate(ctx context.Context, date string) *model.DailyLog {
	op := "Coordinator.GetLogForDate"
	log := c.log.With(slog.String("op", op), slog.String("date", date))

	cached, err := c.local.GetLog(date)
	if err != nil {
		cached = nil
		if !errors.Is(err, localcache.ErrNotFound) {
			log.Warn("local log read failed", slog.String("error", err.Error()))
		}
	}

	c.update(func(s *Snapshot) {
		s.Phase = PhaseCache
		s.Log = cached
	})

	c.dispatch(ctx, op, func(ctx context.Context) error {
		fresh, err := c.remote.GetLog(ctx, c.deviceID, date)
		if errors.Is(err, remote.ErrNotFound) {
			c.apply(func(s *Snapshot) { s.Phase = PhaseRemote })
			return nil
		}
		if err != nil {
			return err
		}

		if err := c.local.SaveLog(fresh); err != nil {
			log.Warn("local log write failed", slog.String("error", err.Error()))
		}
		c.apply(func(s *Snapshot) {
			s.Phase = PhaseRemote
			if s.Log == nil || s.Log.Date == date {
				s.Log = fresh
			}
		})
		return nil
	})

	return cached
}

// GetAlarms returns the cached alarm schedule for date, or nil, and refreshes it
// from the store in the background.
func (c *Coordinator) GetAlarms(ctx context.Context, date string) *model.AlarmSchedule {
	op := "Coordinator.GetAlarms"
	log := c.log.With(slog.String("op", op), slog.String("date", date))

	cached, err := c.local.GetAlarms(date)
	if err != nil {
		cached = nil
		if !errors.Is(err, localcache.ErrNotFound) {
			log.Warn("local alarms read failed", slog.String("error", err.Error()))
		}
	}

	c.update(func(s *Snapshot) {
		s.Phase = PhaseCache
		s.Alarms = cached
	})

	c.dispatch(ctx, op, func(ctx context.Context) error {
		fresh, err := c.remote.GetAlarms(ctx, c.deviceID, date)
		if errors.Is(err, remote.ErrNotFound) {
			c.apply(func(s *Snapshot) { s.Phase = PhaseRemote })
			return nil
		}
		if err != nil {
			return err
		}

		if err := c.local.SaveAlarms(fresh); err != nil {
			log.Warn("local alarms write failed", slog.String("error", err.Error()))
		}
		c.apply(func(s *Snapshot) {
			s.Phase = PhaseRemote
			if s.Alarms == nil || s.Alarms.Date == date {
				s.Alarms = fresh
			}
		})
		return nil
	})

	return cached
}

// GetStatistics aggregates the locally cached logs over days (zero means the
// configured window) and refreshes the figures from the store in the background.
func (c *Coordinator) GetStatistics(ctx context.Context, days int) statistics.Statistics {
	op := "Coordinator.GetStatistics"
	log := c.log.With(slog.String("op", op))

	if days <= 0 {
		days = c.window
	}

	logs, err := c.local.ListLogs()
	if err != nil {
		log.Warn("local logs read failed", slog.String("error", err.Error()))
		logs = nil
	}
	series := make([]statistics.Day, 0, len(logs))
	for _, l := range logs {
		series = append(series, statistics.Day{Date: l.Date, Smoked: l.CigarettesSmoked, Goal: l.CigarettesGoal})
	}
	local := statistics.Compute(series, days, c.now())

	c.update(func(s *Snapshot) {
		s.Phase = PhaseCache
		v := local
		s.Statistics = &v
	})

	c.dispatch(ctx, op, func(ctx context.Context) error {
		fresh, err := c.remote.GetStatistics(ctx, c.deviceID, days)
		if err != nil {
			return err
		}
		c.apply(func(s *Snapshot) {
			s.Phase = PhaseRemote
			s.Statistics = fresh
		})
		return nil
	})

	return local
}

// IsPremium reports whether the device holds an unexpired premium entitlement.
func (c *Coordinator) IsPremium() bool {
	c.mu.RLock()
	loaded := c.entitlementLoaded
	ent := c.snap.Entitlement
	c.mu.RUnlock()

	if !loaded {
		ent = c.loadEntitlement(c.log.With(slog.String("op", "Coordinator.IsPremium")))
		c.apply(func(s *Snapshot) { s.Entitlement = ent })
	}
	return ent.Active(c.now())
}

func (c *Coordinator) loadEntitlement(log *slog.Logger) model.Entitlement {
	ent, err := c.local.GetEntitlement()
	c.mu.Lock()
	c.entitlementLoaded = true
	c.mu.Unlock()
	if err != nil {
		if !errors.Is(err, localcache.ErrNotFound) {
			log.Warn("local entitlement read failed", slog.String("error", err.Error()))
		}
		return model.Entitlement{}
	}
	return *ent
}
