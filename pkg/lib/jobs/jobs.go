// Package jobs holds the scheduled maintenance work run by the server's cron.
package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"smokefree/internal/modules/dailylog"
)

const jobTimeout = 2 * time.Minute

type PremiumExpirer interface {
	ExpirePremium(ctx context.Context, now time.Time) (int64, error)
}

type DayArchiver interface {
	ArchiveDay(ctx context.Context, date string) (*dailylog.ArchiveResult, error)
}

type ReminderProcessor interface {
	ProcessDueReminders(ctx context.Context, now time.Time) (int, error)
}

// Service methods take no arguments so they can be handed to cron directly. A nil
// collaborator turns its job into a no-op.
type Service struct {
	premium   PremiumExpirer
	archiver  DayArchiver
	reminders ReminderProcessor
	log       *slog.Logger
	nowFn     func() time.Time
}

func NewService(premium PremiumExpirer, archiver DayArchiver, reminders ReminderProcessor, log *slog.Logger) *Service {
	return &Service{
		premium:   premium,
		archiver:  archiver,
		reminders: reminders,
		log:       log,
		nowFn:     time.Now,
	}
}

func (s *Service) ExpirePremium() {
	op := "jobs.ExpirePremium"
	log := s.log.With(slog.String("op", op))
	if s.premium == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := s.premium.ExpirePremium(ctx, s.nowFn())
	if err != nil {
		log.Error("premium expiry failed", "error", err)
		return
	}
	log.Info("premium expiry finished", slog.Int64("expired", n))
}

// ArchiveYesterday archives the previous local day, which no device writes to anymore.
func (s *Service) ArchiveYesterday() {
	op := "jobs.ArchiveYesterday"
	log := s.log.With(slog.String("op", op))
	if s.archiver == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	date := s.nowFn().AddDate(0, 0, -1).Format("2006-01-02")
	res, err := s.archiver.ArchiveDay(ctx, date)
	if err != nil {
		log.Error("daily log archive failed", slog.String("date", date), "error", err)
		return
	}
	log.Info("daily log archive finished", slog.String("key", res.Key), slog.Int("logs", res.Count))
}

func (s *Service) SendDueReminders() {
	op := "jobs.SendDueReminders"
	log := s.log.With(slog.String("op", op))
	if s.reminders == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := s.reminders.ProcessDueReminders(ctx, s.nowFn())
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("reminder run failed", "error", err)
		return
	}
	if n > 0 {
		log.Debug("reminder run finished", slog.Int("dispatched", n))
	}
}
