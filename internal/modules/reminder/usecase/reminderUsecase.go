package usecase

import (
	"context"
	"log/slog"
	"time"

	"smokefree/internal/modules/reminder"
	"smokefree/pkg/lib/schedule"
)

type ReminderUseCase struct {
	alarms     reminder.AlarmSource
	targets    reminder.TargetSource
	dispatcher reminder.Dispatcher
	log        *slog.Logger
}

func NewReminderUseCase(
	alarms reminder.AlarmSource,
	targets reminder.TargetSource,
	dispatcher reminder.Dispatcher,
	log *slog.Logger,
) reminder.UseCase {
	return &ReminderUseCase{
		alarms:     alarms,
		targets:    targets,
		dispatcher: dispatcher,
		log:        log,
	}
}

// ProcessDueReminders dispatches a push for every alarm due at now's minute on a
// device with a push token, and returns how many were dispatched.
func (uc *ReminderUseCase) ProcessDueReminders(ctx context.Context, now time.Time) (int, error) {
	op := "ReminderUseCase.ProcessDueReminders"
	current := schedule.TimeOfDay{Hour: now.Hour(), Minute: now.Minute()}.String()
	log := uc.log.With(slog.String("op", op), slog.String("time", current))

	due, err := uc.alarms.DueAlarms(ctx, now)
	if err != nil {
		log.Error("failed to load due alarms", "error", err)
		return 0, err
	}
	if len(due) == 0 {
		return 0, nil
	}

	dates := make(map[string]string, len(due))
	deviceIDs := make([]string, 0, len(due))
	for _, s := range due {
		if _, seen := dates[s.DeviceID]; !seen {
			deviceIDs = append(deviceIDs, s.DeviceID)
		}
		dates[s.DeviceID] = s.Date
	}

	targets, err := uc.targets.GetPushTargets(ctx, deviceIDs)
	if err != nil {
		log.Error("failed to load push targets", "error", err)
		return 0, err
	}

	for _, t := range targets {
		uc.dispatcher.Dispatch(ctx, reminder.Event{
			Type: reminder.EventAlarmDue,
			Payload: reminder.AlarmDuePayload{
				DeviceID:  t.DeviceID,
				PushToken: t.PushToken,
				Language:  t.Language,
				AlarmTime: current,
				Date:      dates[t.DeviceID],
			},
		})
	}

	log.Info("reminders dispatched", slog.Int("due", len(deviceIDs)), slog.Int("sent", len(targets)))
	return len(targets), nil
}
