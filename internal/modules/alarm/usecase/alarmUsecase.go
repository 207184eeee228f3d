package usecase

import (
	"context"
	"log/slog"
	"smokefree/internal/modules/alarm"
	"smokefree/pkg/lib/schedule"
	"smokefree/pkg/lib/validation"
	"time"
)

type AlarmUseCase struct {
	repo alarm.Repo
	log  *slog.Logger
}

func NewAlarmUseCase(repo alarm.Repo, log *slog.Logger) alarm.UseCase {
	return &AlarmUseCase{
		repo: repo,
		log:  log,
	}
}

// GetAlarms returns an empty schedule when none was saved for the day.
func (uc *AlarmUseCase) GetAlarms(ctx context.Context, deviceID, date string) (*alarm.AlarmScheduleResponse, error) {
	if !validation.IsDate(date) {
		return nil, alarm.ErrAlarmInvalidDate
	}

	model, err := uc.repo.GetAlarmSchedule(ctx, deviceID, date)
	if err != nil {
		return nil, err
	}
	if model == nil {
		model = &alarm.AlarmSchedule{DeviceID: deviceID, Date: date}
	}
	return alarm.ToAlarmScheduleResponse(model), nil
}

func (uc *AlarmUseCase) SaveAlarms(ctx context.Context, req alarm.SaveAlarmsRequest) (*alarm.AlarmScheduleResponse, error) {
	op := "AlarmUseCase.SaveAlarms"
	log := uc.log.With(slog.String("op", op), slog.String("deviceID", req.DeviceID), slog.String("date", req.Date))

	times := make([]string, 0, len(req.AlarmTimes))
	for _, t := range req.AlarmTimes {
		parsed, err := schedule.ParseTimeOfDay(t)
		if err != nil {
			return nil, alarm.ErrAlarmInvalid
		}
		times = append(times, parsed.String())
	}

	saved, err := uc.repo.SaveAlarmSchedule(ctx, &alarm.AlarmSchedule{
		DeviceID:   req.DeviceID,
		Date:       req.Date,
		AlarmTimes: times,
	})
	if err != nil {
		return nil, err
	}

	log.Info("alarm schedule saved", slog.Int("alarms", len(times)))
	return alarm.ToAlarmScheduleResponse(saved), nil
}

// DueAlarms returns every schedule with an alarm at now's minute, including
// yesterday's schedules whose window runs past midnight.
func (uc *AlarmUseCase) DueAlarms(ctx context.Context, now time.Time) ([]*alarm.AlarmSchedule, error) {
	hhmm := schedule.TimeOfDay{Hour: now.Hour(), Minute: now.Minute()}.String()
	dates := []string{
		now.Format(validation.DateLayout),
		now.AddDate(0, 0, -1).Format(validation.DateLayout),
	}

	candidates, err := uc.repo.FindSchedulesContaining(ctx, dates, hhmm)
	if err != nil {
		return nil, err
	}

	due := candidates[:0]
	for _, s := range candidates {
		if s.FiresAt(now) {
			due = append(due, s)
		}
	}
	return due, nil
}
