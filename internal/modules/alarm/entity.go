package alarm

import (
	"context"
	"net/http"
	"time"

	"smokefree/pkg/lib/schedule"
	"smokefree/pkg/lib/validation"
)

// AlarmSchedule is the GORM model for 'alarm_schedules'. AlarmTimes is stored as a
// JSON array of "HH:MM" strings.
type AlarmSchedule struct {
	ID         uint      `gorm:"primaryKey;column:id"`
	DeviceID   string    `gorm:"column:device_id;type:varchar(128);not null;uniqueIndex:uq_alarm_schedules_device_date"`
	Date       string    `gorm:"column:date;type:varchar(10);not null;uniqueIndex:uq_alarm_schedules_device_date"`
	AlarmTimes []string  `gorm:"column:alarm_times;type:text;serializer:json;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt  time.Time `gorm:"column:updated_at;not null;default:CURRENT_TIMESTAMP"`
}

func (AlarmSchedule) TableName() string {
	return "alarm_schedules"
}

// FiresAt reports whether the schedule has an alarm at the given wall-clock minute.
// The first alarm is the wake time; earlier times belong to the early hours of the
// following calendar day.
func (a *AlarmSchedule) FiresAt(now time.Time) bool {
	if len(a.AlarmTimes) == 0 {
		return false
	}
	current := schedule.TimeOfDay{Hour: now.Hour(), Minute: now.Minute()}.String()
	today := now.Format(validation.DateLayout)
	yesterday := now.AddDate(0, 0, -1).Format(validation.DateLayout)
	wake := a.AlarmTimes[0]

	for _, t := range a.AlarmTimes {
		if t != current {
			continue
		}
		if t >= wake && a.Date == today {
			return true
		}
		if t < wake && a.Date == yesterday {
			return true
		}
	}
	return false
}

type AlarmScheduleResponse struct {
	DeviceID   string   `json:"deviceId"`
	Date       string   `json:"date"`
	AlarmTimes []string `json:"alarmTimes"`
}

type SaveAlarmsRequest struct {
	DeviceID   string   `json:"deviceId" validate:"required,max=128"`
	Date       string   `json:"date" validate:"required,ymd"`
	AlarmTimes []string `json:"alarmTimes" validate:"required,max=500,dive,hhmm"`
}

func ToAlarmScheduleResponse(a *AlarmSchedule) *AlarmScheduleResponse {
	times := a.AlarmTimes
	if times == nil {
		times = []string{}
	}
	return &AlarmScheduleResponse{
		DeviceID:   a.DeviceID,
		Date:       a.Date,
		AlarmTimes: times,
	}
}

type Controller interface {
	GetAlarms(w http.ResponseWriter, r *http.Request)
	SaveAlarms(w http.ResponseWriter, r *http.Request)
}

type UseCase interface {
	GetAlarms(ctx context.Context, deviceID, date string) (*AlarmScheduleResponse, error)
	SaveAlarms(ctx context.Context, req SaveAlarmsRequest) (*AlarmScheduleResponse, error)
	DueAlarms(ctx context.Context, now time.Time) ([]*AlarmSchedule, error)
}

type Repo interface {
	GetAlarmSchedule(ctx context.Context, deviceID, date string) (*AlarmSchedule, error)
	SaveAlarmSchedule(ctx context.Context, a *AlarmSchedule) (*AlarmSchedule, error)
	FindSchedulesContaining(ctx context.Context, dates []string, hhmm string) ([]*AlarmSchedule, error)
}
