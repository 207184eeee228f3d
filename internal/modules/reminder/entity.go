package reminder

import (
	"context"
	"time"

	"smokefree/internal/modules/alarm"
	"smokefree/internal/modules/settings"
)

type EventType string

const (
	EventAlarmDue EventType = "ALARM_DUE"
)

type Event struct {
	Type    EventType
	Payload interface{}
}

// AlarmDuePayload is one scheduled cigarette reaching its time on one device.
type AlarmDuePayload struct {
	DeviceID  string
	PushToken string
	Language  string
	AlarmTime string
	Date      string
}

// Dispatcher delivers events asynchronously. Dispatch never blocks on delivery.
type Dispatcher interface {
	Dispatch(ctx context.Context, event Event)
}

type AlarmSource interface {
	DueAlarms(ctx context.Context, now time.Time) ([]*alarm.AlarmSchedule, error)
}

type TargetSource interface {
	GetPushTargets(ctx context.Context, deviceIDs []string) ([]settings.PushTarget, error)
}

type UseCase interface {
	ProcessDueReminders(ctx context.Context, now time.Time) (int, error)
}
