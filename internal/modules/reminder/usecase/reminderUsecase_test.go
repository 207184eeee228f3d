package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smokefree/internal/modules/alarm"
	"smokefree/internal/modules/reminder"
	"smokefree/internal/modules/settings"
)

type fakeAlarms []*alarm.AlarmSchedule

func (f fakeAlarms) DueAlarms(context.Context, time.Time) ([]*alarm.AlarmSchedule, error) {
	return f, nil
}

type fakeTargets map[string]settings.PushTarget

func (f fakeTargets) GetPushTargets(_ context.Context, deviceIDs []string) ([]settings.PushTarget, error) {
	var out []settings.PushTarget
	for _, id := range deviceIDs {
		if t, ok := f[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

type recordingDispatcher struct {
	events []reminder.Event
}

func (r *recordingDispatcher) Dispatch(_ context.Context, e reminder.Event) {
	r.events = append(r.events, e)
}

func TestProcessDueReminders(t *testing.T) {
	alarms := fakeAlarms{
		{DeviceID: "a", Date: "2026-03-10", AlarmTimes: []string{"06:00", "06:51"}},
		{DeviceID: "b", Date: "2026-03-10", AlarmTimes: []string{"06:51"}},
	}
	targets := fakeTargets{"a": {DeviceID: "a", PushToken: "tok-a", Language: "en"}}
	d := &recordingDispatcher{}
	uc := NewReminderUseCase(alarms, targets, d, slog.New(slog.NewTextHandler(io.Discard, nil)))

	n, err := uc.ProcessDueReminders(context.Background(), time.Date(2026, 3, 10, 6, 51, 30, 0, time.Local))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.Len(t, d.events, 1)
	payload := d.events[0].Payload.(reminder.AlarmDuePayload)
	assert.Equal(t, "tok-a", payload.PushToken)
	assert.Equal(t, "06:51", payload.AlarmTime)
	assert.Equal(t, "2026-03-10", payload.Date)
}

func TestProcessDueReminders_NothingDue(t *testing.T) {
	d := &recordingDispatcher{}
	uc := NewReminderUseCase(fakeAlarms{}, fakeTargets{}, d, slog.New(slog.NewTextHandler(io.Discard, nil)))
	n, err := uc.ProcessDueReminders(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, d.events)
}
