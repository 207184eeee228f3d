package dispatcher

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smokefree/internal/modules/reminder"
	"smokefree/pkg/lib/pushsender"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []pushsender.PushMessage
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg pushsender.PushMessage) (*pushsender.SendResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	if f.err != nil {
		return nil, f.err
	}
	return &pushsender.SendResult{SuccessCount: len(msg.Tokens)}, nil
}

func (f *fakeSender) Ping(context.Context) error { return nil }

func TestDispatch_AlarmDue(t *testing.T) {
	sender := &fakeSender{}
	d := New(sender, slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	d.Dispatch(ctx, reminder.Event{Type: reminder.EventAlarmDue, Payload: reminder.AlarmDuePayload{
		DeviceID: "dev-1", PushToken: "tok-1", Language: "de", AlarmTime: "06:51", Date: "2026-03-10",
	}})
	d.Dispatch(ctx, reminder.Event{Type: reminder.EventAlarmDue, Payload: reminder.AlarmDuePayload{
		DeviceID: "dev-2", PushToken: "tok-2", Language: "en", AlarmTime: "06:51", Date: "2026-03-10",
	}})
	cancel()
	d.Wait()

	require.Len(t, sender.sent, 2)
	titles := []string{sender.sent[0].Title, sender.sent[1].Title}
	assert.ElementsMatch(t, []string{"Raucherpause", "Smoke break"}, titles)
	for _, m := range sender.sent {
		assert.Equal(t, "alarm_due", m.Data["type"])
		assert.Contains(t, m.Body, "06:51")
	}
}

func TestDispatch_SenderFailureIsSwallowed(t *testing.T) {
	sender := &fakeSender{err: errors.New("fcm down")}
	d := New(sender, slog.New(slog.NewTextHandler(io.Discard, nil)))

	d.Dispatch(context.Background(), reminder.Event{Type: reminder.EventAlarmDue, Payload: reminder.AlarmDuePayload{PushToken: "t"}})
	d.Dispatch(context.Background(), reminder.Event{Type: reminder.EventAlarmDue, Payload: "wrong payload"})
	d.Wait()

	assert.Len(t, sender.sent, 1)
}
