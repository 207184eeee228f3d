package dispatcher

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"smokefree/internal/modules/reminder"
	"smokefree/internal/modules/settings"
	"smokefree/pkg/lib/pushsender"
)

const sendTimeout = 15 * time.Second

type ReminderDispatcher struct {
	sender pushsender.Sender
	log    *slog.Logger
	wg     sync.WaitGroup
}

func New(sender pushsender.Sender, log *slog.Logger) *ReminderDispatcher {
	return &ReminderDispatcher{
		sender: sender,
		log:    log.With(slog.String("service", "ReminderDispatcher")),
	}
}

// Dispatch hands the event to a goroutine. The caller's cancellation does not reach
// the delivery.
func (d *ReminderDispatcher) Dispatch(ctx context.Context, event reminder.Event) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.processEvent(context.WithoutCancel(ctx), event)
	}()
}

// Wait blocks until every dispatched event has been processed.
func (d *ReminderDispatcher) Wait() {
	d.wg.Wait()
}

func (d *ReminderDispatcher) processEvent(ctx context.Context, event reminder.Event) {
	log := d.log.With(slog.String("op", "processEvent"), slog.String("eventType", string(event.Type)))

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	switch event.Type {
	case reminder.EventAlarmDue:
		payload, ok := event.Payload.(reminder.AlarmDuePayload)
		if !ok {
			log.Error("invalid payload type for EventAlarmDue")
			return
		}
		d.handleAlarmDue(ctx, payload, log)
	default:
		log.Warn("unhandled event type")
	}
}

func (d *ReminderDispatcher) handleAlarmDue(ctx context.Context, payload reminder.AlarmDuePayload, log *slog.Logger) {
	log = log.With(slog.String("deviceID", payload.DeviceID), slog.String("alarm", payload.AlarmTime))

	title, body := alarmText(payload.Language, payload.AlarmTime)
	msg := pushsender.PushMessage{
		Title:  title,
		Body:   body,
		Tokens: []string{payload.PushToken},
		Data: map[string]string{
			"type":  "alarm_due",
			"date":  payload.Date,
			"alarm": payload.AlarmTime,
		},
		TTL: 15 * 60,
	}

	res, err := d.sender.Send(ctx, msg)
	if err != nil {
		log.Error("failed to send reminder push", "error", err)
		return
	}
	if res.FailureCount > 0 {
		log.Warn("reminder push rejected by provider", slog.Int("failed", res.FailureCount))
		return
	}
	log.Info("reminder push sent")
}

func alarmText(language, alarmTime string) (string, string) {
	if language == settings.LanguageDE {
		return "Raucherpause", fmt.Sprintf("Es ist %s. Deine nächste geplante Zigarette ist jetzt dran.", alarmTime)
	}
	return "Smoke break", fmt.Sprintf("It's %s. Your next planned cigarette is due now.", alarmTime)
}
