package fcm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"smokefree/config"
	"smokefree/pkg/lib/pushsender"
)

type FCMSender struct {
	client *messaging.Client
	log    *slog.Logger
}

var _ pushsender.Sender = (*FCMSender)(nil)

// NewFCMSender authenticates with the service account file when configured and with
// Application Default Credentials otherwise.
func NewFCMSender(ctx context.Context, cfg config.FCMConfig, logger *slog.Logger) (*FCMSender, error) {
	log := logger.With(slog.String("component", "FCMSender"))

	if !cfg.Enabled() {
		return nil, errors.New("fcm: project_id or service_account_key_json_path is required")
	}

	var opts []option.ClientOption
	if cfg.ServiceAccountKeyJSONPath != "" {
		log.Info("using service account key for FCM", slog.String("path", cfg.ServiceAccountKeyJSONPath))
		opts = append(opts, option.WithCredentialsFile(cfg.ServiceAccountKeyJSONPath))
	}

	var fbCfg *firebase.Config
	if cfg.ProjectID != "" {
		fbCfg = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, fbCfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("initializing firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting firebase messaging client: %w", err)
	}

	log.Info("FCM sender initialized")
	return &FCMSender{
		client: client,
		log:    log,
	}, nil
}

func (s *FCMSender) Send(ctx context.Context, msg pushsender.PushMessage) (*pushsender.SendResult, error) {
	op := "FCMSender.Send"
	log := s.log.With(slog.String("op", op), slog.Int("tokens", len(msg.Tokens)))

	if len(msg.Tokens) == 0 {
		return &pushsender.SendResult{}, nil
	}

	android := &messaging.AndroidConfig{
		Priority: "high",
		Notification: &messaging.AndroidNotification{
			Sound:     "default",
			ChannelID: "reminders",
		},
	}
	if msg.TTL > 0 {
		ttl := time.Duration(msg.TTL) * time.Second
		android.TTL = &ttl
	}

	br, err := s.client.SendEachForMulticast(ctx, &messaging.MulticastMessage{
		Notification: &messaging.Notification{Title: msg.Title, Body: msg.Body},
		Data:         msg.Data,
		Tokens:       msg.Tokens,
		Android:      android,
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{Aps: &messaging.Aps{Sound: "default"}},
		},
	})
	if err != nil {
		log.Error("fcm multicast failed", "error", err)
		return &pushsender.SendResult{FailureCount: len(msg.Tokens), FailedTokens: msg.Tokens}, fmt.Errorf("fcm send: %w", err)
	}

	result := &pushsender.SendResult{SuccessCount: br.SuccessCount, FailureCount: br.FailureCount}
	for i, r := range br.Responses {
		if r.Success || i >= len(msg.Tokens) {
			continue
		}
		result.FailedTokens = append(result.FailedTokens, msg.Tokens[i])
		if r.Error != nil {
			log.Warn("fcm delivery failed", slog.Bool("unregistered", messaging.IsUnregistered(r.Error)), "error", r.Error)
		}
	}

	log.Debug("fcm multicast sent", slog.Int("success", br.SuccessCount), slog.Int("failure", br.FailureCount))
	return result, nil
}

func (s *FCMSender) Ping(ctx context.Context) error {
	if s.client == nil {
		return errors.New("fcm client not initialized")
	}
	return nil
}
