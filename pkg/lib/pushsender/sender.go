package pushsender

import (
	"context"
)

// PushMessage is one notification addressed to one or more device tokens.
type PushMessage struct {
	Title  string
	Body   string
	Tokens []string
	// Data is delivered to the app alongside the notification.
	Data map[string]string
	// TTL bounds how long the provider keeps an undelivered message. Zero means the
	// provider default.
	TTL int
}

type SendResult struct {
	SuccessCount int
	FailureCount int
	// FailedTokens lists tokens the provider rejected, e.g. after an uninstall.
	FailedTokens []string
}

type Sender interface {
	Send(ctx context.Context, msg PushMessage) (*SendResult, error)
	Ping(ctx context.Context) error
}
