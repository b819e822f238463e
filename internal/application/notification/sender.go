package notification

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Sender delivers a push notification to a single device token. Delivery is
// best effort: callers log failures but never fail the triggering request.
type Sender interface {
	Send(ctx context.Context, deviceToken, title, body string, data map[string]string) error
}

// LogSender is a no-op Sender used when push delivery is not configured
type LogSender struct{}

func (LogSender) Send(ctx context.Context, deviceToken, title, body string, data map[string]string) error {
	log.Debug().
		Str("title", title).
		Str("body", body).
		Msg("Push delivery not configured, dropping notification")
	return nil
}
