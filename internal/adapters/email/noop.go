package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// NoopSender logs sends without delivering anything. It is the default in
// development and in tests, where a missing provider key must not break
// payment flows.
type NoopSender struct{}

func NewNoopSender() *NoopSender { return &NoopSender{} }

// Send records the would-be delivery in the log and succeeds.
func (s *NoopSender) Send(_ context.Context, req SendRequest) (SendResult, error) {
	now := time.Now()
	slog.Info("noop_email_send", "to", req.To, "subject", req.Subject)
	return SendResult{
		MessageID: fmt.Sprintf("noop-%d", now.UnixNano()),
		SentAt:    now,
	}, nil
}
