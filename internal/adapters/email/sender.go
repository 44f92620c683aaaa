// Package email sends transactional mail for the dashboard. Payment
// receipts are the only message type today.
package email

import (
	"context"
	"time"
)

// SendRequest describes one outbound message.
type SendRequest struct {
	To      []string
	From    string // falls back to the sender's configured default when empty
	Subject string
	HTML    string
	ReplyTo string
}

// SendResult reports what the provider accepted.
type SendResult struct {
	MessageID string
	SentAt    time.Time
}

// Sender delivers mail through an external provider.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
}
