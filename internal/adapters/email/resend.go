package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/resend/resend-go/v2"
)

// ResendSender delivers mail through the Resend API. Receipts are the
// only mail this app sends, so the adapter covers single sends only.
type ResendSender struct {
	client       *resend.Client
	defaultFrom  string
	defaultReply string
}

// NewResendSender returns a sender using apiKey. from and replyTo are
// applied when a request does not name its own; replyTo may be empty.
func NewResendSender(apiKey, from, replyTo string) *ResendSender {
	return &ResendSender{
		client:       resend.NewClient(apiKey),
		defaultFrom:  from,
		defaultReply: replyTo,
	}
}

// buildParams maps a SendRequest onto the Resend payload, applying the
// sender's configured from and reply-to defaults.
func (s *ResendSender) buildParams(req SendRequest) *resend.SendEmailRequest {
	params := &resend.SendEmailRequest{
		From:    req.From,
		To:      req.To,
		Subject: req.Subject,
		Html:    req.HTML,
		ReplyTo: req.ReplyTo,
	}
	if params.From == "" {
		params.From = s.defaultFrom
	}
	if params.ReplyTo == "" {
		params.ReplyTo = s.defaultReply
	}
	return params
}

// Send delivers one email.
// PRE: req has at least one recipient and a subject
// POST: Email is queued for delivery; returns the Resend message ID
func (s *ResendSender) Send(ctx context.Context, req SendRequest) (SendResult, error) {
	sent, err := s.client.Emails.SendWithContext(ctx, s.buildParams(req))
	if err != nil {
		slog.Error("resend_send_failed", "error", err, "to", req.To, "subject", req.Subject)
		return SendResult{}, fmt.Errorf("resend send failed: %w", err)
	}

	slog.Info("resend_sent", "message_id", sent.Id, "to", req.To, "subject", req.Subject)
	return SendResult{MessageID: sent.Id, SentAt: time.Now()}, nil
}
