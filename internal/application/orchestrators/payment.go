package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gymdesk/internal/adapters/email"
	"gymdesk/internal/domain/audit"
	"gymdesk/internal/domain/payment"
)

// PaymentStore defines the store interface needed by payment orchestrators.
type PaymentStore interface {
	GetByID(ctx context.Context, id string) (payment.Payment, error)
	Save(ctx context.Context, p payment.Payment) error
}

var ErrPaymentNotFound = errors.New("payment not found")

// --- Record Payment ---

// RecordPaymentInput carries input for the record-payment orchestrator.
type RecordPaymentInput struct {
	MemberID    string
	Amount      int // cents
	Method      string
	Reference   string
	Note        string
	SendReceipt bool
}

// RecordPaymentDeps holds dependencies for RecordPayment.
type RecordPaymentDeps struct {
	PaymentStore PaymentStore
	MemberStore  MemberStore
	EmailSender  email.Sender
	AuditLog     AuditLog
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteRecordPayment records a completed payment against a member.
// The receipt email is best effort: a provider failure is logged, never
// surfaced, because the payment row is already committed.
// PRE: MemberID refers to an existing member, Amount > 0, Method is known
// POST: Payment saved with Status=paid and PaidAt=now; receipt sent if requested
func ExecuteRecordPayment(ctx context.Context, input RecordPaymentInput, actor Actor, deps RecordPaymentDeps) (payment.Payment, error) {
	m, err := deps.MemberStore.GetByID(ctx, input.MemberID)
	if err != nil {
		return payment.Payment{}, ErrMemberNotFound
	}

	p := payment.Payment{
		ID:        deps.GenerateID(),
		MemberID:  input.MemberID,
		Amount:    input.Amount,
		Method:    input.Method,
		Status:    payment.StatusPending,
		Reference: input.Reference,
		Note:      input.Note,
	}
	if err := p.Validate(); err != nil {
		return payment.Payment{}, err
	}
	if err := p.MarkPaid(deps.Now()); err != nil {
		return payment.Payment{}, err
	}

	if err := deps.PaymentStore.Save(ctx, p); err != nil {
		return payment.Payment{}, err
	}

	recordAudit(ctx, deps.AuditLog, audit.NewEvent(actor.AccountID, actor.Email, audit.CategoryBilling, audit.ActionCreate).
		WithResource("payment", p.ID).
		WithDescription(m.Name))

	if input.SendReceipt && deps.EmailSender != nil && m.Email != "" {
		req, err := email.ComposeReceipt(email.ReceiptData{
			MemberName: m.Name,
			MemberMail: m.Email,
			Amount:     p.AmountDollars(),
			Method:     p.Method,
			Reference:  p.Reference,
			PaidAt:     p.PaidAt,
		})
		if err == nil {
			if _, err := deps.EmailSender.Send(ctx, req); err != nil {
				slog.Warn("receipt_send_failed", "payment_id", p.ID, "member_id", m.ID, "error", err)
			}
		}
	}

	return p, nil
}

// --- Refund Payment ---

// RefundPaymentDeps holds dependencies for RefundPayment.
type RefundPaymentDeps struct {
	PaymentStore PaymentStore
	AuditLog     AuditLog
}

// ExecuteRefundPayment marks a paid payment as refunded.
// PRE: ID refers to a payment with Status=paid
// POST: Payment status is refunded; refunded amounts drop out of revenue
func ExecuteRefundPayment(ctx context.Context, id string, actor Actor, deps RefundPaymentDeps) (payment.Payment, error) {
	p, err := deps.PaymentStore.GetByID(ctx, id)
	if err != nil {
		return payment.Payment{}, ErrPaymentNotFound
	}
	if err := p.Refund(); err != nil {
		return payment.Payment{}, err
	}
	if err := deps.PaymentStore.Save(ctx, p); err != nil {
		return payment.Payment{}, err
	}

	recordAudit(ctx, deps.AuditLog, audit.NewEvent(actor.AccountID, actor.Email, audit.CategoryBilling, audit.ActionRefund).
		WithSeverity(audit.SeverityWarning).
		WithResource("payment", p.ID))
	return p, nil
}
