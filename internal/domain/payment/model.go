package payment

import (
	"errors"
	"strings"
	"time"
)

// Payment method constants
const (
	MethodCash     = "cash"
	MethodCard     = "card"
	MethodTransfer = "transfer"
)

// Status constants
const (
	StatusPaid     = "paid"
	StatusPending  = "pending"
	StatusRefunded = "refunded"
)

// ValidMethods contains all valid payment method values.
var ValidMethods = []string{MethodCash, MethodCard, MethodTransfer}

// Domain errors
var (
	ErrEmptyMemberID   = errors.New("payment member ID cannot be empty")
	ErrInvalidAmount   = errors.New("payment amount must be greater than zero")
	ErrInvalidMethod   = errors.New("method must be 'cash', 'card', or 'transfer'")
	ErrInvalidStatus   = errors.New("status must be 'paid', 'pending', or 'refunded'")
	ErrNotPaid         = errors.New("only paid payments can be refunded")
	ErrAlreadyPaid     = errors.New("payment is already paid")
	ErrAlreadyRefunded = errors.New("payment is already refunded")
)

// Payment records a single payment made by a member.
// Amount is stored in cents to avoid floating point drift.
type Payment struct {
	ID        string
	MemberID  string
	Amount    int
	Method    string
	Status    string
	Reference string
	PaidAt    time.Time
	Note      string
}

// Validate checks if the Payment has valid data.
// PRE: Payment struct is populated
// POST: Returns nil if valid, error otherwise
func (p *Payment) Validate() error {
	if strings.TrimSpace(p.MemberID) == "" {
		return ErrEmptyMemberID
	}
	if p.Amount <= 0 {
		return ErrInvalidAmount
	}
	if !isValidMethod(p.Method) {
		return ErrInvalidMethod
	}
	if p.Status != StatusPaid && p.Status != StatusPending && p.Status != StatusRefunded {
		return ErrInvalidStatus
	}
	return nil
}

// MarkPaid transitions a pending payment to paid.
// PRE: Payment is pending
// POST: Status is paid, PaidAt is set
func (p *Payment) MarkPaid(now time.Time) error {
	if p.Status == StatusPaid {
		return ErrAlreadyPaid
	}
	if p.Status == StatusRefunded {
		return ErrAlreadyRefunded
	}
	p.Status = StatusPaid
	p.PaidAt = now
	return nil
}

// Refund transitions a paid payment to refunded.
// PRE: Payment is paid
// POST: Status is refunded
func (p *Payment) Refund() error {
	if p.Status == StatusRefunded {
		return ErrAlreadyRefunded
	}
	if p.Status != StatusPaid {
		return ErrNotPaid
	}
	p.Status = StatusRefunded
	return nil
}

// AmountDollars returns the amount in dollars.
// INVARIANT: Payment fields are not mutated
func (p *Payment) AmountDollars() float64 {
	return float64(p.Amount) / 100.0
}

func isValidMethod(method string) bool {
	for _, m := range ValidMethods {
		if m == method {
			return true
		}
	}
	return false
}
