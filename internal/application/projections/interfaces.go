package projections

import (
	"context"

	"gymdesk/internal/adapters/storage/gymclass"
	"gymdesk/internal/adapters/storage/member"
	"gymdesk/internal/adapters/storage/payment"
	"gymdesk/internal/adapters/storage/trainer"
	domainClass "gymdesk/internal/domain/gymclass"
	domainMember "gymdesk/internal/domain/member"
	domainPayment "gymdesk/internal/domain/payment"
	domainTrainer "gymdesk/internal/domain/trainer"
)

// MemberStore interface for member queries.
type MemberStore interface {
	GetByID(ctx context.Context, id string) (domainMember.Member, error)
	List(ctx context.Context, filter member.ListFilter) ([]domainMember.Member, error)
	Count(ctx context.Context, filter member.ListFilter) (int, error)
}

// TrainerStore interface for trainer queries.
type TrainerStore interface {
	List(ctx context.Context, filter trainer.ListFilter) ([]domainTrainer.Trainer, error)
	Count(ctx context.Context, filter trainer.ListFilter) (int, error)
}

// ClassStore interface for class queries.
type ClassStore interface {
	List(ctx context.Context, filter gymclass.ListFilter) ([]domainClass.Class, error)
	Count(ctx context.Context, filter gymclass.ListFilter) (int, error)
}

// PaymentStore interface for payment queries.
type PaymentStore interface {
	List(ctx context.Context, filter payment.ListFilter) ([]domainPayment.Payment, error)
	Count(ctx context.Context, filter payment.ListFilter) (int, error)
	RevenueForMonth(ctx context.Context, year int, month int) (int, error)
	Recent(ctx context.Context, limit int) ([]domainPayment.Payment, error)
}
