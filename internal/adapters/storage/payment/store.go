package payment

import (
	"context"

	domain "gymdesk/internal/domain/payment"
)

// Store persists Payment state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Payment, error)
	Save(ctx context.Context, value domain.Payment) error
	List(ctx context.Context, filter ListFilter) ([]domain.Payment, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
	RevenueForMonth(ctx context.Context, year int, month int) (int, error)
	Recent(ctx context.Context, limit int) ([]domain.Payment, error)
}

// ListFilter carries filtering parameters for List operations.
// Month is "YYYY-MM"; empty means all months. Sorting on computed
// columns (member name) happens in the projection.
type ListFilter struct {
	MemberID string
	Status   string
	Method   string
	Month    string
	Limit    int
	Offset   int
}
