package audit

import (
	"context"

	domain "gymdesk/internal/domain/audit"
)

// Store persists audit events. Events are append-only.
type Store interface {
	Append(ctx context.Context, event domain.Event) error
	List(ctx context.Context, filter ListFilter) ([]domain.Event, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Category string
	ActorID  string
	Limit    int
	Offset   int
}
