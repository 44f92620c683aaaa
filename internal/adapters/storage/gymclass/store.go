package gymclass

import (
	"context"

	domain "gymdesk/internal/domain/gymclass"
)

// Store persists Class state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Class, error)
	Save(ctx context.Context, value domain.Class) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Class, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
}

// ListFilter carries filtering parameters for List operations.
// Sorting on computed columns (trainer name) happens in the projection,
// so the SQL layer only orders by schedule position.
type ListFilter struct {
	Search    string
	Category  string
	Day       string
	Status    string
	TrainerID string
	Limit     int
	Offset    int
}
