package audit

import (
	"context"
	"time"

	"gymdesk/internal/adapters/storage"
	domain "gymdesk/internal/domain/audit"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new audit store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Append writes an audit event. Events are never updated or deleted.
// PRE: event has an ID and timestamp
// POST: Event is persisted
func (s *SQLiteStore) Append(ctx context.Context, event domain.Event) error {
	query := `INSERT INTO audit_event
		(id, timestamp, category, action, severity, actor_id, actor_email,
		 resource_type, resource_id, description, ip_address)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		event.ID,
		event.Timestamp.Format(time.RFC3339),
		string(event.Category),
		string(event.Action),
		string(event.Severity),
		event.ActorID,
		event.ActorEmail,
		event.ResourceType,
		event.ResourceID,
		event.Description,
		event.IPAddress,
	)
	return err
}

// List retrieves audit events matching the filter, newest first.
// PRE: filter has valid parameters
// POST: Returns matching events
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Event, error) {
	query := `SELECT id, timestamp, category, action, severity, actor_id, actor_email,
		resource_type, resource_id, description, ip_address FROM audit_event WHERE 1=1`
	var args []any

	if filter.Category != "" {
		query += " AND category = ?"
		args = append(args, filter.Category)
	}
	if filter.ActorID != "" {
		query += " AND actor_id = ?"
		args = append(args, filter.ActorID)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	query += " ORDER BY timestamp DESC, id ASC LIMIT ? OFFSET ?"
	args = append(args, limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Event
	for rows.Next() {
		var e domain.Event
		var ts, category, action, severity string
		if err := rows.Scan(
			&e.ID, &ts, &category, &action, &severity,
			&e.ActorID, &e.ActorEmail, &e.ResourceType, &e.ResourceID,
			&e.Description, &e.IPAddress,
		); err != nil {
			return nil, err
		}
		if t, perr := time.Parse(time.RFC3339, ts); perr == nil {
			e.Timestamp = t
		}
		e.Category = domain.Category(category)
		e.Action = domain.Action(action)
		e.Severity = domain.Severity(severity)
		results = append(results, e)
	}
	return results, rows.Err()
}
