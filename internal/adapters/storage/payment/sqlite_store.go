package payment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gymdesk/internal/adapters/storage"
	domain "gymdesk/internal/domain/payment"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new payment store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const paymentColumns = "id, member_id, amount, method, status, reference, paid_at, note"

// scanPayment scans one payment row from a row scanner.
func scanPayment(scan func(dest ...any) error) (domain.Payment, error) {
	var entity domain.Payment
	var reference, note sql.NullString
	var paidAt string
	err := scan(
		&entity.ID,
		&entity.MemberID,
		&entity.Amount,
		&entity.Method,
		&entity.Status,
		&reference,
		&paidAt,
		&note,
	)
	if err != nil {
		return domain.Payment{}, err
	}
	if reference.Valid {
		entity.Reference = reference.String
	}
	if note.Valid {
		entity.Note = note.String
	}
	if t, perr := time.Parse(time.RFC3339, paidAt); perr == nil {
		entity.PaidAt = t
	}
	return entity, nil
}

// GetByID retrieves a Payment by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Payment, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+paymentColumns+" FROM payment WHERE id = ?", id)
	entity, err := scanPayment(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Payment{}, fmt.Errorf("payment not found: %w", err)
	}
	return entity, err
}

// Save persists a Payment to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Payment) error {
	query := `INSERT INTO payment (id, member_id, amount, method, status, reference, paid_at, note)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			member_id=excluded.member_id, amount=excluded.amount, method=excluded.method,
			status=excluded.status, reference=excluded.reference, paid_at=excluded.paid_at,
			note=excluded.note`

	var reference, note any
	if entity.Reference != "" {
		reference = entity.Reference
	}
	if entity.Note != "" {
		note = entity.Note
	}

	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.MemberID,
		entity.Amount,
		entity.Method,
		entity.Status,
		reference,
		entity.PaidAt.Format(time.RFC3339),
		note,
	)
	return err
}

// listWhereClause builds the WHERE clause and args for List/Count queries.
func listWhereClause(filter ListFilter) (string, []any) {
	where := " WHERE 1=1"
	var args []any

	if filter.MemberID != "" {
		where += " AND member_id = ?"
		args = append(args, filter.MemberID)
	}
	if filter.Status != "" {
		where += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.Method != "" {
		where += " AND method = ?"
		args = append(args, filter.Method)
	}
	if filter.Month != "" {
		// paid_at is RFC3339 so a YYYY-MM prefix match selects the month
		where += " AND paid_at LIKE ?"
		args = append(args, filter.Month+"%")
	}
	return where, args
}

// Count returns the total number of payments matching the filter.
// PRE: filter has valid parameters
// POST: Returns count >= 0
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	where, args := listWhereClause(filter)
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM payment"+where, args...).Scan(&count)
	return count, err
}

// List retrieves payments matching the filter, newest first.
// A zero Limit means no limit, like the other zero-value filter fields; the
// in-memory list projection depends on receiving every matching row.
// PRE: filter has valid parameters
// POST: Returns all matching entities unless Limit is set
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Payment, error) {
	where, args := listWhereClause(filter)
	query := "SELECT " + paymentColumns + " FROM payment" + where + " ORDER BY paid_at DESC, id ASC"

	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Payment
	for rows.Next() {
		entity, err := scanPayment(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// RevenueForMonth sums paid amounts (in cents) for the given calendar month.
// PRE: year and month are valid
// POST: Returns total >= 0
func (s *SQLiteStore) RevenueForMonth(ctx context.Context, year int, month int) (int, error) {
	prefix := fmt.Sprintf("%04d-%02d", year, month)
	var total sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		"SELECT SUM(amount) FROM payment WHERE status = ? AND paid_at LIKE ?",
		domain.StatusPaid, prefix+"%",
	).Scan(&total)
	if err != nil {
		return 0, err
	}
	return int(total.Int64), nil
}

// Recent returns the most recent payments, newest first.
// PRE: limit > 0
// POST: Returns up to limit entities
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]domain.Payment, error) {
	return s.List(ctx, ListFilter{Limit: limit})
}
