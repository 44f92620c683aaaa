package gymclass

import (
	"context"
	"database/sql"
	"fmt"

	"gymdesk/internal/adapters/storage"
	domain "gymdesk/internal/domain/gymclass"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new class store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const classColumns = "id, name, trainer_id, category, day, start_time, end_time, capacity, status"

// scanClass scans one class row from a row scanner.
func scanClass(scan func(dest ...any) error) (domain.Class, error) {
	var entity domain.Class
	err := scan(
		&entity.ID,
		&entity.Name,
		&entity.TrainerID,
		&entity.Category,
		&entity.Day,
		&entity.StartTime,
		&entity.EndTime,
		&entity.Capacity,
		&entity.Status,
	)
	return entity, err
}

// GetByID retrieves a Class by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Class, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+classColumns+" FROM class WHERE id = ?", id)
	entity, err := scanClass(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Class{}, fmt.Errorf("class not found: %w", err)
	}
	return entity, err
}

// Save persists a Class to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Class) error {
	query := `INSERT INTO class (id, name, trainer_id, category, day, start_time, end_time, capacity, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, trainer_id=excluded.trainer_id, category=excluded.category,
			day=excluded.day, start_time=excluded.start_time, end_time=excluded.end_time,
			capacity=excluded.capacity, status=excluded.status`

	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.Name,
		entity.TrainerID,
		entity.Category,
		entity.Day,
		entity.StartTime,
		entity.EndTime,
		entity.Capacity,
		entity.Status,
	)
	return err
}

// Delete removes a Class from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM class WHERE id = ?", id)
	return err
}

// listWhereClause builds the WHERE clause and args for List/Count queries.
func listWhereClause(filter ListFilter) (string, []any) {
	where := " WHERE 1=1"
	var args []any

	if filter.Category != "" {
		where += " AND category = ?"
		args = append(args, filter.Category)
	}
	if filter.Day != "" {
		where += " AND day = ?"
		args = append(args, filter.Day)
	}
	if filter.Status != "" {
		where += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.TrainerID != "" {
		where += " AND trainer_id = ?"
		args = append(args, filter.TrainerID)
	}
	if filter.Search != "" {
		where += " AND name LIKE ?"
		args = append(args, "%"+filter.Search+"%")
	}
	return where, args
}

// Count returns the total number of classes matching the filter.
// PRE: filter has valid parameters
// POST: Returns count >= 0
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	where, args := listWhereClause(filter)
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM class"+where, args...).Scan(&count)
	return count, err
}

// List retrieves classes matching the filter, ordered by weekday then start time.
// A zero Limit means no limit, like the other zero-value filter fields.
// PRE: filter has valid parameters
// POST: Returns all matching entities unless Limit is set
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Class, error) {
	where, args := listWhereClause(filter)
	// Weekday ordering is positional, not alphabetical.
	query := "SELECT " + classColumns + " FROM class" + where + `
		ORDER BY CASE day
			WHEN 'monday' THEN 1 WHEN 'tuesday' THEN 2 WHEN 'wednesday' THEN 3
			WHEN 'thursday' THEN 4 WHEN 'friday' THEN 5 WHEN 'saturday' THEN 6
			ELSE 7 END, start_time, id`

	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Class
	for rows.Next() {
		entity, err := scanClass(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
