package trainer

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gymdesk/internal/adapters/storage"
	domain "gymdesk/internal/domain/trainer"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new trainer store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const trainerColumns = "id, name, email, phone, specialty, hired_at, status"

// scanTrainer scans one trainer row from a row scanner.
func scanTrainer(scan func(dest ...any) error) (domain.Trainer, error) {
	var entity domain.Trainer
	var phone sql.NullString
	var hiredAt string
	err := scan(
		&entity.ID,
		&entity.Name,
		&entity.Email,
		&phone,
		&entity.Specialty,
		&hiredAt,
		&entity.Status,
	)
	if err != nil {
		return domain.Trainer{}, err
	}
	if phone.Valid {
		entity.Phone = phone.String
	}
	if t, perr := time.Parse(time.RFC3339, hiredAt); perr == nil {
		entity.HiredAt = t
	}
	return entity, nil
}

// GetByID retrieves a Trainer by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Trainer, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+trainerColumns+" FROM trainer WHERE id = ?", id)
	entity, err := scanTrainer(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Trainer{}, fmt.Errorf("trainer not found: %w", err)
	}
	return entity, err
}

// Save persists a Trainer to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Trainer) error {
	query := `INSERT INTO trainer (id, name, email, phone, specialty, hired_at, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, email=excluded.email, phone=excluded.phone,
			specialty=excluded.specialty, hired_at=excluded.hired_at, status=excluded.status`

	var phone any
	if entity.Phone != "" {
		phone = entity.Phone
	}

	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.Name,
		entity.Email,
		phone,
		entity.Specialty,
		entity.HiredAt.Format(time.RFC3339),
		entity.Status,
	)
	return err
}

// Delete removes a Trainer from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM trainer WHERE id = ?", id)
	return err
}

// listWhereClause builds the WHERE clause and args for List/Count queries.
func listWhereClause(filter ListFilter) (string, []any) {
	where := " WHERE 1=1"
	var args []any

	if filter.Specialty != "" {
		where += " AND specialty = ?"
		args = append(args, filter.Specialty)
	}
	if filter.Status != "" {
		where += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.Search != "" {
		where += " AND (name LIKE ? OR email LIKE ?)"
		term := "%" + filter.Search + "%"
		args = append(args, term, term)
	}
	return where, args
}

// sortClause returns a safe ORDER BY clause. Only allowed columns are accepted.
func sortClause(filter ListFilter) string {
	allowed := map[string]string{
		"name": "name", "email": "email", "specialty": "specialty",
		"status": "status", "hired_at": "hired_at",
	}
	col, ok := allowed[filter.Sort]
	if !ok {
		return " ORDER BY name ASC"
	}
	dir := "ASC"
	if filter.Dir == "desc" {
		dir = "DESC"
	}
	return " ORDER BY " + col + " " + dir + ", id ASC"
}

// Count returns the total number of trainers matching the filter.
// PRE: filter has valid parameters
// POST: Returns count >= 0
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	where, args := listWhereClause(filter)
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM trainer"+where, args...).Scan(&count)
	return count, err
}

// List retrieves a list of Trainers based on the filter.
// A zero Limit means no limit, like the other zero-value filter fields.
// PRE: filter has valid parameters
// POST: Returns all matching entities unless Limit is set
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Trainer, error) {
	where, args := listWhereClause(filter)
	query := "SELECT " + trainerColumns + " FROM trainer" + where + sortClause(filter)

	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Trainer
	for rows.Next() {
		entity, err := scanTrainer(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
