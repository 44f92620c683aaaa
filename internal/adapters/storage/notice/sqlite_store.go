package notice

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gymdesk/internal/adapters/storage"
	domain "gymdesk/internal/domain/notice"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new notice store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const noticeColumns = "id, title, content, pinned, created_by, created_at, updated_at"

// scanNotice scans one notice row from a row scanner.
func scanNotice(scan func(dest ...any) error) (domain.Notice, error) {
	var entity domain.Notice
	var pinned int
	var createdAt string
	var updatedAt sql.NullString
	err := scan(
		&entity.ID,
		&entity.Title,
		&entity.Content,
		&pinned,
		&entity.CreatedBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.Notice{}, err
	}
	entity.Pinned = pinned != 0
	if t, perr := time.Parse(time.RFC3339, createdAt); perr == nil {
		entity.CreatedAt = t
	}
	if updatedAt.Valid {
		if t, perr := time.Parse(time.RFC3339, updatedAt.String); perr == nil {
			entity.UpdatedAt = t
		}
	}
	return entity, nil
}

// GetByID retrieves a Notice by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Notice, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+noticeColumns+" FROM notice WHERE id = ?", id)
	entity, err := scanNotice(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Notice{}, fmt.Errorf("notice not found: %w", err)
	}
	return entity, err
}

// Save persists a Notice to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Notice) error {
	query := `INSERT INTO notice (id, title, content, pinned, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title=excluded.title, content=excluded.content, pinned=excluded.pinned,
			created_by=excluded.created_by, created_at=excluded.created_at,
			updated_at=excluded.updated_at`

	pinned := 0
	if entity.Pinned {
		pinned = 1
	}
	var updatedAt any
	if !entity.UpdatedAt.IsZero() {
		updatedAt = entity.UpdatedAt.Format(time.RFC3339)
	}

	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.Title,
		entity.Content,
		pinned,
		entity.CreatedBy,
		entity.CreatedAt.Format(time.RFC3339),
		updatedAt,
	)
	return err
}

// Delete removes a Notice from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM notice WHERE id = ?", id)
	return err
}

// List retrieves all notices, pinned first, newest first within each group.
// PRE: none
// POST: Returns all entities
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Notice, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+noticeColumns+" FROM notice ORDER BY pinned DESC, created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Notice
	for rows.Next() {
		entity, err := scanNotice(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
