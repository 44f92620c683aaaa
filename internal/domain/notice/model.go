package notice

import (
	"errors"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxTitleLength   = 200
	MaxContentLength = 10000
)

// Domain errors
var (
	ErrEmptyTitle     = errors.New("notice title cannot be empty")
	ErrEmptyContent   = errors.New("notice content cannot be empty")
	ErrTitleTooLong   = errors.New("notice title cannot exceed 200 characters")
	ErrContentTooLong = errors.New("notice content cannot exceed 10000 characters")
)

// Notice is an announcement shown on the admin dashboard.
// Content is markdown; rendering happens at the HTTP boundary.
type Notice struct {
	ID        string
	Title     string
	Content   string
	Pinned    bool
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks if the Notice has valid data.
// PRE: Notice struct is populated
// POST: Returns nil if valid, error otherwise
func (n *Notice) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return ErrEmptyTitle
	}
	if len(n.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if strings.TrimSpace(n.Content) == "" {
		return ErrEmptyContent
	}
	if len(n.Content) > MaxContentLength {
		return ErrContentTooLong
	}
	return nil
}
