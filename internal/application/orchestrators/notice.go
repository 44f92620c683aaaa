package orchestrators

import (
	"context"
	"errors"
	"time"

	"gymdesk/internal/domain/notice"
)

// NoticeStore defines the store interface needed by notice orchestrators.
type NoticeStore interface {
	GetByID(ctx context.Context, id string) (notice.Notice, error)
	Save(ctx context.Context, n notice.Notice) error
	Delete(ctx context.Context, id string) error
}

var ErrNoticeNotFound = errors.New("notice not found")

// --- Create Notice ---

// CreateNoticeInput carries input for the create-notice orchestrator.
type CreateNoticeInput struct {
	Title   string
	Content string
	Pinned  bool
}

// CreateNoticeDeps holds dependencies for CreateNotice.
type CreateNoticeDeps struct {
	NoticeStore NoticeStore
	GenerateID  func() string
	Now         func() time.Time
}

// ExecuteCreateNotice posts a new board notice.
// PRE: Title and Content are within length limits; actor is authenticated
// POST: Notice created with generated ID and timestamps
func ExecuteCreateNotice(ctx context.Context, input CreateNoticeInput, actor Actor, deps CreateNoticeDeps) (notice.Notice, error) {
	now := deps.Now()
	n := notice.Notice{
		ID:        deps.GenerateID(),
		Title:     input.Title,
		Content:   input.Content,
		Pinned:    input.Pinned,
		CreatedBy: actor.AccountID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := n.Validate(); err != nil {
		return notice.Notice{}, err
	}

	if err := deps.NoticeStore.Save(ctx, n); err != nil {
		return notice.Notice{}, err
	}
	return n, nil
}

// --- Update Notice ---

// UpdateNoticeInput carries input for the update-notice orchestrator.
type UpdateNoticeInput struct {
	ID      string
	Title   string
	Content string
	Pinned  bool
}

// UpdateNoticeDeps holds dependencies for UpdateNotice.
type UpdateNoticeDeps struct {
	NoticeStore NoticeStore
	Now         func() time.Time
}

// ExecuteUpdateNotice edits an existing notice and bumps UpdatedAt.
// PRE: ID refers to an existing notice
// POST: Notice fields updated, CreatedAt and CreatedBy unchanged
func ExecuteUpdateNotice(ctx context.Context, input UpdateNoticeInput, deps UpdateNoticeDeps) (notice.Notice, error) {
	n, err := deps.NoticeStore.GetByID(ctx, input.ID)
	if err != nil {
		return notice.Notice{}, ErrNoticeNotFound
	}

	n.Title = input.Title
	n.Content = input.Content
	n.Pinned = input.Pinned
	n.UpdatedAt = deps.Now()
	if err := n.Validate(); err != nil {
		return notice.Notice{}, err
	}

	if err := deps.NoticeStore.Save(ctx, n); err != nil {
		return notice.Notice{}, err
	}
	return n, nil
}

// --- Delete Notice ---

// DeleteNoticeDeps holds dependencies for DeleteNotice.
type DeleteNoticeDeps struct {
	NoticeStore NoticeStore
}

// ExecuteDeleteNotice removes a notice from the board.
// PRE: ID refers to an existing notice
// POST: Notice row is gone
func ExecuteDeleteNotice(ctx context.Context, id string, deps DeleteNoticeDeps) error {
	if _, err := deps.NoticeStore.GetByID(ctx, id); err != nil {
		return ErrNoticeNotFound
	}
	return deps.NoticeStore.Delete(ctx, id)
}
