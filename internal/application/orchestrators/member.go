package orchestrators

import (
	"context"
	"errors"
	"time"

	"gymdesk/internal/domain/audit"
	"gymdesk/internal/domain/member"
)

// MemberStore defines the store interface needed by member orchestrators.
type MemberStore interface {
	GetByID(ctx context.Context, id string) (member.Member, error)
	GetByEmail(ctx context.Context, email string) (member.Member, error)
	Save(ctx context.Context, m member.Member) error
}

// Actor identifies who is performing a command, for the audit trail.
type Actor struct {
	AccountID string
	Email     string
}

var (
	ErrMemberNotFound   = errors.New("member not found")
	ErrEmailTaken       = errors.New("a member with this email already exists")
	ErrMemberIsArchived = errors.New("member is archived; restore before editing")
)

// --- Create Member ---

// CreateMemberInput carries input for the create-member orchestrator.
type CreateMemberInput struct {
	Name  string
	Email string
	Phone string
	Plan  string
}

// CreateMemberDeps holds dependencies for CreateMember.
type CreateMemberDeps struct {
	MemberStore MemberStore
	AuditLog    AuditLog
	GenerateID  func() string
	Now         func() time.Time
}

// ExecuteCreateMember registers a new member on the chosen plan.
// PRE: Name and Email are non-empty, Plan is one of the known plans
// POST: Member created with generated ID, Status=active, JoinedAt=now
// INVARIANT: Email is unique across members
func ExecuteCreateMember(ctx context.Context, input CreateMemberInput, actor Actor, deps CreateMemberDeps) (member.Member, error) {
	if _, err := deps.MemberStore.GetByEmail(ctx, input.Email); err == nil {
		return member.Member{}, ErrEmailTaken
	}

	m := member.Member{
		ID:       deps.GenerateID(),
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Plan:     input.Plan,
		JoinedAt: deps.Now(),
		Status:   member.StatusActive,
	}
	if err := m.Validate(); err != nil {
		return member.Member{}, err
	}

	if err := deps.MemberStore.Save(ctx, m); err != nil {
		return member.Member{}, err
	}

	recordAudit(ctx, deps.AuditLog, audit.NewEvent(actor.AccountID, actor.Email, audit.CategoryMember, audit.ActionCreate).
		WithResource("member", m.ID).
		WithDescription(m.Name))
	return m, nil
}

// --- Update Member ---

// UpdateMemberInput carries input for the update-member orchestrator.
type UpdateMemberInput struct {
	ID     string
	Name   string
	Email  string
	Phone  string
	Plan   string
	Status string
}

// UpdateMemberDeps holds dependencies for UpdateMember.
type UpdateMemberDeps struct {
	MemberStore MemberStore
	AuditLog    AuditLog
}

// ExecuteUpdateMember replaces the editable fields of an existing member.
// Status can move between active and inactive here; archival goes through
// ExecuteArchiveMember so the transition rules stay in one place.
// PRE: ID refers to an existing, non-archived member
// POST: Member fields updated, JoinedAt unchanged
// INVARIANT: Email stays unique across members
func ExecuteUpdateMember(ctx context.Context, input UpdateMemberInput, actor Actor, deps UpdateMemberDeps) (member.Member, error) {
	m, err := deps.MemberStore.GetByID(ctx, input.ID)
	if err != nil {
		return member.Member{}, ErrMemberNotFound
	}
	if m.IsArchived() {
		return member.Member{}, ErrMemberIsArchived
	}

	if input.Email != m.Email {
		if other, err := deps.MemberStore.GetByEmail(ctx, input.Email); err == nil && other.ID != m.ID {
			return member.Member{}, ErrEmailTaken
		}
	}
	if input.Status == member.StatusArchived {
		return member.Member{}, errors.New("use archive to archive a member")
	}

	m.Name = input.Name
	m.Email = input.Email
	m.Phone = input.Phone
	m.Plan = input.Plan
	if input.Status != "" {
		m.Status = input.Status
	}
	if err := m.Validate(); err != nil {
		return member.Member{}, err
	}

	if err := deps.MemberStore.Save(ctx, m); err != nil {
		return member.Member{}, err
	}

	recordAudit(ctx, deps.AuditLog, audit.NewEvent(actor.AccountID, actor.Email, audit.CategoryMember, audit.ActionUpdate).
		WithResource("member", m.ID))
	return m, nil
}

// --- Archive / Restore Member ---

// ArchiveMemberDeps holds dependencies for ArchiveMember and RestoreMember.
type ArchiveMemberDeps struct {
	MemberStore MemberStore
	AuditLog    AuditLog
}

// ExecuteArchiveMember archives a member, hiding them from active views.
// PRE: ID refers to an existing member
// POST: Member status is archived
func ExecuteArchiveMember(ctx context.Context, id string, actor Actor, deps ArchiveMemberDeps) error {
	m, err := deps.MemberStore.GetByID(ctx, id)
	if err != nil {
		return ErrMemberNotFound
	}
	if err := m.Archive(); err != nil {
		return err
	}
	if err := deps.MemberStore.Save(ctx, m); err != nil {
		return err
	}

	recordAudit(ctx, deps.AuditLog, audit.NewEvent(actor.AccountID, actor.Email, audit.CategoryMember, audit.ActionUpdate).
		WithResource("member", m.ID).
		WithDescription("archived"))
	return nil
}

// ExecuteRestoreMember restores an archived member to active.
// PRE: ID refers to an archived member
// POST: Member status is active
func ExecuteRestoreMember(ctx context.Context, id string, actor Actor, deps ArchiveMemberDeps) error {
	m, err := deps.MemberStore.GetByID(ctx, id)
	if err != nil {
		return ErrMemberNotFound
	}
	if err := m.Restore(); err != nil {
		return err
	}
	if err := deps.MemberStore.Save(ctx, m); err != nil {
		return err
	}

	recordAudit(ctx, deps.AuditLog, audit.NewEvent(actor.AccountID, actor.Email, audit.CategoryMember, audit.ActionUpdate).
		WithResource("member", m.ID).
		WithDescription("restored"))
	return nil
}
