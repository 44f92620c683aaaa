package orchestrators

import (
	"context"
	"errors"
	"time"

	"gymdesk/internal/domain/audit"
	"gymdesk/internal/domain/trainer"
)

// TrainerStore defines the store interface needed by trainer orchestrators.
type TrainerStore interface {
	GetByID(ctx context.Context, id string) (trainer.Trainer, error)
	Save(ctx context.Context, tr trainer.Trainer) error
}

var ErrTrainerNotFound = errors.New("trainer not found")

// --- Create Trainer ---

// CreateTrainerInput carries input for the create-trainer orchestrator.
type CreateTrainerInput struct {
	Name      string
	Email     string
	Phone     string
	Specialty string
}

// CreateTrainerDeps holds dependencies for CreateTrainer.
type CreateTrainerDeps struct {
	TrainerStore TrainerStore
	AuditLog     AuditLog
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteCreateTrainer adds a new trainer to the roster.
// PRE: Name and Email are non-empty, Specialty is one of the known specialties
// POST: Trainer created with generated ID, Status=active, HiredAt=now
func ExecuteCreateTrainer(ctx context.Context, input CreateTrainerInput, actor Actor, deps CreateTrainerDeps) (trainer.Trainer, error) {
	tr := trainer.Trainer{
		ID:        deps.GenerateID(),
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Specialty: input.Specialty,
		HiredAt:   deps.Now(),
		Status:    trainer.StatusActive,
	}
	if err := tr.Validate(); err != nil {
		return trainer.Trainer{}, err
	}

	if err := deps.TrainerStore.Save(ctx, tr); err != nil {
		return trainer.Trainer{}, err
	}

	recordAudit(ctx, deps.AuditLog, audit.NewEvent(actor.AccountID, actor.Email, audit.CategoryTrainer, audit.ActionCreate).
		WithResource("trainer", tr.ID).
		WithDescription(tr.Name))
	return tr, nil
}

// --- Update Trainer ---

// UpdateTrainerInput carries input for the update-trainer orchestrator.
type UpdateTrainerInput struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Specialty string
	Status    string
}

// UpdateTrainerDeps holds dependencies for UpdateTrainer.
type UpdateTrainerDeps struct {
	TrainerStore TrainerStore
	AuditLog     AuditLog
}

// ExecuteUpdateTrainer replaces the editable fields of an existing trainer.
// PRE: ID refers to an existing trainer
// POST: Trainer fields updated, HiredAt unchanged
func ExecuteUpdateTrainer(ctx context.Context, input UpdateTrainerInput, actor Actor, deps UpdateTrainerDeps) (trainer.Trainer, error) {
	tr, err := deps.TrainerStore.GetByID(ctx, input.ID)
	if err != nil {
		return trainer.Trainer{}, ErrTrainerNotFound
	}

	tr.Name = input.Name
	tr.Email = input.Email
	tr.Phone = input.Phone
	tr.Specialty = input.Specialty
	if input.Status != "" {
		tr.Status = input.Status
	}
	if err := tr.Validate(); err != nil {
		return trainer.Trainer{}, err
	}

	if err := deps.TrainerStore.Save(ctx, tr); err != nil {
		return trainer.Trainer{}, err
	}

	recordAudit(ctx, deps.AuditLog, audit.NewEvent(actor.AccountID, actor.Email, audit.CategoryTrainer, audit.ActionUpdate).
		WithResource("trainer", tr.ID))
	return tr, nil
}

// --- Deactivate / Reactivate Trainer ---

// TrainerStatusDeps holds dependencies for the trainer status commands.
type TrainerStatusDeps struct {
	TrainerStore TrainerStore
	AuditLog     AuditLog
}

// ExecuteDeactivateTrainer marks a trainer inactive. Classes keep the trainer
// reference; scheduling new classes for an inactive trainer is rejected.
// PRE: ID refers to an active trainer
// POST: Trainer status is inactive
func ExecuteDeactivateTrainer(ctx context.Context, id string, actor Actor, deps TrainerStatusDeps) error {
	tr, err := deps.TrainerStore.GetByID(ctx, id)
	if err != nil {
		return ErrTrainerNotFound
	}
	if err := tr.Deactivate(); err != nil {
		return err
	}
	if err := deps.TrainerStore.Save(ctx, tr); err != nil {
		return err
	}

	recordAudit(ctx, deps.AuditLog, audit.NewEvent(actor.AccountID, actor.Email, audit.CategoryTrainer, audit.ActionUpdate).
		WithResource("trainer", tr.ID).
		WithDescription("deactivated"))
	return nil
}

// ExecuteReactivateTrainer marks an inactive trainer active again.
// PRE: ID refers to an inactive trainer
// POST: Trainer status is active
func ExecuteReactivateTrainer(ctx context.Context, id string, actor Actor, deps TrainerStatusDeps) error {
	tr, err := deps.TrainerStore.GetByID(ctx, id)
	if err != nil {
		return ErrTrainerNotFound
	}
	if err := tr.Reactivate(); err != nil {
		return err
	}
	if err := deps.TrainerStore.Save(ctx, tr); err != nil {
		return err
	}

	recordAudit(ctx, deps.AuditLog, audit.NewEvent(actor.AccountID, actor.Email, audit.CategoryTrainer, audit.ActionUpdate).
		WithResource("trainer", tr.ID).
		WithDescription("reactivated"))
	return nil
}
