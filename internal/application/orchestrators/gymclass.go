package orchestrators

import (
	"context"
	"errors"

	"gymdesk/internal/domain/audit"
	"gymdesk/internal/domain/gymclass"
	"gymdesk/internal/domain/trainer"
)

// ClassStore defines the store interface needed by class orchestrators.
type ClassStore interface {
	GetByID(ctx context.Context, id string) (gymclass.Class, error)
	Save(ctx context.Context, c gymclass.Class) error
}

// TrainerLookup resolves a trainer for class assignment checks.
type TrainerLookup interface {
	GetByID(ctx context.Context, id string) (trainer.Trainer, error)
}

var (
	ErrClassNotFound     = errors.New("class not found")
	ErrTrainerInactive   = errors.New("trainer is not active")
	ErrUnknownTrainer    = errors.New("assigned trainer does not exist")
	ErrSpecialtyMismatch = errors.New("class category does not match the trainer's specialty")
)

// --- Schedule Class ---

// ScheduleClassInput carries input for the schedule-class orchestrator.
type ScheduleClassInput struct {
	Name      string
	TrainerID string
	Category  string
	Day       string
	StartTime string
	EndTime   string
	Capacity  int
}

// ScheduleClassDeps holds dependencies for ScheduleClass.
type ScheduleClassDeps struct {
	ClassStore    ClassStore
	TrainerLookup TrainerLookup
	AuditLog      AuditLog
	GenerateID    func() string
}

// ExecuteScheduleClass puts a new class on the weekly timetable.
// PRE: Input names an existing active trainer whose specialty matches Category
// POST: Class created with generated ID, Status=scheduled
func ExecuteScheduleClass(ctx context.Context, input ScheduleClassInput, actor Actor, deps ScheduleClassDeps) (gymclass.Class, error) {
	tr, err := deps.TrainerLookup.GetByID(ctx, input.TrainerID)
	if err != nil {
		return gymclass.Class{}, ErrUnknownTrainer
	}
	if !tr.IsActive() {
		return gymclass.Class{}, ErrTrainerInactive
	}
	if tr.Specialty != input.Category {
		return gymclass.Class{}, ErrSpecialtyMismatch
	}

	c := gymclass.Class{
		ID:        deps.GenerateID(),
		Name:      input.Name,
		TrainerID: input.TrainerID,
		Category:  input.Category,
		Day:       input.Day,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Capacity:  input.Capacity,
		Status:    gymclass.StatusScheduled,
	}
	if err := c.Validate(); err != nil {
		return gymclass.Class{}, err
	}

	if err := deps.ClassStore.Save(ctx, c); err != nil {
		return gymclass.Class{}, err
	}

	recordAudit(ctx, deps.AuditLog, audit.NewEvent(actor.AccountID, actor.Email, audit.CategoryClass, audit.ActionCreate).
		WithResource("class", c.ID).
		WithDescription(c.Name))
	return c, nil
}

// --- Update Class ---

// UpdateClassInput carries input for the update-class orchestrator.
type UpdateClassInput struct {
	ID        string
	Name      string
	TrainerID string
	Category  string
	Day       string
	StartTime string
	EndTime   string
	Capacity  int
}

// UpdateClassDeps holds dependencies for UpdateClass.
type UpdateClassDeps struct {
	ClassStore    ClassStore
	TrainerLookup TrainerLookup
	AuditLog      AuditLog
}

// ExecuteUpdateClass replaces the editable fields of an existing class.
// Reassigning the trainer runs the same active and specialty checks as
// scheduling; the class status is untouched.
// PRE: ID refers to an existing class
// POST: Class fields updated
func ExecuteUpdateClass(ctx context.Context, input UpdateClassInput, actor Actor, deps UpdateClassDeps) (gymclass.Class, error) {
	c, err := deps.ClassStore.GetByID(ctx, input.ID)
	if err != nil {
		return gymclass.Class{}, ErrClassNotFound
	}

	tr, err := deps.TrainerLookup.GetByID(ctx, input.TrainerID)
	if err != nil {
		return gymclass.Class{}, ErrUnknownTrainer
	}
	if input.TrainerID != c.TrainerID && !tr.IsActive() {
		return gymclass.Class{}, ErrTrainerInactive
	}
	if tr.Specialty != input.Category {
		return gymclass.Class{}, ErrSpecialtyMismatch
	}

	c.Name = input.Name
	c.TrainerID = input.TrainerID
	c.Category = input.Category
	c.Day = input.Day
	c.StartTime = input.StartTime
	c.EndTime = input.EndTime
	c.Capacity = input.Capacity
	if err := c.Validate(); err != nil {
		return gymclass.Class{}, err
	}

	if err := deps.ClassStore.Save(ctx, c); err != nil {
		return gymclass.Class{}, err
	}

	recordAudit(ctx, deps.AuditLog, audit.NewEvent(actor.AccountID, actor.Email, audit.CategoryClass, audit.ActionUpdate).
		WithResource("class", c.ID))
	return c, nil
}

// --- Cancel / Restore Class ---

// ClassStatusDeps holds dependencies for the class status commands.
type ClassStatusDeps struct {
	ClassStore ClassStore
	AuditLog   AuditLog
}

// ExecuteCancelClass takes a class off the timetable without deleting it.
// PRE: ID refers to a scheduled class
// POST: Class status is cancelled
func ExecuteCancelClass(ctx context.Context, id string, actor Actor, deps ClassStatusDeps) error {
	c, err := deps.ClassStore.GetByID(ctx, id)
	if err != nil {
		return ErrClassNotFound
	}
	if err := c.Cancel(); err != nil {
		return err
	}
	if err := deps.ClassStore.Save(ctx, c); err != nil {
		return err
	}

	recordAudit(ctx, deps.AuditLog, audit.NewEvent(actor.AccountID, actor.Email, audit.CategoryClass, audit.ActionUpdate).
		WithResource("class", c.ID).
		WithDescription("cancelled"))
	return nil
}

// ExecuteRestoreClass puts a cancelled class back on the timetable.
// PRE: ID refers to a cancelled class
// POST: Class status is scheduled
func ExecuteRestoreClass(ctx context.Context, id string, actor Actor, deps ClassStatusDeps) error {
	c, err := deps.ClassStore.GetByID(ctx, id)
	if err != nil {
		return ErrClassNotFound
	}
	if err := c.Restore(); err != nil {
		return err
	}
	if err := deps.ClassStore.Save(ctx, c); err != nil {
		return err
	}

	recordAudit(ctx, deps.AuditLog, audit.NewEvent(actor.AccountID, actor.Email, audit.CategoryClass, audit.ActionUpdate).
		WithResource("class", c.ID).
		WithDescription("restored"))
	return nil
}
