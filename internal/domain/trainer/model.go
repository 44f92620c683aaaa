package trainer

import (
	"errors"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 100
)

// Specialty constants
const (
	SpecialtyStrength = "strength"
	SpecialtyCardio   = "cardio"
	SpecialtyYoga     = "yoga"
	SpecialtyCrossfit = "crossfit"
	SpecialtyPilates  = "pilates"
)

// Status constants
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// ValidSpecialties contains all valid specialty values.
var ValidSpecialties = []string{SpecialtyStrength, SpecialtyCardio, SpecialtyYoga, SpecialtyCrossfit, SpecialtyPilates}

// Domain errors
var (
	ErrAlreadyInactive = errors.New("trainer is already inactive")
	ErrAlreadyActive   = errors.New("trainer is already active")
)

// Trainer holds state for a gym trainer.
type Trainer struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Specialty string
	HiredAt   time.Time
	Status    string
}

// Validate checks if the Trainer has valid data.
// PRE: Trainer struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (tr *Trainer) Validate() error {
	if strings.TrimSpace(tr.Name) == "" {
		return errors.New("trainer name cannot be empty")
	}
	if len(tr.Name) > MaxNameLength {
		return errors.New("trainer name cannot exceed 100 characters")
	}
	if !strings.Contains(tr.Email, "@") {
		return errors.New("trainer email must be valid")
	}
	if !IsValidSpecialty(tr.Specialty) {
		return errors.New("specialty must be one of: strength, cardio, yoga, crossfit, pilates")
	}
	if tr.Status != StatusActive && tr.Status != StatusInactive {
		return errors.New("status must be 'active' or 'inactive'")
	}
	return nil
}

// IsActive returns true if the trainer is currently active.
// INVARIANT: Status field is not mutated
func (tr *Trainer) IsActive() bool {
	return tr.Status == StatusActive
}

// Deactivate sets the trainer status to inactive.
// PRE: Trainer is currently active
// POST: Status is set to inactive
func (tr *Trainer) Deactivate() error {
	if tr.Status == StatusInactive {
		return ErrAlreadyInactive
	}
	tr.Status = StatusInactive
	return nil
}

// Reactivate sets the trainer status back to active.
// PRE: Trainer is currently inactive
// POST: Status is set to active
func (tr *Trainer) Reactivate() error {
	if tr.Status == StatusActive {
		return ErrAlreadyActive
	}
	tr.Status = StatusActive
	return nil
}

// IsValidSpecialty reports whether s is a recognised specialty.
func IsValidSpecialty(s string) bool {
	for _, v := range ValidSpecialties {
		if v == s {
			return true
		}
	}
	return false
}
