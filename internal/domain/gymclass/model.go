package gymclass

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gymdesk/internal/domain/trainer"
)

// Day of week constants
const (
	Monday    = "monday"
	Tuesday   = "tuesday"
	Wednesday = "wednesday"
	Thursday  = "thursday"
	Friday    = "friday"
	Saturday  = "saturday"
	Sunday    = "sunday"
)

// Status constants
const (
	StatusScheduled = "scheduled"
	StatusCancelled = "cancelled"
)

// ValidDays contains all valid day values.
var ValidDays = []string{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Domain errors
var (
	ErrEmptyName        = errors.New("class name cannot be empty")
	ErrEmptyTrainerID   = errors.New("trainer ID cannot be empty")
	ErrInvalidCategory  = errors.New("category must be one of: strength, cardio, yoga, crossfit, pilates")
	ErrInvalidDay       = errors.New("day must be a valid day of the week")
	ErrEmptyStartTime   = errors.New("start time cannot be empty")
	ErrEmptyEndTime     = errors.New("end time cannot be empty")
	ErrInvalidCapacity  = errors.New("capacity must be greater than zero")
	ErrAlreadyCancelled = errors.New("class is already cancelled")
	ErrNotCancelled     = errors.New("class is not cancelled")
)

// Class represents a recurring weekly class slot led by a trainer.
type Class struct {
	ID        string
	Name      string
	TrainerID string
	Category  string // same value set as trainer specialties
	Day       string // monday, tuesday, etc.
	StartTime string // HH:MM format
	EndTime   string // HH:MM format
	Capacity  int
	Status    string
}

// Validate checks if the Class has valid data.
// PRE: Class struct is populated
// POST: Returns nil if valid, error otherwise
func (c *Class) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(c.TrainerID) == "" {
		return ErrEmptyTrainerID
	}
	if !trainer.IsValidSpecialty(c.Category) {
		return ErrInvalidCategory
	}
	if !isValidDay(c.Day) {
		return ErrInvalidDay
	}
	if strings.TrimSpace(c.StartTime) == "" {
		return ErrEmptyStartTime
	}
	if strings.TrimSpace(c.EndTime) == "" {
		return ErrEmptyEndTime
	}
	if _, err := c.DurationHours(); err != nil {
		return err
	}
	if c.Capacity <= 0 {
		return ErrInvalidCapacity
	}
	if c.Status != StatusScheduled && c.Status != StatusCancelled {
		return errors.New("status must be 'scheduled' or 'cancelled'")
	}
	return nil
}

// DurationHours returns the session duration in hours.
// PRE: StartTime and EndTime are in HH:MM format
// POST: Returns duration as float64 hours, or error if times can't be parsed
func (c *Class) DurationHours() (float64, error) {
	start, err := time.Parse("15:04", c.StartTime)
	if err != nil {
		return 0, fmt.Errorf("invalid start time %q: %w", c.StartTime, err)
	}
	end, err := time.Parse("15:04", c.EndTime)
	if err != nil {
		return 0, fmt.Errorf("invalid end time %q: %w", c.EndTime, err)
	}
	dur := end.Sub(start)
	if dur <= 0 {
		dur += 24 * time.Hour // handle overnight classes
	}
	return dur.Hours(), nil
}

// Cancel sets the class status to cancelled.
// PRE: Class is not already cancelled
// POST: Status is set to cancelled
func (c *Class) Cancel() error {
	if c.Status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	c.Status = StatusCancelled
	return nil
}

// Restore sets a cancelled class back to scheduled.
// PRE: Class is currently cancelled
// POST: Status is set to scheduled
func (c *Class) Restore() error {
	if c.Status != StatusCancelled {
		return ErrNotCancelled
	}
	c.Status = StatusScheduled
	return nil
}

func isValidDay(day string) bool {
	for _, d := range ValidDays {
		if d == day {
			return true
		}
	}
	return false
}
