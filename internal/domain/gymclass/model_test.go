package gymclass_test

import (
	"math"
	"testing"

	"gymdesk/internal/domain/gymclass"
)

func validClass() gymclass.Class {
	return gymclass.Class{
		ID:        "c1",
		Name:      "Morning Yoga",
		TrainerID: "t1",
		Category:  "yoga",
		Day:       gymclass.Monday,
		StartTime: "06:30",
		EndTime:   "07:30",
		Capacity:  20,
		Status:    gymclass.StatusScheduled,
	}
}

// TestClassValidation tests validation of Class.
func TestClassValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*gymclass.Class)
		wantErr error
	}{
		{name: "valid class", mutate: func(c *gymclass.Class) {}, wantErr: nil},
		{name: "empty name", mutate: func(c *gymclass.Class) { c.Name = " " }, wantErr: gymclass.ErrEmptyName},
		{name: "empty trainer", mutate: func(c *gymclass.Class) { c.TrainerID = "" }, wantErr: gymclass.ErrEmptyTrainerID},
		{name: "bad category", mutate: func(c *gymclass.Class) { c.Category = "spin" }, wantErr: gymclass.ErrInvalidCategory},
		{name: "bad day", mutate: func(c *gymclass.Class) { c.Day = "someday" }, wantErr: gymclass.ErrInvalidDay},
		{name: "empty start", mutate: func(c *gymclass.Class) { c.StartTime = "" }, wantErr: gymclass.ErrEmptyStartTime},
		{name: "empty end", mutate: func(c *gymclass.Class) { c.EndTime = "" }, wantErr: gymclass.ErrEmptyEndTime},
		{name: "zero capacity", mutate: func(c *gymclass.Class) { c.Capacity = 0 }, wantErr: gymclass.ErrInvalidCapacity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validClass()
			tt.mutate(&c)
			err := c.Validate()
			if err != tt.wantErr {
				t.Errorf("Class.Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestClassValidation_BadTimeFormat tests that unparseable times are rejected.
func TestClassValidation_BadTimeFormat(t *testing.T) {
	c := validClass()
	c.StartTime = "6:3"
	if err := c.Validate(); err == nil {
		t.Error("Validate() accepted malformed start time")
	}
}

// TestClassDurationHours tests the DurationHours calculation.
func TestClassDurationHours(t *testing.T) {
	tests := []struct {
		name      string
		startTime string
		endTime   string
		want      float64
	}{
		{name: "one hour", startTime: "06:30", endTime: "07:30", want: 1.0},
		{name: "ninety minutes", startTime: "18:00", endTime: "19:30", want: 1.5},
		{name: "overnight", startTime: "23:00", endTime: "01:00", want: 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validClass()
			c.StartTime = tt.startTime
			c.EndTime = tt.endTime
			got, err := c.DurationHours()
			if err != nil {
				t.Fatalf("DurationHours() error = %v", err)
			}
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("DurationHours() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestClassCancel tests the Cancel and Restore transitions.
func TestClassCancel(t *testing.T) {
	c := validClass()
	if err := c.Cancel(); err != nil {
		t.Fatalf("Cancel() error = %v, want nil", err)
	}
	if c.Status != gymclass.StatusCancelled {
		t.Errorf("status = %q, want %q", c.Status, gymclass.StatusCancelled)
	}
	if err := c.Cancel(); err != gymclass.ErrAlreadyCancelled {
		t.Errorf("second Cancel() error = %v, want ErrAlreadyCancelled", err)
	}
	if err := c.Restore(); err != nil {
		t.Fatalf("Restore() error = %v, want nil", err)
	}
	if err := c.Restore(); err != gymclass.ErrNotCancelled {
		t.Errorf("Restore() on scheduled class error = %v, want ErrNotCancelled", err)
	}
}
