package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	"gymdesk/internal/domain/gymclass"
	"gymdesk/internal/domain/trainer"
)

type mockClassStore struct {
	classes map[string]gymclass.Class
}

func newMockClassStore(classes ...gymclass.Class) *mockClassStore {
	s := &mockClassStore{classes: map[string]gymclass.Class{}}
	for _, c := range classes {
		s.classes[c.ID] = c
	}
	return s
}

// GetByID returns a seeded class by ID.
// PRE: id is non-empty
// POST: Returns the seeded class or an error
func (s *mockClassStore) GetByID(_ context.Context, id string) (gymclass.Class, error) {
	c, ok := s.classes[id]
	if !ok {
		return gymclass.Class{}, errors.New("not found")
	}
	return c, nil
}

// Save stores the class keyed by ID.
// PRE: c has an ID
// POST: Class is retrievable by ID
func (s *mockClassStore) Save(_ context.Context, c gymclass.Class) error {
	s.classes[c.ID] = c
	return nil
}

type mockTrainerLookup struct {
	trainers map[string]trainer.Trainer
}

// GetByID returns a seeded trainer by ID.
// PRE: id is non-empty
// POST: Returns the seeded trainer or an error
func (s *mockTrainerLookup) GetByID(_ context.Context, id string) (trainer.Trainer, error) {
	tr, ok := s.trainers[id]
	if !ok {
		return trainer.Trainer{}, errors.New("not found")
	}
	return tr, nil
}

func activeTrainer(id, specialty string) trainer.Trainer {
	return trainer.Trainer{ID: id, Name: "Dana Reeves", Email: "dana@gym.test", Specialty: specialty, HiredAt: time.Now(), Status: trainer.StatusActive}
}

// TestExecuteScheduleClass verifies a valid class lands on the timetable.
func TestExecuteScheduleClass(t *testing.T) {
	classes := newMockClassStore()
	lookup := &mockTrainerLookup{trainers: map[string]trainer.Trainer{"t1": activeTrainer("t1", trainer.SpecialtyStrength)}}

	c, err := ExecuteScheduleClass(context.Background(), ScheduleClassInput{
		Name: "Morning Strength", TrainerID: "t1", Category: trainer.SpecialtyStrength,
		Day: gymclass.Monday, StartTime: "06:30", EndTime: "07:30", Capacity: 16,
	}, testActor, ScheduleClassDeps{ClassStore: classes, TrainerLookup: lookup, GenerateID: fixedID("c1")})
	if err != nil {
		t.Fatalf("schedule class: %v", err)
	}
	if c.Status != gymclass.StatusScheduled {
		t.Errorf("status=%q want scheduled", c.Status)
	}
	if _, ok := classes.classes["c1"]; !ok {
		t.Error("class not saved")
	}
}

// TestExecuteScheduleClass_ChecksTrainer verifies trainer existence, activity
// and specialty gates.
func TestExecuteScheduleClass_ChecksTrainer(t *testing.T) {
	inactive := activeTrainer("t2", trainer.SpecialtyYoga)
	inactive.Status = trainer.StatusInactive
	lookup := &mockTrainerLookup{trainers: map[string]trainer.Trainer{
		"t1": activeTrainer("t1", trainer.SpecialtyStrength),
		"t2": inactive,
	}}
	deps := ScheduleClassDeps{ClassStore: newMockClassStore(), TrainerLookup: lookup, GenerateID: fixedID("c1")}

	input := ScheduleClassInput{Name: "X", Category: trainer.SpecialtyStrength, Day: gymclass.Monday, StartTime: "06:00", EndTime: "07:00", Capacity: 10}

	input.TrainerID = "missing"
	if _, err := ExecuteScheduleClass(context.Background(), input, testActor, deps); !errors.Is(err, ErrUnknownTrainer) {
		t.Errorf("missing trainer err=%v want ErrUnknownTrainer", err)
	}

	input.TrainerID = "t2"
	if _, err := ExecuteScheduleClass(context.Background(), input, testActor, deps); !errors.Is(err, ErrTrainerInactive) {
		t.Errorf("inactive trainer err=%v want ErrTrainerInactive", err)
	}

	input.TrainerID = "t1"
	input.Category = trainer.SpecialtyYoga
	if _, err := ExecuteScheduleClass(context.Background(), input, testActor, deps); !errors.Is(err, ErrSpecialtyMismatch) {
		t.Errorf("mismatched category err=%v want ErrSpecialtyMismatch", err)
	}
}

// TestExecuteCancelRestoreClass verifies the cancel round trip.
func TestExecuteCancelRestoreClass(t *testing.T) {
	classes := newMockClassStore(gymclass.Class{
		ID: "c1", Name: "Morning Strength", TrainerID: "t1", Category: trainer.SpecialtyStrength,
		Day: gymclass.Monday, StartTime: "06:30", EndTime: "07:30", Capacity: 16, Status: gymclass.StatusScheduled,
	})
	deps := ClassStatusDeps{ClassStore: classes}

	if err := ExecuteCancelClass(context.Background(), "c1", testActor, deps); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if classes.classes["c1"].Status != gymclass.StatusCancelled {
		t.Fatalf("status=%q want cancelled", classes.classes["c1"].Status)
	}
	if err := ExecuteCancelClass(context.Background(), "c1", testActor, deps); !errors.Is(err, gymclass.ErrAlreadyCancelled) {
		t.Fatalf("second cancel err=%v want ErrAlreadyCancelled", err)
	}
	if err := ExecuteRestoreClass(context.Background(), "c1", testActor, deps); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if classes.classes["c1"].Status != gymclass.StatusScheduled {
		t.Errorf("status=%q want scheduled", classes.classes["c1"].Status)
	}
}
