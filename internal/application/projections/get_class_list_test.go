package projections

import (
	"context"
	"testing"

	"gymdesk/internal/adapters/storage/gymclass"
	"gymdesk/internal/adapters/storage/trainer"
	"gymdesk/internal/application/listutil"
	domainClass "gymdesk/internal/domain/gymclass"
	domainTrainer "gymdesk/internal/domain/trainer"
)

type mockGetClassListClassStore struct {
	classes []domainClass.Class
}

// List returns seeded classes honoring equality filters.
// PRE: filter is valid
// POST: Returns all seeded classes matching the filter
func (m *mockGetClassListClassStore) List(_ context.Context, f gymclass.ListFilter) ([]domainClass.Class, error) {
	var out []domainClass.Class
	for _, c := range m.classes {
		if f.Category != "" && c.Category != f.Category {
			continue
		}
		if f.Day != "" && c.Day != f.Day {
			continue
		}
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		if f.TrainerID != "" && c.TrainerID != f.TrainerID {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// Count returns the number of seeded classes.
// PRE: filter is valid
// POST: Returns count >= 0
func (m *mockGetClassListClassStore) Count(_ context.Context, _ gymclass.ListFilter) (int, error) {
	return len(m.classes), nil
}

type mockGetClassListTrainerStore struct {
	trainers []domainTrainer.Trainer
}

// List returns all seeded trainers.
// PRE: filter is valid
// POST: Returns all seeded trainers
func (m *mockGetClassListTrainerStore) List(_ context.Context, _ trainer.ListFilter) ([]domainTrainer.Trainer, error) {
	return m.trainers, nil
}

// Count returns the number of seeded trainers.
// PRE: filter is valid
// POST: Returns count >= 0
func (m *mockGetClassListTrainerStore) Count(_ context.Context, _ trainer.ListFilter) (int, error) {
	return len(m.trainers), nil
}

func classListDeps() GetClassListDeps {
	return GetClassListDeps{
		ClassStore: &mockGetClassListClassStore{classes: []domainClass.Class{
			{ID: "c1", Name: "Morning Spin", TrainerID: "t1", Category: "cardio", Day: "monday", StartTime: "06:00", EndTime: "07:00", Capacity: 20, Status: "scheduled"},
			{ID: "c2", Name: "Power Lifting", TrainerID: "t2", Category: "strength", Day: "wednesday", StartTime: "18:00", EndTime: "19:30", Capacity: 12, Status: "scheduled"},
			{ID: "c3", Name: "Sunset Yoga", TrainerID: "t1", Category: "yoga", Day: "friday", StartTime: "19:00", EndTime: "20:00", Capacity: 15, Status: "cancelled"},
		}},
		TrainerStore: &mockGetClassListTrainerStore{trainers: []domainTrainer.Trainer{
			{ID: "t1", Name: "Dana Reeves"},
			{ID: "t2", Name: "Luis Ortega"},
		}},
	}
}

// TestQueryGetClassList_ResolvesTrainerNames verifies the trainer name join.
func TestQueryGetClassList_ResolvesTrainerNames(t *testing.T) {
	res, err := QueryGetClassList(context.Background(), GetClassListQuery{}, classListDeps())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Classes) != 3 {
		t.Fatalf("classes=%d want 3", len(res.Classes))
	}
	for _, c := range res.Classes {
		if c.ID == "c2" && c.TrainerName != "Luis Ortega" {
			t.Errorf("c2 trainer=%q want %q", c.TrainerName, "Luis Ortega")
		}
	}
}

// TestQueryGetClassList_SearchMatchesTrainerName verifies search covers the computed column.
func TestQueryGetClassList_SearchMatchesTrainerName(t *testing.T) {
	query := GetClassListQuery{Params: listutil.ListParams{
		FilterParams: listutil.FilterParams{Search: "ortega"},
	}}
	res, err := QueryGetClassList(context.Background(), query, classListDeps())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Classes) != 1 || res.Classes[0].ID != "c2" {
		t.Fatalf("got %d classes, want only c2", len(res.Classes))
	}
}

// TestQueryGetClassList_FilterAndSearchIntersect verifies filters AND search both apply.
func TestQueryGetClassList_FilterAndSearchIntersect(t *testing.T) {
	query := GetClassListQuery{Params: listutil.ListParams{
		FilterParams: listutil.FilterParams{
			Search:  "dana",
			Filters: map[string]string{"status": "scheduled"},
		},
	}}
	res, err := QueryGetClassList(context.Background(), query, classListDeps())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Dana coaches c1 (scheduled) and c3 (cancelled); only c1 survives.
	if len(res.Classes) != 1 || res.Classes[0].ID != "c1" {
		t.Fatalf("got %d classes, want only c1", len(res.Classes))
	}
}

// TestQueryGetClassList_SortByTrainerDesc verifies descending sort on the computed column.
func TestQueryGetClassList_SortByTrainerDesc(t *testing.T) {
	query := GetClassListQuery{Params: listutil.ListParams{
		SortParams: listutil.SortParams{Sort: "trainer", Dir: "desc"},
	}}
	res, err := QueryGetClassList(context.Background(), query, classListDeps())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Classes[0].TrainerName != "Luis Ortega" {
		t.Errorf("first trainer=%q want %q", res.Classes[0].TrainerName, "Luis Ortega")
	}
	if res.Classes[2].TrainerName != "Dana Reeves" {
		t.Errorf("last trainer=%q want %q", res.Classes[2].TrainerName, "Dana Reeves")
	}
}

// TestQueryGetClassList_SortByDay verifies weekday-aware ordering.
func TestQueryGetClassList_SortByDay(t *testing.T) {
	query := GetClassListQuery{Params: listutil.ListParams{
		SortParams: listutil.SortParams{Sort: "day", Dir: "desc"},
	}}
	res, err := QueryGetClassList(context.Background(), query, classListDeps())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Classes[0].Day != "friday" || res.Classes[2].Day != "monday" {
		t.Fatalf("day order %s..%s, want friday..monday", res.Classes[0].Day, res.Classes[2].Day)
	}
}

// TestQueryGetClassList_DanglingTrainerRendersEmptyName verifies a missing
// trainer reference does not fail the projection.
func TestQueryGetClassList_DanglingTrainerRendersEmptyName(t *testing.T) {
	deps := classListDeps()
	deps.TrainerStore = &mockGetClassListTrainerStore{}
	res, err := QueryGetClassList(context.Background(), GetClassListQuery{}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range res.Classes {
		if c.TrainerName != "" {
			t.Errorf("class %s trainer=%q want empty", c.ID, c.TrainerName)
		}
	}
}
