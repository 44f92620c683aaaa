package projections

import (
	"context"

	"gymdesk/internal/adapters/storage/gymclass"
	"gymdesk/internal/adapters/storage/trainer"
	"gymdesk/internal/application/listutil"
)

// ClassSortColumns are the sort columns accepted by the class list.
// "trainer" sorts on the resolved trainer name, which only exists in memory.
var ClassSortColumns = []string{"name", "category", "day", "start_time", "capacity", "trainer"}

// ClassFilterKeys are the equality filter keys accepted by the class list.
var ClassFilterKeys = []string{"category", "day", "status", "trainer_id"}

// ClassWithTrainer is a class row with its trainer name resolved.
type ClassWithTrainer struct {
	ID          string
	Name        string
	TrainerID   string
	TrainerName string
	Category    string
	Day         string
	StartTime   string
	EndTime     string
	Capacity    int
	Status      string
}

// GetClassListQuery carries query parameters.
type GetClassListQuery struct {
	Params listutil.ListParams
}

// GetClassListResult carries the query result.
type GetClassListResult struct {
	Classes  []ClassWithTrainer
	PageInfo listutil.PageInfo
}

// GetClassListDeps holds dependencies for GetClassList.
type GetClassListDeps struct {
	ClassStore   ClassStore
	TrainerStore TrainerStore
}

// QueryGetClassList retrieves one page of classes with trainer names resolved.
// Trainer names are joined by linear scan over the fetched trainer list, and
// search/sort run in memory because the trainer-name column is computed.
// A dangling trainer reference renders an empty name rather than failing.
// PRE: query params have been parsed via listutil
// POST: Returns the page of matching classes with pagination metadata
func QueryGetClassList(ctx context.Context, query GetClassListQuery, deps GetClassListDeps) (GetClassListResult, error) {
	classes, err := deps.ClassStore.List(ctx, gymclass.ListFilter{
		Category:  query.Params.Filters["category"],
		Day:       query.Params.Filters["day"],
		Status:    query.Params.Filters["status"],
		TrainerID: query.Params.Filters["trainer_id"],
	})
	if err != nil {
		return GetClassListResult{}, err
	}

	trainers, err := deps.TrainerStore.List(ctx, trainer.ListFilter{})
	if err != nil {
		return GetClassListResult{}, err
	}
	trainerNames := make(map[string]string, len(trainers))
	for _, tr := range trainers {
		trainerNames[tr.ID] = tr.Name
	}

	rows := make([]ClassWithTrainer, 0, len(classes))
	for _, c := range classes {
		row := ClassWithTrainer{
			ID:          c.ID,
			Name:        c.Name,
			TrainerID:   c.TrainerID,
			TrainerName: trainerNames[c.TrainerID],
			Category:    c.Category,
			Day:         c.Day,
			StartTime:   c.StartTime,
			EndTime:     c.EndTime,
			Capacity:    c.Capacity,
			Status:      c.Status,
		}
		if !listutil.MatchesSearch(query.Params.Search, row.Name, row.TrainerName) {
			continue
		}
		rows = append(rows, row)
	}

	sortClasses(rows, query.Params.SortParams)

	page, info := listutil.Paginate(rows, query.Params.PageParams)
	return GetClassListResult{Classes: page, PageInfo: info}, nil
}

// sortClasses applies the selected sort; the store's weekday ordering is
// kept when no column is chosen.
func sortClasses(rows []ClassWithTrainer, sp listutil.SortParams) {
	var less func(a, b ClassWithTrainer) bool
	switch sp.Sort {
	case "name":
		less = func(a, b ClassWithTrainer) bool { return a.Name < b.Name }
	case "category":
		less = func(a, b ClassWithTrainer) bool { return a.Category < b.Category }
	case "day":
		less = func(a, b ClassWithTrainer) bool { return dayIndex(a.Day) < dayIndex(b.Day) }
	case "start_time":
		less = func(a, b ClassWithTrainer) bool { return a.StartTime < b.StartTime }
	case "capacity":
		less = func(a, b ClassWithTrainer) bool { return a.Capacity < b.Capacity }
	case "trainer":
		less = func(a, b ClassWithTrainer) bool { return a.TrainerName < b.TrainerName }
	default:
		return
	}
	listutil.SortStable(rows, sp.Dir, less)
}

func dayIndex(day string) int {
	order := map[string]int{
		"monday": 1, "tuesday": 2, "wednesday": 3, "thursday": 4,
		"friday": 5, "saturday": 6, "sunday": 7,
	}
	if i, ok := order[day]; ok {
		return i
	}
	return 8
}
