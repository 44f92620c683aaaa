package projections

import (
	"context"

	"gymdesk/internal/adapters/storage/trainer"
	"gymdesk/internal/application/listutil"
	domainTrainer "gymdesk/internal/domain/trainer"
)

// TrainerSortColumns are the sort columns accepted by the trainer list.
var TrainerSortColumns = []string{"name", "email", "specialty", "status", "hired_at"}

// TrainerFilterKeys are the equality filter keys accepted by the trainer list.
var TrainerFilterKeys = []string{"specialty", "status"}

// GetTrainerListQuery carries query parameters.
type GetTrainerListQuery struct {
	Params listutil.ListParams
}

// GetTrainerListResult carries the query result.
type GetTrainerListResult struct {
	Trainers []domainTrainer.Trainer
	PageInfo listutil.PageInfo
}

// GetTrainerListDeps holds dependencies for GetTrainerList.
type GetTrainerListDeps struct {
	TrainerStore TrainerStore
}

// QueryGetTrainerList retrieves one page of trainers.
// PRE: query params have been parsed via listutil
// POST: Returns the page of matching trainers with pagination metadata
func QueryGetTrainerList(ctx context.Context, query GetTrainerListQuery, deps GetTrainerListDeps) (GetTrainerListResult, error) {
	filter := trainer.ListFilter{
		Search:    query.Params.Search,
		Specialty: query.Params.Filters["specialty"],
		Status:    query.Params.Filters["status"],
		Sort:      query.Params.Sort,
		Dir:       query.Params.Dir,
	}

	total, err := deps.TrainerStore.Count(ctx, filter)
	if err != nil {
		return GetTrainerListResult{}, err
	}

	info := listutil.NewPageInfo(query.Params.Page, query.Params.PerPage, total)
	filter.Limit = info.PerPage
	filter.Offset = info.Offset()

	trainers, err := deps.TrainerStore.List(ctx, filter)
	if err != nil {
		return GetTrainerListResult{}, err
	}

	return GetTrainerListResult{Trainers: trainers, PageInfo: info}, nil
}
