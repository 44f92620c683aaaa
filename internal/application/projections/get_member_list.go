package projections

import (
	"context"

	"gymdesk/internal/adapters/storage/member"
	"gymdesk/internal/application/listutil"
	domainMember "gymdesk/internal/domain/member"
)

// MemberSortColumns are the sort columns accepted by the member list.
var MemberSortColumns = []string{"name", "email", "plan", "status", "joined_at"}

// MemberFilterKeys are the equality filter keys accepted by the member list.
var MemberFilterKeys = []string{"plan", "status"}

// GetMemberListQuery carries query parameters.
type GetMemberListQuery struct {
	Params listutil.ListParams
}

// GetMemberListResult carries the query result.
type GetMemberListResult struct {
	Members  []domainMember.Member
	PageInfo listutil.PageInfo
}

// GetMemberListDeps holds dependencies for GetMemberList.
type GetMemberListDeps struct {
	MemberStore MemberStore
}

// QueryGetMemberList retrieves one page of members.
// Search, filters, and sort are pushed down to the store since every
// sortable column is a stored field.
// PRE: query params have been parsed via listutil
// POST: Returns the page of matching members with pagination metadata
func QueryGetMemberList(ctx context.Context, query GetMemberListQuery, deps GetMemberListDeps) (GetMemberListResult, error) {
	filter := member.ListFilter{
		Search: query.Params.Search,
		Plan:   query.Params.Filters["plan"],
		Status: query.Params.Filters["status"],
		Sort:   query.Params.Sort,
		Dir:    query.Params.Dir,
	}

	total, err := deps.MemberStore.Count(ctx, filter)
	if err != nil {
		return GetMemberListResult{}, err
	}

	info := listutil.NewPageInfo(query.Params.Page, query.Params.PerPage, total)
	filter.Limit = info.PerPage
	filter.Offset = info.Offset()

	members, err := deps.MemberStore.List(ctx, filter)
	if err != nil {
		return GetMemberListResult{}, err
	}

	return GetMemberListResult{Members: members, PageInfo: info}, nil
}
