package projections

import (
	"context"
	"time"

	"gymdesk/internal/adapters/storage/member"
	"gymdesk/internal/adapters/storage/payment"
	"gymdesk/internal/application/listutil"
)

// PaymentSortColumns are the sort columns accepted by the payment list.
// "member" sorts on the resolved member name, which only exists in memory.
var PaymentSortColumns = []string{"paid_at", "amount", "method", "status", "member"}

// PaymentFilterKeys are the equality filter keys accepted by the payment list.
var PaymentFilterKeys = []string{"status", "method", "member_id", "month"}

// PaymentWithMember is a payment row with its member name resolved.
type PaymentWithMember struct {
	ID         string
	MemberID   string
	MemberName string
	Amount     int
	Method     string
	Status     string
	Reference  string
	PaidAt     time.Time
	Note       string
}

// GetPaymentListQuery carries query parameters.
type GetPaymentListQuery struct {
	Params listutil.ListParams
}

// GetPaymentListResult carries the query result.
type GetPaymentListResult struct {
	Payments   []PaymentWithMember
	PageInfo   listutil.PageInfo
	PageAmount int // sum of amounts on this page, in cents
}

// GetPaymentListDeps holds dependencies for GetPaymentList.
type GetPaymentListDeps struct {
	PaymentStore PaymentStore
	MemberStore  MemberStore
}

// QueryGetPaymentList retrieves one page of payments with member names resolved.
// Member names are joined by linear scan over the fetched member list;
// search and sort run in memory because the member-name column is computed.
// A dangling member reference renders an empty name rather than failing.
// PRE: query params have been parsed via listutil
// POST: Returns the page of matching payments with pagination metadata
func QueryGetPaymentList(ctx context.Context, query GetPaymentListQuery, deps GetPaymentListDeps) (GetPaymentListResult, error) {
	payments, err := deps.PaymentStore.List(ctx, payment.ListFilter{
		MemberID: query.Params.Filters["member_id"],
		Status:   query.Params.Filters["status"],
		Method:   query.Params.Filters["method"],
		Month:    query.Params.Filters["month"],
	})
	if err != nil {
		return GetPaymentListResult{}, err
	}

	members, err := deps.MemberStore.List(ctx, member.ListFilter{})
	if err != nil {
		return GetPaymentListResult{}, err
	}
	memberNames := make(map[string]string, len(members))
	for _, m := range members {
		memberNames[m.ID] = m.Name
	}

	rows := make([]PaymentWithMember, 0, len(payments))
	for _, p := range payments {
		row := PaymentWithMember{
			ID:         p.ID,
			MemberID:   p.MemberID,
			MemberName: memberNames[p.MemberID],
			Amount:     p.Amount,
			Method:     p.Method,
			Status:     p.Status,
			Reference:  p.Reference,
			PaidAt:     p.PaidAt,
			Note:       p.Note,
		}
		if !listutil.MatchesSearch(query.Params.Search, row.MemberName, row.Reference, row.Note) {
			continue
		}
		rows = append(rows, row)
	}

	sortPayments(rows, query.Params.SortParams)

	page, info := listutil.Paginate(rows, query.Params.PageParams)

	pageAmount := 0
	for _, p := range page {
		pageAmount += p.Amount
	}

	return GetPaymentListResult{Payments: page, PageInfo: info, PageAmount: pageAmount}, nil
}

// sortPayments applies the selected sort; the store's newest-first
// ordering is kept when no column is chosen.
func sortPayments(rows []PaymentWithMember, sp listutil.SortParams) {
	var less func(a, b PaymentWithMember) bool
	switch sp.Sort {
	case "paid_at":
		less = func(a, b PaymentWithMember) bool { return a.PaidAt.Before(b.PaidAt) }
	case "amount":
		less = func(a, b PaymentWithMember) bool { return a.Amount < b.Amount }
	case "method":
		less = func(a, b PaymentWithMember) bool { return a.Method < b.Method }
	case "status":
		less = func(a, b PaymentWithMember) bool { return a.Status < b.Status }
	case "member":
		less = func(a, b PaymentWithMember) bool { return a.MemberName < b.MemberName }
	default:
		return
	}
	listutil.SortStable(rows, sp.Dir, less)
}
