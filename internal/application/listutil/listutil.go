// Package listutil implements the list pipeline shared by every collection
// endpoint: free-text search, equality filters, allow-listed sorting and
// pagination.
package listutil

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// DefaultPerPage is the default number of rows per page.
const DefaultPerPage = 20

// PerPageOptions are the allowed rows-per-page values.
var PerPageOptions = []int{10, 20, 50, 100, 200}

// PageParams carries pagination parameters parsed from a request.
type PageParams struct {
	Page    int // 1-indexed page number
	PerPage int // rows per page
}

// SortParams carries sorting parameters parsed from a request.
type SortParams struct {
	Sort string // column name
	Dir  string // "asc" or "desc"
}

// FilterParams carries search and filter parameters.
type FilterParams struct {
	Search  string            // free-text search query
	Filters map[string]string // exact-match filters (e.g. status=active)
}

// ListParams combines all list view parameters.
type ListParams struct {
	PageParams
	SortParams
	FilterParams
}

// ParsePageParams extracts page and per_page from URL query values.
// POST: Page >= 1 and PerPage is one of PerPageOptions
func ParsePageParams(q url.Values) PageParams {
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	pp := PageParams{Page: page, PerPage: DefaultPerPage}
	if n, _ := strconv.Atoi(q.Get("per_page")); contains(PerPageOptions, n) {
		pp.PerPage = n
	}
	return pp
}

// ParseSortParams extracts sort and dir from URL query values. Unknown sort
// columns are dropped rather than passed through, so callers can interpolate
// Sort into ORDER BY safely.
// POST: Dir is always "asc" or "desc"
func ParseSortParams(q url.Values, allowedColumns []string) SortParams {
	sp := SortParams{Sort: q.Get("sort"), Dir: q.Get("dir")}
	if !contains(allowedColumns, sp.Sort) {
		sp.Sort = ""
	}
	if sp.Dir != "asc" && sp.Dir != "desc" {
		sp.Dir = "asc"
	}
	return sp
}

// ParseFilterParams extracts the q search term and named filters.
// POST: Filters holds only keys listed in filterKeys
func ParseFilterParams(q url.Values, filterKeys []string) FilterParams {
	fp := FilterParams{
		Search:  q.Get("q"),
		Filters: make(map[string]string),
	}
	for _, key := range filterKeys {
		if v := q.Get(key); v != "" {
			fp.Filters[key] = v
		}
	}
	return fp
}

// ParseListParams parses all list parameters from URL query values.
func ParseListParams(q url.Values, allowedSortCols []string, filterKeys []string) ListParams {
	return ListParams{
		PageParams:   ParsePageParams(q),
		SortParams:   ParseSortParams(q, allowedSortCols),
		FilterParams: ParseFilterParams(q, filterKeys),
	}
}

// MatchesSearch reports whether any field contains the query as a
// case-insensitive substring. An empty query matches everything.
func MatchesSearch(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// SortStable sorts items in place by the given comparator, reversing for
// "desc". Ties keep their original order.
// PRE: less is a strict weak ordering over items
// POST: equal elements retain relative order
func SortStable[T any](items []T, dir string, less func(a, b T) bool) {
	cmp := less
	if dir == "desc" {
		cmp = func(a, b T) bool { return less(b, a) }
	}
	sort.SliceStable(items, func(i, j int) bool { return cmp(items[i], items[j]) })
}

// Paginate returns the slice of items for the given page along with
// pagination metadata.
// PRE: items is the full filtered result set
// POST: returns the page window and PageInfo computed from len(items)
func Paginate[T any](items []T, pp PageParams) ([]T, PageInfo) {
	info := NewPageInfo(pp.Page, pp.PerPage, len(items))
	start := min(info.Offset(), len(items))
	end := min(start+info.PerPage, len(items))
	return items[start:end], info
}

// PageInfo carries pagination metadata for the list envelope.
type PageInfo struct {
	Page       int // current page (1-indexed)
	PerPage    int // rows per page
	Total      int // total matching rows
	TotalPages int // ceil(Total / PerPage)
}

// NewPageInfo computes pagination metadata.
// PRE: total >= 0
// POST: TotalPages >= 1 and 1 <= Page <= TotalPages
func NewPageInfo(page, perPage, total int) PageInfo {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	page = max(1, min(page, totalPages))
	return PageInfo{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Offset returns the first row index for the current page.
func (p PageInfo) Offset() int {
	return (p.Page - 1) * p.PerPage
}

func contains[T comparable](list []T, v T) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
