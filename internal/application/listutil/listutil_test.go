package listutil_test

import (
	"net/url"
	"testing"

	"gymdesk/internal/application/listutil"
)

// TestParsePageParams tests parsing of page and per_page values.
func TestParsePageParams(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantPage    int
		wantPerPage int
	}{
		{name: "defaults", query: "", wantPage: 1, wantPerPage: 20},
		{name: "explicit", query: "page=3&per_page=50", wantPage: 3, wantPerPage: 50},
		{name: "negative page", query: "page=-1", wantPage: 1, wantPerPage: 20},
		{name: "disallowed per_page", query: "per_page=33", wantPage: 1, wantPerPage: 20},
		{name: "non-numeric", query: "page=abc&per_page=xyz", wantPage: 1, wantPerPage: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, _ := url.ParseQuery(tt.query)
			got := listutil.ParsePageParams(q)
			if got.Page != tt.wantPage || got.PerPage != tt.wantPerPage {
				t.Errorf("ParsePageParams() = %+v, want page=%d per_page=%d", got, tt.wantPage, tt.wantPerPage)
			}
		})
	}
}

// TestParseSortParams tests sort column allow-listing and direction defaulting.
func TestParseSortParams(t *testing.T) {
	allowed := []string{"name", "email"}
	tests := []struct {
		name     string
		query    string
		wantSort string
		wantDir  string
	}{
		{name: "valid", query: "sort=name&dir=desc", wantSort: "name", wantDir: "desc"},
		{name: "unknown column dropped", query: "sort=injection&dir=asc", wantSort: "", wantDir: "asc"},
		{name: "bad dir defaults asc", query: "sort=email&dir=sideways", wantSort: "email", wantDir: "asc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, _ := url.ParseQuery(tt.query)
			got := listutil.ParseSortParams(q, allowed)
			if got.Sort != tt.wantSort || got.Dir != tt.wantDir {
				t.Errorf("ParseSortParams() = %+v, want sort=%q dir=%q", got, tt.wantSort, tt.wantDir)
			}
		})
	}
}

// TestParseFilterParams tests that only recognised filter keys are kept.
func TestParseFilterParams(t *testing.T) {
	q, _ := url.ParseQuery("q=ana&status=active&bogus=1")
	got := listutil.ParseFilterParams(q, []string{"status", "plan"})
	if got.Search != "ana" {
		t.Errorf("Search = %q, want ana", got.Search)
	}
	if got.Filters["status"] != "active" {
		t.Errorf("Filters[status] = %q, want active", got.Filters["status"])
	}
	if _, ok := got.Filters["bogus"]; ok {
		t.Error("unrecognised filter key was kept")
	}
}

// TestMatchesSearch tests case-insensitive substring matching.
func TestMatchesSearch(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		fields []string
		want   bool
	}{
		{name: "empty query matches", query: "", fields: []string{"anything"}, want: true},
		{name: "case-insensitive hit", query: "ANA", fields: []string{"Ana Flores", "ana@example.com"}, want: true},
		{name: "substring hit on second field", query: "example.com", fields: []string{"Ana Flores", "ana@example.com"}, want: true},
		{name: "miss", query: "zzz", fields: []string{"Ana Flores"}, want: false},
		{name: "no fields", query: "x", fields: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := listutil.MatchesSearch(tt.query, tt.fields...); got != tt.want {
				t.Errorf("MatchesSearch(%q, %v) = %v, want %v", tt.query, tt.fields, got, tt.want)
			}
		})
	}
}

// TestSortStable tests direction handling and stable tie-breaks.
func TestSortStable(t *testing.T) {
	type row struct {
		Name string
		Seq  int
	}
	items := []row{{"b", 0}, {"a", 1}, {"b", 2}, {"a", 3}}

	listutil.SortStable(items, "asc", func(x, y row) bool { return x.Name < y.Name })
	want := []row{{"a", 1}, {"a", 3}, {"b", 0}, {"b", 2}}
	for i := range want {
		if items[i] != want[i] {
			t.Fatalf("asc sort[%d] = %+v, want %+v", i, items[i], want[i])
		}
	}

	listutil.SortStable(items, "desc", func(x, y row) bool { return x.Name < y.Name })
	// Descending reverses the key order but ties keep their relative order.
	wantDesc := []row{{"b", 0}, {"b", 2}, {"a", 1}, {"a", 3}}
	for i := range wantDesc {
		if items[i] != wantDesc[i] {
			t.Fatalf("desc sort[%d] = %+v, want %+v", i, items[i], wantDesc[i])
		}
	}
}

// TestPaginate tests page windowing over a filtered slice.
func TestPaginate(t *testing.T) {
	items := make([]int, 45)
	for i := range items {
		items[i] = i
	}

	page, info := listutil.Paginate(items, listutil.PageParams{Page: 2, PerPage: 20})
	if len(page) != 20 || page[0] != 20 {
		t.Errorf("page 2 = len %d first %d, want len 20 first 20", len(page), page[0])
	}
	if info.Total != 45 || info.TotalPages != 3 {
		t.Errorf("info = %+v, want total=45 pages=3", info)
	}

	// Out-of-range page clamps to the last page
	page, info = listutil.Paginate(items, listutil.PageParams{Page: 99, PerPage: 20})
	if info.Page != 3 || len(page) != 5 {
		t.Errorf("clamped page = %d len %d, want page 3 len 5", info.Page, len(page))
	}

	// Empty input
	page, info = listutil.Paginate([]int{}, listutil.PageParams{Page: 1, PerPage: 20})
	if len(page) != 0 || info.Total != 0 || info.TotalPages != 1 {
		t.Errorf("empty input: len %d info %+v, want empty page on page 1 of 1", len(page), info)
	}
}

// TestPageInfoOffset tests the page-to-row arithmetic.
func TestPageInfoOffset(t *testing.T) {
	info := listutil.NewPageInfo(2, 20, 45)
	if info.Offset() != 20 {
		t.Errorf("Offset() = %d, want 20", info.Offset())
	}
}
