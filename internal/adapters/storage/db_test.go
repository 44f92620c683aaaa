package storage_test

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"gymdesk/internal/adapters/storage"
	memberStore "gymdesk/internal/adapters/storage/member"
	paymentStore "gymdesk/internal/adapters/storage/payment"
	"gymdesk/internal/application/listutil"
	"gymdesk/internal/application/projections"
	memberDomain "gymdesk/internal/domain/member"
	paymentDomain "gymdesk/internal/domain/payment"
)

// openTestDB opens a temp SQLite database with the schema applied.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open test DB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("failed to init schema: %v", err)
	}
	return db
}

// TestInitDBIdempotent tests that the schema can be applied twice.
func TestInitDBIdempotent(t *testing.T) {
	db := openTestDB(t)
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("second InitDB() error = %v", err)
	}
}

// TestMemberStoreRoundTrip tests save, get, update, and delete for members.
func TestMemberStoreRoundTrip(t *testing.T) {
	db := openTestDB(t)
	store := memberStore.NewSQLiteStore(db)
	ctx := context.Background()

	m := memberDomain.Member{
		ID:       "m1",
		Name:     "Ana Flores",
		Email:    "ana@example.com",
		Phone:    "021-555-0101",
		Plan:     memberDomain.PlanPremium,
		JoinedAt: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		Status:   memberDomain.StatusActive,
	}
	if err := store.Save(ctx, m); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.GetByID(ctx, "m1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Name != m.Name || got.Plan != m.Plan || !got.JoinedAt.Equal(m.JoinedAt) {
		t.Errorf("GetByID() = %+v, want %+v", got, m)
	}

	got, err = store.GetByEmail(ctx, "ana@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if got.ID != "m1" {
		t.Errorf("GetByEmail() ID = %q, want m1", got.ID)
	}

	// Upsert updates in place
	m.Plan = memberDomain.PlanBasic
	if err := store.Save(ctx, m); err != nil {
		t.Fatalf("Save() update error = %v", err)
	}
	got, _ = store.GetByID(ctx, "m1")
	if got.Plan != memberDomain.PlanBasic {
		t.Errorf("plan after update = %q, want basic", got.Plan)
	}

	if err := store.Delete(ctx, "m1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.GetByID(ctx, "m1"); err == nil {
		t.Error("GetByID() after delete returned no error")
	}
}

// TestMemberStoreListFilters tests search, filter, sort, and count.
func TestMemberStoreListFilters(t *testing.T) {
	db := openTestDB(t)
	store := memberStore.NewSQLiteStore(db)
	ctx := context.Background()

	seed := []memberDomain.Member{
		{ID: "m1", Name: "Ana Flores", Email: "ana@example.com", Plan: memberDomain.PlanPremium, JoinedAt: time.Now(), Status: memberDomain.StatusActive},
		{ID: "m2", Name: "Ben Okafor", Email: "ben@example.com", Plan: memberDomain.PlanBasic, JoinedAt: time.Now(), Status: memberDomain.StatusActive},
		{ID: "m3", Name: "Cara Singh", Email: "cara@example.com", Plan: memberDomain.PlanBasic, JoinedAt: time.Now(), Status: memberDomain.StatusArchived},
	}
	for _, m := range seed {
		if err := store.Save(ctx, m); err != nil {
			t.Fatalf("Save(%s) error = %v", m.ID, err)
		}
	}

	// Equality filter
	got, err := store.List(ctx, memberStore.ListFilter{Plan: memberDomain.PlanBasic})
	if err != nil {
		t.Fatalf("List(plan=basic) error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("List(plan=basic) len = %d, want 2", len(got))
	}

	// Search is case-insensitive substring (LIKE is case-insensitive for ASCII in SQLite)
	got, err = store.List(ctx, memberStore.ListFilter{Search: "okaf"})
	if err != nil {
		t.Fatalf("List(search) error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "m2" {
		t.Errorf("List(search=okaf) = %v, want [m2]", got)
	}

	// Filters intersect
	got, _ = store.List(ctx, memberStore.ListFilter{Plan: memberDomain.PlanBasic, Status: memberDomain.StatusActive})
	if len(got) != 1 || got[0].ID != "m2" {
		t.Errorf("List(basic+active) = %v, want [m2]", got)
	}

	// Descending sort on name
	got, _ = store.List(ctx, memberStore.ListFilter{Sort: "name", Dir: "desc"})
	if len(got) != 3 || got[0].ID != "m3" {
		t.Errorf("List(sort=name desc) first = %v, want m3", got)
	}

	// Unknown sort column falls back to default name ascending
	got, _ = store.List(ctx, memberStore.ListFilter{Sort: "evil; DROP TABLE member"})
	if len(got) != 3 || got[0].ID != "m1" {
		t.Errorf("List(bad sort) first = %v, want m1", got)
	}

	count, err := store.Count(ctx, memberStore.ListFilter{Status: memberDomain.StatusActive})
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 2 {
		t.Errorf("Count(active) = %d, want 2", count)
	}
}

// TestPaymentStoreRevenue tests month filtering and revenue aggregation.
func TestPaymentStoreRevenue(t *testing.T) {
	db := openTestDB(t)
	members := memberStore.NewSQLiteStore(db)
	payments := paymentStore.NewSQLiteStore(db)
	ctx := context.Background()

	m := memberDomain.Member{ID: "m1", Name: "Ana Flores", Email: "ana@example.com", Plan: memberDomain.PlanBasic, JoinedAt: time.Now(), Status: memberDomain.StatusActive}
	if err := members.Save(ctx, m); err != nil {
		t.Fatalf("member Save() error = %v", err)
	}

	seed := []paymentDomain.Payment{
		{ID: "p1", MemberID: "m1", Amount: 4900, Method: paymentDomain.MethodCard, Status: paymentDomain.StatusPaid, PaidAt: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)},
		{ID: "p2", MemberID: "m1", Amount: 4900, Method: paymentDomain.MethodCash, Status: paymentDomain.StatusPaid, PaidAt: time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC)},
		{ID: "p3", MemberID: "m1", Amount: 4900, Method: paymentDomain.MethodCard, Status: paymentDomain.StatusRefunded, PaidAt: time.Date(2026, 3, 25, 9, 0, 0, 0, time.UTC)},
		{ID: "p4", MemberID: "m1", Amount: 9900, Method: paymentDomain.MethodCard, Status: paymentDomain.StatusPaid, PaidAt: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)},
	}
	for _, p := range seed {
		if err := payments.Save(ctx, p); err != nil {
			t.Fatalf("payment Save(%s) error = %v", p.ID, err)
		}
	}

	// Refunded payments do not count toward revenue
	revenue, err := payments.RevenueForMonth(ctx, 2026, 3)
	if err != nil {
		t.Fatalf("RevenueForMonth() error = %v", err)
	}
	if revenue != 9800 {
		t.Errorf("RevenueForMonth(2026-03) = %d, want 9800", revenue)
	}

	// Empty month returns zero, not an error
	revenue, err = payments.RevenueForMonth(ctx, 2020, 1)
	if err != nil {
		t.Fatalf("RevenueForMonth(empty) error = %v", err)
	}
	if revenue != 0 {
		t.Errorf("RevenueForMonth(empty) = %d, want 0", revenue)
	}

	got, err := payments.List(ctx, paymentStore.ListFilter{Month: "2026-03"})
	if err != nil {
		t.Fatalf("List(month) error = %v", err)
	}
	if len(got) != 3 {
		t.Errorf("List(month=2026-03) len = %d, want 3", len(got))
	}
	// Newest first
	if got[0].ID != "p3" {
		t.Errorf("List() first = %s, want p3", got[0].ID)
	}

	recent, err := payments.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(recent) != 2 || recent[0].ID != "p4" {
		t.Errorf("Recent(2) = %v, want [p4 p3]", recent)
	}
}

// TestPaymentStoreListUnbounded tests that a zero-Limit List returns every
// row and that the payment list projection reports the full total. Payments
// accumulate without bound, so the row count here deliberately exceeds any
// batch size a store might default to.
func TestPaymentStoreListUnbounded(t *testing.T) {
	db := openTestDB(t)
	members := memberStore.NewSQLiteStore(db)
	payments := paymentStore.NewSQLiteStore(db)
	ctx := context.Background()

	m := memberDomain.Member{ID: "m1", Name: "Ana Flores", Email: "ana@example.com", Plan: memberDomain.PlanBasic, JoinedAt: time.Now(), Status: memberDomain.StatusActive}
	if err := members.Save(ctx, m); err != nil {
		t.Fatalf("member Save() error = %v", err)
	}

	const total = 1001
	base := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < total; i++ {
		p := paymentDomain.Payment{
			ID:       fmt.Sprintf("p%04d", i),
			MemberID: "m1",
			Amount:   4900,
			Method:   paymentDomain.MethodCard,
			Status:   paymentDomain.StatusPaid,
			PaidAt:   base.Add(time.Duration(i) * time.Minute),
		}
		if err := payments.Save(ctx, p); err != nil {
			t.Fatalf("payment Save(%s) error = %v", p.ID, err)
		}
	}

	got, err := payments.List(ctx, paymentStore.ListFilter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != total {
		t.Fatalf("List() len = %d, want %d", len(got), total)
	}

	// An explicit Limit still windows the result
	got, err = payments.List(ctx, paymentStore.ListFilter{Limit: 5})
	if err != nil {
		t.Fatalf("List(limit=5) error = %v", err)
	}
	if len(got) != 5 {
		t.Errorf("List(limit=5) len = %d, want 5", len(got))
	}

	// The in-memory projection must see every row for its envelope counts
	res, err := projections.QueryGetPaymentList(ctx, projections.GetPaymentListQuery{
		Params: listutil.ListParams{PageParams: listutil.PageParams{Page: 1, PerPage: 20}},
	}, projections.GetPaymentListDeps{PaymentStore: payments, MemberStore: members})
	if err != nil {
		t.Fatalf("QueryGetPaymentList() error = %v", err)
	}
	if res.PageInfo.Total != total {
		t.Errorf("PageInfo.Total = %d, want %d", res.PageInfo.Total, total)
	}
	if want := (total + 19) / 20; res.PageInfo.TotalPages != want {
		t.Errorf("PageInfo.TotalPages = %d, want %d", res.PageInfo.TotalPages, want)
	}
	if len(res.Payments) != 20 {
		t.Fatalf("page len = %d, want 20", len(res.Payments))
	}
	if res.Payments[0].MemberName != "Ana Flores" {
		t.Errorf("first member = %q, want Ana Flores", res.Payments[0].MemberName)
	}
}
