package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"gymdesk/internal/application/projections"
	"gymdesk/internal/domain/member"
)

// TestMembersXLSX verifies the workbook round-trips with header and data rows.
func TestMembersXLSX(t *testing.T) {
	joined := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	data, err := MembersXLSX([]member.Member{
		{ID: "m1", Name: "Grace Okafor", Email: "grace@example.com", Plan: member.PlanPremium, JoinedAt: joined, Status: member.StatusActive},
		{ID: "m2", Name: "Tom Baird", Email: "tom@example.com", Plan: member.PlanBasic, JoinedAt: joined, Status: member.StatusInactive},
	})
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Members")
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows=%d want 3", len(rows))
	}
	if rows[0][0] != "Name" {
		t.Errorf("header=%q want Name", rows[0][0])
	}
	if rows[1][0] != "Grace Okafor" || rows[1][5] != "2026-01-15" {
		t.Errorf("row 1=%v", rows[1])
	}
}

// TestPaymentsXLSX verifies data rows and the paid-only total.
func TestPaymentsXLSX(t *testing.T) {
	paid := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	data, err := PaymentsXLSX([]projections.PaymentWithMember{
		{ID: "p1", MemberName: "Grace Okafor", Amount: 4500, Method: "card", Status: "paid", Reference: "INV-001", PaidAt: paid},
		{ID: "p2", MemberName: "Tom Baird", Amount: 9900, Method: "cash", Status: "refunded", Reference: "INV-002", PaidAt: paid},
	})
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Payments")
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if rows[1][1] != "Grace Okafor" {
		t.Errorf("row 1=%v", rows[1])
	}

	summary, err := f.GetCellValue("Payments", "A5")
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	// Only the paid 45.00 counts; the refunded 99.00 does not.
	if want := "Total paid: $45.00"; len(summary) < len(want) || summary[:len(want)] != want {
		t.Errorf("summary=%q want prefix %q", summary, want)
	}
}
