package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"gymdesk/internal/application/projections"
	"gymdesk/internal/domain/member"
)

// MembersXLSX renders the member list as a spreadsheet for download.
// PRE: members may be empty
// POST: Returns the encoded .xlsx bytes
func MembersXLSX(members []member.Member) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Members"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Name", "Email", "Phone", "Plan", "Status", "Joined"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for r, m := range members {
		row := []any{m.Name, m.Email, m.Phone, m.Plan, m.Status, m.JoinedAt.Format("2006-01-02")}
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", r+2, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// PaymentsXLSX renders the payment list, member names included, as a
// spreadsheet for download. A summary row with the total follows the data.
// PRE: payments may be empty
// POST: Returns the encoded .xlsx bytes
func PaymentsXLSX(payments []projections.PaymentWithMember) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Payments"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Date", "Member", "Amount", "Method", "Status", "Reference", "Note"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	total := 0
	for r, p := range payments {
		date := ""
		if !p.PaidAt.IsZero() {
			date = p.PaidAt.Format("2006-01-02")
		}
		row := []any{date, p.MemberName, float64(p.Amount) / 100, p.Method, p.Status, p.Reference, p.Note}
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", r+2, err)
			}
		}
		if p.Status == "paid" {
			total += p.Amount
		}
	}

	summaryRow := len(payments) + 3
	cell, _ := excelize.CoordinatesToCellName(1, summaryRow)
	if err := f.SetCellValue(sheet, cell, fmt.Sprintf("Total paid: $%.2f (exported %s)", float64(total)/100, time.Now().Format("2006-01-02"))); err != nil {
		return nil, fmt.Errorf("write summary: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}
