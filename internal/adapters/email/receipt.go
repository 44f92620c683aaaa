package email

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

// ReceiptData carries the fields rendered into a payment receipt email.
type ReceiptData struct {
	MemberName string
	MemberMail string
	Amount     float64 // dollars
	Method     string
	Reference  string
	PaidAt     time.Time
	GymName    string
}

var receiptTmpl = template.Must(template.New("receipt").Parse(`<div style="font-family:sans-serif;max-width:480px">
<h2>{{.GymName}} — Payment Receipt</h2>
<p>Hi {{.MemberName}},</p>
<p>We received your payment. Thank you!</p>
<table cellpadding="4">
<tr><td>Amount</td><td><strong>${{printf "%.2f" .Amount}}</strong></td></tr>
<tr><td>Method</td><td>{{.Method}}</td></tr>
{{if .Reference}}<tr><td>Reference</td><td>{{.Reference}}</td></tr>{{end}}
<tr><td>Date</td><td>{{.PaidAt.Format "2 Jan 2006"}}</td></tr>
</table>
<p style="color:#888;font-size:12px">This receipt was generated automatically.</p>
</div>`))

// ComposeReceipt renders a payment receipt into a ready-to-send request.
// PRE: data.MemberMail is non-empty
// POST: Returns a SendRequest addressed to the member
func ComposeReceipt(data ReceiptData) (SendRequest, error) {
	if data.GymName == "" {
		data.GymName = "GymDesk"
	}

	var buf bytes.Buffer
	if err := receiptTmpl.Execute(&buf, data); err != nil {
		return SendRequest{}, fmt.Errorf("render receipt: %w", err)
	}

	return SendRequest{
		To:      []string{data.MemberMail},
		Subject: fmt.Sprintf("%s payment receipt — $%.2f", data.GymName, data.Amount),
		HTML:    buf.String(),
	}, nil
}
