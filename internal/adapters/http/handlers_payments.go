package web

import (
	"errors"
	"net/http"
	"time"

	"gymdesk/internal/adapters/http/middleware"
	"gymdesk/internal/application/listutil"
	"gymdesk/internal/application/orchestrators"
	"gymdesk/internal/application/projections"
	domainPayment "gymdesk/internal/domain/payment"
)

// paymentJSON is the wire shape of a payment row, member name included.
type paymentJSON struct {
	ID         string `json:"id"`
	MemberID   string `json:"member_id"`
	MemberName string `json:"member_name,omitempty"`
	Amount     int    `json:"amount"`
	Method     string `json:"method"`
	Status     string `json:"status"`
	Reference  string `json:"reference,omitempty"`
	PaidAt     string `json:"paid_at,omitempty"`
	Note       string `json:"note,omitempty"`
}

func toPaymentJSON(p projections.PaymentWithMember) paymentJSON {
	out := paymentJSON{
		ID:         p.ID,
		MemberID:   p.MemberID,
		MemberName: p.MemberName,
		Amount:     p.Amount,
		Method:     p.Method,
		Status:     p.Status,
		Reference:  p.Reference,
		Note:       p.Note,
	}
	if !p.PaidAt.IsZero() {
		out.PaidAt = p.PaidAt.Format(time.RFC3339)
	}
	return out
}

func paymentToJSON(p domainPayment.Payment) paymentJSON {
	return toPaymentJSON(projections.PaymentWithMember{
		ID: p.ID, MemberID: p.MemberID, Amount: p.Amount, Method: p.Method,
		Status: p.Status, Reference: p.Reference, PaidAt: p.PaidAt, Note: p.Note,
	})
}

// handlePayments handles GET (list) and POST (record) for /api/payments.
func handlePayments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		params := listutil.ParseListParams(r.URL.Query(), projections.PaymentSortColumns, projections.PaymentFilterKeys)
		res, err := projections.QueryGetPaymentList(r.Context(), projections.GetPaymentListQuery{Params: params}, projections.GetPaymentListDeps{
			PaymentStore: stores.PaymentStore,
			MemberStore:  stores.MemberStore,
		})
		if err != nil {
			internalError(w, err)
			return
		}
		items := make([]paymentJSON, 0, len(res.Payments))
		for _, p := range res.Payments {
			items = append(items, toPaymentJSON(p))
		}
		envelope := struct {
			listEnvelope
			PageAmount int `json:"page_amount"`
		}{newListEnvelope(items, res.PageInfo), res.PageAmount}
		respondJSON(w, http.StatusOK, envelope)

	case http.MethodPost:
		var body struct {
			MemberID    string `json:"member_id"`
			Amount      int    `json:"amount"`
			Method      string `json:"method"`
			Reference   string `json:"reference"`
			Note        string `json:"note"`
			SendReceipt bool   `json:"send_receipt"`
		}
		if err := strictDecode(r, &body); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		p, err := orchestrators.ExecuteRecordPayment(r.Context(), orchestrators.RecordPaymentInput{
			MemberID:    body.MemberID,
			Amount:      body.Amount,
			Method:      body.Method,
			Reference:   body.Reference,
			Note:        body.Note,
			SendReceipt: body.SendReceipt,
		}, currentActor(r), orchestrators.RecordPaymentDeps{
			PaymentStore: stores.PaymentStore,
			MemberStore:  stores.MemberStore,
			EmailSender:  emailSender,
			AuditLog:     stores.AuditStore,
			GenerateID:   generateID,
			Now:          timeNow,
		})
		if err != nil {
			if errors.Is(err, orchestrators.ErrMemberNotFound) {
				respondError(w, http.StatusNotFound, err.Error())
				return
			}
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondJSON(w, http.StatusCreated, paymentToJSON(p))

	default:
		methodNotAllowed(w)
	}
}

// handlePaymentByID handles GET /api/payments/{id} and
// POST /api/payments/{id}/refund (admin only).
func handlePaymentByID(w http.ResponseWriter, r *http.Request) {
	id, action := pathID(r.URL.Path, "/api/payments/")
	if id == "" {
		respondError(w, http.StatusBadRequest, "missing payment id")
		return
	}

	if action == "refund" {
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		if !middleware.IsAdmin(r.Context()) {
			respondError(w, http.StatusForbidden, "insufficient role")
			return
		}
		p, err := orchestrators.ExecuteRefundPayment(r.Context(), id, currentActor(r), orchestrators.RefundPaymentDeps{
			PaymentStore: stores.PaymentStore,
			AuditLog:     stores.AuditStore,
		})
		if err != nil {
			if errors.Is(err, orchestrators.ErrPaymentNotFound) {
				respondError(w, http.StatusNotFound, err.Error())
				return
			}
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, paymentToJSON(p))
		return
	}
	if action != "" {
		respondError(w, http.StatusNotFound, "not found")
		return
	}

	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	p, err := stores.PaymentStore.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusNotFound, "payment not found")
		return
	}
	respondJSON(w, http.StatusOK, paymentToJSON(p))
}
