package web

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"gymdesk/internal/adapters/export"
	"gymdesk/internal/adapters/http/middleware"
	auditStore "gymdesk/internal/adapters/storage/audit"
	memberStore "gymdesk/internal/adapters/storage/member"
	"gymdesk/internal/application/listutil"
	"gymdesk/internal/application/projections"
	"gymdesk/internal/domain/audit"
)

// handleDashboard handles GET /api/dashboard.
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	res, err := projections.QueryGetDashboard(r.Context(), timeNow(), projections.GetDashboardDeps{
		MemberStore:  stores.MemberStore,
		TrainerStore: stores.TrainerStore,
		ClassStore:   stores.ClassStore,
		PaymentStore: stores.PaymentStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	recent := make([]paymentJSON, 0, len(res.RecentPayments))
	for _, p := range res.RecentPayments {
		recent = append(recent, toPaymentJSON(p))
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"active_members":    res.ActiveMembers,
		"active_trainers":   res.ActiveTrainers,
		"scheduled_classes": res.ScheduledClasses,
		"month_revenue":     res.MonthRevenue,
		"recent_payments":   recent,
	})
}

// handleAuditTrail handles GET /api/audit (admin).
// Optional filters: category, actor_id, limit.
func handleAuditTrail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	filter := auditStore.ListFilter{
		Category: r.URL.Query().Get("category"),
		ActorID:  r.URL.Query().Get("actor_id"),
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil && n > 0 && n <= 1000 {
			filter.Limit = n
		}
	}

	events, err := stores.AuditStore.List(r.Context(), filter)
	if err != nil {
		internalError(w, err)
		return
	}
	if events == nil {
		events = []audit.Event{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"items": events})
}

// handlePerfStats handles GET /api/perf (admin), returning request and query
// timing aggregates from the in-memory collector.
func handlePerfStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	if perfCollector == nil {
		respondError(w, http.StatusServiceUnavailable, "perf collection disabled")
		return
	}

	window := time.Hour
	if v := r.URL.Query().Get("window_minutes"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 24*60 {
			window = time.Duration(n) * time.Minute
		}
	}

	snap := perfCollector.Snapshot(timeNow().Add(-window), 10)
	respondJSON(w, http.StatusOK, snap)
}

// handleExportMembers handles GET /api/export/members.xlsx (admin).
// The same q/plan/status filters as the list view apply; pagination does not.
func handleExportMembers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	q := r.URL.Query()
	members, err := stores.MemberStore.List(r.Context(), memberStore.ListFilter{
		Search: q.Get("q"),
		Plan:   q.Get("plan"),
		Status: q.Get("status"),
	})
	if err != nil {
		internalError(w, err)
		return
	}

	data, err := export.MembersXLSX(members)
	if err != nil {
		internalError(w, err)
		return
	}

	recordExport(r, "members")
	serveXLSX(w, "members", data)
}

// handleExportPayments handles GET /api/export/payments.xlsx (admin).
func handleExportPayments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	// Reuse the list projection so exported rows carry member names and
	// honor the same filters as the on-screen list.
	params := listutil.ParseListParams(r.URL.Query(), projections.PaymentSortColumns, projections.PaymentFilterKeys)
	params.PerPage = exportPerPage
	params.Page = 1
	res, err := projections.QueryGetPaymentList(r.Context(), projections.GetPaymentListQuery{Params: params}, projections.GetPaymentListDeps{
		PaymentStore: stores.PaymentStore,
		MemberStore:  stores.MemberStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	data, err := export.PaymentsXLSX(res.Payments)
	if err != nil {
		internalError(w, err)
		return
	}

	recordExport(r, "payments")
	serveXLSX(w, "payments", data)
}

// exportPerPage sizes the single in-memory page an export renders. The
// projection fetches every matching row; this only bounds the spreadsheet.
const exportPerPage = 100000

func serveXLSX(w http.ResponseWriter, name string, data []byte) {
	filename := fmt.Sprintf("%s-%s.xlsx", name, timeNow().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}

func recordExport(r *http.Request, resource string) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	event := audit.NewEvent(sess.AccountID, sess.Email, audit.CategorySystem, audit.ActionExport).
		WithResource(resource, "").
		WithIPAddress(r.RemoteAddr)
	_ = stores.AuditStore.Append(r.Context(), event)
}
