package web

import (
	"bytes"
	"net/http"
	"time"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"gymdesk/internal/adapters/http/middleware"
	"gymdesk/internal/application/orchestrators"
	domainNotice "gymdesk/internal/domain/notice"
)

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// renderMarkdown converts notice markdown into HTML for the dashboard.
func renderMarkdown(md string) string {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return ""
	}
	return buf.String()
}

// noticeJSON is the wire shape of a notice, rendered HTML included.
type noticeJSON struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	HTML      string `json:"html"`
	Pinned    bool   `json:"pinned"`
	CreatedBy string `json:"created_by"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toNoticeJSON(n domainNotice.Notice) noticeJSON {
	return noticeJSON{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		HTML:      renderMarkdown(n.Content),
		Pinned:    n.Pinned,
		CreatedBy: n.CreatedBy,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
		UpdatedAt: n.UpdatedAt.Format(time.RFC3339),
	}
}

// noticeBody is the accepted create/update payload.
type noticeBody struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Pinned  bool   `json:"pinned"`
}

// handleNotices handles GET (list) and POST (create) for /api/notices.
// The list is small and unpaginated; pinned notices come first.
func handleNotices(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		notices, err := stores.NoticeStore.List(r.Context())
		if err != nil {
			internalError(w, err)
			return
		}
		items := make([]noticeJSON, 0, len(notices))
		for _, n := range notices {
			items = append(items, toNoticeJSON(n))
		}
		respondJSON(w, http.StatusOK, map[string]any{"items": items})

	case http.MethodPost:
		var body noticeBody
		if err := strictDecode(r, &body); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		n, err := orchestrators.ExecuteCreateNotice(r.Context(), orchestrators.CreateNoticeInput{
			Title:   body.Title,
			Content: body.Content,
			Pinned:  body.Pinned,
		}, currentActor(r), orchestrators.CreateNoticeDeps{
			NoticeStore: stores.NoticeStore,
			GenerateID:  generateID,
			Now:         timeNow,
		})
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondJSON(w, http.StatusCreated, toNoticeJSON(n))

	default:
		methodNotAllowed(w)
	}
}

// handleNoticeByID handles PUT and DELETE for /api/notices/{id}.
func handleNoticeByID(w http.ResponseWriter, r *http.Request) {
	id, action := pathID(r.URL.Path, "/api/notices/")
	if id == "" || action != "" {
		respondError(w, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodPut:
		var body noticeBody
		if err := strictDecode(r, &body); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		n, err := orchestrators.ExecuteUpdateNotice(r.Context(), orchestrators.UpdateNoticeInput{
			ID:      id,
			Title:   body.Title,
			Content: body.Content,
			Pinned:  body.Pinned,
		}, orchestrators.UpdateNoticeDeps{
			NoticeStore: stores.NoticeStore,
			Now:         timeNow,
		})
		if err != nil {
			respondNoticeError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, toNoticeJSON(n))

	case http.MethodDelete:
		if !middleware.IsAdmin(r.Context()) {
			respondError(w, http.StatusForbidden, "insufficient role")
			return
		}
		if err := orchestrators.ExecuteDeleteNotice(r.Context(), id, orchestrators.DeleteNoticeDeps{
			NoticeStore: stores.NoticeStore,
		}); err != nil {
			respondNoticeError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]bool{"ok": true})

	default:
		methodNotAllowed(w)
	}
}

// respondNoticeError maps notice command errors onto HTTP statuses.
func respondNoticeError(w http.ResponseWriter, err error) {
	if err == orchestrators.ErrNoticeNotFound {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondError(w, http.StatusBadRequest, err.Error())
}
