package web

import (
	"errors"
	"net/http"
	"time"

	"gymdesk/internal/adapters/http/middleware"
	"gymdesk/internal/application/listutil"
	"gymdesk/internal/application/orchestrators"
	"gymdesk/internal/application/projections"
	domainMember "gymdesk/internal/domain/member"
)

// memberJSON is the wire shape of a member record.
type memberJSON struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Plan     string `json:"plan"`
	JoinedAt string `json:"joined_at"`
	Status   string `json:"status"`
}

func toMemberJSON(m domainMember.Member) memberJSON {
	return memberJSON{
		ID:       m.ID,
		Name:     m.Name,
		Email:    m.Email,
		Phone:    m.Phone,
		Plan:     m.Plan,
		JoinedAt: m.JoinedAt.Format(time.RFC3339),
		Status:   m.Status,
	}
}

// memberBody is the accepted create/update payload.
type memberBody struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Plan   string `json:"plan"`
	Status string `json:"status"`
}

func currentActor(r *http.Request) orchestrators.Actor {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	return orchestrators.Actor{AccountID: sess.AccountID, Email: sess.Email}
}

// handleMembers handles GET (list) and POST (create) for /api/members.
func handleMembers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		params := listutil.ParseListParams(r.URL.Query(), projections.MemberSortColumns, projections.MemberFilterKeys)
		res, err := projections.QueryGetMemberList(r.Context(), projections.GetMemberListQuery{Params: params}, projections.GetMemberListDeps{
			MemberStore: stores.MemberStore,
		})
		if err != nil {
			internalError(w, err)
			return
		}
		items := make([]memberJSON, 0, len(res.Members))
		for _, m := range res.Members {
			items = append(items, toMemberJSON(m))
		}
		respondJSON(w, http.StatusOK, newListEnvelope(items, res.PageInfo))

	case http.MethodPost:
		var body memberBody
		if err := strictDecode(r, &body); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		m, err := orchestrators.ExecuteCreateMember(r.Context(), orchestrators.CreateMemberInput{
			Name:  body.Name,
			Email: body.Email,
			Phone: body.Phone,
			Plan:  body.Plan,
		}, currentActor(r), orchestrators.CreateMemberDeps{
			MemberStore: stores.MemberStore,
			AuditLog:    stores.AuditStore,
			GenerateID:  generateID,
			Now:         timeNow,
		})
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondJSON(w, http.StatusCreated, toMemberJSON(m))

	default:
		methodNotAllowed(w)
	}
}

// handleMemberByID handles /api/members/{id}: GET, PUT, DELETE (archive) and
// POST /api/members/{id}/restore.
func handleMemberByID(w http.ResponseWriter, r *http.Request) {
	id, action := pathID(r.URL.Path, "/api/members/")
	if id == "" {
		respondError(w, http.StatusBadRequest, "missing member id")
		return
	}

	if action == "restore" {
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		err := orchestrators.ExecuteRestoreMember(r.Context(), id, currentActor(r), orchestrators.ArchiveMemberDeps{
			MemberStore: stores.MemberStore,
			AuditLog:    stores.AuditStore,
		})
		if err != nil {
			respondMemberError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
		return
	}
	if action != "" {
		respondError(w, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		m, err := stores.MemberStore.GetByID(r.Context(), id)
		if err != nil {
			respondError(w, http.StatusNotFound, "member not found")
			return
		}
		respondJSON(w, http.StatusOK, toMemberJSON(m))

	case http.MethodPut:
		var body memberBody
		if err := strictDecode(r, &body); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		m, err := orchestrators.ExecuteUpdateMember(r.Context(), orchestrators.UpdateMemberInput{
			ID:     id,
			Name:   body.Name,
			Email:  body.Email,
			Phone:  body.Phone,
			Plan:   body.Plan,
			Status: body.Status,
		}, currentActor(r), orchestrators.UpdateMemberDeps{
			MemberStore: stores.MemberStore,
			AuditLog:    stores.AuditStore,
		})
		if err != nil {
			respondMemberError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, toMemberJSON(m))

	case http.MethodDelete:
		if !middleware.IsAdmin(r.Context()) {
			respondError(w, http.StatusForbidden, "insufficient role")
			return
		}
		err := orchestrators.ExecuteArchiveMember(r.Context(), id, currentActor(r), orchestrators.ArchiveMemberDeps{
			MemberStore: stores.MemberStore,
			AuditLog:    stores.AuditStore,
		})
		if err != nil {
			respondMemberError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]bool{"ok": true})

	default:
		methodNotAllowed(w)
	}
}

// respondMemberError maps member command errors onto HTTP statuses.
func respondMemberError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, orchestrators.ErrMemberNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		respondError(w, http.StatusBadRequest, err.Error())
	}
}
