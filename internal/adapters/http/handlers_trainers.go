package web

import (
	"errors"
	"net/http"
	"time"

	"gymdesk/internal/adapters/http/middleware"
	"gymdesk/internal/application/listutil"
	"gymdesk/internal/application/orchestrators"
	"gymdesk/internal/application/projections"
	domainTrainer "gymdesk/internal/domain/trainer"
)

// trainerJSON is the wire shape of a trainer record.
type trainerJSON struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Specialty string `json:"specialty"`
	HiredAt   string `json:"hired_at"`
	Status    string `json:"status"`
}

func toTrainerJSON(tr domainTrainer.Trainer) trainerJSON {
	return trainerJSON{
		ID:        tr.ID,
		Name:      tr.Name,
		Email:     tr.Email,
		Phone:     tr.Phone,
		Specialty: tr.Specialty,
		HiredAt:   tr.HiredAt.Format(time.RFC3339),
		Status:    tr.Status,
	}
}

// trainerBody is the accepted create/update payload.
type trainerBody struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Specialty string `json:"specialty"`
	Status    string `json:"status"`
}

// handleTrainers handles GET (list) and POST (create) for /api/trainers.
func handleTrainers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		params := listutil.ParseListParams(r.URL.Query(), projections.TrainerSortColumns, projections.TrainerFilterKeys)
		res, err := projections.QueryGetTrainerList(r.Context(), projections.GetTrainerListQuery{Params: params}, projections.GetTrainerListDeps{
			TrainerStore: stores.TrainerStore,
		})
		if err != nil {
			internalError(w, err)
			return
		}
		items := make([]trainerJSON, 0, len(res.Trainers))
		for _, tr := range res.Trainers {
			items = append(items, toTrainerJSON(tr))
		}
		respondJSON(w, http.StatusOK, newListEnvelope(items, res.PageInfo))

	case http.MethodPost:
		var body trainerBody
		if err := strictDecode(r, &body); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		tr, err := orchestrators.ExecuteCreateTrainer(r.Context(), orchestrators.CreateTrainerInput{
			Name:      body.Name,
			Email:     body.Email,
			Phone:     body.Phone,
			Specialty: body.Specialty,
		}, currentActor(r), orchestrators.CreateTrainerDeps{
			TrainerStore: stores.TrainerStore,
			AuditLog:     stores.AuditStore,
			GenerateID:   generateID,
			Now:          timeNow,
		})
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondJSON(w, http.StatusCreated, toTrainerJSON(tr))

	default:
		methodNotAllowed(w)
	}
}

// handleTrainerByID handles /api/trainers/{id}: GET, PUT, DELETE (deactivate)
// and POST /api/trainers/{id}/reactivate.
func handleTrainerByID(w http.ResponseWriter, r *http.Request) {
	id, action := pathID(r.URL.Path, "/api/trainers/")
	if id == "" {
		respondError(w, http.StatusBadRequest, "missing trainer id")
		return
	}

	if action == "reactivate" {
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		err := orchestrators.ExecuteReactivateTrainer(r.Context(), id, currentActor(r), orchestrators.TrainerStatusDeps{
			TrainerStore: stores.TrainerStore,
			AuditLog:     stores.AuditStore,
		})
		if err != nil {
			respondTrainerError(w, err)
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
		tr, err := stores.TrainerStore.GetByID(r.Context(), id)
		if err != nil {
			respondError(w, http.StatusNotFound, "trainer not found")
			return
		}
		respondJSON(w, http.StatusOK, toTrainerJSON(tr))

	case http.MethodPut:
		var body trainerBody
		if err := strictDecode(r, &body); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		tr, err := orchestrators.ExecuteUpdateTrainer(r.Context(), orchestrators.UpdateTrainerInput{
			ID:        id,
			Name:      body.Name,
			Email:     body.Email,
			Phone:     body.Phone,
			Specialty: body.Specialty,
			Status:    body.Status,
		}, currentActor(r), orchestrators.UpdateTrainerDeps{
			TrainerStore: stores.TrainerStore,
			AuditLog:     stores.AuditStore,
		})
		if err != nil {
			respondTrainerError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, toTrainerJSON(tr))

	case http.MethodDelete:
		if !middleware.IsAdmin(r.Context()) {
			respondError(w, http.StatusForbidden, "insufficient role")
			return
		}
		err := orchestrators.ExecuteDeactivateTrainer(r.Context(), id, currentActor(r), orchestrators.TrainerStatusDeps{
			TrainerStore: stores.TrainerStore,
			AuditLog:     stores.AuditStore,
		})
		if err != nil {
			respondTrainerError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]bool{"ok": true})

	default:
		methodNotAllowed(w)
	}
}

// respondTrainerError maps trainer command errors onto HTTP statuses.
func respondTrainerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, orchestrators.ErrTrainerNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		respondError(w, http.StatusBadRequest, err.Error())
	}
}
