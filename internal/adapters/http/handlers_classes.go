package web

import (
	"errors"
	"net/http"

	"gymdesk/internal/adapters/http/middleware"
	"gymdesk/internal/application/listutil"
	"gymdesk/internal/application/orchestrators"
	"gymdesk/internal/application/projections"
	domainClass "gymdesk/internal/domain/gymclass"
)

// classJSON is the wire shape of a class row, trainer name included.
type classJSON struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	TrainerID   string `json:"trainer_id"`
	TrainerName string `json:"trainer_name,omitempty"`
	Category    string `json:"category"`
	Day         string `json:"day"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Capacity    int    `json:"capacity"`
	Status      string `json:"status"`
}

func toClassJSON(c projections.ClassWithTrainer) classJSON {
	return classJSON{
		ID:          c.ID,
		Name:        c.Name,
		TrainerID:   c.TrainerID,
		TrainerName: c.TrainerName,
		Category:    c.Category,
		Day:         c.Day,
		StartTime:   c.StartTime,
		EndTime:     c.EndTime,
		Capacity:    c.Capacity,
		Status:      c.Status,
	}
}

func classToJSON(c domainClass.Class) classJSON {
	return classJSON{
		ID:        c.ID,
		Name:      c.Name,
		TrainerID: c.TrainerID,
		Category:  c.Category,
		Day:       c.Day,
		StartTime: c.StartTime,
		EndTime:   c.EndTime,
		Capacity:  c.Capacity,
		Status:    c.Status,
	}
}

// classBody is the accepted create/update payload.
type classBody struct {
	Name      string `json:"name"`
	TrainerID string `json:"trainer_id"`
	Category  string `json:"category"`
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Capacity  int    `json:"capacity"`
}

// handleClasses handles GET (list) and POST (schedule) for /api/classes.
func handleClasses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		params := listutil.ParseListParams(r.URL.Query(), projections.ClassSortColumns, projections.ClassFilterKeys)
		res, err := projections.QueryGetClassList(r.Context(), projections.GetClassListQuery{Params: params}, projections.GetClassListDeps{
			ClassStore:   stores.ClassStore,
			TrainerStore: stores.TrainerStore,
		})
		if err != nil {
			internalError(w, err)
			return
		}
		items := make([]classJSON, 0, len(res.Classes))
		for _, c := range res.Classes {
			items = append(items, toClassJSON(c))
		}
		respondJSON(w, http.StatusOK, newListEnvelope(items, res.PageInfo))

	case http.MethodPost:
		var body classBody
		if err := strictDecode(r, &body); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		c, err := orchestrators.ExecuteScheduleClass(r.Context(), orchestrators.ScheduleClassInput{
			Name:      body.Name,
			TrainerID: body.TrainerID,
			Category:  body.Category,
			Day:       body.Day,
			StartTime: body.StartTime,
			EndTime:   body.EndTime,
			Capacity:  body.Capacity,
		}, currentActor(r), orchestrators.ScheduleClassDeps{
			ClassStore:    stores.ClassStore,
			TrainerLookup: stores.TrainerStore,
			AuditLog:      stores.AuditStore,
			GenerateID:    generateID,
		})
		if err != nil {
			respondClassError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, classToJSON(c))

	default:
		methodNotAllowed(w)
	}
}

// handleClassByID handles /api/classes/{id}: GET, PUT, DELETE (cancel) and
// POST /api/classes/{id}/restore.
func handleClassByID(w http.ResponseWriter, r *http.Request) {
	id, action := pathID(r.URL.Path, "/api/classes/")
	if id == "" {
		respondError(w, http.StatusBadRequest, "missing class id")
		return
	}

	if action == "restore" {
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		err := orchestrators.ExecuteRestoreClass(r.Context(), id, currentActor(r), orchestrators.ClassStatusDeps{
			ClassStore: stores.ClassStore,
			AuditLog:   stores.AuditStore,
		})
		if err != nil {
			respondClassError(w, err)
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
		c, err := stores.ClassStore.GetByID(r.Context(), id)
		if err != nil {
			respondError(w, http.StatusNotFound, "class not found")
			return
		}
		respondJSON(w, http.StatusOK, classToJSON(c))

	case http.MethodPut:
		var body classBody
		if err := strictDecode(r, &body); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		c, err := orchestrators.ExecuteUpdateClass(r.Context(), orchestrators.UpdateClassInput{
			ID:        id,
			Name:      body.Name,
			TrainerID: body.TrainerID,
			Category:  body.Category,
			Day:       body.Day,
			StartTime: body.StartTime,
			EndTime:   body.EndTime,
			Capacity:  body.Capacity,
		}, currentActor(r), orchestrators.UpdateClassDeps{
			ClassStore:    stores.ClassStore,
			TrainerLookup: stores.TrainerStore,
			AuditLog:      stores.AuditStore,
		})
		if err != nil {
			respondClassError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, classToJSON(c))

	case http.MethodDelete:
		if !middleware.IsAdmin(r.Context()) {
			respondError(w, http.StatusForbidden, "insufficient role")
			return
		}
		err := orchestrators.ExecuteCancelClass(r.Context(), id, currentActor(r), orchestrators.ClassStatusDeps{
			ClassStore: stores.ClassStore,
			AuditLog:   stores.AuditStore,
		})
		if err != nil {
			respondClassError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]bool{"ok": true})

	default:
		methodNotAllowed(w)
	}
}

// respondClassError maps class command errors onto HTTP statuses.
func respondClassError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, orchestrators.ErrClassNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		respondError(w, http.StatusBadRequest, err.Error())
	}
}
