package calendar

import (
	"net/http"

	"github.com/klokku/planner/internal/rest"
	"github.com/klokku/planner/internal/utils"
	log "github.com/sirupsen/logrus"
)

const defaultImportEventTypeId = "other"

type Handler struct {
	store *Store
	clock utils.Clock
}

func NewHandler(store *Store, clock utils.Clock) *Handler {
	return &Handler{store: store, clock: clock}
}

func (h *Handler) ExportICS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=planner.ics")
	if err := WriteICS(w, h.store.All(), h.clock.Now()); err != nil {
		log.Errorf("failed to export calendar: %v", err)
	}
}

type importResponse struct {
	Imported []Event `json:"imported"`
}

func (h *Handler) ImportICS(w http.ResponseWriter, r *http.Request) {
	eventTypeId := r.URL.Query().Get("eventTypeId")
	if eventTypeId == "" {
		eventTypeId = defaultImportEventTypeId
	}

	events, err := ParseICS(r.Body)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid calendar", err.Error())
		return
	}

	created, err := h.store.Import(r.Context(), events, eventTypeId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	log.Infof("Imported %d events", len(created))
	rest.WriteJSON(w, http.StatusCreated, importResponse{Imported: created})
}
