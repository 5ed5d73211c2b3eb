package calendar_view

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/klokku/planner/internal/rest"
	"github.com/klokku/planner/pkg/action"
	"github.com/klokku/planner/pkg/calendar"
	"github.com/klokku/planner/pkg/editor"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	view *View
}

func NewHandler(view *View) *Handler {
	return &Handler{view: view}
}

// ActionDTO is what the widget forwards from its action-begin notification.
// Form carries the submitted editor values when the action came from the editor.
type ActionDTO struct {
	RequestType action.Kind    `json:"requestType"`
	Data        calendar.Event `json:"data"`
	Form        *editor.Form   `json:"form,omitempty"`
}

type PopupDTO struct {
	InstanceId string           `json:"instanceId"`
	Type       editor.PopupType `json:"type"`
	Data       *calendar.Event  `json:"data,omitempty"`
}

func (h *Handler) GetDataSource(w http.ResponseWriter, r *http.Request) {
	ds, err := h.view.DataSource(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ds)
}

func (h *Handler) ActionBegin(w http.ResponseWriter, r *http.Request) {
	var dto ActionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid action", err.Error())
		return
	}

	req := &action.Request{RequestType: dto.RequestType, Data: dto.Data}
	if err := h.view.ActionBegin(r.Context(), req, dto.Form); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	log.Debugf("Action %s finished as %s", req.RequestType, req.Outcome)
	// a rejection is a normal answer for the widget: it shows the alert and keeps the popup open
	rest.WriteJSON(w, http.StatusOK, req)
}

func (h *Handler) PopupOpen(w http.ResponseWriter, r *http.Request) {
	var dto PopupDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid popup", err.Error())
		return
	}
	if dto.InstanceId == "" {
		rest.WriteError(w, http.StatusBadRequest, "Invalid popup", "'instanceId' is required")
		return
	}

	popup := &editor.Popup{InstanceId: dto.InstanceId, Type: dto.Type, Event: dto.Data}
	if err := h.view.PopupOpen(r.Context(), popup); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, popup)
}

func (h *Handler) PopupClose(w http.ResponseWriter, r *http.Request) {
	if err := h.view.PopupClose(r.Context(), mux.Vars(r)["instanceId"]); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
