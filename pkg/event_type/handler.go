package event_type

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/klokku/planner/internal/rest"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	registry *Registry
}

func NewHandler(registry *Registry) *Handler {
	return &Handler{registry: registry}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, h.registry.All())
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var t EventType
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid event type", err.Error())
		return
	}

	created, err := h.registry.Add(r.Context(), t)
	if err != nil {
		writeRegistryError(w, err)
		return
	}
	log.Debugf("Event type created: %s", created.Id)
	rest.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var t EventType
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid event type", err.Error())
		return
	}
	t.Id = mux.Vars(r)["id"]

	updated, err := h.registry.Replace(r.Context(), t)
	if err != nil {
		writeRegistryError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.registry.Remove(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeRegistryError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeRegistryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidEventType):
		rest.WriteError(w, http.StatusBadRequest, "Invalid event type", err.Error())
	case errors.Is(err, ErrDuplicateId):
		rest.WriteError(w, http.StatusConflict, "Event type already exists", err.Error())
	case errors.Is(err, ErrEventTypeNotFound):
		rest.WriteError(w, http.StatusNotFound, "Event type not found", err.Error())
	case errors.Is(err, ErrFallbackRequired):
		rest.WriteError(w, http.StatusConflict, "Event type is required", err.Error())
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
