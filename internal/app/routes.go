package app

import (
	"github.com/gorilla/mux"
	"github.com/klokku/planner/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Calendar view
	r.HandleFunc("/api/calendar/datasource", deps.ViewHandler.GetDataSource).Methods("GET")
	r.HandleFunc("/api/calendar/action", deps.ViewHandler.ActionBegin).Methods("POST")
	r.HandleFunc("/api/calendar/popup", deps.ViewHandler.PopupOpen).Methods("POST")
	r.HandleFunc("/api/calendar/popup/{instanceId}", deps.ViewHandler.PopupClose).Methods("DELETE")

	// Calendar feed
	r.HandleFunc("/api/calendar/export.ics", deps.CalendarHandler.ExportICS).Methods("GET")
	r.HandleFunc("/api/calendar/import", deps.CalendarHandler.ImportICS).Methods("POST")

	// Event types
	r.HandleFunc("/api/eventtype", deps.EventTypeHandler.List).Methods("GET")
	r.HandleFunc("/api/eventtype", deps.EventTypeHandler.Create).Methods("POST")
	r.HandleFunc("/api/eventtype/{id}", deps.EventTypeHandler.Update).Methods("PUT")
	r.HandleFunc("/api/eventtype/{id}", deps.EventTypeHandler.Delete).Methods("DELETE")
}
