package calendar_view

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/klokku/planner/pkg/action"
	"github.com/klokku/planner/pkg/editor"
	"github.com/klokku/planner/pkg/event_type"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlerTest(t *testing.T) (*mux.Router, testView) {
	v := setupViewTest(t)
	handler := NewHandler(v.View)

	r := mux.NewRouter()
	r.HandleFunc("/api/calendar/datasource", handler.GetDataSource).Methods("GET")
	r.HandleFunc("/api/calendar/action", handler.ActionBegin).Methods("POST")
	r.HandleFunc("/api/calendar/popup", handler.PopupOpen).Methods("POST")
	r.HandleFunc("/api/calendar/popup/{instanceId}", handler.PopupClose).Methods("DELETE")
	return r, v
}

func doRequest(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_EditorRoundTrip(t *testing.T) {
	r, v := setupHandlerTest(t)

	w := doRequest(r, http.MethodPost, "/api/calendar/popup", PopupDTO{InstanceId: "p1", Type: editor.EditorPopup})
	require.Equal(t, http.StatusOK, w.Code)
	var popup editor.Popup
	require.NoError(t, json.NewDecoder(w.Body).Decode(&popup))
	field, ok := popup.Form.Field(editor.EventTypeFieldName)
	require.True(t, ok)
	assert.Equal(t, event_type.FallbackId, field.Value)

	field.Value = "travel"
	w = doRequest(r, http.MethodPost, "/api/calendar/action", ActionDTO{
		RequestType: action.EventCreate,
		Data:        standupAt(""),
		Form:        popup.Form,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var req action.Request
	require.NoError(t, json.NewDecoder(w.Body).Decode(&req))
	assert.True(t, req.Cancel)
	assert.Equal(t, action.Applied, req.Outcome)

	w = doRequest(r, http.MethodGet, "/api/calendar/datasource", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var ds DataSource
	require.NoError(t, json.NewDecoder(w.Body).Decode(&ds))
	require.Len(t, ds.Events, 1)
	assert.Equal(t, "travel", ds.Events[0].EventTypeId)
	assert.Equal(t, "#8B5CF6", ds.Events[0].Background)

	w = doRequest(r, http.MethodDelete, "/api/calendar/popup/p1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Len(t, v.store.All(), 1)
}

func TestHandler_RejectedActionCarriesAlert(t *testing.T) {
	r, _ := setupHandlerTest(t)

	w := doRequest(r, http.MethodPost, "/api/calendar/action", ActionDTO{
		RequestType: action.EventCreate,
		Data:        standupAt(""),
	})

	require.Equal(t, http.StatusOK, w.Code)
	var req action.Request
	require.NoError(t, json.NewDecoder(w.Body).Decode(&req))
	assert.Equal(t, action.Rejected, req.Outcome)
	assert.Equal(t, action.MissingEventTypeAlert, req.Alert)
}

func TestHandler_InvalidBodies(t *testing.T) {
	r, _ := setupHandlerTest(t)

	tests := []struct {
		name string
		path string
		body string
	}{
		{"action not json", "/api/calendar/action", "{"},
		{"popup not json", "/api/calendar/popup", "nope"},
		{"popup without instance", "/api/calendar/popup", `{"type":"Editor"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.path, bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
