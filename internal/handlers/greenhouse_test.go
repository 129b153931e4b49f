package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"greenhouse_monitor/internal/models"
	"greenhouse_monitor/internal/service"
)

func TestHealth(t *testing.T) {
	r := newTestRouter(&service.Service{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("health status=%d", w.Code)
	}
	var resp map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["status"] != statusOK {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestDashboardHandlers_GetDashboardAndConnection(t *testing.T) {
	dash := &mockDashboard{
		snapshot: models.Snapshot{
			ID:        "snap-1",
			Connected: true,
			Greenhouses: []models.Greenhouse{
				{ID: 1, PlantType: "Tomato", Health: models.HealthGood},
			},
			Overview: models.Overview{TotalSensors: 4, ActiveActuators: 2, Alerts: 1},
		},
		conn: models.ConnectionState{Connected: false},
	}
	r := newTestRouter(&service.Service{Dashboard: dash})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("dashboard status=%d, body=%s", w.Code, w.Body.String())
	}
	var snap models.Snapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	if snap.ID != "snap-1" || len(snap.Greenhouses) != 1 || snap.Overview.Alerts != 1 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/connection", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("connection status=%d", w.Code)
	}
	var conn models.ConnectionState
	_ = json.Unmarshal(w.Body.Bytes(), &conn)
	if conn.Connected {
		t.Fatalf("expected disconnected, got %+v", conn)
	}
}

func TestDashboardHandlers_GetDashboardError(t *testing.T) {
	r := newTestRouter(&service.Service{Dashboard: &mockDashboard{snapErr: errors.New("redis down")}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var resp map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["error"] != errGetDashboard {
		t.Fatalf("unexpected error body %s", w.Body.String())
	}
}

func TestGreenhouseHandler_StatusMapping(t *testing.T) {
	cases := []struct {
		name     string
		path     string
		ghErr    error
		wantCode int
	}{
		{"ok", "/api/v1/greenhouses/2", nil, http.StatusOK},
		{"not a number", "/api/v1/greenhouses/abc", nil, http.StatusBadRequest},
		{"zero id", "/api/v1/greenhouses/0", nil, http.StatusBadRequest},
		{"not found", "/api/v1/greenhouses/9", service.ErrGreenhouseNotFound, http.StatusNotFound},
		{"store failure", "/api/v1/greenhouses/2", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dash := &mockDashboard{greenhouse: models.Greenhouse{ID: 2, PlantType: "Lettuce"}, ghErr: tc.ghErr}
			r := newTestRouter(&service.Service{Dashboard: dash})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
			if w.Code != tc.wantCode {
				t.Fatalf("status=%d, want %d, body=%s", w.Code, tc.wantCode, w.Body.String())
			}
			if tc.wantCode == http.StatusOK {
				var g models.Greenhouse
				_ = json.Unmarshal(w.Body.Bytes(), &g)
				if g.PlantType != "Lettuce" || dash.lastGreenhouseID != 2 {
					t.Fatalf("unexpected greenhouse %+v (id %d)", g, dash.lastGreenhouseID)
				}
			}
		})
	}
}

func TestActuatorHandlers_Toggle(t *testing.T) {
	act := &mockActuators{resp: models.Actuators{IrrigationPump: true, VentilationFan: true}}
	r := newTestRouter(&service.Service{Actuators: act})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/greenhouses/3/actuators/irrigationPump/toggle", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("toggle status=%d, body=%s", w.Code, w.Body.String())
	}
	if act.toggleCalls != 1 || act.lastID != 3 || act.lastKind != models.IrrigationPump {
		t.Fatalf("wrong Toggle call: calls=%d id=%d kind=%s", act.toggleCalls, act.lastID, act.lastKind)
	}
	var resp ActuatorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Actuator != string(models.IrrigationPump) || !resp.IsOn || !resp.Actuators.VentilationFan {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestActuatorHandlers_Set(t *testing.T) {
	act := &mockActuators{resp: models.Actuators{UVLamp: false}}
	r := newTestRouter(&service.Service{Actuators: act})

	body := bytes.NewBufferString(`{"is_on":false}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/greenhouses/1/actuators/uv_lamp", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("set status=%d, body=%s", w.Code, w.Body.String())
	}
	if act.setCalls != 1 || act.lastKind != models.UVLamp || act.lastOn {
		t.Fatalf("wrong Set call: %+v", act)
	}
}

func TestActuatorHandlers_Errors(t *testing.T) {
	cases := []struct {
		name     string
		method   string
		path     string
		body     string
		svcErr   error
		wantCode int
	}{
		{"unknown actuator", http.MethodPost, "/api/v1/greenhouses/1/actuators/heater/toggle", "", nil, http.StatusBadRequest},
		{"bad id", http.MethodPost, "/api/v1/greenhouses/x/actuators/fan/toggle", "", nil, http.StatusBadRequest},
		{"unknown greenhouse", http.MethodPost, "/api/v1/greenhouses/8/actuators/fan/toggle", "", service.ErrGreenhouseNotFound, http.StatusNotFound},
		{"store failure", http.MethodPost, "/api/v1/greenhouses/1/actuators/fan/toggle", "", errors.New("db down"), http.StatusInternalServerError},
		{"missing is_on", http.MethodPut, "/api/v1/greenhouses/1/actuators/fan", `{}`, nil, http.StatusBadRequest},
		{"malformed body", http.MethodPut, "/api/v1/greenhouses/1/actuators/fan", `{"is_on":`, nil, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			act := &mockActuators{err: tc.svcErr}
			r := newTestRouter(&service.Service{Actuators: act})

			req := httptest.NewRequest(tc.method, tc.path, bytes.NewBufferString(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.wantCode {
				t.Fatalf("status=%d, want %d, body=%s", w.Code, tc.wantCode, w.Body.String())
			}
			var resp map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp["error"] == "" {
				t.Fatalf("expected error body, got %s", w.Body.String())
			}
		})
	}
}
