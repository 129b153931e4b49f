package handlers

import (
	"context"

	"greenhouse_monitor/internal/models"
	"greenhouse_monitor/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockDashboard struct {
	snapshot   models.Snapshot
	snapErr    error
	greenhouse models.Greenhouse
	ghErr      error
	conn       models.ConnectionState

	lastGreenhouseID int
}

func (m *mockDashboard) GetSnapshot(ctx context.Context) (models.Snapshot, error) {
	return m.snapshot, m.snapErr
}
func (m *mockDashboard) GetGreenhouse(ctx context.Context, id int) (models.Greenhouse, error) {
	m.lastGreenhouseID = id
	return m.greenhouse, m.ghErr
}
func (m *mockDashboard) GetConnection(ctx context.Context) models.ConnectionState {
	return m.conn
}

type mockActuators struct {
	resp models.Actuators
	err  error

	toggleCalls int
	setCalls    int
	lastID      int
	lastKind    models.ActuatorKind
	lastOn      bool
}

func (m *mockActuators) Toggle(ctx context.Context, id int, kind models.ActuatorKind) (models.Actuators, error) {
	m.toggleCalls++
	m.lastID, m.lastKind = id, kind
	return m.resp, m.err
}
func (m *mockActuators) Set(ctx context.Context, id int, kind models.ActuatorKind, on bool) (models.Actuators, error) {
	m.setCalls++
	m.lastID, m.lastKind, m.lastOn = id, kind, on
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
