package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"greenhouse_monitor/internal/models"
	"greenhouse_monitor/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK = "ok"

	errGetDashboard    = "failed to load dashboard"
	errGetGreenhouse   = "failed to load greenhouse"
	errUpdateActuator  = "failed to update actuator"
	errInvalidID       = "invalid greenhouse id"
	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// serviceError maps domain errors onto status codes; anything else is a 500.
func (h *Handler) serviceError(c *gin.Context, fallbackMsg, logKey string, err error, kv ...interface{}) {
	switch {
	case errors.Is(err, service.ErrGreenhouseNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrUnknownActuator):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, fallbackMsg, logKey, err, kv...)
	}
}

// Request DTO for setting an actuator.
type actuatorRequest struct {
	IsOn *bool `json:"is_on" binding:"required"`
}

// SetActuatorRequest is an exported model for Swagger docs of the setActuator payload.
type SetActuatorRequest struct {
	// Desired actuator state
	IsOn bool `json:"is_on" example:"true"`
}

// ActuatorResponse is returned by the actuator endpoints.
type ActuatorResponse struct {
	GreenhouseID int              `json:"greenhouse_id"`
	Actuator     string           `json:"actuator"`
	IsOn         bool             `json:"is_on"`
	Actuators    models.Actuators `json:"actuators"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Dashboard snapshot
// @Description  Every greenhouse with classified readings, gauges, trends, actuators and health, plus the overview row.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  models.Snapshot
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/dashboard [get]
func (h *Handler) getDashboard(c *gin.Context) {
	snap, err := h.services.GetSnapshot(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetDashboard, "dashboard_get_failed", err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// @Summary      Connection state
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  models.ConnectionState
// @Router       /api/v1/connection [get]
func (h *Handler) getConnection(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.GetConnection(c.Request.Context()))
}

// @Summary      Get greenhouse
// @Tags         greenhouses
// @Produce      json
// @Param        id   path      int  true  "Greenhouse id"
// @Success      200  {object}  models.Greenhouse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/greenhouses/{id} [get]
func (h *Handler) getGreenhouse(c *gin.Context) {
	id, ok := h.greenhouseID(c)
	if !ok {
		return
	}
	g, err := h.services.GetGreenhouse(c.Request.Context(), id)
	if err != nil {
		h.serviceError(c, errGetGreenhouse, "greenhouse_get_failed", err, "greenhouse", id)
		return
	}
	c.JSON(http.StatusOK, g)
}

// @Summary      Toggle actuator
// @Description  Flips one actuator (irrigation_pump, uv_lamp, ventilation_fan) of one greenhouse.
// @Tags         actuators
// @Produce      json
// @Param        id        path      int     true  "Greenhouse id"
// @Param        actuator  path      string  true  "Actuator kind"
// @Success      200  {object}  ActuatorResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/greenhouses/{id}/actuators/{actuator}/toggle [post]
func (h *Handler) toggleActuator(c *gin.Context) {
	id, ok := h.greenhouseID(c)
	if !ok {
		return
	}
	kind, err := models.ParseActuatorKind(c.Param("actuator"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a, err := h.services.Toggle(c.Request.Context(), id, kind)
	if err != nil {
		h.serviceError(c, errUpdateActuator, "actuator_toggle_failed", err, "greenhouse", id, "actuator", kind)
		return
	}
	respondActuator(c, id, kind, a)
}

// @Summary      Set actuator
// @Tags         actuators
// @Accept       json
// @Produce      json
// @Param        id        path   int                 true  "Greenhouse id"
// @Param        actuator  path   string              true  "Actuator kind"
// @Param        body      body   SetActuatorRequest  true  "Actuator payload"
// @Success      200  {object}  ActuatorResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/greenhouses/{id}/actuators/{actuator} [put]
func (h *Handler) setActuator(c *gin.Context) {
	id, ok := h.greenhouseID(c)
	if !ok {
		return
	}
	kind, err := models.ParseActuatorKind(c.Param("actuator"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var req actuatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	a, err := h.services.Set(c.Request.Context(), id, kind, *req.IsOn)
	if err != nil {
		h.serviceError(c, errUpdateActuator, "actuator_set_failed", err, "greenhouse", id, "actuator", kind)
		return
	}
	respondActuator(c, id, kind, a)
}

func (h *Handler) greenhouseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return 0, false
	}
	return id, true
}

func respondActuator(c *gin.Context, id int, kind models.ActuatorKind, a models.Actuators) {
	isOn, _ := a.Get(kind)
	c.JSON(http.StatusOK, ActuatorResponse{
		GreenhouseID: id,
		Actuator:     string(kind),
		IsOn:         isOn,
		Actuators:    a,
	})
}
