package handlers

import (
	"greenhouse_monitor/internal/hub"
	"greenhouse_monitor/internal/logger"
	"greenhouse_monitor/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Subscriber hands out event subscriptions for the WebSocket stream.
type Subscriber interface {
	Subscribe() *hub.Subscription
	Subscribers() int
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	stream   Subscriber
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, stream Subscriber, log *logger.Logger) *Handler {
	return &Handler{services: services, stream: stream, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.metricsMiddleware)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health endpoint
	router.GET("/health", h.health)

	// Versioned API endpoints
	h.registerAPIRoutes(router)

	// Dashboard push stream (HTTP upgrade) on the same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		api.GET("/dashboard", h.getDashboard)
		api.GET("/connection", h.getConnection)
		h.registerGreenhouseRoutes(api)
	}
}

func (h *Handler) registerGreenhouseRoutes(api *gin.RouterGroup) {
	greenhouses := api.Group("/greenhouses/:id")
	{
		greenhouses.GET("", h.getGreenhouse)
		greenhouses.POST("/actuators/:actuator/toggle", h.toggleActuator)
		// Body example: {"is_on":true}
		greenhouses.PUT("/actuators/:actuator", h.setActuator)
	}
}
