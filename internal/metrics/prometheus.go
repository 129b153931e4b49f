package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"greenhouse_monitor/internal/models"
)

var (
	// HTTPRequestsTotal counts API requests.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "greenhouse_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// HTTPRequestDuration is the API latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "greenhouse_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// MetricValue is the latest synthetic reading.
	MetricValue = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "greenhouse_metric_value",
			Help: "Latest generated reading per greenhouse and metric",
		},
		[]string{"greenhouse", "metric"},
	)

	// MetricTier is the latest tier: 0 optimal, 1 caution, 2 critical.
	MetricTier = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "greenhouse_metric_tier",
			Help: "Latest tier per greenhouse and metric (0 optimal, 1 caution, 2 critical)",
		},
		[]string{"greenhouse", "metric"},
	)

	// Alerts mirrors the overview alert count.
	Alerts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "greenhouse_alerts",
			Help: "Greenhouses with an alerting metric outside its optimal band",
		},
	)

	// Connected is 1 while the simulated link is up.
	Connected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "greenhouse_connected",
			Help: "Simulated connectivity flag (1 connected, 0 disconnected)",
		},
	)

	// RefreshTicks counts scheduler ticks.
	RefreshTicks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "greenhouse_refresh_ticks_total",
			Help: "Total number of refresh ticks",
		},
	)

	// Disconnects counts simulated disconnects.
	Disconnects = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "greenhouse_disconnects_total",
			Help: "Total number of simulated disconnects",
		},
	)

	// ActuatorOn is the current actuator flag.
	ActuatorOn = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "greenhouse_actuator_on",
			Help: "Actuator flag per greenhouse (1 on, 0 off)",
		},
		[]string{"greenhouse", "actuator"},
	)

	// ActuatorChanges counts user actions on actuators.
	ActuatorChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "greenhouse_actuator_changes_total",
			Help: "Total number of actuator toggles and sets",
		},
		[]string{"actuator"},
	)

	// StreamSubscribers is the number of open dashboard streams.
	StreamSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "greenhouse_stream_subscribers",
			Help: "Open WebSocket dashboard streams",
		},
	)

	// StreamEventsDropped counts events a full subscriber buffer missed.
	StreamEventsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "greenhouse_stream_events_dropped_total",
			Help: "Events not delivered to a stream subscriber because its buffer was full",
		},
		[]string{"event"},
	)
)

// TierValue maps a tier onto the greenhouse_metric_tier scale.
func TierValue(t models.Tier) float64 {
	switch t {
	case models.TierOptimal:
		return 0
	case models.TierCaution:
		return 1
	default:
		return 2
	}
}

// ObserveSnapshot publishes readings, tiers, actuators and alerts of s.
func ObserveSnapshot(s models.Snapshot) {
	for _, g := range s.Greenhouses {
		id := strconv.Itoa(g.ID)
		for _, r := range g.Metrics {
			MetricValue.WithLabelValues(id, r.Key).Set(r.Value)
			MetricTier.WithLabelValues(id, r.Key).Set(TierValue(r.Tier))
		}
		ObserveActuators(g.ID, g.Actuators)
	}
	Alerts.Set(float64(s.Overview.Alerts))
}

// ObserveActuators publishes the flags of one greenhouse.
func ObserveActuators(greenhouseID int, a models.Actuators) {
	id := strconv.Itoa(greenhouseID)
	for _, st := range a.States() {
		ActuatorOn.WithLabelValues(id, string(st.Kind)).Set(boolValue(st.IsOn))
	}
}

// SetConnected publishes the connectivity flag.
func SetConnected(connected bool) {
	Connected.Set(boolValue(connected))
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
