package models

import "time"

// Range is the valid sensor range of a metric.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// OptimalRange is the sub-band of Range considered ideal for plant growth.
type OptimalRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Tier classifies a value against its optimal band and valid range.
type Tier string

const (
	TierOptimal  Tier = "optimal"
	TierCaution  Tier = "caution"
	TierCritical Tier = "critical"
)

// Gauge carries the render geometry of a reading.
type Gauge struct {
	Percent      float64 `json:"percent"`       // clamped to [0,100]
	Angle        float64 `json:"angle"`         // degrees, percent * 3.6
	OptimalStart float64 `json:"optimal_start"` // percent of range
	OptimalEnd   float64 `json:"optimal_end"`   // percent of range
}

// TrendPoint is one hourly sample of a 24h trend.
type TrendPoint struct {
	Time  string  `json:"time"` // "15:00"
	Value float64 `json:"value"`
}

// MetricReading is the ephemeral value of one metric for one tick.
type MetricReading struct {
	Key     string       `json:"key"`
	Name    string       `json:"name"`
	Value   float64      `json:"value"`
	Unit    string       `json:"unit"`
	Range   Range        `json:"range"`
	Optimal OptimalRange `json:"optimal"`
	Tier    Tier         `json:"tier"`
	Gauge   Gauge        `json:"gauge"`
	Trend   []TrendPoint `json:"trend,omitempty"`
}

// ConnectionState is flipped only by the refresh scheduler.
type ConnectionState struct {
	Connected bool      `json:"connected"`
	ChangedAt time.Time `json:"changed_at"`
}

// MetricSpec describes a tracked metric: its valid range and optimal band.
type MetricSpec struct {
	Key      string       `json:"key"`
	Name     string       `json:"name"`
	Unit     string       `json:"unit"`
	Range    Range        `json:"range"`
	Optimal  OptimalRange `json:"optimal"`
	Alerting bool         `json:"alerting"` // counted in the overview alerts
}
