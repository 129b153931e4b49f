package models

import "time"

// Health summarizes how many metrics of a greenhouse sit in their optimal band.
type Health string

const (
	HealthExcellent      Health = "Excellent"
	HealthGood           Health = "Good"
	HealthNeedsAttention Health = "Needs Attention"
)

// Greenhouse is one micro greenhouse as rendered on the dashboard.
type Greenhouse struct {
	ID        int             `json:"id"`
	PlantType string          `json:"plant_type"`
	Metrics   []MetricReading `json:"metrics"`
	Actuators Actuators       `json:"actuators"`
	Health    Health          `json:"health"`
}

// Overview is the system-wide summary row.
type Overview struct {
	TotalSensors    int `json:"total_sensors"`
	ActiveActuators int `json:"active_actuators"`
	Alerts          int `json:"alerts"`
}

// Snapshot is the full reading set produced by one refresh tick.
type Snapshot struct {
	ID          string       `json:"id"`
	GeneratedAt time.Time    `json:"generated_at"`
	Connected   bool         `json:"connected"`
	Greenhouses []Greenhouse `json:"greenhouses"`
	Overview    Overview     `json:"overview"`
}

// Greenhouse returns the greenhouse with id, if present.
func (s Snapshot) Greenhouse(id int) (Greenhouse, bool) {
	for _, g := range s.Greenhouses {
		if g.ID == id {
			return g, true
		}
	}
	return Greenhouse{}, false
}
