package classify

import "greenhouse_monitor/internal/models"

// Reading builds a classified MetricReading for spec at value.
func Reading(spec models.MetricSpec, value float64) models.MetricReading {
	return models.MetricReading{
		Key:     spec.Key,
		Name:    spec.Name,
		Value:   value,
		Unit:    spec.Unit,
		Range:   spec.Range,
		Optimal: spec.Optimal,
		Tier:    Classify(value, spec.Range, spec.Optimal),
		Gauge:   Gauge(value, spec.Range, spec.Optimal),
	}
}

// Health grades a greenhouse by how many of its readings are optimal:
// all of them is Excellent, all but one is Good.
func Health(readings []models.MetricReading) models.Health {
	optimal := 0
	for _, r := range readings {
		if r.Tier == models.TierOptimal {
			optimal++
		}
	}
	switch {
	case optimal == len(readings):
		return models.HealthExcellent
	case optimal >= len(readings)-1:
		return models.HealthGood
	default:
		return models.HealthNeedsAttention
	}
}

// NeedsAlert reports whether any alerting reading is outside its optimal band.
func NeedsAlert(readings []models.MetricReading, specs map[string]models.MetricSpec) bool {
	for _, r := range readings {
		spec, ok := specs[r.Key]
		if !ok || !spec.Alerting {
			continue
		}
		if r.Value < spec.Optimal.Min || r.Value > spec.Optimal.Max {
			return true
		}
	}
	return false
}

// Summarize computes the overview row for a set of greenhouses.
func Summarize(greenhouses []models.Greenhouse, specs map[string]models.MetricSpec) models.Overview {
	var ov models.Overview
	for _, g := range greenhouses {
		ov.TotalSensors += len(g.Metrics)
		ov.ActiveActuators += g.Actuators.ActiveCount()
		if NeedsAlert(g.Metrics, specs) {
			ov.Alerts++
		}
	}
	return ov
}
