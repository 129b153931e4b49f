package generator

import (
	"math/rand"
	"time"

	"greenhouse_monitor/internal/classify"
	"greenhouse_monitor/internal/models"
)

// Readings draws one classified reading per catalog metric for the greenhouse
// at index, each with a fresh trend of trendPoints samples.
func (c Catalog) Readings(rng *rand.Rand, index, trendPoints int, now time.Time) []models.MetricReading {
	out := make([]models.MetricReading, 0, len(c))
	for _, p := range c {
		r := classify.Reading(p.Spec, p.Value(rng, index))
		r.Trend = p.Series(rng, trendPoints, now)
		out = append(out, r)
	}
	return out
}

// Baseline is the reading set shown before the first generation: every value 0.
func (c Catalog) Baseline() []models.MetricReading {
	out := make([]models.MetricReading, 0, len(c))
	for _, p := range c {
		out = append(out, classify.Reading(p.Spec, 0))
	}
	return out
}
