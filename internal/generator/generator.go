// Package generator produces synthetic greenhouse readings: bounded
// oscillation plus noise, and hourly trend series regenerated wholesale.
package generator

import (
	"math"
	"math/rand"
	"time"

	"greenhouse_monitor/internal/models"
)

// DefaultTrendPoints is the length of a trend series (one sample per hour).
const DefaultTrendPoints = 24

const trendTimeLayout = "15:04"

// Profile binds a metric spec to its generation formula:
// baseline + rand[0,noise) + amplitude*sin(index*frequency), floored when Floor is set.
type Profile struct {
	Spec      models.MetricSpec
	Baseline  float64
	Noise     float64
	Amplitude float64
	Frequency float64
	Floor     *float64
}

// NewRand returns a random source. A zero seed picks one from the clock.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Generate computes one synthetic value.
func Generate(rng *rand.Rand, index int, baseline, amplitude, noise, frequency float64) float64 {
	v := baseline + amplitude*math.Sin(float64(index)*frequency)
	if noise > 0 {
		v += rng.Float64() * noise
	}
	return v
}

// Value draws the reading of p for the given index.
func (p Profile) Value(rng *rand.Rand, index int) float64 {
	v := Generate(rng, index, p.Baseline, p.Amplitude, p.Noise, p.Frequency)
	if p.Floor != nil && v < *p.Floor {
		v = *p.Floor
	}
	return v
}

// bounds returns the closed interval every Value of p falls in.
func (p Profile) bounds() (lo, hi float64) {
	amp := math.Abs(p.Amplitude)
	lo = p.Baseline - amp
	hi = p.Baseline + amp + p.Noise
	if p.Floor != nil {
		lo = math.Max(lo, *p.Floor)
		hi = math.Max(hi, *p.Floor)
	}
	return lo, hi
}

// Series returns n hourly points ending at the hour of now, oldest first.
// Every call recomputes the whole series.
func (p Profile) Series(rng *rand.Rand, n int, now time.Time) []models.TrendPoint {
	if n <= 0 {
		return nil
	}
	end := now.Truncate(time.Hour)
	out := make([]models.TrendPoint, n)
	for i := 0; i < n; i++ {
		at := end.Add(-time.Duration(n-1-i) * time.Hour)
		out[i] = models.TrendPoint{
			Time:  at.Format(trendTimeLayout),
			Value: p.Value(rng, i),
		}
	}
	return out
}

// InitialActuators draws first-boot actuator flags. Later refreshes never
// touch actuators; only explicit user actions do.
func InitialActuators(rng *rand.Rand) models.Actuators {
	return models.Actuators{
		IrrigationPump: rng.Float64() > 0.5,
		UVLamp:         rng.Float64() > 0.3,
		VentilationFan: rng.Float64() > 0.6,
	}
}
