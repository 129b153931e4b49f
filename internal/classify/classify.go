// Package classify maps raw metric values to a status tier and to the
// percentage/angle geometry used by bars and circular gauges.
package classify

import (
	"errors"
	"fmt"
	"math"

	"greenhouse_monitor/internal/models"
)

const (
	minPercent     = 0.0
	maxPercent     = 100.0
	degreesPerUnit = 3.6 // 100% sweeps a full circle
)

var (
	// ErrDegenerateRange reports a range whose min is not below its max.
	ErrDegenerateRange = errors.New("degenerate range: min must be below max")
	// ErrOptimalOutsideRange reports an optimal band that is not a subset of the range.
	ErrOptimalOutsideRange = errors.New("optimal band must lie inside the valid range")
)

// Classify returns Optimal inside the optimal band (inclusive), Critical outside
// the valid range and Caution otherwise. The optimal test runs first.
func Classify(value float64, r models.Range, optimal models.OptimalRange) models.Tier {
	if value >= optimal.Min && value <= optimal.Max {
		return models.TierOptimal
	}
	if value < r.Min || value > r.Max {
		return models.TierCritical
	}
	return models.TierCaution
}

// Scale positions value within r as a percentage clamped to [0,100].
// A degenerate range yields 0.
func Scale(value float64, r models.Range) float64 {
	return clamp(rawPercent(value, r))
}

// Angle converts a clamped percentage into gauge sweep degrees.
func Angle(percent float64) float64 {
	return clamp(percent) * degreesPerUnit
}

// Band returns where the optimal band starts and ends, in percent of r.
func Band(optimal models.OptimalRange, r models.Range) (start, end float64) {
	return Scale(optimal.Min, r), Scale(optimal.Max, r)
}

// Gauge bundles percentage, angle and optimal band for one value.
func Gauge(value float64, r models.Range, optimal models.OptimalRange) models.Gauge {
	pct := Scale(value, r)
	start, end := Band(optimal, r)
	return models.Gauge{
		Percent:      pct,
		Angle:        Angle(pct),
		OptimalStart: start,
		OptimalEnd:   end,
	}
}

// Validate checks a range on its own.
func Validate(r models.Range) error {
	if !(r.Min < r.Max) {
		return fmt.Errorf("%w (min=%g, max=%g)", ErrDegenerateRange, r.Min, r.Max)
	}
	return nil
}

// ValidateSpec checks that spec has a usable range and an optimal band inside it.
func ValidateSpec(spec models.MetricSpec) error {
	if err := Validate(spec.Range); err != nil {
		return fmt.Errorf("metric %q: %w", spec.Key, err)
	}
	o := spec.Optimal
	if o.Min > o.Max || o.Min < spec.Range.Min || o.Max > spec.Range.Max {
		return fmt.Errorf("metric %q: %w", spec.Key, ErrOptimalOutsideRange)
	}
	return nil
}

func rawPercent(value float64, r models.Range) float64 {
	span := r.Max - r.Min
	if span <= 0 {
		return 0
	}
	return (value - r.Min) / span * 100
}

func clamp(p float64) float64 {
	switch {
	case math.IsNaN(p):
		return minPercent
	case p < minPercent:
		return minPercent
	case p > maxPercent:
		return maxPercent
	default:
		return p
	}
}
