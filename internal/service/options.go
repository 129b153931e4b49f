package service

import (
	"math/rand"
	"time"

	"greenhouse_monitor/internal/generator"
)

// Defaults mirror the dashboard's original timing.
const (
	DefaultInterval              = 5 * time.Minute
	DefaultReconnectDelay        = 3 * time.Second
	DefaultDisconnectProbability = 0.05
)

// Options tune the services built by NewService.
type Options struct {
	Catalog               generator.Catalog
	PlantTypes            []string
	Interval              time.Duration
	ReconnectDelay        time.Duration
	DisconnectProbability float64
	TrendPoints           int
	// Rand drives generation and the disconnect roll. It is only used from
	// the scheduler, never concurrently.
	Rand *rand.Rand
	Now  func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Catalog == nil {
		o.Catalog = generator.DefaultCatalog()
	}
	if len(o.PlantTypes) == 0 {
		o.PlantTypes = generator.DefaultPlantTypes
	}
	if o.Interval <= 0 {
		o.Interval = DefaultInterval
	}
	if o.ReconnectDelay <= 0 {
		o.ReconnectDelay = DefaultReconnectDelay
	}
	if o.DisconnectProbability < 0 {
		o.DisconnectProbability = 0
	}
	if o.TrendPoints < 0 {
		o.TrendPoints = 0
	}
	if o.Rand == nil {
		o.Rand = generator.NewRand(0)
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}
