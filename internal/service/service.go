package service

import (
	"context"
	"errors"

	"greenhouse_monitor/internal/generator"
	"greenhouse_monitor/internal/hub"
	"greenhouse_monitor/internal/logger"
	"greenhouse_monitor/internal/models"
	"greenhouse_monitor/internal/repository"
)

// ErrGreenhouseNotFound is returned for an id outside the configured fleet.
var ErrGreenhouseNotFound = errors.New("greenhouse not found")

// Dashboard exposes the read model: latest readings merged with live
// actuator flags and connection state.
type Dashboard interface {
	GetSnapshot(ctx context.Context) (models.Snapshot, error)
	GetGreenhouse(ctx context.Context, id int) (models.Greenhouse, error)
	GetConnection(ctx context.Context) models.ConnectionState
}

// Actuators switches the simulated actuators of one greenhouse.
type Actuators interface {
	Toggle(ctx context.Context, greenhouseID int, kind models.ActuatorKind) (models.Actuators, error)
	Set(ctx context.Context, greenhouseID int, kind models.ActuatorKind, on bool) (models.Actuators, error)
}

// Scheduler regenerates readings on a fixed period and flaps the connection flag.
// Stop (or cancelling the Start context) ends it; no callback fires after Stop returns.
type Scheduler interface {
	Start(ctx context.Context) error
	Stop()
	OnTick(fn func(models.Snapshot))
	OnConnection(fn func(models.ConnectionState))
	Connection() models.ConnectionState
}

// Publisher receives events for stream subscribers.
type Publisher interface {
	Publish(e hub.Event) int
}

// Service aggregates the sub-services the HTTP layer talks to.
type Service struct {
	Dashboard
	Actuators
	Scheduler
}

// NewService wires the repositories into concrete services sharing one fleet
// and metric catalog.
func NewService(repos *repository.Repository, opts Options, pub Publisher, log *logger.Logger) (*Service, error) {
	opts = opts.withDefaults()
	if err := opts.Catalog.Validate(); err != nil {
		return nil, err
	}
	fleet := NewFleet(opts.PlantTypes)

	scheduler := NewRefreshScheduler(repos, fleet, opts, log.Named("scheduler"))
	return &Service{
		Dashboard: NewDashboardService(repos, fleet, opts.Catalog, scheduler, opts.Now),
		Actuators: NewActuatorService(repos.Actuators, fleet, pub, opts.Now, log.Named("actuators")),
		Scheduler: scheduler,
	}, nil
}

// Plantation is one configured micro greenhouse.
type Plantation struct {
	ID        int
	PlantType string
}

// Fleet is the ordered set of greenhouses; ids start at 1.
type Fleet []Plantation

func NewFleet(plantTypes []string) Fleet {
	if len(plantTypes) == 0 {
		plantTypes = generator.DefaultPlantTypes
	}
	out := make(Fleet, len(plantTypes))
	for i, pt := range plantTypes {
		out[i] = Plantation{ID: i + 1, PlantType: pt}
	}
	return out
}

func (f Fleet) Has(id int) bool {
	for _, p := range f {
		if p.ID == id {
			return true
		}
	}
	return false
}
