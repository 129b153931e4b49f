package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"greenhouse_monitor/internal/hub"
	"greenhouse_monitor/internal/logger"
	"greenhouse_monitor/internal/metrics"
	"greenhouse_monitor/internal/models"
	"greenhouse_monitor/internal/repository"
)

type ActuatorService struct {
	repo  repository.ActuatorRepo
	fleet Fleet
	pub   Publisher
	now   func() time.Time
	log   *logger.Logger
}

func NewActuatorService(repo repository.ActuatorRepo, fleet Fleet, pub Publisher, now func() time.Time, log *logger.Logger) *ActuatorService {
	if now == nil {
		now = time.Now
	}
	return &ActuatorService{repo: repo, fleet: fleet, pub: pub, now: now, log: log}
}

// Toggle flips exactly one actuator of one greenhouse. Readings are not touched.
func (s *ActuatorService) Toggle(ctx context.Context, greenhouseID int, kind models.ActuatorKind) (models.Actuators, error) {
	return s.apply(ctx, greenhouseID, kind, func(a models.Actuators) (models.Actuators, error) {
		return a.Toggled(kind)
	})
}

// Set switches one actuator on or off as requested; setting the current value
// is a no-op that still reports the flags.
func (s *ActuatorService) Set(ctx context.Context, greenhouseID int, kind models.ActuatorKind, on bool) (models.Actuators, error) {
	return s.apply(ctx, greenhouseID, kind, func(a models.Actuators) (models.Actuators, error) {
		return a.With(kind, on)
	})
}

func (s *ActuatorService) apply(ctx context.Context, greenhouseID int, kind models.ActuatorKind, change func(models.Actuators) (models.Actuators, error)) (models.Actuators, error) {
	if !s.fleet.Has(greenhouseID) {
		return models.Actuators{}, ErrGreenhouseNotFound
	}

	current, err := s.repo.Load(ctx, greenhouseID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return models.Actuators{}, fmt.Errorf("load actuators of greenhouse %d: %w", greenhouseID, err)
	}

	next, err := change(current)
	if err != nil {
		return models.Actuators{}, err
	}
	if next == current {
		return current, nil
	}
	if err := s.repo.Save(ctx, greenhouseID, next); err != nil {
		return models.Actuators{}, fmt.Errorf("save actuators of greenhouse %d: %w", greenhouseID, err)
	}

	isOn, _ := next.Get(kind)
	metrics.ActuatorChanges.WithLabelValues(string(kind)).Inc()
	metrics.ObserveActuators(greenhouseID, next)
	s.log.Infow("actuator_changed", "greenhouse", greenhouseID, "actuator", kind, "is_on", isOn)

	if s.pub != nil {
		s.pub.Publish(hub.Event{Type: hub.EventActuator, Data: models.ActuatorChange{
			GreenhouseID: greenhouseID,
			Kind:         kind,
			IsOn:         isOn,
			Actuators:    next,
			ChangedAt:    s.now().UTC(),
		}})
	}
	return next, nil
}
