package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"greenhouse_monitor/internal/classify"
	"greenhouse_monitor/internal/generator"
	"greenhouse_monitor/internal/models"
	"greenhouse_monitor/internal/repository"
)

// connectionSource is the part of the scheduler the dashboard reads.
type connectionSource interface {
	Connection() models.ConnectionState
}

type DashboardService struct {
	repos   *repository.Repository
	fleet   Fleet
	catalog generator.Catalog
	specs   map[string]models.MetricSpec
	conn    connectionSource
	now     func() time.Time
}

func NewDashboardService(repos *repository.Repository, fleet Fleet, catalog generator.Catalog, conn connectionSource, now func() time.Time) *DashboardService {
	if now == nil {
		now = time.Now
	}
	return &DashboardService{
		repos:   repos,
		fleet:   fleet,
		catalog: catalog,
		specs:   catalog.Specs(),
		conn:    conn,
		now:     now,
	}
}

// GetSnapshot returns the latest generated snapshot with the current actuator
// flags and connection state merged in. Before the first refresh it returns
// a baseline where every metric reads 0.
func (s *DashboardService) GetSnapshot(ctx context.Context) (models.Snapshot, error) {
	snap, err := s.repos.Snapshots.Latest(ctx)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		snap = s.baselineSnapshot()
	case err != nil:
		return models.Snapshot{}, fmt.Errorf("latest snapshot: %w", err)
	}

	greenhouses := make([]models.Greenhouse, len(snap.Greenhouses))
	copy(greenhouses, snap.Greenhouses)
	for i, g := range greenhouses {
		a, err := s.repos.Actuators.Load(ctx, g.ID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			continue
		case err != nil:
			return models.Snapshot{}, fmt.Errorf("load actuators of greenhouse %d: %w", g.ID, err)
		}
		greenhouses[i].Actuators = a
	}
	snap.Greenhouses = greenhouses
	snap.Overview = classify.Summarize(greenhouses, s.specs)
	snap.Connected = s.conn.Connection().Connected
	snap.GeneratedAt = toUTC(snap.GeneratedAt)
	return snap, nil
}

func (s *DashboardService) GetGreenhouse(ctx context.Context, id int) (models.Greenhouse, error) {
	if !s.fleet.Has(id) {
		return models.Greenhouse{}, ErrGreenhouseNotFound
	}
	snap, err := s.GetSnapshot(ctx)
	if err != nil {
		return models.Greenhouse{}, err
	}
	g, ok := snap.Greenhouse(id)
	if !ok {
		return models.Greenhouse{}, ErrGreenhouseNotFound
	}
	return g, nil
}

func (s *DashboardService) GetConnection(_ context.Context) models.ConnectionState {
	return s.conn.Connection()
}

// baselineSnapshot is what the dashboard shows until the first refresh lands.
func (s *DashboardService) baselineSnapshot() models.Snapshot {
	greenhouses := make([]models.Greenhouse, 0, len(s.fleet))
	for _, p := range s.fleet {
		readings := s.catalog.Baseline()
		greenhouses = append(greenhouses, models.Greenhouse{
			ID:        p.ID,
			PlantType: p.PlantType,
			Metrics:   readings,
			Health:    classify.Health(readings),
		})
	}
	return models.Snapshot{
		GeneratedAt: s.now().UTC(),
		Greenhouses: greenhouses,
	}
}

// toUTC normalizes non-zero time to UTC, preserving zero values.
func toUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
