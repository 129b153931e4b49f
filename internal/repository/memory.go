package repository

import (
	"context"
	"sync"

	"greenhouse_monitor/internal/models"
)

type ActuatorMemory struct {
	mu   sync.RWMutex
	byID map[int]models.Actuators
}

func NewActuatorMemory() *ActuatorMemory {
	return &ActuatorMemory{byID: make(map[int]models.Actuators)}
}

func (r *ActuatorMemory) Load(_ context.Context, greenhouseID int) (models.Actuators, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[greenhouseID]
	if !ok {
		return models.Actuators{}, ErrNotFound
	}
	return a, nil
}

func (r *ActuatorMemory) Save(_ context.Context, greenhouseID int, a models.Actuators) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[greenhouseID] = a
	return nil
}

type SnapshotMemory struct {
	mu     sync.RWMutex
	latest *models.Snapshot
}

func NewSnapshotMemory() *SnapshotMemory { return &SnapshotMemory{} }

// Save replaces the held snapshot.
func (r *SnapshotMemory) Save(_ context.Context, s models.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.latest = &s
	return nil
}

func (r *SnapshotMemory) Latest(_ context.Context) (models.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.latest == nil {
		return models.Snapshot{}, ErrNotFound
	}
	return *r.latest, nil
}
