package repository

import (
	"context"
	"errors"

	"greenhouse_monitor/internal/models"
)

// ErrNotFound is returned when nothing has been stored yet for a key.
var ErrNotFound = errors.New("not found")

// ActuatorRepo keeps the current actuator flags of each greenhouse.
type ActuatorRepo interface {
	Load(ctx context.Context, greenhouseID int) (models.Actuators, error)
	Save(ctx context.Context, greenhouseID int, a models.Actuators) error
}

// SnapshotRepo keeps only the latest refresh snapshot.
type SnapshotRepo interface {
	Save(ctx context.Context, s models.Snapshot) error
	Latest(ctx context.Context) (models.Snapshot, error)
}

type Repository struct {
	Actuators ActuatorRepo
	Snapshots SnapshotRepo
}

// NewRepository bundles the chosen stores.
func NewRepository(actuators ActuatorRepo, snapshots SnapshotRepo) *Repository {
	return &Repository{
		Actuators: actuators,
		Snapshots: snapshots,
	}
}

// NewMemoryRepository is the in-process default.
func NewMemoryRepository() *Repository {
	return NewRepository(NewActuatorMemory(), NewSnapshotMemory())
}
