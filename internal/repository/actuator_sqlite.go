package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"greenhouse_monitor/internal/models"
)

type ActuatorSQLite struct {
	db *sql.DB
}

func NewActuatorSQLite(db *sql.DB) *ActuatorSQLite {
	return &ActuatorSQLite{db: db}
}

const (
	upsertActuatorsSQL = `
		INSERT INTO greenhouse_actuators (greenhouse_id, irrigation_pump, uv_lamp, ventilation_fan, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(greenhouse_id) DO UPDATE SET
			irrigation_pump=excluded.irrigation_pump,
			uv_lamp=excluded.uv_lamp,
			ventilation_fan=excluded.ventilation_fan,
			updated_at=excluded.updated_at
	`

	selectActuatorsSQL = `
		SELECT irrigation_pump, uv_lamp, ventilation_fan
		FROM greenhouse_actuators WHERE greenhouse_id=?
	`
)

// Save upserts the row of one greenhouse; updated_at is stamped in UTC.
func (r *ActuatorSQLite) Save(ctx context.Context, greenhouseID int, a models.Actuators) error {
	_, err := r.db.ExecContext(ctx, upsertActuatorsSQL,
		greenhouseID,
		a.IrrigationPump,
		a.UVLamp,
		a.VentilationFan,
		time.Now().UTC(),
	)
	return err
}

// Load returns ErrNotFound when the greenhouse has no row yet.
func (r *ActuatorSQLite) Load(ctx context.Context, greenhouseID int) (models.Actuators, error) {
	row := r.db.QueryRowContext(ctx, selectActuatorsSQL, greenhouseID)

	var a models.Actuators
	if err := row.Scan(&a.IrrigationPump, &a.UVLamp, &a.VentilationFan); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Actuators{}, ErrNotFound
		}
		return models.Actuators{}, err
	}
	return a, nil
}
