package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"greenhouse_monitor/internal/hub"
	"greenhouse_monitor/internal/logger"
	"greenhouse_monitor/internal/models"
	"greenhouse_monitor/internal/repository"
)

// publisherStub records published events.
type publisherStub struct {
	events []hub.Event
}

func (p *publisherStub) Publish(e hub.Event) int {
	p.events = append(p.events, e)
	return 1
}

func newActuatorService(repo repository.ActuatorRepo, pub Publisher) *ActuatorService {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return NewActuatorService(repo, NewFleet(nil), pub, func() time.Time { return fixed }, logger.Nop())
}

func TestActuatorService_ToggleFlipsExactlyOne(t *testing.T) {
	t.Parallel()
	start := models.Actuators{IrrigationPump: true, UVLamp: false, VentilationFan: true}
	neighbour := models.Actuators{IrrigationPump: false, UVLamp: true, VentilationFan: true}

	tests := []struct {
		kind models.ActuatorKind
		want models.Actuators
	}{
		{models.IrrigationPump, models.Actuators{IrrigationPump: false, UVLamp: false, VentilationFan: true}},
		{models.UVLamp, models.Actuators{IrrigationPump: true, UVLamp: true, VentilationFan: true}},
		{models.VentilationFan, models.Actuators{IrrigationPump: true, UVLamp: false, VentilationFan: false}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(string(tc.kind), func(t *testing.T) {
			t.Parallel()
			repo := repository.NewActuatorMemory()
			_ = repo.Save(context.Background(), 1, start)
			_ = repo.Save(context.Background(), 2, neighbour)
			pub := &publisherStub{}
			svc := newActuatorService(repo, pub)

			got, err := svc.Toggle(context.Background(), 1, tc.kind)
			if err != nil {
				t.Fatalf("Toggle: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
			stored, _ := repo.Load(context.Background(), 1)
			if stored != tc.want {
				t.Fatalf("stored %+v, want %+v", stored, tc.want)
			}
			other, _ := repo.Load(context.Background(), 2)
			if other != neighbour {
				t.Fatalf("greenhouse 2 changed: %+v, want %+v", other, neighbour)
			}
			if len(pub.events) != 1 || pub.events[0].Type != hub.EventActuator {
				t.Fatalf("expected one actuator event, got %+v", pub.events)
			}
			change := pub.events[0].Data.(models.ActuatorChange)
			if change.GreenhouseID != 1 || change.Kind != tc.kind || change.Actuators != tc.want {
				t.Fatalf("unexpected change %+v", change)
			}
		})
	}
}

func TestActuatorService_ToggleTwiceRestores(t *testing.T) {
	t.Parallel()
	repo := repository.NewActuatorMemory()
	start := models.Actuators{UVLamp: true}
	_ = repo.Save(context.Background(), 3, start)
	svc := newActuatorService(repo, nil)

	if _, err := svc.Toggle(context.Background(), 3, models.VentilationFan); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	got, err := svc.Toggle(context.Background(), 3, models.VentilationFan)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if got != start {
		t.Fatalf("got %+v, want %+v", got, start)
	}
}

func TestActuatorService_SetSameValueIsNoop(t *testing.T) {
	t.Parallel()
	repo := repository.NewActuatorMemory()
	_ = repo.Save(context.Background(), 1, models.Actuators{IrrigationPump: true})
	pub := &publisherStub{}
	svc := newActuatorService(repo, pub)

	got, err := svc.Set(context.Background(), 1, models.IrrigationPump, true)
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !got.IrrigationPump {
		t.Fatalf("pump should stay on")
	}
	if len(pub.events) != 0 {
		t.Fatalf("no event expected for a no-op, got %d", len(pub.events))
	}
}

func TestActuatorService_SetAppliesRequestedValue(t *testing.T) {
	t.Parallel()
	repo := repository.NewActuatorMemory()
	_ = repo.Save(context.Background(), 1, models.Actuators{UVLamp: true, VentilationFan: true})
	pub := &publisherStub{}
	svc := newActuatorService(repo, pub)

	got, err := svc.Set(context.Background(), 1, models.UVLamp, false)
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	want := models.Actuators{VentilationFan: true}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	if len(pub.events) != 1 || pub.events[0].Data.(models.ActuatorChange).IsOn {
		t.Fatalf("expected one off event, got %+v", pub.events)
	}
}

func TestActuatorService_Errors(t *testing.T) {
	t.Parallel()
	dbErr := errors.New("db down")

	tests := []struct {
		name    string
		repo    repository.ActuatorRepo
		id      int
		kind    models.ActuatorKind
		wantErr error
	}{
		{"unknown greenhouse", repository.NewActuatorMemory(), 99, models.UVLamp, ErrGreenhouseNotFound},
		{"unknown actuator", repository.NewActuatorMemory(), 1, "heater", models.ErrUnknownActuator},
		{"store failure", &failingActuatorRepo{err: dbErr}, 1, models.UVLamp, dbErr},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc := newActuatorService(tc.repo, nil)
			_, err := svc.Toggle(context.Background(), tc.id, tc.kind)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}
