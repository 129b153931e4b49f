package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"greenhouse_monitor/internal/generator"
	"greenhouse_monitor/internal/logger"
	"greenhouse_monitor/internal/models"
	"greenhouse_monitor/internal/repository"
)

// ---- Test doubles ----

// failingActuatorRepo fails every call with err.
type failingActuatorRepo struct{ err error }

func (f *failingActuatorRepo) Load(ctx context.Context, id int) (models.Actuators, error) {
	return models.Actuators{}, f.err
}
func (f *failingActuatorRepo) Save(ctx context.Context, id int, a models.Actuators) error {
	return f.err
}

// recorder collects scheduler callbacks.
type recorder struct {
	mu    sync.Mutex
	ticks []models.Snapshot
	conns []models.ConnectionState
	connC chan models.ConnectionState
}

func newRecorder() *recorder {
	return &recorder{connC: make(chan models.ConnectionState, 16)}
}

func (r *recorder) attach(s *RefreshScheduler) {
	s.OnTick(func(snap models.Snapshot) {
		r.mu.Lock()
		r.ticks = append(r.ticks, snap)
		r.mu.Unlock()
	})
	s.OnConnection(func(c models.ConnectionState) {
		r.mu.Lock()
		r.conns = append(r.conns, c)
		r.mu.Unlock()
		select {
		case r.connC <- c:
		default:
		}
	})
}

func (r *recorder) counts() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ticks), len(r.conns)
}

func newTestScheduler(repos *repository.Repository, opts Options) *RefreshScheduler {
	if opts.Rand == nil {
		opts.Rand = generator.NewRand(7)
	}
	return NewRefreshScheduler(repos, NewFleet(nil), opts, logger.Nop())
}

func waitConn(t *testing.T, r *recorder, timeout time.Duration) models.ConnectionState {
	t.Helper()
	select {
	case c := <-r.connC:
		return c
	case <-time.After(timeout):
		t.Fatalf("no connection change within %v", timeout)
		return models.ConnectionState{}
	}
}

// ---- Tests ----

func TestScheduler_StartGeneratesInitialSnapshot(t *testing.T) {
	t.Parallel()
	repos := repository.NewMemoryRepository()
	s := newTestScheduler(repos, Options{Interval: time.Hour})
	rec := newRecorder()
	rec.attach(s)

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Stop()

	ticks, conns := rec.counts()
	if ticks != 1 || conns != 0 {
		t.Fatalf("after Start got ticks=%d conns=%d, want 1 and 0", ticks, conns)
	}

	snap, err := repos.Snapshots.Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if len(snap.Greenhouses) != len(generator.DefaultPlantTypes) {
		t.Fatalf("greenhouses = %d, want %d", len(snap.Greenhouses), len(generator.DefaultPlantTypes))
	}
	if !snap.Connected {
		t.Fatalf("initial snapshot must be connected")
	}
	if snap.Overview.TotalSensors != len(snap.Greenhouses)*4 {
		t.Fatalf("total sensors = %d", snap.Overview.TotalSensors)
	}
	for _, g := range snap.Greenhouses {
		if _, err := repos.Actuators.Load(context.Background(), g.ID); err != nil {
			t.Fatalf("actuators of %d were not seeded: %v", g.ID, err)
		}
	}
}

func TestScheduler_StartTwiceFails(t *testing.T) {
	t.Parallel()
	s := newTestScheduler(repository.NewMemoryRepository(), Options{Interval: time.Hour})
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Stop()
	if err := s.Start(context.Background()); !errors.Is(err, errSchedulerRunning) {
		t.Fatalf("second Start err = %v, want errSchedulerRunning", err)
	}
}

func TestScheduler_StartPropagatesStoreError(t *testing.T) {
	t.Parallel()
	repos := repository.NewRepository(&failingActuatorRepo{err: errors.New("db down")}, repository.NewSnapshotMemory())
	s := newTestScheduler(repos, Options{Interval: time.Hour})
	if err := s.Start(context.Background()); err == nil {
		t.Fatalf("expected error, got nil")
	}
	// A failed Start leaves the scheduler startable and Stop harmless.
	s.Stop()
}

func TestScheduler_DisconnectThenReconnect(t *testing.T) {
	t.Parallel()
	s := newTestScheduler(repository.NewMemoryRepository(), Options{
		Interval:              50 * time.Millisecond,
		ReconnectDelay:        10 * time.Millisecond,
		DisconnectProbability: 1,
	})
	rec := newRecorder()
	rec.attach(s)

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Stop()

	if c := waitConn(t, rec, time.Second); c.Connected {
		t.Fatalf("first transition should be a disconnect")
	}
	if c := waitConn(t, rec, time.Second); !c.Connected {
		t.Fatalf("second transition should be a reconnect")
	}
}

func TestScheduler_ZeroProbabilityNeverDisconnects(t *testing.T) {
	t.Parallel()
	s := newTestScheduler(repository.NewMemoryRepository(), Options{
		Interval:              5 * time.Millisecond,
		DisconnectProbability: 0,
	})
	rec := newRecorder()
	rec.attach(s)

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	time.Sleep(60 * time.Millisecond)
	s.Stop()

	ticks, conns := rec.counts()
	if ticks < 2 {
		t.Fatalf("expected several ticks, got %d", ticks)
	}
	if conns != 0 {
		t.Fatalf("expected no connection changes, got %d", conns)
	}
	if !s.Connection().Connected {
		t.Fatalf("connection should stay up")
	}
}

func TestScheduler_NoCallbacksAfterStop(t *testing.T) {
	t.Parallel()
	s := newTestScheduler(repository.NewMemoryRepository(), Options{
		Interval:              5 * time.Millisecond,
		ReconnectDelay:        5 * time.Millisecond,
		DisconnectProbability: 0.5,
	})
	rec := newRecorder()
	rec.attach(s)

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	time.Sleep(30 * time.Millisecond)
	s.Stop()

	ticks, conns := rec.counts()
	time.Sleep(50 * time.Millisecond)
	ticksAfter, connsAfter := rec.counts()
	if ticksAfter != ticks || connsAfter != conns {
		t.Fatalf("callbacks fired after Stop: ticks %d->%d conns %d->%d", ticks, ticksAfter, conns, connsAfter)
	}

	// Stop is idempotent.
	s.Stop()
}

func TestScheduler_ContextCancelEndsLoop(t *testing.T) {
	t.Parallel()
	s := newTestScheduler(repository.NewMemoryRepository(), Options{Interval: 5 * time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	cancel()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Stop did not return after context cancellation")
	}
}

func TestScheduler_TicksKeepStoredActuators(t *testing.T) {
	t.Parallel()
	repos := repository.NewMemoryRepository()
	want := models.Actuators{IrrigationPump: true, UVLamp: false, VentilationFan: true}
	if err := repos.Actuators.Save(context.Background(), 2, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	s := newTestScheduler(repos, Options{Interval: time.Hour})

	snap, err := s.refresh(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	g, ok := snap.Greenhouse(2)
	if !ok {
		t.Fatalf("greenhouse 2 missing")
	}
	if g.Actuators != want {
		t.Fatalf("actuators = %+v, want %+v", g.Actuators, want)
	}
}

func TestScheduler_StopWithPendingReconnectRestoresLink(t *testing.T) {
	t.Parallel()
	repos := repository.NewMemoryRepository()
	s := newTestScheduler(repos, Options{
		Interval:              10 * time.Millisecond,
		ReconnectDelay:        time.Hour,
		DisconnectProbability: 1,
	})
	rec := newRecorder()
	rec.attach(s)

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if c := waitConn(t, rec, time.Second); c.Connected {
		t.Fatalf("expected a disconnect")
	}
	s.Stop()

	if !s.Connection().Connected {
		t.Fatalf("link must be up once the pending reconnect is cancelled")
	}

	// Restart with no further disconnects: the link stays up.
	s.disconnectProbability = 0
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("restart: %v", err)
	}
	defer s.Stop()

	snap, err := repos.Snapshots.Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if !snap.Connected || !s.Connection().Connected {
		t.Fatalf("restarted scheduler reports disconnected: snapshot=%v conn=%+v", snap.Connected, s.Connection())
	}
}
