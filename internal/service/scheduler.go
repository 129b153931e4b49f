package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"greenhouse_monitor/internal/classify"
	"greenhouse_monitor/internal/generator"
	"greenhouse_monitor/internal/logger"
	"greenhouse_monitor/internal/metrics"
	"greenhouse_monitor/internal/models"
	"greenhouse_monitor/internal/repository"
)

var errSchedulerRunning = errors.New("scheduler already running")

// RefreshScheduler regenerates the whole snapshot every interval and, with a
// fixed probability per tick, drops the connection flag for reconnectDelay.
//
// Timers, the random source and connection transitions are owned by the loop
// goroutine; mu only guards what other goroutines read.
type RefreshScheduler struct {
	repos   *repository.Repository
	fleet   Fleet
	catalog generator.Catalog
	specs   map[string]models.MetricSpec

	interval              time.Duration
	reconnectDelay        time.Duration
	disconnectProbability float64
	trendPoints           int
	rng                   *rand.Rand
	now                   func() time.Time
	log                   *logger.Logger

	mu      sync.Mutex
	conn    models.ConnectionState
	tickFns []func(models.Snapshot)
	connFns []func(models.ConnectionState)
	stop    chan struct{}
	done    chan struct{}
}

func NewRefreshScheduler(repos *repository.Repository, fleet Fleet, opts Options, log *logger.Logger) *RefreshScheduler {
	opts = opts.withDefaults()
	return &RefreshScheduler{
		repos:                 repos,
		fleet:                 fleet,
		catalog:               opts.Catalog,
		specs:                 opts.Catalog.Specs(),
		interval:              opts.Interval,
		reconnectDelay:        opts.ReconnectDelay,
		disconnectProbability: opts.DisconnectProbability,
		trendPoints:           opts.TrendPoints,
		rng:                   opts.Rand,
		now:                   opts.Now,
		log:                   log,
		conn:                  models.ConnectionState{Connected: true, ChangedAt: opts.Now().UTC()},
	}
}

// OnTick registers fn to receive every freshly generated snapshot.
func (s *RefreshScheduler) OnTick(fn func(models.Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickFns = append(s.tickFns, fn)
}

// OnConnection registers fn to receive connection transitions.
func (s *RefreshScheduler) OnConnection(fn func(models.ConnectionState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connFns = append(s.connFns, fn)
}

func (s *RefreshScheduler) Connection() models.ConnectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn
}

// Start generates the initial snapshot synchronously, then ticks in the
// background until Stop or ctx cancellation.
func (s *RefreshScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.stop != nil {
		s.mu.Unlock()
		return errSchedulerRunning
	}
	stop, done := make(chan struct{}), make(chan struct{})
	s.stop, s.done = stop, done
	s.mu.Unlock()

	snap, err := s.refresh(ctx, s.now())
	if err != nil {
		s.mu.Lock()
		s.stop, s.done = nil, nil
		s.mu.Unlock()
		return fmt.Errorf("initial refresh: %w", err)
	}
	metrics.SetConnected(s.Connection().Connected)
	s.emitTick(snap)

	go s.run(ctx, stop, done)
	s.log.Infow("scheduler_started", "interval", s.interval.String(), "greenhouses", len(s.fleet))
	return nil
}

// Stop cancels the recurring timer and any pending reconnect, and waits for
// the loop to exit.
func (s *RefreshScheduler) Stop() {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop, s.done = nil, nil
	s.mu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-done
	s.log.Infow("scheduler_stopped")
}

func (s *RefreshScheduler) run(ctx context.Context, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	t := time.NewTicker(s.interval)
	defer t.Stop()

	var reconnect *time.Timer
	var reconnectC <-chan time.Time
	defer func() {
		if reconnect != nil {
			reconnect.Stop()
		}
		if reconnectC != nil {
			s.restoreConnection(s.now())
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-t.C:
			if stopped(stop) {
				return
			}
			if s.tick(ctx) {
				if reconnect != nil {
					reconnect.Stop()
				}
				reconnect = time.NewTimer(s.reconnectDelay)
				reconnectC = reconnect.C
			}
		case <-reconnectC:
			reconnectC = nil
			if stopped(stop) {
				return
			}
			s.setConnected(true, s.now())
		}
	}
}

// tick runs one refresh: disconnect roll, regeneration, callbacks.
// It reports whether the connection was dropped.
func (s *RefreshScheduler) tick(ctx context.Context) bool {
	now := s.now()
	metrics.RefreshTicks.Inc()

	dropped := s.rollDisconnect()
	if dropped {
		metrics.Disconnects.Inc()
		s.setConnected(false, now)
	}

	snap, err := s.refresh(ctx, now)
	if err != nil {
		s.log.Errorw("scheduler_refresh_failed", "err", err)
		return dropped
	}
	s.log.Debugw("scheduler_tick", "snapshot", snap.ID, "alerts", snap.Overview.Alerts, "connected", snap.Connected)
	s.emitTick(snap)
	return dropped
}

func (s *RefreshScheduler) rollDisconnect() bool {
	return s.rng.Float64() < s.disconnectProbability
}

// refresh builds a complete snapshot, discarding the previous one.
func (s *RefreshScheduler) refresh(ctx context.Context, now time.Time) (models.Snapshot, error) {
	greenhouses := make([]models.Greenhouse, 0, len(s.fleet))
	for i, p := range s.fleet {
		readings := s.catalog.Readings(s.rng, i, s.trendPoints, now)
		act, err := s.actuatorsFor(ctx, p.ID)
		if err != nil {
			return models.Snapshot{}, err
		}
		greenhouses = append(greenhouses, models.Greenhouse{
			ID:        p.ID,
			PlantType: p.PlantType,
			Metrics:   readings,
			Actuators: act,
			Health:    classify.Health(readings),
		})
	}

	snap := models.Snapshot{
		ID:          uuid.NewString(),
		GeneratedAt: now.UTC(),
		Connected:   s.Connection().Connected,
		Greenhouses: greenhouses,
		Overview:    classify.Summarize(greenhouses, s.specs),
	}
	if err := s.repos.Snapshots.Save(ctx, snap); err != nil {
		return models.Snapshot{}, fmt.Errorf("save snapshot: %w", err)
	}
	metrics.ObserveSnapshot(snap)
	return snap, nil
}

// actuatorsFor returns the stored flags, drawing first-boot flags when the
// greenhouse has none yet.
func (s *RefreshScheduler) actuatorsFor(ctx context.Context, id int) (models.Actuators, error) {
	a, err := s.repos.Actuators.Load(ctx, id)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return models.Actuators{}, fmt.Errorf("load actuators of greenhouse %d: %w", id, err)
	}
	a = generator.InitialActuators(s.rng)
	if err := s.repos.Actuators.Save(ctx, id, a); err != nil {
		return models.Actuators{}, fmt.Errorf("seed actuators of greenhouse %d: %w", id, err)
	}
	return a, nil
}

func (s *RefreshScheduler) setConnected(connected bool, now time.Time) {
	s.mu.Lock()
	if s.conn.Connected == connected {
		s.mu.Unlock()
		return
	}
	s.conn = models.ConnectionState{Connected: connected, ChangedAt: now.UTC()}
	state := s.conn
	fns := append([]func(models.ConnectionState){}, s.connFns...)
	s.mu.Unlock()

	metrics.SetConnected(connected)
	s.log.Infow("connection_changed", "connected", connected)
	for _, fn := range fns {
		fn(state)
	}
}

// restoreConnection brings the link back up without notifying listeners; a
// reconnect cancelled by teardown must not leave the flag down.
func (s *RefreshScheduler) restoreConnection(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn.Connected {
		return
	}
	s.conn = models.ConnectionState{Connected: true, ChangedAt: now.UTC()}
	metrics.SetConnected(true)
}

func (s *RefreshScheduler) emitTick(snap models.Snapshot) {
	s.mu.Lock()
	fns := append([]func(models.Snapshot){}, s.tickFns...)
	s.mu.Unlock()
	for _, fn := range fns {
		fn(snap)
	}
}

func stopped(stop <-chan struct{}) bool {
	select {
	case <-stop:
		return true
	default:
		return false
	}
}
