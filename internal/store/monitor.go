package store

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/bookshelf/internal/logging"
	"github.com/mrlokans/bookshelf/internal/metrics"
)

// Pinger is implemented by every backend.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Monitor derives the connection state of a store from periodic pings.
type Monitor struct {
	pinger   Pinger
	interval time.Duration
	timeout  time.Duration

	state     atomic.Int32
	everReady atomic.Bool
	stopped   atomic.Bool

	mu      sync.Mutex
	cron    *cron.Cron
	running bool
}

// NewMonitor creates a monitor in the connecting state.
func NewMonitor(pinger Pinger, interval, timeout time.Duration) *Monitor {
	m := &Monitor{
		pinger:   pinger,
		interval: interval,
		timeout:  timeout,
		cron:     cron.New(),
	}
	m.setState(StateConnecting)
	return m
}

// State returns the last observed connection state.
func (m *Monitor) State() ConnState {
	return ConnState(m.state.Load())
}

// Ready reports whether the store is usable.
func (m *Monitor) Ready() bool {
	return m.State() == StateReady
}

// Probe pings the store once and updates the state.
func (m *Monitor) Probe(ctx context.Context) ConnState {
	if m.stopped.Load() {
		return m.State()
	}

	pingCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	if err := m.pinger.Ping(pingCtx); err != nil {
		next := StateConnecting
		if m.everReady.Load() {
			next = StateDisconnected
		}
		if m.setState(next) {
			logging.Warn().Err(err).Str("state", next.String()).Msg("Store is not reachable")
		}
		return next
	}

	m.everReady.Store(true)
	if m.setState(StateReady) {
		logging.Info().Msg("Store connection ready")
	}
	return StateReady
}

// Start probes immediately and then on every interval until Stop is called.
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running || m.stopped.Load() {
		return nil
	}
	if m.interval <= 0 {
		return fmt.Errorf("invalid store probe interval %s", m.interval)
	}

	m.Probe(ctx)

	spec := fmt.Sprintf("@every %s", m.interval)
	if _, err := m.cron.AddFunc(spec, func() { m.Probe(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule store probe: %w", err)
	}
	m.cron.Start()
	m.running = true

	logging.Debug().Dur("interval", m.interval).Msg("Store monitor started")
	return nil
}

// WaitReady probes every interval until the store is ready or ctx is done.
func (m *Monitor) WaitReady(ctx context.Context) error {
	if m.interval <= 0 {
		return fmt.Errorf("invalid store probe interval %s", m.interval)
	}
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		if m.Probe(ctx) == StateReady {
			return nil
		}
		if m.stopped.Load() {
			return fmt.Errorf("store monitor stopped before the store became ready")
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for store: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}

// Stop halts probing, waiting for an in-flight probe to finish.
// The monitor ends in the disconnected state.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopped.Store(true)
	m.setState(StateDisconnecting)
	if m.running {
		<-m.cron.Stop().Done()
		m.running = false
	}
	m.setState(StateDisconnected)
}

// setState reports whether the state changed.
func (m *Monitor) setState(s ConnState) bool {
	prev := ConnState(m.state.Swap(int32(s)))
	metrics.StoreState.Set(float64(s))
	return prev != s
}
