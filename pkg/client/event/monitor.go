/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package event watches the chain height of the selected peer and resolves
// pending mutating calls when the chain grows.
//
//  Basic Flow:
//  1) Create the monitor over a chain stats provider
//  2) Register a growth handler
//  3) Start the monitor; Track every successful mutating call
//  4) Stop the monitor
//
// One pending action, the oldest, is resolved per observed height change.
// This approximates confirmation: a block may carry several transactions.
package event

import (
	"context"
	"sync"
	"time"

	"github.com/ibm-blockchain/ibc-go/pkg/common/logging"
	"github.com/ibm-blockchain/ibc-go/pkg/common/providers/fab"
	"github.com/ibm-blockchain/ibc-go/pkg/fabsdk/metrics"
	"github.com/pkg/errors"
)

var logger = logging.NewLogger("ibc/client")

// GrowthHandler is notified with the chain stats of every height change
type GrowthHandler func(stats *fab.ChainStats)

// Monitor polls the chain height. It ticks every FastInterval; a height
// check is issued when SlowInterval has elapsed since the last poll or when
// a pending action is still fresh. Stale actions are evicted unresolved.
type Monitor struct {
	stats   fab.ChainStatsProvider
	opts    options
	metrics *metrics.MonitorMetrics

	mutex       sync.Mutex
	pending     []time.Time
	lastPoll    time.Time
	lastBlock   uint64
	lastSuccess time.Time
	handler     GrowthHandler

	runMutex sync.Mutex
	cancel   context.CancelFunc
	done     chan struct{}
	started  time.Time
	checks   sync.WaitGroup
}

// New returns a stopped monitor
func New(stats fab.ChainStatsProvider, opts ...Option) *Monitor {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Monitor{
		stats:   stats,
		opts:    o,
		metrics: metrics.NewMonitorMetrics(o.metricsProvider),
	}
}

// RegisterHandler sets the growth handler, replacing any previous one
func (m *Monitor) RegisterHandler(handler GrowthHandler) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.handler = handler
}

// Track records a pending action at the current time
func (m *Monitor) Track() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.pending = append(m.pending, m.opts.now())
	m.metrics.PendingActions.Set(float64(len(m.pending)))
}

// Pending returns the number of pending actions
func (m *Monitor) Pending() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.pending)
}

// LastBlock returns the last observed chain height
func (m *Monitor) LastBlock() uint64 {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.lastBlock
}

// Start runs the polling loop in the background until Stop is called or ctx is done.
// Starting a running monitor is an error.
func (m *Monitor) Start(ctx context.Context) error {
	m.runMutex.Lock()
	defer m.runMutex.Unlock()

	if m.cancel != nil {
		return errors.New("block height monitor already started")
	}

	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.done = make(chan struct{})
	m.started = m.opts.now()

	go m.run(ctx, m.done)
	logger.Debugf("block height monitor started, ticking every %s", m.opts.fastInterval)
	return nil
}

// Stop halts the polling loop and waits for in-flight height checks. It is a
// no-op if not started. A growth handler may call Stop.
func (m *Monitor) Stop() {
	m.runMutex.Lock()
	defer m.runMutex.Unlock()

	if m.cancel == nil {
		return
	}
	m.cancel()
	<-m.done
	m.checks.Wait()
	m.cancel = nil
	logger.Debug("block height monitor stopped")
}

// IsRunning returns true between Start and Stop
func (m *Monitor) IsRunning() bool {
	m.runMutex.Lock()
	defer m.runMutex.Unlock()
	return m.cancel != nil
}

func (m *Monitor) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(m.opts.fastInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.tick(ctx)
		}
	}
}

// tick never waits for the height check it issues
func (m *Monitor) tick(ctx context.Context) {
	now := m.opts.now()

	m.mutex.Lock()
	due := false
	evicted := 0
	if now.Sub(m.lastPoll) > m.opts.slowInterval {
		due = true
	} else {
		kept := m.pending[:0]
		for _, ts := range m.pending {
			if now.Sub(ts) <= m.opts.freshness {
				due = true
				kept = append(kept, ts)
			} else {
				evicted++
			}
		}
		m.pending = kept
	}
	if due {
		m.lastPoll = now
	}
	pending := len(m.pending)
	m.mutex.Unlock()

	if evicted > 0 {
		logger.Debugf("evicted %d expired action(s)", evicted)
		m.metrics.EvictedActions.Add(float64(evicted))
		m.metrics.PendingActions.Set(float64(pending))
	}
	if due {
		m.checks.Add(1)
		go m.check(ctx)
	}
}

// check runs the growth handler after the check is marked done, so the
// handler may stop the monitor
func (m *Monitor) check(ctx context.Context) {
	m.metrics.HeightChecks.Add(1)
	stats, err := m.stats.ChainStats(ctx)
	if err != nil {
		m.metrics.HeightCheckFailures.Add(1)
		logger.Debugf("height check failed: %s", err)
		m.checks.Done()
		return
	}

	handler := m.onStats(stats)
	m.checks.Done()

	if handler != nil {
		handler(stats)
	}
}

// onStats resolves the oldest pending action when the height changed and
// returns the handler to notify, nil if there is nothing to notify
func (m *Monitor) onStats(stats *fab.ChainStats) GrowthHandler {
	m.mutex.Lock()
	m.lastSuccess = m.opts.now()
	if stats == nil || stats.Height == m.lastBlock {
		m.mutex.Unlock()
		return nil
	}

	m.lastBlock = stats.Height
	resolved := len(m.pending) > 0
	if resolved {
		m.pending = m.pending[1:]
	}
	pending := len(m.pending)
	handler := m.handler
	m.mutex.Unlock()

	logger.Infof("New block! %d", stats.Height)
	m.metrics.NewBlocks.Add(1)
	m.metrics.LedgerHeight.Set(float64(stats.Height))
	m.metrics.PendingActions.Set(float64(pending))
	if resolved {
		m.metrics.ResolvedActions.Add(1)
	}
	return handler
}

// HealthCheck fails when the monitor is running but no height check has
// succeeded within the health window
func (m *Monitor) HealthCheck(ctx context.Context) error {
	m.runMutex.Lock()
	running := m.cancel != nil
	started := m.started
	m.runMutex.Unlock()

	if !running {
		return nil
	}

	m.mutex.Lock()
	last := m.lastSuccess
	m.mutex.Unlock()

	if last.Before(started) {
		last = started
	}
	if elapsed := m.opts.now().Sub(last); elapsed > m.opts.healthWindow {
		return errors.Errorf("no successful height check for %s", elapsed.Round(time.Second))
	}
	return nil
}
