// Package scheduler drives the reconciliation engine with gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"chatwarden/internal/shared/logger"
)

// CycleJob is one reconciliation pass. Execute returns the number of chats
// processed.
type CycleJob interface {
	Execute(ctx context.Context) (int, error)
}

// Manager owns the gocron scheduler. The reconciliation job runs in
// singleton mode with rescheduling, so a slow cycle is never overlapped by
// the next tick; it is skipped and the interval restarts.
type Manager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.Mutex
}

// NewManager creates a new scheduler manager.
func NewManager(log logger.Interface) (*Manager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
	)
	if err != nil {
		return nil, err
	}

	return &Manager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// RegisterReconciliationJob registers the periodic sweep. The first run
// starts immediately; cancellation is checked between cycles, never
// mid-pass.
func (m *Manager) RegisterReconciliationJob(ctx context.Context, job CycleJob, interval time.Duration) error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				return
			}

			started := time.Now()
			processed, err := job.Execute(ctx)
			if err != nil {
				m.logger.Errorw("reconciliation cycle failed",
					"error", err,
					"duration", time.Since(started))
				return
			}
			m.logger.Debugw("reconciliation cycle finished",
				"chats_processed", processed,
				"duration", time.Since(started))
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName("reconciliation-cycle"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered reconciliation job", "interval", interval)
	return nil
}

// Start begins executing registered jobs.
func (m *Manager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}
	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler started")
}

// Stop shuts the scheduler down, waiting for a running cycle to finish.
func (m *Manager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}
	m.started = false

	if err := m.scheduler.Shutdown(); err != nil {
		m.logger.Errorw("scheduler shutdown failed", "error", err)
		return err
	}
	m.logger.Infow("scheduler stopped")
	return nil
}
