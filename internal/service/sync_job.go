package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-odk-sync/internal/logger"
	"github.com/MKhiriev/go-odk-sync/models"
)

type syncJob struct {
	runner    SyncRunner
	direction models.SyncDirection
	onResult  func(*models.SyncResult)
	logger    *logger.Logger

	running atomic.Bool

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSyncJob creates a SyncJob running runner in the given direction.
// onResult, when not nil, receives the result of every completed run. The
// job is idle until Start or Trigger is called.
func NewSyncJob(runner SyncRunner, direction models.SyncDirection, onResult func(*models.SyncResult), log *logger.Logger) SyncJob {
	return &syncJob{
		runner:    runner,
		direction: direction,
		onResult:  onResult,
		logger:    log,
	}
}

// Start implements SyncJob.
func (j *syncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if _, err := j.Trigger(jobCtx); errors.Is(err, ErrSyncInProgress) {
					j.logger.Debug().Str("func", "syncJob.Start").Msg("previous sync still running, tick skipped")
				}
			}
		}
	}()
}

// Stop implements SyncJob. Safe to call when the job is not running.
func (j *syncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

// Trigger implements SyncJob.
func (j *syncJob) Trigger(ctx context.Context) (*models.SyncResult, error) {
	if !j.running.CompareAndSwap(false, true) {
		return nil, ErrSyncInProgress
	}
	defer j.running.Store(false)

	result, err := j.runner.Sync(ctx, j.direction)
	if err != nil {
		j.logger.Err(err).Str("func", "syncJob.Trigger").Msg("sync run failed")
	}
	if result != nil && j.onResult != nil {
		j.onResult(result)
	}
	return result, err
}
