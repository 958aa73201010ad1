package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-odk-sync/internal/config"
	"github.com/MKhiriev/go-odk-sync/internal/logger"
	"github.com/MKhiriev/go-odk-sync/internal/service"
	"github.com/MKhiriev/go-odk-sync/internal/workers"
)

// ErrSyncIncomplete is returned by a one-shot run that left tables with
// conflicts, checkpoints, pending attachments or errors.
var ErrSyncIncomplete = errors.New("sync finished with unresolved tables")

// App runs the sync client.
type App struct {
	services *service.ClientServices
	workers  *workers.Workers
	logger   *logger.Logger
}

// NewApp builds the client around services. Background workers are created
// from workersCfg: a periodic sync when SyncInterval is positive and a folder
// watcher on rootDir when Watch is set. Without either, Run performs a single
// pass.
func NewApp(services *service.ClientServices, workersCfg config.ClientWorkers, rootDir string, log *logger.Logger) (*App, error) {
	if services == nil || services.SyncJob == nil {
		return nil, errors.New("client services are not initialized")
	}

	var periodic, watcher workers.Worker
	if workersCfg.SyncInterval > 0 {
		periodic = workers.NewSyncWorker(services.SyncJob, workersCfg.SyncInterval, log)
	}
	if workersCfg.Watch {
		watcher = workers.NewChangeWatcher(rootDir, services.SyncJob, workersCfg.WatchDebounce, log)
	}

	return &App{
		services: services,
		workers:  workers.New(periodic, watcher),
		logger:   log,
	}, nil
}

// Run performs the first sync pass and then runs the background workers
// until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	result, err := a.services.SyncJob.Trigger(ctx)

	if a.workers.Len() == 0 {
		if err != nil {
			return fmt.Errorf("sync: %w", err)
		}
		if result == nil || !result.Succeeded() {
			return ErrSyncIncomplete
		}
		return nil
	}

	if err != nil {
		a.logger.Err(err).Str("func", "App.Run").Msg("first sync pass failed, continuing in background")
	} else if result != nil && !result.Succeeded() {
		a.logger.Warn().Str("func", "App.Run").Str("run_id", result.RunID).Msg("first sync pass left unresolved tables")
	}

	a.logger.Info().Str("func", "App.Run").Int("workers", a.workers.Len()).Msg("running background workers")
	return a.workers.Run(ctx)
}
