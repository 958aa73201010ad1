package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-odk-sync/internal/logger"
	"github.com/MKhiriev/go-odk-sync/internal/service"
)

type syncWorker struct {
	job      service.SyncJob
	interval time.Duration
	logger   *logger.Logger
}

// NewSyncWorker runs job every interval for as long as the worker runs.
func NewSyncWorker(job service.SyncJob, interval time.Duration, log *logger.Logger) Worker {
	return &syncWorker{job: job, interval: interval, logger: log}
}

func (w *syncWorker) Run(ctx context.Context) error {
	w.logger.Info().Str("func", "syncWorker.Run").Dur("interval", w.interval).Msg("periodic sync started")

	w.job.Start(ctx, w.interval)
	<-ctx.Done()
	w.job.Stop()

	w.logger.Info().Str("func", "syncWorker.Run").Msg("periodic sync stopped")
	return ctx.Err()
}
