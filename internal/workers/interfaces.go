// Package workers runs the long-lived background tasks of the sync client:
// the periodic sync job and the file watcher that triggers a sync pass when
// the application folder changes.
//
// Every [Worker] runs under one errgroup; the first failure cancels the
// others.
package workers

import (
	"context"

	"github.com/MKhiriev/go-odk-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/workers_mock.go -package=mock

// Worker is the interface that must be implemented by any background worker.
// Run blocks until ctx is cancelled or the worker fails.
type Worker interface {
	Run(ctx context.Context) error
}

// Trigger starts one sync pass. It is satisfied by service.SyncJob.
type Trigger interface {
	Trigger(ctx context.Context) (*models.SyncResult, error)
}
