// Package service implements the ODK sync engine.
//
// A sync run is driven by [SchemaReconciler]: it verifies the server,
// reconciles app and table configuration files through [ManifestReconciler]
// and then, per table, loops [RowPullEngine] and [RowPushEngine] until the
// data epoch settles before handing rows with pending files to
// [AttachmentSyncEngine]. Every component is built from a [SyncSession] and
// only keeps the capabilities it uses.
package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-odk-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// ProgressSink receives incremental progress events of a sync run.
type ProgressSink interface {
	Report(ctx context.Context, event models.ProgressEvent)
}

// FileHasher returns the "md5:<hex>" digest of a local file.
type FileHasher interface {
	Hash(path string) (string, error)
}

// SyncRunner performs one complete sync run.
type SyncRunner interface {
	Sync(ctx context.Context, direction models.SyncDirection) (*models.SyncResult, error)
}

// SyncJob runs a SyncRunner on demand and on a schedule, never more than
// one run at a time.
type SyncJob interface {
	// Start launches periodic runs every interval (5 minutes when not
	// positive), stopping any previous schedule first.
	Start(ctx context.Context, interval time.Duration)

	// Stop cancels the schedule and waits for its goroutine to exit.
	Stop()

	// Trigger runs a sync immediately. It returns ErrSyncInProgress when a
	// run is already active.
	Trigger(ctx context.Context) (*models.SyncResult, error)
}
