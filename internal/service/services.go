package service

import (
	"github.com/MKhiriev/go-odk-sync/internal/logger"
	"github.com/MKhiriev/go-odk-sync/models"
)

// ClientServices groups the sync services of the client.
type ClientServices struct {
	Session    *SyncSession
	Reconciler *SchemaReconciler
	SyncJob    SyncJob
}

// NewClientServices wires the sync engine around session. onResult receives
// the result of every run started through the job.
func NewClientServices(session *SyncSession, direction models.SyncDirection, onResult func(*models.SyncResult), log *logger.Logger) *ClientServices {
	reconciler := NewSchemaReconciler(session, log)
	return &ClientServices{
		Session:    session,
		Reconciler: reconciler,
		SyncJob:    NewSyncJob(reconciler, direction, onResult, log),
	}
}
