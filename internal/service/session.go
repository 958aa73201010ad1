package service

import (
	"github.com/MKhiriev/go-odk-sync/internal/adapter"
	"github.com/MKhiriev/go-odk-sync/internal/config"
	"github.com/MKhiriev/go-odk-sync/internal/layout"
	"github.com/MKhiriev/go-odk-sync/internal/store"
	"github.com/MKhiriev/go-odk-sync/models"
)

// Engine limits.
const (
	DefaultMaxSyncIterations    = 5
	DefaultPushBatchSize        = 500
	DefaultAttachmentBatchBytes = 10 * 1024 * 1024
	DefaultDownloadRetries      = 3

	wideTableColumns     = 200
	wideTableFetchLimit  = 200
	defaultFetchLimit    = 2000
	attachmentQueryBatch = 500
)

// Settings tunes a sync session.
type Settings struct {
	AttachmentMode       models.AttachmentMode
	MaxSyncIterations    int
	PushBatchSize        int
	AttachmentBatchBytes int64
	DownloadRetries      int
}

// SettingsFromConfig derives engine settings from the app configuration.
func SettingsFromConfig(cfg config.ClientApp) Settings {
	return Settings{
		AttachmentMode:    cfg.AttachmentMode,
		MaxSyncIterations: cfg.MaxSyncIterations,
	}.withDefaults()
}

func (s Settings) withDefaults() Settings {
	if s.AttachmentMode == "" {
		s.AttachmentMode = models.AttachmentSync
	}
	if s.MaxSyncIterations <= 0 {
		s.MaxSyncIterations = DefaultMaxSyncIterations
	}
	if s.PushBatchSize <= 0 {
		s.PushBatchSize = DefaultPushBatchSize
	}
	if s.AttachmentBatchBytes <= 0 {
		s.AttachmentBatchBytes = DefaultAttachmentBatchBytes
	}
	if s.DownloadRetries <= 0 {
		s.DownloadRetries = DefaultDownloadRetries
	}
	return s
}

// SyncSession bundles the collaborators of one sync client. Components
// copy the capabilities they need at construction time.
type SyncSession struct {
	Synchronizer adapter.Synchronizer
	Database     store.DatabaseService
	Progress     ProgressSink
	Hasher       FileHasher
	Layout       *layout.App
	Settings     Settings
}

// NewSyncSession fills missing settings with their defaults. A nil progress
// sink is replaced by one that logs events.
func NewSyncSession(sync adapter.Synchronizer, db store.DatabaseService, hasher FileHasher, app *layout.App, progress ProgressSink, settings Settings) *SyncSession {
	if progress == nil {
		progress = NewLoggingProgressSink()
	}
	return &SyncSession{
		Synchronizer: sync,
		Database:     db,
		Progress:     progress,
		Hasher:       hasher,
		Layout:       app,
		Settings:     settings.withDefaults(),
	}
}
