package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/MKhiriev/go-odk-sync/internal/adapter"
	"github.com/MKhiriev/go-odk-sync/internal/layout"
	"github.com/MKhiriev/go-odk-sync/internal/logger"
	"github.com/MKhiriev/go-odk-sync/internal/store"
	"github.com/MKhiriev/go-odk-sync/internal/utils"
	"github.com/MKhiriev/go-odk-sync/internal/validators"
	"github.com/MKhiriev/go-odk-sync/models"
)

// ManifestReconciler keeps the app and table configuration folders in step
// with the server manifests.
type ManifestReconciler struct {
	sync      adapter.Synchronizer
	db        store.DatabaseService
	layout    *layout.App
	hasher    FileHasher
	progress  ProgressSink
	validator validators.Validator
	retries   int
}

// NewManifestReconciler builds a ManifestReconciler from the session.
func NewManifestReconciler(s *SyncSession) *ManifestReconciler {
	return &ManifestReconciler{
		sync:      s.Synchronizer,
		db:        s.Database,
		layout:    s.Layout,
		hasher:    s.Hasher,
		progress:  s.Progress,
		validator: validators.NewServerResponseValidator(),
		retries:   s.Settings.DownloadRetries,
	}
}

// manifestScope is the app folder (tableID "") or one table's folders.
type manifestScope struct {
	tableID string
	phase   models.ProgressPhase
	fetch   func(lastKnownETag string) (*models.FileManifestDocument, error)
	files   func() ([]string, error)
}

// SyncAppLevelFiles reconciles the app level configuration files. When
// push is set the device copy wins, otherwise the server copy does.
func (m *ManifestReconciler) SyncAppLevelFiles(ctx context.Context, push bool, serverETag string) error {
	return m.reconcile(ctx, manifestScope{
		phase: models.PhaseAppFiles,
		fetch: func(lastKnownETag string) (*models.FileManifestDocument, error) {
			return m.sync.GetAppLevelFileManifest(ctx, lastKnownETag, serverETag, push)
		},
		files: m.layout.AppLevelFiles,
	}, push)
}

// SyncTableLevelFiles reconciles the configuration files of one table.
func (m *ManifestReconciler) SyncTableLevelFiles(ctx context.Context, tableID, serverETag string, push bool) error {
	return m.reconcile(ctx, manifestScope{
		tableID: tableID,
		phase:   models.PhaseTableFiles,
		fetch: func(lastKnownETag string) (*models.FileManifestDocument, error) {
			return m.sync.GetTableLevelFileManifest(ctx, tableID, lastKnownETag, serverETag, push)
		},
		files: func() ([]string, error) {
			return m.layout.TableLevelFiles(tableID)
		},
	}, push)
}

func (m *ManifestReconciler) reconcile(ctx context.Context, scope manifestScope, push bool) error {
	log := logger.FromContext(ctx)
	uri := m.sync.ManifestURI(scope.tableID)

	lastKnown, err := m.db.ManifestSyncETag(ctx, uri, scope.tableID)
	if err != nil {
		return fmt.Errorf("reading manifest etag: %w", err)
	}

	doc, err := scope.fetch(lastKnown)
	if err != nil {
		return fmt.Errorf("fetching manifest: %w", err)
	}
	if doc == nil {
		log.Debug().Str("func", "ManifestReconciler.reconcile").Str("table_id", scope.tableID).
			Msg("manifest not modified, skipping")
		m.progress.Report(ctx, progressStep(scope.phase, scope.tableID, "manifest not modified", 1, 1))
		return nil
	}
	if err = m.validator.Validate(ctx, doc); err != nil {
		return protocolError("manifest", err)
	}
	if scope.tableID == "" && !push && len(doc.Entries) == 0 {
		return ErrMissingConfigForClientVersion
	}

	local, err := scope.files()
	if err != nil {
		return fmt.Errorf("listing local config files: %w", err)
	}

	var fullMatch bool
	if push {
		fullMatch, err = m.pushFiles(ctx, scope, doc, local)
	} else {
		fullMatch, err = m.pullFiles(ctx, scope, doc, local)
	}
	if err != nil {
		return err
	}

	if fullMatch {
		if err = m.db.UpdateManifestSyncETag(ctx, uri, scope.tableID, doc.ETag); err != nil {
			// The next run re-diffs the manifest; nothing is lost.
			log.Err(err).Str("func", "ManifestReconciler.reconcile").Msg("error storing manifest etag")
		}
	}
	return nil
}

// pushFiles makes the server manifest match the local files.
func (m *ManifestReconciler) pushFiles(ctx context.Context, scope manifestScope, doc *models.FileManifestDocument, local []string) (bool, error) {
	pending := make(map[string]struct{}, len(local))
	for _, name := range local {
		pending[name] = struct{}{}
	}

	var serverDeletes []string
	for _, entry := range doc.Entries {
		name := layout.NormalizeName(entry.Filename)
		if _, ok := pending[name]; !ok {
			serverDeletes = append(serverDeletes, name)
			continue
		}
		abs, err := m.layout.ConfigFile(name)
		if err != nil {
			return false, protocolError("manifest", err)
		}
		hash, err := m.hasher.Hash(abs)
		if err != nil {
			return false, fmt.Errorf("hashing %s: %w", name, err)
		}
		if utils.SameHash(hash, entry.MD5Hash) {
			delete(pending, name)
		}
	}

	uploads := make([]string, 0, len(pending))
	for name := range pending {
		uploads = append(uploads, name)
	}
	sort.Strings(uploads)

	total := len(uploads) + len(serverDeletes)
	step := 0
	for _, name := range uploads {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		abs, err := m.layout.ConfigFile(name)
		if err != nil {
			return false, err
		}
		if err = m.sync.UploadConfigFile(ctx, name, abs); err != nil {
			return false, fmt.Errorf("uploading %s: %w", name, err)
		}
		step++
		m.progress.Report(ctx, progressStep(scope.phase, scope.tableID, "uploaded "+name, step, total))
	}
	for _, name := range serverDeletes {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		if err := m.sync.DeleteConfigFile(ctx, name); err != nil {
			return false, fmt.Errorf("deleting server file %s: %w", name, err)
		}
		step++
		m.progress.Report(ctx, progressStep(scope.phase, scope.tableID, "deleted server file "+name, step, total))
	}
	return true, nil
}

// pullFiles makes the local files match the server manifest. It reports
// false when a stale local file could not be removed.
func (m *ManifestReconciler) pullFiles(ctx context.Context, scope manifestScope, doc *models.FileManifestDocument, local []string) (bool, error) {
	log := logger.FromContext(ctx)

	stale := make(map[string]struct{}, len(local))
	for _, name := range local {
		stale[name] = struct{}{}
	}

	total := len(doc.Entries) + len(local)
	step := 0
	for _, entry := range doc.Entries {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		name := layout.NormalizeName(entry.Filename)
		abs, err := m.layout.ConfigFile(name)
		if err != nil {
			return false, protocolError("manifest", err)
		}
		changed, err := m.compareAndDownload(ctx, scope.tableID, entry, abs)
		if err != nil {
			return false, fmt.Errorf("syncing %s: %w", name, err)
		}
		delete(stale, name)
		step++
		msg := "verified " + name
		if changed {
			msg = "downloaded " + name
		}
		m.progress.Report(ctx, progressStep(scope.phase, scope.tableID, msg, step, total))
	}

	removals := make([]string, 0, len(stale))
	for name := range stale {
		removals = append(removals, name)
	}
	sort.Strings(removals)

	fullMatch := true
	for _, name := range removals {
		abs, err := m.layout.ConfigFile(name)
		if err == nil {
			err = os.Remove(abs)
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Err(err).Str("func", "ManifestReconciler.pullFiles").Str("file", name).
				Msg("unable to delete local config file")
			fullMatch = false
		}
		step++
		m.progress.Report(ctx, progressStep(scope.phase, scope.tableID, "removed "+name, step, total))
	}
	return fullMatch, nil
}

// compareAndDownload fetches entry into abs unless the local file already
// has the server's content. It reports whether the file was replaced.
func (m *ManifestReconciler) compareAndDownload(ctx context.Context, tableID string, entry models.FileManifestEntry, abs string) (bool, error) {
	if entry.ContentLength == 0 {
		return false, fmt.Errorf("%w: %s", ErrIncompleteServerConfigFileBodyMissing, entry.Filename)
	}
	if entry.DownloadURL == "" {
		return false, protocolError("manifest", fmt.Errorf("no download url for %s", entry.Filename))
	}

	info, err := os.Stat(abs)
	if errors.Is(err, os.ErrNotExist) {
		return true, m.download(ctx, tableID, entry, abs)
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", abs, err)
	}
	if info.IsDir() {
		return false, fmt.Errorf("%w: %s is a directory", ErrIllegalState, abs)
	}

	modifiedAt := info.ModTime().UnixMilli()
	known, err := m.db.FileSyncETag(ctx, entry.DownloadURL, tableID, modifiedAt)
	if err != nil {
		return false, fmt.Errorf("reading file etag: %w", err)
	}

	hash := known
	if hash == "" {
		if hash, err = m.hasher.Hash(abs); err != nil {
			return false, fmt.Errorf("hashing %s: %w", abs, err)
		}
	}

	if !utils.SameHash(hash, entry.MD5Hash) {
		return true, m.download(ctx, tableID, entry, abs)
	}
	if known == "" {
		if err = m.db.UpdateFileSyncETag(ctx, entry.DownloadURL, tableID, modifiedAt, hash); err != nil {
			return false, fmt.Errorf("storing file etag: %w", err)
		}
	}
	return false, nil
}

// download fetches entry into abs, retrying while the received content does
// not match the manifest hash.
func (m *ManifestReconciler) download(ctx context.Context, tableID string, entry models.FileManifestEntry, abs string) error {
	log := logger.FromContext(ctx)

	var hash string
	for attempt := 1; attempt <= m.retries; attempt++ {
		if err := m.sync.DownloadFile(ctx, abs, entry.DownloadURL); err != nil {
			return err
		}

		var err error
		if hash, err = m.hasher.Hash(abs); err != nil {
			return fmt.Errorf("hashing %s: %w", abs, err)
		}
		if utils.SameHash(hash, entry.MD5Hash) {
			info, err := os.Stat(abs)
			if err != nil {
				return fmt.Errorf("stat %s: %w", abs, err)
			}
			if err = m.db.UpdateFileSyncETag(ctx, entry.DownloadURL, tableID, info.ModTime().UnixMilli(), hash); err != nil {
				return fmt.Errorf("storing file etag: %w", err)
			}
			return nil
		}

		log.Warn().Str("func", "ManifestReconciler.download").Str("file", entry.Filename).
			Int("attempt", attempt).Str("expected", entry.MD5Hash).Str("received", hash).
			Msg("downloaded file does not match manifest hash")
	}

	return fmt.Errorf("%w: %s still differs from manifest after %d downloads", adapter.ErrNetworkTransmission, entry.Filename, m.retries)
}
