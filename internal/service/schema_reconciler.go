// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/MKhiriev/go-odk-sync/internal/adapter"
	"github.com/MKhiriev/go-odk-sync/internal/logger"
	"github.com/MKhiriev/go-odk-sync/internal/store"
	"github.com/MKhiriev/go-odk-sync/internal/utils"
	"github.com/MKhiriev/go-odk-sync/internal/validators"
	"github.com/MKhiriev/go-odk-sync/models"
)

const anonymousUser = "anonymous"

// SchemaReconciler drives a complete sync run: server verification, app and
// table configuration, then row and attachment sync table by table.
type SchemaReconciler struct {
	sync      adapter.Synchronizer
	db        store.DatabaseService
	progress  ProgressSink
	validator validators.Validator
	settings  Settings

	manifests   *ManifestReconciler
	attachments *AttachmentSyncEngine
	pull        *RowPullEngine
	push        *RowPushEngine

	runIDs *utils.UUIDGenerator
	now    func() time.Time
	logger *logger.Logger
}

// NewSchemaReconciler wires every engine of the session.
func NewSchemaReconciler(s *SyncSession, log *logger.Logger) *SchemaReconciler {
	attachments := NewAttachmentSyncEngine(s)
	return &SchemaReconciler{
		sync:        s.Synchronizer,
		db:          s.Database,
		progress:    s.Progress,
		validator:   validators.NewServerResponseValidator(),
		settings:    s.Settings,
		manifests:   NewManifestReconciler(s),
		attachments: attachments,
		pull:        NewRowPullEngine(s, NewConflictResolver(), attachments),
		push:        NewRowPushEngine(s),
		runIDs:      utils.NewUUIDGenerator(),
		now:         time.Now,
		logger:      log,
	}
}

// Sync runs one sync pass in the given direction. The returned result is
// never nil; the error is the app level failure, if any. Table failures
// are only recorded in the result.
func (s *SchemaReconciler) Sync(ctx context.Context, direction models.SyncDirection) (*models.SyncResult, error) {
	runID := s.runIDs.Generate()
	log := s.logger.ForRun(runID)
	ctx = log.WithContext(utils.WithRunID(ctx, runID))

	result := models.NewSyncResult(runID, s.now())
	defer func() { result.FinishedAt = s.now() }()

	log.Info().Str("func", "SchemaReconciler.Sync").Str("direction", string(direction)).Msg("sync started")
	s.progress.Report(ctx, progressStep(models.PhaseStarting, "", "sync started", 0, -1))

	tables, err := s.synchronizeConfiguration(ctx, direction.Pushes(), result)
	if err != nil {
		result.AppLevelOutcome = OutcomeFor(err)
		result.AppLevelMessage = err.Error()
		log.Err(err).Str("func", "SchemaReconciler.Sync").Str("outcome", string(result.AppLevelOutcome)).
			Msg("app level sync failed")
		s.progress.Report(ctx, progressStep(models.PhaseDone, "", "sync failed", 1, 1))
		return result, err
	}

	for i, table := range tables {
		if err = ctx.Err(); err != nil {
			result.AppLevelOutcome = OutcomeFor(err)
			result.AppLevelMessage = err.Error()
			return result, err
		}
		s.syncTableRows(ctx, table, result.Table(table.TableID))
		s.progress.Report(ctx, progressStep(models.PhaseRows, table.TableID, "table done", i+1, len(tables)))
	}

	log.Info().Str("func", "SchemaReconciler.Sync").Bool("succeeded", result.Succeeded()).Msg("sync finished")
	s.progress.Report(ctx, progressStep(models.PhaseDone, "", "sync finished", 1, 1))
	return result, nil
}

// synchronizeConfiguration verifies the server and reconciles app and table
// configuration. It returns the server resources of the tables ready for
// row sync, sorted by table id.
func (s *SchemaReconciler) synchronizeConfiguration(ctx context.Context, push bool, result *models.SyncResult) ([]models.TableResource, error) {
	log := logger.FromContext(ctx)

	if err := s.sync.VerifyServerSupportsAppName(ctx); err != nil {
		return nil, fmt.Errorf("verifying server: %w", err)
	}
	privileges, err := s.sync.GetUserRolesAndDefaultGroup(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading user privileges: %w", err)
	}
	if privileges == nil {
		log.Info().Str("func", "SchemaReconciler.synchronizeConfiguration").Msg("no privileges reported, syncing as anonymous user")
		privileges = &models.PrivilegesInfo{UserID: anonymousUser}
	}
	result.Privileges = privileges

	serverTables, appManifestETag, err := s.listServerTables(ctx)
	if err != nil {
		return nil, err
	}
	localIDs, err := s.db.TableIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing local tables: %w", err)
	}

	if push && len(localIDs) == 0 {
		return nil, ErrNoLocalTablesToReset
	}
	if !push && len(serverTables) == 0 {
		return nil, ErrNoTablesOnServer
	}

	if err = s.manifests.SyncAppLevelFiles(ctx, push, appManifestETag); err != nil {
		return nil, fmt.Errorf("syncing app level files: %w", err)
	}
	result.AppLevelOutcome = models.SyncSuccess

	var ready []models.TableResource
	if push {
		ready = s.pushTableConfiguration(ctx, localIDs, serverTables, result)
	} else {
		ready = s.pullTableConfiguration(ctx, localIDs, serverTables, result)
	}
	sort.Slice(ready, func(i, j int) bool { return ready[i].TableID < ready[j].TableID })
	return ready, nil
}

func (s *SchemaReconciler) listServerTables(ctx context.Context) ([]models.TableResource, string, error) {
	var (
		tables   []models.TableResource
		cursor   string
		manifest string
	)
	for {
		page, err := s.sync.GetTables(ctx, cursor)
		if err != nil {
			return nil, "", fmt.Errorf("listing server tables: %w", err)
		}
		tables = append(tables, page.Tables...)
		if page.AppLevelManifestETag != "" {
			manifest = page.AppLevelManifestETag
		}
		if !page.HasMoreResults {
			return tables, manifest, nil
		}
		if page.WebSafeResumeCursor == "" || page.WebSafeResumeCursor == cursor {
			return nil, "", protocolError("table list", validators.ErrMissingCursor)
		}
		cursor = page.WebSafeResumeCursor
	}
}

// pushTableConfiguration makes the server match the local tables: missing
// tables are created, extra server tables are deleted and table files are
// pushed.
func (s *SchemaReconciler) pushTableConfiguration(ctx context.Context, localIDs []string, serverTables []models.TableResource, result *models.SyncResult) []models.TableResource {
	log := logger.FromContext(ctx)

	byID := make(map[string]models.TableResource, len(serverTables))
	for _, t := range serverTables {
		byID[t.TableID] = t
	}

	var ready []models.TableResource
	for i, tableID := range localIDs {
		tableResult := result.Table(tableID)
		ctx := logger.FromContext(ctx).ForTable(tableID).WithContext(ctx)

		var resource *models.TableResource
		if t, ok := byID[tableID]; ok {
			resource = &t
			delete(byID, tableID)
		}

		updated, err := s.synchronizeTable(ctx, tableID, resource, true, tableResult)
		if err != nil {
			s.failTable(ctx, tableResult, err)
		} else {
			ready = append(ready, updated)
		}
		s.progress.Report(ctx, progressStep(models.PhaseTableFiles, tableID, "table configuration pushed", i+1, len(localIDs)))
	}

	extra := make([]string, 0, len(byID))
	for id := range byID {
		extra = append(extra, id)
	}
	sort.Strings(extra)
	for _, id := range extra {
		tableResult := result.Table(id)
		if err := s.sync.DeleteTable(ctx, byID[id]); err != nil {
			s.failTable(ctx, tableResult, fmt.Errorf("deleting server table: %w", err))
			continue
		}
		log.Info().Str("func", "SchemaReconciler.pushTableConfiguration").Str("table_id", id).
			Msg("deleted server table missing on device")
		tableResult.Outcome = models.SyncSuccess
	}
	return ready
}

// pullTableConfiguration makes the local tables match the server: missing
// tables are created from the server definition, matching ones adopt the
// server schema epoch, tables gone from the server are deleted locally.
func (s *SchemaReconciler) pullTableConfiguration(ctx context.Context, localIDs []string, serverTables []models.TableResource, result *models.SyncResult) []models.TableResource {
	log := logger.FromContext(ctx)

	local := make(map[string]struct{}, len(localIDs))
	for _, id := range localIDs {
		local[id] = struct{}{}
	}

	var ready []models.TableResource
	for i, table := range serverTables {
		tableResult := result.Table(table.TableID)
		ctx := logger.FromContext(ctx).ForTable(table.TableID).WithContext(ctx)

		_, exists := local[table.TableID]
		delete(local, table.TableID)

		if !exists {
			if err := s.createLocalTable(ctx, table, tableResult); err != nil {
				s.failTable(ctx, tableResult, err)
				continue
			}
		}

		resource := table
		updated, err := s.synchronizeTable(ctx, table.TableID, &resource, false, tableResult)
		if err != nil {
			s.failTable(ctx, tableResult, err)
		} else {
			ready = append(ready, updated)
		}
		s.progress.Report(ctx, progressStep(models.PhaseTableFiles, table.TableID, "table configuration pulled", i+1, len(serverTables)))
	}

	stale := make([]string, 0, len(local))
	for id := range local {
		stale = append(stale, id)
	}
	sort.Strings(stale)
	for _, id := range stale {
		tableResult := result.Table(id)
		if err := s.db.DeleteTable(ctx, id); err != nil {
			s.failTable(ctx, tableResult, fmt.Errorf("deleting local table: %w", err))
			continue
		}
		log.Info().Str("func", "SchemaReconciler.pullTableConfiguration").Str("table_id", id).
			Msg("deleted local table missing on server")
		tableResult.Outcome = models.SyncSuccess
	}
	return ready
}

// createLocalTable creates a table known only to the server.
func (s *SchemaReconciler) createLocalTable(ctx context.Context, table models.TableResource, result *models.TableLevelResult) error {
	def, err := s.tableDefinition(ctx, table)
	if err != nil {
		return err
	}
	if err = s.db.CreateTable(ctx, table.TableID, def.Columns); err != nil {
		return fmt.Errorf("creating local table: %w", err)
	}
	if err = s.db.ServerTableSchemaETagChanged(ctx, table.TableID, def.SchemaETag, ""); err != nil {
		return fmt.Errorf("adopting schema etag: %w", err)
	}
	result.ServerHadSchemaChanges = true
	return nil
}

// synchronizeTable brings the schema epoch of one existing local table in
// line with the server and reconciles its configuration files. A nil
// resource means the table is missing on the server, which only happens
// when pushing.
func (s *SchemaReconciler) synchronizeTable(ctx context.Context, tableID string, resource *models.TableResource, push bool, result *models.TableLevelResult) (models.TableResource, error) {
	entry, err := s.db.TableDefinitionEntry(ctx, tableID)
	if err != nil {
		return models.TableResource{}, fmt.Errorf("reading table definition: %w", err)
	}
	columns, err := s.db.Columns(ctx, tableID)
	if err != nil {
		return models.TableResource{}, fmt.Errorf("reading columns: %w", err)
	}

	if resource == nil {
		if !push {
			return models.TableResource{}, fmt.Errorf("%w: table %s missing on server", ErrIllegalState, tableID)
		}
		if err = s.db.DeleteSyncETagsForTable(ctx, tableID); err != nil {
			return models.TableResource{}, fmt.Errorf("purging sync etags: %w", err)
		}
		created, err := s.sync.CreateTable(ctx, tableID, entry.SchemaETag, columns)
		if err != nil {
			return models.TableResource{}, fmt.Errorf("creating server table: %w", err)
		}
		if err = s.db.UpdateTableETags(ctx, tableID, created.SchemaETag, ""); err != nil {
			return models.TableResource{}, fmt.Errorf("storing schema etag: %w", err)
		}
		entry.SchemaETag = created.SchemaETag
		resource = &created
	}

	if resource.SchemaETag != entry.SchemaETag {
		result.ServerHadSchemaChanges = true
		def, err := s.tableDefinition(ctx, *resource)
		if err != nil {
			return models.TableResource{}, err
		}
		if err = sameColumns(columns, def.Columns); err != nil {
			return models.TableResource{}, err
		}
		stale := ""
		if entry.SchemaETag != "" {
			stale = s.sync.InstanceFilesURI(tableID, entry.SchemaETag)
		}
		if err = s.db.ServerTableSchemaETagChanged(ctx, tableID, def.SchemaETag, stale); err != nil {
			return models.TableResource{}, fmt.Errorf("adopting schema etag: %w", err)
		}
	}

	if err = s.manifests.SyncTableLevelFiles(ctx, tableID, resource.TableLevelManifestETag, push); err != nil {
		return models.TableResource{}, fmt.Errorf("syncing table level files: %w", err)
	}
	return *resource, nil
}

func (s *SchemaReconciler) tableDefinition(ctx context.Context, table models.TableResource) (models.TableDefinitionResource, error) {
	def, err := s.sync.GetTableDefinition(ctx, table.DefinitionURI)
	if err != nil {
		return models.TableDefinitionResource{}, fmt.Errorf("fetching table definition: %w", err)
	}
	if err = s.validator.Validate(ctx, def); err != nil {
		return models.TableDefinitionResource{}, protocolError("table definition", err)
	}
	if def.TableID != table.TableID {
		return models.TableDefinitionResource{}, protocolError("table definition",
			fmt.Errorf("definition of %q returned for %q", def.TableID, table.TableID))
	}
	if def.SchemaETag == "" {
		def.SchemaETag = table.SchemaETag
	}
	return def, nil
}

// sameColumns compares local and server column definitions position by
// position.
func sameColumns(local, server models.OrderedColumns) error {
	if len(local) != len(server) {
		return fmt.Errorf("%w: %d local columns, %d on server", ErrSchemaMismatch, len(local), len(server))
	}
	for i := range local {
		if local[i] != server[i] {
			return fmt.Errorf("%w: column %d is %q locally and %q on server", ErrSchemaMismatch, i, local[i].ElementKey, server[i].ElementKey)
		}
	}
	return nil
}

// syncTableRows loops pull and push until the server stops requiring a
// re-pull, then settles attachments and derives the table outcome.
func (s *SchemaReconciler) syncTableRows(ctx context.Context, table models.TableResource, result *models.TableLevelResult) {
	log := logger.FromContext(ctx).ForTable(table.TableID)
	ctx = log.WithContext(ctx)

	if result.Outcome.IsTerminal() {
		return
	}

	columns, err := s.db.Columns(ctx, table.TableID)
	if err != nil {
		s.failTable(ctx, result, fmt.Errorf("reading columns: %w", err))
		return
	}

	attachmentOutcome := models.SyncSuccess
	for iteration := 1; ; iteration++ {
		if iteration > s.settings.MaxSyncIterations {
			s.failTable(ctx, result, ErrTooManySyncIterations)
			return
		}
		if err = ctx.Err(); err != nil {
			s.failTable(ctx, result, err)
			return
		}

		current, err := s.sync.GetTable(ctx, table.TableID)
		if err != nil {
			s.failTable(ctx, result, fmt.Errorf("refreshing table: %w", err))
			return
		}
		entry, err := s.db.TableDefinitionEntry(ctx, table.TableID)
		if err != nil {
			s.failTable(ctx, result, fmt.Errorf("reading table definition: %w", err))
			return
		}
		if current == nil || current.SchemaETag != entry.SchemaETag {
			result.ServerHadSchemaChanges = true
			result.Fail(models.SyncTableRequiresAppLevelSync, "server schema changed, app level sync required")
			log.Warn().Str("func", "SchemaReconciler.syncTableRows").Msg("schema etag changed on server")
			return
		}

		table = *current
		table.DataETag = entry.LastDataETag

		if err = s.pull.Pull(ctx, &table, entry, columns, result); err != nil {
			s.failTable(ctx, result, fmt.Errorf("pulling rows: %w", err))
			return
		}
		if result.Outcome.IsTerminal() {
			break
		}

		mustRepull, err := s.push.Push(ctx, &table, columns, result)
		if err != nil {
			s.failTable(ctx, result, fmt.Errorf("pushing rows: %w", err))
			return
		}
		if mustRepull {
			log.Debug().Str("func", "SchemaReconciler.syncTableRows").Int("iteration", iteration).Msg("re-pulling")
			continue
		}

		attachmentOutcome, err = s.attachments.SyncTableAttachments(ctx, table, columns, s.settings.AttachmentMode, result)
		if err != nil {
			log.Err(err).Str("func", "SchemaReconciler.syncTableRows").Msg("attachment sync incomplete")
		}
		break
	}

	counts, err := s.db.RowCounts(ctx, table.TableID)
	if err != nil {
		s.failTable(ctx, result, fmt.Errorf("counting rows: %w", err))
		return
	}

	switch {
	case counts.Checkpoints > 0:
		result.Fail(models.SyncTableContainsCheckpoints, "table contains checkpoint rows")
	case counts.Conflicts > 0:
		result.Fail(models.SyncTableContainsConflicts, "table contains conflicting rows")
	case attachmentOutcome != models.SyncSuccess:
		result.Fail(attachmentOutcome, "attachments are not fully synchronized")
	default:
		result.Fail(models.SyncSuccess, "")
	}

	status := result.Status(counts.Rows, counts.Checkpoints, counts.Conflicts/2)
	if err = s.sync.PublishTableSyncStatus(ctx, table, status); err != nil {
		log.Err(err).Str("func", "SchemaReconciler.syncTableRows").Msg("unable to publish table sync status")
	}
}

func (s *SchemaReconciler) failTable(ctx context.Context, result *models.TableLevelResult, err error) {
	outcome := OutcomeFor(err)
	logger.FromContext(ctx).Err(err).Str("func", "SchemaReconciler.failTable").Str("table_id", result.TableID).
		Str("outcome", string(outcome)).Msg("table sync failed")
	result.Fail(outcome, err.Error())
}
