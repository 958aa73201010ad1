package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-odk-sync/internal/adapter"
	"github.com/MKhiriev/go-odk-sync/internal/logger"
	"github.com/MKhiriev/go-odk-sync/internal/store"
	"github.com/MKhiriev/go-odk-sync/internal/validators"
	"github.com/MKhiriev/go-odk-sync/models"
)

// RowPullEngine merges server row changes into the local replica.
type RowPullEngine struct {
	sync        adapter.Synchronizer
	db          store.DatabaseService
	progress    ProgressSink
	resolver    *ConflictResolver
	attachments *AttachmentSyncEngine
	validator   validators.Validator
	maxRestarts int
}

// NewRowPullEngine builds a RowPullEngine. attachments is used to push the
// files of rows the server deleted before they are removed locally.
func NewRowPullEngine(s *SyncSession, resolver *ConflictResolver, attachments *AttachmentSyncEngine) *RowPullEngine {
	return &RowPullEngine{
		sync:        s.Synchronizer,
		db:          s.Database,
		progress:    s.Progress,
		resolver:    resolver,
		attachments: attachments,
		validator:   validators.NewServerResponseValidator(),
		maxRestarts: s.Settings.MaxSyncIterations,
	}
}

// Pull applies every server change committed after entry.LastDataETag. On
// success the final data epoch is stored locally and copied into
// table.DataETag. Pagination restarts from scratch whenever the server's
// epoch moves while pages are being read.
//
// A table holding checkpoint rows touched by the changes is marked
// TABLE_CONTAINS_CHECKPOINTS in result and left unchanged.
func (p *RowPullEngine) Pull(ctx context.Context, table *models.TableResource, entry models.TableDefinitionEntry, columns models.OrderedColumns, result *models.TableLevelResult) error {
	log := logger.FromContext(ctx)

	fetchLimit := defaultFetchLimit
	if len(columns) > wideTableColumns {
		fetchLimit = wideTableFetchLimit
	}

	var (
		cursor        string
		firstDataETag string
		lastDataETag  string
		restarts      int
		applied       int
	)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		page, err := p.sync.GetUpdates(ctx, *table, entry.LastDataETag, cursor, fetchLimit)
		if err != nil {
			return fmt.Errorf("fetching row changes: %w", err)
		}
		if err = p.validator.Validate(ctx, page, validators.FieldCursor, validators.FieldRowIDs); err != nil {
			return protocolError("row page", err)
		}
		if cursor == "" {
			firstDataETag = page.DataETag
		}

		stop, err := p.applyPage(ctx, table, columns, page.Rows, result)
		if err != nil {
			return err
		}
		if stop {
			return nil
		}
		applied += len(page.Rows)
		p.progress.Report(ctx, progressStep(models.PhaseRows, table.TableID, "pulled server changes", applied, -1))

		lastDataETag = page.DataETag
		if lastDataETag == "" {
			break
		}
		if lastDataETag != firstDataETag {
			restarts++
			if restarts > p.maxRestarts {
				return ErrTooManySyncIterations
			}
			log.Info().Str("func", "RowPullEngine.Pull").Str("first", firstDataETag).Str("last", lastDataETag).
				Msg("server data changed while paging, restarting pull")
			cursor = ""
			continue
		}
		if !page.HasMoreResults {
			break
		}
		cursor = page.WebSafeResumeCursor
	}

	if lastDataETag == "" {
		return nil
	}
	if err := p.db.UpdateTableETags(ctx, table.TableID, table.SchemaETag, lastDataETag); err != nil {
		return fmt.Errorf("storing data etag: %w", err)
	}
	table.DataETag = lastDataETag
	result.PulledServerData = true
	return nil
}

// applyPage merges one page of server rows, in server order. It reports
// stop when the page touches checkpoint rows.
func (p *RowPullEngine) applyPage(ctx context.Context, table *models.TableResource, columns models.OrderedColumns, rows []models.ServerRow, result *models.TableLevelResult) (bool, error) {
	if len(rows) == 0 {
		return false, nil
	}

	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.RowID)
	}
	stored, err := p.db.RowsByID(ctx, table.TableID, columns, ids...)
	if err != nil {
		return false, fmt.Errorf("loading local rows: %w", err)
	}

	byID := make(map[string][]models.Row, len(stored))
	for _, r := range stored {
		if r.IsCheckpoint() {
			result.Fail(models.SyncTableContainsCheckpoints, "checkpoint rows must be finalized before sync")
			return true, nil
		}
		byID[r.ID] = append(byID[r.ID], r)
	}

	result.ServerHadDataChanges = true
	for _, server := range rows {
		if err = ctx.Err(); err != nil {
			return false, err
		}

		action, err := p.resolver.Resolve(byID[server.RowID], server, columns)
		if err != nil {
			return false, err
		}
		if err = p.apply(ctx, table, columns, server, action, result); err != nil {
			return false, fmt.Errorf("applying row %s (%s): %w", server.RowID, action.Kind, err)
		}
	}
	return false, nil
}

func (p *RowPullEngine) apply(ctx context.Context, table *models.TableResource, columns models.OrderedColumns, server models.ServerRow, action Action, result *models.TableLevelResult) error {
	log := logger.FromContext(ctx)

	switch action.Kind {
	case ActionIgnore:
		return nil

	case ActionInsert:
		if err := p.db.InsertRow(ctx, table.TableID, columns, action.Row); err != nil {
			return err
		}
		result.LocalInserts++

	case ActionUpdate:
		if _, ok := action.Local.State.(models.InConflict); ok {
			if err := p.db.DeleteServerConflictRow(ctx, table.TableID, action.Local.ID); err != nil {
				return err
			}
		}
		if err := p.db.UpdateRow(ctx, table.TableID, columns, action.Row); err != nil {
			return err
		}
		result.LocalUpdates++

	case ActionDelete:
		if err := p.db.DeleteRow(ctx, table.TableID, action.Local.ID); err != nil {
			return err
		}
		result.LocalDeletes++

	case ActionDeleteAfterUpload:
		complete, err := p.attachments.SyncRowAttachments(ctx, *table, *action.Local, columns, models.AttachmentUpload)
		if err != nil {
			log.Err(err).Str("func", "RowPullEngine.apply").Str("row_id", action.Local.ID).
				Msg("error pushing attachments of a row deleted on the server")
		}
		if err != nil || !complete {
			// Retire the row on the next push once its files are up.
			return p.db.UpdateRowETagAndSyncState(ctx, table.TableID, action.Local.ID, server.RowETag, models.Deleted{})
		}
		if err = p.db.DeleteRow(ctx, table.TableID, action.Local.ID); err != nil {
			return err
		}
		result.LocalDeletes++

	case ActionConflict:
		if err := p.db.PlaceRowIntoConflict(ctx, table.TableID, columns, action.LocalConflict, action.Row); err != nil {
			return err
		}
		result.LocalConflicts++

	default:
		return fmt.Errorf("%w: unknown action %s", ErrIllegalState, action.Kind)
	}
	return nil
}
