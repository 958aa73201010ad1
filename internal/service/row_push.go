package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/MKhiriev/go-odk-sync/internal/adapter"
	"github.com/MKhiriev/go-odk-sync/internal/logger"
	"github.com/MKhiriev/go-odk-sync/internal/store"
	"github.com/MKhiriev/go-odk-sync/internal/validators"
	"github.com/MKhiriev/go-odk-sync/models"
)

// RowPushEngine sends local row changes to the server and applies the
// per-row outcomes.
type RowPushEngine struct {
	sync      adapter.Synchronizer
	db        store.DatabaseService
	progress  ProgressSink
	validator validators.Validator
	batchSize int
}

// NewRowPushEngine builds a RowPushEngine from the session.
func NewRowPushEngine(s *SyncSession) *RowPushEngine {
	return &RowPushEngine{
		sync:      s.Synchronizer,
		db:        s.Database,
		progress:  s.Progress,
		validator: validators.NewServerResponseValidator(),
		batchSize: s.Settings.PushBatchSize,
	}
}

// Push submits the new, changed and deleted rows of the table, except
// checkpoints, in batches under table.DataETag. It reports mustRepull when
// the server refused a batch because its data epoch moved on; rows of that
// batch and later ones are left untouched.
func (p *RowPushEngine) Push(ctx context.Context, table *models.TableResource, columns models.OrderedColumns, result *models.TableLevelResult) (mustRepull bool, err error) {
	log := logger.FromContext(ctx)

	dirty, err := p.db.RowIDsByState(ctx, table.TableID, models.DirtySyncStates()...)
	if err != nil {
		return false, fmt.Errorf("listing changed rows: %w", err)
	}
	checkpoints, err := p.db.CheckpointRowIDs(ctx, table.TableID)
	if err != nil {
		return false, fmt.Errorf("listing checkpoints: %w", err)
	}
	ids := without(dirty, checkpoints)
	sort.Strings(ids)
	if len(ids) == 0 {
		return false, nil
	}
	result.HadLocalDataChanges = true

	for start := 0; start < len(ids); start += p.batchSize {
		if err = ctx.Err(); err != nil {
			return false, err
		}
		end := min(start+p.batchSize, len(ids))

		rows, err := p.db.RowsByID(ctx, table.TableID, columns, ids[start:end]...)
		if err != nil {
			return false, fmt.Errorf("loading changed rows: %w", err)
		}
		rows = dirtyRows(rows)
		if len(rows) == 0 {
			continue
		}

		outcomes, err := p.sync.PushLocalRows(ctx, *table, columns, rows)
		if err != nil {
			return false, fmt.Errorf("pushing rows: %w", err)
		}
		if outcomes == nil {
			log.Info().Str("func", "RowPushEngine.Push").Str("data_etag", table.DataETag).
				Msg("server data epoch moved, re-pull required")
			return true, nil
		}

		if err = p.applyOutcomes(ctx, table, columns, rows, *outcomes, result); err != nil {
			return false, err
		}
		p.progress.Report(ctx, progressStep(models.PhaseRows, table.TableID, "pushed local changes", end, len(ids)))
	}
	return false, nil
}

func (p *RowPushEngine) applyOutcomes(ctx context.Context, table *models.TableResource, columns models.OrderedColumns, rows []models.Row, outcomes models.RowOutcomeList, result *models.TableLevelResult) error {
	log := logger.FromContext(ctx)

	rowIDs := make([]string, len(rows))
	for i, r := range rows {
		rowIDs[i] = r.ID
	}
	if err := p.validator.Validate(ctx, validators.PushedBatch{RowIDs: rowIDs, Outcomes: outcomes}); err != nil {
		return protocolError("push outcomes", err)
	}
	result.PushedLocalData = true

	var badState, denied bool
	for i, outcome := range outcomes.Rows {
		local := rows[i]
		_, localDeleted := local.State.(models.Deleted)

		switch outcome.Outcome {
		case models.RowOutcomeSuccess:
			if outcome.Deleted {
				if err := p.db.DeleteRow(ctx, table.TableID, local.ID); err != nil {
					return fmt.Errorf("removing pushed delete %s: %w", local.ID, err)
				}
				result.LocalDeletes++
				result.ServerDeletes++
				continue
			}
			state := models.SyncedStateFor(local.HasAttachments(columns))
			if err := p.db.UpdateRowETagAndSyncState(ctx, table.TableID, local.ID, outcome.RowETag, state); err != nil {
				return fmt.Errorf("marking %s synced: %w", local.ID, err)
			}
			result.ServerUpserts++

		case models.RowOutcomeInConflict:
			serverConflict := models.ServerUpdatedUpdatedValues
			if outcome.Deleted {
				serverConflict = models.ServerDeletedOldValues
			}
			localConflict := models.LocalUpdatedUpdatedValues
			if localDeleted {
				localConflict = models.LocalDeletedOldValues
			}
			server := models.RowFromServer(outcome.ServerRow, columns, models.InConflict{Conflict: serverConflict})
			if err := p.db.PlaceRowIntoConflict(ctx, table.TableID, columns, localConflict, server); err != nil {
				return fmt.Errorf("placing %s into conflict: %w", local.ID, err)
			}
			result.LocalConflicts++

		case models.RowOutcomeFailed:
			// Deleting a row the server never had is the only acceptable failure.
			if !localDeleted || local.ID == "" {
				log.Error().Str("func", "RowPushEngine.applyOutcomes").Str("row_id", local.ID).
					Msg("server failed to apply row change")
				badState = true
			}

		case models.RowOutcomeDenied:
			log.Warn().Str("func", "RowPushEngine.applyOutcomes").Str("row_id", local.ID).
				Msg("server denied row change")
			denied = true

		default:
			log.Error().Str("func", "RowPushEngine.applyOutcomes").Str("row_id", local.ID).
				Str("outcome", string(outcome.Outcome)).Msg("unexpected row outcome")
			badState = true
		}
	}

	// An aborted batch keeps the previous data epoch so the next run
	// re-reads the server changes made under it.
	var errs []error
	if denied {
		errs = append(errs, ErrUpdateRequestRejected)
	}
	if badState {
		errs = append(errs, fmt.Errorf("%w: server failed row updates", ErrIllegalState))
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	if err := p.db.UpdateTableETags(ctx, table.TableID, table.SchemaETag, outcomes.DataETag); err != nil {
		return fmt.Errorf("storing data etag: %w", err)
	}
	table.DataETag = outcomes.DataETag
	return nil
}

func dirtyRows(rows []models.Row) []models.Row {
	out := rows[:0:0]
	for _, r := range rows {
		if models.IsDirty(r.State) && !r.IsCheckpoint() {
			out = append(out, r)
		}
	}
	return out
}
