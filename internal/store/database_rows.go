package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-odk-sync/internal/logger"
	"github.com/MKhiriev/go-odk-sync/models"
)

// localRowPredicate selects the device's own copy of a row, leaving out the
// server half of a conflict pair.
var localRowPredicate = sq.Or{
	sq.Eq{"_conflict_type": nil},
	sq.Eq{"_conflict_type": []int{int(models.LocalDeletedOldValues), int(models.LocalUpdatedUpdatedValues)}},
}

var serverRowPredicate = sq.Eq{
	"_conflict_type": []int{int(models.ServerDeletedOldValues), int(models.ServerUpdatedUpdatedValues)},
}

func (s *sqliteDatabaseService) RowsByID(ctx context.Context, tableID string, columns models.OrderedColumns, rowIDs ...string) ([]models.Row, error) {
	log := logger.FromContext(ctx)

	ident, err := tableIdent(tableID)
	if err != nil {
		return nil, err
	}
	userCols, err := userColumnIdents(columns)
	if err != nil {
		return nil, err
	}
	selected := append(append([]string{}, metadataColumns...), userCols...)

	var result []models.Row
	for _, ids := range chunk(rowIDs, inListChunk) {
		query, args, err := s.builder.
			Select(selected...).
			From(ident).
			Where(sq.Eq{"_id": ids}).
			OrderBy("_id", "_conflict_type").
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		rows, err := s.QueryContext(ctx, query, args...)
		if err != nil {
			log.Err(err).
				Str("func", "sqliteDatabaseService.RowsByID").
				Str("table_id", tableID).
				Msg("failed to query rows")
			return nil, s.classify(fmt.Errorf("%w: %w", ErrExecutingQuery, err))
		}
		chunkRows, err := scanRows(rows, columns.Retained())
		if err != nil {
			return nil, s.classify(err)
		}
		result = append(result, chunkRows...)
	}
	return result, nil
}

func scanRows(rows *sql.Rows, retained models.OrderedColumns) ([]models.Row, error) {
	defer rows.Close()

	var result []models.Row
	for rows.Next() {
		var (
			id, etag, state                     sql.NullString
			conflict                            sql.NullInt64
			access, owner, groupRO, groupModify sql.NullString
			groupPriv, formID, locale           sql.NullString
			spType, spTimestamp, spCreator      sql.NullString
		)
		values := make([]sql.NullString, len(retained))
		dest := []any{
			&id, &etag, &state, &conflict,
			&access, &owner, &groupRO, &groupModify, &groupPriv,
			&formID, &locale, &spType, &spTimestamp, &spCreator,
		}
		for i := range values {
			dest = append(dest, &values[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		rowState, err := models.ParseRowState(state.String, conflict)
		if err != nil {
			return nil, fmt.Errorf("%w: row %s: %w", ErrScanningRows, id.String, err)
		}

		row := models.Row{
			ID:                 id.String,
			RowETag:            etag.String,
			State:              rowState,
			FormID:             formID.String,
			Locale:             locale.String,
			SavepointType:      spType.String,
			SavepointTimestamp: spTimestamp.String,
			SavepointCreator:   spCreator.String,
			FilterScope: models.RowFilterScope{
				DefaultAccess:   models.RowAccess(access.String),
				RowOwner:        owner.String,
				GroupReadOnly:   groupRO.String,
				GroupModify:     groupModify.String,
				GroupPrivileged: groupPriv.String,
			}.Normalized(),
			Values: make(map[string]*string, len(retained)),
		}
		for i, c := range retained {
			if values[i].Valid {
				row.Values[c.ElementKey] = models.StringPtr(values[i].String)
			} else {
				row.Values[c.ElementKey] = nil
			}
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return result, nil
}

func (s *sqliteDatabaseService) RowIDsByState(ctx context.Context, tableID string, states ...models.SyncState) ([]string, error) {
	stateValues := make([]string, len(states))
	for i, st := range states {
		stateValues[i] = string(st)
	}
	return s.selectRowIDs(ctx, "sqliteDatabaseService.RowIDsByState", tableID, sq.Eq{"_sync_state": stateValues})
}

func (s *sqliteDatabaseService) CheckpointRowIDs(ctx context.Context, tableID string) ([]string, error) {
	return s.selectRowIDs(ctx, "sqliteDatabaseService.CheckpointRowIDs", tableID, sq.Eq{"_savepoint_type": nil})
}

func (s *sqliteDatabaseService) selectRowIDs(ctx context.Context, funcName, tableID string, pred sq.Sqlizer) ([]string, error) {
	ident, err := tableIdent(tableID)
	if err != nil {
		return nil, err
	}

	query, args, err := s.builder.Select("_id").Distinct().From(ident).Where(pred).OrderBy("_id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Str("table_id", tableID).Msg("failed to query row ids")
		return nil, s.classify(fmt.Errorf("%w: %w", ErrExecutingQuery, err))
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, s.classify(fmt.Errorf("%w: %w", ErrScanningRows, err))
	}
	return ids, nil
}

// rowValues maps every stored column of row to its SQL value.
func rowValues(row models.Row, retained models.OrderedColumns) map[string]any {
	scope := row.FilterScope.Normalized()
	values := map[string]any{
		"_id":                  row.ID,
		"_row_etag":            nullIfEmpty(row.RowETag),
		"_sync_state":          string(row.State.SyncState()),
		"_conflict_type":       models.ConflictColumn(row.State),
		"_default_access":      string(scope.DefaultAccess),
		"_row_owner":           nullIfEmpty(scope.RowOwner),
		"_group_read_only":     nullIfEmpty(scope.GroupReadOnly),
		"_group_modify":        nullIfEmpty(scope.GroupModify),
		"_group_privileged":    nullIfEmpty(scope.GroupPrivileged),
		"_form_id":             nullIfEmpty(row.FormID),
		"_locale":              nullIfEmpty(row.Locale),
		"_savepoint_type":      nullIfEmpty(row.SavepointType),
		"_savepoint_timestamp": row.SavepointTimestamp,
		"_savepoint_creator":   nullIfEmpty(row.SavepointCreator),
	}
	for _, c := range retained {
		if v := row.Values[c.ElementKey]; v != nil {
			values[quoteIdent(c.ElementKey)] = *v
		} else {
			values[quoteIdent(c.ElementKey)] = nil
		}
	}
	return values
}

func (s *sqliteDatabaseService) InsertRow(ctx context.Context, tableID string, columns models.OrderedColumns, row models.Row) error {
	if err := s.insertRow(ctx, s.DB, tableID, columns, row); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "sqliteDatabaseService.InsertRow").
			Str("table_id", tableID).
			Str("row_id", row.ID).
			Msg("failed to insert row")
		return s.classify(err)
	}
	return nil
}

func (s *sqliteDatabaseService) insertRow(ctx context.Context, q queryer, tableID string, columns models.OrderedColumns, row models.Row) error {
	ident, err := tableIdent(tableID)
	if err != nil {
		return err
	}
	if _, err = userColumnIdents(columns); err != nil {
		return err
	}

	query, args, err := s.builder.Insert(ident).SetMap(rowValues(row, columns.Retained())).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (s *sqliteDatabaseService) UpdateRow(ctx context.Context, tableID string, columns models.OrderedColumns, row models.Row) error {
	ident, err := tableIdent(tableID)
	if err != nil {
		return err
	}
	if _, err = userColumnIdents(columns); err != nil {
		return err
	}

	query, args, err := s.builder.Update(ident).
		SetMap(rowValues(row, columns.Retained())).
		Where(sq.And{sq.Eq{"_id": row.ID}, localRowPredicate}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return s.execAffecting(ctx, "sqliteDatabaseService.UpdateRow", tableID, row.ID, query, args...)
}

// execAffecting runs a statement that must touch at least one row.
func (s *sqliteDatabaseService) execAffecting(ctx context.Context, funcName, tableID, rowID, query string, args ...any) error {
	res, err := s.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", funcName).
			Str("table_id", tableID).
			Str("row_id", rowID).
			Msg("failed to execute row statement")
		return s.classify(fmt.Errorf("%w: %w", ErrExecutingStatement, err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s/%s", ErrRowNotFound, tableID, rowID)
	}
	return nil
}

func (s *sqliteDatabaseService) DeleteRow(ctx context.Context, tableID, rowID string) error {
	return s.deleteWhere(ctx, "sqliteDatabaseService.DeleteRow", tableID, rowID, sq.Eq{"_id": rowID})
}

func (s *sqliteDatabaseService) DeleteServerConflictRow(ctx context.Context, tableID, rowID string) error {
	return s.deleteWhere(ctx, "sqliteDatabaseService.DeleteServerConflictRow", tableID, rowID,
		sq.And{sq.Eq{"_id": rowID}, serverRowPredicate})
}

func (s *sqliteDatabaseService) deleteWhere(ctx context.Context, funcName, tableID, rowID string, pred sq.Sqlizer) error {
	ident, err := tableIdent(tableID)
	if err != nil {
		return err
	}

	query, args, err := s.builder.Delete(ident).Where(pred).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = s.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", funcName).
			Str("table_id", tableID).
			Str("row_id", rowID).
			Msg("failed to delete row")
		return s.classify(fmt.Errorf("%w: %w", ErrExecutingStatement, err))
	}
	return nil
}

func (s *sqliteDatabaseService) PlaceRowIntoConflict(ctx context.Context, tableID string, columns models.OrderedColumns, localConflict models.ConflictType, server models.Row) error {
	ident, err := tableIdent(tableID)
	if err != nil {
		return err
	}
	if localConflict.IsServerSide() {
		return fmt.Errorf("local conflict tag expected, got %s", localConflict)
	}
	if c, ok := server.ConflictType(); !ok || !c.IsServerSide() {
		return fmt.Errorf("server row %s must be in a server-side conflict state", server.ID)
	}

	return s.inTx(ctx, "sqliteDatabaseService.PlaceRowIntoConflict", func(tx *sql.Tx) error {
		query, args, err := s.builder.Delete(ident).
			Where(sq.And{sq.Eq{"_id": server.ID}, serverRowPredicate}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		query, args, err = s.builder.Update(ident).
			Set("_sync_state", string(models.SyncStateInConflict)).
			Set("_conflict_type", int(localConflict)).
			Where(sq.And{sq.Eq{"_id": server.ID}, localRowPredicate}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("%w: %s/%s", ErrRowNotFound, tableID, server.ID)
		}

		return s.insertRow(ctx, tx, tableID, columns, server)
	})
}

func (s *sqliteDatabaseService) UpdateRowETagAndSyncState(ctx context.Context, tableID, rowID, rowETag string, state models.RowState) error {
	ident, err := tableIdent(tableID)
	if err != nil {
		return err
	}

	query, args, err := s.builder.Update(ident).
		Set("_row_etag", nullIfEmpty(rowETag)).
		Set("_sync_state", string(state.SyncState())).
		Set("_conflict_type", models.ConflictColumn(state)).
		Where(sq.And{sq.Eq{"_id": rowID}, localRowPredicate}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return s.execAffecting(ctx, "sqliteDatabaseService.UpdateRowETagAndSyncState", tableID, rowID, query, args...)
}

func (s *sqliteDatabaseService) RowCounts(ctx context.Context, tableID string) (models.RowCounts, error) {
	ident, err := tableIdent(tableID)
	if err != nil {
		return models.RowCounts{}, err
	}

	query, args, err := s.builder.Select(
		"COUNT(*)",
		"COALESCE(SUM(CASE WHEN _savepoint_type IS NULL THEN 1 ELSE 0 END), 0)",
		"COALESCE(SUM(CASE WHEN _conflict_type IS NOT NULL THEN 1 ELSE 0 END), 0)",
	).From(ident).ToSql()
	if err != nil {
		return models.RowCounts{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var counts models.RowCounts
	if err = s.QueryRowContext(ctx, query, args...).Scan(&counts.Rows, &counts.Checkpoints, &counts.Conflicts); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "sqliteDatabaseService.RowCounts").
			Str("table_id", tableID).
			Msg("failed to count rows")
		return models.RowCounts{}, s.classify(fmt.Errorf("%w: %w", ErrExecutingQuery, err))
	}
	return counts, nil
}
