package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-odk-sync/internal/logger"
	"github.com/MKhiriev/go-odk-sync/models"
)

func (s *sqliteDatabaseService) TableIDs(ctx context.Context) ([]string, error) {
	log := logger.FromContext(ctx)

	rows, err := s.QueryContext(ctx, listTableIDs)
	if err != nil {
		log.Err(err).Str("func", "sqliteDatabaseService.TableIDs").Msg("failed to list tables")
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

func (s *sqliteDatabaseService) TableDefinitionEntry(ctx context.Context, tableID string) (models.TableDefinitionEntry, error) {
	return tableDefinitionEntry(ctx, s.DB, tableID)
}

func tableDefinitionEntry(ctx context.Context, q queryer, tableID string) (models.TableDefinitionEntry, error) {
	var (
		entry                  models.TableDefinitionEntry
		schema, data, syncTime sql.NullString
	)
	err := q.QueryRowContext(ctx, getTableDefinitionEntry, tableID).Scan(&entry.TableID, &schema, &data, &syncTime)
	if errors.Is(err, sql.ErrNoRows) {
		return models.TableDefinitionEntry{}, fmt.Errorf("%w: %s", ErrTableNotFound, tableID)
	}
	if err != nil {
		return models.TableDefinitionEntry{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	entry.SchemaETag = schema.String
	entry.LastDataETag = data.String
	if syncTime.Valid {
		entry.LastSyncTime, _ = time.Parse(time.RFC3339Nano, syncTime.String)
	}
	return entry, nil
}

func (s *sqliteDatabaseService) Columns(ctx context.Context, tableID string) (models.OrderedColumns, error) {
	if _, err := tableDefinitionEntry(ctx, s.DB, tableID); err != nil {
		return nil, s.classify(err)
	}

	rows, err := s.QueryContext(ctx, getColumnDefinitions, tableID)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "sqliteDatabaseService.Columns").
			Str("table_id", tableID).
			Msg("failed to query column definitions")
		return nil, s.classify(fmt.Errorf("%w: %w", ErrExecutingQuery, err))
	}
	defer rows.Close()

	columns := models.OrderedColumns{}
	for rows.Next() {
		var c models.Column
		if err = rows.Scan(&c.ElementKey, &c.ElementName, &c.ElementType, &c.ListChildElementKeys); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		columns = append(columns, c)
	}
	if err = rows.Err(); err != nil {
		return nil, s.classify(fmt.Errorf("%w: %w", ErrScanningRows, err))
	}
	return columns, nil
}

func (s *sqliteDatabaseService) CreateTable(ctx context.Context, tableID string, columns models.OrderedColumns) error {
	ident, err := tableIdent(tableID)
	if err != nil {
		return err
	}
	userCols, err := userColumnIdents(columns)
	if err != nil {
		return err
	}

	return s.inTx(ctx, "sqliteDatabaseService.CreateTable", func(tx *sql.Tx) error {
		if _, err := tableDefinitionEntry(ctx, tx, tableID); err == nil {
			return fmt.Errorf("%w: %s", ErrTableAlreadyExists, tableID)
		} else if !errors.Is(err, ErrTableNotFound) {
			return err
		}

		if _, err := tx.ExecContext(ctx, insertTableDefinition, tableID); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		for i, c := range columns {
			children := c.ListChildElementKeys
			if children == "" {
				children = "[]"
			}
			if _, err := tx.ExecContext(ctx, insertColumnDefinition,
				tableID, c.ElementKey, c.ElementName, c.ElementType, children, i,
			); err != nil {
				return fmt.Errorf("%w: column %s: %w", ErrExecutingStatement, c.ElementKey, err)
			}
		}

		if _, err := tx.ExecContext(ctx, createDataTableDDL(ident, userCols)); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if _, err := tx.ExecContext(ctx, createDataTableIndexDDL(tableID, ident)); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return nil
	})
}

func createDataTableDDL(ident string, userCols []string) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	b.WriteString(ident)
	b.WriteString(` (
	_id TEXT NOT NULL,
	_row_etag TEXT NULL,
	_sync_state TEXT NOT NULL,
	_conflict_type INTEGER NULL,
	_default_access TEXT NULL,
	_row_owner TEXT NULL,
	_group_read_only TEXT NULL,
	_group_modify TEXT NULL,
	_group_privileged TEXT NULL,
	_form_id TEXT NULL,
	_locale TEXT NULL,
	_savepoint_type TEXT NULL,
	_savepoint_timestamp TEXT NOT NULL,
	_savepoint_creator TEXT NULL`)
	for _, c := range userCols {
		b.WriteString(",\n\t")
		b.WriteString(c)
		b.WriteString(" TEXT NULL")
	}
	b.WriteString("\n);")
	return b.String()
}

func createDataTableIndexDDL(tableID, ident string) string {
	return fmt.Sprintf("CREATE INDEX %s ON %s (_id);", quoteIdent(tableID+"_id_idx"), ident)
}

func (s *sqliteDatabaseService) DeleteTable(ctx context.Context, tableID string) error {
	ident, err := tableIdent(tableID)
	if err != nil {
		return err
	}

	return s.inTx(ctx, "sqliteDatabaseService.DeleteTable", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+ident+";"); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		for _, stmt := range []string{deleteColumnDefinitions, deleteTableDefinition, deleteSyncETagsForTable} {
			if _, err := tx.ExecContext(ctx, stmt, tableID); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}
		return nil
	})
}

func (s *sqliteDatabaseService) UpdateTableETags(ctx context.Context, tableID, schemaETag, dataETag string) error {
	res, err := s.ExecContext(ctx, updateTableETags,
		nullIfEmpty(schemaETag),
		nullIfEmpty(dataETag),
		time.Now().UTC().Format(time.RFC3339Nano),
		tableID,
	)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "sqliteDatabaseService.UpdateTableETags").
			Str("table_id", tableID).
			Msg("failed to update table etags")
		return s.classify(fmt.Errorf("%w: %w", ErrExecutingStatement, err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrTableNotFound, tableID)
	}
	return nil
}

func (s *sqliteDatabaseService) ServerTableSchemaETagChanged(ctx context.Context, tableID, schemaETag, staleInstanceFilesURI string) error {
	ident, err := tableIdent(tableID)
	if err != nil {
		return err
	}

	conflictTypes := func(types ...models.ConflictType) string {
		parts := make([]string, len(types))
		for i, t := range types {
			parts[i] = fmt.Sprint(int(t))
		}
		return strings.Join(parts, ",")
	}

	return s.inTx(ctx, "sqliteDatabaseService.ServerTableSchemaETagChanged", func(tx *sql.Tx) error {
		if _, err := tableDefinitionEntry(ctx, tx, tableID); err != nil {
			return err
		}

		statements := []struct {
			query string
			args  []any
		}{
			{
				"DELETE FROM " + ident + " WHERE _sync_state = ? AND _conflict_type IN (" +
					conflictTypes(models.ServerDeletedOldValues, models.ServerUpdatedUpdatedValues) + ")",
				[]any{string(models.SyncStateInConflict)},
			},
			{
				"UPDATE " + ident + " SET _sync_state = ?, _conflict_type = NULL WHERE _sync_state = ? AND _conflict_type = ?",
				[]any{string(models.SyncStateDeleted), string(models.SyncStateInConflict), int(models.LocalDeletedOldValues)},
			},
			{
				"UPDATE " + ident + " SET _sync_state = ?, _conflict_type = NULL WHERE _sync_state = ? AND _conflict_type = ?",
				[]any{string(models.SyncStateChanged), string(models.SyncStateInConflict), int(models.LocalUpdatedUpdatedValues)},
			},
			{
				"UPDATE " + ident + " SET _sync_state = ? WHERE _sync_state IN (?, ?)",
				[]any{string(models.SyncStateNewRow), string(models.SyncStateSynced), string(models.SyncStateSyncedPendingFiles)},
			},
			{resetTableETags, []any{nullIfEmpty(schemaETag), tableID}},
		}
		if staleInstanceFilesURI != "" {
			statements = append(statements, struct {
				query string
				args  []any
			}{deleteManifestETagsUnderURI, []any{staleInstanceFilesURI, staleInstanceFilesURI}})
		}

		for _, stmt := range statements {
			if _, err := tx.ExecContext(ctx, stmt.query, stmt.args...); err != nil {
				logger.FromContext(ctx).Err(err).
					Str("func", "sqliteDatabaseService.ServerTableSchemaETagChanged").
					Str("table_id", tableID).
					Msg("failed to reset table for new schema etag")
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}
		return nil
	})
}
