package store

import (
	"context"

	"github.com/MKhiriev/go-odk-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// DatabaseService is the local replica as seen by the sync engine. Row
// writes take the full row and leave the sync metadata (row ETag, state and
// conflict tag) to the caller.
type DatabaseService interface {
	// TableIDs lists the locally defined tables in alphabetical order.
	TableIDs(ctx context.Context) ([]string, error)
	TableDefinitionEntry(ctx context.Context, tableID string) (models.TableDefinitionEntry, error)
	Columns(ctx context.Context, tableID string) (models.OrderedColumns, error)
	CreateTable(ctx context.Context, tableID string, columns models.OrderedColumns) error
	DeleteTable(ctx context.Context, tableID string) error
	// UpdateTableETags records the schema and data epochs; an empty value is
	// stored as NULL.
	UpdateTableETags(ctx context.Context, tableID, schemaETag, dataETag string) error
	// ServerTableSchemaETagChanged adopts a new schema epoch: rows become
	// pushable again, the data epoch is cleared and row manifest ETags under
	// staleInstanceFilesURI are dropped.
	ServerTableSchemaETagChanged(ctx context.Context, tableID, schemaETag, staleInstanceFilesURI string) error

	// RowsByID returns every stored row with one of the ids, ordered by id,
	// including both halves of conflict pairs.
	RowsByID(ctx context.Context, tableID string, columns models.OrderedColumns, rowIDs ...string) ([]models.Row, error)
	RowIDsByState(ctx context.Context, tableID string, states ...models.SyncState) ([]string, error)
	CheckpointRowIDs(ctx context.Context, tableID string) ([]string, error)
	InsertRow(ctx context.Context, tableID string, columns models.OrderedColumns, row models.Row) error
	// UpdateRow replaces the local (non server-conflict) row with row.ID.
	UpdateRow(ctx context.Context, tableID string, columns models.OrderedColumns, row models.Row) error
	// DeleteRow removes every stored row with rowID.
	DeleteRow(ctx context.Context, tableID, rowID string) error
	DeleteServerConflictRow(ctx context.Context, tableID, rowID string) error
	// PlaceRowIntoConflict replaces any previous server copy of the row with
	// server and tags the local row with localConflict, atomically.
	PlaceRowIntoConflict(ctx context.Context, tableID string, columns models.OrderedColumns, localConflict models.ConflictType, server models.Row) error
	UpdateRowETagAndSyncState(ctx context.Context, tableID, rowID, rowETag string, state models.RowState) error
	RowCounts(ctx context.Context, tableID string) (models.RowCounts, error)

	// ManifestSyncETag returns the last confirmed manifest ETag for uri, or
	// "" when none is recorded. App-level entries use an empty tableID.
	ManifestSyncETag(ctx context.Context, uri, tableID string) (string, error)
	UpdateManifestSyncETag(ctx context.Context, uri, tableID, etag string) error
	// FileSyncETag returns the recorded md5 of a config file if it was
	// recorded for the same modification time, or "".
	FileSyncETag(ctx context.Context, uri, tableID string, modifiedAt int64) (string, error)
	UpdateFileSyncETag(ctx context.Context, uri, tableID string, modifiedAt int64, md5 string) error
	DeleteSyncETagsForTable(ctx context.Context, tableID string) error
	DeleteAllSyncETags(ctx context.Context) error
}
