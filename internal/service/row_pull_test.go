package service

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-odk-sync/internal/adapter"
	"github.com/MKhiriev/go-odk-sync/models"
)

func newPullEngine(ts *testSession) *RowPullEngine {
	return NewRowPullEngine(ts.SyncSession, NewConflictResolver(), NewAttachmentSyncEngine(ts.SyncSession))
}

func TestRowPull_AppliesPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	ts := newTestSession(t, ctrl)
	ctx := context.Background()

	table := visitsTable()
	entry := models.TableDefinitionEntry{TableID: "visits", SchemaETag: "s1", LastDataETag: "d1"}
	result := models.NewTableLevelResult("visits")

	page := models.RowPage{
		DataETag: "d2",
		Rows: []models.ServerRow{
			serverRow("r1", "e1", false, "ann"),
			serverRow("r2", "e2", false, "bob"),
			serverRow("r3", "e2", true, "carl"),
			serverRow("r4", "e2", true, "dan"),
		},
	}

	ts.sync.EXPECT().GetUpdates(gomock.Any(), table, "d1", "", defaultFetchLimit).Return(page, nil)
	ts.db.EXPECT().RowsByID(gomock.Any(), "visits", visitColumns, "r1", "r2", "r3", "r4").Return([]models.Row{
		localRow("r2", "e1", models.Changed{}, "ann"),
		localRow("r3", "e1", models.Synced{}, "carl"),
		localRow("r4", "e1", models.SyncedPendingFiles{}, "dan"),
	}, nil)
	ts.db.EXPECT().InsertRow(gomock.Any(), "visits", visitColumns, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ models.OrderedColumns, row models.Row) error {
			assert.Equal(t, "r1", row.ID)
			assert.Equal(t, models.Synced{}, row.State)
			return nil
		})
	ts.db.EXPECT().PlaceRowIntoConflict(gomock.Any(), "visits", visitColumns, models.LocalUpdatedUpdatedValues, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ models.OrderedColumns, _ models.ConflictType, row models.Row) error {
			assert.Equal(t, "r2", row.ID)
			assert.Equal(t, models.InConflict{Conflict: models.ServerUpdatedUpdatedValues}, row.State)
			return nil
		})
	ts.db.EXPECT().DeleteRow(gomock.Any(), "visits", "r3").Return(nil)
	ts.db.EXPECT().DeleteRow(gomock.Any(), "visits", "r4").Return(nil)
	ts.db.EXPECT().UpdateTableETags(gomock.Any(), "visits", "s1", "d2").Return(nil)

	require.NoError(t, newPullEngine(ts).Pull(ctx, &table, entry, visitColumns, result))

	assert.Equal(t, "d2", table.DataETag)
	assert.True(t, result.PulledServerData)
	assert.True(t, result.ServerHadDataChanges)
	assert.Equal(t, 1, result.LocalInserts)
	assert.Equal(t, 1, result.LocalConflicts)
	assert.Equal(t, 2, result.LocalDeletes)
	assert.Equal(t, models.SyncWorking, result.Outcome)
}

func TestRowPull_ConflictResolvedBySameValues(t *testing.T) {
	ctrl := gomock.NewController(t)
	ts := newTestSession(t, ctrl)

	table := visitsTable()
	result := models.NewTableLevelResult("visits")

	local := localRow("r1", "e1", models.InConflict{Conflict: models.LocalUpdatedUpdatedValues}, "ann")
	serverCopy := localRow("r1", "e2", models.InConflict{Conflict: models.ServerUpdatedUpdatedValues}, "bob")

	ts.sync.EXPECT().GetUpdates(gomock.Any(), gomock.Any(), "d1", "", defaultFetchLimit).
		Return(models.RowPage{DataETag: "d2", Rows: []models.ServerRow{serverRow("r1", "e3", false, "ann")}}, nil)
	ts.db.EXPECT().RowsByID(gomock.Any(), "visits", visitColumns, "r1").Return([]models.Row{local, serverCopy}, nil)
	gomock.InOrder(
		ts.db.EXPECT().DeleteServerConflictRow(gomock.Any(), "visits", "r1").Return(nil),
		ts.db.EXPECT().UpdateRow(gomock.Any(), "visits", visitColumns, gomock.Any()).Return(nil),
	)
	ts.db.EXPECT().UpdateTableETags(gomock.Any(), "visits", "s1", "d2").Return(nil)

	require.NoError(t, newPullEngine(ts).Pull(context.Background(), &table,
		models.TableDefinitionEntry{TableID: "visits", LastDataETag: "d1"}, visitColumns, result))
	assert.Equal(t, 1, result.LocalUpdates)
}

func TestRowPull_OpenConflictNotRebuilt(t *testing.T) {
	ctrl := gomock.NewController(t)
	ts := newTestSession(t, ctrl)

	table := visitsTable()
	result := models.NewTableLevelResult("visits")

	local := localRow("r1", "e1", models.InConflict{Conflict: models.LocalUpdatedUpdatedValues}, "ann")
	serverCopy := localRow("r1", "e2", models.InConflict{Conflict: models.ServerUpdatedUpdatedValues}, "bob")

	ts.sync.EXPECT().GetUpdates(gomock.Any(), gomock.Any(), "d1", "", defaultFetchLimit).
		Return(models.RowPage{DataETag: "d2", Rows: []models.ServerRow{serverRow("r1", "e2", false, "bob")}}, nil)
	ts.db.EXPECT().RowsByID(gomock.Any(), "visits", visitColumns, "r1").Return([]models.Row{local, serverCopy}, nil)
	ts.db.EXPECT().UpdateTableETags(gomock.Any(), "visits", "s1", "d2").Return(nil)

	require.NoError(t, newPullEngine(ts).Pull(context.Background(), &table,
		models.TableDefinitionEntry{TableID: "visits", LastDataETag: "d1"}, visitColumns, result))
	assert.Equal(t, 0, result.LocalConflicts)
	assert.Equal(t, 0, result.LocalUpdates)
}

// ── server deletes of rows with pending files ─────────────────────────────────

func TestRowPull_DeleteWaitsForUpload(t *testing.T) {
	ctrl := gomock.NewController(t)
	ts := newTestSession(t, ctrl)

	table := visitsTable()
	result := models.NewTableLevelResult("visits")
	pending := photoRow("r1", models.SyncedPendingFiles{}, "a.jpg")

	ts.sync.EXPECT().GetUpdates(gomock.Any(), gomock.Any(), "d1", "", defaultFetchLimit).
		Return(models.RowPage{DataETag: "d2", Rows: []models.ServerRow{serverRow("r1", "e2", true, "ann")}}, nil)
	ts.db.EXPECT().RowsByID(gomock.Any(), "visits", visitColumns, "r1").Return([]models.Row{pending}, nil)
	ts.sync.EXPECT().RowManifestURI(table.InstanceFilesURI, "r1").Return("rm")
	ts.db.EXPECT().ManifestSyncETag(gomock.Any(), "rm", "visits").Return("", nil)
	ts.sync.EXPECT().GetRowLevelFileManifest(gomock.Any(), table.InstanceFilesURI, "r1", "").
		Return(nil, adapter.ErrNetworkTransmission)
	ts.db.EXPECT().UpdateRowETagAndSyncState(gomock.Any(), "visits", "r1", "e2", models.Deleted{}).Return(nil)
	ts.db.EXPECT().UpdateTableETags(gomock.Any(), "visits", "s1", "d2").Return(nil)

	require.NoError(t, newPullEngine(ts).Pull(context.Background(), &table,
		models.TableDefinitionEntry{TableID: "visits", LastDataETag: "d1"}, visitColumns, result))
	assert.Equal(t, 0, result.LocalDeletes)
	assert.Equal(t, "d2", table.DataETag)
}

func TestRowPull_DeleteAfterUpload(t *testing.T) {
	ctrl := gomock.NewController(t)
	ts := newTestSession(t, ctrl)

	table := visitsTable()
	result := models.NewTableLevelResult("visits")
	pending := photoRow("r1", models.SyncedPendingFiles{}, "a.jpg")

	local := filepath.Join(ts.root, "data", "tables", "visits", "instances", "r1", "a.jpg")
	writeFile(t, local, "img")
	prefix := rowManifestPrefix(models.AttachmentUpload, pending, visitColumns)

	ts.sync.EXPECT().GetUpdates(gomock.Any(), gomock.Any(), "d1", "", defaultFetchLimit).
		Return(models.RowPage{DataETag: "d2", Rows: []models.ServerRow{serverRow("r1", "e2", true, "ann")}}, nil)
	ts.db.EXPECT().RowsByID(gomock.Any(), "visits", visitColumns, "r1").Return([]models.Row{pending}, nil)
	ts.sync.EXPECT().RowManifestURI(table.InstanceFilesURI, "r1").Return("rm")
	ts.db.EXPECT().ManifestSyncETag(gomock.Any(), "rm", "visits").Return("", nil)
	ts.sync.EXPECT().GetRowLevelFileManifest(gomock.Any(), table.InstanceFilesURI, "r1", "").
		Return(&models.FileManifestDocument{ETag: "x1"}, nil)
	gomock.InOrder(
		ts.sync.EXPECT().UploadInstanceFileBatch(gomock.Any(), table.InstanceFilesURI, "r1",
			[]models.FileAttachment{{RowPath: "a.jpg", LocalPath: local, ContentLength: 3}}).Return(nil),
		ts.db.EXPECT().UpdateManifestSyncETag(gomock.Any(), "rm", "visits", prefix+"x1").Return(nil),
		ts.db.EXPECT().DeleteRow(gomock.Any(), "visits", "r1").Return(nil),
	)
	ts.db.EXPECT().UpdateTableETags(gomock.Any(), "visits", "s1", "d2").Return(nil)

	require.NoError(t, newPullEngine(ts).Pull(context.Background(), &table,
		models.TableDefinitionEntry{TableID: "visits", LastDataETag: "d1"}, visitColumns, result))
	assert.Equal(t, 1, result.LocalDeletes)
}

// ── pagination ────────────────────────────────────────────────────────────────

func TestRowPull_RestartsWhenEpochMoves(t *testing.T) {
	ctrl := gomock.NewController(t)
	ts := newTestSession(t, ctrl)

	table := visitsTable()
	result := models.NewTableLevelResult("visits")

	gomock.InOrder(
		ts.sync.EXPECT().GetUpdates(gomock.Any(), gomock.Any(), "", "", defaultFetchLimit).
			Return(models.RowPage{DataETag: "d2", HasMoreResults: true, WebSafeResumeCursor: "c1"}, nil),
		ts.sync.EXPECT().GetUpdates(gomock.Any(), gomock.Any(), "", "c1", defaultFetchLimit).
			Return(models.RowPage{DataETag: "d3"}, nil),
		ts.sync.EXPECT().GetUpdates(gomock.Any(), gomock.Any(), "", "", defaultFetchLimit).
			Return(models.RowPage{DataETag: "d3"}, nil),
		ts.db.EXPECT().UpdateTableETags(gomock.Any(), "visits", "s1", "d3").Return(nil),
	)

	require.NoError(t, newPullEngine(ts).Pull(context.Background(), &table,
		models.TableDefinitionEntry{TableID: "visits"}, visitColumns, result))
	assert.Equal(t, "d3", table.DataETag)
	assert.False(t, result.ServerHadDataChanges)
}

func TestRowPull_TooManyRestarts(t *testing.T) {
	ctrl := gomock.NewController(t)
	ts := newTestSession(t, ctrl)

	table := visitsTable()
	calls := 0
	ts.sync.EXPECT().GetUpdates(gomock.Any(), gomock.Any(), "", gomock.Any(), defaultFetchLimit).
		DoAndReturn(func(_ context.Context, _ models.TableResource, _, cursor string, _ int) (models.RowPage, error) {
			calls++
			if cursor == "" {
				return models.RowPage{DataETag: fmt.Sprintf("a%d", calls), HasMoreResults: true, WebSafeResumeCursor: "c"}, nil
			}
			return models.RowPage{DataETag: fmt.Sprintf("b%d", calls)}, nil
		}).AnyTimes()

	err := newPullEngine(ts).Pull(context.Background(), &table,
		models.TableDefinitionEntry{TableID: "visits"}, visitColumns, models.NewTableLevelResult("visits"))
	require.ErrorIs(t, err, ErrTooManySyncIterations)
	assert.Equal(t, 2*(DefaultMaxSyncIterations+1), calls)
	assert.Equal(t, "d1", table.DataETag)
}

func TestRowPull_WideTableUsesSmallPages(t *testing.T) {
	ctrl := gomock.NewController(t)
	ts := newTestSession(t, ctrl)

	wide := make(models.OrderedColumns, wideTableColumns+1)
	for i := range wide {
		wide[i] = models.Column{ElementKey: fmt.Sprintf("c%d", i), ElementType: models.ElementTypeString}
	}
	table := visitsTable()

	ts.sync.EXPECT().GetUpdates(gomock.Any(), gomock.Any(), "", "", wideTableFetchLimit).Return(models.RowPage{}, nil)

	require.NoError(t, newPullEngine(ts).Pull(context.Background(), &table,
		models.TableDefinitionEntry{TableID: "visits"}, wide, models.NewTableLevelResult("visits")))
}

// ── failures ──────────────────────────────────────────────────────────────────

func TestRowPull_CheckpointsStopPull(t *testing.T) {
	ctrl := gomock.NewController(t)
	ts := newTestSession(t, ctrl)

	table := visitsTable()
	result := models.NewTableLevelResult("visits")
	checkpoint := localRow("r1", "e1", models.Changed{}, "ann")
	checkpoint.SavepointType = ""

	ts.sync.EXPECT().GetUpdates(gomock.Any(), gomock.Any(), "d1", "", defaultFetchLimit).
		Return(models.RowPage{DataETag: "d2", Rows: []models.ServerRow{serverRow("r1", "e2", false, "bob")}}, nil)
	ts.db.EXPECT().RowsByID(gomock.Any(), "visits", visitColumns, "r1").Return([]models.Row{checkpoint}, nil)

	require.NoError(t, newPullEngine(ts).Pull(context.Background(), &table,
		models.TableDefinitionEntry{TableID: "visits", LastDataETag: "d1"}, visitColumns, result))
	assert.Equal(t, models.SyncTableContainsCheckpoints, result.Outcome)
	assert.Equal(t, "d1", table.DataETag)
	assert.False(t, result.PulledServerData)
}

func TestRowPull_MissingCursor(t *testing.T) {
	ctrl := gomock.NewController(t)
	ts := newTestSession(t, ctrl)

	table := visitsTable()
	ts.sync.EXPECT().GetUpdates(gomock.Any(), gomock.Any(), "", "", defaultFetchLimit).
		Return(models.RowPage{DataETag: "d2", HasMoreResults: true}, nil)

	err := newPullEngine(ts).Pull(context.Background(), &table,
		models.TableDefinitionEntry{TableID: "visits"}, visitColumns, models.NewTableLevelResult("visits"))
	require.ErrorIs(t, err, adapter.ErrClientDetectedVersionMismatch)
	assert.Equal(t, models.SyncIncompatibleServerVersion, OutcomeFor(err))
}

func TestRowPull_TransportError(t *testing.T) {
	ctrl := gomock.NewController(t)
	ts := newTestSession(t, ctrl)

	table := visitsTable()
	ts.sync.EXPECT().GetUpdates(gomock.Any(), gomock.Any(), "", "", defaultFetchLimit).
		Return(models.RowPage{}, adapter.ErrAccessDenied)

	err := newPullEngine(ts).Pull(context.Background(), &table,
		models.TableDefinitionEntry{TableID: "visits"}, visitColumns, models.NewTableLevelResult("visits"))
	assert.Equal(t, models.SyncAccessDenied, OutcomeFor(err))
}
