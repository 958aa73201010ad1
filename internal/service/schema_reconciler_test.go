package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-odk-sync/internal/adapter"
	"github.com/MKhiriev/go-odk-sync/internal/logger"
	"github.com/MKhiriev/go-odk-sync/models"
)

func newReconciler(ts *testSession) *SchemaReconciler {
	return NewSchemaReconciler(ts.SyncSession, logger.Nop())
}

// expectServerVerified stubs the app name check and an anonymous user.
func expectServerVerified(ts *testSession) {
	ts.sync.EXPECT().VerifyServerSupportsAppName(gomock.Any()).Return(nil)
	ts.sync.EXPECT().GetUserRolesAndDefaultGroup(gomock.Any()).Return(nil, nil)
}

// expectManifestsUnchanged stubs an unchanged manifest for each scope.
func expectManifestsUnchanged(ts *testSession, push bool, tableIDs ...string) {
	ts.sync.EXPECT().ManifestURI("").Return("manifest")
	ts.db.EXPECT().ManifestSyncETag(gomock.Any(), "manifest", "").Return("", nil)
	ts.sync.EXPECT().GetAppLevelFileManifest(gomock.Any(), "", gomock.Any(), push).Return(nil, nil)
	for _, id := range tableIDs {
		ts.sync.EXPECT().ManifestURI(id).Return("manifest/" + id)
		ts.db.EXPECT().ManifestSyncETag(gomock.Any(), "manifest/"+id, id).Return("", nil)
		ts.sync.EXPECT().GetTableLevelFileManifest(gomock.Any(), id, "", gomock.Any(), push).Return(nil, nil)
	}
}

// expectQuietRows stubs a row sync with no server or local changes.
func expectQuietRows(ts *testSession, table models.TableResource, sinceDataETag string) {
	ts.sync.EXPECT().GetUpdates(gomock.Any(), gomock.Any(), sinceDataETag, "", defaultFetchLimit).
		Return(models.RowPage{DataETag: "d9"}, nil)
	ts.db.EXPECT().UpdateTableETags(gomock.Any(), table.TableID, table.SchemaETag, "d9").Return(nil)
	ts.db.EXPECT().RowIDsByState(gomock.Any(), table.TableID, gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	ts.db.EXPECT().RowIDsByState(gomock.Any(), table.TableID, gomock.Any(), gomock.Any()).Return(nil, nil)
	ts.db.EXPECT().CheckpointRowIDs(gomock.Any(), table.TableID).Return(nil, nil).Times(2)
}

// ── pull direction ────────────────────────────────────────────────────────────

func TestSchemaReconciler_SyncHappyPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	ts := newTestSession(t, ctrl)
	ctx := context.Background()

	table := visitsTable()
	table.TableLevelManifestETag = "tm"
	entry := models.TableDefinitionEntry{TableID: "visits", SchemaETag: "s1", LastDataETag: "d0"}

	expectServerVerified(ts)
	ts.sync.EXPECT().GetTables(gomock.Any(), "").
		Return(models.TableResourceList{Tables: []models.TableResource{table}, AppLevelManifestETag: "am"}, nil)
	ts.db.EXPECT().TableIDs(gomock.Any()).Return([]string{"old", "visits"}, nil)
	expectManifestsUnchanged(ts, false, "visits")

	ts.db.EXPECT().TableDefinitionEntry(gomock.Any(), "visits").Return(entry, nil).Times(2)
	ts.db.EXPECT().Columns(gomock.Any(), "visits").Return(visitColumns, nil).Times(2)
	ts.db.EXPECT().DeleteTable(gomock.Any(), "old").Return(nil)

	ts.sync.EXPECT().GetTable(gomock.Any(), "visits").Return(&table, nil)
	expectQuietRows(ts, table, "d0")
	ts.db.EXPECT().RowCounts(gomock.Any(), "visits").Return(models.RowCounts{Rows: 3}, nil)
	ts.sync.EXPECT().PublishTableSyncStatus(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tr models.TableResource, status models.TableSyncStatus) error {
			assert.Equal(t, "d9", tr.DataETag)
			assert.Equal(t, models.SyncSuccess, status.Outcome)
			assert.Equal(t, 3, status.LocalNumRows)
			return nil
		})

	result, err := newReconciler(ts).Sync(ctx, models.DirectionSync)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.NotEmpty(t, result.RunID)
	assert.False(t, result.FinishedAt.IsZero())
	assert.Equal(t, models.SyncSuccess, result.AppLevelOutcome)
	assert.Equal(t, anonymousUser, result.Privileges.UserID)
	assert.Equal(t, models.SyncSuccess, result.Table("visits").Outcome)
	assert.True(t, result.Table("visits").PulledServerData)
	assert.Equal(t, models.SyncSuccess, result.Table("old").Outcome)
	assert.True(t, result.Succeeded())
}

func TestSchemaReconciler_CreatesMissingLocalTable(t *testing.T) {
	ctrl := gomock.NewController(t)
	ts := newTestSession(t, ctrl)

	table := visitsTable()
	def := models.TableDefinitionResource{TableID: "visits", SchemaETag: "s1", Columns: visitColumns}
	entry := models.TableDefinitionEntry{TableID: "visits", SchemaETag: "s1"}

	expectServerVerified(ts)
	ts.sync.EXPECT().GetTables(gomock.Any(), "").Return(models.TableResourceList{Tables: []models.TableResource{table}}, nil)
	ts.db.EXPECT().TableIDs(gomock.Any()).Return(nil, nil)
	expectManifestsUnchanged(ts, false, "visits")

	gomock.InOrder(
		ts.sync.EXPECT().GetTableDefinition(gomock.Any(), table.DefinitionURI).Return(def, nil),
		ts.db.EXPECT().CreateTable(gomock.Any(), "visits", visitColumns).Return(nil),
		ts.db.EXPECT().ServerTableSchemaETagChanged(gomock.Any(), "visits", "s1", "").Return(nil),
	)
	ts.db.EXPECT().TableDefinitionEntry(gomock.Any(), "visits").Return(entry, nil).Times(2)
	ts.db.EXPECT().Columns(gomock.Any(), "visits").Return(visitColumns, nil).Times(2)

	ts.sync.EXPECT().GetTable(gomock.Any(), "visits").Return(&table, nil)
	expectQuietRows(ts, table, "")
	ts.db.EXPECT().RowCounts(gomock.Any(), "visits").Return(models.RowCounts{}, nil)
	ts.sync.EXPECT().PublishTableSyncStatus(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	result, err := newReconciler(ts).Sync(context.Background(), models.DirectionSync)
	require.NoError(t, err)
	assert.True(t, result.Table("visits").ServerHadSchemaChanges)
	assert.Equal(t, models.SyncSuccess, result.Table("visits").Outcome)
}

func TestSchemaReconciler_SchemaMismatchSkipsRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	ts := newTestSession(t, ctrl)

	table := visitsTable()
	table.SchemaETag = "s2"
	serverColumns := append(models.OrderedColumns{}, visitColumns...)
	serverColumns = append(serverColumns, models.Column{ElementKey: "extra", ElementName: "extra", ElementType: models.ElementTypeString, ListChildElementKeys: "[]"})

	expectServerVerified(ts)
	ts.sync.EXPECT().GetTables(gomock.Any(), "").Return(models.TableResourceList{Tables: []models.TableResource{table}}, nil)
	ts.db.EXPECT().TableIDs(gomock.Any()).Return([]string{"visits"}, nil)
	expectManifestsUnchanged(ts, false)

	ts.db.EXPECT().TableDefinitionEntry(gomock.Any(), "visits").
		Return(models.TableDefinitionEntry{TableID: "visits", SchemaETag: "s1", LastDataETag: "d1"}, nil)
	ts.db.EXPECT().Columns(gomock.Any(), "visits").Return(visitColumns, nil)
	ts.sync.EXPECT().GetTableDefinition(gomock.Any(), table.DefinitionURI).
		Return(models.TableDefinitionResource{TableID: "visits", SchemaETag: "s2", Columns: serverColumns}, nil)

	result, err := newReconciler(ts).Sync(context.Background(), models.DirectionSync)
	require.NoError(t, err)
	assert.Equal(t, models.SyncSuccess, result.AppLevelOutcome)
	assert.Equal(t, models.SyncTableRequiresAppLevelSync, result.Table("visits").Outcome)
	assert.True(t, result.Table("visits").ServerHadSchemaChanges)
	assert.False(t, result.Succeeded())
}

func TestSchemaReconciler_SchemaEpochAdopted(t *testing.T) {
	ctrl := gomock.NewController(t)
	ts := newTestSession(t, ctrl)

	table := visitsTable()
	table.SchemaETag = "s2"
	before := models.TableDefinitionEntry{TableID: "visits", SchemaETag: "s1", LastDataETag: "d1"}
	after := models.TableDefinitionEntry{TableID: "visits", SchemaETag: "s2"}

	expectServerVerified(ts)
	ts.sync.EXPECT().GetTables(gomock.Any(), "").Return(models.TableResourceList{Tables: []models.TableResource{table}}, nil)
	ts.db.EXPECT().TableIDs(gomock.Any()).Return([]string{"visits"}, nil)
	expectManifestsUnchanged(ts, false, "visits")

	ts.db.EXPECT().TableDefinitionEntry(gomock.Any(), "visits").Return(before, nil)
	ts.db.EXPECT().Columns(gomock.Any(), "visits").Return(visitColumns, nil).Times(2)
	ts.sync.EXPECT().GetTableDefinition(gomock.Any(), table.DefinitionURI).
		Return(models.TableDefinitionResource{TableID: "visits", SchemaETag: "s2", Columns: visitColumns}, nil)
	ts.sync.EXPECT().InstanceFilesURI("visits", "s1").Return("inst/s1")
	ts.db.EXPECT().ServerTableSchemaETagChanged(gomock.Any(), "visits", "s2", "inst/s1").Return(nil)
	ts.db.EXPECT().TableDefinitionEntry(gomock.Any(), "visits").Return(after, nil)

	ts.sync.EXPECT().GetTable(gomock.Any(), "visits").Return(&table, nil)
	expectQuietRows(ts, table, "")
	ts.db.EXPECT().RowCounts(gomock.Any(), "visits").Return(models.RowCounts{}, nil)
	ts.sync.EXPECT().PublishTableSyncStatus(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	result, err := newReconciler(ts).Sync(context.Background(), models.DirectionSync)
	require.NoError(t, err)
	assert.Equal(t, models.SyncSuccess, result.Table("visits").Outcome)
}

func TestSchemaReconciler_SchemaChangedBeforeRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	ts := newTestSession(t, ctrl)

	table := visitsTable()
	entry := models.TableDefinitionEntry{TableID: "visits", SchemaETag: "s1"}
	moved := table
	moved.SchemaETag = "s7"

	expectServerVerified(ts)
	ts.sync.EXPECT().GetTables(gomock.Any(), "").Return(models.TableResourceList{Tables: []models.TableResource{table}}, nil)
	ts.db.EXPECT().TableIDs(gomock.Any()).Return([]string{"visits"}, nil)
	expectManifestsUnchanged(ts, false, "visits")
	ts.db.EXPECT().TableDefinitionEntry(gomock.Any(), "visits").Return(entry, nil).Times(2)
	ts.db.EXPECT().Columns(gomock.Any(), "visits").Return(visitColumns, nil).Times(2)
	ts.sync.EXPECT().GetTable(gomock.Any(), "visits").Return(&moved, nil)

	result, err := newReconciler(ts).Sync(context.Background(), models.DirectionSync)
	require.NoError(t, err)
	assert.Equal(t, models.SyncTableRequiresAppLevelSync, result.Table("visits").Outcome)
}

func TestSchemaReconciler_ConflictsReported(t *testing.T) {
	ctrl := gomock.NewController(t)
	ts := newTestSession(t, ctrl)

	table := visitsTable()
	entry := models.TableDefinitionEntry{TableID: "visits", SchemaETag: "s1", LastDataETag: "d0"}

	expectServerVerified(ts)
	ts.sync.EXPECT().GetTables(gomock.Any(), "").Return(models.TableResourceList{Tables: []models.TableResource{table}}, nil)
	ts.db.EXPECT().TableIDs(gomock.Any()).Return([]string{"visits"}, nil)
	expectManifestsUnchanged(ts, false, "visits")
	ts.db.EXPECT().TableDefinitionEntry(gomock.Any(), "visits").Return(entry, nil).Times(2)
	ts.db.EXPECT().Columns(gomock.Any(), "visits").Return(visitColumns, nil).Times(2)
	ts.sync.EXPECT().GetTable(gomock.Any(), "visits").Return(&table, nil)
	expectQuietRows(ts, table, "d0")
	ts.db.EXPECT().RowCounts(gomock.Any(), "visits").Return(models.RowCounts{Rows: 4, Conflicts: 2}, nil)
	ts.sync.EXPECT().PublishTableSyncStatus(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ models.TableResource, status models.TableSyncStatus) error {
			assert.Equal(t, models.SyncTableContainsConflicts, status.Outcome)
			assert.Equal(t, 1, status.LocalNumConflicts)
			return adapter.ErrInternalServerFailure
		})

	result, err := newReconciler(ts).Sync(context.Background(), models.DirectionSync)
	require.NoError(t, err)
	assert.Equal(t, models.SyncTableContainsConflicts, result.Table("visits").Outcome)
}

// ── pull/push loop ────────────────────────────────────────────────────────────

// expectRefreshAndPull stubs the per-iteration table refresh and an empty
// pull, times times.
func expectRefreshAndPull(ts *testSession, table *models.TableResource, entry models.TableDefinitionEntry, times int) {
	ts.sync.EXPECT().GetTable(gomock.Any(), table.TableID).Return(table, nil).Times(times)
	ts.db.EXPECT().TableDefinitionEntry(gomock.Any(), table.TableID).Return(entry, nil).Times(times)
	ts.sync.EXPECT().GetUpdates(gomock.Any(), gomock.Any(), entry.LastDataETag, "", defaultFetchLimit).
		Return(models.RowPage{DataETag: entry.LastDataETag}, nil).Times(times)
	ts.db.EXPECT().UpdateTableETags(gomock.Any(), table.TableID, table.SchemaETag, entry.LastDataETag).Return(nil).Times(times)
}

// expectDirtyBatch stubs the push side reading rows, times times.
func expectDirtyBatch(ts *testSession, rows []models.Row, times int) {
	ts.db.EXPECT().RowIDsByState(gomock.Any(), "visits",
		models.SyncStateNewRow, models.SyncStateChanged, models.SyncStateDeleted).Return([]string{rows[0].ID}, nil).Times(times)
	ts.db.EXPECT().CheckpointRowIDs(gomock.Any(), "visits").Return(nil, nil).Times(times)
	ts.db.EXPECT().RowsByID(gomock.Any(), "visits", visitColumns, rows[0].ID).Return(rows, nil).Times(times)
}

func TestSchemaReconciler_RepullsAfterRefusedPush(t *testing.T) {
	ctrl := gomock.NewController(t)
	ts := newTestSession(t, ctrl)
	ctx := context.Background()

	table := visitsTable()
	entry := models.TableDefinitionEntry{TableID: "visits", SchemaETag: "s1", LastDataETag: "d1"}
	rows := []models.Row{localRow("r1", "", models.NewRow{}, "ann")}

	ts.db.EXPECT().Columns(gomock.Any(), "visits").Return(visitColumns, nil)
	expectRefreshAndPull(ts, &table, entry, 2)
	expectDirtyBatch(ts, rows, 2)
	gomock.InOrder(
		ts.sync.EXPECT().PushLocalRows(gomock.Any(), gomock.Any(), visitColumns, rows).Return(nil, nil),
		ts.sync.EXPECT().PushLocalRows(gomock.Any(), gomock.Any(), visitColumns, rows).Return(&models.RowOutcomeList{
			DataETag: "d2",
			Rows:     []models.RowOutcome{outcome("r1", "n1", models.RowOutcomeSuccess, false)},
		}, nil),
	)
	ts.db.EXPECT().UpdateRowETagAndSyncState(gomock.Any(), "visits", "r1", "n1", models.Synced{}).Return(nil)
	ts.db.EXPECT().UpdateTableETags(gomock.Any(), "visits", "s1", "d2").Return(nil)

	ts.db.EXPECT().RowIDsByState(gomock.Any(), "visits", models.SyncStateInConflict, models.SyncStateSyncedPendingFiles).Return(nil, nil)
	ts.db.EXPECT().CheckpointRowIDs(gomock.Any(), "visits").Return(nil, nil)
	ts.db.EXPECT().RowCounts(gomock.Any(), "visits").Return(models.RowCounts{Rows: 1}, nil)
	ts.sync.EXPECT().PublishTableSyncStatus(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tr models.TableResource, status models.TableSyncStatus) error {
			assert.Equal(t, "d2", tr.DataETag)
			assert.Equal(t, models.SyncSuccess, status.Outcome)
			return nil
		})

	result := models.NewTableLevelResult("visits")
	newReconciler(ts).syncTableRows(ctx, table, result)

	assert.Equal(t, models.SyncSuccess, result.Outcome)
	assert.True(t, result.PushedLocalData)
	assert.Equal(t, 1, result.ServerUpserts)
}

func TestSchemaReconciler_IterationLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	ts := newTestSession(t, ctrl)
	ts.Settings.MaxSyncIterations = 2

	table := visitsTable()
	entry := models.TableDefinitionEntry{TableID: "visits", SchemaETag: "s1", LastDataETag: "d1"}
	rows := []models.Row{localRow("r1", "", models.NewRow{}, "ann")}

	ts.db.EXPECT().Columns(gomock.Any(), "visits").Return(visitColumns, nil)
	expectRefreshAndPull(ts, &table, entry, 2)
	expectDirtyBatch(ts, rows, 2)
	ts.sync.EXPECT().PushLocalRows(gomock.Any(), gomock.Any(), visitColumns, rows).Return(nil, nil).Times(2)

	result := models.NewTableLevelResult("visits")
	newReconciler(ts).syncTableRows(context.Background(), table, result)

	assert.Equal(t, models.SyncFailure, result.Outcome)
	assert.Equal(t, ErrTooManySyncIterations.Error(), result.Message)
	assert.False(t, result.PushedLocalData)
}

// ── app level failures ────────────────────────────────────────────────────────

func TestSchemaReconciler_AppLevelFailures(t *testing.T) {
	tests := []struct {
		name      string
		direction models.SyncDirection
		setup     func(ts *testSession)
		wantErr   error
		want      models.SyncOutcome
	}{
		{
			name:      "unknown app name",
			direction: models.DirectionSync,
			setup: func(ts *testSession) {
				ts.sync.EXPECT().VerifyServerSupportsAppName(gomock.Any()).Return(adapter.ErrServerDoesNotRecognizeAppName)
			},
			wantErr: adapter.ErrServerDoesNotRecognizeAppName,
			want:    models.SyncAppNameDoesNotExistOnServer,
		},
		{
			name:      "no tables on server",
			direction: models.DirectionSync,
			setup: func(ts *testSession) {
				expectServerVerified(ts)
				ts.sync.EXPECT().GetTables(gomock.Any(), "").Return(models.TableResourceList{}, nil)
				ts.db.EXPECT().TableIDs(gomock.Any()).Return([]string{"visits"}, nil)
			},
			wantErr: ErrNoTablesOnServer,
			want:    models.SyncNoTablesOnServer,
		},
		{
			name:      "no local tables to reset",
			direction: models.DirectionResetServer,
			setup: func(ts *testSession) {
				expectServerVerified(ts)
				ts.sync.EXPECT().GetTables(gomock.Any(), "").Return(models.TableResourceList{Tables: []models.TableResource{visitsTable()}}, nil)
				ts.db.EXPECT().TableIDs(gomock.Any()).Return(nil, nil)
			},
			wantErr: ErrNoLocalTablesToReset,
			want:    models.SyncNoLocalTablesToReset,
		},
		{
			name:      "table list without cursor",
			direction: models.DirectionSync,
			setup: func(ts *testSession) {
				expectServerVerified(ts)
				ts.sync.EXPECT().GetTables(gomock.Any(), "").Return(models.TableResourceList{HasMoreResults: true}, nil)
			},
			wantErr: adapter.ErrClientDetectedVersionMismatch,
			want:    models.SyncIncompatibleServerVersion,
		},
		{
			name:      "reauth required",
			direction: models.DirectionSync,
			setup: func(ts *testSession) {
				ts.sync.EXPECT().VerifyServerSupportsAppName(gomock.Any()).Return(nil)
				ts.sync.EXPECT().GetUserRolesAndDefaultGroup(gomock.Any()).Return(nil, adapter.ErrAccessDeniedReauth)
			},
			wantErr: adapter.ErrAccessDeniedReauth,
			want:    models.SyncAccessDeniedReauth,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ts := newTestSession(t, ctrl)
			tt.setup(ts)

			result, err := newReconciler(ts).Sync(context.Background(), tt.direction)
			require.ErrorIs(t, err, tt.wantErr)
			require.NotNil(t, result)
			assert.Equal(t, tt.want, result.AppLevelOutcome)
			assert.NotEmpty(t, result.AppLevelMessage)
			assert.Empty(t, result.Tables())
		})
	}
}

func TestSchemaReconciler_PagesTableList(t *testing.T) {
	ctrl := gomock.NewController(t)
	ts := newTestSession(t, ctrl)

	a := visitsTable()
	b := visitsTable()
	b.TableID = "census"

	gomock.InOrder(
		ts.sync.EXPECT().GetTables(gomock.Any(), "").
			Return(models.TableResourceList{Tables: []models.TableResource{a}, HasMoreResults: true, WebSafeResumeCursor: "c1"}, nil),
		ts.sync.EXPECT().GetTables(gomock.Any(), "c1").
			Return(models.TableResourceList{Tables: []models.TableResource{b}, AppLevelManifestETag: "am"}, nil),
	)

	tables, manifest, err := newReconciler(ts).listServerTables(context.Background())
	require.NoError(t, err)
	assert.Len(t, tables, 2)
	assert.Equal(t, "am", manifest)
}

// ── push direction ────────────────────────────────────────────────────────────

func TestSchemaReconciler_ResetServer(t *testing.T) {
	ctrl := gomock.NewController(t)
	ts := newTestSession(t, ctrl)

	legacy := visitsTable()
	legacy.TableID = "legacy"
	created := visitsTable()

	expectServerVerified(ts)
	ts.sync.EXPECT().GetTables(gomock.Any(), "").Return(models.TableResourceList{Tables: []models.TableResource{legacy}}, nil)
	ts.db.EXPECT().TableIDs(gomock.Any()).Return([]string{"visits"}, nil)
	expectManifestsUnchanged(ts, true, "visits")

	gomock.InOrder(
		ts.db.EXPECT().TableDefinitionEntry(gomock.Any(), "visits").Return(models.TableDefinitionEntry{TableID: "visits"}, nil),
		ts.db.EXPECT().TableDefinitionEntry(gomock.Any(), "visits").
			Return(models.TableDefinitionEntry{TableID: "visits", SchemaETag: "s1"}, nil),
	)
	ts.db.EXPECT().Columns(gomock.Any(), "visits").Return(visitColumns, nil).Times(2)
	gomock.InOrder(
		ts.db.EXPECT().DeleteSyncETagsForTable(gomock.Any(), "visits").Return(nil),
		ts.sync.EXPECT().CreateTable(gomock.Any(), "visits", "", visitColumns).Return(created, nil),
		ts.db.EXPECT().UpdateTableETags(gomock.Any(), "visits", "s1", "").Return(nil),
	)
	ts.sync.EXPECT().DeleteTable(gomock.Any(), legacy).Return(nil)

	ts.sync.EXPECT().GetTable(gomock.Any(), "visits").Return(&created, nil)
	expectQuietRows(ts, created, "")
	ts.db.EXPECT().RowCounts(gomock.Any(), "visits").Return(models.RowCounts{}, nil)
	ts.sync.EXPECT().PublishTableSyncStatus(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	result, err := newReconciler(ts).Sync(context.Background(), models.DirectionResetServer)
	require.NoError(t, err)
	assert.Equal(t, models.SyncSuccess, result.Table("visits").Outcome)
	assert.Equal(t, models.SyncSuccess, result.Table("legacy").Outcome)
}
