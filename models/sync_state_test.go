package models

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRowState(t *testing.T) {
	tests := []struct {
		state    string
		conflict sql.NullInt64
		want     RowState
		wantErr  bool
	}{
		{state: "new_row", want: NewRow{}},
		{state: "changed", want: Changed{}},
		{state: "deleted", want: Deleted{}},
		{state: "synced", want: Synced{}},
		{state: "synced_pending_files", want: SyncedPendingFiles{}},
		{state: "in_conflict", conflict: sql.NullInt64{Int64: 3, Valid: true}, want: InConflict{Conflict: ServerUpdatedUpdatedValues}},
		{state: "in_conflict", wantErr: true},
		{state: "in_conflict", conflict: sql.NullInt64{Int64: 7, Valid: true}, wantErr: true},
		{state: "bogus", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			got, err := ParseRowState(tt.state, tt.conflict)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, SyncState(tt.state), got.SyncState())
		})
	}
}

func TestParseRowState_MissingTag(t *testing.T) {
	_, err := ParseRowState("in_conflict", sql.NullInt64{})
	assert.ErrorIs(t, err, ErrMissingConflictType)
}

func TestConflictColumnRoundTrip(t *testing.T) {
	for _, s := range []RowState{NewRow{}, Synced{}, InConflict{Conflict: LocalDeletedOldValues}, InConflict{Conflict: ServerDeletedOldValues}} {
		got, err := ParseRowState(string(s.SyncState()), ConflictColumn(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	assert.False(t, ConflictColumn(Changed{}).Valid)
}

func TestConflictType(t *testing.T) {
	assert.False(t, LocalDeletedOldValues.IsServerSide())
	assert.False(t, LocalUpdatedUpdatedValues.IsServerSide())
	assert.True(t, ServerDeletedOldValues.IsServerSide())
	assert.True(t, ServerUpdatedUpdatedValues.IsServerSide())
	assert.Equal(t, "SERVER_DELETED_OLD_VALUES", ServerDeletedOldValues.String())
	assert.Equal(t, "ConflictType(9)", ConflictType(9).String())
}

func TestDirtyStates(t *testing.T) {
	assert.True(t, IsDirty(NewRow{}))
	assert.True(t, IsDirty(Changed{}))
	assert.True(t, IsDirty(Deleted{}))
	assert.False(t, IsDirty(Synced{}))
	assert.False(t, IsDirty(SyncedPendingFiles{}))
	assert.False(t, IsDirty(InConflict{}))
	assert.Len(t, DirtySyncStates(), 3)

	assert.Equal(t, SyncedPendingFiles{}, SyncedStateFor(true))
	assert.Equal(t, Synced{}, SyncedStateFor(false))
}
