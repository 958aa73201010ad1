// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-odk-sync/models"
)

func TestConflictResolver_Resolve(t *testing.T) {
	r := NewConflictResolver()

	tests := []struct {
		name          string
		local         []models.Row
		server        models.ServerRow
		wantKind      ActionKind
		wantState     models.RowState
		wantLocalType models.ConflictType
	}{
		{
			name:      "unknown row is inserted",
			server:    serverRow("r1", "e1", false, "ann"),
			wantKind:  ActionInsert,
			wantState: models.Synced{},
		},
		{
			name:     "unknown deleted row is ignored",
			server:   serverRow("r1", "e1", true, "ann"),
			wantKind: ActionIgnore,
		},
		{
			name:      "synced row with new values is updated",
			local:     []models.Row{localRow("r1", "e1", models.Synced{}, "ann")},
			server:    serverRow("r1", "e2", false, "bob"),
			wantKind:  ActionUpdate,
			wantState: models.Synced{},
		},
		{
			name:     "identical synced row is a no-op",
			local:    []models.Row{localRow("r1", "e1", models.Synced{}, "ann")},
			server:   serverRow("r1", "e1", false, "ann"),
			wantKind: ActionIgnore,
		},
		{
			name:     "synced row deleted on server",
			local:    []models.Row{localRow("r1", "e1", models.Synced{}, "ann")},
			server:   serverRow("r1", "e2", true, "ann"),
			wantKind: ActionDelete,
		},
		{
			name:     "pending files row deleted on server",
			local:    []models.Row{localRow("r1", "e1", models.SyncedPendingFiles{}, "ann")},
			server:   serverRow("r1", "e2", true, "ann"),
			wantKind: ActionDeleteAfterUpload,
		},
		{
			name:     "both sides deleted",
			local:    []models.Row{localRow("r1", "e1", models.Deleted{}, "ann")},
			server:   serverRow("r1", "e2", true, "ann"),
			wantKind: ActionDelete,
		},
		{
			name: "local deleted conflict and server deleted",
			local: []models.Row{
				localRow("r1", "e1", models.InConflict{Conflict: models.LocalDeletedOldValues}, "ann"),
				localRow("r1", "e2", models.InConflict{Conflict: models.ServerUpdatedUpdatedValues}, "bob"),
			},
			server:   serverRow("r1", "e3", true, "bob"),
			wantKind: ActionDelete,
		},
		{
			name:     "changed row with same etag waits for push",
			local:    []models.Row{localRow("r1", "e1", models.Changed{}, "ann")},
			server:   serverRow("r1", "e1", false, "bob"),
			wantKind: ActionIgnore,
		},
		{
			name:          "changed row against server change conflicts",
			local:         []models.Row{localRow("r2", "e1", models.Changed{}, "ann")},
			server:        serverRow("r2", "e2", false, "bob"),
			wantKind:      ActionConflict,
			wantState:     models.InConflict{Conflict: models.ServerUpdatedUpdatedValues},
			wantLocalType: models.LocalUpdatedUpdatedValues,
		},
		{
			name:          "deleted row against server change conflicts",
			local:         []models.Row{localRow("r2", "e1", models.Deleted{}, "ann")},
			server:        serverRow("r2", "e2", false, "ann"),
			wantKind:      ActionConflict,
			wantState:     models.InConflict{Conflict: models.ServerUpdatedUpdatedValues},
			wantLocalType: models.LocalDeletedOldValues,
		},
		{
			name:          "changed row against server delete conflicts",
			local:         []models.Row{localRow("r2", "e1", models.NewRow{}, "ann")},
			server:        serverRow("r2", "e2", true, "ann"),
			wantKind:      ActionConflict,
			wantState:     models.InConflict{Conflict: models.ServerDeletedOldValues},
			wantLocalType: models.LocalUpdatedUpdatedValues,
		},
		{
			name:      "changed row already on server is adopted",
			local:     []models.Row{localRow("r3", "e1", models.Changed{}, "ann")},
			server:    serverRow("r3", "e2", false, "ann"),
			wantKind:  ActionUpdate,
			wantState: models.Synced{},
		},
		{
			name: "existing conflict keeps its local tag",
			local: []models.Row{
				localRow("r4", "e1", models.InConflict{Conflict: models.LocalUpdatedUpdatedValues}, "ann"),
				localRow("r4", "e2", models.InConflict{Conflict: models.ServerUpdatedUpdatedValues}, "bob"),
			},
			server:        serverRow("r4", "e3", false, "carl"),
			wantKind:      ActionConflict,
			wantState:     models.InConflict{Conflict: models.ServerUpdatedUpdatedValues},
			wantLocalType: models.LocalUpdatedUpdatedValues,
		},
		{
			name: "open conflict against the same server version is a no-op",
			local: []models.Row{
				localRow("r5", "e1", models.InConflict{Conflict: models.LocalUpdatedUpdatedValues}, "ann"),
				localRow("r5", "e2", models.InConflict{Conflict: models.ServerUpdatedUpdatedValues}, "bob"),
			},
			server:   serverRow("r5", "e2", false, "bob"),
			wantKind: ActionIgnore,
		},
		{
			name: "open delete conflict against the same server delete is a no-op",
			local: []models.Row{
				localRow("r6", "e1", models.InConflict{Conflict: models.LocalUpdatedUpdatedValues}, "ann"),
				localRow("r6", "e2", models.InConflict{Conflict: models.ServerDeletedOldValues}, "ann"),
			},
			server:   serverRow("r6", "e2", true, "ann"),
			wantKind: ActionIgnore,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, err := r.Resolve(tt.local, tt.server, visitColumns)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, action.Kind, action.Kind.String())
			if tt.wantState != nil {
				assert.Equal(t, tt.wantState, action.Row.State)
				assert.Equal(t, tt.server.RowETag, action.Row.RowETag)
			}
			if tt.wantKind == ActionConflict {
				assert.Equal(t, tt.wantLocalType, action.LocalConflict)
			}
		})
	}
}

func TestConflictResolver_InsertWithAttachmentIsPending(t *testing.T) {
	s := serverRow("r1", "e1", false, "ann")
	s.OrderedColumns[2].Value = models.StringPtr("photo.jpg")

	action, err := NewConflictResolver().Resolve(nil, s, visitColumns)
	require.NoError(t, err)
	assert.Equal(t, ActionInsert, action.Kind)
	assert.Equal(t, models.SyncedPendingFiles{}, action.Row.State)
}

func TestConflictResolver_ResolveIsIdempotent(t *testing.T) {
	r := NewConflictResolver()
	server := serverRow("r1", "e2", false, "bob")

	first, err := r.Resolve([]models.Row{localRow("r1", "e1", models.Synced{}, "ann")}, server, visitColumns)
	require.NoError(t, err)
	require.Equal(t, ActionUpdate, first.Kind)

	second, err := r.Resolve([]models.Row{first.Row}, server, visitColumns)
	require.NoError(t, err)
	assert.Equal(t, ActionIgnore, second.Kind)
}

func TestConflictResolver_RejectsBadInput(t *testing.T) {
	r := NewConflictResolver()

	_, err := r.Resolve([]models.Row{localRow("other", "e1", models.Synced{}, "ann")}, serverRow("r1", "e1", false, "ann"), visitColumns)
	assert.ErrorIs(t, err, ErrIllegalArgument)

	twice := []models.Row{localRow("r1", "e1", models.Changed{}, "a"), localRow("r1", "e1", models.Changed{}, "b")}
	_, err = r.Resolve(twice, serverRow("r1", "e2", false, "ann"), visitColumns)
	assert.ErrorIs(t, err, ErrIllegalState)
}

func TestIdenticalValue(t *testing.T) {
	s := models.StringPtr

	assert.True(t, identicalValue(models.ElementTypeString, nil, nil))
	assert.False(t, identicalValue(models.ElementTypeString, nil, s("")))
	assert.True(t, identicalValue(models.ElementTypeString, s("a"), s("a")))
	assert.False(t, identicalValue(models.ElementTypeString, s("a"), s("A")))

	assert.True(t, identicalValue(models.ElementTypeNumber, s("1.5"), s("1.50")))
	assert.True(t, identicalValue(models.ElementTypeNumber, s("0.1"), s("0.10000000000000002")))
	assert.False(t, identicalValue(models.ElementTypeNumber, s("0.1"), s("0.1000001")))
	assert.False(t, identicalValue(models.ElementTypeNumber, s("x"), s("0.1")))

	assert.True(t, identicalValue(models.ElementTypeInteger, s("007"), s("7")))
	assert.True(t, identicalValue(models.ElementTypeBool, s("true"), s("TRUE")))
	assert.False(t, identicalValue(models.ElementTypeBool, s("true"), s("false")))
}
