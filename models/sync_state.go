// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"database/sql"
	"errors"
	"fmt"
)

// SyncState is the persisted name of a row's lifecycle state.
type SyncState string

const (
	SyncStateNewRow             SyncState = "new_row"
	SyncStateChanged            SyncState = "changed"
	SyncStateDeleted            SyncState = "deleted"
	SyncStateSynced             SyncState = "synced"
	SyncStateSyncedPendingFiles SyncState = "synced_pending_files"
	SyncStateInConflict         SyncState = "in_conflict"
)

// ConflictType tags one side of a conflict pair. The integer values are the
// ones exchanged with the server and stored in the _conflict_type column.
type ConflictType int

const (
	// LocalDeletedOldValues marks the local copy of a row the device deleted.
	LocalDeletedOldValues ConflictType = 0
	// LocalUpdatedUpdatedValues marks the local copy of a row the device changed.
	LocalUpdatedUpdatedValues ConflictType = 1
	// ServerDeletedOldValues marks the server copy of a row the server deleted.
	ServerDeletedOldValues ConflictType = 2
	// ServerUpdatedUpdatedValues marks the server copy of a row the server changed.
	ServerUpdatedUpdatedValues ConflictType = 3
)

// ErrMissingConflictType is returned when an in_conflict row has no conflict tag.
var ErrMissingConflictType = errors.New("in_conflict row without conflict type")

// IsServerSide reports whether t tags the server copy of a conflict pair.
func (t ConflictType) IsServerSide() bool {
	return t == ServerDeletedOldValues || t == ServerUpdatedUpdatedValues
}

func (t ConflictType) String() string {
	switch t {
	case LocalDeletedOldValues:
		return "LOCAL_DELETED_OLD_VALUES"
	case LocalUpdatedUpdatedValues:
		return "LOCAL_UPDATED_UPDATED_VALUES"
	case ServerDeletedOldValues:
		return "SERVER_DELETED_OLD_VALUES"
	case ServerUpdatedUpdatedValues:
		return "SERVER_UPDATED_UPDATED_VALUES"
	default:
		return fmt.Sprintf("ConflictType(%d)", int(t))
	}
}

// RowState is the lifecycle state of a local row. It is a closed sum type:
// the only implementations are NewRow, Changed, Deleted, Synced,
// SyncedPendingFiles and InConflict. InConflict always carries its tag.
type RowState interface {
	SyncState() SyncState
	isRowState()
}

type (
	NewRow             struct{}
	Changed            struct{}
	Deleted            struct{}
	Synced             struct{}
	SyncedPendingFiles struct{}
	InConflict         struct{ Conflict ConflictType }
)

func (NewRow) SyncState() SyncState             { return SyncStateNewRow }
func (Changed) SyncState() SyncState            { return SyncStateChanged }
func (Deleted) SyncState() SyncState            { return SyncStateDeleted }
func (Synced) SyncState() SyncState             { return SyncStateSynced }
func (SyncedPendingFiles) SyncState() SyncState { return SyncStateSyncedPendingFiles }
func (InConflict) SyncState() SyncState         { return SyncStateInConflict }

func (NewRow) isRowState()             {}
func (Changed) isRowState()            {}
func (Deleted) isRowState()            {}
func (Synced) isRowState()             {}
func (SyncedPendingFiles) isRowState() {}
func (InConflict) isRowState()         {}

// ParseRowState rebuilds a RowState from its stored columns. An in_conflict
// state without a conflict tag is rejected with ErrMissingConflictType.
func ParseRowState(state string, conflict sql.NullInt64) (RowState, error) {
	switch SyncState(state) {
	case SyncStateNewRow:
		return NewRow{}, nil
	case SyncStateChanged:
		return Changed{}, nil
	case SyncStateDeleted:
		return Deleted{}, nil
	case SyncStateSynced:
		return Synced{}, nil
	case SyncStateSyncedPendingFiles:
		return SyncedPendingFiles{}, nil
	case SyncStateInConflict:
		if !conflict.Valid {
			return nil, ErrMissingConflictType
		}
		t := ConflictType(conflict.Int64)
		if t < LocalDeletedOldValues || t > ServerUpdatedUpdatedValues {
			return nil, fmt.Errorf("unknown conflict type %d", conflict.Int64)
		}
		return InConflict{Conflict: t}, nil
	default:
		return nil, fmt.Errorf("unknown sync state %q", state)
	}
}

// ConflictColumn returns the value stored in the _conflict_type column for s.
func ConflictColumn(s RowState) sql.NullInt64 {
	if c, ok := s.(InConflict); ok {
		return sql.NullInt64{Int64: int64(c.Conflict), Valid: true}
	}
	return sql.NullInt64{}
}

// SyncedStateFor returns SyncedPendingFiles when the row references at least
// one attachment, Synced otherwise.
func SyncedStateFor(hasAttachments bool) RowState {
	if hasAttachments {
		return SyncedPendingFiles{}
	}
	return Synced{}
}

// IsDirty reports whether s holds a local change that must be pushed.
func IsDirty(s RowState) bool {
	switch s.(type) {
	case NewRow, Changed, Deleted:
		return true
	}
	return false
}

// DirtySyncStates lists the persisted states selected for push.
func DirtySyncStates() []SyncState {
	return []SyncState{SyncStateNewRow, SyncStateChanged, SyncStateDeleted}
}
