// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"
	"math"
	"strconv"

	"github.com/MKhiriev/go-odk-sync/models"
)

// ActionKind is what must happen to the local replica for one server row.
type ActionKind int

const (
	// ActionIgnore leaves the local row untouched.
	ActionIgnore ActionKind = iota
	// ActionInsert stores Action.Row as a new local row.
	ActionInsert
	// ActionUpdate replaces the local row with Action.Row.
	ActionUpdate
	// ActionDelete removes every local copy of the row.
	ActionDelete
	// ActionDeleteAfterUpload removes the row once its pending attachments
	// reached the server.
	ActionDeleteAfterUpload
	// ActionConflict tags the local row with Action.LocalConflict and stores
	// Action.Row as its server copy.
	ActionConflict
)

func (k ActionKind) String() string {
	switch k {
	case ActionIgnore:
		return "ignore"
	case ActionInsert:
		return "insert"
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	case ActionDeleteAfterUpload:
		return "delete_after_upload"
	case ActionConflict:
		return "conflict"
	default:
		return fmt.Sprintf("ActionKind(%d)", int(k))
	}
}

// Action is the decision of the ConflictResolver for one server row.
type Action struct {
	Kind ActionKind
	// Local is the local (non server-copy) row, nil when the row is unknown
	// locally.
	Local *models.Row
	// Row is the row to write for inserts, updates and conflicts.
	Row           models.Row
	LocalConflict models.ConflictType
}

// ConflictResolver decides how a server row merges into the local replica.
// It performs no I/O.
type ConflictResolver struct{}

// NewConflictResolver returns a ConflictResolver.
func NewConflictResolver() *ConflictResolver {
	return &ConflictResolver{}
}

// Resolve returns the action for server given every stored local row with
// the same id. Server copies of an existing conflict pair are never the
// merge target.
func (r *ConflictResolver) Resolve(local []models.Row, server models.ServerRow, columns models.OrderedColumns) (Action, error) {
	var current, serverCopy *models.Row
	for i := range local {
		if local[i].ID != server.RowID {
			return Action{}, fmt.Errorf("%w: local row %q resolved against server row %q", ErrIllegalArgument, local[i].ID, server.RowID)
		}
		if c, ok := local[i].ConflictType(); ok && c.IsServerSide() {
			serverCopy = &local[i]
			continue
		}
		if current != nil {
			return Action{}, fmt.Errorf("%w: row %q stored twice", ErrIllegalState, server.RowID)
		}
		current = &local[i]
	}

	if current == nil {
		if server.Deleted {
			return Action{Kind: ActionIgnore}, nil
		}
		row := models.RowFromServer(server, columns, nil)
		row.State = models.SyncedStateFor(row.HasAttachments(columns))
		return Action{Kind: ActionInsert, Row: row}, nil
	}

	switch state := current.State.(type) {
	case models.Synced, models.SyncedPendingFiles:
		if server.Deleted {
			if _, pending := state.(models.SyncedPendingFiles); pending {
				return Action{Kind: ActionDeleteAfterUpload, Local: current}, nil
			}
			return Action{Kind: ActionDelete, Local: current}, nil
		}
		if current.RowETag == server.RowETag && identicalRows(*current, server, columns, true) {
			return Action{Kind: ActionIgnore, Local: current}, nil
		}
		row := models.RowFromServer(server, columns, nil)
		row.State = models.SyncedStateFor(row.HasAttachments(columns))
		return Action{Kind: ActionUpdate, Local: current, Row: row}, nil
	}

	localConflict, err := localConflictType(current.State)
	if err != nil {
		return Action{}, err
	}

	if server.Deleted && localConflict == models.LocalDeletedOldValues {
		return Action{Kind: ActionDelete, Local: current}, nil
	}

	if current.RowETag == server.RowETag {
		return Action{Kind: ActionIgnore, Local: current}, nil
	}
	// The open conflict already holds this server version.
	if serverCopy != nil && serverCopy.RowETag == server.RowETag {
		return Action{Kind: ActionIgnore, Local: current}, nil
	}

	if !server.Deleted && localConflict != models.LocalDeletedOldValues && identicalRows(*current, server, columns, false) {
		// The local change already reached the server under another ETag.
		row := models.RowFromServer(server, columns, nil)
		row.State = models.SyncedStateFor(row.HasAttachments(columns))
		return Action{Kind: ActionUpdate, Local: current, Row: row}, nil
	}

	serverConflict := models.ServerUpdatedUpdatedValues
	if server.Deleted {
		serverConflict = models.ServerDeletedOldValues
	}
	return Action{
		Kind:          ActionConflict,
		Local:         current,
		Row:           models.RowFromServer(server, columns, models.InConflict{Conflict: serverConflict}),
		LocalConflict: localConflict,
	}, nil
}

// localConflictType returns the tag a local row in state s carries once it
// conflicts with the server.
func localConflictType(s models.RowState) (models.ConflictType, error) {
	switch state := s.(type) {
	case models.NewRow, models.Changed:
		return models.LocalUpdatedUpdatedValues, nil
	case models.Deleted:
		return models.LocalDeletedOldValues, nil
	case models.InConflict:
		if state.Conflict.IsServerSide() {
			return 0, fmt.Errorf("%w: server copy used as local row", ErrIllegalState)
		}
		return state.Conflict, nil
	default:
		return 0, fmt.Errorf("%w: unexpected row state %T", ErrIllegalState, s)
	}
}

// identicalRows compares the user values and the metadata of a local row
// with a server row. The filter scope only counts when withScope is set;
// the row ETag never does.
func identicalRows(local models.Row, server models.ServerRow, columns models.OrderedColumns, withScope bool) bool {
	if local.FormID != server.FormID ||
		local.Locale != server.Locale ||
		local.SavepointType != server.SavepointType ||
		local.SavepointTimestamp != server.SavepointTimestamp ||
		local.SavepointCreator != server.SavepointCreator {
		return false
	}
	if withScope && local.FilterScope.Normalized() != server.FilterScope.Normalized() {
		return false
	}

	serverValues := server.Values()
	for _, c := range columns.Retained() {
		if !identicalValue(c.ElementType, local.Values[c.ElementKey], serverValues[c.ElementKey]) {
			return false
		}
	}
	return true
}

// identicalValue compares two stored values of a column. Numbers are equal
// when they are at most one ulp apart, so values that went through a
// float round trip on either side still match.
func identicalValue(elementType string, a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if *a == *b {
		return true
	}

	switch elementType {
	case models.ElementTypeNumber:
		x, errX := strconv.ParseFloat(*a, 64)
		y, errY := strconv.ParseFloat(*b, 64)
		if errX != nil || errY != nil {
			return false
		}
		return x == y || math.Nextafter(x, y) == y || math.Nextafter(y, x) == x
	case models.ElementTypeInteger:
		x, errX := strconv.ParseInt(*a, 10, 64)
		y, errY := strconv.ParseInt(*b, 10, 64)
		return errX == nil && errY == nil && x == y
	case models.ElementTypeBool:
		x, errX := strconv.ParseBool(*a)
		y, errY := strconv.ParseBool(*b)
		return errX == nil && errY == nil && x == y
	default:
		return false
	}
}
