package models

// RowAccess is the default access granted on a row by its filter scope.
type RowAccess string

const (
	AccessFull     RowAccess = "FULL"
	AccessModify   RowAccess = "MODIFY"
	AccessReadOnly RowAccess = "READ_ONLY"
	AccessHidden   RowAccess = "HIDDEN"
)

// RowFilterScope carries the ownership and group permissions of a row.
type RowFilterScope struct {
	DefaultAccess   RowAccess `json:"defaultAccess"`
	RowOwner        string    `json:"rowOwner,omitempty"`
	GroupReadOnly   string    `json:"groupReadOnly,omitempty"`
	GroupModify     string    `json:"groupModify,omitempty"`
	GroupPrivileged string    `json:"groupPrivileged,omitempty"`
}

// Normalized returns the scope with an empty default access replaced by FULL.
func (f RowFilterScope) Normalized() RowFilterScope {
	if f.DefaultAccess == "" {
		f.DefaultAccess = AccessFull
	}
	return f
}

// DataKeyValue is one user column value as sent on the wire. A nil Value is
// a SQL NULL.
type DataKeyValue struct {
	Column string  `json:"column"`
	Value  *string `json:"value"`
}

// ServerRow is a row as exchanged with the server.
type ServerRow struct {
	RowID                  string         `json:"rowId"`
	RowETag                string         `json:"rowETag,omitempty"`
	DataETagAtModification string         `json:"dataETagAtModification,omitempty"`
	Deleted                bool           `json:"deleted"`
	CreateUser             string         `json:"createUser,omitempty"`
	LastUpdateUser         string         `json:"lastUpdateUser,omitempty"`
	FormID                 string         `json:"formId,omitempty"`
	Locale                 string         `json:"locale,omitempty"`
	SavepointType          string         `json:"savepointType,omitempty"`
	SavepointTimestamp     string         `json:"savepointTimestamp"`
	SavepointCreator       string         `json:"savepointCreator,omitempty"`
	FilterScope            RowFilterScope `json:"filterScope"`
	OrderedColumns         []DataKeyValue `json:"orderedColumns"`
}

// Values indexes the ordered column values by element key.
func (r ServerRow) Values() map[string]*string {
	values := make(map[string]*string, len(r.OrderedColumns))
	for _, kv := range r.OrderedColumns {
		values[kv.Column] = kv.Value
	}
	return values
}

// Row is a row of a local table, including its sync metadata.
type Row struct {
	ID      string
	RowETag string
	State   RowState

	FormID             string
	Locale             string
	SavepointType      string // empty for checkpoint rows
	SavepointTimestamp string
	SavepointCreator   string
	FilterScope        RowFilterScope

	// Values holds the user column values keyed by element key; nil is NULL.
	Values map[string]*string
}

// IsCheckpoint reports whether the row is an incomplete savepoint.
func (r Row) IsCheckpoint() bool {
	return r.SavepointType == ""
}

// ConflictType returns the conflict tag of an in_conflict row.
func (r Row) ConflictType() (ConflictType, bool) {
	c, ok := r.State.(InConflict)
	return c.Conflict, ok
}

// RowFromServer converts a server row into a local row in the given state.
// Values are taken for the supplied columns only.
func RowFromServer(s ServerRow, columns OrderedColumns, state RowState) Row {
	serverValues := s.Values()
	values := make(map[string]*string, len(columns))
	for _, c := range columns.Retained() {
		values[c.ElementKey] = serverValues[c.ElementKey]
	}

	return Row{
		ID:                 s.RowID,
		RowETag:            s.RowETag,
		State:              state,
		FormID:             s.FormID,
		Locale:             s.Locale,
		SavepointType:      s.SavepointType,
		SavepointTimestamp: s.SavepointTimestamp,
		SavepointCreator:   s.SavepointCreator,
		FilterScope:        s.FilterScope.Normalized(),
		Values:             values,
	}
}

// ToServerRow converts a local row into its wire form, with values in column
// order. A row in the Deleted state is sent as deleted.
func (r Row) ToServerRow(columns OrderedColumns) ServerRow {
	retained := columns.Retained()
	ordered := make([]DataKeyValue, 0, len(retained))
	for _, c := range retained {
		ordered = append(ordered, DataKeyValue{Column: c.ElementKey, Value: r.Values[c.ElementKey]})
	}

	_, deleted := r.State.(Deleted)
	return ServerRow{
		RowID:              r.ID,
		RowETag:            r.RowETag,
		Deleted:            deleted,
		FormID:             r.FormID,
		Locale:             r.Locale,
		SavepointType:      r.SavepointType,
		SavepointTimestamp: r.SavepointTimestamp,
		SavepointCreator:   r.SavepointCreator,
		FilterScope:        r.FilterScope.Normalized(),
		OrderedColumns:     ordered,
	}
}

// AttachmentFragments returns the non-null values of the attachment columns,
// in column order.
func (r Row) AttachmentFragments(columns OrderedColumns) []AttachmentFragment {
	var fragments []AttachmentFragment
	for _, c := range columns.Attachments() {
		if v := r.Values[c.ElementKey]; v != nil {
			fragments = append(fragments, AttachmentFragment{ElementKey: c.ElementKey, RowPath: *v})
		}
	}
	return fragments
}

// HasAttachments reports whether any attachment column of the row is non-null.
func (r Row) HasAttachments(columns OrderedColumns) bool {
	return len(r.AttachmentFragments(columns)) > 0
}

// StringPtr returns a pointer to s, for building column values.
func StringPtr(s string) *string {
	return &s
}
