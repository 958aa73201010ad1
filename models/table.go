package models

import (
	"time"

	"github.com/tidwall/gjson"
)

// Element types the engine treats specially.
const (
	ElementTypeString  = "string"
	ElementTypeNumber  = "number"
	ElementTypeInteger = "integer"
	ElementTypeBool    = "boolean"
	ElementTypeRowPath = "rowpath"
	ElementTypeArray   = "array"
	ElementTypeObject  = "object"
)

// Column is one column definition of a table.
type Column struct {
	ElementKey           string `json:"elementKey"`
	ElementName          string `json:"elementName"`
	ElementType          string `json:"elementType"`
	ListChildElementKeys string `json:"listChildElementKeys"`
}

// ChildElementKeys decodes the JSON list of child element keys.
func (c Column) ChildElementKeys() []string {
	if c.ListChildElementKeys == "" {
		return nil
	}
	children := gjson.Parse(c.ListChildElementKeys).Array()
	keys := make([]string, 0, len(children))
	for _, child := range children {
		keys = append(keys, child.String())
	}
	return keys
}

// OrderedColumns is the ordered column list of a table.
type OrderedColumns []Column

// Find returns the column with the given element key.
func (cols OrderedColumns) Find(elementKey string) (Column, bool) {
	for _, c := range cols {
		if c.ElementKey == elementKey {
			return c, true
		}
	}
	return Column{}, false
}

// Retained returns the columns that are stored in the data table: leaves of
// the column tree and arrays, but never the children of an array.
func (cols OrderedColumns) Retained() OrderedColumns {
	parents := make(map[string]Column)
	for _, c := range cols {
		for _, child := range c.ChildElementKeys() {
			parents[child] = c
		}
	}

	retained := make(OrderedColumns, 0, len(cols))
	for _, c := range cols {
		if isInsideArray(c, parents) {
			continue
		}
		if c.ElementType == ElementTypeArray || len(c.ChildElementKeys()) == 0 {
			retained = append(retained, c)
		}
	}
	return retained
}

func isInsideArray(c Column, parents map[string]Column) bool {
	seen := map[string]bool{c.ElementKey: true}
	for p, ok := parents[c.ElementKey]; ok; p, ok = parents[p.ElementKey] {
		if p.ElementType == ElementTypeArray {
			return true
		}
		if seen[p.ElementKey] {
			return false
		}
		seen[p.ElementKey] = true
	}
	return false
}

// Attachments returns the retained columns holding row-path fragments.
func (cols OrderedColumns) Attachments() OrderedColumns {
	var out OrderedColumns
	for _, c := range cols.Retained() {
		if c.ElementType == ElementTypeRowPath {
			out = append(out, c)
		}
	}
	return out
}

// TableDefinitionEntry is the locally persisted sync metadata of a table.
type TableDefinitionEntry struct {
	TableID      string
	SchemaETag   string
	LastDataETag string
	LastSyncTime time.Time
}

// TableResource describes a table as advertised by the server.
type TableResource struct {
	TableID                string `json:"tableId"`
	DataETag               string `json:"dataETag"`
	SchemaETag             string `json:"schemaETag"`
	SelfURI                string `json:"selfUri"`
	DefinitionURI          string `json:"definitionUri"`
	DataURI                string `json:"dataUri"`
	InstanceFilesURI       string `json:"instanceFilesUri"`
	DiffURI                string `json:"diffUri"`
	ACLURI                 string `json:"aclUri,omitempty"`
	TableLevelManifestETag string `json:"tableLevelManifestETag,omitempty"`
}

// TableResourceList is one page of the server's table listing.
type TableResourceList struct {
	Tables               []TableResource `json:"tables"`
	WebSafeResumeCursor  string          `json:"webSafeResumeCursor,omitempty"`
	HasMoreResults       bool            `json:"hasMoreResults"`
	AppLevelManifestETag string          `json:"appLevelManifestETag,omitempty"`
}

// TableDefinitionResource is the full column definition of a server table.
type TableDefinitionResource struct {
	TableID    string         `json:"tableId"`
	SchemaETag string         `json:"schemaETag,omitempty"`
	Columns    OrderedColumns `json:"orderedColumns"`
}

// TableSyncStatus is the per-table summary reported to the server after a
// row sync.
type TableSyncStatus struct {
	Outcome             SyncOutcome `json:"syncOutcome"`
	LocalNumRows        int         `json:"localNumRows"`
	LocalNumCheckpoints int         `json:"localNumCheckpoints"`
	LocalNumConflicts   int         `json:"localNumConflicts"`
	LocalInserts        int         `json:"localInserts"`
	LocalUpdates        int         `json:"localUpdates"`
	LocalDeletes        int         `json:"localDeletes"`
	LocalConflicts      int         `json:"localConflicts"`
	ServerUpserts       int         `json:"serverUpserts"`
	ServerDeletes       int         `json:"serverDeletes"`
}

// RowCounts summarizes the local rows of a table.
type RowCounts struct {
	Rows        int
	Checkpoints int
	Conflicts   int
}
