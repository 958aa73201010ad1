package store

import (
	"fmt"
	"regexp"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-odk-sync/internal/logger"
	"github.com/MKhiriev/go-odk-sync/models"
)

// inListChunk bounds the number of bound parameters of one IN (...) clause.
const inListChunk = 500

// Metadata columns present in every data table, in select order.
var metadataColumns = []string{
	"_id",
	"_row_etag",
	"_sync_state",
	"_conflict_type",
	"_default_access",
	"_row_owner",
	"_group_read_only",
	"_group_modify",
	"_group_privileged",
	"_form_id",
	"_locale",
	"_savepoint_type",
	"_savepoint_timestamp",
	"_savepoint_creator",
}

var identifierPattern = regexp.MustCompile(`^\p{L}[\p{L}\p{M}\p{Nd}_]*$`)

type sqliteDatabaseService struct {
	*DB
	logger  *logger.Logger
	builder sq.StatementBuilderType
}

// NewDatabaseService returns the SQLite implementation of [DatabaseService].
// db must already be migrated.
func NewDatabaseService(db *DB, log *logger.Logger) DatabaseService {
	return &sqliteDatabaseService{
		DB:      db,
		logger:  log,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}
}

func quoteIdent(name string) string {
	return `"` + name + `"`
}

func tableIdent(tableID string) (string, error) {
	if !identifierPattern.MatchString(tableID) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTableID, tableID)
	}
	return quoteIdent(tableID), nil
}

// userColumnIdents returns the quoted retained columns of a table.
func userColumnIdents(columns models.OrderedColumns) ([]string, error) {
	retained := columns.Retained()
	idents := make([]string, 0, len(retained))
	for _, c := range retained {
		if !identifierPattern.MatchString(c.ElementKey) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidColumn, c.ElementKey)
		}
		idents = append(idents, quoteIdent(c.ElementKey))
	}
	return idents, nil
}

func chunk(ids []string, size int) [][]string {
	var chunks [][]string
	for len(ids) > size {
		chunks = append(chunks, ids[:size])
		ids = ids[size:]
	}
	if len(ids) > 0 {
		chunks = append(chunks, ids)
	}
	return chunks
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
