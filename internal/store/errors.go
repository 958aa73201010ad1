package store

import "errors"

// Sentinel errors returned by the database service to signal well-known
// failure conditions. Callers should use [errors.Is] to match against these
// values.
var (
	// ErrStorageUnavailable is returned when the database cannot serve the
	// request at all: it is busy, locked, unreadable or its file is gone.
	ErrStorageUnavailable = errors.New("local storage unavailable")

	// ErrTableNotFound is returned when a table id has no local definition.
	ErrTableNotFound = errors.New("table not found")

	// ErrTableAlreadyExists is returned by CreateTable for a known table id.
	ErrTableAlreadyExists = errors.New("table already exists")

	// ErrRowNotFound is returned when an update targets a row id with no
	// local (non server-conflict) row.
	ErrRowNotFound = errors.New("row not found")

	// ErrInvalidTableID is returned for table ids that are not safe SQL
	// identifiers.
	ErrInvalidTableID = errors.New("invalid table id")

	// ErrInvalidColumn is returned for element keys that are not safe SQL
	// identifiers.
	ErrInvalidColumn = errors.New("invalid column element key")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML or DDL
	// statement fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
