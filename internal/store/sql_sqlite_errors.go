package store

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

// ErrorClassification indicates whether a failed database operation should
// be retried or abandoned.
type ErrorClassification int

const (
	// NonRetryable indicates that the failed operation should not be retried.
	// This is the default classification for unrecognised errors, constraint
	// violations and malformed statements.
	NonRetryable ErrorClassification = iota

	// Retryable indicates that the failed operation may succeed if attempted
	// again, e.g. once another connection releases its lock.
	Retryable
)

// ErrorClassificator classifies driver errors.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
	Unavailable(err error) bool
}

// SQLiteErrorClassifier implements [ErrorClassificator] for go-sqlite3.
type SQLiteErrorClassifier struct{}

// NewSQLiteErrorClassifier constructs a [SQLiteErrorClassifier].
func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

// Classify implements [ErrorClassificator]. Busy and locked databases are
// retryable; everything else, including non-driver errors, is not.
func (c *SQLiteErrorClassifier) Classify(err error) ErrorClassification {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return NonRetryable
	}

	switch sqliteErr.Code {
	case sqlite3.ErrBusy, sqlite3.ErrLocked:
		return Retryable
	}
	return NonRetryable
}

// Unavailable reports whether err means the database as a whole cannot be
// used, as opposed to a problem with one statement.
//
//   - SQLITE_BUSY, SQLITE_LOCKED: another writer holds the database
//   - SQLITE_IOERR, SQLITE_FULL: the disk failed or filled up
//   - SQLITE_CANTOPEN, SQLITE_NOTADB, SQLITE_CORRUPT: the file is unusable
//   - SQLITE_READONLY: the file cannot be written
func (c *SQLiteErrorClassifier) Unavailable(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}

	switch sqliteErr.Code {
	case sqlite3.ErrBusy,
		sqlite3.ErrLocked,
		sqlite3.ErrIoErr,
		sqlite3.ErrFull,
		sqlite3.ErrCantOpen,
		sqlite3.ErrNotADB,
		sqlite3.ErrCorrupt,
		sqlite3.ErrReadonly:
		return true
	}
	return false
}
