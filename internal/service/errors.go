package service

import "errors"

var (
	// ErrSchemaMismatch is returned when the server column definitions of a
	// table differ from the local ones.
	ErrSchemaMismatch = errors.New("server schema differs from local schema")

	// ErrMissingConfigForClientVersion is returned when the server has no
	// configuration files for this client version.
	ErrMissingConfigForClientVersion = errors.New("server has no configuration for this client version")

	// ErrIncompleteServerConfigFileBodyMissing is returned when a manifest
	// lists a config file with no content.
	ErrIncompleteServerConfigFileBodyMissing = errors.New("server config file has no body")

	// ErrIllegalState is returned when the server answers in a way the
	// protocol does not allow, such as a failed update of a live row.
	ErrIllegalState = errors.New("illegal sync state")

	// ErrIllegalArgument is returned when the conflict resolver is handed
	// local rows that do not belong to the server row being resolved.
	ErrIllegalArgument = errors.New("illegal argument")

	// ErrUpdateRequestRejected is returned when the server denied at least
	// one pushed row.
	ErrUpdateRequestRejected = errors.New("server rejected row update")

	// ErrTooManySyncIterations is returned when a table keeps requiring a
	// re-pull after the configured number of pull/push rounds.
	ErrTooManySyncIterations = errors.New("table did not settle within the sync iteration limit")

	// ErrNoLocalTablesToReset is returned when resetting the server from a
	// device without tables.
	ErrNoLocalTablesToReset = errors.New("no local tables to reset on server")

	// ErrNoTablesOnServer is returned when syncing against a server without
	// tables.
	ErrNoTablesOnServer = errors.New("no tables on server to sync")

	// ErrSyncInProgress is returned by Trigger while another run is active.
	ErrSyncInProgress = errors.New("sync already in progress")
)
