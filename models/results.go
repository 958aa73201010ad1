package models

import "time"

// TableLevelResult accumulates what happened to one table during a sync run.
type TableLevelResult struct {
	TableID string
	Outcome SyncOutcome
	Message string

	ServerHadSchemaChanges bool
	ServerHadDataChanges   bool
	HadLocalDataChanges    bool
	PulledServerData       bool
	PushedLocalData        bool

	LocalInserts           int
	LocalUpdates           int
	LocalDeletes           int
	LocalConflicts         int
	ServerUpserts          int
	ServerDeletes          int
	LocalAttachmentRetries int
}

// NewTableLevelResult returns a result in the WORKING state.
func NewTableLevelResult(tableID string) *TableLevelResult {
	return &TableLevelResult{TableID: tableID, Outcome: SyncWorking}
}

// Fail records a terminal outcome unless one has already been recorded.
func (r *TableLevelResult) Fail(outcome SyncOutcome, message string) {
	if r.Outcome.IsTerminal() {
		return
	}
	r.Outcome = outcome
	r.Message = message
}

// Status builds the summary published to the server.
func (r *TableLevelResult) Status(rows, checkpoints, conflicts int) TableSyncStatus {
	return TableSyncStatus{
		Outcome:             r.Outcome,
		LocalNumRows:        rows,
		LocalNumCheckpoints: checkpoints,
		LocalNumConflicts:   conflicts,
		LocalInserts:        r.LocalInserts,
		LocalUpdates:        r.LocalUpdates,
		LocalDeletes:        r.LocalDeletes,
		LocalConflicts:      r.LocalConflicts,
		ServerUpserts:       r.ServerUpserts,
		ServerDeletes:       r.ServerDeletes,
	}
}

// SyncResult is the outcome of one sync run.
type SyncResult struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time

	AppLevelOutcome SyncOutcome
	AppLevelMessage string
	Privileges      *PrivilegesInfo

	tables []*TableLevelResult
}

// NewSyncResult returns an empty result for the given run.
func NewSyncResult(runID string, startedAt time.Time) *SyncResult {
	return &SyncResult{RunID: runID, StartedAt: startedAt, AppLevelOutcome: SyncWorking}
}

// Table returns the result for tableID, creating it on first use.
func (r *SyncResult) Table(tableID string) *TableLevelResult {
	for _, t := range r.tables {
		if t.TableID == tableID {
			return t
		}
	}
	t := NewTableLevelResult(tableID)
	r.tables = append(r.tables, t)
	return t
}

// Tables returns the table results in the order they were first touched.
func (r *SyncResult) Tables() []*TableLevelResult {
	out := make([]*TableLevelResult, len(r.tables))
	copy(out, r.tables)
	return out
}

// Succeeded reports whether the app level and every table ended in SUCCESS.
func (r *SyncResult) Succeeded() bool {
	if !r.AppLevelOutcome.IsSuccess() {
		return false
	}
	for _, t := range r.tables {
		if !t.Outcome.IsSuccess() {
			return false
		}
	}
	return true
}
