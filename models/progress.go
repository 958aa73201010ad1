package models

// ProgressPhase names a stage of a sync run.
type ProgressPhase string

const (
	PhaseStarting    ProgressPhase = "STARTING"
	PhaseAppFiles    ProgressPhase = "APP_FILES"
	PhaseTableFiles  ProgressPhase = "TABLE_FILES"
	PhaseRows        ProgressPhase = "ROWS"
	PhaseAttachments ProgressPhase = "ATTACHMENTS"
	PhaseDone        ProgressPhase = "DONE"
)

// ProgressEvent is an incremental progress report. Percent is -1 when the
// stage cannot estimate completion.
type ProgressEvent struct {
	Phase   ProgressPhase
	TableID string
	Message string
	Done    int
	Total   int
	Percent float64
}
