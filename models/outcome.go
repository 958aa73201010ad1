package models

// OutcomeType is the server's verdict on one pushed row.
type OutcomeType string

const (
	RowOutcomeUnknown    OutcomeType = "UNKNOWN"
	RowOutcomeSuccess    OutcomeType = "SUCCESS"
	RowOutcomeDenied     OutcomeType = "DENIED"
	RowOutcomeInConflict OutcomeType = "IN_CONFLICT"
	RowOutcomeFailed     OutcomeType = "FAILED"
)

// RowOutcome is the server's result for one pushed row. For IN_CONFLICT the
// embedded row carries the server's current values.
type RowOutcome struct {
	ServerRow
	Outcome OutcomeType `json:"outcome"`
}

// RowOutcomeList is the server's answer to a push batch, in request order.
type RowOutcomeList struct {
	Rows     []RowOutcome `json:"rows"`
	DataETag string       `json:"dataETag"`
}
