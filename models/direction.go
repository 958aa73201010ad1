package models

// SyncDirection selects how the app and table level phases treat
// disagreements between device and server.
type SyncDirection string

const (
	// DirectionSync makes the device match the server configuration and
	// exchanges row changes both ways.
	DirectionSync SyncDirection = "sync"
	// DirectionResetServer makes the server configuration match the device.
	DirectionResetServer SyncDirection = "reset"
)

// Pushes reports whether local configuration is authoritative.
func (d SyncDirection) Pushes() bool {
	return d == DirectionResetServer
}
