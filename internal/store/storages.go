package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-odk-sync/internal/config"
	"github.com/MKhiriev/go-odk-sync/internal/logger"
)

// ClientStorages groups the local storage of the sync client.
type ClientStorages struct {
	// Database is the SQLite replica holding table definitions, rows and
	// sync ETags.
	Database DatabaseService

	db *DB
}

// NewClientStorages opens the SQLite database named by cfg.DB.DSN, creating
// the file if needed, and runs pending migrations.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, log *logger.Logger) (*ClientStorages, error) {
	log.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		Database: NewDatabaseService(db, log),
		db:       db,
	}, nil
}

// Close releases the database connection.
func (c *ClientStorages) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}
