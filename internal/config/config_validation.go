package config

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-odk-sync/models"
)

func (c *ClientConfig) validate() error {
	if c.Adapter.BaseURL == "" {
		return fmt.Errorf("%w: server URL is empty", ErrInvalidAdapterConfigs)
	}
	if c.App.AppName == "" {
		return fmt.Errorf("%w: app name is empty", ErrInvalidAdapterConfigs)
	}
	if c.Adapter.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request timeout must be positive", ErrInvalidAdapterConfigs)
	}
	if c.Adapter.RetryCount < 0 {
		return fmt.Errorf("%w: retry count is negative", ErrInvalidAdapterConfigs)
	}

	if c.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is empty", ErrInvalidStorageConfigs)
	}
	if strings.Contains(c.Storage.DB.DSN, ":memory:") {
		return fmt.Errorf("%w: in-memory database would lose sync state", ErrInvalidStorageConfigs)
	}
	if c.Storage.FileCachePath == "" {
		return fmt.Errorf("%w: file cache path is empty", ErrInvalidStorageConfigs)
	}

	if c.App.RootDir == "" {
		return fmt.Errorf("%w: application folder is empty", ErrInvalidAppConfigs)
	}
	if c.App.ClientVersion == "" {
		return fmt.Errorf("%w: client version is empty", ErrInvalidAppConfigs)
	}
	switch c.App.Direction {
	case models.DirectionSync, models.DirectionResetServer:
	default:
		return fmt.Errorf("%w: unknown direction %q", ErrInvalidAppConfigs, c.App.Direction)
	}
	if c.App.MaxSyncIterations < 1 {
		return fmt.Errorf("%w: max sync iterations must be at least 1", ErrInvalidAppConfigs)
	}

	if c.Workers.SyncInterval < 0 || c.Workers.WatchDebounce < 0 {
		return fmt.Errorf("%w: negative interval", ErrInvalidWorkerConfigs)
	}

	return nil
}
