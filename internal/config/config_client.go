package config

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-odk-sync/models"
)

// ClientApp holds settings of the application folder and the sync engine.
type ClientApp struct {
	// RootDir is the application folder.
	RootDir string
	// AppName is the application name on the server.
	AppName string
	// ClientVersion is the client API version sent in manifest and file URLs.
	ClientVersion string
	// AttachmentMode limits row attachment transfers.
	AttachmentMode models.AttachmentMode
	// Direction selects whether device or server configuration wins.
	Direction models.SyncDirection
	// MaxSyncIterations bounds the pull/push loop of a table.
	MaxSyncIterations int
	// InstallationID identifies the device; empty means "generate one".
	InstallationID string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// BaseURL is the server URL without trailing slash.
	BaseURL string
	// Username and Password select basic authentication.
	Username string
	Password string
	// Token selects bearer authentication.
	Token string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
	// RetryCount is the transport-level retry count.
	RetryCount int
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite connection string used by the client.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
	// FileCachePath is the bbolt hash cache location.
	FileCachePath string
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the sync job runs; zero runs once.
	SyncInterval time.Duration
	// Watch enables the file watcher.
	Watch bool
	// WatchDebounce is the quiet period after file events.
	WatchDebounce time.Duration
}

// ClientLog holds log output settings.
type ClientLog struct {
	File  string
	Level string
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
	Log     ClientLog
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return NewClientConfig(cfg)
}

// NewClientConfig maps cfg to the client view and validates it.
func NewClientConfig(cfg *StructuredConfig) (*ClientConfig, error) {
	mode, err := models.ParseAttachmentMode(cfg.App.AttachmentMode)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAppConfigs, err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			RootDir:           cfg.App.RootDir,
			AppName:           cfg.Server.AppName,
			ClientVersion:     cfg.App.ClientVersion,
			AttachmentMode:    mode,
			Direction:         models.SyncDirection(cfg.App.Direction),
			MaxSyncIterations: cfg.App.MaxSyncIterations,
			InstallationID:    cfg.App.InstallationID,
		},
		Adapter: ClientAdapter{
			BaseURL:        cfg.Server.URL,
			Username:       cfg.Server.Username,
			Password:       cfg.Server.Password,
			Token:          cfg.Server.Token,
			RequestTimeout: cfg.Server.RequestTimeout,
			RetryCount:     cfg.Server.RetryCount,
		},
		Storage: ClientStorage{
			DB:            ClientDB{DSN: cfg.Storage.DB.DSN},
			FileCachePath: cfg.Storage.FileCache.Path,
		},
		Workers: ClientWorkers{
			SyncInterval:  cfg.Workers.SyncInterval,
			Watch:         cfg.Workers.Watch,
			WatchDebounce: cfg.Workers.WatchDebounce,
		},
		Log: ClientLog{File: cfg.Log.File, Level: cfg.Log.Level},
	}

	return clientCfg, clientCfg.validate()
}
