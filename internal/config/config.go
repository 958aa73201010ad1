// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container. It aggregates
// all sub-configurations and is populated by merging values from defaults,
// a .env file, environment variables, command-line flags, and an optional
// JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Server holds the address of the sync server and the credentials used
	// against it.
	Server Server `envPrefix:"SERVER_"`

	// Storage holds the local database and the file hash cache locations.
	Storage Storage `envPrefix:"STORAGE_"`

	// App holds settings of the synchronized application folder and of the
	// sync engine itself.
	App App `envPrefix:"APP_"`

	// Workers holds configuration for the periodic sync job and the file
	// watcher.
	Workers Workers `envPrefix:"WORKERS_"`

	// Log holds the log file location and level.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Server holds connection settings for the ODK sync endpoint.
type Server struct {
	// URL is the base URL of the server (e.g. "https://sync.example.org").
	// Env: SERVER_URL
	URL string `env:"URL"`

	// AppName is the application name the server hosts (usually "default").
	// Env: SERVER_APP_NAME
	AppName string `env:"APP_NAME"`

	// Username and Password select basic authentication.
	// Env: SERVER_USERNAME, SERVER_PASSWORD
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`

	// Token is a bearer token; it takes precedence over basic authentication.
	// Env: SERVER_TOKEN
	Token string `env:"TOKEN"`

	// RequestTimeout bounds a single HTTP request (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// RetryCount is how often a request failing at the transport level is
	// retried.
	// Env: SERVER_RETRY_COUNT
	RetryCount int `env:"RETRY_COUNT"`
}

// Storage groups the configuration for local persistence.
type Storage struct {
	// DB holds the SQLite database settings.
	DB DB `envPrefix:"DB_"`

	// FileCache holds the content hash cache settings.
	FileCache FileCache `envPrefix:"FILE_CACHE_"`
}

// DB holds the local SQLite database location.
type DB struct {
	// DSN is the go-sqlite3 data source name, usually a file path.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// FileCache holds the location of the bbolt file hash cache.
type FileCache struct {
	// Path of the bbolt database file.
	// Env: STORAGE_FILE_CACHE_PATH
	Path string `env:"PATH"`
}

// App holds settings of the application folder being synchronized.
type App struct {
	// RootDir is the application folder (it contains config/ and data/).
	// Env: APP_ROOT_DIR
	RootDir string `env:"ROOT_DIR"`

	// ClientVersion is the ODK client API version requested from the server.
	// Env: APP_CLIENT_VERSION
	ClientVersion string `env:"CLIENT_VERSION"`

	// AttachmentMode is one of SYNC, UPLOAD, DOWNLOAD or NONE.
	// Env: APP_ATTACHMENT_MODE
	AttachmentMode string `env:"ATTACHMENT_MODE"`

	// Direction is "sync" (device follows the server) or "reset" (server
	// follows the device).
	// Env: APP_DIRECTION
	Direction string `env:"DIRECTION"`

	// MaxSyncIterations bounds the pull/push loop of a table.
	// Env: APP_MAX_SYNC_ITERATIONS
	MaxSyncIterations int `env:"MAX_SYNC_ITERATIONS"`

	// InstallationID identifies this device to the server.
	// Env: APP_INSTALLATION_ID
	InstallationID string `env:"INSTALLATION_ID"`
}

// Workers holds configuration for background workers.
type Workers struct {
	// SyncInterval is the period of the sync job; zero runs a single pass.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// Watch triggers a sync pass when files under the app folder change.
	// Env: WORKERS_WATCH
	Watch bool `env:"WATCH"`

	// WatchDebounce is the quiet period after the last file event.
	// Env: WORKERS_WATCH_DEBOUNCE
	WatchDebounce time.Duration `env:"WATCH_DEBOUNCE"`
}

// Log holds the log output settings.
type Log struct {
	// File is the path of the rotating log file.
	// Env: LOG_FILE
	File string `env:"FILE"`

	// Level is a zerolog level name (debug, info, warn, error).
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`
}

// GetStructuredConfig loads and merges the configuration from all available
// sources. Command-line arguments are taken from os.Args.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withDotEnv().
		withEnv().
		withFlags(nil).
		withJSON().
		build()
}
