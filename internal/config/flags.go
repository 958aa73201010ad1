package config

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// ServerURL holds a validated http(s) base URL. It implements flag.Value.
type ServerURL struct {
	URL *url.URL
}

// ParseFlags parses configuration flags from args.
//
// Flags:
//
//	-s server base URL (http or https)
//	-app-name application name on the server
//	-u / -p basic auth username and password
//	-token bearer token
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-retry-count transport retry count
//	-d database DSN
//	-file-cache file hash cache path
//	-root application folder
//	-client-version client API version
//	-attachments attachment mode (SYNC, UPLOAD, DOWNLOAD, NONE)
//	-reset-server push local configuration over the server's
//	-max-iterations pull/push loop bound per table
//	-installation-id device installation id
//	-interval periodic sync interval
//	-watch sync when files under the app folder change
//	-log-file / -log-level log settings
//	-c/-config json file path with configs
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("odksync", flag.ContinueOnError)

	var serverURL ServerURL
	var appName, username, password, token string
	var requestTimeout, syncInterval time.Duration
	var retryCount, maxIterations int
	var databaseDSN, fileCachePath string
	var rootDir, clientVersion, attachmentMode, installationID string
	var resetServer, watch bool
	var logFile, logLevel string
	var jsonConfigPath string

	fs.Var(&serverURL, "s", "Server base URL")
	fs.StringVar(&appName, "app-name", "", "Application name on the server")
	fs.StringVar(&username, "u", "", "Username")
	fs.StringVar(&password, "p", "", "Password")
	fs.StringVar(&token, "token", "", "Bearer token")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.IntVar(&retryCount, "retry-count", 0, "Transport retry count")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&fileCachePath, "file-cache", "", "File hash cache path")
	fs.StringVar(&rootDir, "root", "", "Application folder")
	fs.StringVar(&clientVersion, "client-version", "", "Client API version")
	fs.StringVar(&attachmentMode, "attachments", "", "Attachment mode: SYNC, UPLOAD, DOWNLOAD or NONE")
	fs.BoolVar(&resetServer, "reset-server", false, "Make the server match this device")
	fs.IntVar(&maxIterations, "max-iterations", 0, "Pull/push iterations per table")
	fs.StringVar(&installationID, "installation-id", "", "Device installation id")
	fs.DurationVar(&syncInterval, "interval", 0, "Periodic sync interval (e.g., 5m)")
	fs.BoolVar(&watch, "watch", false, "Sync when files under the application folder change")
	fs.StringVar(&logFile, "log-file", "", "Log file path")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	direction := ""
	if resetServer {
		direction = "reset"
	}

	return &StructuredConfig{
		Server: Server{
			URL:            serverURL.String(),
			AppName:        appName,
			Username:       username,
			Password:       password,
			Token:          token,
			RequestTimeout: requestTimeout,
			RetryCount:     retryCount,
		},
		Storage: Storage{
			DB:        DB{DSN: databaseDSN},
			FileCache: FileCache{Path: fileCachePath},
		},
		App: App{
			RootDir:           rootDir,
			ClientVersion:     clientVersion,
			AttachmentMode:    attachmentMode,
			Direction:         direction,
			MaxSyncIterations: maxIterations,
			InstallationID:    installationID,
		},
		Workers: Workers{
			SyncInterval: syncInterval,
			Watch:        watch,
		},
		Log: Log{
			File:  logFile,
			Level: logLevel,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns the URL without a trailing slash, or "" when unset.
func (s *ServerURL) String() string {
	if s == nil || s.URL == nil {
		return ""
	}

	return strings.TrimRight(s.URL.String(), "/")
}

// Set parses an absolute http or https URL with a host.
func (s *ServerURL) Set(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return err
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("server URL must use http or https")
	}
	if u.Host == "" {
		return errors.New("server URL must include a host")
	}

	s.URL = u
	return nil
}
