package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	Server struct {
		URL            string   `json:"url"`
		AppName        string   `json:"app_name"`
		Username       string   `json:"username"`
		Password       string   `json:"password"`
		Token          string   `json:"token"`
		RequestTimeout Duration `json:"request_timeout"`
		RetryCount     int      `json:"retry_count"`
	} `json:"server,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		FileCache struct {
			Path string `json:"path"`
		} `json:"file_cache,omitempty"`
	} `json:"storage,omitempty"`

	App struct {
		RootDir           string `json:"root_dir"`
		ClientVersion     string `json:"client_version"`
		AttachmentMode    string `json:"attachment_mode"`
		Direction         string `json:"direction"`
		MaxSyncIterations int    `json:"max_sync_iterations"`
		InstallationID    string `json:"installation_id"`
	} `json:"app,omitempty"`

	Workers struct {
		SyncInterval  Duration `json:"sync_interval"`
		Watch         bool     `json:"watch"`
		WatchDebounce Duration `json:"watch_debounce"`
	} `json:"workers,omitempty"`

	Log struct {
		File  string `json:"file"`
		Level string `json:"level"`
	} `json:"log,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Server: Server{
			URL:            jsonCfg.Server.URL,
			AppName:        jsonCfg.Server.AppName,
			Username:       jsonCfg.Server.Username,
			Password:       jsonCfg.Server.Password,
			Token:          jsonCfg.Server.Token,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			RetryCount:     jsonCfg.Server.RetryCount,
		},
		Storage: Storage{
			DB:        DB{DSN: jsonCfg.Storage.DB.DSN},
			FileCache: FileCache{Path: jsonCfg.Storage.FileCache.Path},
		},
		App: App{
			RootDir:           jsonCfg.App.RootDir,
			ClientVersion:     jsonCfg.App.ClientVersion,
			AttachmentMode:    jsonCfg.App.AttachmentMode,
			Direction:         jsonCfg.App.Direction,
			MaxSyncIterations: jsonCfg.App.MaxSyncIterations,
			InstallationID:    jsonCfg.App.InstallationID,
		},
		Workers: Workers{
			SyncInterval:  time.Duration(jsonCfg.Workers.SyncInterval),
			Watch:         jsonCfg.Workers.Watch,
			WatchDebounce: time.Duration(jsonCfg.Workers.WatchDebounce),
		},
		Log: Log{
			File:  jsonCfg.Log.File,
			Level: jsonCfg.Log.Level,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
