package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dario.cat/mergo"
)

// Default values applied before any other source.
const (
	DefaultAppName           = "default"
	DefaultClientVersion     = "2"
	DefaultRequestTimeout    = 60 * time.Second
	DefaultRetryCount        = 2
	DefaultMaxSyncIterations = 5
	DefaultWatchDebounce     = 2 * time.Second
	DefaultDotEnvFile        = ".env"
	// StateDirName is the folder under the application root holding the
	// local database and the hash cache.
	StateDirName = ".odksync"
)

type configBuilder struct {
	configs []*StructuredConfig
	args    []string
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
	}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	config.resolveDerived()
	return config, nil
}

// resolveDerived fills paths that default relative to the application
// folder once all sources are merged.
func (c *StructuredConfig) resolveDerived() {
	if c.App.RootDir == "" {
		return
	}

	stateDir := filepath.Join(c.App.RootDir, StateDirName)
	if c.Storage.DB.DSN == "" {
		c.Storage.DB.DSN = filepath.Join(stateDir, "sync.db")
	}
	if c.Storage.FileCache.Path == "" {
		c.Storage.FileCache.Path = filepath.Join(stateDir, "hashes.db")
	}
}

func (b *configBuilder) withDefaults() *configBuilder {
	b.configs = append(b.configs, &StructuredConfig{
		Server: Server{
			AppName:        DefaultAppName,
			RequestTimeout: DefaultRequestTimeout,
			RetryCount:     DefaultRetryCount,
		},
		App: App{
			ClientVersion:     DefaultClientVersion,
			AttachmentMode:    "SYNC",
			Direction:         "sync",
			MaxSyncIterations: DefaultMaxSyncIterations,
		},
		Workers: Workers{WatchDebounce: DefaultWatchDebounce},
		Log:     Log{Level: "info"},
	})
	return b
}

// withDotEnv loads the file named by ENV_FILE (default ".env") into the
// process environment. A missing default file is not an error.
func (b *configBuilder) withDotEnv() *configBuilder {
	path, explicit := os.LookupEnv("ENV_FILE")
	if !explicit {
		path = DefaultDotEnvFile
	}

	if err := loadDotEnv(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return b
		}
		b.err = errors.Join(b.err, err)
	}
	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

// withFlags parses args, or os.Args[1:] when args is nil.
func (b *configBuilder) withFlags(args []string) *configBuilder {
	if args == nil {
		args = os.Args[1:]
	}

	flags, err := ParseFlags(args)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.args = args
	b.configs = append(b.configs, flags)
	return b
}

func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string

	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			jsonPath = cfg.JSONFilePath
		}
	}

	if jsonPath != "" {
		jsonCfg, err := parseJSON(jsonPath)
		if err != nil {
			b.err = errors.Join(b.err, err)
			return b
		}
		b.configs = append(b.configs, jsonCfg)
	}

	return b
}
