package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerURL_Set(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
		expected    string
	}{
		{name: "https with path", input: "https://sync.example.org/odk/", expected: "https://sync.example.org/odk"},
		{name: "http with port", input: "http://127.0.0.1:8080", expected: "http://127.0.0.1:8080"},
		{name: "surrounding spaces", input: "  http://host  ", expected: "http://host"},
		{name: "unsupported scheme", input: "ftp://host", expectError: true},
		{name: "missing host", input: "http://", expectError: true},
		{name: "relative", input: "sync.example.org", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var u ServerURL
			err := u.Set(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, u.String())
		})
	}
}

func TestServerURL_StringEmpty(t *testing.T) {
	var u ServerURL
	assert.Equal(t, "", u.String())

	var nilURL *ServerURL
	assert.Equal(t, "", nilURL.String())
}

func TestParseFlags(t *testing.T) {
	cfg, err := ParseFlags([]string{
		"-s", "http://host",
		"-app-name", "survey",
		"-u", "alice", "-p", "secret",
		"-request-timeout", "45s",
		"-d", "/tmp/db",
		"-root", "/srv/app",
		"-attachments", "DOWNLOAD",
		"-max-iterations", "7",
		"-interval", "1m",
		"-watch",
		"-log-level", "warn",
	})
	require.NoError(t, err)

	assert.Equal(t, "http://host", cfg.Server.URL)
	assert.Equal(t, "survey", cfg.Server.AppName)
	assert.Equal(t, "alice", cfg.Server.Username)
	assert.Equal(t, "secret", cfg.Server.Password)
	assert.Equal(t, 45*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "/tmp/db", cfg.Storage.DB.DSN)
	assert.Equal(t, "/srv/app", cfg.App.RootDir)
	assert.Equal(t, "DOWNLOAD", cfg.App.AttachmentMode)
	assert.Equal(t, "", cfg.App.Direction)
	assert.Equal(t, 7, cfg.App.MaxSyncIterations)
	assert.Equal(t, time.Minute, cfg.Workers.SyncInterval)
	assert.True(t, cfg.Workers.Watch)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestParseFlags_Empty(t *testing.T) {
	cfg, err := ParseFlags([]string{})
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseFlags_UnknownFlag(t *testing.T) {
	_, err := ParseFlags([]string{"-nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error parsing flags")
}
