// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-odk-sync/internal/filecache"
	"github.com/MKhiriev/go-odk-sync/internal/mock"
)

type fixedID string

func (f fixedID) Generate() string { return string(f) }

// failingMeta fails every read.
type failingMeta struct{}

func (failingMeta) Meta(string) (string, error)  { return "", errors.New("disk error") }
func (failingMeta) SetMeta(string, string) error { return errors.New("disk error") }

func openCache(t *testing.T) *filecache.Cache {
	t.Helper()
	c, err := filecache.Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// ── InstallationID ────────────────────────────────────────────────────────

func TestInstallationID_Configured(t *testing.T) {
	id, err := InstallationID(failingMeta{}, "  device-7 ", fixedID("unused"))
	require.NoError(t, err)
	assert.Equal(t, "device-7", id)
}

func TestInstallationID_GeneratedOnceAndRemembered(t *testing.T) {
	c := openCache(t)

	id, err := InstallationID(c, "", fixedID("first"))
	require.NoError(t, err)
	assert.Equal(t, "first", id)

	id, err = InstallationID(c, "", fixedID("second"))
	require.NoError(t, err)
	assert.Equal(t, "first", id)
}

func TestInstallationID_ReadError(t *testing.T) {
	_, err := InstallationID(failingMeta{}, "", fixedID("x"))
	assert.Error(t, err)
}

// ── ForgetServerOnChange ──────────────────────────────────────────────────

func TestForgetServerOnChange_FirstRunKeepsETags(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := mock.NewMockDatabaseService(ctrl)
	c := openCache(t)

	require.NoError(t, ForgetServerOnChange(context.Background(), c, db, "https://odk.example.org/"))

	stored, err := c.Meta(metaServerURL)
	require.NoError(t, err)
	assert.Equal(t, "https://odk.example.org", stored)
}

func TestForgetServerOnChange_SameServer(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := mock.NewMockDatabaseService(ctrl)
	c := openCache(t)
	require.NoError(t, c.SetMeta(metaServerURL, "https://odk.example.org"))

	assert.NoError(t, ForgetServerOnChange(context.Background(), c, db, "https://odk.example.org"))
}

func TestForgetServerOnChange_NewServerDropsETags(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := mock.NewMockDatabaseService(ctrl)
	c := openCache(t)
	require.NoError(t, c.SetMeta(metaServerURL, "https://old.example.org"))

	db.EXPECT().DeleteAllSyncETags(gomock.Any()).Return(nil)

	require.NoError(t, ForgetServerOnChange(context.Background(), c, db, "https://new.example.org"))
	stored, err := c.Meta(metaServerURL)
	require.NoError(t, err)
	assert.Equal(t, "https://new.example.org", stored)
}

func TestForgetServerOnChange_DeleteFailureKeepsOldURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := mock.NewMockDatabaseService(ctrl)
	c := openCache(t)
	require.NoError(t, c.SetMeta(metaServerURL, "https://old.example.org"))

	db.EXPECT().DeleteAllSyncETags(gomock.Any()).Return(errors.New("locked"))

	assert.Error(t, ForgetServerOnChange(context.Background(), c, db, "https://new.example.org"))
	stored, err := c.Meta(metaServerURL)
	require.NoError(t, err)
	assert.Equal(t, "https://old.example.org", stored)
}
