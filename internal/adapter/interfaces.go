// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter talks to an ODK sync endpoint over its versioned REST
// protocol.
//
// [Synchronizer] is the transport capability consumed by the sync engine.
// The package ships a resty-backed implementation ([NewHTTPSynchronizer]).
// Every failure is classified into one of the sentinels in errors.go so the
// engine can map it to a sync outcome without looking at status codes.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-odk-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/synchronizer_mock.go -package=mock

// Synchronizer is the REST collaborator of the sync engine.
type Synchronizer interface {
	// VerifyServerSupportsAppName checks that the server hosts the
	// configured application.
	VerifyServerSupportsAppName(ctx context.Context) error
	// GetUserRolesAndDefaultGroup returns the caller's privileges, or nil
	// for anonymous access and servers without the endpoint.
	GetUserRolesAndDefaultGroup(ctx context.Context) (*models.PrivilegesInfo, error)

	// GetTables returns one page of the server's table list.
	GetTables(ctx context.Context, cursor string) (models.TableResourceList, error)
	// GetTable returns nil when the server does not know tableID.
	GetTable(ctx context.Context, tableID string) (*models.TableResource, error)
	GetTableDefinition(ctx context.Context, definitionURI string) (models.TableDefinitionResource, error)
	CreateTable(ctx context.Context, tableID, schemaETag string, columns models.OrderedColumns) (models.TableResource, error)
	DeleteTable(ctx context.Context, table models.TableResource) error

	// GetUpdates returns a page of row changes after sinceDataETag, or of
	// all rows when sinceDataETag is empty.
	GetUpdates(ctx context.Context, table models.TableResource, sinceDataETag, cursor string, fetchLimit int) (models.RowPage, error)
	// PushLocalRows submits rows under table.DataETag. A nil list means the
	// server's data epoch moved on and nothing was applied.
	PushLocalRows(ctx context.Context, table models.TableResource, columns models.OrderedColumns, rows []models.Row) (*models.RowOutcomeList, error)
	PublishTableSyncStatus(ctx context.Context, table models.TableResource, status models.TableSyncStatus) error

	// Manifest fetches return nil when the manifest is not modified since
	// lastKnownETag.
	GetAppLevelFileManifest(ctx context.Context, lastKnownETag, serverReportedETag string, pushLocalFiles bool) (*models.FileManifestDocument, error)
	GetTableLevelFileManifest(ctx context.Context, tableID, lastKnownETag, serverReportedETag string, pushLocalFiles bool) (*models.FileManifestDocument, error)
	GetRowLevelFileManifest(ctx context.Context, instanceFilesURI, rowID, lastKnownETag string) (*models.FileManifestDocument, error)

	// DownloadFile atomically replaces destPath with the content at
	// downloadURL.
	DownloadFile(ctx context.Context, destPath, downloadURL string) error
	UploadConfigFile(ctx context.Context, configRelativePath, localPath string) error
	DeleteConfigFile(ctx context.Context, configRelativePath string) error

	// ManifestURI names the app manifest (tableID "") or a table manifest.
	// It keys the cached manifest ETags.
	ManifestURI(tableID string) string
	// InstanceFilesURI is the attachment root of one schema generation of a
	// table.
	InstanceFilesURI(tableID, schemaETag string) string
	RowManifestURI(instanceFilesURI, rowID string) string

	UploadInstanceFileBatch(ctx context.Context, instanceFilesURI, rowID string, files []models.FileAttachment) error
	DownloadInstanceFileBatch(ctx context.Context, instanceFilesURI, rowID string, files []models.FileAttachment) error
}
