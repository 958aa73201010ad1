// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer wording used by the sync
// client when it reports a run to the user.
//
// All Msg* constants are human-readable hints that tell the user what to do
// about a sync outcome. Keeping them in one place ensures consistent wording
// across the report and the log.
package app

import "github.com/MKhiriev/go-odk-sync/models"

const (
	// MsgResolveConflicts is shown when rows were left in conflict. They stay
	// untouched until they are resolved on the device.
	MsgResolveConflicts = "resolve the conflicting rows on the device, then sync again"

	// MsgFinishCheckpoints is shown when rows are still being edited.
	MsgFinishCheckpoints = "finalize or discard the rows that are still being edited, then sync again"

	// MsgAttachmentsPending is shown when some row files could not be
	// transferred, for example because attachment sync is disabled.
	MsgAttachmentsPending = "some attachments were not transferred; sync again with attachments enabled"

	// MsgSignInAgain is shown when the server rejected the credentials.
	MsgSignInAgain = "credentials were rejected or expired; sign in again"

	// MsgAccessDenied is shown when the user lacks a privilege on the server.
	MsgAccessDenied = "the server denied access; ask an administrator for the required role"

	// MsgCheckNetwork is shown when the server could not be reached.
	MsgCheckNetwork = "the server could not be reached; check the network and server URL"

	// MsgCheckServerURL is shown when the URL does not point to an ODK server.
	MsgCheckServerURL = "the configured URL does not point to an ODK server"

	// MsgUnknownApp is shown when the server does not host the application.
	MsgUnknownApp = "the server does not host this application; check the app name"

	// MsgServerNotProvisioned is shown when the server has no configuration
	// for this client version.
	MsgServerNotProvisioned = "the server has no configuration for this client version; reset the app server first"

	// MsgUpdateClient is shown when client and server protocol versions
	// disagree.
	MsgUpdateClient = "client and server versions are incompatible; update the client"

	// MsgSchemaChanged is shown when the server table definition changed
	// under the device.
	MsgSchemaChanged = "the table definition changed on the server; reset the local copy of the table"

	// MsgServerFailure is shown when the server reported an internal error.
	MsgServerFailure = "the server failed; try again later"

	// MsgLocalDatabase is shown when the local database could not be used.
	MsgLocalDatabase = "the local database is unavailable; close other programs using it and retry"

	// MsgSyncAppFirst is shown when a table cannot sync before the
	// application files do.
	MsgSyncAppFirst = "application files are out of date; run a full sync"

	// MsgNothingToSync is shown when neither side has tables.
	MsgNothingToSync = "there are no tables to sync"

	// MsgRetry is shown for any other failure.
	MsgRetry = "sync failed; see the log for details and retry"
)

var outcomeMessages = map[models.SyncOutcome]string{
	models.SyncTableContainsConflicts:         MsgResolveConflicts,
	models.SyncTableContainsCheckpoints:       MsgFinishCheckpoints,
	models.SyncTablePendingAttachments:        MsgAttachmentsPending,
	models.SyncAccessDeniedReauth:             MsgSignInAgain,
	models.SyncAccessDenied:                   MsgAccessDenied,
	models.SyncNetworkTransmission:            MsgCheckNetwork,
	models.SyncUnexpectedRedirect:             MsgCheckServerURL,
	models.SyncNotOpenDataKitServer:           MsgCheckServerURL,
	models.SyncAppNameDoesNotExistOnServer:    MsgUnknownApp,
	models.SyncClientVersionFilesMissing:      MsgServerNotProvisioned,
	models.SyncIncompleteServerConfigFileBody: MsgServerNotProvisioned,
	models.SyncIncompatibleServerVersion:      MsgUpdateClient,
	models.SyncBadClientConfig:                MsgUpdateClient,
	models.SyncSchemaColumnDefinitionMismatch: MsgSchemaChanged,
	models.SyncInternalServerFailure:          MsgServerFailure,
	models.SyncLocalDatabase:                  MsgLocalDatabase,
	models.SyncTableRequiresAppLevelSync:      MsgSyncAppFirst,
	models.SyncNoTablesOnServer:               MsgNothingToSync,
	models.SyncNoLocalTablesToReset:           MsgNothingToSync,
}

// OutcomeMessage returns the hint for outcome. Success and in-progress
// outcomes have none.
func OutcomeMessage(outcome models.SyncOutcome) string {
	if outcome.IsSuccess() || !outcome.IsTerminal() {
		return ""
	}
	if msg, ok := outcomeMessages[outcome]; ok {
		return msg
	}
	return MsgRetry
}
