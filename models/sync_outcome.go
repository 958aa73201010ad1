// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SyncOutcome is the terminal (or in-progress) result of syncing one scope:
// the application level or a single table.
type SyncOutcome string

const (
	SyncWorking SyncOutcome = "WORKING"
	SyncSuccess SyncOutcome = "SUCCESS"
	SyncFailure SyncOutcome = "FAILURE"

	SyncAccessDenied                   SyncOutcome = "ACCESS_DENIED_EXCEPTION"
	SyncAccessDeniedReauth             SyncOutcome = "ACCESS_DENIED_REAUTH_EXCEPTION"
	SyncBadClientConfig                SyncOutcome = "BAD_CLIENT_CONFIG_EXCEPTION"
	SyncAppNameDoesNotExistOnServer    SyncOutcome = "APPNAME_DOES_NOT_EXIST_ON_SERVER"
	SyncClientVersionFilesMissing      SyncOutcome = "CLIENT_VERSION_FILES_DO_NOT_EXIST_ON_SERVER"
	SyncIncompatibleServerVersion      SyncOutcome = "INCOMPATIBLE_SERVER_VERSION_EXCEPTION"
	SyncIncompleteServerConfigFileBody SyncOutcome = "INCOMPLETE_SERVER_CONFIG_MISSING_FILE_BODY"
	SyncInternalServerFailure          SyncOutcome = "INTERNAL_SERVER_FAILURE_EXCEPTION"
	SyncNetworkTransmission            SyncOutcome = "NETWORK_TRANSMISSION_EXCEPTION"
	SyncNotOpenDataKitServer           SyncOutcome = "NOT_OPEN_DATA_KIT_SERVER_EXCEPTION"
	SyncUnexpectedRedirect             SyncOutcome = "UNEXPECTED_REDIRECT_EXCEPTION"
	SyncLocalDatabase                  SyncOutcome = "LOCAL_DATABASE_EXCEPTION"
	SyncNoTablesOnServer               SyncOutcome = "NO_TABLES_ON_SERVER_TO_SYNC"
	SyncNoLocalTablesToReset           SyncOutcome = "NO_LOCAL_TABLES_TO_RESET_ON_SERVER"
	SyncSchemaColumnDefinitionMismatch SyncOutcome = "TABLE_SCHEMA_COLUMN_DEFINITION_MISMATCH"
	SyncTableRequiresAppLevelSync      SyncOutcome = "TABLE_REQUIRES_APP_LEVEL_SYNC"
	SyncTableContainsConflicts         SyncOutcome = "TABLE_CONTAINS_CONFLICTS"
	SyncTableContainsCheckpoints       SyncOutcome = "TABLE_CONTAINS_CHECKPOINTS"
	SyncTablePendingAttachments        SyncOutcome = "TABLE_PENDING_ATTACHMENTS"
)

// IsTerminal reports whether the outcome ends the processing of its scope.
func (o SyncOutcome) IsTerminal() bool {
	return o != SyncWorking
}

// IsSuccess reports whether the outcome counts as a clean sync.
func (o SyncOutcome) IsSuccess() bool {
	return o == SyncSuccess
}
