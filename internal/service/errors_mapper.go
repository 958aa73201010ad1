// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-odk-sync/internal/adapter"
	"github.com/MKhiriev/go-odk-sync/internal/layout"
	"github.com/MKhiriev/go-odk-sync/internal/store"
	"github.com/MKhiriev/go-odk-sync/models"
)

type outcomeRule struct {
	err     error
	outcome models.SyncOutcome
}

// outcomeRules is consulted in order; the first sentinel matched by
// errors.Is decides the outcome.
var outcomeRules = []outcomeRule{
	{adapter.ErrAccessDeniedReauth, models.SyncAccessDeniedReauth},
	{adapter.ErrAccessDenied, models.SyncAccessDenied},
	{adapter.ErrBadClientConfig, models.SyncBadClientConfig},
	{adapter.ErrServerDoesNotRecognizeAppName, models.SyncAppNameDoesNotExistOnServer},
	{adapter.ErrClientDetectedVersionMismatch, models.SyncIncompatibleServerVersion},
	{adapter.ErrServerDetectedVersionMismatch, models.SyncIncompatibleServerVersion},
	{adapter.ErrMalformedResponse, models.SyncIncompatibleServerVersion},
	{adapter.ErrInternalServerFailure, models.SyncInternalServerFailure},
	{adapter.ErrNetworkTransmission, models.SyncNetworkTransmission},
	{adapter.ErrNotOpenDataKitServer, models.SyncNotOpenDataKitServer},
	{adapter.ErrUnexpectedRedirect, models.SyncUnexpectedRedirect},

	{ErrSchemaMismatch, models.SyncTableRequiresAppLevelSync},
	{ErrMissingConfigForClientVersion, models.SyncClientVersionFilesMissing},
	{ErrIncompleteServerConfigFileBodyMissing, models.SyncIncompleteServerConfigFileBody},
	{ErrIllegalState, models.SyncFailure},
	{ErrUpdateRequestRejected, models.SyncAccessDenied},
	{ErrTooManySyncIterations, models.SyncFailure},
	{ErrNoLocalTablesToReset, models.SyncNoLocalTablesToReset},
	{ErrNoTablesOnServer, models.SyncNoTablesOnServer},

	{store.ErrStorageUnavailable, models.SyncLocalDatabase},
	{store.ErrTableNotFound, models.SyncLocalDatabase},
	{store.ErrRowNotFound, models.SyncLocalDatabase},
	{store.ErrInvalidTableID, models.SyncLocalDatabase},
	{store.ErrBuildingSQLQuery, models.SyncLocalDatabase},
	{store.ErrExecutingQuery, models.SyncLocalDatabase},
	{store.ErrExecutingStatement, models.SyncLocalDatabase},
	{store.ErrBeginningTransaction, models.SyncLocalDatabase},
	{store.ErrCommitingTransaction, models.SyncLocalDatabase},
	{store.ErrScanningRows, models.SyncLocalDatabase},

	{layout.ErrOutsideApp, models.SyncIncompatibleServerVersion},
	{layout.ErrInvalidTableID, models.SyncIncompatibleServerVersion},
	{layout.ErrInvalidRowID, models.SyncIncompatibleServerVersion},
}

// OutcomeFor maps an error returned by a sync phase to the outcome reported
// for the table or app level. Unknown errors map to FAILURE.
func OutcomeFor(err error) models.SyncOutcome {
	if err == nil {
		return models.SyncSuccess
	}
	for _, rule := range outcomeRules {
		if errors.Is(err, rule.err) {
			return rule.outcome
		}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return models.SyncNetworkTransmission
	}
	return models.SyncFailure
}

// protocolError wraps a response rejected by the validators as a client
// detected version mismatch.
func protocolError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", adapter.ErrClientDetectedVersionMismatch, op, err)
}
