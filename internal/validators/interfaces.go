// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks the structure of documents returned by the sync
// server before the engine acts on them.
//
// A response that fails validation means client and server disagree on the
// protocol; callers report it as a version mismatch rather than trusting a
// partial document. Checked documents are row pages, per-row push outcomes,
// file manifests and table definitions.
package validators

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/validators_mock.go -package=mock

// Validator checks one server document. When fields are given only the named
// checks (the Field* constants) run; otherwise all checks for the document
// type run.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
