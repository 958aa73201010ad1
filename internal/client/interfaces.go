// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run(ctx context.Context) error
}

// MetaStore keeps small pieces of client state between runs.
type MetaStore interface {
	Meta(key string) (string, error)
	SetMeta(key, value string) error
}
