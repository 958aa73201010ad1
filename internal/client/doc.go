// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the sync client runtime.
//
// It resolves the device identity, runs the first sync pass, prints the
// result report and, when configured, keeps the periodic sync job and the
// application folder watcher running until the process is stopped.
package client
