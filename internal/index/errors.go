// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package index

import "errors"

// Sentinel errors returned by repository methods. Callers should use
// [errors.Is] to match against these values; internal/vault wraps them into
// its own error taxonomy.
var (
	// ErrNotFound is returned when a query or update targets a primary key
	// that does not exist.
	ErrNotFound = errors.New("index: row not found")

	// ErrBuildingQuery is returned when squirrel fails to render a query,
	// which only happens for a programming error (missing columns, bad
	// placeholder count).
	ErrBuildingQuery = errors.New("index: error building sql query")
)
