// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidVaultConfigs indicates invalid vault storage settings (for
	// example, an empty index DSN or blobs directory after defaults have
	// been applied).
	ErrInvalidVaultConfigs = errors.New("invalid vault configuration")
)

// errInvalidBoolFlag is returned by boolFlagSeen.Set when the flag value is
// not a recognized boolean token.
var errInvalidBoolFlag = errors.New(`invalid boolean value, want "true"/"false"/"1"/"0"`)
