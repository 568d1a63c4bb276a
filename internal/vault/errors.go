// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import "errors"

// Sentinel errors returned by record operations. Lower layers
// (cryptoprim, keyring, blobstore, index) return their own narrower
// sentinel errors; every method on [Engine] wraps them into one of these
// with %w so callers can match with [errors.Is] against the taxonomy alone.
var (
	// Locked is returned by any record operation attempted while the
	// engine's master key is unset.
	Locked = errors.New("vault: locked")

	// NotFound is returned when no row exists for the requested primary
	// key. A row whose referenced blob is missing yields [CorruptStore].
	NotFound = errors.New("vault: not found")

	// CryptoFailure is returned on AEAD tag mismatch, a failed DEK unwrap
	// (wrong password or tampered wrap), or an AAD mismatch.
	CryptoFailure = errors.New("vault: crypto failure")

	// InvalidArgument is returned when a caller-supplied value fails
	// validation: a missing required field, an unknown secret type, or a
	// malformed TOTP URI.
	InvalidArgument = errors.New("vault: invalid argument")

	// CorruptStore is returned when an index row references a blob that
	// cannot be located, or when a decrypted payload fails to parse as
	// valid JSON for its schema.
	CorruptStore = errors.New("vault: corrupt store")

	// IoError is returned on filesystem or database I/O failure.
	IoError = errors.New("vault: io error")
)
