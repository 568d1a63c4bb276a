// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package blobstore

import "errors"

var (
	// ErrNotFound indicates no blob exists at the requested address.
	ErrNotFound = errors.New("blobstore: blob not found")

	// ErrCorrupt indicates the store holds a blob whose contents do not
	// match its own address — a violation of the content-addressing
	// invariant that should only be possible under disk corruption or
	// tampering.
	ErrCorrupt = errors.New("blobstore: content-address mismatch")

	// ErrIO wraps any other filesystem failure (permission denied, disk
	// full, etc.).
	ErrIO = errors.New("blobstore: io error")
)
