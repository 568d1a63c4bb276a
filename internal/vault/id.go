// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import "github.com/google/uuid"

// NewID returns a fresh opaque identifier suitable for use as an item_id,
// secret_id, or file_id. Callers that want to choose their own primary key
// are free to do so — the index treats them as opaque strings either way.
//
// NewID prefers UUID v7 (time-ordered, so newer records sort after older
// ones in a naive string comparison) and falls back to a random v4 UUID if
// v7 generation fails.
func NewID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return v7.String()
}
