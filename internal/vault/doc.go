// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package vault implements the record engine: the stateful object that owns
// the index database and, once unlocked, the master key, and exposes the
// Item/Secret/File operations that tie together internal/cryptoprim,
// internal/keyring, internal/blobstore, and internal/index.
//
// Every mutating operation follows the same shape: build or merge a
// plaintext payload, encrypt it under a fresh per-record key, write the
// ciphertext to the blob store, wrap that key under the session's Wrap Key
// (derived from the master key), then persist the blob hash and wrapped key in the index. Nothing
// below this package ever sees a password or a derived key outside the
// keyring it belongs to.
package vault
