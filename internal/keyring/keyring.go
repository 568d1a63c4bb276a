// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package keyring holds the password-derived key hierarchy for a single
// vault session: the Master Key (MK), the Wrap Key derived from it, and the
// wrap/unwrap operations record DEKs go through before hitting disk.
//
// A [Keyring] starts locked. [Keyring.Unlock] derives and caches MK and the
// Wrap Key for the lifetime of the session; [Keyring.Lock] discards them.
// All key material is held only in process memory — it is never written to
// the index or the blob store.
package keyring

import (
	"sync"

	"github.com/MKhiriev/vaultkeeper-core/internal/cryptoprim"
)

// DefaultWrapAAD is the AAD used to wrap/unwrap a DEK when the caller
// supplies none. Callers that bind a DEK to a specific record (the record
// engine binds it to the record's primary key) must use the same AAD on
// both wrap and unwrap.
const DefaultWrapAAD = "vault-dek-wrap-v1"

// Keyring is safe for concurrent use. Unlock and Lock take the write lock;
// WrapDEK and UnwrapDEK take the read lock, so multiple record operations
// can proceed concurrently against the same unlocked session while a single
// Unlock/Lock transition excludes all of them.
type Keyring struct {
	mu        sync.RWMutex
	unlocked  bool
	mk        []byte
	wrapKey   []byte
	algorithm cryptoprim.KDFAlgorithm
}

// New returns a locked Keyring.
func New() *Keyring {
	return &Keyring{}
}

// Unlock derives the Master Key from password and salt using algorithm, then
// derives and caches the Wrap Key for the session. Subsequent WrapDEK and
// UnwrapDEK calls use the cached Wrap Key until Lock is called.
//
// Unlock always re-derives from scratch; it does not check the password
// against anything by itself. Callers that need "is this the right
// password" semantics (the record engine's canary check) must verify the
// derived key works before trusting it.
func (k *Keyring) Unlock(password string, salt []byte, algorithm cryptoprim.KDFAlgorithm) error {
	mk, err := cryptoprim.DeriveMasterKeyWithAlgorithm(password, salt, algorithm)
	if err != nil {
		return err
	}

	wrapKey, err := cryptoprim.DeriveWrapKey(mk, cryptoprim.WrapKeyInfo)
	if err != nil {
		return err
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	k.mk = mk
	k.wrapKey = wrapKey
	k.algorithm = algorithm
	k.unlocked = true
	return nil
}

// Lock discards the cached Master Key and Wrap Key. Any WrapDEK/UnwrapDEK
// call made after Lock returns ErrLocked.
func (k *Keyring) Lock() {
	k.mu.Lock()
	defer k.mu.Unlock()
	zero(k.mk)
	zero(k.wrapKey)
	k.mk = nil
	k.wrapKey = nil
	k.unlocked = false
}

// IsUnlocked reports whether the keyring currently holds a derived key.
func (k *Keyring) IsUnlocked() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.unlocked
}

// Algorithm returns the KDF algorithm used by the current session.
// Only meaningful while IsUnlocked reports true.
func (k *Keyring) Algorithm() cryptoprim.KDFAlgorithm {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.algorithm
}

// WrapDEK wraps dek under the session's Wrap Key using AES-256-GCM. aad, if
// nil, defaults to [DefaultWrapAAD]; the identical aad must be supplied to
// [Keyring.UnwrapDEK] for the wrapped blob to decrypt.
//
// Returns ErrLocked if the keyring has not been unlocked.
func (k *Keyring) WrapDEK(dek, aad []byte) ([]byte, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	if !k.unlocked {
		return nil, ErrLocked
	}

	return cryptoprim.Seal(k.wrapKey, dek, resolveAAD(aad))
}

// UnwrapDEK reverses [Keyring.WrapDEK]. aad must match what was passed to
// WrapDEK. Returns [ErrLocked] if the keyring is locked, or a
// [cryptoprim] AEAD error if the tag check fails (wrong password or
// corrupted data).
func (k *Keyring) UnwrapDEK(wrapped, aad []byte) ([]byte, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	if !k.unlocked {
		return nil, ErrLocked
	}

	return cryptoprim.Open(k.wrapKey, wrapped, resolveAAD(aad))
}

func resolveAAD(aad []byte) []byte {
	if aad == nil {
		return []byte(DefaultWrapAAD)
	}
	return aad
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
