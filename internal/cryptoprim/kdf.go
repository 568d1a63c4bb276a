// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cryptoprim

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/pbkdf2"
)

// ErrUnknownKDFAlgorithm is returned by [DeriveMasterKeyWithAlgorithm] when
// given an algorithm identifier that is neither [KDFArgon2id] nor
// [KDFPBKDF2] — typically a sign of a corrupted meta table.
var ErrUnknownKDFAlgorithm = errors.New("cryptoprim: unknown kdf algorithm")

// Argon2id and PBKDF2 tuning parameters. These are compile-time constants
// and are not configurable at runtime.
const (
	Argon2TimeCost    = 2
	Argon2MemoryCost  = 64 * 1024 // KiB
	Argon2Parallelism = 1

	PBKDF2Iterations = 480_000

	// MasterKeyLen is the output length of DeriveMasterKey regardless of
	// which algorithm produced it.
	MasterKeyLen = 32

	// WrapKeyInfo is the HKDF info string used to derive the wrap key from
	// the master key.
	WrapKeyInfo = "vault-wrap-key"
)

// KDFAlgorithm identifies which password-based KDF produced a master key.
type KDFAlgorithm string

const (
	KDFArgon2id KDFAlgorithm = "argon2id"
	KDFPBKDF2   KDFAlgorithm = "pbkdf2-sha256"
)

// DeriveMasterKey derives a 32-byte master key from password and salt.
// When useArgon2 is true, Argon2id is used with the parameters documented
// on this package's constants; otherwise PBKDF2-HMAC-SHA256 is used.
//
// DeriveMasterKey is a pure function of its inputs: the same password, salt,
// and algorithm choice always produce the same key.
func DeriveMasterKey(password string, salt []byte, useArgon2 bool) ([]byte, KDFAlgorithm) {
	passwordBytes := []byte(password)

	if useArgon2 {
		mk := argon2.IDKey(passwordBytes, salt, Argon2TimeCost, Argon2MemoryCost, Argon2Parallelism, MasterKeyLen)
		return mk, KDFArgon2id
	}

	mk := pbkdf2.Key(passwordBytes, salt, PBKDF2Iterations, MasterKeyLen, sha256.New)
	return mk, KDFPBKDF2
}

// DeriveMasterKeyWithAlgorithm re-derives a master key using a previously
// persisted [KDFAlgorithm], for use on subsequent unlocks once the algorithm
// choice has been committed to vault metadata.
func DeriveMasterKeyWithAlgorithm(password string, salt []byte, algorithm KDFAlgorithm) ([]byte, error) {
	switch algorithm {
	case KDFArgon2id:
		mk, _ := DeriveMasterKey(password, salt, true)
		return mk, nil
	case KDFPBKDF2:
		mk, _ := DeriveMasterKey(password, salt, false)
		return mk, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKDFAlgorithm, algorithm)
	}
}

// DeriveWrapKey derives the 32-byte wrap key from the master key using
// HKDF-Expand (no extract step, since mk is already uniform-random-looking).
// info is used as given; internal/keyring always passes [WrapKeyInfo], and
// other values appear only in tests.
func DeriveWrapKey(mk []byte, info string) ([]byte, error) {
	reader := hkdf.Expand(sha256.New, mk, []byte(info))
	wrapKey := make([]byte, MasterKeyLen)
	if _, err := io.ReadFull(reader, wrapKey); err != nil {
		return nil, fmt.Errorf("cryptoprim: derive wrap key: %w", err)
	}
	return wrapKey, nil
}
