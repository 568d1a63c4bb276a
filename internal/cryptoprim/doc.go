// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cryptoprim implements the cryptographic primitives shared by
// vaultkeeper-core's key hierarchy and record engine:
//
//   - AEAD encryption/decryption (AES-256-GCM, nonce ‖ ciphertext layout)
//   - password-based key derivation (Argon2id preferred, PBKDF2-HMAC-SHA256
//     fallback)
//   - HKDF-Expand subkey derivation
//   - a CSPRNG-backed secure password generator
//
// None of these functions touch the filesystem or the index database — they
// are pure transformations over byte slices, used by internal/keyring and
// internal/vault to build the vault's key hierarchy.
package cryptoprim
