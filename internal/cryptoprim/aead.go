// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cryptoprim

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
)

// NonceSize is the AES-GCM nonce length used throughout vaultkeeper-core.
const NonceSize = 12

// Seal encrypts plaintext with key using AES-256-GCM and a freshly drawn
// nonce. The returned blob has the layout nonce ‖ ciphertext_with_tag, so its
// length is always len(plaintext)+NonceSize+16. aad, when non-nil, is
// authenticated but not encrypted; the identical aad must be supplied to
// [Open] or decryption fails.
//
// key must be 32 bytes (AES-256). Returns an error if key construction fails
// or the nonce cannot be read from the OS CSPRNG.
func Seal(key, plaintext, aad []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("cryptoprim: generate nonce: %w", err)
	}

	return gcm.Seal(nonce, nonce, plaintext, aad), nil
}

// Open decrypts a blob produced by [Seal]. aad must match bit-for-bit the
// value passed to Seal. Returns the plaintext, or an error if the blob is
// shorter than the nonce, key construction fails, or authentication fails
// (wrong key, corrupted ciphertext, or mismatched aad).
func Open(key, blob, aad []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	if len(blob) < gcm.NonceSize() {
		return nil, fmt.Errorf("cryptoprim: ciphertext shorter than nonce")
	}

	nonce, ciphertext := blob[:gcm.NonceSize()], blob[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, fmt.Errorf("cryptoprim: aead open: %w", err)
	}

	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cryptoprim: new cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cryptoprim: new gcm: %w", err)
	}

	return gcm, nil
}
