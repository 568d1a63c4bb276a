// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package blobstore implements the content-addressed, immutable,
// additive-only ciphertext store backing vaultkeeper-core's record engine.
//
// Blobs are addressed by the hex-encoded SHA-256 digest of their contents
// and sharded two levels deep under a root directory:
//
//	<root>/<hh>/<rest>.enc
//
// where hh is the first two hex characters of the digest and rest is the
// remainder. Writes are performed write-then-rename so a reader never
// observes a partially written file.
package blobstore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// Store is a content-addressed filesystem blob store rooted at Dir. The
// zero value is not usable; construct with [New].
type Store struct {
	dir string
}

// New returns a Store rooted at dir. dir is created (along with any missing
// parents) on first use, not by New itself.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Put computes h = hex(sha256(ciphertext)), ensures the shard directory
// exists, and writes ciphertext to <root>/h[:2]/h[2:].enc via a
// write-then-rename sequence so the file is never observed half-written.
//
// If a blob already exists at the target path with byte-identical contents,
// Put is a no-op and returns the same hash. If a blob exists at the target
// path with different contents — impossible under the hash invariant unless
// the store has been tampered with or corrupted — Put returns
// [ErrCorrupt].
func (s *Store) Put(ctx context.Context, ciphertext []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	sum := sha256.Sum256(ciphertext)
	hash := hex.EncodeToString(sum[:])

	shardDir := filepath.Join(s.dir, hash[:2])
	if err := os.MkdirAll(shardDir, 0o700); err != nil {
		return "", fmt.Errorf("%w: create shard dir: %v", ErrIO, err)
	}

	target := filepath.Join(shardDir, hash[2:]+".enc")

	existing, err := os.ReadFile(target)
	if err == nil {
		if bytesEqual(existing, ciphertext) {
			return hash, nil
		}
		return "", fmt.Errorf("%w: blob %s exists with different contents", ErrCorrupt, hash)
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("%w: read existing blob: %v", ErrIO, err)
	}

	tmp, err := os.CreateTemp(shardDir, hash[2:]+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("%w: create temp file: %v", ErrIO, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(ciphertext); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("%w: write temp file: %v", ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("%w: close temp file: %v", ErrIO, err)
	}

	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("%w: rename temp file: %v", ErrIO, err)
	}

	return hash, nil
}

// Get reads and returns the ciphertext stored under hash. Returns
// [ErrNotFound] if no blob exists at that address, or [ErrIO] for any other
// filesystem failure.
func (s *Store) Get(ctx context.Context, hash string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(hash) < 2 {
		return nil, fmt.Errorf("%w: hash %q too short", ErrNotFound, hash)
	}

	target := filepath.Join(s.dir, hash[:2], hash[2:]+".enc")

	data, err := os.ReadFile(target)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: blob %s", ErrNotFound, hash)
		}
		return nil, fmt.Errorf("%w: read blob %s: %v", ErrIO, hash, err)
	}

	return data, nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
