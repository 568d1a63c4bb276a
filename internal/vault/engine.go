// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/vaultkeeper-core/internal/blobstore"
	"github.com/MKhiriev/vaultkeeper-core/internal/cryptoprim"
	"github.com/MKhiriev/vaultkeeper-core/internal/index"
	"github.com/MKhiriev/vaultkeeper-core/internal/keyring"
	"github.com/MKhiriev/vaultkeeper-core/internal/logger"
)

const (
	metaKeySalt   = "salt"
	metaKeyAlgo   = "kdf_algo"
	metaKeyCanary = "canary"

	canaryAAD       = "vault-canary-v1"
	canaryPlaintext = "vaultkeeper-core-unlock-canary"

	saltLen = 16
	dekLen  = 32
)

// Engine is the record engine: it owns the index database, the blob store,
// and the session keyring, and exposes the Item/Secret/File operations.
// The zero value is not usable; construct with [Open].
type Engine struct {
	db     *index.DB
	blobs  BlobStore
	keys   *keyring.Keyring
	meta   *index.MetaRepository
	items  *index.ItemsRepository
	secs   *index.SecretsRepository
	files  *index.FilesRepository
	logger *logger.Logger
}

// Open opens (creating if necessary) the index database at dbPath and the
// blob store rooted at blobsDir, runs pending migrations, and ensures the
// vault's salt is present in the meta table. The returned Engine starts
// locked — callers must call [Engine.Unlock] before any Item/Secret/File
// operation.
func Open(ctx context.Context, dbPath, blobsDir string, log *logger.Logger) (*Engine, error) {
	if log == nil {
		log = logger.Nop()
	}

	db, err := index.Open(ctx, dbPath, log)
	if err != nil {
		return nil, fmt.Errorf("%w: open index: %v", IoError, err)
	}
	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("%w: migrate index: %v", IoError, err)
	}

	e := &Engine{
		db:     db,
		blobs:  blobstore.New(blobsDir),
		keys:   keyring.New(),
		meta:   index.NewMetaRepository(db, log),
		items:  index.NewItemsRepository(db, log),
		secs:   index.NewSecretsRepository(db, log),
		files:  index.NewFilesRepository(db, log),
		logger: log,
	}

	if err := e.ensureSalt(ctx); err != nil {
		return nil, err
	}

	return e, nil
}

func (e *Engine) ensureSalt(ctx context.Context) error {
	_, err := e.meta.Get(ctx, metaKeySalt)
	if err == nil {
		return nil
	}
	if !errors.Is(err, index.ErrNotFound) {
		return fmt.Errorf("%w: read salt: %v", IoError, err)
	}

	salt, err := cryptoprim.RandomBytes(saltLen)
	if err != nil {
		return fmt.Errorf("%w: generate salt: %v", CryptoFailure, err)
	}

	if err := e.meta.Set(ctx, metaKeySalt, base64.StdEncoding.EncodeToString(salt)); err != nil {
		return fmt.Errorf("%w: persist salt: %v", IoError, err)
	}

	return nil
}

// Unlock derives the session's master key from password and verifies it
// against the stored canary.
//
// On a vault's very first unlock, useArgon2 picks which KDF is used and
// that choice is persisted to the meta table; every later call to Unlock
// re-derives with the persisted algorithm regardless of useArgon2. Returns
// [CryptoFailure] if the derived key does not match the stored canary
// (wrong password).
func (e *Engine) Unlock(ctx context.Context, password string, useArgon2 bool) error {
	salt, err := e.saltBytes(ctx)
	if err != nil {
		return err
	}

	algorithm, err := e.resolveAlgorithm(ctx, useArgon2)
	if err != nil {
		return err
	}

	if err := e.keys.Unlock(password, salt, algorithm); err != nil {
		return fmt.Errorf("%w: derive master key: %v", CryptoFailure, err)
	}

	if err := e.verifyOrSealCanary(ctx); err != nil {
		e.keys.Lock()
		return err
	}

	return nil
}

// Lock discards the session's master key. After Lock, every Item/Secret/File
// operation returns [Locked] until [Engine.Unlock] is called again.
func (e *Engine) Lock() {
	e.keys.Lock()
}

func (e *Engine) saltBytes(ctx context.Context) ([]byte, error) {
	encoded, err := e.meta.Get(ctx, metaKeySalt)
	if err != nil {
		return nil, fmt.Errorf("%w: read salt: %v", IoError, err)
	}
	salt, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: decode salt: %v", CorruptStore, err)
	}
	return salt, nil
}

func (e *Engine) resolveAlgorithm(ctx context.Context, useArgon2 bool) (cryptoprim.KDFAlgorithm, error) {
	stored, err := e.meta.Get(ctx, metaKeyAlgo)
	if errors.Is(err, index.ErrNotFound) {
		if useArgon2 {
			return cryptoprim.KDFArgon2id, nil
		}
		return cryptoprim.KDFPBKDF2, nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: read kdf_algo: %v", IoError, err)
	}

	return cryptoprim.KDFAlgorithm(stored), nil
}

// verifyOrSealCanary runs once per Unlock call, after the keyring has
// derived this session's keys. On the very first unlock it persists the
// chosen algorithm and seals a canary under the wrap key; on every
// subsequent unlock it unwraps the stored canary and checks it matches,
// which is how a wrong password is detected eagerly instead of surfacing
// as a confusing decrypt failure on the first real record load.
func (e *Engine) verifyOrSealCanary(ctx context.Context) error {
	encoded, err := e.meta.Get(ctx, metaKeyCanary)
	if errors.Is(err, index.ErrNotFound) {
		wrapped, err := e.keys.WrapDEK([]byte(canaryPlaintext), []byte(canaryAAD))
		if err != nil {
			return fmt.Errorf("%w: seal canary: %v", CryptoFailure, err)
		}
		if err := e.meta.Set(ctx, metaKeyAlgo, string(e.keys.Algorithm())); err != nil {
			return fmt.Errorf("%w: persist kdf_algo: %v", IoError, err)
		}
		if err := e.meta.Set(ctx, metaKeyCanary, base64.StdEncoding.EncodeToString(wrapped)); err != nil {
			return fmt.Errorf("%w: persist canary: %v", IoError, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: read canary: %v", IoError, err)
	}

	wrapped, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("%w: decode canary: %v", CorruptStore, err)
	}

	plaintext, err := e.keys.UnwrapDEK(wrapped, []byte(canaryAAD))
	if err != nil || string(plaintext) != canaryPlaintext {
		return fmt.Errorf("%w: wrong password", CryptoFailure)
	}

	return nil
}

func (e *Engine) requireUnlocked() error {
	if !e.keys.IsUnlocked() {
		return Locked
	}
	return nil
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// encryptAndStore generates a fresh 32-byte DEK, seals plaintext under it
// with aad, writes the ciphertext to the blob store, and wraps the DEK
// under the session's wrap key with the same aad.
func (e *Engine) encryptAndStore(ctx context.Context, plaintext, aad []byte) (blobHash string, dekWrap []byte, err error) {
	dek, err := cryptoprim.RandomBytes(dekLen)
	if err != nil {
		return "", nil, fmt.Errorf("%w: generate dek: %v", CryptoFailure, err)
	}

	ciphertext, err := cryptoprim.Seal(dek, plaintext, aad)
	if err != nil {
		return "", nil, fmt.Errorf("%w: seal record: %v", CryptoFailure, err)
	}

	blobHash, err = e.blobs.Put(ctx, ciphertext)
	if err != nil {
		return "", nil, fmt.Errorf("%w: write blob: %v", IoError, err)
	}

	dekWrap, err = e.keys.WrapDEK(dek, aad)
	if err != nil {
		return "", nil, fmt.Errorf("%w: wrap dek: %v", CryptoFailure, err)
	}

	return blobHash, dekWrap, nil
}

// loadAndDecrypt reverses [Engine.encryptAndStore]: it unwraps dekWrap,
// reads the ciphertext at blobHash, and opens it. aad must match what was
// passed to encryptAndStore.
func (e *Engine) loadAndDecrypt(ctx context.Context, blobHash string, dekWrap, aad []byte) ([]byte, error) {
	dek, err := e.keys.UnwrapDEK(dekWrap, aad)
	if err != nil {
		return nil, fmt.Errorf("%w: unwrap dek: %v", CryptoFailure, err)
	}

	ciphertext, err := e.blobs.Get(ctx, blobHash)
	if errors.Is(err, blobstore.ErrNotFound) {
		return nil, fmt.Errorf("%w: blob %s: %v", CorruptStore, blobHash, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read blob: %v", IoError, err)
	}

	plaintext, err := cryptoprim.Open(dek, ciphertext, aad)
	if err != nil {
		return nil, fmt.Errorf("%w: open record: %v", CryptoFailure, err)
	}

	return plaintext, nil
}
