// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import "context"

// BlobStore is the seam [Engine] uses to persist and retrieve
// content-addressed ciphertext. [internal/blobstore.Store] satisfies it;
// tests substitute a hand-written mock built on go.uber.org/mock.
type BlobStore interface {
	Put(ctx context.Context, ciphertext []byte) (string, error)
	Get(ctx context.Context, hash string) ([]byte, error)
}
