// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package index

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMetaRepository_SetAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewMetaRepository(db, db.logger)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "kdf_algorithm", "argon2id"))

	value, err := repo.Get(ctx, "kdf_algorithm")
	require.NoError(t, err)
	require.Equal(t, "argon2id", value)
}

func TestMetaRepository_Get_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewMetaRepository(db, db.logger)

	_, err := repo.Get(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMetaRepository_Set_OverwritesExistingKey(t *testing.T) {
	db := newTestDB(t)
	repo := NewMetaRepository(db, db.logger)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "salt", "first"))
	require.NoError(t, repo.Set(ctx, "salt", "second"))

	value, err := repo.Get(ctx, "salt")
	require.NoError(t, err)
	require.Equal(t, "second", value)
}
