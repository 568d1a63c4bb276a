// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/vaultkeeper-core/internal/logger"
)

// questionBuilder renders "?" placeholders, the format SQLite's driver
// expects (unlike PostgreSQL's "$1" style).
var questionBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// MetaRepository reads and writes the meta key/value table: the vault salt,
// the persisted KDF algorithm, and the unlock canary.
type MetaRepository struct {
	exec   Execer
	logger *logger.Logger
}

// NewMetaRepository constructs a [MetaRepository].
func NewMetaRepository(db *DB, log *logger.Logger) *MetaRepository {
	return &MetaRepository{exec: db, logger: log}
}

// WithExecer returns a copy of r that runs its queries against e instead of
// the database it was constructed with — used to fold a meta write into a
// caller-managed transaction.
func (r *MetaRepository) WithExecer(e Execer) *MetaRepository {
	return &MetaRepository{exec: e, logger: r.logger}
}

// Get returns the value stored under key. Returns [ErrNotFound] if no row
// exists for key.
func (r *MetaRepository) Get(ctx context.Context, key string) (string, error) {
	log := logger.FromContext(ctx)

	query, args, err := questionBuilder.
		Select("value").
		From("meta").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	var value string
	err = r.exec.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "MetaRepository.Get").Msg("error scanning meta row")
		return "", fmt.Errorf("index: get meta %q: %w", key, err)
	}

	return value, nil
}

// Set upserts key to value.
func (r *MetaRepository) Set(ctx context.Context, key, value string) error {
	log := logger.FromContext(ctx)

	query, args, err := questionBuilder.
		Insert("meta").
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	if _, err := r.exec.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "MetaRepository.Set").Msg("error upserting meta row")
		return fmt.Errorf("index: set meta %q: %w", key, err)
	}

	return nil
}
