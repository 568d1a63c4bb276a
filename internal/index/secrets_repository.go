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

// SecretsRepository persists rows of the secrets table.
type SecretsRepository struct {
	exec   Execer
	logger *logger.Logger
}

// NewSecretsRepository constructs a [SecretsRepository].
func NewSecretsRepository(db *DB, log *logger.Logger) *SecretsRepository {
	return &SecretsRepository{exec: db, logger: log}
}

// WithExecer returns a copy of r that runs its queries against e instead of
// the database it was constructed with.
func (r *SecretsRepository) WithExecer(e Execer) *SecretsRepository {
	return &SecretsRepository{exec: e, logger: r.logger}
}

var secretColumns = []string{
	"secret_id", "item_id", "blob_hash", "dek_wrap", "secret_type", "created_at", "updated_at",
}

// Create inserts row as a brand-new secret.
func (r *SecretsRepository) Create(ctx context.Context, row SecretRow) error {
	log := logger.FromContext(ctx)

	query, args, err := questionBuilder.
		Insert("secrets").
		Columns(secretColumns...).
		Values(row.SecretID, row.ItemID, row.BlobHash, row.DEKWrap, row.SecretType, row.CreatedAt, row.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	if _, err := r.exec.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "SecretsRepository.Create").Msg("error inserting secret row")
		return fmt.Errorf("index: create secret: %w", err)
	}

	return nil
}

// GetByID loads a single secret row by primary key. Returns [ErrNotFound] if
// no such row exists.
func (r *SecretsRepository) GetByID(ctx context.Context, secretID string) (SecretRow, error) {
	log := logger.FromContext(ctx)

	query, args, err := questionBuilder.
		Select(secretColumns...).
		From("secrets").
		Where(sq.Eq{"secret_id": secretID}).
		ToSql()
	if err != nil {
		return SecretRow{}, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	row, err := scanSecretRow(r.exec.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return SecretRow{}, ErrNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "SecretsRepository.GetByID").Msg("error scanning secret row")
		return SecretRow{}, fmt.Errorf("index: get secret %q: %w", secretID, err)
	}

	return row, nil
}

// Update overwrites blob_hash, dek_wrap, and updated_at for the secret
// identified by secretID. Returns [ErrNotFound] if secretID does not exist.
func (r *SecretsRepository) Update(ctx context.Context, secretID string, blobHash string, dekWrap []byte, updatedAt int64) error {
	log := logger.FromContext(ctx)

	query, args, err := questionBuilder.
		Update("secrets").
		Set("blob_hash", blobHash).
		Set("dek_wrap", dekWrap).
		Set("updated_at", updatedAt).
		Where(sq.Eq{"secret_id": secretID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	result, err := r.exec.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "SecretsRepository.Update").Msg("error updating secret row")
		return fmt.Errorf("index: update secret %q: %w", secretID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("index: update secret %q: rows affected: %w", secretID, err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// ListByItem returns all secrets attached to itemID, ordered by creation time.
func (r *SecretsRepository) ListByItem(ctx context.Context, itemID string) ([]SecretRow, error) {
	log := logger.FromContext(ctx)

	query, args, err := questionBuilder.
		Select(secretColumns...).
		From("secrets").
		Where(sq.Eq{"item_id": itemID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	rows, err := r.exec.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "SecretsRepository.ListByItem").Msg("error querying secret rows")
		return nil, fmt.Errorf("index: list secrets for item %q: %w", itemID, err)
	}
	defer rows.Close()

	var secrets []SecretRow
	for rows.Next() {
		secret, err := scanSecretRow(rows)
		if err != nil {
			return nil, fmt.Errorf("index: list secrets for item %q: scan: %w", itemID, err)
		}
		secrets = append(secrets, secret)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("index: list secrets for item %q: %w", itemID, err)
	}

	return secrets, nil
}

func scanSecretRow(s rowScanner) (SecretRow, error) {
	var row SecretRow
	err := s.Scan(&row.SecretID, &row.ItemID, &row.BlobHash, &row.DEKWrap, &row.SecretType, &row.CreatedAt, &row.UpdatedAt)
	return row, err
}
