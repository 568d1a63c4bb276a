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

// FilesRepository persists rows of the files table.
type FilesRepository struct {
	exec   Execer
	logger *logger.Logger
}

// NewFilesRepository constructs a [FilesRepository].
func NewFilesRepository(db *DB, log *logger.Logger) *FilesRepository {
	return &FilesRepository{exec: db, logger: log}
}

// WithExecer returns a copy of r that runs its queries against e instead of
// the database it was constructed with — used to fold a file insert into the
// same transaction as the owning item's has_attachments update.
func (r *FilesRepository) WithExecer(e Execer) *FilesRepository {
	return &FilesRepository{exec: e, logger: r.logger}
}

var fileColumns = []string{
	"file_id", "item_id", "blob_hash", "dek_wrap", "filename", "mime_type",
	"size_bytes", "description", "created_at", "updated_at",
}

// Create inserts row as a brand-new file attachment.
func (r *FilesRepository) Create(ctx context.Context, row FileRow) error {
	log := logger.FromContext(ctx)

	query, args, err := questionBuilder.
		Insert("files").
		Columns(fileColumns...).
		Values(
			row.FileID, row.ItemID, row.BlobHash, row.DEKWrap, row.Filename, row.MimeType,
			row.SizeBytes, row.Description, row.CreatedAt, row.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	if _, err := r.exec.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "FilesRepository.Create").Msg("error inserting file row")
		return fmt.Errorf("index: create file: %w", err)
	}

	return nil
}

// GetByID loads a single file row by primary key. Returns [ErrNotFound] if
// no such row exists.
func (r *FilesRepository) GetByID(ctx context.Context, fileID string) (FileRow, error) {
	log := logger.FromContext(ctx)

	query, args, err := questionBuilder.
		Select(fileColumns...).
		From("files").
		Where(sq.Eq{"file_id": fileID}).
		ToSql()
	if err != nil {
		return FileRow{}, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	row, err := scanFileRow(r.exec.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return FileRow{}, ErrNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "FilesRepository.GetByID").Msg("error scanning file row")
		return FileRow{}, fmt.Errorf("index: get file %q: %w", fileID, err)
	}

	return row, nil
}

func scanFileRow(s rowScanner) (FileRow, error) {
	var row FileRow
	err := s.Scan(
		&row.FileID, &row.ItemID, &row.BlobHash, &row.DEKWrap, &row.Filename, &row.MimeType,
		&row.SizeBytes, &row.Description, &row.CreatedAt, &row.UpdatedAt,
	)
	return row, err
}
