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

// ItemsRepository persists rows of the items table.
type ItemsRepository struct {
	exec   Execer
	logger *logger.Logger
}

// NewItemsRepository constructs an [ItemsRepository].
func NewItemsRepository(db *DB, log *logger.Logger) *ItemsRepository {
	return &ItemsRepository{exec: db, logger: log}
}

// WithExecer returns a copy of r that runs its queries against e instead of
// the database it was constructed with — used to fold an item update into a
// caller-managed transaction alongside a file or secret write.
func (r *ItemsRepository) WithExecer(e Execer) *ItemsRepository {
	return &ItemsRepository{exec: e, logger: r.logger}
}

// Create inserts row as a brand-new item.
func (r *ItemsRepository) Create(ctx context.Context, row ItemRow) error {
	log := logger.FromContext(ctx)

	query, args, err := questionBuilder.
		Insert("items").
		Columns(
			"item_id", "domain", "title", "detail_blob_hash", "detail_dek_wrap",
			"has_attachments", "site_type", "trust_level",
			"created_at", "updated_at", "version", "tombstoned",
		).
		Values(
			row.ItemID, row.Domain, row.Title, row.DetailBlobHash, row.DetailDEKWrap,
			boolToInt(row.HasAttachments), row.SiteType, row.TrustLevel,
			row.CreatedAt, row.UpdatedAt, row.Version, boolToInt(row.Tombstoned),
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	if _, err := r.exec.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "ItemsRepository.Create").Msg("error inserting item row")
		return fmt.Errorf("index: create item: %w", err)
	}

	return nil
}

// GetByID loads a single item row by primary key. Returns [ErrNotFound] if
// no such row exists.
func (r *ItemsRepository) GetByID(ctx context.Context, itemID string) (ItemRow, error) {
	log := logger.FromContext(ctx)

	query, args, err := questionBuilder.
		Select(itemColumns...).
		From("items").
		Where(sq.Eq{"item_id": itemID}).
		ToSql()
	if err != nil {
		return ItemRow{}, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	row := r.exec.QueryRowContext(ctx, query, args...)
	item, err := scanItemRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ItemRow{}, ErrNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "ItemsRepository.GetByID").Msg("error scanning item row")
		return ItemRow{}, fmt.Errorf("index: get item %q: %w", itemID, err)
	}

	return item, nil
}

// Update applies setClauses (column → new value) to the item identified by
// itemID, bumping version and updatedAt. Use this for edits that change the
// item's own content (update_identity); use [ItemsRepository.TouchMetadata]
// for side-effect touches (e.g. add_file's has_attachments flag) that must
// not advance version. Returns the item's new version, or [ErrNotFound] if
// itemID does not exist.
func (r *ItemsRepository) Update(ctx context.Context, itemID string, updatedAt int64, setClauses map[string]any) (int, error) {
	log := logger.FromContext(ctx)

	builder := questionBuilder.
		Update("items").
		Set("updated_at", updatedAt).
		Set("version", sq.Expr("version + 1"))

	for column, value := range setClauses {
		builder = builder.Set(column, value)
	}

	query, args, err := builder.Where(sq.Eq{"item_id": itemID}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	result, err := r.exec.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "ItemsRepository.Update").Msg("error updating item row")
		return 0, fmt.Errorf("index: update item %q: %w", itemID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("index: update item %q: rows affected: %w", itemID, err)
	}
	if affected == 0 {
		return 0, ErrNotFound
	}

	var version int
	verQuery, verArgs, err := questionBuilder.Select("version").From("items").Where(sq.Eq{"item_id": itemID}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}
	if err := r.exec.QueryRowContext(ctx, verQuery, verArgs...).Scan(&version); err != nil {
		return 0, fmt.Errorf("index: read back item %q version: %w", itemID, err)
	}

	return version, nil
}

// TouchMetadata applies setClauses and updatedAt to the item identified by
// itemID without bumping version — the add_file path uses this to flip
// has_attachments without that side effect reading as a content edit.
// Returns [ErrNotFound] if itemID does not exist.
func (r *ItemsRepository) TouchMetadata(ctx context.Context, itemID string, updatedAt int64, setClauses map[string]any) error {
	log := logger.FromContext(ctx)

	builder := questionBuilder.
		Update("items").
		Set("updated_at", updatedAt)

	for column, value := range setClauses {
		builder = builder.Set(column, value)
	}

	query, args, err := builder.Where(sq.Eq{"item_id": itemID}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	result, err := r.exec.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "ItemsRepository.TouchMetadata").Msg("error touching item row")
		return fmt.Errorf("index: touch item %q: %w", itemID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("index: touch item %q: rows affected: %w", itemID, err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// ListByUpdatedDesc returns all non-tombstoned items ordered by most
// recently updated first, the ordering internal/vault uses for list_items.
func (r *ItemsRepository) ListByUpdatedDesc(ctx context.Context) ([]ItemRow, error) {
	log := logger.FromContext(ctx)

	query, args, err := questionBuilder.
		Select(itemColumns...).
		From("items").
		Where(sq.Eq{"tombstoned": 0}).
		OrderBy("updated_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	rows, err := r.exec.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "ItemsRepository.ListByUpdatedDesc").Msg("error querying item rows")
		return nil, fmt.Errorf("index: list items by updated desc: %w", err)
	}
	defer rows.Close()

	var items []ItemRow
	for rows.Next() {
		item, err := scanItemRow(rows)
		if err != nil {
			return nil, fmt.Errorf("index: list items by updated desc: scan: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("index: list items by updated desc: %w", err)
	}

	return items, nil
}

var itemColumns = []string{
	"item_id", "domain", "title", "detail_blob_hash", "detail_dek_wrap",
	"has_attachments", "site_type", "trust_level",
	"created_at", "updated_at", "version", "tombstoned",
}

// rowScanner abstracts over *sql.Row and *sql.Rows, both of which expose
// Scan with an identical signature.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanItemRow(s rowScanner) (ItemRow, error) {
	var item ItemRow
	var hasAttachments, tombstoned int
	err := s.Scan(
		&item.ItemID, &item.Domain, &item.Title, &item.DetailBlobHash, &item.DetailDEKWrap,
		&hasAttachments, &item.SiteType, &item.TrustLevel,
		&item.CreatedAt, &item.UpdatedAt, &item.Version, &tombstoned,
	)
	item.HasAttachments = hasAttachments != 0
	item.Tombstoned = tombstoned != 0
	return item, err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
