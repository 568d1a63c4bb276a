// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/vaultkeeper-core/internal/index"
)

// AddFile encrypts data and stores it as a new file attachment on itemID,
// returning fileID on success. The file insert and the owning item's
// has_attachments flag are updated in a single transaction, so a failure
// partway through never leaves an item marked as having attachments it does
// not. The item's updated_at advances but its version does not — attaching
// a file is not a content edit. Returns [InvalidArgument] if fileID, itemID,
// or filename is empty.
func (e *Engine) AddFile(ctx context.Context, fileID, itemID, filename, mimeType string, data []byte, description string) (string, error) {
	if err := e.requireUnlocked(); err != nil {
		return "", err
	}
	if fileID == "" || itemID == "" || filename == "" {
		return "", fmt.Errorf("%w: file_id, item_id, and filename are required", InvalidArgument)
	}

	blobHash, dekWrap, err := e.encryptAndStore(ctx, data, []byte(fileID))
	if err != nil {
		return "", err
	}

	now := nowMillis()
	row := index.FileRow{
		FileID:      fileID,
		ItemID:      itemID,
		BlobHash:    blobHash,
		DEKWrap:     dekWrap,
		Filename:    filename,
		MimeType:    mimeType,
		SizeBytes:   int64(len(data)),
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = e.db.ExecTx(ctx, func(tx *sql.Tx) error {
		if err := e.files.WithExecer(tx).Create(ctx, row); err != nil {
			return fmt.Errorf("create file row: %w", err)
		}
		if err := e.items.WithExecer(tx).TouchMetadata(ctx, itemID, now, map[string]any{"has_attachments": 1}); err != nil {
			return fmt.Errorf("mark item has_attachments: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", translateIndexErr(err, "add file")
	}

	return fileID, nil
}

// LoadFile decrypts and returns the raw bytes of the file attachment
// identified by fileID. Returns [NotFound] if no such file exists.
func (e *Engine) LoadFile(ctx context.Context, fileID string) ([]byte, error) {
	if err := e.requireUnlocked(); err != nil {
		return nil, err
	}

	row, err := e.files.GetByID(ctx, fileID)
	if err != nil {
		return nil, translateIndexErr(err, "load file row")
	}

	return e.loadAndDecrypt(ctx, row.BlobHash, row.DEKWrap, []byte(fileID))
}
