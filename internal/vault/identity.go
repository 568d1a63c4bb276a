// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/vaultkeeper-core/internal/index"
)

// IdentityPII holds the optional personally-identifying fields of an
// identity item, passed to [Engine.CreateIdentity].
type IdentityPII struct {
	DOB          *string
	Email        *string
	Phone        *string
	Address      *string
	NationalID   *string
	Tags         []string
	Notes        *string
	SiteSpecific map[string]any
}

// CreateIdentity encrypts and stores a new identity item under itemID,
// returning itemID on success. Returns [InvalidArgument] if itemID, domain,
// or name is empty.
func (e *Engine) CreateIdentity(ctx context.Context, itemID, domain, name string, pii IdentityPII, siteType string, trustLevel int) (string, error) {
	if err := e.requireUnlocked(); err != nil {
		return "", err
	}
	if itemID == "" || domain == "" || name == "" {
		return "", fmt.Errorf("%w: item_id, domain, and name are required", InvalidArgument)
	}

	now := nowMillis()
	payload := IdentityPayload{
		Schema:       identitySchema,
		ItemID:       itemID,
		Name:         name,
		DOB:          pii.DOB,
		Email:        pii.Email,
		Phone:        pii.Phone,
		Address:      pii.Address,
		NationalID:   pii.NationalID,
		Tags:         pii.Tags,
		Notes:        pii.Notes,
		SiteSpecific: pii.SiteSpecific,
		Audit:        Audit{CreatedAt: now, UpdatedAt: now},
	}

	plaintext, err := payload.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("%w: marshal identity payload: %v", CryptoFailure, err)
	}

	blobHash, dekWrap, err := e.encryptAndStore(ctx, plaintext, []byte(itemID))
	if err != nil {
		return "", err
	}

	row := index.ItemRow{
		ItemID:         itemID,
		Domain:         domain,
		Title:          name,
		DetailBlobHash: blobHash,
		DetailDEKWrap:  dekWrap,
		SiteType:       siteType,
		TrustLevel:     trustLevel,
		CreatedAt:      now,
		UpdatedAt:      now,
		Version:        1,
	}
	if err := e.items.Create(ctx, row); err != nil {
		return "", fmt.Errorf("%w: create item row: %v", IoError, err)
	}

	return itemID, nil
}

// LoadIdentity decrypts and returns the identity payload stored for itemID.
// Returns [NotFound] if no such item exists.
func (e *Engine) LoadIdentity(ctx context.Context, itemID string) (IdentityPayload, error) {
	if err := e.requireUnlocked(); err != nil {
		return IdentityPayload{}, err
	}

	row, err := e.items.GetByID(ctx, itemID)
	if err != nil {
		return IdentityPayload{}, translateIndexErr(err, "load item row")
	}

	plaintext, err := e.loadAndDecrypt(ctx, row.DetailBlobHash, row.DetailDEKWrap, []byte(itemID))
	if err != nil {
		return IdentityPayload{}, err
	}

	var payload IdentityPayload
	if err := payload.UnmarshalJSON(plaintext); err != nil {
		return IdentityPayload{}, fmt.Errorf("%w: parse identity payload: %v", CorruptStore, err)
	}

	return payload, nil
}

// UpdateIdentity applies a shallow merge of updates onto the stored identity
// payload — a nil value in updates leaves the corresponding field untouched,
// any other value overwrites it wholesale — re-encrypts, and persists the
// result. When updates contains "name" or "domain", the item row's title and
// domain columns are kept in sync. Returns [NotFound] if itemID does not
// exist.
func (e *Engine) UpdateIdentity(ctx context.Context, itemID string, updates map[string]any) (IdentityPayload, error) {
	if err := e.requireUnlocked(); err != nil {
		return IdentityPayload{}, err
	}

	row, err := e.items.GetByID(ctx, itemID)
	if err != nil {
		return IdentityPayload{}, translateIndexErr(err, "load item row")
	}

	plaintext, err := e.loadAndDecrypt(ctx, row.DetailBlobHash, row.DetailDEKWrap, []byte(itemID))
	if err != nil {
		return IdentityPayload{}, err
	}

	var current IdentityPayload
	if err := current.UnmarshalJSON(plaintext); err != nil {
		return IdentityPayload{}, fmt.Errorf("%w: parse identity payload: %v", CorruptStore, err)
	}

	asMap, err := current.toMap()
	if err != nil {
		return IdentityPayload{}, fmt.Errorf("%w: remap identity payload: %v", CorruptStore, err)
	}

	shallowMerge(asMap, updates)
	now := nowMillis()
	asMap["audit"] = map[string]any{"created_at": current.Audit.CreatedAt, "updated_at": now}

	remarshaled, err := marshalMap(asMap)
	if err != nil {
		return IdentityPayload{}, fmt.Errorf("%w: marshal merged identity payload: %v", CryptoFailure, err)
	}

	var merged IdentityPayload
	if err := merged.UnmarshalJSON(remarshaled); err != nil {
		return IdentityPayload{}, fmt.Errorf("%w: reparse merged identity payload: %v", CorruptStore, err)
	}

	newPlaintext, err := merged.MarshalJSON()
	if err != nil {
		return IdentityPayload{}, fmt.Errorf("%w: marshal identity payload: %v", CryptoFailure, err)
	}

	blobHash, dekWrap, err := e.encryptAndStore(ctx, newPlaintext, []byte(itemID))
	if err != nil {
		return IdentityPayload{}, err
	}

	setClauses := map[string]any{
		"detail_blob_hash": blobHash,
		"detail_dek_wrap":  dekWrap,
	}
	if name, ok := updates["name"].(string); ok && name != "" {
		setClauses["title"] = name
	}
	if domain, ok := updates["domain"].(string); ok && domain != "" {
		setClauses["domain"] = domain
	}

	if _, err := e.items.Update(ctx, itemID, now, setClauses); err != nil {
		return IdentityPayload{}, translateIndexErr(err, "update item row")
	}

	return merged, nil
}

func translateIndexErr(err error, context string) error {
	if errors.Is(err, index.ErrNotFound) {
		return fmt.Errorf("%w: %s", NotFound, context)
	}
	return fmt.Errorf("%w: %s: %v", IoError, context, err)
}
