// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import (
	"context"
	"fmt"

	"github.com/pquerna/otp"

	"github.com/MKhiriev/vaultkeeper-core/internal/index"
)

// SecretInput holds the fields of a secret payload, passed to
// [Engine.CreateSecret]. Which fields are meaningful depends on the
// secret's type.
type SecretInput struct {
	Username *string
	Password *string
	TOTPURI  *string
	Notes    *string
}

// SecretSummary is the information returned by [Engine.ListSecretsForItem]
// without decrypting each secret's payload.
type SecretSummary struct {
	SecretID   string
	SecretType string
}

func validSecretType(t string) bool {
	switch t {
	case SecretTypePassword, SecretTypeTOTP, SecretTypeNote:
		return true
	default:
		return false
	}
}

func validateTOTPURI(uri string) error {
	if uri == "" {
		return nil
	}
	if _, err := otp.NewKeyFromURL(uri); err != nil {
		return fmt.Errorf("%w: malformed totp_uri: %v", InvalidArgument, err)
	}
	return nil
}

// CreateSecret encrypts and stores a new secret attached to itemID, returning
// secretID on success. Returns [InvalidArgument] if secretID or itemID is
// empty, secretType is not one of the recognized types, or input.TOTPURI is
// set but not a well-formed otpauth:// URI.
func (e *Engine) CreateSecret(ctx context.Context, secretID, itemID, secretType string, input SecretInput) (string, error) {
	if err := e.requireUnlocked(); err != nil {
		return "", err
	}
	if secretID == "" || itemID == "" {
		return "", fmt.Errorf("%w: secret_id and item_id are required", InvalidArgument)
	}
	if !validSecretType(secretType) {
		return "", fmt.Errorf("%w: unknown secret type %q", InvalidArgument, secretType)
	}
	if input.TOTPURI != nil {
		if err := validateTOTPURI(*input.TOTPURI); err != nil {
			return "", err
		}
	}

	now := nowMillis()
	payload := SecretPayload{
		Schema:   secretSchema,
		SecretID: secretID,
		Type:     secretType,
		Username: input.Username,
		Password: input.Password,
		TOTPURI:  input.TOTPURI,
		Notes:    input.Notes,
		Audit:    Audit{CreatedAt: now, UpdatedAt: now},
	}

	plaintext, err := payload.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("%w: marshal secret payload: %v", CryptoFailure, err)
	}

	blobHash, dekWrap, err := e.encryptAndStore(ctx, plaintext, []byte(secretID))
	if err != nil {
		return "", err
	}

	row := index.SecretRow{
		SecretID:   secretID,
		ItemID:     itemID,
		BlobHash:   blobHash,
		DEKWrap:    dekWrap,
		SecretType: secretType,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := e.secs.Create(ctx, row); err != nil {
		return "", fmt.Errorf("%w: create secret row: %v", IoError, err)
	}

	return secretID, nil
}

// LoadSecret decrypts and returns the secret payload stored for secretID.
// Returns [NotFound] if no such secret exists.
func (e *Engine) LoadSecret(ctx context.Context, secretID string) (SecretPayload, error) {
	if err := e.requireUnlocked(); err != nil {
		return SecretPayload{}, err
	}

	row, err := e.secs.GetByID(ctx, secretID)
	if err != nil {
		return SecretPayload{}, translateIndexErr(err, "load secret row")
	}

	plaintext, err := e.loadAndDecrypt(ctx, row.BlobHash, row.DEKWrap, []byte(secretID))
	if err != nil {
		return SecretPayload{}, err
	}

	var payload SecretPayload
	if err := payload.UnmarshalJSON(plaintext); err != nil {
		return SecretPayload{}, fmt.Errorf("%w: parse secret payload: %v", CorruptStore, err)
	}

	return payload, nil
}

// UpdateSecret applies a shallow merge of updates onto the stored secret
// payload and persists the result. If the secret is of type
// [SecretTypePassword] and updates replaces "password" with a different
// value, the previous password is appended to the payload's history before
// the merge. Returns [NotFound] if secretID does not exist.
func (e *Engine) UpdateSecret(ctx context.Context, secretID string, updates map[string]any) (SecretPayload, error) {
	if err := e.requireUnlocked(); err != nil {
		return SecretPayload{}, err
	}

	if newURI, ok := updates["totp_uri"].(string); ok {
		if err := validateTOTPURI(newURI); err != nil {
			return SecretPayload{}, err
		}
	}

	row, err := e.secs.GetByID(ctx, secretID)
	if err != nil {
		return SecretPayload{}, translateIndexErr(err, "load secret row")
	}

	plaintext, err := e.loadAndDecrypt(ctx, row.BlobHash, row.DEKWrap, []byte(secretID))
	if err != nil {
		return SecretPayload{}, err
	}

	var current SecretPayload
	if err := current.UnmarshalJSON(plaintext); err != nil {
		return SecretPayload{}, fmt.Errorf("%w: parse secret payload: %v", CorruptStore, err)
	}

	now := nowMillis()
	history := current.History
	if newPassword, ok := updates["password"].(string); ok && current.Type == SecretTypePassword {
		if current.Password == nil || *current.Password != newPassword {
			if current.Password != nil {
				history = append(history, HistoryEntry{Password: *current.Password, ReplacedAt: now})
			}
		}
	}

	asMap, err := current.toMap()
	if err != nil {
		return SecretPayload{}, fmt.Errorf("%w: remap secret payload: %v", CorruptStore, err)
	}

	shallowMerge(asMap, updates)
	asMap["audit"] = map[string]any{"created_at": current.Audit.CreatedAt, "updated_at": now}
	if len(history) > 0 {
		historyAny := make([]any, len(history))
		for i, h := range history {
			historyAny[i] = map[string]any{"password": h.Password, "replaced_at": h.ReplacedAt}
		}
		asMap["history"] = historyAny
	}

	remarshaled, err := marshalMap(asMap)
	if err != nil {
		return SecretPayload{}, fmt.Errorf("%w: marshal merged secret payload: %v", CryptoFailure, err)
	}

	var merged SecretPayload
	if err := merged.UnmarshalJSON(remarshaled); err != nil {
		return SecretPayload{}, fmt.Errorf("%w: reparse merged secret payload: %v", CorruptStore, err)
	}

	newPlaintext, err := merged.MarshalJSON()
	if err != nil {
		return SecretPayload{}, fmt.Errorf("%w: marshal secret payload: %v", CryptoFailure, err)
	}

	blobHash, dekWrap, err := e.encryptAndStore(ctx, newPlaintext, []byte(secretID))
	if err != nil {
		return SecretPayload{}, err
	}

	if err := e.secs.Update(ctx, secretID, blobHash, dekWrap, now); err != nil {
		return SecretPayload{}, translateIndexErr(err, "update secret row")
	}

	return merged, nil
}

// ListSecretsForItem returns a summary of every secret attached to itemID,
// without decrypting any payload.
func (e *Engine) ListSecretsForItem(ctx context.Context, itemID string) ([]SecretSummary, error) {
	if err := e.requireUnlocked(); err != nil {
		return nil, err
	}

	rows, err := e.secs.ListByItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("%w: list secrets: %v", IoError, err)
	}

	summaries := make([]SecretSummary, len(rows))
	for i, row := range rows {
		summaries[i] = SecretSummary{SecretID: row.SecretID, SecretType: row.SecretType}
	}

	return summaries, nil
}
