// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import "encoding/json"

const (
	identitySchema = "vault.identity@1"
	secretSchema   = "vault.secret@1"

	// SecretTypePassword marks a secret payload whose primary field is a
	// username/password pair plus an optional TOTP URI.
	SecretTypePassword = "password"
	// SecretTypeTOTP marks a secret payload that carries only a TOTP URI.
	SecretTypeTOTP = "totp"
	// SecretTypeNote marks a secret payload that carries free-form notes
	// and nothing else.
	SecretTypeNote = "note"
)

// Audit is the created/updated timestamp pair embedded in every payload.
// Timestamps are Unix milliseconds, set by the engine, never by callers.
type Audit struct {
	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// HistoryEntry records a password a secret held before it was replaced.
type HistoryEntry struct {
	Password   string `json:"password"`
	ReplacedAt int64  `json:"replaced_at"`
}

// IdentityPayload is the plaintext JSON document encrypted and stored for an
// identity item. Extra preserves any object keys this binary doesn't
// recognize so a future schema revision round-trips losslessly through an
// older build.
type IdentityPayload struct {
	Schema       string         `json:"schema"`
	ItemID       string         `json:"item_id"`
	Name         string         `json:"name"`
	DOB          *string        `json:"dob,omitempty"`
	Email        *string        `json:"email,omitempty"`
	Phone        *string        `json:"phone,omitempty"`
	Address      *string        `json:"address,omitempty"`
	NationalID   *string        `json:"national_id,omitempty"`
	Tags         []string       `json:"tags,omitempty"`
	Notes        *string        `json:"notes,omitempty"`
	SiteSpecific map[string]any `json:"site_specific,omitempty"`
	Audit        Audit          `json:"audit"`
	Extra        map[string]any `json:"-"`
}

// identityPayloadAlias has IdentityPayload's fields but none of its
// methods, so marshaling it never recurses into the custom MarshalJSON.
type identityPayloadAlias IdentityPayload

func (p IdentityPayload) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(identityPayloadAlias(p), p.Extra)
}

func (p *IdentityPayload) UnmarshalJSON(data []byte) error {
	var alias identityPayloadAlias
	extra, err := unmarshalWithExtra(data, &alias)
	if err != nil {
		return err
	}
	*p = IdentityPayload(alias)
	p.Extra = extra
	return nil
}

// SecretPayload is the plaintext JSON document encrypted and stored for a
// secret row. Type selects which of Username/Password/TOTPURI/Notes are
// meaningful; the engine does not enforce that unused fields stay nil.
type SecretPayload struct {
	Schema   string         `json:"schema"`
	SecretID string         `json:"secret_id"`
	Type     string         `json:"type"`
	Username *string        `json:"username,omitempty"`
	Password *string        `json:"password,omitempty"`
	TOTPURI  *string        `json:"totp_uri,omitempty"`
	Notes    *string        `json:"notes,omitempty"`
	History  []HistoryEntry `json:"history,omitempty"`
	Audit    Audit          `json:"audit"`
	Extra    map[string]any `json:"-"`
}

type secretPayloadAlias SecretPayload

func (p SecretPayload) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(secretPayloadAlias(p), p.Extra)
}

func (p *SecretPayload) UnmarshalJSON(data []byte) error {
	var alias secretPayloadAlias
	extra, err := unmarshalWithExtra(data, &alias)
	if err != nil {
		return err
	}
	*p = SecretPayload(alias)
	p.Extra = extra
	return nil
}

// toMap round-trips p through JSON into a plain map, the representation
// shallowMerge operates on.
func (p IdentityPayload) toMap() (map[string]any, error) {
	return payloadToMap(p)
}

func (p SecretPayload) toMap() (map[string]any, error) {
	return payloadToMap(p)
}

func payloadToMap(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}
