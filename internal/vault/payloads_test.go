// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdentityPayload_RoundTripsUnknownKeysAsExtra(t *testing.T) {
	raw := []byte(`{
		"schema": "vault.identity@1",
		"item_id": "item-1",
		"name": "Jane Doe",
		"audit": {"created_at": 1, "updated_at": 1},
		"loyalty_tier": "gold"
	}`)

	var payload IdentityPayload
	require.NoError(t, json.Unmarshal(raw, &payload))
	require.Equal(t, "gold", payload.Extra["loyalty_tier"])

	out, err := json.Marshal(payload)
	require.NoError(t, err)

	var roundTripped map[string]any
	require.NoError(t, json.Unmarshal(out, &roundTripped))
	require.Equal(t, "gold", roundTripped["loyalty_tier"])
	require.Equal(t, "Jane Doe", roundTripped["name"])
}

func TestSecretPayload_RoundTripsUnknownKeysAsExtra(t *testing.T) {
	raw := []byte(`{
		"schema": "vault.secret@1",
		"secret_id": "secret-1",
		"type": "password",
		"audit": {"created_at": 1, "updated_at": 1},
		"recovery_codes": ["a", "b"]
	}`)

	var payload SecretPayload
	require.NoError(t, json.Unmarshal(raw, &payload))
	require.Equal(t, []any{"a", "b"}, payload.Extra["recovery_codes"])
}
