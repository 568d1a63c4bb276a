// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShallowMerge_NilValueLeavesFieldUntouched(t *testing.T) {
	dst := map[string]any{"email": "old@example.com", "phone": "555-0100"}
	shallowMerge(dst, map[string]any{"email": nil, "phone": "555-0199"})

	require.Equal(t, "old@example.com", dst["email"])
	require.Equal(t, "555-0199", dst["phone"])
}

func TestShallowMerge_ReplacesNestedObjectWholesale(t *testing.T) {
	dst := map[string]any{
		"site_specific": map[string]any{"security_question": "x", "answer": "y"},
	}
	shallowMerge(dst, map[string]any{
		"site_specific": map[string]any{"pin": "1234"},
	})

	require.Equal(t, map[string]any{"pin": "1234"}, dst["site_specific"])
}
