// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListItems_OrderedByMostRecentlyUpdatedFirst(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	_, err := e.CreateIdentity(ctx, "item-1", "a.com", "A", IdentityPII{}, "login", 0)
	require.NoError(t, err)
	_, err = e.CreateIdentity(ctx, "item-2", "b.com", "B", IdentityPII{}, "login", 0)
	require.NoError(t, err)

	// Touch item-1 so it becomes the most recently updated.
	_, err = e.UpdateIdentity(ctx, "item-1", map[string]any{"name": "A2"})
	require.NoError(t, err)

	items, err := e.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "item-1", items[0].ItemID)
	require.Equal(t, "item-2", items[1].ItemID)
}
