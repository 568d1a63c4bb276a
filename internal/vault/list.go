// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import (
	"context"
	"fmt"
)

// ItemSummary is the information returned by [Engine.ListItems] without
// decrypting any item's payload.
type ItemSummary struct {
	ItemID    string
	Domain    string
	Title     string
	CreatedAt int64
	UpdatedAt int64
}

// ListItems returns a summary of every non-tombstoned item, most recently
// updated first.
func (e *Engine) ListItems(ctx context.Context) ([]ItemSummary, error) {
	if err := e.requireUnlocked(); err != nil {
		return nil, err
	}

	rows, err := e.items.ListByUpdatedDesc(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list items: %v", IoError, err)
	}

	summaries := make([]ItemSummary, len(rows))
	for i, row := range rows {
		summaries[i] = ItemSummary{
			ItemID:    row.ItemID,
			Domain:    row.Domain,
			Title:     row.Title,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		}
	}

	return summaries, nil
}
