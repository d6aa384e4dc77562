package sso_collection

import (
	"context"
	"fmt"
)

// fetchAllPages follows NextToken cursors until the API stops returning one
// and flattens the pages into a single slice. Empty pages that still carry
// a cursor do not terminate the sequence. A failed page aborts the whole
// sequence; the error names the key being listed so the caller knows which
// entity to skip. The context is checked between pages so a sweep can be
// cancelled cleanly.
func fetchAllPages[T any](ctx context.Context, key string, fetch func(nextToken *string) ([]T, *string, error)) ([]T, error) {
	var items []T
	var nextToken *string

	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("listing %s: %w", key, err)
		}

		page, token, err := fetch(nextToken)
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", key, err)
		}
		items = append(items, page...)

		if token == nil || *token == "" {
			return items, nil
		}
		nextToken = token
	}
}
