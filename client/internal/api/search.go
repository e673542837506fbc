package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	bberrors "github.com/domdoescode/blue-billywig/client/internal/errors"
	"github.com/domdoescode/blue-billywig/client/internal/types"
)

// Members of a search item that arrive as JSON-encoded strings.
var encodedItemFields = []string{"assets", "thumbnails"}

// Search runs a search with params passed verbatim as the query string.
// A response without items yields an empty, non-nil slice.
func Search(ctx context.Context, hc *resty.Client, baseURL string, params types.SearchParams) ([]types.SearchResult, error) {
	const op = "search"
	zerolog.Ctx(ctx).Debug().Interface("params", params).Msg("searching")

	body, err := get(ctx, hc, op, baseURL+pathSearch, params)
	if err != nil {
		return nil, err
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil || doc == nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("search response not a JSON object")
		return nil, failed(ctx, bberrors.Parse(op, bberrors.ErrInvalidJSON))
	}

	raw, ok := doc["items"]
	if !ok || noItems(raw) {
		return []types.SearchResult{}, nil
	}
	var items []types.SearchResult
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, failed(ctx, bberrors.Structural(op, fmt.Errorf("items: %w", err)))
	}

	results := make([]types.SearchResult, 0, len(items))
	for i, item := range items {
		if item == nil {
			return nil, failed(ctx, bberrors.Structural(op, fmt.Errorf("item %d is not an object", i)))
		}
		if err := decodeEncodedFields(item); err != nil {
			return nil, failed(ctx, bberrors.Parse(op, fmt.Errorf("item %d: %w", i, err)))
		}
		results = append(results, item)
	}
	zerolog.Ctx(ctx).Debug().Int("count", len(results)).Msg("search completed")
	return results, nil
}

// noItems reports whether an items member means "nothing found": null,
// false, 0 or the empty string.
func noItems(raw json.RawMessage) bool {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case float64:
		return x == 0
	case string:
		return x == ""
	}
	return false
}

// decodeEncodedFields replaces JSON-string members with their decoded value.
// Missing or null members and already-structured values are left alone.
func decodeEncodedFields(item types.SearchResult) error {
	for _, name := range encodedItemFields {
		s, ok := item[name].(string)
		if !ok {
			continue
		}
		var v any
		if err := json.Unmarshal([]byte(s), &v); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		item[name] = v
	}
	return nil
}
