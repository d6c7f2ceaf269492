package pagination

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 25
	// MaxLimit caps how many items any list call can request.
	MaxLimit = 100
)

var ErrUnknownCursor = errors.New("cursor does not match any item")

// Params holds cursor pagination inputs from controllers or services.
type Params struct {
	Limit  int
	Cursor string
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// EncodeCursor builds an opaque cursor pointing at the item with id.
func EncodeCursor(id string) string {
	return base64.RawURLEncoding.EncodeToString([]byte("id|" + id))
}

// ParseCursor decodes the cursor string back into the item id. An empty
// cursor yields an empty id.
func ParseCursor(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}

	decoded, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return "", fmt.Errorf("decode cursor: %w", err)
	}
	id, ok := strings.CutPrefix(string(decoded), "id|")
	if !ok || id == "" {
		return "", fmt.Errorf("invalid cursor format")
	}
	return id, nil
}

// Page slices items after the cursor and returns the cursor for the next page,
// empty when the last item has been returned.
func Page[T any](items []T, params Params, idOf func(T) string) ([]T, string, error) {
	after, err := ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}

	start := 0
	if after != "" {
		start = -1
		for i, item := range items {
			if idOf(item) == after {
				start = i + 1
				break
			}
		}
		if start < 0 {
			return nil, "", ErrUnknownCursor
		}
	}

	end := min(start+NormalizeLimit(params.Limit), len(items))
	page := items[start:end]
	if end == len(items) || len(page) == 0 {
		return page, "", nil
	}
	return page, EncodeCursor(idOf(page[len(page)-1])), nil
}
