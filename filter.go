package catalogpager

import (
	"fmt"

	"github.com/samber/lo"
)

// PageFilter is a validated keyset page request.
type PageFilter struct {
	Cursor PageCursor
	// Items is the page size. Zero yields an empty page.
	Items int
}

// NewPageFilter builds a PageFilter. A nil cursor means the first page.
func NewPageFilter(cursor PageCursor, items int) PageFilter {
	if cursor == nil {
		cursor = After(MinKey)
	}

	return PageFilter{Cursor: cursor, Items: items}
}

// FirstPage returns the filter addressing the first items rows.
func FirstPage(items int) PageFilter {
	return NewPageFilter(After(MinKey), items)
}

// RawPageFilter is intended for API payloads and query strings:
//
//	{"after": "<key>"} | {"before": "<key>"}, "items": <n>
//
// Cursor is an alternative opaque token obtained via PageCursor.String().
type RawPageFilter struct {
	After  *Key   `json:"after,omitempty"`
	Before *Key   `json:"before,omitempty"`
	Cursor string `json:"cursor,omitempty"`
	Items  *int   `json:"items,omitempty"`
}

// Decode converts RawPageFilter into a PageFilter. Items is clamped to
// MaxItems.
func (p RawPageFilter) Decode() (PageFilter, error) {
	return p.DecodeMax(MaxItems)
}

// DecodeMax is Decode with a caller supplied page size cap. A maxItems of 0
// or less disables the cap.
func (p RawPageFilter) DecodeMax(maxItems int) (PageFilter, error) {
	if lo.Count([]bool{p.After != nil, p.Before != nil, p.Cursor != ""}, true) > 1 {
		return PageFilter{}, ErrAmbiguousCursor
	}

	items := DefaultItems
	if p.Items != nil {
		if *p.Items < 0 {
			return PageFilter{}, fmt.Errorf("%w: %d is negative", ErrInvalidItems, *p.Items)
		}
		items = NormalizeItemsMax(*p.Items, maxItems)
	}

	var cursor PageCursor
	switch {
	case p.Before != nil:
		cursor = Before(*p.Before)
	case p.After != nil:
		cursor = After(*p.After)
	default:
		var err error
		cursor, err = DecodeCursor(p.Cursor)
		if err != nil {
			return PageFilter{}, err
		}
	}

	return NewPageFilter(cursor, items), nil
}
