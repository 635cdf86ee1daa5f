package catalogpager

const (
	// NoLimit marks a plan without a LIMIT clause.
	NoLimit = -1
	// MaxItems caps the keyset page size at the boundary.
	MaxItems = 100
	// DefaultItems is the keyset page size when none is given.
	DefaultItems = 10

	// DefaultPerPage is the offset page size when none is given.
	DefaultPerPage = 10
)

// IsNormalizedItemsMax clamps items into [0, maxItems]. Negative values fall
// back to DefaultItems. Zero is kept: an empty page is a valid request.
// The second return value is false if items had to be changed.
func IsNormalizedItemsMax(items int, maxItems int) (int, bool) {
	if items < 0 {
		return DefaultItems, false
	} else if maxItems > 0 && items > maxItems {
		return maxItems, false
	}

	return items, true
}

// NormalizeItemsMax is IsNormalizedItemsMax without the flag.
func NormalizeItemsMax(items int, maxItems int) int {
	ret, _ := IsNormalizedItemsMax(items, maxItems)
	return ret
}

// NormalizeItems clamps items to MaxItems.
func NormalizeItems(items int) int {
	return NormalizeItemsMax(items, MaxItems)
}
