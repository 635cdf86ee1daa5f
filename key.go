package catalogpager

import (
	"bytes"

	"github.com/google/uuid"
)

// Key is the ordering key of every listable entity. It doubles as row
// identity and as cursor position.
type Key = uuid.UUID

// MinKey is the smallest possible Key. After(MinKey) addresses the first page.
var MinKey = uuid.Nil

// CompareKeys compares two keys byte-wise and returns -1, 0 or +1.
func CompareKeys(a, b Key) int {
	return bytes.Compare(a[:], b[:])
}

// ParseKey parses the textual form of a Key.
func ParseKey(s string) (Key, error) {
	return uuid.Parse(s)
}
