package catalogpager

import (
	"encoding/base64"
	"fmt"
	"strings"
)

var _encoder = base64.RawURLEncoding

// PageCursor points at the position a page resumes from. It is a closed
// union: the only implementations are After and Before, so a cursor always
// has exactly one direction.
type PageCursor interface {
	// Key returns the ordering key the cursor seeks past.
	Key() Key
	// Direction returns the scan direction of the page.
	Direction() Direction
	// String returns the opaque token form of the cursor.
	String() string
	isPageCursor()
}

// After addresses the rows with keys strictly greater than the key.
type After Key

// Before addresses the rows with keys strictly less than the key.
type Before Key

func (a After) Key() Key             { return Key(a) }
func (a After) Direction() Direction { return DirectionASC }
func (a After) String() string       { return encodeToken(tokenPrefixAfter, Key(a)) }
func (After) isPageCursor()          {}

func (b Before) Key() Key             { return Key(b) }
func (b Before) Direction() Direction { return DirectionDESC }
func (b Before) String() string       { return encodeToken(tokenPrefixBefore, Key(b)) }
func (Before) isPageCursor()          {}

var (
	_ PageCursor   = After{}
	_ PageCursor   = Before{}
	_ fmt.Stringer = After{}
)

const (
	tokenPrefixAfter  = "a"
	tokenPrefixBefore = "b"
	tokenSeparator    = ":"
)

func encodeToken(prefix string, key Key) string {
	return _encoder.EncodeToString([]byte(prefix + tokenSeparator + key.String()))
}

// DecodeCursor parses a token produced by PageCursor.String. An empty token
// decodes to After(MinKey), the first page.
func DecodeCursor(b64String string) (PageCursor, error) {
	if len(b64String) == 0 {
		return After(MinKey), nil
	}

	raw, err := _encoder.DecodeString(b64String)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode base64 encoded cursor: %v", ErrInvalidToken, err)
	}

	prefix, rawKey, ok := strings.Cut(string(raw), tokenSeparator)
	if !ok {
		return nil, fmt.Errorf("%w: malformed cursor", ErrInvalidToken)
	}

	key, err := ParseKey(rawKey)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse cursor key: %v", ErrInvalidToken, err)
	}

	switch prefix {
	case tokenPrefixAfter:
		return After(key), nil
	case tokenPrefixBefore:
		return Before(key), nil
	default:
		return nil, fmt.Errorf("%w: unknown cursor direction '%s'", ErrInvalidToken, prefix)
	}
}

// seekOperator returns the strict comparison a cursor seeks with.
func seekOperator(c PageCursor) Operator {
	switch c.(type) {
	case After, Before:
		return c.Direction().ForOperator()
	default:
		panic(fmt.Errorf("unexpected page cursor %T", c))
	}
}
