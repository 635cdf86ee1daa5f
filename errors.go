package catalogpager

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPageParameters is returned by the offset pager for page < 1
	// or per_page < 1.
	ErrInvalidPageParameters = errors.New("invalid page parameters")

	// ErrAmbiguousCursor is returned when a request names both "after" and
	// "before".
	ErrAmbiguousCursor = errors.New("ambiguous cursor: both after and before are set")

	// ErrInvalidItems is returned for a negative page size.
	ErrInvalidItems = errors.New("invalid items")

	// ErrInvalidToken is returned when an opaque cursor token cannot be decoded.
	ErrInvalidToken = errors.New("invalid cursor token")

	// ErrConfiguration marks programming errors: the caller asked for
	// something the catalog was never configured to do.
	ErrConfiguration = errors.New("configuration error")

	// ErrUnknownEntity is returned by Catalog.Describe for an unregistered name.
	ErrUnknownEntity = fmt.Errorf("%w: unknown entity", ErrConfiguration)
	// ErrNoParentScope is returned when a parent key is given for an entity
	// that cannot be listed per parent.
	ErrNoParentScope = fmt.Errorf("%w: entity has no parent scope", ErrConfiguration)
)

// StorageError wraps whatever the execution adapter reported. The error is
// forwarded as is; Unwrap keeps errors.Is(err, gorm.ErrRecordNotFound) and
// friends working.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %v", e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func wrapStorage(err error) error {
	if err == nil {
		return nil
	}

	return &StorageError{Err: err}
}

// IsBadRequest reports whether err is caused by invalid caller input and
// should be answered with a 4xx response.
func IsBadRequest(err error) bool {
	return errors.Is(err, ErrInvalidPageParameters) ||
		errors.Is(err, ErrAmbiguousCursor) ||
		errors.Is(err, ErrInvalidItems) ||
		errors.Is(err, ErrInvalidToken)
}
