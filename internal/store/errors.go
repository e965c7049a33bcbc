package store

import (
	"errors"
	"fmt"
)

var (
	// ErrItemNotFound means the identifier does not resolve in the item store.
	ErrItemNotFound = errors.New("item not found")
	// ErrCartNotFound means the identifier does not resolve in the cart store.
	ErrCartNotFound = errors.New("cart not found")
	// ErrItemDeleted means the operation is not allowed on a soft-deleted item.
	ErrItemDeleted = errors.New("item is deleted")
)

// ValidationError reports a field rejected during a partial update.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("attribute '%s': %s", e.Field, e.Reason)
}
