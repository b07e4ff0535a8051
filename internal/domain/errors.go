package domain

import (
	"errors"
	"fmt"
)

// ErrIncompleteAggregate signals that an entity was reconstructed from storage
// without one of its required owned relationships.
var ErrIncompleteAggregate = errors.New("incomplete aggregate")

// ErrReviewNotFound is returned when a review id is not present on a product.
var ErrReviewNotFound = errors.New("review not found")

// ValidationError reports an invalid value for a named field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
