package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound          = errors.New("product not found")
	ErrTopCategoryNotFound      = errors.New("top level category not found")
	ErrMidCategoryNotFound      = errors.New("mid level category not found")
	ErrTerminalCategoryNotFound = errors.New("terminal level category not found")
	ErrVendorNotFound           = errors.New("vendor not found")
	ErrReviewNotFound           = errors.New("review not found")
)

// Identifiers are stored as 16-byte values (BYTEA) at the storage boundary.

func encodeID(id uuid.UUID) []byte {
	return id[:]
}

func decodeID(b []byte) (uuid.UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to decode stored id: %w", err)
	}
	return id, nil
}
