package domain

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// HexID renders a UUID the way identifiers travel at the API boundary:
// 32 lowercase hex characters, no dashes.
func HexID(id uuid.UUID) string {
	return hex.EncodeToString(id[:])
}
