package utils

import (
	"fmt"

	"github.com/google/uuid"
)

// NewID generates an opaque entity identifier with a type prefix,
// e.g. "playlist-6ba7b810-9dad-11d1-80b4-00c04fd430c8".
func NewID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
}
