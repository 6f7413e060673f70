package utils

import (
	"github.com/google/uuid"
)

var newUUIDv7 = uuid.NewV7

// NewSortableID returns a time-ordered UUIDv7 so ledger rows sort by insertion.
// A random v4 is returned if the clock source fails.
func NewSortableID() uuid.UUID {
	id, err := newUUIDv7()
	if err != nil {
		return uuid.New()
	}
	return id
}
