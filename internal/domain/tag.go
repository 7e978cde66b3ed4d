package domain

import "github.com/google/uuid"

// Tag is a label shared many-to-many with cities (e.g. "art", "seaside").
// Tags are reference data: they are seeded with the geography tables and
// matched case-insensitively by name.
type Tag struct {
	ID   uuid.UUID
	Name string
}
