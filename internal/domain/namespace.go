package domain

import (
	"time"

	"github.com/google/uuid"
)

// Namespace is a top-level grouping that owns an independent tree of nodes.
// Its slug is unique across the whole catalog.
type Namespace struct {
	ID        uuid.UUID
	Title     string
	Slug      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NamespaceUpdateParams carries partial updates for a namespace.
// Nil fields are left unchanged.
type NamespaceUpdateParams struct {
	Title  *string
	Active *bool
}
