package domain

import (
	"time"

	"github.com/google/uuid"
)

// EntityType identifies the kind of entity a media asset belongs to.
type EntityType string

const (
	EntityTypeNamespace EntityType = "namespace"
	EntityTypeNode      EntityType = "node"
	EntityTypeProject   EntityType = "project"
)

// Valid reports whether the entity type is one of the known kinds.
func (t EntityType) Valid() bool {
	switch t {
	case EntityTypeNamespace, EntityTypeNode, EntityTypeProject:
		return true
	}
	return false
}

// MediaAsset is a binary attachment owned by exactly one entity, identified
// by (EntityType, EntityID). Deleting the owner deletes its assets.
type MediaAsset struct {
	ID          uuid.UUID
	EntityType  EntityType
	EntityID    uuid.UUID
	Path        string
	ContentType string
	SizeBytes   int64
	CreatedAt   time.Time
}
