package domain

import (
	"time"

	"github.com/google/uuid"
)

// Project is leaf content attached to exactly one node. By convention
// projects are attached to leaf nodes; the system does not revoke a
// project when its node later gains children.
type Project struct {
	ID        uuid.UUID
	NodeID    uuid.UUID
	Title     string
	Slug      string
	Summary   *string
	Active    bool
	SortOrder int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProjectUpdateParams carries partial updates for a project.
// Nil fields are left unchanged.
type ProjectUpdateParams struct {
	Title     *string
	Summary   *string // ptr("") clears
	Active    *bool
	SortOrder *int
}
