package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxTreeDepth is the maximum node level. Roots are level 1, so a chain of
// MaxTreeDepth nodes is the deepest tree the catalog accepts.
const MaxTreeDepth = 5

// Node is a tree element inside exactly one namespace. ParentID == nil
// means the node is a root of its namespace. Level and IsLeaf are derived
// values maintained by the tree service; they are never accepted from
// clients.
type Node struct {
	ID          uuid.UUID
	NamespaceID uuid.UUID
	ParentID    *uuid.UUID
	Level       int
	IsLeaf      bool
	Title       string
	Slug        string
	Description *string
	Active      bool
	SortOrder   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsRoot reports whether the node has no parent.
func (n *Node) IsRoot() bool { return n.ParentID == nil }

// NodeUpdateParams carries partial non-structural updates for a node.
// Nil fields are left unchanged. Structural changes (parent, level)
// go through reparenting.
type NodeUpdateParams struct {
	Title       *string
	Description *string // ptr("") clears
	Active      *bool
	SortOrder   *int
}

// TreeNode is a node together with its assembled children, as returned by
// the hierarchy read operations.
type TreeNode struct {
	Node
	Children []*TreeNode
}
