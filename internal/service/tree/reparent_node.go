package tree

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/edustack/catalog-backend/internal/domain"
)

// ReparentNode moves a node (and implicitly its whole subtree) under a new
// parent, or to the namespace root when NewParentID is nil. All checks and
// writes happen in one transaction, re-reading current state rather than
// trusting anything the caller observed earlier:
//
//   - the new parent must be in the same namespace (domain.ErrInvalidReference)
//   - the new parent must not be the node itself or any of its descendants
//     (domain.ErrCircularReference); descent is checked by walking the new
//     parent's ancestor chain, which is bounded by domain.MaxTreeDepth
//   - the deepest descendant must still fit under domain.MaxTreeDepth at the
//     new position (domain.ErrDepthExceeded)
//
// After the move, levels are recomputed for the entire subtree and leaf
// flags are fixed on both the old and the new parent. Moving a node to the
// parent it already has is a no-op.
func (s *Service) ReparentNode(ctx context.Context, input ReparentNodeInput) (*domain.Node, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var node *domain.Node
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		node, err = s.nodes.GetByID(txCtx, input.NodeID)
		if err != nil {
			return fmt.Errorf("get node: %w", err)
		}

		if sameParent(node.ParentID, input.NewParentID) {
			return nil
		}

		newLevel := 1
		if input.NewParentID != nil {
			if *input.NewParentID == node.ID {
				return fmt.Errorf("node %s cannot be its own parent: %w",
					node.ID, domain.ErrCircularReference)
			}

			parent, err := s.nodes.GetByID(txCtx, *input.NewParentID)
			if err != nil {
				return fmt.Errorf("get new parent: %w", err)
			}
			if parent.NamespaceID != node.NamespaceID {
				return fmt.Errorf("new parent %s belongs to another namespace: %w",
					parent.ID, domain.ErrInvalidReference)
			}

			inSubtree, err := s.isAncestor(txCtx, node.ID, parent)
			if err != nil {
				return err
			}
			if inSubtree {
				return fmt.Errorf("new parent %s is a descendant of node %s: %w",
					parent.ID, node.ID, domain.ErrCircularReference)
			}

			newLevel = parent.Level + 1
		}

		subtreeHeight, err := s.subtreeHeight(txCtx, node)
		if err != nil {
			return err
		}
		if newLevel+subtreeHeight > domain.MaxTreeDepth {
			return fmt.Errorf("deepest descendant would reach level %d (max %d): %w",
				newLevel+subtreeHeight, domain.MaxTreeDepth, domain.ErrDepthExceeded)
		}

		oldParentID := node.ParentID

		if err := s.nodes.SetParentAndLevel(txCtx, node.ID, input.NewParentID, newLevel); err != nil {
			return fmt.Errorf("set parent: %w", err)
		}
		if err := s.propagateLevels(txCtx, node.ID, newLevel); err != nil {
			return err
		}

		if input.NewParentID != nil {
			if err := s.nodes.SetLeaf(txCtx, *input.NewParentID, false); err != nil {
				return fmt.Errorf("unset new parent leaf: %w", err)
			}
		}
		if oldParentID != nil {
			remaining, err := s.nodes.CountChildren(txCtx, *oldParentID)
			if err != nil {
				return fmt.Errorf("count old parent children: %w", err)
			}
			if remaining == 0 {
				if err := s.nodes.SetLeaf(txCtx, *oldParentID, true); err != nil {
					return fmt.Errorf("set old parent leaf: %w", err)
				}
			}
		}

		node, err = s.nodes.GetByID(txCtx, node.ID)
		if err != nil {
			return fmt.Errorf("reload node: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "node reparented",
		slog.String("node_id", node.ID.String()),
		slog.Int("level", node.Level),
		slog.Any("parent_id", node.ParentID),
	)

	return node, nil
}

// isAncestor reports whether candidateID appears in the ancestor chain of
// start (inclusive of start itself). The walk is O(depth), bounded by
// domain.MaxTreeDepth.
func (s *Service) isAncestor(ctx context.Context, candidateID uuid.UUID, start *domain.Node) (bool, error) {
	current := start
	for {
		if current.ID == candidateID {
			return true, nil
		}
		if current.ParentID == nil {
			return false, nil
		}
		next, err := s.nodes.GetByID(ctx, *current.ParentID)
		if err != nil {
			return false, fmt.Errorf("walk ancestors: %w", err)
		}
		current = next
	}
}

// subtreeHeight returns the height of the subtree rooted at node, measured
// in edges: 0 for a leaf, 1 when the deepest descendant is a direct child.
func (s *Service) subtreeHeight(ctx context.Context, node *domain.Node) (int, error) {
	type frame struct {
		id    uuid.UUID
		depth int
	}

	height := 0
	stack := []frame{{id: node.ID, depth: 0}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.depth > height {
			height = top.depth
		}

		children, err := s.nodes.GetChildren(ctx, top.id)
		if err != nil {
			return 0, fmt.Errorf("measure subtree: %w", err)
		}
		for _, child := range children {
			stack = append(stack, frame{id: child.ID, depth: top.depth + 1})
		}
	}

	return height, nil
}

// propagateLevels rewrites the level of every descendant of rootID, given
// the root's already-persisted level. Explicit work stack; depth is bounded
// so recursion would be fine too, but the stack keeps the write order
// obvious.
func (s *Service) propagateLevels(ctx context.Context, rootID uuid.UUID, rootLevel int) error {
	type frame struct {
		id    uuid.UUID
		level int
	}

	stack := []frame{{id: rootID, level: rootLevel}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		children, err := s.nodes.GetChildren(ctx, top.id)
		if err != nil {
			return fmt.Errorf("propagate levels: %w", err)
		}
		for _, child := range children {
			childLevel := top.level + 1
			if child.Level != childLevel {
				if err := s.nodes.SetLevel(ctx, child.ID, childLevel); err != nil {
					return fmt.Errorf("propagate levels: %w", err)
				}
			}
			stack = append(stack, frame{id: child.ID, level: childLevel})
		}
	}

	return nil
}
