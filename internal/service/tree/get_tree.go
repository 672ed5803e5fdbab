package tree

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/edustack/catalog-backend/internal/domain"
)

// GetTree returns the full hierarchy of a namespace as a forest of root
// nodes. Assembly keys on parent_id alone; the stored level column is
// ignored while linking, so a node whose persisted level has drifted still
// lands under its actual parent. Sibling order follows sort_order, then
// title.
func (s *Service) GetTree(ctx context.Context, input GetTreeInput) ([]*domain.TreeNode, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.namespaces.GetByID(ctx, input.NamespaceID); err != nil {
		return nil, fmt.Errorf("get namespace: %w", err)
	}

	flat, err := s.nodes.ListByNamespace(ctx, input.NamespaceID)
	if err != nil {
		return nil, fmt.Errorf("list nodes: %w", err)
	}

	return assembleForest(flat), nil
}

// assembleForest links a flat node list into trees by parent_id. The input
// arrives ordered by (level, sort_order, title), so every child slice keeps
// sibling order without re-sorting. Returns an empty slice (not nil) for an
// empty namespace.
func assembleForest(flat []*domain.Node) []*domain.TreeNode {
	byID := make(map[uuid.UUID]*domain.TreeNode, len(flat))
	for _, n := range flat {
		byID[n.ID] = &domain.TreeNode{Node: *n}
	}

	roots := []*domain.TreeNode{}
	for _, n := range flat {
		wrapped := byID[n.ID]
		if n.ParentID == nil {
			roots = append(roots, wrapped)
			continue
		}
		parent, ok := byID[*n.ParentID]
		if !ok {
			// Parent outside the result set; surface the node as a root
			// rather than dropping the branch.
			roots = append(roots, wrapped)
			continue
		}
		parent.Children = append(parent.Children, wrapped)
	}

	return roots
}
