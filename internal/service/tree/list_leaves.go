package tree

import (
	"context"
	"fmt"

	"github.com/edustack/catalog-backend/internal/domain"
)

// ListLeaves returns all leaf nodes, restricted to one namespace when
// NamespaceID is set. Leaves are where projects attach, so this is the
// natural pick list for content placement.
// Returns an empty slice (not nil) when there are none.
func (s *Service) ListLeaves(ctx context.Context, input ListLeavesInput) ([]*domain.Node, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if input.NamespaceID != nil {
		if _, err := s.namespaces.GetByID(ctx, *input.NamespaceID); err != nil {
			return nil, fmt.Errorf("get namespace: %w", err)
		}
	}

	leaves, err := s.nodes.ListLeaves(ctx, input.NamespaceID)
	if err != nil {
		return nil, fmt.Errorf("list leaves: %w", err)
	}

	return leaves, nil
}
