package tree

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/edustack/catalog-backend/internal/domain"
)

// DeleteNodeResult reports what a subtree deletion removed. MediaWarnings
// lists blobs that could not be removed from the store; their database
// records are gone regardless, so the operation still succeeds.
type DeleteNodeResult struct {
	DeletedNodes    int
	DeletedProjects int
	MediaWarnings   []string
}

// DeleteNode deletes a node and its entire subtree in one transaction.
// Without Force, a node that still has children or attached projects is
// refused with domain.ErrConflict so a fat-fingered id cannot take a branch
// or its content down.
//
// Children are deleted before their parents (the schema restricts deleting
// a referenced node), and each node takes its projects and media records
// with it. Blob removal is best-effort: a failed blob delete becomes a
// warning on the result, never a rollback, because the database must not
// be held hostage by the filesystem.
func (s *Service) DeleteNode(ctx context.Context, input DeleteNodeInput) (*DeleteNodeResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	result := &DeleteNodeResult{}
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		node, err := s.nodes.GetByID(txCtx, input.NodeID)
		if err != nil {
			return fmt.Errorf("get node: %w", err)
		}

		if !input.Force {
			childCount, err := s.nodes.CountChildren(txCtx, node.ID)
			if err != nil {
				return fmt.Errorf("count children: %w", err)
			}
			if childCount > 0 {
				return fmt.Errorf("node %s has %d children, force required: %w",
					node.ID, childCount, domain.ErrConflict)
			}

			attached, err := s.projects.ListByNode(txCtx, node.ID)
			if err != nil {
				return fmt.Errorf("list projects: %w", err)
			}
			if len(attached) > 0 {
				return fmt.Errorf("node %s has %d attached projects, force required: %w",
					node.ID, len(attached), domain.ErrConflict)
			}
		}

		order, err := s.collectSubtree(txCtx, node)
		if err != nil {
			return err
		}

		// Children before parents.
		for i := len(order) - 1; i >= 0; i-- {
			if err := s.deleteOneNode(txCtx, order[i], result); err != nil {
				return err
			}
		}

		if node.ParentID != nil {
			remaining, err := s.nodes.CountChildren(txCtx, *node.ParentID)
			if err != nil {
				return fmt.Errorf("count parent children: %w", err)
			}
			if remaining == 0 {
				if err := s.nodes.SetLeaf(txCtx, *node.ParentID, true); err != nil {
					return fmt.Errorf("set parent leaf: %w", err)
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "subtree deleted",
		slog.String("node_id", input.NodeID.String()),
		slog.Int("nodes", result.DeletedNodes),
		slog.Int("projects", result.DeletedProjects),
		slog.Int("media_warnings", len(result.MediaWarnings)),
	)
	for _, warning := range result.MediaWarnings {
		s.log.WarnContext(ctx, "media blob not removed", slog.String("detail", warning))
	}

	return result, nil
}

// collectSubtree returns the subtree rooted at node in parents-first order.
func (s *Service) collectSubtree(ctx context.Context, node *domain.Node) ([]*domain.Node, error) {
	var order []*domain.Node

	stack := []*domain.Node{node}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order = append(order, top)

		children, err := s.nodes.GetChildren(ctx, top.ID)
		if err != nil {
			return nil, fmt.Errorf("collect subtree: %w", err)
		}
		stack = append(stack, children...)
	}

	return order, nil
}

// deleteOneNode removes a single childless node: its projects (each with
// its media), its own media, then the node record.
func (s *Service) deleteOneNode(ctx context.Context, node *domain.Node, result *DeleteNodeResult) error {
	projects, err := s.projects.ListByNode(ctx, node.ID)
	if err != nil {
		return fmt.Errorf("list projects: %w", err)
	}
	for _, p := range projects {
		if err := s.deleteOwnerMedia(ctx, domain.EntityTypeProject, p.ID, result); err != nil {
			return err
		}
		if err := s.projects.Delete(ctx, p.ID); err != nil {
			return fmt.Errorf("delete project %s: %w", p.ID, err)
		}
		result.DeletedProjects++
	}

	if err := s.deleteOwnerMedia(ctx, domain.EntityTypeNode, node.ID, result); err != nil {
		return err
	}

	if err := s.nodes.Delete(ctx, node.ID); err != nil {
		return fmt.Errorf("delete node %s: %w", node.ID, err)
	}
	result.DeletedNodes++

	return nil
}

// deleteOwnerMedia removes all media records owned by one entity and tries
// to remove the blobs behind them. Blob failures are recorded as warnings.
func (s *Service) deleteOwnerMedia(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, result *DeleteNodeResult) error {
	assets, err := s.media.ListByOwner(ctx, entityType, entityID)
	if err != nil {
		return fmt.Errorf("list media for %s %s: %w", entityType, entityID, err)
	}

	for _, asset := range assets {
		if err := s.blobs.Delete(ctx, asset.Path); err != nil {
			result.MediaWarnings = append(result.MediaWarnings,
				fmt.Sprintf("%s %s: blob %s: %v", entityType, entityID, asset.Path, err))
		}
	}

	if _, err := s.media.DeleteByOwner(ctx, entityType, entityID); err != nil {
		return fmt.Errorf("delete media records for %s %s: %w", entityType, entityID, err)
	}

	return nil
}
