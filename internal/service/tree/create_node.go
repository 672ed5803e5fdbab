package tree

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/edustack/catalog-backend/internal/domain"
)

// CreateNode creates a new node in a namespace, as a root when ParentID is
// nil or as a child otherwise. The node always starts as a leaf; if the
// parent was a leaf before, it stops being one in the same transaction.
//
// Placement checks run inside the transaction so a concurrent structural
// change cannot be observed half-applied: parent must live in the same
// namespace (domain.ErrInvalidReference), the child level must not exceed
// domain.MaxTreeDepth (domain.ErrDepthExceeded), and title and slug must be
// unique within the namespace (domain.ErrAlreadyExists).
func (s *Service) CreateNode(ctx context.Context, input CreateNodeInput) (*domain.Node, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	description := trimOrNil(input.Description)
	active := true
	if input.Active != nil {
		active = *input.Active
	}
	slug := domain.Slugify(title)
	if slug == "" {
		return nil, domain.NewValidationError("title", "must contain at least one letter or digit")
	}

	var node *domain.Node
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		ns, err := s.namespaces.GetByID(txCtx, input.NamespaceID)
		if err != nil {
			return fmt.Errorf("get namespace: %w", err)
		}
		if !ns.Active {
			// Inactive namespaces do not accept new nodes and are treated
			// as absent.
			return fmt.Errorf("namespace %s is inactive: %w", ns.ID, domain.ErrNotFound)
		}

		level := 1
		if input.ParentID != nil {
			parent, err := s.nodes.GetByID(txCtx, *input.ParentID)
			if err != nil {
				return fmt.Errorf("get parent: %w", err)
			}
			if parent.NamespaceID != input.NamespaceID {
				return fmt.Errorf("parent %s belongs to another namespace: %w",
					parent.ID, domain.ErrInvalidReference)
			}
			level = parent.Level + 1
			if level > domain.MaxTreeDepth {
				return fmt.Errorf("level %d exceeds max depth %d: %w",
					level, domain.MaxTreeDepth, domain.ErrDepthExceeded)
			}
		}

		if s.limits.MaxNodesPerNamespace > 0 {
			count, err := s.nodes.CountByNamespace(txCtx, input.NamespaceID)
			if err != nil {
				return fmt.Errorf("count namespace nodes: %w", err)
			}
			if count >= s.limits.MaxNodesPerNamespace {
				return fmt.Errorf("namespace %s holds %d nodes (limit %d): %w",
					input.NamespaceID, count, s.limits.MaxNodesPerNamespace, domain.ErrConflict)
			}
		}

		if err := s.checkTitleAndSlugFree(txCtx, input.NamespaceID, title, slug, uuid.Nil); err != nil {
			return err
		}

		node, err = s.nodes.Create(txCtx, &domain.Node{
			NamespaceID: input.NamespaceID,
			ParentID:    input.ParentID,
			Level:       level,
			IsLeaf:      true,
			Title:       title,
			Slug:        slug,
			Description: description,
			Active:      active,
			SortOrder:   input.SortOrder,
		})
		if err != nil {
			return fmt.Errorf("create node: %w", err)
		}

		if input.ParentID != nil {
			if err := s.nodes.SetLeaf(txCtx, *input.ParentID, false); err != nil {
				return fmt.Errorf("unset parent leaf: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "node created",
		slog.String("node_id", node.ID.String()),
		slog.String("namespace_id", node.NamespaceID.String()),
		slog.Int("level", node.Level),
		slog.String("title", title),
	)

	return node, nil
}

// checkTitleAndSlugFree verifies that neither the title (case-insensitive)
// nor the derived slug is taken inside the namespace by a different node.
// Pass the node's own id as excludeID on update so it does not collide with
// itself; uuid.Nil means no exclusion. The database unique indexes back
// this check for races the read cannot see.
func (s *Service) checkTitleAndSlugFree(ctx context.Context, namespaceID uuid.UUID, title, slug string, excludeID uuid.UUID) error {
	existing, err := s.nodes.FindByTitle(ctx, namespaceID, title)
	switch {
	case err == nil:
		if existing.ID != excludeID {
			return fmt.Errorf("title %q is taken: %w", title, domain.ErrAlreadyExists)
		}
	case !errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("find by title: %w", err)
	}

	existing, err = s.nodes.FindBySlug(ctx, namespaceID, slug)
	switch {
	case err == nil:
		if existing.ID != excludeID {
			return fmt.Errorf("slug %q is taken: %w", slug, domain.ErrAlreadyExists)
		}
	case !errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("find by slug: %w", err)
	}

	return nil
}
