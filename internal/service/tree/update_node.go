package tree

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/edustack/catalog-backend/internal/domain"
)

// UpdateNode applies partial attribute updates to a node. A title change
// re-derives the slug and re-checks title and slug uniqueness inside the
// namespace. Structural fields are untouchable here; parent changes go
// through ReparentNode.
func (s *Service) UpdateNode(ctx context.Context, input UpdateNodeInput) (*domain.Node, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var node *domain.Node
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.nodes.GetByID(txCtx, input.NodeID)
		if err != nil {
			return fmt.Errorf("get node: %w", err)
		}

		params := domain.NodeUpdateParams{
			Description: input.Description,
			Active:      input.Active,
			SortOrder:   input.SortOrder,
		}

		var slug *string
		if input.Title != nil {
			title := strings.TrimSpace(*input.Title)
			if domain.NormalizeTitle(title) != domain.NormalizeTitle(current.Title) {
				newSlug := domain.Slugify(title)
				if newSlug == "" {
					return domain.NewValidationError("title", "must contain at least one letter or digit")
				}
				if err := s.checkTitleAndSlugFree(txCtx, current.NamespaceID, title, newSlug, current.ID); err != nil {
					return err
				}
				slug = &newSlug
			}
			params.Title = &title
		}

		node, err = s.nodes.Save(txCtx, input.NodeID, params, slug)
		if err != nil {
			return fmt.Errorf("save node: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "node updated",
		slog.String("node_id", node.ID.String()),
		slog.String("title", node.Title),
	)

	return node, nil
}

// GetNode returns a single node by id.
func (s *Service) GetNode(ctx context.Context, nodeID uuid.UUID) (*domain.Node, error) {
	if nodeID == uuid.Nil {
		return nil, domain.NewValidationError("node_id", "required")
	}

	node, err := s.nodes.GetByID(ctx, nodeID)
	if err != nil {
		return nil, fmt.Errorf("get node: %w", err)
	}

	return node, nil
}
