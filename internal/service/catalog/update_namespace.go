package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/edustack/catalog-backend/internal/domain"
)

// UpdateNamespace applies partial updates to a namespace. A title change
// re-derives the slug; slug collisions surface as domain.ErrAlreadyExists
// from the unique index.
func (s *Service) UpdateNamespace(ctx context.Context, input UpdateNamespaceInput) (*domain.Namespace, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var ns *domain.Namespace
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.namespaces.GetByID(txCtx, input.NamespaceID)
		if err != nil {
			return fmt.Errorf("get namespace: %w", err)
		}

		params := domain.NamespaceUpdateParams{Active: input.Active}

		var slug *string
		if input.Title != nil {
			title := strings.TrimSpace(*input.Title)
			if title != current.Title {
				newSlug := domain.Slugify(title)
				if newSlug == "" {
					return domain.NewValidationError("title", "must contain at least one letter or digit")
				}
				slug = &newSlug
			}
			params.Title = &title
		}

		ns, err = s.namespaces.Save(txCtx, input.NamespaceID, params, slug)
		if err != nil {
			return fmt.Errorf("save namespace: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "namespace updated",
		slog.String("namespace_id", ns.ID.String()),
		slog.String("slug", ns.Slug),
	)

	return ns, nil
}
