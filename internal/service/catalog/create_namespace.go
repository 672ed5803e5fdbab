package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/edustack/catalog-backend/internal/domain"
)

// CreateNamespace creates a new active namespace. The slug is derived from
// the title and must be globally unique (domain.ErrAlreadyExists).
func (s *Service) CreateNamespace(ctx context.Context, input CreateNamespaceInput) (*domain.Namespace, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	slug := domain.Slugify(title)
	if slug == "" {
		return nil, domain.NewValidationError("title", "must contain at least one letter or digit")
	}

	ns, err := s.namespaces.Create(ctx, &domain.Namespace{
		Title:  title,
		Slug:   slug,
		Active: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create namespace: %w", err)
	}

	s.log.InfoContext(ctx, "namespace created",
		slog.String("namespace_id", ns.ID.String()),
		slog.String("slug", ns.Slug),
	)

	return ns, nil
}
