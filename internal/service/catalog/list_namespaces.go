package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/edustack/catalog-backend/internal/domain"
)

// ListNamespaces returns all namespaces ordered by title.
// Returns an empty slice (not nil) when there are none.
func (s *Service) ListNamespaces(ctx context.Context) ([]*domain.Namespace, error) {
	result, err := s.namespaces.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list namespaces: %w", err)
	}
	return result, nil
}

// GetNamespace returns a single namespace by id.
func (s *Service) GetNamespace(ctx context.Context, namespaceID uuid.UUID) (*domain.Namespace, error) {
	if namespaceID == uuid.Nil {
		return nil, domain.NewValidationError("namespace_id", "required")
	}

	ns, err := s.namespaces.GetByID(ctx, namespaceID)
	if err != nil {
		return nil, fmt.Errorf("get namespace: %w", err)
	}

	return ns, nil
}

// GetNamespaceBySlug returns a single namespace by its slug.
func (s *Service) GetNamespaceBySlug(ctx context.Context, slug string) (*domain.Namespace, error) {
	if slug == "" {
		return nil, domain.NewValidationError("slug", "required")
	}

	ns, err := s.namespaces.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get namespace by slug: %w", err)
	}

	return ns, nil
}
