// Package catalog implements namespace management. A namespace is the unit
// of isolation for the node tree: slugs and titles are unique within it and
// structural operations never cross it.
package catalog

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/edustack/catalog-backend/internal/domain"
)

type namespaceRepo interface {
	GetByID(ctx context.Context, namespaceID uuid.UUID) (*domain.Namespace, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Namespace, error)
	List(ctx context.Context) ([]*domain.Namespace, error)
	Create(ctx context.Context, ns *domain.Namespace) (*domain.Namespace, error)
	Save(ctx context.Context, namespaceID uuid.UUID, params domain.NamespaceUpdateParams, slug *string) (*domain.Namespace, error)
	Delete(ctx context.Context, namespaceID uuid.UUID) error
}

type nodeRepo interface {
	CountByNamespace(ctx context.Context, namespaceID uuid.UUID) (int, error)
}

type mediaRepo interface {
	ListByOwner(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) ([]*domain.MediaAsset, error)
	DeleteByOwner(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) (int, error)
}

type blobStore interface {
	Delete(ctx context.Context, relPath string) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides namespace management operations.
type Service struct {
	namespaces namespaceRepo
	nodes      nodeRepo
	media      mediaRepo
	blobs      blobStore
	tx         txManager
	log        *slog.Logger
}

// NewService creates a new catalog service.
func NewService(
	log *slog.Logger,
	namespaces namespaceRepo,
	nodes nodeRepo,
	media mediaRepo,
	blobs blobStore,
	tx txManager,
) *Service {
	return &Service{
		namespaces: namespaces,
		nodes:      nodes,
		media:      media,
		blobs:      blobs,
		tx:         tx,
		log:        log.With("service", "catalog"),
	}
}
