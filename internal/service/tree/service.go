// Package tree implements catalog hierarchy management: node creation,
// reparenting, subtree deletion, and tree reads. The service owns the
// derived fields (level, is_leaf) and the structural invariants (acyclic,
// bounded depth); repositories only persist what the service computed.
package tree

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/edustack/catalog-backend/internal/domain"
)

type nodeRepo interface {
	GetByID(ctx context.Context, nodeID uuid.UUID) (*domain.Node, error)
	GetChildren(ctx context.Context, nodeID uuid.UUID) ([]*domain.Node, error)
	ListByNamespace(ctx context.Context, namespaceID uuid.UUID) ([]*domain.Node, error)
	FindByTitle(ctx context.Context, namespaceID uuid.UUID, title string) (*domain.Node, error)
	FindBySlug(ctx context.Context, namespaceID uuid.UUID, slug string) (*domain.Node, error)
	CountChildren(ctx context.Context, nodeID uuid.UUID) (int, error)
	CountByNamespace(ctx context.Context, namespaceID uuid.UUID) (int, error)
	ListLeaves(ctx context.Context, namespaceID *uuid.UUID) ([]*domain.Node, error)

	Create(ctx context.Context, n *domain.Node) (*domain.Node, error)
	Save(ctx context.Context, nodeID uuid.UUID, params domain.NodeUpdateParams, slug *string) (*domain.Node, error)
	SetParentAndLevel(ctx context.Context, nodeID uuid.UUID, parentID *uuid.UUID, level int) error
	SetLevel(ctx context.Context, nodeID uuid.UUID, level int) error
	SetLeaf(ctx context.Context, nodeID uuid.UUID, isLeaf bool) error
	Delete(ctx context.Context, nodeID uuid.UUID) error
}

type namespaceRepo interface {
	GetByID(ctx context.Context, namespaceID uuid.UUID) (*domain.Namespace, error)
}

type projectRepo interface {
	ListByNode(ctx context.Context, nodeID uuid.UUID) ([]*domain.Project, error)
	Delete(ctx context.Context, projectID uuid.UUID) error
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

// Limits bounds namespace growth. A zero or negative value disables the
// corresponding limit.
type Limits struct {
	MaxNodesPerNamespace int
}

// Service provides catalog tree operations.
type Service struct {
	nodes      nodeRepo
	namespaces namespaceRepo
	projects   projectRepo
	media      mediaRepo
	blobs      blobStore
	tx         txManager
	limits     Limits
	log        *slog.Logger
}

// NewService creates a new tree service.
func NewService(
	log *slog.Logger,
	nodes nodeRepo,
	namespaces namespaceRepo,
	projects projectRepo,
	media mediaRepo,
	blobs blobStore,
	tx txManager,
	limits Limits,
) *Service {
	return &Service{
		nodes:      nodes,
		namespaces: namespaces,
		projects:   projects,
		media:      media,
		blobs:      blobs,
		tx:         tx,
		limits:     limits,
		log:        log.With("service", "tree"),
	}
}

// trimOrNil trims whitespace. Returns nil if result is empty.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// sameParent reports whether two parent references point at the same node.
func sameParent(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
