// Package project implements leaf-content management. Projects attach to
// nodes; by convention they live on leaves, but the attachment itself only
// requires that the node exists, so restructuring a branch never strands
// its content.
package project

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/edustack/catalog-backend/internal/domain"
)

type projectRepo interface {
	GetByID(ctx context.Context, projectID uuid.UUID) (*domain.Project, error)
	ListByNode(ctx context.Context, nodeID uuid.UUID) ([]*domain.Project, error)
	CountByNode(ctx context.Context, nodeID uuid.UUID) (int, error)
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	Save(ctx context.Context, projectID uuid.UUID, params domain.ProjectUpdateParams, slug *string) (*domain.Project, error)
	Delete(ctx context.Context, projectID uuid.UUID) error
}

type nodeRepo interface {
	GetByID(ctx context.Context, nodeID uuid.UUID) (*domain.Node, error)
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

// Limits bounds content growth. A zero or negative value disables the
// corresponding limit.
type Limits struct {
	MaxProjectsPerNode int
}

// Service provides project management operations.
type Service struct {
	projects projectRepo
	nodes    nodeRepo
	media    mediaRepo
	blobs    blobStore
	tx       txManager
	limits   Limits
	log      *slog.Logger
}

// NewService creates a new project service.
func NewService(
	log *slog.Logger,
	projects projectRepo,
	nodes nodeRepo,
	media mediaRepo,
	blobs blobStore,
	tx txManager,
	limits Limits,
) *Service {
	return &Service{
		projects: projects,
		nodes:    nodes,
		media:    media,
		blobs:    blobs,
		tx:       tx,
		limits:   limits,
		log:      log.With("service", "project"),
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
