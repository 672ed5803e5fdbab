package project

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/edustack/catalog-backend/internal/domain"
)

// UpdateProject applies partial updates to a project. A title change
// re-derives the slug; collisions inside the node surface as
// domain.ErrAlreadyExists from the unique index.
func (s *Service) UpdateProject(ctx context.Context, input UpdateProjectInput) (*domain.Project, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var project *domain.Project
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.projects.GetByID(txCtx, input.ProjectID)
		if err != nil {
			return fmt.Errorf("get project: %w", err)
		}

		params := domain.ProjectUpdateParams{
			Summary:   input.Summary,
			Active:    input.Active,
			SortOrder: input.SortOrder,
		}

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

		project, err = s.projects.Save(txCtx, input.ProjectID, params, slug)
		if err != nil {
			return fmt.Errorf("save project: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "project updated",
		slog.String("project_id", project.ID.String()),
	)

	return project, nil
}

// GetProject returns a single project by id.
func (s *Service) GetProject(ctx context.Context, projectID uuid.UUID) (*domain.Project, error) {
	if projectID == uuid.Nil {
		return nil, domain.NewValidationError("project_id", "required")
	}

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}

	return project, nil
}

// ListProjects returns all projects attached to a node.
// Returns an empty slice (not nil) when the node has none.
func (s *Service) ListProjects(ctx context.Context, nodeID uuid.UUID) ([]*domain.Project, error) {
	if nodeID == uuid.Nil {
		return nil, domain.NewValidationError("node_id", "required")
	}

	if _, err := s.nodes.GetByID(ctx, nodeID); err != nil {
		return nil, fmt.Errorf("get node: %w", err)
	}

	result, err := s.projects.ListByNode(ctx, nodeID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	return result, nil
}
