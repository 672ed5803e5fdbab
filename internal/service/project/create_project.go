package project

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/edustack/catalog-backend/internal/domain"
)

// CreateProject creates a project attached to a node. The node must exist;
// attaching to a non-leaf is allowed but logged, because it usually means
// the caller restructured the tree and forgot to move content.
func (s *Service) CreateProject(ctx context.Context, input CreateProjectInput) (*domain.Project, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	summary := trimOrNil(input.Summary)
	slug := domain.Slugify(title)
	if slug == "" {
		return nil, domain.NewValidationError("title", "must contain at least one letter or digit")
	}

	var project *domain.Project
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		node, err := s.nodes.GetByID(txCtx, input.NodeID)
		if err != nil {
			return fmt.Errorf("get node: %w", err)
		}
		if !node.IsLeaf {
			s.log.WarnContext(txCtx, "project attached to non-leaf node",
				slog.String("node_id", node.ID.String()),
				slog.Int("level", node.Level),
			)
		}

		if s.limits.MaxProjectsPerNode > 0 {
			count, err := s.projects.CountByNode(txCtx, input.NodeID)
			if err != nil {
				return fmt.Errorf("count node projects: %w", err)
			}
			if count >= s.limits.MaxProjectsPerNode {
				return fmt.Errorf("node %s holds %d projects (limit %d): %w",
					input.NodeID, count, s.limits.MaxProjectsPerNode, domain.ErrConflict)
			}
		}

		project, err = s.projects.Create(txCtx, &domain.Project{
			NodeID:    input.NodeID,
			Title:     title,
			Slug:      slug,
			Summary:   summary,
			Active:    true,
			SortOrder: input.SortOrder,
		})
		if err != nil {
			return fmt.Errorf("create project: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "project created",
		slog.String("project_id", project.ID.String()),
		slog.String("node_id", project.NodeID.String()),
		slog.String("title", title),
	)

	return project, nil
}
