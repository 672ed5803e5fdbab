package project

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/edustack/catalog-backend/internal/domain"
)

// DeleteProject removes a project, its media records, and (best-effort) the
// blobs behind them. Blob failures are logged, not fatal: the records are
// gone either way.
func (s *Service) DeleteProject(ctx context.Context, input DeleteProjectInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	var warnings []string
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		project, err := s.projects.GetByID(txCtx, input.ProjectID)
		if err != nil {
			return fmt.Errorf("get project: %w", err)
		}

		assets, err := s.media.ListByOwner(txCtx, domain.EntityTypeProject, project.ID)
		if err != nil {
			return fmt.Errorf("list media: %w", err)
		}
		for _, asset := range assets {
			if err := s.blobs.Delete(txCtx, asset.Path); err != nil {
				warnings = append(warnings, fmt.Sprintf("blob %s: %v", asset.Path, err))
			}
		}
		if _, err := s.media.DeleteByOwner(txCtx, domain.EntityTypeProject, project.ID); err != nil {
			return fmt.Errorf("delete media records: %w", err)
		}

		if err := s.projects.Delete(txCtx, project.ID); err != nil {
			return fmt.Errorf("delete project: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "project deleted",
		slog.String("project_id", input.ProjectID.String()),
	)
	for _, warning := range warnings {
		s.log.WarnContext(ctx, "media blob not removed", slog.String("detail", warning))
	}

	return nil
}
