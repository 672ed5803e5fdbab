package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/edustack/catalog-backend/internal/domain"
)

// DeleteNamespace removes an empty namespace and its media. A namespace
// that still owns nodes is refused with domain.ErrConflict; the node tree
// must be deleted through the tree service first, which is where the
// cascade and force rules live.
func (s *Service) DeleteNamespace(ctx context.Context, input DeleteNamespaceInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	var warnings []string
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		ns, err := s.namespaces.GetByID(txCtx, input.NamespaceID)
		if err != nil {
			return fmt.Errorf("get namespace: %w", err)
		}

		nodeCount, err := s.nodes.CountByNamespace(txCtx, ns.ID)
		if err != nil {
			return fmt.Errorf("count nodes: %w", err)
		}
		if nodeCount > 0 {
			return fmt.Errorf("namespace %s still owns %d nodes: %w",
				ns.ID, nodeCount, domain.ErrConflict)
		}

		assets, err := s.media.ListByOwner(txCtx, domain.EntityTypeNamespace, ns.ID)
		if err != nil {
			return fmt.Errorf("list media: %w", err)
		}
		for _, asset := range assets {
			if err := s.blobs.Delete(txCtx, asset.Path); err != nil {
				warnings = append(warnings, fmt.Sprintf("blob %s: %v", asset.Path, err))
			}
		}
		if _, err := s.media.DeleteByOwner(txCtx, domain.EntityTypeNamespace, ns.ID); err != nil {
			return fmt.Errorf("delete media records: %w", err)
		}

		if err := s.namespaces.Delete(txCtx, ns.ID); err != nil {
			return fmt.Errorf("delete namespace: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "namespace deleted",
		slog.String("namespace_id", input.NamespaceID.String()),
	)
	for _, warning := range warnings {
		s.log.WarnContext(ctx, "media blob not removed", slog.String("detail", warning))
	}

	return nil
}
