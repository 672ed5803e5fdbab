package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edustack/catalog-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedNamespace creates an active namespace with a unique title and slug.
// Returns the filled domain.Namespace.
func SeedNamespace(t *testing.T, pool *pgxpool.Pool) domain.Namespace {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	ns := domain.Namespace{
		ID:        uuid.New(),
		Title:     "Test Namespace " + suffix,
		Slug:      "test-namespace-" + suffix,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO namespaces (id, title, slug, active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		ns.ID, ns.Title, ns.Slug, ns.Active, ns.CreatedAt, ns.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedNamespace insert: %v", err)
	}

	return ns
}

// SeedNode creates a node under the given namespace and parent (nil for a
// root). The level is derived from the parent; leaf flags of the parent are
// NOT maintained here, callers that care seed their own hierarchy.
func SeedNode(t *testing.T, pool *pgxpool.Pool, namespaceID uuid.UUID, parent *domain.Node) domain.Node {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)

	level := 1
	var parentID *uuid.UUID
	if parent != nil {
		level = parent.Level + 1
		parentID = &parent.ID
	}

	node := domain.Node{
		ID:          uuid.New(),
		NamespaceID: namespaceID,
		ParentID:    parentID,
		Level:       level,
		IsLeaf:      true,
		Title:       "Test Node " + suffix,
		Slug:        "test-node-" + suffix,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO nodes (id, namespace_id, parent_id, level, is_leaf, title, slug, description, active, sort_order, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		node.ID, node.NamespaceID, node.ParentID, node.Level, node.IsLeaf,
		node.Title, node.Slug, node.Description, node.Active, node.SortOrder,
		node.CreatedAt, node.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedNode insert: %v", err)
	}

	return node
}
