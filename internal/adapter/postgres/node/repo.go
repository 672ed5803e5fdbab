// Package node implements the catalog node repository using PostgreSQL.
// Nodes form a self-referencing tree inside a namespace; all traversal is
// done by keyed lookups, never by joins over unbounded depth. No business
// rules live here — level, leaf status, and acyclicity are maintained by
// the tree service.
package node

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/edustack/catalog-backend/internal/adapter/postgres"
	"github.com/edustack/catalog-backend/internal/domain"
)

// Repo provides node persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new node repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const nodeColumns = `id, namespace_id, parent_id, level, is_leaf, title, slug, description, active, sort_order, created_at, updated_at`

// ---------------------------------------------------------------------------
// Raw SQL
// ---------------------------------------------------------------------------

const getByIDSQL = `
SELECT ` + nodeColumns + `
FROM nodes
WHERE id = $1`

const getChildrenSQL = `
SELECT ` + nodeColumns + `
FROM nodes
WHERE parent_id = $1
ORDER BY sort_order, title`

const listByNamespaceSQL = `
SELECT ` + nodeColumns + `
FROM nodes
WHERE namespace_id = $1
ORDER BY level, sort_order, title`

const findByTitleSQL = `
SELECT ` + nodeColumns + `
FROM nodes
WHERE namespace_id = $1 AND lower(title) = lower($2)`

const findBySlugSQL = `
SELECT ` + nodeColumns + `
FROM nodes
WHERE namespace_id = $1 AND slug = $2`

const createSQL = `
INSERT INTO nodes (` + nodeColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING ` + nodeColumns

const setParentAndLevelSQL = `
UPDATE nodes SET parent_id = $1, level = $2, updated_at = $3
WHERE id = $4`

const setLevelSQL = `
UPDATE nodes SET level = $1, updated_at = $2
WHERE id = $3`

const setLeafSQL = `
UPDATE nodes SET is_leaf = $1, updated_at = $2
WHERE id = $3`

const countChildrenSQL = `
SELECT count(*) FROM nodes WHERE parent_id = $1`

const countByNamespaceSQL = `
SELECT count(*) FROM nodes WHERE namespace_id = $1`

const deleteSQL = `
DELETE FROM nodes WHERE id = $1`

const listLeavesSQL = `
SELECT ` + nodeColumns + `
FROM nodes
WHERE is_leaf
ORDER BY namespace_id, sort_order, title`

const listLeavesByNamespaceSQL = `
SELECT ` + nodeColumns + `
FROM nodes
WHERE namespace_id = $1 AND is_leaf
ORDER BY sort_order, title`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a node by primary key.
// Returns domain.ErrNotFound if the node does not exist.
func (r *Repo) GetByID(ctx context.Context, nodeID uuid.UUID) (*domain.Node, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	n, err := scanNodeRow(querier.QueryRow(ctx, getByIDSQL, nodeID))
	if err != nil {
		return nil, postgres.MapError(err, "node", nodeID)
	}

	return n, nil
}

// GetChildren returns the direct children of a node ordered by sort order.
// Returns an empty slice (not nil) for a leaf.
func (r *Repo) GetChildren(ctx context.Context, nodeID uuid.UUID) ([]*domain.Node, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, getChildrenSQL, nodeID)
	if err != nil {
		return nil, fmt.Errorf("get children: %w", err)
	}
	defer rows.Close()

	result, err := scanNodes(rows)
	if err != nil {
		return nil, fmt.Errorf("get children: %w", err)
	}

	return result, nil
}

// ListByNamespace returns every node of a namespace as a flat list,
// shallowest first. Returns an empty slice (not nil) for an empty namespace.
func (r *Repo) ListByNamespace(ctx context.Context, namespaceID uuid.UUID) ([]*domain.Node, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByNamespaceSQL, namespaceID)
	if err != nil {
		return nil, fmt.Errorf("list nodes by namespace: %w", err)
	}
	defer rows.Close()

	result, err := scanNodes(rows)
	if err != nil {
		return nil, fmt.Errorf("list nodes by namespace: %w", err)
	}

	return result, nil
}

// FindByTitle returns the node with the given title inside a namespace,
// compared case-insensitively. Returns domain.ErrNotFound if absent.
func (r *Repo) FindByTitle(ctx context.Context, namespaceID uuid.UUID, title string) (*domain.Node, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	n, err := scanNodeRow(querier.QueryRow(ctx, findByTitleSQL, namespaceID, title))
	if err != nil {
		return nil, postgres.MapError(err, "node", uuid.Nil)
	}

	return n, nil
}

// FindBySlug returns the node with the given slug inside a namespace.
// Returns domain.ErrNotFound if absent.
func (r *Repo) FindBySlug(ctx context.Context, namespaceID uuid.UUID, slug string) (*domain.Node, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	n, err := scanNodeRow(querier.QueryRow(ctx, findBySlugSQL, namespaceID, slug))
	if err != nil {
		return nil, postgres.MapError(err, "node", uuid.Nil)
	}

	return n, nil
}

// CountChildren returns the number of direct children of a node.
func (r *Repo) CountChildren(ctx context.Context, nodeID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countChildrenSQL, nodeID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count children: %w", err)
	}

	return count, nil
}

// CountByNamespace returns the number of nodes a namespace owns.
func (r *Repo) CountByNamespace(ctx context.Context, namespaceID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countByNamespaceSQL, namespaceID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count nodes by namespace: %w", err)
	}

	return count, nil
}

// ListLeaves returns all leaf nodes, optionally restricted to one namespace.
// Returns an empty slice (not nil) when there are none.
func (r *Repo) ListLeaves(ctx context.Context, namespaceID *uuid.UUID) ([]*domain.Node, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var (
		rows pgx.Rows
		err  error
	)
	if namespaceID != nil {
		rows, err = querier.Query(ctx, listLeavesByNamespaceSQL, *namespaceID)
	} else {
		rows, err = querier.Query(ctx, listLeavesSQL)
	}
	if err != nil {
		return nil, fmt.Errorf("list leaves: %w", err)
	}
	defer rows.Close()

	result, err := scanNodes(rows)
	if err != nil {
		return nil, fmt.Errorf("list leaves: %w", err)
	}

	return result, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new node and returns the persisted domain.Node.
// Returns domain.ErrAlreadyExists on a (namespace_id, slug) or
// (namespace_id, lower(title)) unique violation.
func (r *Repo) Create(ctx context.Context, n *domain.Node) (*domain.Node, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	id := n.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	now := time.Now().UTC().Truncate(time.Microsecond)

	created, err := scanNodeRow(querier.QueryRow(ctx, createSQL,
		id,
		n.NamespaceID,
		ptrUUIDToPg(n.ParentID),
		n.Level,
		n.IsLeaf,
		n.Title,
		n.Slug,
		ptrStringToPgText(n.Description),
		n.Active,
		n.SortOrder,
		now,
		now,
	))
	if err != nil {
		return nil, postgres.MapError(err, "node", id)
	}

	return created, nil
}

// Save applies partial non-structural updates to a node and returns the
// updated record. Returns domain.ErrNotFound if the node does not exist.
// A title change also rewrites the slug; callers pass the derived slug.
func (r *Repo) Save(ctx context.Context, nodeID uuid.UUID, params domain.NodeUpdateParams, slug *string) (*domain.Node, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	update := sq.Update("nodes").
		PlaceholderFormat(sq.Dollar).
		Set("updated_at", time.Now().UTC().Truncate(time.Microsecond)).
		Where(sq.Eq{"id": nodeID}).
		Suffix("RETURNING " + nodeColumns)

	if params.Title != nil {
		update = update.Set("title", *params.Title)
	}
	if slug != nil {
		update = update.Set("slug", *slug)
	}
	if params.Description != nil {
		if *params.Description == "" {
			// ptr("") means clear (set NULL in DB).
			update = update.Set("description", nil)
		} else {
			update = update.Set("description", *params.Description)
		}
	}
	if params.Active != nil {
		update = update.Set("active", *params.Active)
	}
	if params.SortOrder != nil {
		update = update.Set("sort_order", *params.SortOrder)
	}

	query, args, err := update.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build node update: %w", err)
	}

	n, err := scanNodeRow(querier.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "node", nodeID)
	}

	return n, nil
}

// SetParentAndLevel rewrites the structural fields of a node in one update.
// Returns domain.ErrNotFound if the node does not exist.
func (r *Repo) SetParentAndLevel(ctx context.Context, nodeID uuid.UUID, parentID *uuid.UUID, level int) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)
	tag, err := querier.Exec(ctx, setParentAndLevelSQL, ptrUUIDToPg(parentID), level, now, nodeID)
	if err != nil {
		return postgres.MapError(err, "node", nodeID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("node %s: %w", nodeID, domain.ErrNotFound)
	}

	return nil
}

// SetLevel rewrites only the level of a node (used by level propagation).
// Returns domain.ErrNotFound if the node does not exist.
func (r *Repo) SetLevel(ctx context.Context, nodeID uuid.UUID, level int) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)
	tag, err := querier.Exec(ctx, setLevelSQL, level, now, nodeID)
	if err != nil {
		return postgres.MapError(err, "node", nodeID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("node %s: %w", nodeID, domain.ErrNotFound)
	}

	return nil
}

// SetLeaf rewrites only the leaf flag of a node.
// Returns domain.ErrNotFound if the node does not exist.
func (r *Repo) SetLeaf(ctx context.Context, nodeID uuid.UUID, isLeaf bool) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)
	tag, err := querier.Exec(ctx, setLeafSQL, isLeaf, now, nodeID)
	if err != nil {
		return postgres.MapError(err, "node", nodeID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("node %s: %w", nodeID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a node record. The caller is responsible for the subtree:
// the schema restricts deletion while children reference the node.
// Returns domain.ErrNotFound if the node does not exist.
func (r *Repo) Delete(ctx context.Context, nodeID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, nodeID)
	if err != nil {
		return postgres.MapError(err, "node", nodeID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("node %s: %w", nodeID, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

// scanNodes scans multiple rows into []*domain.Node.
func scanNodes(rows pgx.Rows) ([]*domain.Node, error) {
	var result []*domain.Node
	for rows.Next() {
		n, err := scanNodeRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []*domain.Node{}
	}

	return result, nil
}

// scanNodeRow scans a single node row in nodeColumns order.
func scanNodeRow(row pgx.Row) (*domain.Node, error) {
	var (
		n           domain.Node
		parentID    pgtype.UUID
		description pgtype.Text
	)

	err := row.Scan(
		&n.ID,
		&n.NamespaceID,
		&parentID,
		&n.Level,
		&n.IsLeaf,
		&n.Title,
		&n.Slug,
		&description,
		&n.Active,
		&n.SortOrder,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if parentID.Valid {
		id := uuid.UUID(parentID.Bytes)
		n.ParentID = &id
	}
	if description.Valid {
		n.Description = &description.String
	}

	return &n, nil
}

// ---------------------------------------------------------------------------
// pgtype helpers
// ---------------------------------------------------------------------------

// ptrStringToPgText converts a *string to pgtype.Text (nil -> NULL).
func ptrStringToPgText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

// ptrUUIDToPg converts a *uuid.UUID to pgtype.UUID (nil -> NULL).
func ptrUUIDToPg(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{}
	}
	return pgtype.UUID{Bytes: *id, Valid: true}
}
