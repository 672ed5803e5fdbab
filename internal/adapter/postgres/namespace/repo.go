// Package namespace implements the namespace repository using PostgreSQL.
// Namespaces are flat records; the interesting structure lives in the node
// tree they own.
package namespace

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/edustack/catalog-backend/internal/adapter/postgres"
	"github.com/edustack/catalog-backend/internal/domain"
)

// Repo provides namespace persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new namespace repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const namespaceColumns = `id, title, slug, active, created_at, updated_at`

const getByIDSQL = `
SELECT ` + namespaceColumns + `
FROM namespaces
WHERE id = $1`

const getBySlugSQL = `
SELECT ` + namespaceColumns + `
FROM namespaces
WHERE slug = $1`

const listSQL = `
SELECT ` + namespaceColumns + `
FROM namespaces
ORDER BY title`

const createSQL = `
INSERT INTO namespaces (` + namespaceColumns + `)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + namespaceColumns

const deleteSQL = `
DELETE FROM namespaces WHERE id = $1`

// GetByID returns a namespace by primary key.
// Returns domain.ErrNotFound if the namespace does not exist.
func (r *Repo) GetByID(ctx context.Context, namespaceID uuid.UUID) (*domain.Namespace, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ns, err := scanNamespaceRow(querier.QueryRow(ctx, getByIDSQL, namespaceID))
	if err != nil {
		return nil, postgres.MapError(err, "namespace", namespaceID)
	}

	return ns, nil
}

// GetBySlug returns a namespace by its globally unique slug.
// Returns domain.ErrNotFound if the namespace does not exist.
func (r *Repo) GetBySlug(ctx context.Context, slug string) (*domain.Namespace, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ns, err := scanNamespaceRow(querier.QueryRow(ctx, getBySlugSQL, slug))
	if err != nil {
		return nil, postgres.MapError(err, "namespace", uuid.Nil)
	}

	return ns, nil
}

// List returns all namespaces ordered by title.
// Returns an empty slice (not nil) when there are none.
func (r *Repo) List(ctx context.Context) ([]*domain.Namespace, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listSQL)
	if err != nil {
		return nil, fmt.Errorf("list namespaces: %w", err)
	}
	defer rows.Close()

	var result []*domain.Namespace
	for rows.Next() {
		ns, err := scanNamespaceRow(rows)
		if err != nil {
			return nil, fmt.Errorf("list namespaces: %w", err)
		}
		result = append(result, ns)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list namespaces: %w", err)
	}

	if result == nil {
		result = []*domain.Namespace{}
	}

	return result, nil
}

// Create inserts a new namespace and returns the persisted record.
// Returns domain.ErrAlreadyExists on a slug unique violation.
func (r *Repo) Create(ctx context.Context, ns *domain.Namespace) (*domain.Namespace, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	id := ns.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	now := time.Now().UTC().Truncate(time.Microsecond)

	created, err := scanNamespaceRow(querier.QueryRow(ctx, createSQL,
		id, ns.Title, ns.Slug, ns.Active, now, now,
	))
	if err != nil {
		return nil, postgres.MapError(err, "namespace", id)
	}

	return created, nil
}

// Save applies partial updates to a namespace and returns the updated
// record. Returns domain.ErrNotFound if the namespace does not exist.
// A title change also rewrites the slug; callers pass the derived slug.
func (r *Repo) Save(ctx context.Context, namespaceID uuid.UUID, params domain.NamespaceUpdateParams, slug *string) (*domain.Namespace, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	update := sq.Update("namespaces").
		PlaceholderFormat(sq.Dollar).
		Set("updated_at", time.Now().UTC().Truncate(time.Microsecond)).
		Where(sq.Eq{"id": namespaceID}).
		Suffix("RETURNING " + namespaceColumns)

	if params.Title != nil {
		update = update.Set("title", *params.Title)
	}
	if slug != nil {
		update = update.Set("slug", *slug)
	}
	if params.Active != nil {
		update = update.Set("active", *params.Active)
	}

	query, args, err := update.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build namespace update: %w", err)
	}

	ns, err := scanNamespaceRow(querier.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "namespace", namespaceID)
	}

	return ns, nil
}

// Delete removes a namespace record. The service blocks deletion while the
// namespace still owns nodes; the schema enforces the same with a RESTRICT
// foreign key. Returns domain.ErrNotFound if the namespace does not exist.
func (r *Repo) Delete(ctx context.Context, namespaceID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, namespaceID)
	if err != nil {
		return postgres.MapError(err, "namespace", namespaceID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("namespace %s: %w", namespaceID, domain.ErrNotFound)
	}

	return nil
}

// scanNamespaceRow scans a single namespace row in namespaceColumns order.
func scanNamespaceRow(row pgx.Row) (*domain.Namespace, error) {
	var ns domain.Namespace

	err := row.Scan(&ns.ID, &ns.Title, &ns.Slug, &ns.Active, &ns.CreatedAt, &ns.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return &ns, nil
}
