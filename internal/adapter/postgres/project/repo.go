// Package project implements the leaf-content repository using PostgreSQL.
// Each project belongs to exactly one node.
package project

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

// Repo provides project persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new project repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const projectColumns = `id, node_id, title, slug, summary, active, sort_order, created_at, updated_at`

const getByIDSQL = `
SELECT ` + projectColumns + `
FROM projects
WHERE id = $1`

const listByNodeSQL = `
SELECT ` + projectColumns + `
FROM projects
WHERE node_id = $1
ORDER BY sort_order, title`

const countByNodeSQL = `
SELECT count(*) FROM projects WHERE node_id = $1`

const createSQL = `
INSERT INTO projects (` + projectColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + projectColumns

const deleteSQL = `
DELETE FROM projects WHERE id = $1`

// GetByID returns a project by primary key.
// Returns domain.ErrNotFound if the project does not exist.
func (r *Repo) GetByID(ctx context.Context, projectID uuid.UUID) (*domain.Project, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	p, err := scanProjectRow(querier.QueryRow(ctx, getByIDSQL, projectID))
	if err != nil {
		return nil, postgres.MapError(err, "project", projectID)
	}

	return p, nil
}

// ListByNode returns all projects attached to a node ordered by sort order.
// Returns an empty slice (not nil) when the node has no projects.
func (r *Repo) ListByNode(ctx context.Context, nodeID uuid.UUID) ([]*domain.Project, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByNodeSQL, nodeID)
	if err != nil {
		return nil, fmt.Errorf("list projects by node: %w", err)
	}
	defer rows.Close()

	var result []*domain.Project
	for rows.Next() {
		p, err := scanProjectRow(rows)
		if err != nil {
			return nil, fmt.Errorf("list projects by node: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list projects by node: %w", err)
	}

	if result == nil {
		result = []*domain.Project{}
	}

	return result, nil
}

// CountByNode returns the number of projects attached to a node.
func (r *Repo) CountByNode(ctx context.Context, nodeID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countByNodeSQL, nodeID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count projects by node: %w", err)
	}

	return count, nil
}

// Create inserts a new project and returns the persisted record.
// Returns domain.ErrAlreadyExists on a (node_id, slug) unique violation and
// domain.ErrNotFound when the referenced node is gone.
func (r *Repo) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	id := p.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	now := time.Now().UTC().Truncate(time.Microsecond)

	created, err := scanProjectRow(querier.QueryRow(ctx, createSQL,
		id,
		p.NodeID,
		p.Title,
		p.Slug,
		ptrStringToPgText(p.Summary),
		p.Active,
		p.SortOrder,
		now,
		now,
	))
	if err != nil {
		return nil, postgres.MapError(err, "project", id)
	}

	return created, nil
}

// Save applies partial updates to a project and returns the updated record.
// Returns domain.ErrNotFound if the project does not exist.
func (r *Repo) Save(ctx context.Context, projectID uuid.UUID, params domain.ProjectUpdateParams, slug *string) (*domain.Project, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	update := sq.Update("projects").
		PlaceholderFormat(sq.Dollar).
		Set("updated_at", time.Now().UTC().Truncate(time.Microsecond)).
		Where(sq.Eq{"id": projectID}).
		Suffix("RETURNING " + projectColumns)

	if params.Title != nil {
		update = update.Set("title", *params.Title)
	}
	if slug != nil {
		update = update.Set("slug", *slug)
	}
	if params.Summary != nil {
		if *params.Summary == "" {
			// ptr("") means clear (set NULL in DB).
			update = update.Set("summary", nil)
		} else {
			update = update.Set("summary", *params.Summary)
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
		return nil, fmt.Errorf("build project update: %w", err)
	}

	p, err := scanProjectRow(querier.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "project", projectID)
	}

	return p, nil
}

// Delete removes a project record.
// Returns domain.ErrNotFound if the project does not exist.
func (r *Repo) Delete(ctx context.Context, projectID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, projectID)
	if err != nil {
		return postgres.MapError(err, "project", projectID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", projectID, domain.ErrNotFound)
	}

	return nil
}

// scanProjectRow scans a single project row in projectColumns order.
func scanProjectRow(row pgx.Row) (*domain.Project, error) {
	var (
		p       domain.Project
		summary pgtype.Text
	)

	err := row.Scan(
		&p.ID,
		&p.NodeID,
		&p.Title,
		&p.Slug,
		&summary,
		&p.Active,
		&p.SortOrder,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if summary.Valid {
		p.Summary = &summary.String
	}

	return &p, nil
}

// ptrStringToPgText converts a *string to pgtype.Text (nil -> NULL).
func ptrStringToPgText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}
