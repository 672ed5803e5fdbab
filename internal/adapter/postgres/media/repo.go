// Package media implements the media-asset repository using PostgreSQL.
// Assets are owned by exactly one entity identified by (entity_type,
// entity_id); deleting the owner deletes its asset records and the blobs
// behind them.
package media

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/edustack/catalog-backend/internal/adapter/postgres"
	"github.com/edustack/catalog-backend/internal/domain"
)

// Repo provides media-asset persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new media repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const mediaColumns = `id, entity_type, entity_id, path, content_type, size_bytes, created_at`

const getByIDSQL = `
SELECT ` + mediaColumns + `
FROM media_assets
WHERE id = $1`

const listByOwnerSQL = `
SELECT ` + mediaColumns + `
FROM media_assets
WHERE entity_type = $1 AND entity_id = $2
ORDER BY created_at`

const countByOwnerSQL = `
SELECT count(*) FROM media_assets WHERE entity_type = $1 AND entity_id = $2`

const createSQL = `
INSERT INTO media_assets (` + mediaColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + mediaColumns

const deleteByOwnerSQL = `
DELETE FROM media_assets WHERE entity_type = $1 AND entity_id = $2`

const deleteSQL = `
DELETE FROM media_assets WHERE id = $1`

// GetByID returns a media asset by primary key.
// Returns domain.ErrNotFound if the asset does not exist.
func (r *Repo) GetByID(ctx context.Context, assetID uuid.UUID) (*domain.MediaAsset, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	a, err := scanAssetRow(querier.QueryRow(ctx, getByIDSQL, assetID))
	if err != nil {
		return nil, postgres.MapError(err, "media_asset", assetID)
	}

	return a, nil
}

// ListByOwner returns all assets owned by one entity ordered by creation.
// Returns an empty slice (not nil) when the owner has none.
func (r *Repo) ListByOwner(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) ([]*domain.MediaAsset, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByOwnerSQL, string(entityType), entityID)
	if err != nil {
		return nil, fmt.Errorf("list media by owner: %w", err)
	}
	defer rows.Close()

	var result []*domain.MediaAsset
	for rows.Next() {
		a, err := scanAssetRow(rows)
		if err != nil {
			return nil, fmt.Errorf("list media by owner: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list media by owner: %w", err)
	}

	if result == nil {
		result = []*domain.MediaAsset{}
	}

	return result, nil
}

// CountByOwner returns the number of assets owned by one entity.
func (r *Repo) CountByOwner(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countByOwnerSQL, string(entityType), entityID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count media by owner: %w", err)
	}

	return count, nil
}

// Create inserts a new media-asset record and returns the persisted record.
func (r *Repo) Create(ctx context.Context, a *domain.MediaAsset) (*domain.MediaAsset, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	id := a.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	now := time.Now().UTC().Truncate(time.Microsecond)

	created, err := scanAssetRow(querier.QueryRow(ctx, createSQL,
		id, string(a.EntityType), a.EntityID, a.Path, a.ContentType, a.SizeBytes, now,
	))
	if err != nil {
		return nil, postgres.MapError(err, "media_asset", id)
	}

	return created, nil
}

// DeleteByOwner removes all asset records owned by one entity and returns
// how many were removed. Zero rows is not an error.
func (r *Repo) DeleteByOwner(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteByOwnerSQL, string(entityType), entityID)
	if err != nil {
		return 0, postgres.MapError(err, "media_asset", entityID)
	}

	return int(tag.RowsAffected()), nil
}

// Delete removes a single asset record.
// Returns domain.ErrNotFound if the asset does not exist.
func (r *Repo) Delete(ctx context.Context, assetID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, assetID)
	if err != nil {
		return postgres.MapError(err, "media_asset", assetID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("media_asset %s: %w", assetID, domain.ErrNotFound)
	}

	return nil
}

// scanAssetRow scans a single asset row in mediaColumns order.
func scanAssetRow(row pgx.Row) (*domain.MediaAsset, error) {
	var (
		a          domain.MediaAsset
		entityType string
	)

	err := row.Scan(
		&a.ID,
		&entityType,
		&a.EntityID,
		&a.Path,
		&a.ContentType,
		&a.SizeBytes,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.EntityType = domain.EntityType(entityType)

	return &a, nil
}
