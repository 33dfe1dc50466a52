package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/talkweave/forum-backend-go/internal/domain/category"
	"github.com/talkweave/forum-backend-go/internal/pkg/database"
)

type categoryRepositoryImpl struct {
	db *database.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *database.DB) category.Repository {
	return &categoryRepositoryImpl{db: db}
}

const categoryColumns = `id, site_id, parent_id, name, slug, position, created_at, updated_at`

func scanCategory(row pgx.Row) (category.Category, error) {
	var c category.Category
	err := row.Scan(
		&c.ID,
		&c.SiteID,
		&c.ParentID,
		&c.Name,
		&c.Slug,
		&c.Position,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

func (r *categoryRepositoryImpl) Create(ctx context.Context, newCategory category.Category) (category.Category, error) {
	q := GetQuerier(ctx, r.db)

	if newCategory.ID == "" {
		newCategory.ID = uuid.New().String()
	}

	query := fmt.Sprintf(`
		INSERT INTO categories (id, site_id, parent_id, name, slug, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING %s
	`, categoryColumns)

	created, err := scanCategory(q.QueryRow(ctx, query,
		newCategory.ID,
		newCategory.SiteID,
		newCategory.ParentID,
		newCategory.Name,
		newCategory.Slug,
		newCategory.Position,
	))
	if err != nil {
		return category.Category{}, fmt.Errorf("failed to create category: %w", err)
	}

	return created, nil
}

func (r *categoryRepositoryImpl) GetByID(ctx context.Context, siteID, id string) (category.Category, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM categories WHERE site_id = $1 AND id = $2`, categoryColumns)

	c, err := scanCategory(q.QueryRow(ctx, query, siteID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return category.Category{}, category.ErrCategoryNotFound
		}
		return category.Category{}, fmt.Errorf("failed to get category: %w", err)
	}

	return c, nil
}

func (r *categoryRepositoryImpl) GetBySlug(ctx context.Context, siteID, slug string) (category.Category, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM categories WHERE site_id = $1 AND slug = $2`, categoryColumns)

	c, err := scanCategory(q.QueryRow(ctx, query, siteID, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return category.Category{}, category.ErrCategoryNotFound
		}
		return category.Category{}, fmt.Errorf("failed to get category by slug: %w", err)
	}

	return c, nil
}

func (r *categoryRepositoryImpl) ListBySite(ctx context.Context, siteID string) ([]category.Category, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM categories WHERE site_id = $1 ORDER BY position, name`, categoryColumns)

	rows, err := q.Query(ctx, query, siteID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []category.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read category rows: %w", err)
	}

	return categories, nil
}

// ListAncestors walks from the category's parent up to the root, nearest
// first. Display-only: preference resolution never consults ancestry.
func (r *categoryRepositoryImpl) ListAncestors(ctx context.Context, siteID, id string) ([]category.Category, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		WITH RECURSIVE ancestors AS (
			SELECT c.*, 0 AS depth
			FROM categories c
			WHERE c.site_id = $1 AND c.id = $2
			UNION ALL
			SELECT p.*, a.depth + 1
			FROM categories p
			JOIN ancestors a ON p.id = a.parent_id AND p.site_id = $1
		)
		SELECT %s FROM ancestors WHERE depth > 0 ORDER BY depth
	`, categoryColumns)

	rows, err := q.Query(ctx, query, siteID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query category ancestors: %w", err)
	}
	defer rows.Close()

	var ancestors []category.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ancestor category: %w", err)
		}
		ancestors = append(ancestors, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ancestor rows: %w", err)
	}

	return ancestors, nil
}
