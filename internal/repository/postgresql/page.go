package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/talkweave/forum-backend-go/internal/domain/page"
	"github.com/talkweave/forum-backend-go/internal/pkg/database"
)

type pageRepositoryImpl struct {
	db *database.DB
}

// NewPageRepository creates a new page repository
func NewPageRepository(db *database.DB) page.Repository {
	return &pageRepositoryImpl{db: db}
}

const pageColumns = `id, site_id, category_id, author_id, title, page_type, created_at, bumped_at, deleted_at`

func scanPage(row pgx.Row) (page.Page, error) {
	var p page.Page
	err := row.Scan(
		&p.ID,
		&p.SiteID,
		&p.CategoryID,
		&p.AuthorID,
		&p.Title,
		&p.Type,
		&p.CreatedAt,
		&p.BumpedAt,
		&p.DeletedAt,
	)
	return p, err
}

func (r *pageRepositoryImpl) Create(ctx context.Context, newPage page.Page) (page.Page, error) {
	q := GetQuerier(ctx, r.db)

	if newPage.ID == "" {
		newPage.ID = uuid.New().String()
	}

	query := fmt.Sprintf(`
		INSERT INTO pages (id, site_id, category_id, author_id, title, page_type, created_at, bumped_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING %s
	`, pageColumns)

	created, err := scanPage(q.QueryRow(ctx, query,
		newPage.ID,
		newPage.SiteID,
		newPage.CategoryID,
		newPage.AuthorID,
		newPage.Title,
		newPage.Type,
	))
	if err != nil {
		return page.Page{}, fmt.Errorf("failed to create page: %w", err)
	}

	return created, nil
}

func (r *pageRepositoryImpl) GetByID(ctx context.Context, siteID, id string) (page.Page, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM pages WHERE site_id = $1 AND id = $2`, pageColumns)

	p, err := scanPage(q.QueryRow(ctx, query, siteID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return page.Page{}, page.ErrPageNotFound
		}
		return page.Page{}, fmt.Errorf("failed to get page: %w", err)
	}

	return p, nil
}

func (r *pageRepositoryImpl) ListBySite(ctx context.Context, siteID string, limit, offset int) ([]page.Page, int, error) {
	return r.list(ctx, siteID, nil, limit, offset)
}

func (r *pageRepositoryImpl) ListByCategory(ctx context.Context, siteID, categoryID string, limit, offset int) ([]page.Page, int, error) {
	return r.list(ctx, siteID, &categoryID, limit, offset)
}

func (r *pageRepositoryImpl) list(ctx context.Context, siteID string, categoryID *string, limit, offset int) ([]page.Page, int, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total
		FROM pages
		WHERE site_id = $1
		  AND deleted_at IS NULL
		  AND ($2::uuid IS NULL OR category_id = $2::uuid)
		ORDER BY bumped_at DESC
		LIMIT $3 OFFSET $4
	`, pageColumns)

	rows, err := q.Query(ctx, query, siteID, categoryID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query pages: %w", err)
	}
	defer rows.Close()

	var pages []page.Page
	var total int
	for rows.Next() {
		var p page.Page
		err := rows.Scan(
			&p.ID,
			&p.SiteID,
			&p.CategoryID,
			&p.AuthorID,
			&p.Title,
			&p.Type,
			&p.CreatedAt,
			&p.BumpedAt,
			&p.DeletedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan page: %w", err)
		}
		pages = append(pages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read page rows: %w", err)
	}

	return pages, total, nil
}

func (r *pageRepositoryImpl) SetBumpedAt(ctx context.Context, siteID, id string, bumpedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE pages SET bumped_at = $3 WHERE site_id = $1 AND id = $2`

	tag, err := q.Exec(ctx, query, siteID, id, bumpedAt)
	if err != nil {
		return fmt.Errorf("failed to bump page: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return page.ErrPageNotFound
	}

	return nil
}

func (r *pageRepositoryImpl) SetDeleted(ctx context.Context, siteID, id string, deleted bool) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var query string
	if deleted {
		query = `UPDATE pages SET deleted_at = NOW() WHERE site_id = $1 AND id = $2 AND deleted_at IS NULL`
	} else {
		query = `UPDATE pages SET deleted_at = NULL WHERE site_id = $1 AND id = $2 AND deleted_at IS NOT NULL`
	}

	tag, err := q.Exec(ctx, query, siteID, id)
	if err != nil {
		return false, fmt.Errorf("failed to update page deletion: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
