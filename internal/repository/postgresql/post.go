package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/talkweave/forum-backend-go/internal/domain/page"
	"github.com/talkweave/forum-backend-go/internal/pkg/database"
)

type postRepositoryImpl struct {
	db *database.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *database.DB) page.PostRepository {
	return &postRepositoryImpl{db: db}
}

const postColumns = `id, page_id, nr, author_id, body, approved, approved_by, created_at, updated_at, deleted_at`

func scanPost(row pgx.Row) (page.Post, error) {
	var p page.Post
	err := row.Scan(
		&p.ID,
		&p.PageID,
		&p.Nr,
		&p.AuthorID,
		&p.Body,
		&p.Approved,
		&p.ApprovedBy,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.DeletedAt,
	)
	return p, err
}

func (r *postRepositoryImpl) Create(ctx context.Context, newPost page.Post) (page.Post, error) {
	q := GetQuerier(ctx, r.db)

	if newPost.ID == "" {
		newPost.ID = uuid.New().String()
	}

	query := fmt.Sprintf(`
		INSERT INTO posts (id, page_id, nr, author_id, body, approved, approved_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING %s
	`, postColumns)

	created, err := scanPost(q.QueryRow(ctx, query,
		newPost.ID,
		newPost.PageID,
		newPost.Nr,
		newPost.AuthorID,
		newPost.Body,
		newPost.Approved,
		newPost.ApprovedBy,
	))
	if err != nil {
		return page.Post{}, fmt.Errorf("failed to create post: %w", err)
	}

	return created, nil
}

func (r *postRepositoryImpl) GetByID(ctx context.Context, pageID, id string) (page.Post, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM posts WHERE page_id = $1 AND id = $2`, postColumns)

	p, err := scanPost(q.QueryRow(ctx, query, pageID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return page.Post{}, page.ErrPostNotFound
		}
		return page.Post{}, fmt.Errorf("failed to get post: %w", err)
	}

	return p, nil
}

func (r *postRepositoryImpl) GetByNr(ctx context.Context, pageID string, nr int) (page.Post, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM posts WHERE page_id = $1 AND nr = $2`, postColumns)

	p, err := scanPost(q.QueryRow(ctx, query, pageID, nr))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return page.Post{}, page.ErrPostNotFound
		}
		return page.Post{}, fmt.Errorf("failed to get post by nr: %w", err)
	}

	return p, nil
}

func (r *postRepositoryImpl) ListByPage(ctx context.Context, pageID string) ([]page.Post, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM posts WHERE page_id = $1 AND deleted_at IS NULL ORDER BY nr`, postColumns)

	rows, err := q.Query(ctx, query, pageID)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	var posts []page.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read post rows: %w", err)
	}

	return posts, nil
}

// NextNr allocates the next post number on a page. Callers must hold a
// transaction so two concurrent replies cannot claim the same number.
func (r *postRepositoryImpl) NextNr(ctx context.Context, pageID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT COALESCE(MAX(nr), 0) + 1 FROM posts WHERE page_id = $1`

	var nr int
	if err := q.QueryRow(ctx, query, pageID).Scan(&nr); err != nil {
		return 0, fmt.Errorf("failed to allocate post nr: %w", err)
	}

	return nr, nil
}

func (r *postRepositoryImpl) UpdateBody(ctx context.Context, pageID, id, body string, approved bool) (page.Post, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE posts
		SET body = $3, approved = $4, updated_at = NOW()
		WHERE page_id = $1 AND id = $2 AND deleted_at IS NULL
		RETURNING %s
	`, postColumns)

	p, err := scanPost(q.QueryRow(ctx, query, pageID, id, body, approved))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return page.Post{}, page.ErrPostNotFound
		}
		return page.Post{}, fmt.Errorf("failed to update post body: %w", err)
	}

	return p, nil
}

func (r *postRepositoryImpl) Approve(ctx context.Context, pageID, id, approvedByID string) (page.Post, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE posts
		SET approved = TRUE, approved_by = $3, updated_at = NOW()
		WHERE page_id = $1 AND id = $2 AND deleted_at IS NULL
		RETURNING %s
	`, postColumns)

	p, err := scanPost(q.QueryRow(ctx, query, pageID, id, approvedByID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return page.Post{}, page.ErrPostNotFound
		}
		return page.Post{}, fmt.Errorf("failed to approve post: %w", err)
	}

	return p, nil
}

func (r *postRepositoryImpl) SetDeleted(ctx context.Context, pageID, id string, deleted bool) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var query string
	if deleted {
		query = `UPDATE posts SET deleted_at = NOW(), updated_at = NOW() WHERE page_id = $1 AND id = $2 AND deleted_at IS NULL`
	} else {
		query = `UPDATE posts SET deleted_at = NULL, updated_at = NOW() WHERE page_id = $1 AND id = $2 AND deleted_at IS NOT NULL`
	}

	tag, err := q.Exec(ctx, query, pageID, id)
	if err != nil {
		return false, fmt.Errorf("failed to update post deletion: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
