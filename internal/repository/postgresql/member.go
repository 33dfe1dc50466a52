package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/talkweave/forum-backend-go/internal/domain/member"
	"github.com/talkweave/forum-backend-go/internal/pkg/database"
)

type memberRepositoryImpl struct {
	db *database.DB
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *database.DB) member.Repository {
	return &memberRepositoryImpl{db: db}
}

const memberColumns = `id, site_id, username, email, password_hash, is_admin,
		oauth_provider, oauth_provider_id, created_at, updated_at`

func scanMember(row pgx.Row) (member.Member, error) {
	var m member.Member
	err := row.Scan(
		&m.ID,
		&m.SiteID,
		&m.Username,
		&m.Email,
		&m.PasswordHash,
		&m.IsAdmin,
		&m.OAuthProvider,
		&m.OAuthProviderID,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

func (r *memberRepositoryImpl) Create(ctx context.Context, newMember member.Member) (member.Member, error) {
	q := GetQuerier(ctx, r.db)

	if newMember.ID == "" {
		newMember.ID = uuid.New().String()
	}

	query := fmt.Sprintf(`
		INSERT INTO members (id, site_id, username, email, password_hash, is_admin, oauth_provider, oauth_provider_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING %s
	`, memberColumns)

	created, err := scanMember(q.QueryRow(ctx, query,
		newMember.ID,
		newMember.SiteID,
		newMember.Username,
		newMember.Email,
		newMember.PasswordHash,
		newMember.IsAdmin,
		newMember.OAuthProvider,
		newMember.OAuthProviderID,
	))
	if err != nil {
		return member.Member{}, fmt.Errorf("failed to create member: %w", err)
	}

	return created, nil
}

func (r *memberRepositoryImpl) GetByID(ctx context.Context, siteID, id string) (member.Member, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM members WHERE site_id = $1 AND id = $2`, memberColumns)

	m, err := scanMember(q.QueryRow(ctx, query, siteID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return member.Member{}, member.ErrMemberNotFound
		}
		return member.Member{}, fmt.Errorf("failed to get member: %w", err)
	}

	return m, nil
}

func (r *memberRepositoryImpl) GetByEmail(ctx context.Context, siteID, email string) (member.Member, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM members WHERE site_id = $1 AND email = $2`, memberColumns)

	m, err := scanMember(q.QueryRow(ctx, query, siteID, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return member.Member{}, member.ErrMemberNotFound
		}
		return member.Member{}, fmt.Errorf("failed to get member by email: %w", err)
	}

	return m, nil
}

func (r *memberRepositoryImpl) GetByUsername(ctx context.Context, siteID, username string) (member.Member, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM members WHERE site_id = $1 AND username = $2`, memberColumns)

	m, err := scanMember(q.QueryRow(ctx, query, siteID, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return member.Member{}, member.ErrMemberNotFound
		}
		return member.Member{}, fmt.Errorf("failed to get member by username: %w", err)
	}

	return m, nil
}

func (r *memberRepositoryImpl) LinkGoogleAccount(ctx context.Context, siteID, email, googleID string) (member.Member, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE members
		SET oauth_provider = 'google', oauth_provider_id = $1, updated_at = NOW()
		WHERE site_id = $2 AND email = $3
		RETURNING %s
	`, memberColumns)

	m, err := scanMember(q.QueryRow(ctx, query, googleID, siteID, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return member.Member{}, member.ErrMemberNotFound
		}
		return member.Member{}, fmt.Errorf("failed to link google account: %w", err)
	}

	return m, nil
}

func (r *memberRepositoryImpl) UpdatePassword(ctx context.Context, siteID, memberID, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE members
		SET password_hash = $1, updated_at = NOW()
		WHERE site_id = $2 AND id = $3
	`

	result, err := q.Exec(ctx, query, passwordHash, siteID, memberID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if result.RowsAffected() == 0 {
		return member.ErrMemberNotFound
	}

	return nil
}

// ListGroupIDs returns the ids of every group the member belongs to. This is
// the membership provider the preference resolver relies on.
func (r *memberRepositoryImpl) ListGroupIDs(ctx context.Context, siteID, memberID string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT gm.group_id
		FROM group_members gm
		JOIN groups g ON g.id = gm.group_id
		WHERE g.site_id = $1 AND gm.member_id = $2
	`

	rows, err := q.Query(ctx, query, siteID, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to query group memberships: %w", err)
	}
	defer rows.Close()

	var groupIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan group id: %w", err)
		}
		groupIDs = append(groupIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read group membership rows: %w", err)
	}

	return groupIDs, nil
}
