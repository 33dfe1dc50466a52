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

type groupRepositoryImpl struct {
	db *database.DB
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(db *database.DB) member.GroupRepository {
	return &groupRepositoryImpl{db: db}
}

const groupColumns = `id, site_id, name, built_in, created_at`

func scanGroup(row pgx.Row) (member.Group, error) {
	var g member.Group
	err := row.Scan(&g.ID, &g.SiteID, &g.Name, &g.BuiltIn, &g.CreatedAt)
	return g, err
}

func (r *groupRepositoryImpl) Create(ctx context.Context, newGroup member.Group) (member.Group, error) {
	q := GetQuerier(ctx, r.db)

	if newGroup.ID == "" {
		newGroup.ID = uuid.New().String()
	}

	query := fmt.Sprintf(`
		INSERT INTO groups (id, site_id, name, built_in, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING %s
	`, groupColumns)

	created, err := scanGroup(q.QueryRow(ctx, query, newGroup.ID, newGroup.SiteID, newGroup.Name, newGroup.BuiltIn))
	if err != nil {
		return member.Group{}, fmt.Errorf("failed to create group: %w", err)
	}

	return created, nil
}

func (r *groupRepositoryImpl) GetByID(ctx context.Context, siteID, id string) (member.Group, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM groups WHERE site_id = $1 AND id = $2`, groupColumns)

	g, err := scanGroup(q.QueryRow(ctx, query, siteID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return member.Group{}, member.ErrGroupNotFound
		}
		return member.Group{}, fmt.Errorf("failed to get group: %w", err)
	}

	return g, nil
}

func (r *groupRepositoryImpl) GetByName(ctx context.Context, siteID, name string) (member.Group, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM groups WHERE site_id = $1 AND name = $2`, groupColumns)

	g, err := scanGroup(q.QueryRow(ctx, query, siteID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return member.Group{}, member.ErrGroupNotFound
		}
		return member.Group{}, fmt.Errorf("failed to get group by name: %w", err)
	}

	return g, nil
}

func (r *groupRepositoryImpl) ListBySite(ctx context.Context, siteID string) ([]member.Group, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM groups WHERE site_id = $1 ORDER BY name`, groupColumns)

	rows, err := q.Query(ctx, query, siteID)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups: %w", err)
	}
	defer rows.Close()

	var groups []member.Group
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read group rows: %w", err)
	}

	return groups, nil
}

func (r *groupRepositoryImpl) AddMember(ctx context.Context, siteID, groupID, memberID string) error {
	q := GetQuerier(ctx, r.db)

	// No-op when the membership already exists.
	query := `
		INSERT INTO group_members (group_id, member_id, created_at)
		SELECT g.id, $3, NOW()
		FROM groups g
		WHERE g.site_id = $1 AND g.id = $2
		ON CONFLICT (group_id, member_id) DO NOTHING
	`

	result, err := q.Exec(ctx, query, siteID, groupID, memberID)
	if err != nil {
		return fmt.Errorf("failed to add group member: %w", err)
	}
	if result.RowsAffected() == 0 {
		// Either the group does not exist for this site, or the member was
		// already in it; distinguish so callers get a real error.
		if _, err := r.GetByID(ctx, siteID, groupID); err != nil {
			return err
		}
	}

	return nil
}

func (r *groupRepositoryImpl) RemoveMember(ctx context.Context, siteID, groupID, memberID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM group_members gm
		USING groups g
		WHERE g.id = gm.group_id AND g.site_id = $1 AND gm.group_id = $2 AND gm.member_id = $3
	`

	result, err := q.Exec(ctx, query, siteID, groupID, memberID)
	if err != nil {
		return false, fmt.Errorf("failed to remove group member: %w", err)
	}

	return result.RowsAffected() > 0, nil
}
