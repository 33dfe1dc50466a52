package postgresql_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkweave/forum-backend-go/internal/pkg/database"
	"github.com/talkweave/forum-backend-go/internal/repository/postgresql"
)

// createTestChildCategory inserts a category under the given parent.
func createTestChildCategory(t *testing.T, ctx context.Context, db *database.DB, siteID, slug, parentID string) string {
	t.Helper()

	var categoryID string
	err := db.QueryRow(ctx, `
		INSERT INTO categories (id, site_id, parent_id, name, slug, position, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $3, 0, NOW(), NOW())
		RETURNING id
	`, siteID, parentID, slug).Scan(&categoryID)
	require.NoError(t, err)
	return categoryID
}

func TestCategoryRepository_ListAncestors(t *testing.T) {
	db := getTestDB(t)
	defer cleanupTestData(t, db)
	cleanupTestData(t, db)

	ctx := context.Background()
	rootID := createTestCategory(t, ctx, db, testSiteID, "general")
	midID := createTestChildCategory(t, ctx, db, testSiteID, "support", rootID)
	leafID := createTestChildCategory(t, ctx, db, testSiteID, "billing", midID)

	repo := postgresql.NewCategoryRepository(db)

	ancestors, err := repo.ListAncestors(ctx, testSiteID, leafID)
	require.NoError(t, err)
	require.Len(t, ancestors, 2)
	assert.Equal(t, midID, ancestors[0].ID, "nearest parent comes first")
	assert.Equal(t, rootID, ancestors[1].ID)
}

func TestCategoryRepository_ListAncestors_RootHasNone(t *testing.T) {
	db := getTestDB(t)
	defer cleanupTestData(t, db)
	cleanupTestData(t, db)

	ctx := context.Background()
	rootID := createTestCategory(t, ctx, db, testSiteID, "general")

	repo := postgresql.NewCategoryRepository(db)

	ancestors, err := repo.ListAncestors(ctx, testSiteID, rootID)
	require.NoError(t, err)
	assert.Empty(t, ancestors)
}
