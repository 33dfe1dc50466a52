package postgresql_test

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/talkweave/forum-backend-go/internal/pkg/database"
)

var (
	testDB     *database.DB
	testDBOnce sync.Once
)

// getTestDB connects to the database named by TEST_DATABASE_URL and skips
// the test when the variable is unset.
func getTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping database integration test")
	}

	testDBOnce.Do(func() {
		var err error
		testDB, err = database.NewPostgreSQLDB(dsn)
		if err != nil {
			panic("failed to connect to test database: " + err.Error())
		}
	})

	return testDB
}

// cleanupTestData truncates every table touched by the repository tests.
func cleanupTestData(t *testing.T, db *database.DB) {
	t.Helper()
	ctx := context.Background()

	tx, err := db.BeginTx(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	tables := []string{
		"page_notf_prefs",
		"refresh_tokens",
		"posts",
		"pages",
		"group_members",
		"groups",
		"categories",
		"members",
	}
	for _, table := range tables {
		_, err := tx.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE")
		require.NoError(t, err)
	}

	require.NoError(t, tx.Commit(ctx))
}

// createTestMember inserts a member row and returns its id.
func createTestMember(t *testing.T, ctx context.Context, db *database.DB, siteID, username string) string {
	t.Helper()

	var memberID string
	err := db.QueryRow(ctx, `
		INSERT INTO members (id, site_id, username, email, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $2 || '@example.com', NOW(), NOW())
		RETURNING id
	`, siteID, username).Scan(&memberID)
	require.NoError(t, err)
	return memberID
}

// createTestGroup inserts a group row and returns its id.
func createTestGroup(t *testing.T, ctx context.Context, db *database.DB, siteID, name string) string {
	t.Helper()

	var groupID string
	err := db.QueryRow(ctx, `
		INSERT INTO groups (id, site_id, name, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, NOW(), NOW())
		RETURNING id
	`, siteID, name).Scan(&groupID)
	require.NoError(t, err)
	return groupID
}

// createTestCategory inserts a category row and returns its id.
func createTestCategory(t *testing.T, ctx context.Context, db *database.DB, siteID, slug string) string {
	t.Helper()

	var categoryID string
	err := db.QueryRow(ctx, `
		INSERT INTO categories (id, site_id, name, slug, position, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $2, 0, NOW(), NOW())
		RETURNING id
	`, siteID, slug).Scan(&categoryID)
	require.NoError(t, err)
	return categoryID
}

// createTestPage inserts a page row and returns its id.
func createTestPage(t *testing.T, ctx context.Context, db *database.DB, siteID, categoryID, authorID string) string {
	t.Helper()

	var catID *string
	if categoryID != "" {
		catID = &categoryID
	}

	var pageID string
	err := db.QueryRow(ctx, `
		INSERT INTO pages (id, site_id, category_id, author_id, title, page_type, created_at, bumped_at)
		VALUES (gen_random_uuid(), $1, $2, $3, 'Test page', 'discussion', NOW(), NOW())
		RETURNING id
	`, siteID, catID, authorID).Scan(&pageID)
	require.NoError(t, err)
	return pageID
}
