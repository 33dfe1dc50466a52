package page

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkweave/forum-backend-go/internal/domain/page"
	"github.com/talkweave/forum-backend-go/internal/pkg/database"
	"github.com/talkweave/forum-backend-go/internal/repository/postgresql"
)

const pageTestSiteID = "22222222-2222-2222-2222-222222222222"

var (
	pageTestDB   *database.DB
	pageTestOnce sync.Once
)

func pageTestSetup(t *testing.T) (*database.DB, page.Service) {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping database integration test")
	}

	pageTestOnce.Do(func() {
		var err error
		pageTestDB, err = database.NewPostgreSQLDB(dsn)
		if err != nil {
			panic("failed to connect to test database: " + err.Error())
		}
	})

	db := pageTestDB
	ctx := context.Background()
	for _, table := range []string{"posts", "pages", "categories", "members"} {
		_, err := db.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE")
		require.NoError(t, err)
	}

	svc := NewPageService(db,
		postgresql.NewPageRepository(db),
		postgresql.NewPostRepository(db),
		postgresql.NewCategoryRepository(db),
	)
	return db, svc
}

func createPageTestMember(t *testing.T, db *database.DB, username string, isAdmin bool) string {
	t.Helper()
	var id string
	err := db.QueryRow(context.Background(), `
		INSERT INTO members (id, site_id, username, email, is_admin, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $2 || '@example.com', $3, NOW(), NOW())
		RETURNING id
	`, pageTestSiteID, username, isAdmin).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestPageService_CreatePage_WritesOrigPost(t *testing.T) {
	_, svc := pageTestSetup(t)
	ctx := context.Background()
	db := pageTestDB

	author := createPageTestMember(t, db, "alice", false)
	created, err := svc.CreatePage(ctx, pageTestSiteID, page.Actor{MemberID: author}, page.CreatePageRequest{
		Title: "Welcome thread",
		Body:  "First!",
	})
	require.NoError(t, err)
	require.Len(t, created.Posts, 1)
	assert.Equal(t, page.OrigPostNr, created.Posts[0].Nr)
	assert.Equal(t, page.TypeDiscussion, created.Type)
	assert.False(t, created.Posts[0].Approved, "a regular member's post waits for moderation")
}

func TestPageService_CreatePage_Validation(t *testing.T) {
	_, svc := pageTestSetup(t)
	ctx := context.Background()
	author := createPageTestMember(t, pageTestDB, "alice", false)
	actor := page.Actor{MemberID: author}

	_, err := svc.CreatePage(ctx, pageTestSiteID, actor, page.CreatePageRequest{Title: "  ", Body: "x"})
	assert.ErrorIs(t, err, page.ErrEmptyTitle)

	_, err = svc.CreatePage(ctx, pageTestSiteID, actor, page.CreatePageRequest{Title: "t", Body: ""})
	assert.ErrorIs(t, err, page.ErrEmptyBody)

	_, err = svc.CreatePage(ctx, pageTestSiteID, actor, page.CreatePageRequest{Title: "t", Body: "b", Type: "poll"})
	assert.ErrorIs(t, err, page.ErrInvalidPageType)
}

func TestPageService_Reply_NumbersSequentially(t *testing.T) {
	_, svc := pageTestSetup(t)
	ctx := context.Background()
	db := pageTestDB

	author := createPageTestMember(t, db, "alice", false)
	actor := page.Actor{MemberID: author}
	created, err := svc.CreatePage(ctx, pageTestSiteID, actor, page.CreatePageRequest{Title: "t", Body: "orig"})
	require.NoError(t, err)

	first, err := svc.Reply(ctx, pageTestSiteID, created.ID, actor, page.ReplyRequest{Body: "first reply"})
	require.NoError(t, err)
	second, err := svc.Reply(ctx, pageTestSiteID, created.ID, actor, page.ReplyRequest{Body: "second reply"})
	require.NoError(t, err)

	assert.Equal(t, 2, first.Nr)
	assert.Equal(t, 3, second.Nr)
}

func TestPageService_EditPost_NonStaffEditClearsApproval(t *testing.T) {
	_, svc := pageTestSetup(t)
	ctx := context.Background()
	db := pageTestDB

	author := createPageTestMember(t, db, "alice", false)
	admin := createPageTestMember(t, db, "mod", true)
	actor := page.Actor{MemberID: author}
	staff := page.Actor{MemberID: admin, IsAdmin: true}

	created, err := svc.CreatePage(ctx, pageTestSiteID, actor, page.CreatePageRequest{Title: "t", Body: "orig"})
	require.NoError(t, err)
	postID := created.Posts[0].ID

	approved, err := svc.ApprovePost(ctx, pageTestSiteID, created.ID, postID, staff)
	require.NoError(t, err)
	assert.True(t, approved.Approved)

	edited, err := svc.EditPost(ctx, pageTestSiteID, created.ID, postID, actor, page.EditPostRequest{Body: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", edited.Body)
	assert.False(t, edited.Approved, "a non-staff edit goes back through approval")

	// A staff edit keeps the approval flag.
	reapproved, err := svc.ApprovePost(ctx, pageTestSiteID, created.ID, postID, staff)
	require.NoError(t, err)
	require.True(t, reapproved.Approved)
	staffEdited, err := svc.EditPost(ctx, pageTestSiteID, created.ID, postID, staff, page.EditPostRequest{Body: "fixed typo"})
	require.NoError(t, err)
	assert.True(t, staffEdited.Approved)
}

func TestPageService_EditPost_StrangerForbidden(t *testing.T) {
	_, svc := pageTestSetup(t)
	ctx := context.Background()
	db := pageTestDB

	author := createPageTestMember(t, db, "alice", false)
	stranger := createPageTestMember(t, db, "bob", false)

	created, err := svc.CreatePage(ctx, pageTestSiteID, page.Actor{MemberID: author}, page.CreatePageRequest{Title: "t", Body: "orig"})
	require.NoError(t, err)

	_, err = svc.EditPost(ctx, pageTestSiteID, created.ID, created.Posts[0].ID, page.Actor{MemberID: stranger}, page.EditPostRequest{Body: "hijack"})
	assert.ErrorIs(t, err, page.ErrNotAuthor)
}

func TestPageService_DeletePost_OrigPostRefused(t *testing.T) {
	_, svc := pageTestSetup(t)
	ctx := context.Background()
	db := pageTestDB

	author := createPageTestMember(t, db, "alice", false)
	actor := page.Actor{MemberID: author}

	created, err := svc.CreatePage(ctx, pageTestSiteID, actor, page.CreatePageRequest{Title: "t", Body: "orig"})
	require.NoError(t, err)

	err = svc.DeletePost(ctx, pageTestSiteID, created.ID, created.Posts[0].ID, actor)
	assert.ErrorIs(t, err, page.ErrOrigPost)
}

func TestPageService_DeleteAndRestorePage(t *testing.T) {
	_, svc := pageTestSetup(t)
	ctx := context.Background()
	db := pageTestDB

	author := createPageTestMember(t, db, "alice", false)
	admin := createPageTestMember(t, db, "mod", true)
	actor := page.Actor{MemberID: author}
	staff := page.Actor{MemberID: admin, IsAdmin: true}

	created, err := svc.CreatePage(ctx, pageTestSiteID, actor, page.CreatePageRequest{Title: "t", Body: "orig"})
	require.NoError(t, err)

	err = svc.DeletePage(ctx, pageTestSiteID, created.ID, actor)
	assert.ErrorIs(t, err, page.ErrStaffOnly)

	require.NoError(t, svc.DeletePage(ctx, pageTestSiteID, created.ID, staff))
	_, err = svc.GetPage(ctx, pageTestSiteID, created.ID)
	assert.ErrorIs(t, err, page.ErrPageDeleted)

	require.NoError(t, svc.RestorePage(ctx, pageTestSiteID, created.ID, staff))
	restored, err := svc.GetPage(ctx, pageTestSiteID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, restored.ID)
}
