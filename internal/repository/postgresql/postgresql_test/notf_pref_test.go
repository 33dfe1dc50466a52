package postgresql_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkweave/forum-backend-go/internal/domain/notfpref"
	"github.com/talkweave/forum-backend-go/internal/repository/postgresql"
)

const testSiteID = "11111111-1111-1111-1111-111111111111"

func mustPagePref(t *testing.T, memberID, pageID string, level notfpref.NotfLevel) *notfpref.PageNotfPref {
	t.Helper()
	pref, err := notfpref.NewPageNotfPref(testSiteID, memberID, level, notfpref.PageScope(pageID))
	require.NoError(t, err)
	return pref
}

func TestNotfPrefRepository_UpsertAndLoadForScope(t *testing.T) {
	db := getTestDB(t)
	defer cleanupTestData(t, db)
	cleanupTestData(t, db)

	ctx := context.Background()
	memberID := createTestMember(t, ctx, db, testSiteID, "alice")
	pageID := createTestPage(t, ctx, db, testSiteID, "", memberID)
	repo := postgresql.NewNotfPrefRepository(db)

	err := repo.Upsert(ctx, mustPagePref(t, memberID, pageID, notfpref.LevelWatchingAll))
	require.NoError(t, err)

	prefs, err := repo.LoadForScope(ctx, testSiteID, notfpref.PageScope(pageID))
	require.NoError(t, err)
	require.Len(t, prefs, 1)
	assert.Equal(t, memberID, prefs[0].MemberID)
	assert.Equal(t, notfpref.LevelWatchingAll, prefs[0].Level)
	assert.True(t, prefs[0].Scope.IsPage())
	assert.Equal(t, pageID, prefs[0].Scope.ID())
}

func TestNotfPrefRepository_UpsertOverwritesLevel(t *testing.T) {
	db := getTestDB(t)
	defer cleanupTestData(t, db)
	cleanupTestData(t, db)

	ctx := context.Background()
	memberID := createTestMember(t, ctx, db, testSiteID, "alice")
	pageID := createTestPage(t, ctx, db, testSiteID, "", memberID)
	repo := postgresql.NewNotfPrefRepository(db)

	require.NoError(t, repo.Upsert(ctx, mustPagePref(t, memberID, pageID, notfpref.LevelTracking)))
	require.NoError(t, repo.Upsert(ctx, mustPagePref(t, memberID, pageID, notfpref.LevelMuted)))

	prefs, err := repo.LoadForScope(ctx, testSiteID, notfpref.PageScope(pageID))
	require.NoError(t, err)
	require.Len(t, prefs, 1, "second upsert must overwrite, not add a row")
	assert.Equal(t, notfpref.LevelMuted, prefs[0].Level)
}

func TestNotfPrefRepository_ScopesAreIndependentRows(t *testing.T) {
	db := getTestDB(t)
	defer cleanupTestData(t, db)
	cleanupTestData(t, db)

	ctx := context.Background()
	memberID := createTestMember(t, ctx, db, testSiteID, "alice")
	categoryID := createTestCategory(t, ctx, db, testSiteID, "general")
	pageID := createTestPage(t, ctx, db, testSiteID, categoryID, memberID)
	repo := postgresql.NewNotfPrefRepository(db)

	pagePref := mustPagePref(t, memberID, pageID, notfpref.LevelMuted)
	require.NoError(t, repo.Upsert(ctx, pagePref))

	catPref, err := notfpref.NewPageNotfPref(testSiteID, memberID, notfpref.LevelWatchingFirst, notfpref.CategoryScope(categoryID))
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, catPref))

	sitePref, err := notfpref.NewPageNotfPref(testSiteID, memberID, notfpref.LevelHushed, notfpref.WholeSiteScope())
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, sitePref))

	all, err := repo.LoadForSubjects(ctx, testSiteID, []string{memberID})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestNotfPrefRepository_Delete(t *testing.T) {
	db := getTestDB(t)
	defer cleanupTestData(t, db)
	cleanupTestData(t, db)

	ctx := context.Background()
	memberID := createTestMember(t, ctx, db, testSiteID, "alice")
	pageID := createTestPage(t, ctx, db, testSiteID, "", memberID)
	repo := postgresql.NewNotfPrefRepository(db)

	require.NoError(t, repo.Upsert(ctx, mustPagePref(t, memberID, pageID, notfpref.LevelNormal)))

	removed, err := repo.Delete(ctx, testSiteID, memberID, notfpref.PageScope(pageID))
	require.NoError(t, err)
	assert.True(t, removed)

	// Deleting again is a no-op, not an error.
	removed, err = repo.Delete(ctx, testSiteID, memberID, notfpref.PageScope(pageID))
	require.NoError(t, err)
	assert.False(t, removed)

	prefs, err := repo.LoadForScope(ctx, testSiteID, notfpref.PageScope(pageID))
	require.NoError(t, err)
	assert.Empty(t, prefs)
}

func TestNotfPrefRepository_LoadApplicableForPage(t *testing.T) {
	db := getTestDB(t)
	defer cleanupTestData(t, db)
	cleanupTestData(t, db)

	ctx := context.Background()
	memberID := createTestMember(t, ctx, db, testSiteID, "alice")
	groupID := createTestGroup(t, ctx, db, testSiteID, "staff")
	categoryID := createTestCategory(t, ctx, db, testSiteID, "general")
	otherCategoryID := createTestCategory(t, ctx, db, testSiteID, "random")
	pageID := createTestPage(t, ctx, db, testSiteID, categoryID, memberID)
	otherPageID := createTestPage(t, ctx, db, testSiteID, otherCategoryID, memberID)
	repo := postgresql.NewNotfPrefRepository(db)

	// Applicable rows: this page, its category, whole site (own and group).
	require.NoError(t, repo.Upsert(ctx, mustPagePref(t, memberID, pageID, notfpref.LevelMuted)))

	catPref, err := notfpref.NewPageNotfPref(testSiteID, groupID, notfpref.LevelWatchingAll, notfpref.CategoryScope(categoryID))
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, catPref))

	sitePref, err := notfpref.NewPageNotfPref(testSiteID, memberID, notfpref.LevelTracking, notfpref.WholeSiteScope())
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, sitePref))

	// Rows that must not come back: another page, another category.
	require.NoError(t, repo.Upsert(ctx, mustPagePref(t, memberID, otherPageID, notfpref.LevelEveryPostAllEdits)))

	otherCatPref, err := notfpref.NewPageNotfPref(testSiteID, memberID, notfpref.LevelHushed, notfpref.CategoryScope(otherCategoryID))
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, otherCatPref))

	prefs, err := repo.LoadApplicableForPage(ctx, testSiteID, pageID, categoryID, []string{memberID, groupID})
	require.NoError(t, err)
	require.Len(t, prefs, 3)

	byKind := map[notfpref.ScopeKind]notfpref.NotfLevel{}
	for _, p := range prefs {
		byKind[p.Scope.Kind()] = p.Level
	}
	assert.Equal(t, notfpref.LevelMuted, byKind[notfpref.ScopePage])
	assert.Equal(t, notfpref.LevelWatchingAll, byKind[notfpref.ScopeCategory])
	assert.Equal(t, notfpref.LevelTracking, byKind[notfpref.ScopeWholeSite])
}

func TestNotfPrefRepository_LoadApplicableForPage_NoCategory(t *testing.T) {
	db := getTestDB(t)
	defer cleanupTestData(t, db)
	cleanupTestData(t, db)

	ctx := context.Background()
	memberID := createTestMember(t, ctx, db, testSiteID, "alice")
	categoryID := createTestCategory(t, ctx, db, testSiteID, "general")
	pageID := createTestPage(t, ctx, db, testSiteID, "", memberID)
	repo := postgresql.NewNotfPrefRepository(db)

	catPref, err := notfpref.NewPageNotfPref(testSiteID, memberID, notfpref.LevelWatchingAll, notfpref.CategoryScope(categoryID))
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, catPref))

	sitePref, err := notfpref.NewPageNotfPref(testSiteID, memberID, notfpref.LevelHushed, notfpref.WholeSiteScope())
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, sitePref))

	// Uncategorized page: category rows never apply, whole-site rows do.
	prefs, err := repo.LoadApplicableForPage(ctx, testSiteID, pageID, "", []string{memberID})
	require.NoError(t, err)
	require.Len(t, prefs, 1)
	assert.True(t, prefs[0].Scope.IsWholeSite())
}

func TestNotfPrefRepository_LoadForSubjectsAtScope(t *testing.T) {
	db := getTestDB(t)
	defer cleanupTestData(t, db)
	cleanupTestData(t, db)

	ctx := context.Background()
	alice := createTestMember(t, ctx, db, testSiteID, "alice")
	bob := createTestMember(t, ctx, db, testSiteID, "bob")
	carol := createTestMember(t, ctx, db, testSiteID, "carol")
	pageID := createTestPage(t, ctx, db, testSiteID, "", alice)
	repo := postgresql.NewNotfPrefRepository(db)

	require.NoError(t, repo.Upsert(ctx, mustPagePref(t, alice, pageID, notfpref.LevelWatchingAll)))
	require.NoError(t, repo.Upsert(ctx, mustPagePref(t, bob, pageID, notfpref.LevelMuted)))
	require.NoError(t, repo.Upsert(ctx, mustPagePref(t, carol, pageID, notfpref.LevelTracking)))

	prefs, err := repo.LoadForSubjectsAtScope(ctx, testSiteID, notfpref.PageScope(pageID), []string{alice, bob})
	require.NoError(t, err)
	require.Len(t, prefs, 2)

	byMember := map[string]notfpref.NotfLevel{}
	for _, p := range prefs {
		byMember[p.MemberID] = p.Level
	}
	assert.Equal(t, notfpref.LevelWatchingAll, byMember[alice])
	assert.Equal(t, notfpref.LevelMuted, byMember[bob])
}
