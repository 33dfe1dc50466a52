package notfpref

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkweave/forum-backend-go/internal/domain/member"
	"github.com/talkweave/forum-backend-go/internal/domain/notfpref"
	"github.com/talkweave/forum-backend-go/internal/domain/page"
)

const (
	siteID    = "site-1"
	aliceID   = "member-alice"
	staffID   = "group-staff"
	pageAID   = "page-a"
	pageBID   = "page-b"
	generalID = "category-general"
)

// fakePrefRepo keeps preferences in a slice, overwriting on (member, scope).
type fakePrefRepo struct {
	prefs []*notfpref.PageNotfPref
}

func sameScope(a, b notfpref.Scope) bool {
	return a.Kind() == b.Kind() && a.ID() == b.ID()
}

func (f *fakePrefRepo) Upsert(_ context.Context, pref *notfpref.PageNotfPref) error {
	for i, p := range f.prefs {
		if p.MemberID == pref.MemberID && sameScope(p.Scope, pref.Scope) {
			f.prefs[i] = pref
			return nil
		}
	}
	f.prefs = append(f.prefs, pref)
	return nil
}

func (f *fakePrefRepo) Delete(_ context.Context, _, memberID string, scope notfpref.Scope) (bool, error) {
	for i, p := range f.prefs {
		if p.MemberID == memberID && sameScope(p.Scope, scope) {
			f.prefs = append(f.prefs[:i], f.prefs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePrefRepo) LoadForScope(_ context.Context, _ string, scope notfpref.Scope) ([]*notfpref.PageNotfPref, error) {
	var out []*notfpref.PageNotfPref
	for _, p := range f.prefs {
		if sameScope(p.Scope, scope) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePrefRepo) LoadForSubjectsAtScope(_ context.Context, _ string, scope notfpref.Scope, subjectIDs []string) ([]*notfpref.PageNotfPref, error) {
	subjects := toSet(subjectIDs)
	var out []*notfpref.PageNotfPref
	for _, p := range f.prefs {
		if subjects[p.MemberID] && sameScope(p.Scope, scope) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePrefRepo) LoadApplicableForPage(_ context.Context, _, pageID, categoryID string, subjectIDs []string) ([]*notfpref.PageNotfPref, error) {
	subjects := toSet(subjectIDs)
	var out []*notfpref.PageNotfPref
	for _, p := range f.prefs {
		if !subjects[p.MemberID] {
			continue
		}
		switch {
		case p.Scope.IsPage() && p.Scope.ID() == pageID:
			out = append(out, p)
		case p.Scope.IsCategory() && categoryID != "" && p.Scope.ID() == categoryID:
			out = append(out, p)
		case p.Scope.IsWholeSite():
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePrefRepo) LoadForSubjects(_ context.Context, _ string, subjectIDs []string) ([]*notfpref.PageNotfPref, error) {
	subjects := toSet(subjectIDs)
	var out []*notfpref.PageNotfPref
	for _, p := range f.prefs {
		if subjects[p.MemberID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// fakePageRepo serves a fixed set of pages.
type fakePageRepo struct {
	pages map[string]page.Page
}

func (f *fakePageRepo) Create(_ context.Context, p page.Page) (page.Page, error) { return p, nil }

func (f *fakePageRepo) GetByID(_ context.Context, _, id string) (page.Page, error) {
	p, ok := f.pages[id]
	if !ok {
		return page.Page{}, page.ErrPageNotFound
	}
	return p, nil
}

func (f *fakePageRepo) ListBySite(_ context.Context, _ string, _, _ int) ([]page.Page, int, error) {
	return nil, 0, nil
}

func (f *fakePageRepo) ListByCategory(_ context.Context, _, _ string, _, _ int) ([]page.Page, int, error) {
	return nil, 0, nil
}

func (f *fakePageRepo) SetBumpedAt(_ context.Context, _, _ string, _ time.Time) error { return nil }

func (f *fakePageRepo) SetDeleted(_ context.Context, _, _ string, _ bool) (bool, error) {
	return false, nil
}

// fakeMemberRepo only answers group membership.
type fakeMemberRepo struct {
	member.Repository
	groupsByMember map[string][]string
}

func (f *fakeMemberRepo) ListGroupIDs(_ context.Context, _, memberID string) ([]string, error) {
	return f.groupsByMember[memberID], nil
}

func newTestService() (*fakePrefRepo, notfpref.Service) {
	prefRepo := &fakePrefRepo{}
	catID := generalID
	pageRepo := &fakePageRepo{pages: map[string]page.Page{
		pageAID: {ID: pageAID, SiteID: siteID, CategoryID: &catID},
		pageBID: {ID: pageBID, SiteID: siteID},
	}}
	memberRepo := &fakeMemberRepo{groupsByMember: map[string][]string{
		aliceID: {staffID},
	}}
	return prefRepo, NewNotfPrefService(prefRepo, pageRepo, memberRepo)
}

func setPref(t *testing.T, repo *fakePrefRepo, memberID string, level notfpref.NotfLevel, scope notfpref.Scope) {
	t.Helper()
	pref, err := notfpref.NewPageNotfPref(siteID, memberID, level, scope)
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(context.Background(), pref))
}

func TestSetPreference_RejectsAmbiguousScope(t *testing.T) {
	_, svc := newTestService()

	_, err := svc.SetPreference(context.Background(), siteID, aliceID, notfpref.SetPreferenceRequest{
		Level:  int(notfpref.LevelTracking),
		PageID: pageAID,
		// page and whole-site at once: not a scope
		WholeSite: true,
	})
	assert.ErrorIs(t, err, notfpref.ErrInvalidScope)
}

func TestSetPreference_RejectsWatchingFirstOnPage(t *testing.T) {
	_, svc := newTestService()

	_, err := svc.SetPreference(context.Background(), siteID, aliceID, notfpref.SetPreferenceRequest{
		Level:  int(notfpref.LevelWatchingFirst),
		PageID: pageAID,
	})
	assert.ErrorIs(t, err, notfpref.ErrLevelScopeMismatch)
}

func TestSetPreference_OverwritesOnSecondWrite(t *testing.T) {
	repo, svc := newTestService()
	ctx := context.Background()

	_, err := svc.SetPreference(ctx, siteID, aliceID, notfpref.SetPreferenceRequest{
		Level:  int(notfpref.LevelTracking),
		PageID: pageAID,
	})
	require.NoError(t, err)

	resp, err := svc.SetPreference(ctx, siteID, aliceID, notfpref.SetPreferenceRequest{
		Level:  int(notfpref.LevelMuted),
		PageID: pageAID,
	})
	require.NoError(t, err)
	assert.Equal(t, int(notfpref.LevelMuted), resp.Level)
	assert.Len(t, repo.prefs, 1)
}

func TestRemovePreference_AbsentRowIsNotAnError(t *testing.T) {
	_, svc := newTestService()

	removed, err := svc.RemovePreference(context.Background(), siteID, aliceID, notfpref.RemovePreferenceRequest{
		PageID: pageAID,
	})
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestResolveForPage_OwnPagePrefWins(t *testing.T) {
	repo, svc := newTestService()
	setPref(t, repo, aliceID, notfpref.LevelMuted, notfpref.PageScope(pageAID))
	setPref(t, repo, staffID, notfpref.LevelEveryPostAllEdits, notfpref.PageScope(pageAID))

	resp, err := svc.ResolveForPage(context.Background(), siteID, aliceID, pageAID)
	require.NoError(t, err)
	assert.Equal(t, int(notfpref.LevelMuted), resp.Level)
	assert.Equal(t, notfpref.SourceOwn, resp.Source)
}

func TestResolveForPage_InheritsFromGroupCategory(t *testing.T) {
	repo, svc := newTestService()
	setPref(t, repo, staffID, notfpref.LevelWatchingAll, notfpref.CategoryScope(generalID))

	resp, err := svc.ResolveForPage(context.Background(), siteID, aliceID, pageAID)
	require.NoError(t, err)
	assert.Equal(t, int(notfpref.LevelWatchingAll), resp.Level)
	assert.Equal(t, notfpref.SourceInherited, resp.Source)
	assert.Equal(t, staffID, resp.InheritedFrom)
	assert.Equal(t, string(notfpref.ScopeCategory), resp.ScopeKind)
}

func TestResolveForPage_DefaultsToNormal(t *testing.T) {
	_, svc := newTestService()

	resp, err := svc.ResolveForPage(context.Background(), siteID, aliceID, pageAID)
	require.NoError(t, err)
	assert.Equal(t, int(notfpref.DefaultLevel), resp.Level)
	assert.Equal(t, notfpref.SourceDefault, resp.Source)
}

func TestResolveForPage_UnknownPage(t *testing.T) {
	_, svc := newTestService()

	_, err := svc.ResolveForPage(context.Background(), siteID, aliceID, "no-such-page")
	assert.ErrorIs(t, err, page.ErrPageNotFound)
}

func TestResolveForPages_CategoryPrefDoesNotLeakToUncategorizedPage(t *testing.T) {
	repo, svc := newTestService()
	setPref(t, repo, aliceID, notfpref.LevelWatchingAll, notfpref.CategoryScope(generalID))
	setPref(t, repo, aliceID, notfpref.LevelHushed, notfpref.WholeSiteScope())

	results, err := svc.ResolveForPages(context.Background(), siteID, aliceID, []string{pageAID, pageBID})
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Page A sits in the category; page B has none and falls through to the
	// whole-site preference.
	assert.Equal(t, int(notfpref.LevelWatchingAll), results[pageAID].Level)
	assert.Equal(t, int(notfpref.LevelHushed), results[pageBID].Level)
}

func TestResolveForPages_MatchesSinglePageResolution(t *testing.T) {
	repo, svc := newTestService()
	setPref(t, repo, aliceID, notfpref.LevelMuted, notfpref.PageScope(pageAID))
	setPref(t, repo, staffID, notfpref.LevelTracking, notfpref.WholeSiteScope())
	ctx := context.Background()

	bulk, err := svc.ResolveForPages(ctx, siteID, aliceID, []string{pageAID, pageBID})
	require.NoError(t, err)

	for _, pageID := range []string{pageAID, pageBID} {
		single, err := svc.ResolveForPage(ctx, siteID, aliceID, pageID)
		require.NoError(t, err)
		assert.Equal(t, single, bulk[pageID], "bulk and single resolution disagree for %s", pageID)
	}
}

func TestResolveForSite(t *testing.T) {
	repo, svc := newTestService()
	setPref(t, repo, staffID, notfpref.LevelTracking, notfpref.WholeSiteScope())

	resp, err := svc.ResolveForSite(context.Background(), siteID, aliceID)
	require.NoError(t, err)
	assert.Equal(t, int(notfpref.LevelTracking), resp.Level)
	assert.Equal(t, notfpref.SourceInherited, resp.Source)

	// The member's own whole-site choice takes over once set.
	setPref(t, repo, aliceID, notfpref.LevelHushed, notfpref.WholeSiteScope())
	resp, err = svc.ResolveForSite(context.Background(), siteID, aliceID)
	require.NoError(t, err)
	assert.Equal(t, int(notfpref.LevelHushed), resp.Level)
	assert.Equal(t, notfpref.SourceOwn, resp.Source)
}

func TestListPreferences(t *testing.T) {
	repo, svc := newTestService()
	setPref(t, repo, aliceID, notfpref.LevelMuted, notfpref.PageScope(pageAID))
	setPref(t, repo, aliceID, notfpref.LevelWatchingAll, notfpref.CategoryScope(generalID))
	// Group rows are not the member's own list.
	setPref(t, repo, staffID, notfpref.LevelTracking, notfpref.WholeSiteScope())

	prefs, err := svc.ListPreferences(context.Background(), siteID, aliceID)
	require.NoError(t, err)
	assert.Len(t, prefs, 2)
}
