package notfpref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeFrom_ExactlyOneVariant(t *testing.T) {
	cases := []struct {
		name       string
		pageID     string
		categoryID string
		wholeSite  bool
		wantErr    error
		wantKind   ScopeKind
	}{
		{name: "page", pageID: "page-1", wantKind: ScopePage},
		{name: "category", categoryID: "cat-1", wantKind: ScopeCategory},
		{name: "whole site", wholeSite: true, wantKind: ScopeWholeSite},
		{name: "none set", wantErr: ErrInvalidScope},
		{name: "page and category", pageID: "page-1", categoryID: "cat-1", wantErr: ErrInvalidScope},
		{name: "page and whole site", pageID: "page-1", wholeSite: true, wantErr: ErrInvalidScope},
		{name: "all three", pageID: "page-1", categoryID: "cat-1", wholeSite: true, wantErr: ErrInvalidScope},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			scope, err := ScopeFrom(c.pageID, c.categoryID, c.wholeSite)
			if c.wantErr != nil {
				assert.ErrorIs(t, err, c.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.wantKind, scope.Kind())
		})
	}
}

func TestNewPageNotfPref_Valid(t *testing.T) {
	pref, err := NewPageNotfPref("site-1", "member-1", LevelTracking, PageScope("page-1"))
	require.NoError(t, err)
	assert.Equal(t, "site-1", pref.SiteID)
	assert.Equal(t, "member-1", pref.MemberID)
	assert.Equal(t, LevelTracking, pref.Level)
	assert.True(t, pref.Scope.IsPage())
	assert.Equal(t, "page-1", pref.Scope.ID())
}

func TestNewPageNotfPref_RejectsWatchingFirstOnPage(t *testing.T) {
	_, err := NewPageNotfPref("site-1", "member-1", LevelWatchingFirst, PageScope("page-1"))
	assert.ErrorIs(t, err, ErrLevelScopeMismatch)

	// Fine at category and site scope, where new topics can appear.
	_, err = NewPageNotfPref("site-1", "member-1", LevelWatchingFirst, CategoryScope("cat-1"))
	assert.NoError(t, err)
	_, err = NewPageNotfPref("site-1", "member-1", LevelWatchingFirst, WholeSiteScope())
	assert.NoError(t, err)
}

func TestNewPageNotfPref_RejectsInvalidInput(t *testing.T) {
	_, err := NewPageNotfPref("site-1", "member-1", NotfLevel(0), WholeSiteScope())
	assert.ErrorIs(t, err, ErrInvalidLevel)

	_, err = NewPageNotfPref("site-1", "member-1", NotfLevel(10), WholeSiteScope())
	assert.ErrorIs(t, err, ErrInvalidLevel)

	_, err = NewPageNotfPref("site-1", "member-1", LevelNormal, Scope{})
	assert.ErrorIs(t, err, ErrInvalidScope)

	_, err = NewPageNotfPref("site-1", "member-1", LevelNormal, PageScope(""))
	assert.ErrorIs(t, err, ErrInvalidScope)
}

func TestEffectivePreference_EffectiveLevel(t *testing.T) {
	own := LevelMuted
	inherited := &PageNotfPref{MemberID: "group-1", Level: LevelWatchingAll, Scope: CategoryScope("cat-1")}

	assert.Equal(t, LevelMuted, EffectivePreference{OwnLevel: &own, Inherited: inherited}.EffectiveLevel())
	assert.Equal(t, LevelWatchingAll, EffectivePreference{Inherited: inherited}.EffectiveLevel())
	assert.Equal(t, DefaultLevel, EffectivePreference{}.EffectiveLevel())
}
