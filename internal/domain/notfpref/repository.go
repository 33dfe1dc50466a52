package notfpref

import (
	"context"
)

// Repository defines the preference store contract. One row per
// (site, member, scope kind, scope value); upserts overwrite the level.
type Repository interface {
	// Upsert writes a preference, replacing the level on conflict.
	Upsert(ctx context.Context, pref *PageNotfPref) error

	// Delete removes the row for (member, scope) if present and reports
	// whether a row was removed. Deleting an absent row is not an error.
	Delete(ctx context.Context, siteID, memberID string, scope Scope) (bool, error)

	// LoadForScope returns every subject's explicit preference at exactly
	// this scope.
	LoadForScope(ctx context.Context, siteID string, scope Scope) ([]*PageNotfPref, error)

	// LoadForSubjectsAtScope returns the given subjects' explicit preferences
	// at exactly this scope.
	LoadForSubjectsAtScope(ctx context.Context, siteID string, scope Scope, subjectIDs []string) ([]*PageNotfPref, error)

	// LoadApplicableForPage returns the union of rows at page scope (this
	// page), category scope (this category) and whole-site scope for the
	// given subjects. categoryID may be empty for pages outside any category.
	LoadApplicableForPage(ctx context.Context, siteID, pageID, categoryID string, subjectIDs []string) ([]*PageNotfPref, error)

	// LoadForSubjects returns every row for the given subjects at any scope.
	// Used when resolving one member across many pages at once.
	LoadForSubjects(ctx context.Context, siteID string, subjectIDs []string) ([]*PageNotfPref, error)
}
